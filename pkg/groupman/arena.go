package groupman

// slot is one arena cell. gen is bumped on every release so handles issued
// for an earlier occupant no longer match.
type slot[T any] struct {
	val  T
	gen  uint32
	live bool
}

// arena stores values in reusable slots addressed by (index, generation).
type arena[T any] struct {
	slots []slot[T]
	free  []int
	live  int
}

func (a *arena[T]) alloc(v T) (int, uint32) {
	var i int
	if n := len(a.free); n > 0 {
		i = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot[T]{})
		i = len(a.slots) - 1
	}
	s := &a.slots[i]
	s.gen++
	s.val = v
	s.live = true
	a.live++
	return i, s.gen
}

func (a *arena[T]) get(i int, gen uint32) (*T, bool) {
	if i < 0 || i >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[i]
	if !s.live || s.gen != gen {
		return nil, false
	}
	return &s.val, true
}

func (a *arena[T]) release(i int, gen uint32) bool {
	if _, ok := a.get(i, gen); !ok {
		return false
	}
	s := &a.slots[i]
	var zero T
	s.val = zero
	s.live = false
	a.free = append(a.free, i)
	a.live--
	return true
}

// reset drops every value but keeps generations so old handles stay invalid.
func (a *arena[T]) reset() {
	a.free = a.free[:0]
	for i := range a.slots {
		if a.slots[i].live {
			var zero T
			a.slots[i].val = zero
			a.slots[i].live = false
		}
		a.free = append(a.free, i)
	}
	a.live = 0
}
