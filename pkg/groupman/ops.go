package groupman

import "slices"

// CombineGroups merges the given node groups into one. The group holding the
// most node defs becomes the destination (the earliest one on ties); every
// node def of the other groups is moved into it in order. Emptied groups are
// removed from their owning super groups, and super groups left without any
// node group are removed from their forest.
//
// Duplicate and unresolvable handles are ignored, as are groups whose super
// group is not in the same forest as the first usable group; node defs never
// change forest. CombineGroups reports false if no usable group was given. Unlike the other structural mutations
// it rebuilds the lookup indices before returning.
func (m *Manager) CombineGroups(groups []GroupRef) (GroupRef, bool) {
	var (
		valid []GroupRef
		home  forestSlot
	)
	for _, g := range groups {
		if _, ok := m.group(g); !ok || slices.Contains(valid, g) {
			continue
		}
		fs := m.groupForest(g)
		if len(valid) == 0 {
			home = fs
		} else if fs != home {
			continue
		}
		valid = append(valid, g)
	}
	if len(valid) == 0 {
		return GroupRef{}, false
	}

	dst := valid[0]
	for _, g := range valid[1:] {
		if m.GroupSize(g) > m.GroupSize(dst) {
			dst = g
		}
	}

	for _, g := range valid {
		if g == dst {
			continue
		}
		m.moveNodes(g, dst)
		m.detachGroup(g)
	}

	m.InitializeLookups()
	return dst, true
}

// MoveToOwnGroup takes r out of its node group and places it in a brand-new
// node group appended to the same super group. Node defs that are already
// alone in their group are left untouched and MoveToOwnGroup reports false.
//
// The location index is not updated; call [Manager.InitializeLookups].
func (m *Manager) MoveToOwnGroup(r NodeRef) (GroupRef, bool) {
	ne, ok := m.nodes.get(r.slot, r.gen)
	if !ok {
		return GroupRef{}, false
	}
	ge, ok := m.group(ne.group)
	if !ok || len(ge.nodes) <= 1 {
		return GroupRef{}, false
	}
	ge.nodes = slices.DeleteFunc(ge.nodes, func(x NodeRef) bool { return x == r })

	ng := m.AddNodeGroup(ge.super)
	nge, _ := m.group(ng)
	nge.nodes = append(nge.nodes, r)
	ne.group = ng
	return ng, true
}

// PromoteGroup moves g out of its super group into a new super group that
// copies the original's display attributes (ID, Name, Synthetic) and is
// appended to the same forest as the original.
// A group that is the only one in its super group is left untouched and
// PromoteGroup reports false.
//
// The location index is not updated; call [Manager.InitializeLookups].
func (m *Manager) PromoteGroup(g GroupRef) (SuperRef, bool) {
	ge, ok := m.group(g)
	if !ok {
		return SuperRef{}, false
	}
	se, ok := m.super(ge.super)
	if !ok || len(se.groups) <= 1 {
		return SuperRef{}, false
	}
	se.groups = slices.DeleteFunc(se.groups, func(x GroupRef) bool { return x == g })
	info := SuperInfo{ID: se.info.ID, Name: se.info.Name, Synthetic: se.info.Synthetic}

	sg := m.NewSuperGroup(info)
	nse, _ := m.super(sg)
	nse.groups = []GroupRef{g}
	if se.attached {
		nse.attached = true
		nse.forest = se.forest
		m.forests[se.forest] = append(m.forests[se.forest], sg)
	}
	ge.super = sg
	return sg, true
}

// forestSlot identifies where a group's super group lives. Unattached super
// groups share the zero-attached slot.
type forestSlot struct {
	forest   Forest
	attached bool
}

func (m *Manager) groupForest(g GroupRef) forestSlot {
	ge, ok := m.group(g)
	if !ok {
		return forestSlot{}
	}
	se, ok := m.super(ge.super)
	if !ok || !se.attached {
		return forestSlot{}
	}
	return forestSlot{forest: se.forest, attached: true}
}

// moveNodes appends every node def of src to dst, leaving src empty.
func (m *Manager) moveNodes(src, dst GroupRef) {
	se, ok := m.group(src)
	if !ok {
		return
	}
	de, ok := m.group(dst)
	if !ok {
		return
	}
	for _, r := range se.nodes {
		if ne, ok := m.nodes.get(r.slot, r.gen); ok {
			ne.group = dst
			de.nodes = append(de.nodes, r)
		}
	}
	se.nodes = nil
}

// detachGroup removes an empty group from its owner and releases it. An
// owner left with no groups is removed from its forest and released.
func (m *Manager) detachGroup(g GroupRef) {
	ge, ok := m.group(g)
	if !ok {
		return
	}
	owner := ge.super
	m.groups.release(g.slot, g.gen)

	se, ok := m.super(owner)
	if !ok {
		return
	}
	se.groups = slices.DeleteFunc(se.groups, func(x GroupRef) bool { return x == g })
	if len(se.groups) > 0 {
		return
	}
	if se.attached {
		m.forests[se.forest] = slices.DeleteFunc(m.forests[se.forest], func(x SuperRef) bool { return x == owner })
	}
	m.supers.release(owner.slot, owner.gen)
}
