package groupman

import (
	"slices"
	"testing"
)

func TestCombineGroups(t *testing.T) {
	tests := []struct {
		name        string
		layout      [][][]int
		combine     [][2]int // (supergroup, group) indices to combine
		wantNIDs    []int
		wantSupers  int
		wantRemoved bool // whether the supergroup of the second group is gone
	}{
		{
			name:        "EmptiedSuperGroupRemoved",
			layout:      [][][]int{{{0, 1, 2}}, {{3, 4}}},
			combine:     [][2]int{{0, 0}, {1, 0}},
			wantNIDs:    []int{0, 1, 2, 3, 4},
			wantSupers:  1,
			wantRemoved: true,
		},
		{
			name:        "NonEmptySuperGroupRetained",
			layout:      [][][]int{{{0, 1, 2}}, {{3, 4}, {5}}},
			combine:     [][2]int{{0, 0}, {1, 0}},
			wantNIDs:    []int{0, 1, 2, 3, 4},
			wantSupers:  2,
			wantRemoved: false,
		},
		{
			name:        "LargestIsDestination",
			layout:      [][][]int{{{0}}, {{1, 2}}},
			combine:     [][2]int{{0, 0}, {1, 0}},
			wantNIDs:    []int{1, 2, 0},
			wantSupers:  1,
			wantRemoved: false,
		},
		{
			name:        "SameSuperGroup",
			layout:      [][][]int{{{0, 1}, {2}, {3}}},
			combine:     [][2]int{{0, 1}, {0, 0}, {0, 2}},
			wantNIDs:    []int{0, 1, 2, 3},
			wantSupers:  1,
			wantRemoved: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			sgs := buildGroups(t, m, tt.layout)

			var in []GroupRef
			for _, c := range tt.combine {
				in = append(in, m.Groups(sgs[c[0]])[c[1]])
			}
			second, _ := m.OwnerOf(in[1])

			dst, ok := m.CombineGroups(in)
			if !ok {
				t.Fatal("CombineGroups returned false")
			}
			if got := m.GroupNIDs(dst); !slices.Equal(got, tt.wantNIDs) {
				t.Errorf("nids = %v, want %v", got, tt.wantNIDs)
			}
			if got := len(m.SuperGroups(PathForest)); got != tt.wantSupers {
				t.Errorf("supergroups = %d, want %d", got, tt.wantSupers)
			}
			_, alive := m.Info(second)
			if alive == tt.wantRemoved {
				t.Errorf("second supergroup alive = %v, want %v", alive, !tt.wantRemoved)
			}

			// Combine reindexes on its own.
			for _, nid := range tt.wantNIDs {
				loc, ok := m.FindNodeIDLoc(nid)
				if !ok {
					t.Errorf("nid %d not indexed after combine", nid)
					continue
				}
				if loc.Group != dst {
					t.Errorf("nid %d indexed in %v, want %v", nid, loc.Group, dst)
				}
			}
		})
	}
}

func TestCombineGroupsEmptyInput(t *testing.T) {
	m := New()
	if _, ok := m.CombineGroups(nil); ok {
		t.Error("CombineGroups(nil) should report false")
	}
	if _, ok := m.CombineGroups([]GroupRef{{}}); ok {
		t.Error("CombineGroups with only zero handles should report false")
	}
}

func TestCombineGroupsDuplicates(t *testing.T) {
	m := New()
	sgs := buildGroups(t, m, [][][]int{{{0, 1}}})
	g := m.Groups(sgs[0])[0]

	dst, ok := m.CombineGroups([]GroupRef{g, g})
	if !ok || dst != g {
		t.Fatalf("CombineGroups = %v, %v; want %v, true", dst, ok, g)
	}
	if got := m.GroupNIDs(g); !slices.Equal(got, []int{0, 1}) {
		t.Errorf("nids = %v, want [0 1]", got)
	}
}

func TestMoveToOwnGroup(t *testing.T) {
	m := New()
	sgs := buildGroups(t, m, [][][]int{{{0, 1, 2}, {3}}})

	loc, _ := m.FindNodeIDLoc(1)
	ng, ok := m.MoveToOwnGroup(loc.Node)
	if !ok {
		t.Fatal("MoveToOwnGroup returned false")
	}

	groups := m.Groups(sgs[0])
	if len(groups) != 3 || groups[2] != ng {
		t.Fatalf("groups = %v, want new group appended last", groups)
	}
	if got := m.GroupNIDs(groups[0]); !slices.Equal(got, []int{0, 2}) {
		t.Errorf("old group nids = %v, want [0 2]", got)
	}
	if got := m.GroupNIDs(ng); !slices.Equal(got, []int{1}) {
		t.Errorf("new group nids = %v, want [1]", got)
	}
	if owner, _ := m.OwnerOf(ng); owner != sgs[0] {
		t.Errorf("new group owner = %v, want %v", owner, sgs[0])
	}

	// Not reindexed until asked.
	if stale, _ := m.FindNodeIDLoc(1); stale.Group == ng {
		t.Error("index should be stale before InitializeLookups")
	}
	m.InitializeLookups()
	if fresh, _ := m.FindNodeIDLoc(1); fresh.Group != ng {
		t.Error("index should point at the new group after InitializeLookups")
	}

	// Singleton groups are left alone.
	loc3, _ := m.FindNodeIDLoc(3)
	if _, ok := m.MoveToOwnGroup(loc3.Node); ok {
		t.Error("MoveToOwnGroup on a singleton should be a no-op")
	}
	if got := len(m.Groups(sgs[0])); got != 3 {
		t.Errorf("groups = %d after no-op, want 3", got)
	}
}

func TestPromoteGroup(t *testing.T) {
	m := New()
	sgs := buildGroups(t, m, [][][]int{{{0, 1}, {2}}, {{3}}})
	m.SetInfo(sgs[0], SuperInfo{ID: "A", Name: "loop", Selected: true})

	g := m.Groups(sgs[0])[1]
	nsg, ok := m.PromoteGroup(g)
	if !ok {
		t.Fatal("PromoteGroup returned false")
	}

	paths := m.SuperGroups(PathForest)
	if len(paths) != 3 || paths[2] != nsg {
		t.Fatalf("path forest = %v, want promoted supergroup appended", paths)
	}
	info, _ := m.Info(nsg)
	if info.ID != "A" || info.Name != "loop" {
		t.Errorf("promoted info = %+v, want ID/Name copied", info)
	}
	if info.Selected {
		t.Error("only display attributes should be copied")
	}
	if got := m.Groups(nsg); len(got) != 1 || got[0] != g {
		t.Errorf("promoted groups = %v, want [%v]", got, g)
	}
	if got := len(m.Groups(sgs[0])); got != 1 {
		t.Errorf("original groups = %d, want 1", got)
	}
	if owner, _ := m.OwnerOf(g); owner != nsg {
		t.Errorf("owner = %v, want %v", owner, nsg)
	}

	if _, ok := m.PromoteGroup(m.Groups(sgs[1])[0]); ok {
		t.Error("promoting the only group of a supergroup should be a no-op")
	}
}

// pathAndSimilar builds a path super group holding {0} and a similar super
// group holding {0, 1}, {2}.
func pathAndSimilar(t *testing.T, m *Manager) (path, similar SuperRef) {
	t.Helper()
	path = buildGroups(t, m, [][][]int{{{0}}})[0]
	similar = m.AddSuperGroup(SimilarForest, SuperRef{})
	for _, nids := range [][]int{{0, 1}, {2}} {
		g := m.AddNodeGroup(similar)
		for _, nid := range nids {
			m.AddNode(g, NodeDef{NID: nid, Start: uint64(nid) * 0x10, End: uint64(nid+1) * 0x10})
		}
	}
	m.InitializeLookups()
	return path, similar
}

func TestCombineGroupsStaysInForest(t *testing.T) {
	m := New()
	path, similar := pathAndSimilar(t, m)
	pg := m.Groups(path)[0]
	sgs := m.Groups(similar)

	dst, ok := m.CombineGroups([]GroupRef{pg, sgs[0]})
	if !ok || dst != pg {
		t.Fatalf("CombineGroups = %v, %v; want the path group", dst, ok)
	}
	if got := m.GroupNIDs(pg); !slices.Equal(got, []int{0}) {
		t.Errorf("path group nids = %v, want [0]", got)
	}
	if got := m.GroupNIDs(sgs[0]); !slices.Equal(got, []int{0, 1}) {
		t.Errorf("similar group nids = %v, want [0 1] untouched", got)
	}
	if loc, ok := m.FindNodeIDLoc(0); !ok || loc.Group != pg {
		t.Errorf("nid 0 location = %v, %v; want path group", loc, ok)
	}

	// Similar groups combine among themselves.
	dst, ok = m.CombineGroups([]GroupRef{sgs[1], pg, sgs[0]})
	if !ok || dst != sgs[0] {
		t.Fatalf("CombineGroups = %v, %v; want the larger similar group", dst, ok)
	}
	if got := m.GroupNIDs(dst); !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("similar nids = %v, want [0 1 2]", got)
	}
	if got := m.NodeCount(PathForest); got != 1 {
		t.Errorf("path node count = %d, want 1", got)
	}
}

func TestPromoteGroupKeepsForest(t *testing.T) {
	m := New()
	_, similar := pathAndSimilar(t, m)
	g := m.Groups(similar)[1]

	nsg, ok := m.PromoteGroup(g)
	if !ok {
		t.Fatal("PromoteGroup returned false")
	}
	if f, ok := m.ForestOf(nsg); !ok || f != SimilarForest {
		t.Errorf("promoted forest = %v, %v; want similar", f, ok)
	}
	if got := len(m.SuperGroups(PathForest)); got != 1 {
		t.Errorf("path supergroups = %d, want 1", got)
	}
	if got := len(m.SuperGroups(SimilarForest)); got != 2 {
		t.Errorf("similar supergroups = %d, want 2", got)
	}
}

func TestPromoteGroupCopiesSynthetic(t *testing.T) {
	m := New()
	sgs := buildGroups(t, m, [][][]int{{{4}, {5}}})
	m.SetInfo(sgs[0], SuperInfo{ID: OrphanGroupID, Synthetic: true})

	nsg, ok := m.PromoteGroup(m.Groups(sgs[0])[1])
	if !ok {
		t.Fatal("PromoteGroup returned false")
	}
	if info, _ := m.Info(nsg); !info.Synthetic || info.ID != OrphanGroupID {
		t.Errorf("promoted info = %+v, want synthetic orphan group", info)
	}
}
