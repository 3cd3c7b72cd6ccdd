package groupman

import (
	"slices"
	"testing"
)

// blocks is a flowchart stand-in: block n spans [b[n][0], b[n][1]).
type blocks [][2]uint64

func (b blocks) Size() int { return len(b) }

func (b blocks) Bounds(n int) (uint64, uint64) { return b[n][0], b[n][1] }

func linearBlocks(n int) blocks {
	b := make(blocks, n)
	for i := range b {
		b[i] = [2]uint64{0x1000 + uint64(i)*0x10, 0x1010 + uint64(i)*0x10}
	}
	return b
}

// buildGroups creates one path super group per entry of layout, each holding
// one node group per inner slice of nids.
func buildGroups(t *testing.T, m *Manager, layout [][][]int) []SuperRef {
	t.Helper()
	var sgs []SuperRef
	for i, groups := range layout {
		sg := m.AddSuperGroup(PathForest, SuperRef{})
		m.SetInfo(sg, SuperInfo{ID: string(rune('A' + i))})
		for _, nids := range groups {
			g := m.AddNodeGroup(sg)
			for _, nid := range nids {
				start := 0x1000 + uint64(nid)*0x10
				m.AddNode(g, NodeDef{NID: nid, Start: start, End: start + 0x10})
			}
		}
		sgs = append(sgs, sg)
	}
	m.InitializeLookups()
	return sgs
}

func TestAddSuperGroup(t *testing.T) {
	m := New()

	sg := m.AddSuperGroup(PathForest, SuperRef{})
	if sg.IsZero() {
		t.Fatal("AddSuperGroup returned zero handle")
	}
	if got := len(m.SuperGroups(PathForest)); got != 1 {
		t.Errorf("path supergroups = %d, want 1", got)
	}
	if got := len(m.SuperGroups(SimilarForest)); got != 0 {
		t.Errorf("similar supergroups = %d, want 0", got)
	}

	// Attaching an attached supergroup again is a no-op.
	if again := m.AddSuperGroup(SimilarForest, sg); again != sg {
		t.Errorf("re-adding returned %v, want %v", again, sg)
	}
	if got := len(m.SuperGroups(SimilarForest)); got != 0 {
		t.Errorf("similar supergroups = %d after re-add, want 0", got)
	}

	detached := m.NewSuperGroup(SuperInfo{ID: "x"})
	if _, ok := m.ForestOf(detached); ok {
		t.Error("detached supergroup should not report a forest")
	}
	m.AddSuperGroup(SimilarForest, detached)
	if f, ok := m.ForestOf(detached); !ok || f != SimilarForest {
		t.Errorf("ForestOf = %v, %v; want SimilarForest, true", f, ok)
	}

	if got := m.AddSuperGroup(Forest(7), SuperRef{}); !got.IsZero() {
		t.Error("unknown forest should return zero handle")
	}
}

func TestRemoveSuperGroup(t *testing.T) {
	m := New()
	sgs := buildGroups(t, m, [][][]int{{{0, 1}}, {{2}}})

	if m.RemoveSuperGroup(SimilarForest, sgs[0]) {
		t.Error("removing from the wrong forest should fail")
	}
	if !m.RemoveSuperGroup(PathForest, sgs[0]) {
		t.Fatal("RemoveSuperGroup returned false")
	}
	if m.RemoveSuperGroup(PathForest, sgs[0]) {
		t.Error("second removal should fail")
	}

	// The index is stale, but released handles must not resolve.
	if _, ok := m.FindNodeIDLoc(0); ok {
		t.Error("nid 0 should not resolve after its supergroup was removed")
	}
	if _, ok := m.FindNodeLoc(0x1000); ok {
		t.Error("address 0x1000 should not resolve after removal")
	}
	if _, ok := m.Info(sgs[0]); ok {
		t.Error("removed supergroup handle should not resolve")
	}
	if _, ok := m.FindNodeIDLoc(2); !ok {
		t.Error("nid 2 should still resolve")
	}

	// Slots are reused, old handles stay dead.
	fresh := m.AddSuperGroup(PathForest, SuperRef{})
	if _, ok := m.Info(sgs[0]); ok {
		t.Error("stale handle resolved after slot reuse")
	}
	if _, ok := m.Info(fresh); !ok {
		t.Error("fresh handle should resolve")
	}
}

func TestFindNodeIDLoc(t *testing.T) {
	m := New()
	sg := m.AddSuperGroup(PathForest, SuperRef{})
	m.SetInfo(sg, SuperInfo{ID: "A"})
	g := m.AddNodeGroup(sg)
	m.AddNode(g, NodeDef{NID: 0, Start: 0x1000, End: 0x1010})
	m.AddNode(g, NodeDef{NID: 1, Start: 0x1010, End: 0x1020})

	if _, ok := m.FindNodeIDLoc(1); ok {
		t.Error("lookup should miss before InitializeLookups")
	}

	m.InitializeLookups()
	loc, ok := m.FindNodeIDLoc(1)
	if !ok {
		t.Fatal("FindNodeIDLoc(1) missed")
	}
	info, _ := m.Info(loc.Super)
	if info.ID != "A" {
		t.Errorf("sg.id = %q, want A", info.ID)
	}
	if got := m.GroupNIDs(loc.Group); !slices.Equal(got, []int{0, 1}) {
		t.Errorf("group nids = %v, want [0 1]", got)
	}
	if loc.Def.Start != 0x1010 {
		t.Errorf("def start = %#x, want 0x1010", loc.Def.Start)
	}

	if _, ok := m.FindNodeIDLoc(42); ok {
		t.Error("absent nid should miss")
	}
}

func TestFindNodeLoc(t *testing.T) {
	m := New()
	buildGroups(t, m, [][][]int{{{0, 1}}, {{2}}})

	tests := []struct {
		addr    uint64
		wantNID int
		wantOK  bool
	}{
		{0x1000, 0, true},
		{0x100f, 0, true},
		{0x1010, 1, true}, // end is exclusive
		{0x102f, 2, true},
		{0x1030, 0, false},
		{0x0fff, 0, false},
	}
	for _, tt := range tests {
		loc, ok := m.FindNodeLoc(tt.addr)
		if ok != tt.wantOK {
			t.Errorf("FindNodeLoc(%#x) ok = %v, want %v", tt.addr, ok, tt.wantOK)
			continue
		}
		if ok && loc.Def.NID != tt.wantNID {
			t.Errorf("FindNodeLoc(%#x) nid = %d, want %d", tt.addr, loc.Def.NID, tt.wantNID)
		}
	}
}

func TestFindNodeLocOverlapFirstWins(t *testing.T) {
	m := New()
	g := m.AddNodeGroup(m.AddSuperGroup(PathForest, SuperRef{}))
	m.AddNode(g, NodeDef{NID: 5, Start: 0x10, End: 0x30})
	m.AddNode(g, NodeDef{NID: 6, Start: 0x20, End: 0x40})
	m.InitializeLookups()

	loc, ok := m.FindNodeLoc(0x25)
	if !ok || loc.Def.NID != 5 {
		t.Errorf("FindNodeLoc(0x25) = %d, %v; want 5, true", loc.Def.NID, ok)
	}
}

func TestSimilarForestNotIndexed(t *testing.T) {
	m := New()
	sg := m.AddSuperGroup(SimilarForest, SuperRef{})
	m.AddNode(m.AddNodeGroup(sg), NodeDef{NID: 9, Start: 0x90, End: 0xa0})
	m.InitializeLookups()

	if _, ok := m.FindNodeIDLoc(9); ok {
		t.Error("similar forest nodes must not be indexed")
	}
	if _, ok := m.FindNodeLoc(0x95); ok {
		t.Error("similar forest nodes must not be found by address")
	}
	if got := m.NodeCount(SimilarForest); got != 1 {
		t.Errorf("NodeCount(similar) = %d, want 1", got)
	}
}

func TestFirstNode(t *testing.T) {
	m := New()
	if _, ok := m.FirstNode(); ok {
		t.Error("empty manager should have no first node")
	}

	sg := m.AddSuperGroup(PathForest, SuperRef{})
	if _, ok := m.FirstNode(); ok {
		t.Error("supergroup without groups should have no first node")
	}
	g := m.AddNodeGroup(sg)
	if _, ok := m.FirstNode(); ok {
		t.Error("empty group should have no first node")
	}
	m.AddNode(g, NodeDef{NID: 3, Start: 0x4000, End: 0x4008})
	m.AddNode(g, NodeDef{NID: 4, Start: 0x4008, End: 0x4010})

	nd, ok := m.FirstNode()
	if !ok || nd.NID != 3 || nd.Start != 0x4000 {
		t.Errorf("FirstNode = %+v, %v; want nid 3 at 0x4000", nd, ok)
	}
}

func TestClear(t *testing.T) {
	m := New()
	m.SetSourceFile("f.bbgroup")
	sgs := buildGroups(t, m, [][][]int{{{0, 1}, {2}}})
	m.AddSuperGroup(SimilarForest, SuperRef{})

	m.Clear()

	if got := len(m.SuperGroups(PathForest)) + len(m.SuperGroups(SimilarForest)); got != 0 {
		t.Errorf("supergroups after Clear = %d, want 0", got)
	}
	if _, ok := m.FindNodeIDLoc(0); ok {
		t.Error("lookup should miss after Clear")
	}
	if _, ok := m.FindNodeLoc(0x1000); ok {
		t.Error("address lookup should miss after Clear")
	}
	if _, ok := m.Info(sgs[0]); ok {
		t.Error("handles from before Clear must not resolve")
	}
	if m.SourceFile() != "f.bbgroup" {
		t.Errorf("SourceFile = %q, want kept", m.SourceFile())
	}
}

func TestCounts(t *testing.T) {
	m := New()
	buildGroups(t, m, [][][]int{{{0, 1}, {2}}, {{3, 4, 5}}})

	if got := m.GroupCount(PathForest); got != 3 {
		t.Errorf("GroupCount = %d, want 3", got)
	}
	if got := m.NodeCount(PathForest); got != 6 {
		t.Errorf("NodeCount = %d, want 6", got)
	}
}

func TestFindNodeLocNeedsReindex(t *testing.T) {
	m := New()
	sgs := buildGroups(t, m, [][][]int{{{0}}})
	m.AddNode(m.Groups(sgs[0])[0], NodeDef{NID: 9, Start: 0x500, End: 0x510})

	if _, ok := m.FindNodeLoc(0x505); ok {
		t.Error("a node def added after the last reindex should not resolve")
	}
	m.InitializeLookups()
	loc, ok := m.FindNodeLoc(0x505)
	if !ok {
		t.Fatal("FindNodeLoc(0x505) not found after InitializeLookups")
	}
	if nd, _ := m.Node(loc.Node); nd.NID != 9 {
		t.Errorf("nid = %d, want 9", nd.NID)
	}
}
