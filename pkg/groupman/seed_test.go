package groupman

import (
	"slices"
	"testing"
)

func TestFromFlowchart(t *testing.T) {
	fc := linearBlocks(3)
	m := FromFlowchart(fc)

	paths := m.SuperGroups(PathForest)
	if len(paths) != 3 {
		t.Fatalf("path forest = %d supergroups, want 3", len(paths))
	}
	for n, sg := range paths {
		groups := m.Groups(sg)
		if len(groups) != 1 {
			t.Fatalf("supergroup %d has %d groups, want 1", n, len(groups))
		}
		if got := m.GroupNIDs(groups[0]); !slices.Equal(got, []int{n}) {
			t.Errorf("supergroup %d nids = %v, want [%d]", n, got, n)
		}
		loc, ok := m.FindNodeIDLoc(n)
		if !ok || loc.Super != sg {
			t.Errorf("nid %d not indexed in its own supergroup", n)
		}
	}
	if _, ok := Sanitize(m, fc); ok {
		t.Error("a flowchart partition should have no orphans")
	}
}

func TestSeedPath(t *testing.T) {
	m := New()
	fc := linearBlocks(6)

	n := SeedPath(m, fc, [][][]int{
		{{0, 1}, {2}},
		{{3, 1, 9}}, // 1 already placed, 9 out of range
		{{-1}},      // nothing usable
		{{4}},
	})
	if n != 5 {
		t.Errorf("placed = %d, want 5", n)
	}

	paths := m.SuperGroups(PathForest)
	if len(paths) != 3 {
		t.Fatalf("path forest = %d supergroups, want 3", len(paths))
	}
	if got := m.GroupNIDs(m.Groups(paths[1])[0]); !slices.Equal(got, []int{3}) {
		t.Errorf("second supergroup nids = %v, want [3]", got)
	}
	for _, nid := range []int{0, 1, 2, 3, 4} {
		if _, ok := m.FindNodeIDLoc(nid); !ok {
			t.Errorf("nid %d not indexed after SeedPath", nid)
		}
	}

	// A second seed skips what the first placed.
	if n := SeedPath(m, fc, [][][]int{{{4, 5}}}); n != 1 {
		t.Errorf("second seed placed = %d, want 1", n)
	}
	orphan, ok := Sanitize(m, fc)
	if ok {
		t.Errorf("unexpected orphans in %v", m.Groups(orphan))
	}
}

func TestSeedSimilar(t *testing.T) {
	m := FromFlowchart(linearBlocks(4))

	n := SeedSimilar(m, linearBlocks(4), [][]int{{0, 2}, {7}, {1, 3}})
	if n != 2 {
		t.Fatalf("added = %d, want 2", n)
	}

	sims := m.SuperGroups(SimilarForest)
	if len(sims) != 2 {
		t.Fatalf("similar forest = %d supergroups, want 2", len(sims))
	}
	for k, want := range [][]int{{0, 2}, {1, 3}} {
		info, _ := m.Info(sims[k])
		if info.ID != "similar_"+string(rune('0'+k)) {
			t.Errorf("similar %d id = %q", k, info.ID)
		}
		groups := m.Groups(sims[k])
		if len(groups) != len(want) {
			t.Fatalf("similar %d groups = %d, want %d", k, len(groups), len(want))
		}
		for i, g := range groups {
			if got := m.GroupNIDs(g); !slices.Equal(got, []int{want[i]}) {
				t.Errorf("similar %d group %d = %v, want [%d]", k, i, got, want[i])
			}
		}
	}

	// The path forest still owns every nid.
	for nid := 0; nid < 4; nid++ {
		loc, _ := m.FindNodeIDLoc(nid)
		if f, _ := m.ForestOf(loc.Super); f != PathForest {
			t.Errorf("nid %d resolves to forest %v", nid, f)
		}
	}
}
