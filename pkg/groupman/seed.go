package groupman

import "fmt"

// FromFlowchart builds a 1:1 partition of fc: every block becomes its own
// node group inside its own super group, in block order. The returned
// Manager is already indexed.
func FromFlowchart(fc Blocks) *Manager {
	m := New()
	for n := 0; n < fc.Size(); n++ {
		start, end := fc.Bounds(n)
		sg := m.AddSuperGroup(PathForest, SuperRef{})
		g := m.AddNodeGroup(sg)
		m.AddNode(g, NodeDef{NID: n, Start: start, End: end})
	}
	m.InitializeLookups()
	return m
}

// SeedPath appends an externally computed partition to the path forest.
// result is nested as super group -> node group -> nid. Address ranges are
// taken from fc. Nids outside fc, and nids already placed in the path forest
// (by an earlier seed or by this one), are skipped; node groups and super
// groups left empty are not created.
//
// SeedPath rebuilds the lookup indices and returns the number of node defs
// placed.
func SeedPath(m *Manager, fc Blocks, result [][][]int) int {
	m.InitializeLookups()
	placed := make(map[int]bool)
	count := 0
	for _, groups := range result {
		var sg SuperRef
		for _, nids := range groups {
			var g GroupRef
			for _, nid := range nids {
				if nid < 0 || nid >= fc.Size() || placed[nid] {
					continue
				}
				if _, ok := m.FindNodeIDLoc(nid); ok {
					continue
				}
				if sg.IsZero() {
					sg = m.NewSuperGroup(SuperInfo{})
				}
				if g.IsZero() {
					g = m.AddNodeGroup(sg)
				}
				start, end := fc.Bounds(nid)
				m.AddNode(g, NodeDef{NID: nid, Start: start, End: end})
				placed[nid] = true
				count++
			}
		}
		if !sg.IsZero() {
			m.AddSuperGroup(PathForest, sg)
		}
	}
	m.InitializeLookups()
	return count
}

// SeedSimilar appends candidate-similar node groups to the similar forest.
// Each entry of groups becomes one super group identified as "similar_<k>",
// holding one singleton node group per member nid. Nids outside fc are
// skipped. It returns the number of super groups added.
func SeedSimilar(m *Manager, fc Blocks, groups [][]int) int {
	added := 0
	for _, nids := range groups {
		sg := m.NewSuperGroup(SuperInfo{ID: fmt.Sprintf("similar_%d", added)})
		members := 0
		for _, nid := range nids {
			if nid < 0 || nid >= fc.Size() {
				continue
			}
			start, end := fc.Bounds(nid)
			m.AddNode(m.AddNodeGroup(sg), NodeDef{NID: nid, Start: start, End: end})
			members++
		}
		if members == 0 {
			m.releaseSuper(sg)
			continue
		}
		m.AddSuperGroup(SimilarForest, sg)
		added++
	}
	return added
}
