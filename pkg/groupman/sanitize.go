package groupman

// Blocks is the minimal view of a function flowchart needed to complete or
// build a partition: block indices are nids, and each block has an address
// range.
type Blocks interface {
	Size() int
	Bounds(n int) (start, end uint64)
}

// Sanitize makes sure every block of fc is covered by the path forest of m.
// Each block index that [Manager.FindNodeIDLoc] cannot resolve is placed in
// its own singleton node group; all of these groups are collected in one
// fresh super group, marked synthetic, identified as [OrphanGroupID] and
// appended to the path forest.
//
// Sanitize returns the synthetic super group and true if any orphan was
// found. It does not rebuild the lookup indices; call
// [Manager.InitializeLookups] before querying the repaired partition.
func Sanitize(m *Manager, fc Blocks) (SuperRef, bool) {
	sg := m.NewSuperGroup(SuperInfo{ID: OrphanGroupID, Synthetic: true})
	orphans := 0
	for n := 0; n < fc.Size(); n++ {
		if _, ok := m.FindNodeIDLoc(n); ok {
			continue
		}
		start, end := fc.Bounds(n)
		g := m.AddNodeGroup(sg)
		m.AddNode(g, NodeDef{NID: n, Start: start, End: end})
		orphans++
	}
	if orphans == 0 {
		m.releaseSuper(sg)
		return SuperRef{}, false
	}
	return m.AddSuperGroup(PathForest, sg), true
}
