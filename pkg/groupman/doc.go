// Package groupman manages hierarchical partitions of a function's
// control-flow graph.
//
// # Overview
//
// A partition groups the basic blocks of one function into three nested
// levels:
//
//   - [NodeDef]: one basic block, identified by its node id (nid) and its
//     half-open address range [Start, End)
//   - node group: an ordered list of NodeDefs that collapse into one node
//     when the graph is drawn
//   - super group: a named cluster of node groups, such as one loop or one
//     matched pattern
//
// A [Manager] owns two independent forests of super groups, selected with
// the [Forest] tag: the [PathForest] drives rendering and collapsing, and the
// [SimilarForest] holds an alternate clustering of candidate-similar nodes.
//
// # Handles
//
// Node defs, node groups and super groups live in generation-checked arenas
// inside the Manager. Callers hold [NodeRef], [GroupRef] and [SuperRef]
// handles instead of pointers. Removing an object releases its slot and bumps
// the slot generation, so a stale handle (including one cached in the
// location index) resolves to "absent" instead of to a recycled object.
//
// # Lookups
//
// The location index maps a nid to its owning super group, node group and
// node def. It is a caller-managed cache: structural mutations
// ([Manager.AddSuperGroup], [Manager.RemoveSuperGroup],
// [Manager.MoveToOwnGroup], [Manager.PromoteGroup], [Sanitize]) do not
// rebuild it, so several mutations can be batched before one call to
// [Manager.InitializeLookups]. [Manager.CombineGroups] is the only operation
// that reindexes on its own.
//
//	m := groupman.FromFlowchart(fc)
//	loc, ok := m.FindNodeIDLoc(3)
//	if ok {
//	    fmt.Println(m.Info(loc.Super))
//	}
//
// # Sanitizing
//
// Stored partitions are often produced by external matchers that skip
// unreachable or never-revisited blocks. [Sanitize] completes such a
// partition against the real flowchart by placing every uncovered block in a
// singleton node group inside one synthetic super group named
// [OrphanGroupID].
//
// # Concurrency
//
// Manager instances are not safe for concurrent use. All operations run to
// completion on the calling goroutine.
package groupman
