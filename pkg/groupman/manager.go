package groupman

import "slices"

// Manager owns both super group forests, the arenas backing every node def,
// node group and super group, and the two derived lookup indices.
//
// The zero value is not usable - use [New] (or [FromFlowchart]) instead.
// Manager is not safe for concurrent use.
type Manager struct {
	filename string

	nodes  arena[nodeEntry]
	groups arena[groupEntry]
	supers arena[superEntry]

	forests [2][]SuperRef

	locs     map[int]Location // nid -> location, path forest only
	allNodes []NodeRef        // path forest node defs in creation order
}

// New creates an empty Manager.
func New() *Manager {
	return &Manager{locs: make(map[int]Location)}
}

// SourceFile returns the name of the file the partition was loaded from,
// or "" if it was built in memory.
func (m *Manager) SourceFile() string { return m.filename }

// SetSourceFile records the file the partition was loaded from.
func (m *Manager) SetSourceFile(name string) { m.filename = name }

// Clear destroys both forests and both indices, returning the Manager to its
// empty state. Handles issued before Clear never resolve again. The source
// file name is kept.
func (m *Manager) Clear() {
	m.nodes.reset()
	m.groups.reset()
	m.supers.reset()
	m.forests = [2][]SuperRef{}
	m.locs = make(map[int]Location)
	m.allNodes = nil
}

// =============================================================================
// Structure
// =============================================================================

// NewSuperGroup creates a super group that is not yet part of any forest.
// Attach it with [Manager.AddSuperGroup].
func (m *Manager) NewSuperGroup(info SuperInfo) SuperRef {
	i, gen := m.supers.alloc(superEntry{info: info})
	return SuperRef{slot: i, gen: gen}
}

// AddSuperGroup appends sg to forest f and returns it. If sg is the zero
// handle a new, empty super group is created first. A super group that is
// already attached to a forest is returned unchanged. The zero handle is
// returned if f is unknown or sg does not resolve.
//
// AddSuperGroup does not update the location index.
func (m *Manager) AddSuperGroup(f Forest, sg SuperRef) SuperRef {
	if !f.valid() {
		return SuperRef{}
	}
	if sg.IsZero() {
		sg = m.NewSuperGroup(SuperInfo{})
	}
	e, ok := m.super(sg)
	if !ok {
		return SuperRef{}
	}
	if e.attached {
		return sg
	}
	e.attached = true
	e.forest = f
	m.forests[f] = append(m.forests[f], sg)
	if f == PathForest {
		for _, g := range e.groups {
			if ge, ok := m.group(g); ok {
				m.allNodes = append(m.allNodes, ge.nodes...)
			}
		}
	}
	return sg
}

// RemoveSuperGroup removes sg from forest f and releases it together with
// every node group and node def it owns. It reports false, and does nothing,
// if sg is not part of f.
//
// RemoveSuperGroup does not update the location index; stale entries for
// the removed nodes resolve as absent.
func (m *Manager) RemoveSuperGroup(f Forest, sg SuperRef) bool {
	if !f.valid() {
		return false
	}
	i := slices.Index(m.forests[f], sg)
	if i < 0 {
		return false
	}
	m.forests[f] = slices.Delete(m.forests[f], i, i+1)
	m.releaseSuper(sg)
	return true
}

// AddNodeGroup appends a new, empty node group to sg. It returns the zero
// handle if sg does not resolve.
func (m *Manager) AddNodeGroup(sg SuperRef) GroupRef {
	e, ok := m.super(sg)
	if !ok {
		return GroupRef{}
	}
	i, gen := m.groups.alloc(groupEntry{super: sg})
	g := GroupRef{slot: i, gen: gen}
	e.groups = append(e.groups, g)
	return g
}

// AddNode appends a node def to g. Node defs added to a group of the path
// forest are registered in the all-nodes index right away; they become
// visible to [Manager.FindNodeIDLoc] after the next
// [Manager.InitializeLookups]. It returns the zero handle if g does not
// resolve.
func (m *Manager) AddNode(g GroupRef, nd NodeDef) NodeRef {
	ge, ok := m.group(g)
	if !ok {
		return NodeRef{}
	}
	i, gen := m.nodes.alloc(nodeEntry{def: nd, group: g})
	r := NodeRef{slot: i, gen: gen}
	ge.nodes = append(ge.nodes, r)
	if se, ok := m.super(ge.super); ok && se.attached && se.forest == PathForest {
		m.allNodes = append(m.allNodes, r)
	}
	return r
}

// =============================================================================
// Queries
// =============================================================================

// SuperGroups returns the super groups of forest f in order.
func (m *Manager) SuperGroups(f Forest) []SuperRef {
	if !f.valid() {
		return nil
	}
	return slices.Clone(m.forests[f])
}

// Groups returns the node groups of sg in order.
func (m *Manager) Groups(sg SuperRef) []GroupRef {
	e, ok := m.super(sg)
	if !ok {
		return nil
	}
	return slices.Clone(e.groups)
}

// Nodes returns the node def handles of g in order.
func (m *Manager) Nodes(g GroupRef) []NodeRef {
	e, ok := m.group(g)
	if !ok {
		return nil
	}
	return slices.Clone(e.nodes)
}

// Node returns the node def behind r.
func (m *Manager) Node(r NodeRef) (NodeDef, bool) {
	e, ok := m.nodes.get(r.slot, r.gen)
	if !ok {
		return NodeDef{}, false
	}
	return e.def, true
}

// GroupNodes returns copies of the node defs of g in order.
func (m *Manager) GroupNodes(g GroupRef) []NodeDef {
	e, ok := m.group(g)
	if !ok {
		return nil
	}
	defs := make([]NodeDef, 0, len(e.nodes))
	for _, r := range e.nodes {
		if nd, ok := m.Node(r); ok {
			defs = append(defs, nd)
		}
	}
	return defs
}

// GroupNIDs returns the nids of g in order.
func (m *Manager) GroupNIDs(g GroupRef) []int {
	defs := m.GroupNodes(g)
	nids := make([]int, len(defs))
	for i, nd := range defs {
		nids[i] = nd.NID
	}
	return nids
}

// GroupSize returns the number of node defs in g, or 0 if g does not resolve.
func (m *Manager) GroupSize(g GroupRef) int {
	e, ok := m.group(g)
	if !ok {
		return 0
	}
	return len(e.nodes)
}

// Info returns the attributes of sg.
func (m *Manager) Info(sg SuperRef) (SuperInfo, bool) {
	e, ok := m.super(sg)
	if !ok {
		return SuperInfo{}, false
	}
	return e.info, true
}

// SetInfo replaces the attributes of sg. It reports false if sg does not
// resolve.
func (m *Manager) SetInfo(sg SuperRef, info SuperInfo) bool {
	e, ok := m.super(sg)
	if !ok {
		return false
	}
	e.info = info
	return true
}

// OwnerOf returns the super group that owns g.
func (m *Manager) OwnerOf(g GroupRef) (SuperRef, bool) {
	e, ok := m.group(g)
	if !ok {
		return SuperRef{}, false
	}
	return e.super, true
}

// GroupOf returns the node group that owns r.
func (m *Manager) GroupOf(r NodeRef) (GroupRef, bool) {
	e, ok := m.nodes.get(r.slot, r.gen)
	if !ok {
		return GroupRef{}, false
	}
	return e.group, true
}

// ForestOf returns the forest sg is attached to. It reports false for
// detached or released super groups.
func (m *Manager) ForestOf(sg SuperRef) (Forest, bool) {
	e, ok := m.super(sg)
	if !ok || !e.attached {
		return 0, false
	}
	return e.forest, true
}

// GroupCount returns the total number of node groups across every super
// group of forest f.
func (m *Manager) GroupCount(f Forest) int {
	n := 0
	for _, sg := range m.SuperGroups(f) {
		if e, ok := m.super(sg); ok {
			n += len(e.groups)
		}
	}
	return n
}

// NodeCount returns the total number of node defs in forest f.
func (m *Manager) NodeCount(f Forest) int {
	n := 0
	m.Walk(f, func(SuperRef, GroupRef, NodeRef, NodeDef) bool {
		n++
		return true
	})
	return n
}

// Walk calls fn for every node def of forest f in forest order. Walking
// stops early when fn returns false.
func (m *Manager) Walk(f Forest, fn func(sg SuperRef, g GroupRef, r NodeRef, nd NodeDef) bool) {
	for _, sg := range m.SuperGroups(f) {
		se, ok := m.super(sg)
		if !ok {
			continue
		}
		for _, g := range se.groups {
			ge, ok := m.group(g)
			if !ok {
				continue
			}
			for _, r := range ge.nodes {
				ne, ok := m.nodes.get(r.slot, r.gen)
				if !ok {
					continue
				}
				if !fn(sg, g, r, ne.def) {
					return
				}
			}
		}
	}
}

// FirstNode returns the first node def of the first node group of the first
// super group in the path forest. It reports false if any of those levels is
// empty. It is used to work out which function a partition describes.
func (m *Manager) FirstNode() (NodeDef, bool) {
	paths := m.forests[PathForest]
	if len(paths) == 0 {
		return NodeDef{}, false
	}
	se, ok := m.super(paths[0])
	if !ok || len(se.groups) == 0 {
		return NodeDef{}, false
	}
	ge, ok := m.group(se.groups[0])
	if !ok || len(ge.nodes) == 0 {
		return NodeDef{}, false
	}
	return m.Node(ge.nodes[0])
}

// =============================================================================
// Lookups
// =============================================================================

// InitializeLookups rebuilds the location index and the all-nodes index by
// walking the path forest. It must be called after structural mutations
// before lookups are trusted.
func (m *Manager) InitializeLookups() {
	m.locs = make(map[int]Location, len(m.allNodes))
	m.allNodes = m.allNodes[:0]
	m.Walk(PathForest, func(sg SuperRef, g GroupRef, r NodeRef, nd NodeDef) bool {
		m.locs[nd.NID] = Location{Super: sg, Group: g, Node: r, Def: nd}
		m.allNodes = append(m.allNodes, r)
		return true
	})
}

// FindNodeIDLoc returns the indexed location of nid. It reports false if nid
// is not indexed - either absent, added since the last
// [Manager.InitializeLookups], or released since then.
func (m *Manager) FindNodeIDLoc(nid int) (Location, bool) {
	loc, ok := m.locs[nid]
	if !ok {
		return Location{}, false
	}
	if _, ok := m.nodes.get(loc.Node.slot, loc.Node.gen); !ok {
		return Location{}, false
	}
	if _, ok := m.group(loc.Group); !ok {
		return Location{}, false
	}
	if _, ok := m.super(loc.Super); !ok {
		return Location{}, false
	}
	return loc, true
}

// FindNodeLoc returns the location of the node def whose address range
// contains addr. The all-nodes index is scanned linearly; if ranges overlap
// the first registered node def wins.
//
// The match is resolved through the location index. If the first node def
// containing addr was added after the last [Manager.InitializeLookups], the
// lookup reports false without trying later candidates, so reindex after
// structural mutations before calling FindNodeLoc.
func (m *Manager) FindNodeLoc(addr uint64) (Location, bool) {
	for _, r := range m.allNodes {
		ne, ok := m.nodes.get(r.slot, r.gen)
		if !ok {
			continue
		}
		if ne.def.Contains(addr) {
			return m.FindNodeIDLoc(ne.def.NID)
		}
	}
	return Location{}, false
}

// =============================================================================
// Internals
// =============================================================================

func (m *Manager) super(r SuperRef) (*superEntry, bool) { return m.supers.get(r.slot, r.gen) }

func (m *Manager) group(r GroupRef) (*groupEntry, bool) { return m.groups.get(r.slot, r.gen) }

func (m *Manager) releaseSuper(sg SuperRef) {
	e, ok := m.super(sg)
	if !ok {
		return
	}
	for _, g := range e.groups {
		m.releaseGroup(g)
	}
	m.supers.release(sg.slot, sg.gen)
}

func (m *Manager) releaseGroup(g GroupRef) {
	e, ok := m.group(g)
	if !ok {
		return
	}
	for _, r := range e.nodes {
		m.nodes.release(r.slot, r.gen)
	}
	m.groups.release(g.slot, g.gen)
}
