package groupman

import "fmt"

// OrphanGroupID is the identifier [Sanitize] gives the synthetic super group
// that collects blocks missing from a loaded partition.
const OrphanGroupID = "orphan_nodes"

// Forest selects one of the two super group collections held by a Manager.
type Forest int

const (
	// PathForest is the primary partition used for rendering and combining.
	PathForest Forest = iota
	// SimilarForest holds an alternate clustering of candidate-similar nodes.
	// It never takes part in lookups or collapsing.
	SimilarForest
)

// String returns the section name used for the forest in bbgroup files.
func (f Forest) String() string {
	switch f {
	case PathForest:
		return "PATHINFO"
	case SimilarForest:
		return "SIMILARINFO"
	default:
		return fmt.Sprintf("Forest(%d)", int(f))
	}
}

func (f Forest) valid() bool { return f == PathForest || f == SimilarForest }

// NodeDef identifies one basic block: its node id and its half-open address
// range [Start, End).
type NodeDef struct {
	NID   int
	Start uint64
	End   uint64
}

// Contains reports whether addr falls inside [Start, End).
func (nd NodeDef) Contains(addr uint64) bool {
	return nd.Start <= addr && addr < nd.End
}

// SuperInfo holds the display and bookkeeping attributes of a super group.
type SuperInfo struct {
	ID         string // Identifier (e.g. a pattern or loop id)
	Name       string // Optional display name
	Synthetic  bool   // Fabricated by Sanitize rather than loaded
	Selected   bool
	Grouped    bool
	InstCount  uint64 // Instance count reported by the matcher
	MatchCount uint64 // Match count reported by the matcher
}

// DisplayName returns Name, falling back to ID.
func (si SuperInfo) DisplayName() string {
	if si.Name != "" {
		return si.Name
	}
	return si.ID
}

// NodeRef is a generation-checked handle to a node def owned by a Manager.
// The zero value never resolves.
type NodeRef struct {
	slot int
	gen  uint32
}

// IsZero reports whether r is the zero handle.
func (r NodeRef) IsZero() bool { return r.gen == 0 }

// GroupRef is a generation-checked handle to a node group owned by a Manager.
// The zero value never resolves.
type GroupRef struct {
	slot int
	gen  uint32
}

// IsZero reports whether r is the zero handle.
func (r GroupRef) IsZero() bool { return r.gen == 0 }

// SuperRef is a generation-checked handle to a super group owned by a Manager.
// The zero value never resolves.
type SuperRef struct {
	slot int
	gen  uint32
}

// IsZero reports whether r is the zero handle.
func (r SuperRef) IsZero() bool { return r.gen == 0 }

// Location records where a nid lives in the path forest.
type Location struct {
	Super SuperRef
	Group GroupRef
	Node  NodeRef
	Def   NodeDef
}

type nodeEntry struct {
	def   NodeDef
	group GroupRef
}

type groupEntry struct {
	nodes []NodeRef
	super SuperRef
}

type superEntry struct {
	info     SuperInfo
	groups   []GroupRef
	forest   Forest
	attached bool
}
