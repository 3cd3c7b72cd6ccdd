package collapse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	gerrors "github.com/matzehuels/graphslick/pkg/errors"
	"github.com/matzehuels/graphslick/pkg/groupman"
)

// ErrUnresolvedNode is wrapped by [Combined] when a block has no node group.
var ErrUnresolvedNode = errors.New("block is not part of any node group")

// Single builds a graph with one node per block of cfg and one edge per
// flowchart edge.
func Single(cfg CFG, r Renderer, opts Options) *Graph {
	g := newGraph(cfg.Size())
	for n := 0; n < cfg.Size(); n++ {
		start, end := cfg.Bounds(n)
		text := r.Render(start, end)

		nd := &g.nodes[n]
		nd.Members = []int{n}
		nd.Hint = text
		nd.Text = text
		if opts.ShowIDs {
			nd.Text = fmt.Sprintf("ID(%d)\n", n) + text
		}
		g.used++

		for i := 0; i < cfg.NSucc(n); i++ {
			g.addEdge(n, cfg.Succ(n, i))
		}
	}
	return g
}

// Combined builds the collapsed graph of cfg under the path forest of m. The
// location index of m must be current.
func Combined(cfg CFG, m *groupman.Manager, r Renderer, opts Options) (*Graph, error) {
	b := builder{
		cfg:  cfg,
		m:    m,
		r:    r,
		opts: opts,
		g:    newGraph(m.GroupCount(groupman.PathForest)),
	}

	for n := 0; n < cfg.Size(); n++ {
		from, err := b.groupID(n)
		if err != nil {
			return nil, err
		}
		for i := 0; i < cfg.NSucc(n); i++ {
			to, err := b.groupID(cfg.Succ(n, i))
			if err != nil {
				return nil, err
			}
			if to == from {
				continue
			}
			b.g.addEdge(from, to)
		}
	}
	return b.g, nil
}

type builder struct {
	cfg  CFG
	m    *groupman.Manager
	r    Renderer
	opts Options
	g    *Graph
}

// groupID returns the node id of the group owning block n, materializing the
// node the first time the group is seen.
func (b *builder) groupID(n int) (int, error) {
	loc, ok := b.m.FindNodeIDLoc(n)
	if !ok {
		cause := fmt.Errorf("%w: %w", ErrUnresolvedNode, &gerrors.NodeError{NID: n})
		return -1, gerrors.Wrap(gerrors.ErrCodeUnresolvedNode, cause, "block %d has no group; sanitize the partition first", n)
	}
	if id, ok := b.g.groups[loc.Group]; ok {
		return id, nil
	}

	id := b.g.used
	b.g.used++
	b.g.groups[loc.Group] = id
	if id >= len(b.g.nodes) {
		b.g.nodes = append(b.g.nodes, Node{ID: id})
	}
	b.g.nodes[id] = b.node(id, loc)
	return id, nil
}

func (b *builder) node(id int, loc groupman.Location) Node {
	info, _ := b.m.Info(loc.Super)
	defs := b.m.GroupNodes(loc.Group)

	nd := Node{
		ID:        id,
		Members:   make([]int, len(defs)),
		Group:     info.DisplayName(),
		Synthetic: info.Synthetic,
	}

	var hint strings.Builder
	ids := make([]string, len(defs))
	for i, def := range defs {
		nd.Members[i] = def.NID
		ids[i] = strconv.Itoa(def.NID)
		hint.WriteString(b.render(def))
	}
	nd.Hint = hint.String()

	switch {
	case b.opts.IDsOnly:
		nd.Text = strings.Join(ids, ", ")
	case len(defs) > 1 && info.DisplayName() != "":
		nd.Text = info.DisplayName()
	default:
		nd.Text = nd.Hint
	}
	return nd
}

// render uses the flowchart bounds of a member block, falling back to the
// node def's own range for nids outside the flowchart.
func (b *builder) render(def groupman.NodeDef) string {
	start, end := def.Start, def.End
	if def.NID >= 0 && def.NID < b.cfg.Size() {
		start, end = b.cfg.Bounds(def.NID)
	}
	return b.r.Render(start, end)
}
