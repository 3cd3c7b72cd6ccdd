package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/graphslick/pkg/bbgroup"
	"github.com/matzehuels/graphslick/pkg/flowchart"
	"github.com/matzehuels/graphslick/pkg/groupman"
	"github.com/matzehuels/graphslick/pkg/observability"
)

// Loaded is the output of [Load]: a flowchart and a partition that covers
// every one of its blocks.
type Loaded struct {
	Flowchart *flowchart.Flowchart
	Groups    *groupman.Manager
	Orphans   groupman.SuperRef
	ReadStats bbgroup.ReadStats
}

// Load reads the flowchart and its partition and sanitizes the partition.
// The returned manager is indexed.
//
// The partition comes from, in order of preference: opts.Groups,
// opts.GroupsPath, the analyzer when opts.Analyze is set, or a one block per
// group identity partition.
func Load(ctx context.Context, opts Options) (*Loaded, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	hooks := observability.Pipeline()

	start := time.Now()
	hooks.OnLoadStart(ctx, opts.GroupsPath)
	out, err := load(opts)
	if err != nil {
		hooks.OnLoadComplete(ctx, opts.GroupsPath, 0, 0, time.Since(start), err)
		return nil, err
	}
	m := out.Groups
	hooks.OnLoadComplete(ctx, opts.GroupsPath,
		len(m.SuperGroups(groupman.PathForest)), m.NodeCount(groupman.PathForest),
		time.Since(start), nil)

	if out.ReadStats.Recovered() {
		logger.Warn("skipped malformed fragments",
			"fields", out.ReadStats.BadFields,
			"triples", out.ReadStats.BadTriples,
			"duplicates", out.ReadStats.DuplicateNIDs,
			"parens", out.ReadStats.UnmatchedParen)
	}

	if opts.Similar {
		if err := seedSimilar(out, opts); err != nil {
			return nil, err
		}
	}

	m.InitializeLookups()
	orphans, ok := groupman.Sanitize(m, out.Flowchart)
	m.InitializeLookups()
	count := 0
	if ok {
		out.Orphans = orphans
		count = len(m.Groups(orphans))
		logger.Info("sanitized partition", "orphans", count)
	}
	hooks.OnSanitize(ctx, count)

	return out, nil
}

func load(opts Options) (*Loaded, error) {
	out := &Loaded{Flowchart: opts.Flowchart, Groups: opts.Groups}
	if out.Flowchart == nil {
		fc, err := flowchart.ImportJSON(opts.FlowchartPath)
		if err != nil {
			return nil, err
		}
		out.Flowchart = fc
	}
	fc := out.Flowchart
	opts.Logger.Debug("loaded flowchart", "name", fc.Name, "blocks", fc.Size(), "edges", fc.EdgeCount())

	switch {
	case out.Groups != nil:
	case opts.GroupsPath != "":
		m, stats, err := bbgroup.ImportWithStats(opts.GroupsPath)
		if err != nil {
			return nil, err
		}
		out.Groups = m
		out.ReadStats = stats
		opts.Logger.Info("loaded partition",
			"file", opts.GroupsPath,
			"supergroups", stats.SuperGroups[groupman.PathForest],
			"similar", stats.SuperGroups[groupman.SimilarForest],
			"nodes", stats.NodeDefs)
	case opts.Analyze:
		result, err := opts.Analyzer.Analyze(fc)
		if err != nil {
			return nil, fmt.Errorf("analyze: %w", err)
		}
		out.Groups = groupman.New()
		placed := groupman.SeedPath(out.Groups, fc, result)
		opts.Logger.Info("derived partition", "groups", out.Groups.GroupCount(groupman.PathForest), "placed", placed)
	default:
		out.Groups = groupman.FromFlowchart(fc)
	}
	return out, nil
}

func seedSimilar(out *Loaded, opts Options) error {
	nids := make([]int, out.Flowchart.Size())
	for i := range nids {
		nids[i] = i
	}
	groups, err := opts.Finder.FindSimilar(out.Flowchart, nids)
	if err != nil {
		return fmt.Errorf("find similar: %w", err)
	}
	added := groupman.SeedSimilar(out.Groups, out.Flowchart, groups)
	opts.Logger.Debug("seeded similar forest", "supergroups", added)
	return nil
}
