package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/graphslick/pkg/collapse"
	"github.com/matzehuels/graphslick/pkg/flowchart"
	"github.com/matzehuels/graphslick/pkg/groupman"
	"github.com/matzehuels/graphslick/pkg/observability"
)

// Build collapses fc under m according to opts.Mode. Block text comes from
// the flowchart itself.
func Build(ctx context.Context, fc *flowchart.Flowchart, m *groupman.Manager, opts Options) (*collapse.Graph, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	r := flowchart.NewTextRenderer(fc)

	var (
		g   *collapse.Graph
		err error
	)
	if opts.Mode == ModeSingle {
		g = collapse.Single(fc, r, opts.BuildOptions())
	} else {
		g, err = collapse.Combined(fc, m, r, opts.BuildOptions())
	}

	if err != nil {
		observability.Pipeline().OnBuildComplete(ctx, opts.Mode, 0, 0, time.Since(start), err)
		return nil, err
	}
	if unused := g.NodeCount() - g.Used(); unused > 0 {
		opts.Logger.Debug("node groups without flowchart blocks", "unused", unused)
	}
	observability.Pipeline().OnBuildComplete(ctx, opts.Mode, g.Used(), g.EdgeCount(), time.Since(start), nil)
	return g, nil
}
