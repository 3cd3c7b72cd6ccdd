package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphslick/pkg/groupman"
	"github.com/matzehuels/graphslick/pkg/pipeline"
)

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	groups  string
	output  string
	formats string
	noCache bool
	opts    pipeline.Options
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render <flowchart.json>",
		Short: "Render the collapsed graph of a flowchart",
		Long: `Render the collapsed graph of a flowchart.

Without --groups every block is its own node. With --groups the bbgroup
partition is loaded and repaired: blocks it does not cover are collected in
a synthetic "orphan_nodes" group and drawn dashed. --analyze derives the
partition from the natural loops of the flowchart instead.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyRenderConfig(cmd, &f)
			f.opts.FlowchartPath = args[0]
			f.opts.GroupsPath = f.groups
			return c.runRender(cmd.Context(), f)
		},
	}

	cmd.Flags().StringVarP(&f.groups, "groups", "g", "", "bbgroup partition file")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): dot, svg, pdf, png (comma-separated)")
	cmd.Flags().StringVarP(&f.opts.Mode, "mode", "m", "", "collapse mode: combined, single")
	cmd.Flags().BoolVar(&f.opts.Analyze, "analyze", false, "derive groups from natural loops when --groups is not set")
	cmd.Flags().BoolVar(&f.opts.ShowIDs, "show-ids", false, "prefix single-mode labels with block ids")
	cmd.Flags().BoolVar(&f.opts.IDsOnly, "ids-only", false, "label combined nodes with member ids only")
	cmd.Flags().StringVar(&f.opts.Title, "title", "", "graph title (default: flowchart name)")
	cmd.Flags().BoolVar(&f.opts.Tooltips, "tooltips", false, "attach full block text as SVG tooltips")
	cmd.Flags().Float64Var(&f.opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&f.opts.Refresh, "refresh", false, "ignore cached artifacts")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")

	return cmd
}

// applyRenderConfig fills every option the user did not set on the command
// line from the config file.
func (c *CLI) applyRenderConfig(cmd *cobra.Command, f *renderFlags) {
	flags := cmd.Flags()
	if !flags.Changed("mode") {
		f.opts.Mode = c.Config.Render.Mode
	}
	if !flags.Changed("show-ids") {
		f.opts.ShowIDs = c.Config.Display.ShowIDs
	}
	if !flags.Changed("ids-only") {
		f.opts.IDsOnly = c.Config.Display.IDsOnly
	}
	f.opts.Formats = parseFormats(f.formats)
	if len(f.opts.Formats) == 0 {
		f.opts.Formats = append([]string(nil), c.Config.Render.Formats...)
	}
}

func (c *CLI) runRender(ctx context.Context, f renderFlags) error {
	runner, err := c.newRunner(f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	f.opts.Logger = c.Logger
	result, err := runner.Execute(ctx, f.opts)
	if err != nil {
		return err
	}

	for _, format := range f.opts.Formats {
		path := artifactPath(f.output, f.opts.FlowchartPath, format, len(f.opts.Formats))
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	prog.done(fmt.Sprintf("Rendered %d file(s)", len(f.opts.Formats)))

	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit())
	if result.Stats.Orphans > 0 {
		printWarning("%d block(s) were not in any group and were placed in %s", result.Stats.Orphans, groupman.OrphanGroupID)
	}
	return nil
}
