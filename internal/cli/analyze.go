package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphslick/pkg/groupman"
	"github.com/matzehuels/graphslick/pkg/pipeline"
)

// analyzeCommand derives a partition from the structure of a flowchart.
func (c *CLI) analyzeCommand() *cobra.Command {
	var output string
	var similar bool

	cmd := &cobra.Command{
		Use:   "analyze <flowchart.json>",
		Short: "Derive a partition from the natural loops of a flowchart",
		Long: `Derive a partition from the natural loops of a flowchart.

Every natural loop becomes a super group holding its body blocks. Blocks
outside every loop are collected in "orphan_nodes". With --similar, blocks
with identical instruction text are also grouped in the similar forest.

The partition is written in bbgroup format to --output, or to the
flowchart path with a .bbgroup extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = basePath("", args[0]) + ".bbgroup"
			}

			prog := newProgress(c.Logger)
			loaded, err := pipeline.Load(cmd.Context(), pipeline.Options{
				FlowchartPath: args[0],
				Analyze:       true,
				Similar:       similar,
				Logger:        c.Logger,
			})
			if err != nil {
				return err
			}
			if err := savePartition(loaded.Groups, output); err != nil {
				return err
			}
			prog.done("Analyzed flowchart")

			m := loaded.Groups
			printFile(output)
			printDetail("%d super groups, %d groups, %d similar sets",
				len(m.SuperGroups(groupman.PathForest)),
				m.GroupCount(groupman.PathForest),
				len(m.SuperGroups(groupman.SimilarForest)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output bbgroup file")
	cmd.Flags().BoolVar(&similar, "similar", false, "also group blocks with identical text")
	return cmd
}
