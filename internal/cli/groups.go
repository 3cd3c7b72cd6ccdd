package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphslick/pkg/bbgroup"
	"github.com/matzehuels/graphslick/pkg/errors"
	"github.com/matzehuels/graphslick/pkg/groupman"
	"github.com/matzehuels/graphslick/pkg/pipeline"
)

// =============================================================================
// Partition I/O
// =============================================================================

// loadPartition reads a bbgroup file and reports skipped fragments.
func (c *CLI) loadPartition(path string) (*groupman.Manager, error) {
	m, stats, err := bbgroup.ImportWithStats(path)
	if err != nil {
		return nil, err
	}
	if stats.Recovered() {
		c.Logger.Warn("skipped malformed fragments",
			"fields", stats.BadFields,
			"triples", stats.BadTriples,
			"duplicates", stats.DuplicateNIDs,
			"parens", stats.UnmatchedParen)
	}
	c.Logger.Debug("loaded partition", "file", path,
		"supergroups", stats.SuperGroups[groupman.PathForest],
		"similar", stats.SuperGroups[groupman.SimilarForest],
		"nodes", stats.NodeDefs)
	return m, nil
}

// savePartition writes both forests of m to path. The file is written next
// to its destination and renamed into place, so a failed write leaves the
// previous contents intact.
func savePartition(m *groupman.Manager, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "create %s", path)
	}
	defer os.Remove(tmp.Name())

	if err := bbgroup.WriteForests(tmp, m, groupman.PathForest, groupman.SimilarForest); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "close %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "replace %s", path)
	}
	return nil
}

// parseNIDs converts block id arguments.
func parseNIDs(args []string) ([]int, error) {
	nids := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n < 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid block id: %q", a)
		}
		nids[i] = n
	}
	return nids, nil
}

// parseAddr accepts hexadecimal addresses with or without a 0x prefix.
func parseAddr(s string) (uint64, error) {
	v := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	addr, err := strconv.ParseUint(v, 16, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid address: %q", s)
	}
	return addr, nil
}

func locateNID(m *groupman.Manager, nid int) (groupman.Location, error) {
	loc, ok := m.FindNodeIDLoc(nid)
	if !ok {
		return groupman.Location{}, errors.New(errors.ErrCodeNodeNotFound, "block %d is not in any group", nid)
	}
	return loc, nil
}

// =============================================================================
// sanitize
// =============================================================================

func (c *CLI) sanitizeCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "sanitize <flowchart.json> <file.bbgroup>",
		Short: "Add every ungrouped block of a flowchart to a partition",
		Long: `Add every ungrouped block of a flowchart to a partition.

Blocks of the flowchart that no node group covers are collected in a
synthetic "orphan_nodes" super group, one block per group. The repaired
partition replaces the input file unless --output is given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = args[1]
			}
			prog := newProgress(c.Logger)
			loaded, err := pipeline.Load(cmd.Context(), pipeline.Options{
				FlowchartPath: args[0],
				GroupsPath:    args[1],
				Logger:        c.Logger,
			})
			if err != nil {
				return err
			}
			if err := savePartition(loaded.Groups, output); err != nil {
				return err
			}
			prog.done("Sanitized partition")

			printFile(output)
			if loaded.Orphans.IsZero() {
				printSuccess("Partition already covers all %d blocks", loaded.Flowchart.Size())
				return nil
			}
			printWarning("%d block(s) added to %s", len(loaded.Groups.Groups(loaded.Orphans)), groupman.OrphanGroupID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite input)")
	return cmd
}

// =============================================================================
// show / browse / locate
// =============================================================================

func (c *CLI) showCommand() *cobra.Command {
	var similar, ranges bool

	cmd := &cobra.Command{
		Use:   "show <file.bbgroup>",
		Short: "Print a partition as a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.loadPartition(args[0])
			if err != nil {
				return err
			}
			fmt.Println(partitionTree(m, groupman.PathForest, ranges))
			if similar {
				fmt.Println()
				fmt.Println(partitionTree(m, groupman.SimilarForest, ranges))
			}
			printDetail("%d super groups, %d groups, %d blocks",
				len(m.SuperGroups(groupman.PathForest)),
				m.GroupCount(groupman.PathForest),
				m.NodeCount(groupman.PathForest))
			return nil
		},
	}

	cmd.Flags().BoolVar(&similar, "similar", false, "also print the similar forest")
	cmd.Flags().BoolVar(&ranges, "ranges", false, "print block address ranges")
	return cmd
}

func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <file.bbgroup>",
		Short: "Interactively browse a partition",
		Long: `Interactively browse a partition.

Use up/down (or j/k) to move, enter to expand a super group or pick a node
group, and tab to switch between the path and similar forests.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.loadPartition(args[0])
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(NewGroupBrowserModel(m), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			sel := final.(GroupBrowserModel).Selected
			if sel.IsZero() {
				return nil
			}

			owner, _ := m.OwnerOf(sel)
			printKeyValue("Super group", superLabel(m, owner))
			printKeyValue("Members", groupLabel(m, sel, false))
			for _, nd := range m.GroupNodes(sel) {
				printDetail("%s", bbgroup.FormatNode(nd))
			}
			return nil
		},
	}
}

func (c *CLI) locateCommand() *cobra.Command {
	var nid int
	var addr string

	cmd := &cobra.Command{
		Use:   "locate <file.bbgroup>",
		Short: "Find the group that holds a block or address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			byAddr := cmd.Flags().Changed("addr")
			if byAddr == cmd.Flags().Changed("nid") {
				return errors.New(errors.ErrCodeInvalidInput, "exactly one of --nid and --addr is required")
			}

			m, err := c.loadPartition(args[0])
			if err != nil {
				return err
			}

			var loc groupman.Location
			if byAddr {
				a, err := parseAddr(addr)
				if err != nil {
					return err
				}
				var ok bool
				if loc, ok = m.FindNodeLoc(a); !ok {
					return errors.New(errors.ErrCodeNodeNotFound, "no block contains %#x", a)
				}
			} else if loc, err = locateNID(m, nid); err != nil {
				return err
			}

			printKeyValue("Block", bbgroup.FormatNode(loc.Def))
			printKeyValue("Super group", superLabel(m, loc.Super))
			printKeyValue("Group", groupLabel(m, loc.Group, false))
			return nil
		},
	}

	cmd.Flags().IntVar(&nid, "nid", 0, "block id")
	cmd.Flags().StringVar(&addr, "addr", "", "instruction address (hex)")
	return cmd
}

// =============================================================================
// combine / split / promote
// =============================================================================

// editCommand builds a command that loads a partition, applies edit to the
// blocks named on the command line, and writes the partition back.
func (c *CLI) editCommand(use, short string, args cobra.PositionalArgs, edit func(*groupman.Manager, []groupman.Location) (string, error)) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			nids, err := parseNIDs(args[1:])
			if err != nil {
				return err
			}
			m, err := c.loadPartition(args[0])
			if err != nil {
				return err
			}

			locs := make([]groupman.Location, len(nids))
			for i, nid := range nids {
				if locs[i], err = locateNID(m, nid); err != nil {
					return err
				}
			}

			msg, err := edit(m, locs)
			if err != nil {
				return err
			}
			m.InitializeLookups()

			if output == "" {
				output = args[0]
			}
			if err := savePartition(m, output); err != nil {
				return err
			}
			printSuccess("%s", msg)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite input)")
	return cmd
}

func (c *CLI) combineCommand() *cobra.Command {
	return c.editCommand(
		"combine <file.bbgroup> <nid> <nid>...",
		"Merge the groups holding the given blocks into one",
		cobra.MinimumNArgs(3),
		func(m *groupman.Manager, locs []groupman.Location) (string, error) {
			groups := make([]groupman.GroupRef, len(locs))
			for i, loc := range locs {
				groups[i] = loc.Group
			}
			dst, ok := m.CombineGroups(groups)
			if !ok {
				return "", errors.New(errors.ErrCodeInternal, "no group to combine")
			}
			return "Combined into " + groupLabel(m, dst, false), nil
		})
}

func (c *CLI) splitCommand() *cobra.Command {
	return c.editCommand(
		"split <file.bbgroup> <nid>",
		"Move a block into a group of its own",
		cobra.ExactArgs(2),
		func(m *groupman.Manager, locs []groupman.Location) (string, error) {
			nid := locs[0].Def.NID
			if _, ok := m.MoveToOwnGroup(locs[0].Node); !ok {
				return fmt.Sprintf("Block %d is already alone in its group", nid), nil
			}
			return fmt.Sprintf("Moved block %d to its own group", nid), nil
		})
}

func (c *CLI) promoteCommand() *cobra.Command {
	return c.editCommand(
		"promote <file.bbgroup> <nid>",
		"Move the group holding a block into a super group of its own",
		cobra.ExactArgs(2),
		func(m *groupman.Manager, locs []groupman.Location) (string, error) {
			label := groupLabel(m, locs[0].Group, false)
			if _, ok := m.PromoteGroup(locs[0].Group); !ok {
				return fmt.Sprintf("Group %s is already alone in its super group", label), nil
			}
			return fmt.Sprintf("Promoted group %s", label), nil
		})
}
