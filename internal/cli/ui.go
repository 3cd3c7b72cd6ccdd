package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/matzehuels/graphslick/pkg/bbgroup"
	"github.com/matzehuels/graphslick/pkg/groupman"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleSynthetic = lipgloss.NewStyle().Foreground(colorYellow).Italic(true)
	styleSelected  = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printStats prints graph statistics on a single line.
func printStats(nodeCount, edgeCount int, cached bool) {
	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d nodes", nodeCount)),
		StyleDim.Render(fmt.Sprintf("%d edges", edgeCount)),
		statusStyle.Render(status),
	}
	fmt.Println("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

// =============================================================================
// Partition Output
// =============================================================================

// superLabel renders the heading of one super group.
func superLabel(m *groupman.Manager, sg groupman.SuperRef) string {
	info, _ := m.Info(sg)
	name := info.DisplayName()
	if name == "" {
		name = "(unnamed)"
	}

	var tags []string
	if info.InstCount != 0 {
		tags = append(tags, fmt.Sprintf("IC %x", info.InstCount))
	}
	if info.MatchCount != 0 {
		tags = append(tags, fmt.Sprintf("MC %x", info.MatchCount))
	}
	if info.Grouped {
		tags = append(tags, "grouped")
	}

	label := StyleValue.Render(name)
	switch {
	case info.Synthetic:
		label = styleSynthetic.Render(name)
	case info.Selected:
		label = styleSelected.Render(name)
	}
	if len(tags) > 0 {
		label += " " + StyleDim.Render("["+strings.Join(tags, ", ")+"]")
	}
	return label
}

// groupLabel renders the members of one node group, e.g. "(0, 1, 2)".
func groupLabel(m *groupman.Manager, g groupman.GroupRef, showRanges bool) string {
	defs := m.GroupNodes(g)
	parts := make([]string, len(defs))
	for i, nd := range defs {
		if showRanges {
			parts[i] = bbgroup.FormatNode(nd)
		} else {
			parts[i] = strconv.Itoa(nd.NID)
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// partitionTree renders one forest as a tree of super groups and node
// groups.
func partitionTree(m *groupman.Manager, f groupman.Forest, showRanges bool) *tree.Tree {
	root := tree.Root(StyleTitle.Render(f.String())).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(StyleDim)
	for _, sg := range m.SuperGroups(f) {
		sub := tree.Root(superLabel(m, sg)).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(StyleDim)
		for _, g := range m.Groups(sg) {
			sub.Child(StyleNumber.Render(groupLabel(m, g, showRanges)))
		}
		root.Child(sub)
	}
	return root
}
