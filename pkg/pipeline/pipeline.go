// Package pipeline runs the load → sanitize → build → render pipeline.
//
// The CLI and tests share this package so that every entry point loads,
// repairs and draws a partition the same way.
//
// # Stages
//
//  1. Load: read the flowchart JSON and the bbgroup partition, or derive a
//     partition from the flowchart (identity or loop analysis)
//  2. Sanitize: place blocks the partition misses in the orphan group
//  3. Build: collapse the flowchart into a single or combined graph
//  4. Render: emit DOT and convert it to SVG, PDF or PNG
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    FlowchartPath: "sub_401000.json",
//	    GroupsPath:    "sub_401000.bbgroup",
//	    Formats:       []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphslick/pkg/analysis"
	"github.com/matzehuels/graphslick/pkg/bbgroup"
	"github.com/matzehuels/graphslick/pkg/cache"
	"github.com/matzehuels/graphslick/pkg/collapse"
	"github.com/matzehuels/graphslick/pkg/errors"
	"github.com/matzehuels/graphslick/pkg/flowchart"
	"github.com/matzehuels/graphslick/pkg/groupman"
)

// Collapse modes.
const (
	ModeSingle   = "single"
	ModeCombined = "combined"
)

// Format constants for output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// Formats lists every supported output format.
var Formats = []string{FormatDOT, FormatSVG, FormatPDF, FormatPNG}

const (
	// DefaultMode is the collapse mode used when none is set.
	DefaultMode = ModeCombined

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0
)

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	// Load options
	FlowchartPath string
	GroupsPath    string
	Analyze       bool // derive the partition from natural loops when GroupsPath is empty
	Similar       bool // seed the similar forest from block fingerprints

	// Build options
	Mode    string
	ShowIDs bool
	IDsOnly bool

	// Render options
	Formats  []string
	Scale    float64
	Title    string
	Tooltips bool
	Refresh  bool // ignore cached artifacts

	// Runtime options. A preloaded Flowchart or Groups skips the matching
	// file read; Groups is sanitized in place.
	Flowchart *flowchart.Flowchart
	Groups    *groupman.Manager
	Analyzer  analysis.Analyzer
	Finder    analysis.SimilarityFinder
	Logger    *log.Logger

	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Flowchart == nil && o.FlowchartPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "flowchart is required")
	}
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if err := errors.ValidateMode(o.Mode); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Analyzer == nil {
		o.Analyzer = analysis.LoopAnalyzer{}
	}
	if o.Finder == nil {
		o.Finder = analysis.FingerprintFinder{}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	return errors.ValidateFormats(formats, Formats...)
}

// BuildOptions returns the collapse options for this run.
func (o *Options) BuildOptions() collapse.Options {
	return collapse.Options{ShowIDs: o.ShowIDs, IDsOnly: o.IDsOnly}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	Flowchart *flowchart.Flowchart
	Groups    *groupman.Manager
	Graph     *collapse.Graph

	// Orphans is the synthetic super group created by the sanitizer, or
	// the zero handle.
	Orphans groupman.SuperRef

	// ReadStats describes fragments skipped while reading GroupsPath.
	ReadStats bbgroup.ReadStats

	// DOT is the Graphviz source every artifact is rendered from.
	DOT string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Blocks      int
	SuperGroups int
	Groups      int
	Orphans     int
	NodeCount   int
	EdgeCount   int
	LoadTime    time.Duration
	BuildTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for rendered artifacts.
type CacheInfo struct {
	Hits   []string // formats served from cache
	Misses []string // formats rendered in this run
}

// RenderHit reports whether every artifact came from the cache.
func (c CacheInfo) RenderHit() bool {
	return len(c.Misses) == 0 && len(c.Hits) > 0
}
