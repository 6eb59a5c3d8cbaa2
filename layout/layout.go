package layout

import (
	"fmt"
	"math"
)

// A4 page dimensions in points.
const (
	PageWidthA4  = 595.28
	PageHeightA4 = 841.89
)

// minRowProbeRatio is the readability floor for the extra-row probe: an
// additional row is accepted only if the resulting slide width is at least
// this fraction of the width-first slide width.
const minRowProbeRatio = 0.6

// Config holds the user-facing layout parameters. All dimensions are in
// points. Margin applies to the left, right, and bottom edges; TopMargin
// applies to the top edge only.
type Config struct {
	SlidesPerRow int
	Gap          float64
	Margin       float64
	TopMargin    float64
	PageWidth    float64
	PageHeight   float64
}

// DefaultConfig returns the default layout: two slides per row on an A4 page
// with a 10pt gap, 20pt side/bottom margins and no top margin.
func DefaultConfig() Config {
	return Config{
		SlidesPerRow: 2,
		Gap:          10,
		Margin:       20,
		TopMargin:    0,
		PageWidth:    PageWidthA4,
		PageHeight:   PageHeightA4,
	}
}

// availableWidth returns the horizontal space left for slides after margins
// and inter-slide gaps.
func (c Config) availableWidth() float64 {
	return c.PageWidth - 2*c.Margin - float64(c.SlidesPerRow-1)*c.Gap
}

// availableHeight returns the vertical space left for slides after margins.
func (c Config) availableHeight() float64 {
	return c.PageHeight - c.TopMargin - c.Margin
}

// InfeasibleError reports a configuration that leaves no usable space for
// slides. It is never retried internally; the caller must supply a valid
// configuration.
type InfeasibleError struct {
	Reason string
	Config Config
}

// Error implements the error interface.
func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("layout infeasible: %s", e.Reason)
}

// Plan is the computed geometry for one (aspect ratio, Config) pair. It is
// immutable once returned by NewPlan.
type Plan struct {
	Config      Config
	AspectRatio float64

	SlideWidth  float64
	SlideHeight float64

	RowsPerPage  int
	CellsPerPage int

	// XMargin is the left offset that horizontally centers the grid.
	XMargin float64
}

// NewPlan computes the slide cell geometry for the given slide aspect ratio
// (width/height) and configuration. It is pure and deterministic, and fails
// with *InfeasibleError when the configuration leaves no positive space.
func NewPlan(aspectRatio float64, cfg Config) (Plan, error) {
	if aspectRatio <= 0 {
		return Plan{}, &InfeasibleError{Reason: fmt.Sprintf("aspect ratio must be positive, got %g", aspectRatio), Config: cfg}
	}
	if cfg.SlidesPerRow < 1 {
		return Plan{}, &InfeasibleError{Reason: fmt.Sprintf("slides per row must be at least 1, got %d", cfg.SlidesPerRow), Config: cfg}
	}
	if cfg.Gap < 0 || cfg.Margin < 0 || cfg.TopMargin < 0 {
		return Plan{}, &InfeasibleError{Reason: "gap and margins must be non-negative", Config: cfg}
	}
	if cfg.PageWidth <= 0 || cfg.PageHeight <= 0 {
		return Plan{}, &InfeasibleError{Reason: "page dimensions must be positive", Config: cfg}
	}

	availW := cfg.availableWidth()
	availH := cfg.availableHeight()
	if availW <= 0 {
		return Plan{}, &InfeasibleError{Reason: "no horizontal space left for slides", Config: cfg}
	}
	if availH <= 0 {
		return Plan{}, &InfeasibleError{Reason: "no vertical space left for slides", Config: cfg}
	}

	perRow := float64(cfg.SlidesPerRow)

	// Phase 1: width-first fit.
	slideW := availW / perRow
	slideH := slideW / aspectRatio

	rows := int(math.Floor((availH + cfg.Gap) / (slideH + cfg.Gap)))

	if rows < 1 {
		// Height-dominant fallback: one row sized to the full available
		// height, unless that overflows the row horizontally.
		rows = 1
		slideH = availH
		slideW = slideH * aspectRatio
		if slideW*perRow+(perRow-1)*cfg.Gap > availW {
			slideW = availW / perRow
			slideH = slideW / aspectRatio
		}
	} else {
		// Phase 2: probe a single extra row. Accept it only if the slides
		// stay above the readability floor.
		probeH := (availH - float64(rows)*cfg.Gap) / float64(rows+1)
		probeW := probeH * aspectRatio
		if probeW >= slideW*minRowProbeRatio {
			rows++
			slideH = probeH
			slideW = probeW
		}
	}

	totalRowWidth := slideW*perRow + cfg.Gap*(perRow-1)

	return Plan{
		Config:       cfg,
		AspectRatio:  aspectRatio,
		SlideWidth:   slideW,
		SlideHeight:  slideH,
		RowsPerPage:  rows,
		CellsPerPage: cfg.SlidesPerRow * rows,
		XMargin:      (cfg.PageWidth - totalRowWidth) / 2,
	}, nil
}

// CellOrigin returns the top-left corner, in points from the page's top-left
// corner, of the cell at the given row and column.
func (p Plan) CellOrigin(row, col int) (x, y float64) {
	x = p.XMargin + float64(col)*(p.SlideWidth+p.Config.Gap)
	y = p.Config.TopMargin + float64(row)*(p.SlideHeight+p.Config.Gap)
	return x, y
}
