package assemble

import (
	"github.com/tsawler/handout/compose"
	"github.com/tsawler/handout/dedup"
	"github.com/tsawler/handout/layout"
)

// Options configure document assembly.
type Options struct {
	// Layout is the page grid configuration.
	Layout layout.Config

	// RTL mirrors the column order on every page.
	RTL bool

	// FilterProgressive removes progressive build slides per deck before
	// pagination.
	FilterProgressive bool

	// Packed concatenates all decks into one continuous slide stream
	// instead of starting each deck on a fresh page.
	Packed bool

	// Spacer inserts a blank slide between decks in packed mode.
	Spacer bool

	// Upscale is the compositing resolution multiplier.
	Upscale float64

	// Dedup holds the progressive-detection thresholds used when
	// FilterProgressive is set.
	Dedup dedup.Thresholds

	// Workers is the number of goroutines composing pages. Values below 2
	// keep assembly strictly sequential.
	Workers int
}

// DefaultOptions returns boundary-mode assembly with the default layout,
// thresholds, and upscale, processed sequentially.
func DefaultOptions() Options {
	return Options{
		Layout:  layout.DefaultConfig(),
		Spacer:  true,
		Upscale: compose.DefaultUpscale,
		Dedup:   dedup.DefaultThresholds(),
		Workers: 1,
	}
}

// InputError reports invalid assembly input: no decks, or a deck with no
// slides. Assembly fails fast and no partial document is produced.
type InputError struct {
	Reason string
}

// Error implements the error interface.
func (e *InputError) Error() string {
	return "invalid input: " + e.Reason
}
