package handout

import (
	"fmt"
	"io"

	"github.com/tsawler/handout/assemble"
	"github.com/tsawler/handout/dedup"
	"github.com/tsawler/handout/model"
	"github.com/tsawler/handout/pdfsink"
	"github.com/tsawler/handout/text"
)

// convertOptions holds configuration for document conversion.
type convertOptions struct {
	assembly    assemble.Options
	jpegQuality int
	rtlAuto     bool
}

// defaultOptions returns the default conversion options.
func defaultOptions() convertOptions {
	return convertOptions{
		assembly:    assemble.DefaultOptions(),
		jpegQuality: pdfsink.DefaultJPEGQuality,
	}
}

// Converter provides a fluent interface for building handout documents from
// slide decks. Each configuration method returns a new Converter instance,
// making it safe for concurrent use and allowing method chaining.
type Converter struct {
	decks   []*model.Deck
	options convertOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Converter. This ensures immutability -
// each chain method returns a new instance.
func (c *Converter) clone() *Converter {
	return &Converter{
		decks:   append([]*model.Deck(nil), c.decks...),
		options: c.options,
		err:     c.err,
	}
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// SlidesPerRow sets how many slides are placed side by side on a page row.
//
// Example:
//
//	doc, _, err := handout.New(deck).SlidesPerRow(3).WritePDF("out.pdf")
func (c *Converter) SlidesPerRow(n int) *Converter {
	newConv := c.clone()
	newConv.options.assembly.Layout.SlidesPerRow = n
	return newConv
}

// Gap sets the spacing in points between adjacent slides, both horizontally
// and vertically.
func (c *Converter) Gap(pt float64) *Converter {
	newConv := c.clone()
	newConv.options.assembly.Layout.Gap = pt
	return newConv
}

// Margin sets the left and right page margin in points.
func (c *Converter) Margin(pt float64) *Converter {
	newConv := c.clone()
	newConv.options.assembly.Layout.Margin = pt
	return newConv
}

// TopMargin sets the top page margin in points. The bottom margin always
// equals the left/right margin.
func (c *Converter) TopMargin(pt float64) *Converter {
	newConv := c.clone()
	newConv.options.assembly.Layout.TopMargin = pt
	return newConv
}

// PageSize sets the output page size in points. The default is A4 portrait.
func (c *Converter) PageSize(widthPt, heightPt float64) *Converter {
	newConv := c.clone()
	newConv.options.assembly.Layout.PageWidth = widthPt
	newConv.options.assembly.Layout.PageHeight = heightPt
	return newConv
}

// RTL mirrors the column order on every page, for right-to-left reading.
func (c *Converter) RTL() *Converter {
	newConv := c.clone()
	newConv.options.assembly.RTL = true
	newConv.options.rtlAuto = false
	return newConv
}

// RTLAuto enables right-to-left layout when the deck names are dominantly
// written in a right-to-left script.
func (c *Converter) RTLAuto() *Converter {
	newConv := c.clone()
	newConv.options.rtlAuto = true
	return newConv
}

// FilterProgressive removes progressive build slides before pagination, so
// only the final state of each build sequence appears in the handout.
func (c *Converter) FilterProgressive() *Converter {
	newConv := c.clone()
	newConv.options.assembly.FilterProgressive = true
	return newConv
}

// DedupThresholds overrides the progressive-detection thresholds used by
// FilterProgressive.
func (c *Converter) DedupThresholds(th dedup.Thresholds) *Converter {
	newConv := c.clone()
	newConv.options.assembly.Dedup = th
	return newConv
}

// Packed concatenates all decks into one continuous slide stream instead of
// starting each deck on a fresh page.
func (c *Converter) Packed() *Converter {
	newConv := c.clone()
	newConv.options.assembly.Packed = true
	return newConv
}

// NoSpacer disables the blank spacer slide inserted between decks in packed
// mode.
func (c *Converter) NoSpacer() *Converter {
	newConv := c.clone()
	newConv.options.assembly.Spacer = false
	return newConv
}

// Upscale sets the compositing resolution multiplier. Higher values give
// sharper output at the cost of memory and time.
func (c *Converter) Upscale(factor float64) *Converter {
	newConv := c.clone()
	newConv.options.assembly.Upscale = factor
	return newConv
}

// Workers sets the number of goroutines composing pages. Values below 2
// keep assembly strictly sequential. Output is identical either way.
func (c *Converter) Workers(n int) *Converter {
	newConv := c.clone()
	newConv.options.assembly.Workers = n
	return newConv
}

// JPEGQuality sets the quality (1-100) used when embedding page rasters
// into PDF output.
func (c *Converter) JPEGQuality(q int) *Converter {
	newConv := c.clone()
	newConv.options.jpegQuality = q
	return newConv
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Document assembles the decks and returns the resulting document without
// writing any output.
func (c *Converter) Document() (*model.Document, []Warning, error) {
	return c.run(nil)
}

// WriteTo assembles the decks and writes the finished PDF to w.
func (c *Converter) WriteTo(w io.Writer) (*model.Document, []Warning, error) {
	sink := pdfsink.New()
	sink.JPEGQuality = c.options.jpegQuality

	doc, warnings, err := c.run(sink)
	if err != nil {
		return nil, warnings, err
	}
	if err := sink.Output(w); err != nil {
		return nil, warnings, fmt.Errorf("writing PDF: %w", err)
	}
	return doc, warnings, nil
}

// WritePDF assembles the decks and writes the finished PDF to the named
// file.
func (c *Converter) WritePDF(path string) (*model.Document, []Warning, error) {
	sink := pdfsink.New()
	sink.JPEGQuality = c.options.jpegQuality

	doc, warnings, err := c.run(sink)
	if err != nil {
		return nil, warnings, err
	}
	if err := sink.WriteFile(path); err != nil {
		return nil, warnings, fmt.Errorf("writing PDF: %w", err)
	}
	return doc, warnings, nil
}

func (c *Converter) run(sink assemble.PageSink) (*model.Document, []Warning, error) {
	if c.err != nil {
		return nil, nil, c.err
	}

	opts := c.options.assembly
	if c.options.rtlAuto && !opts.RTL {
		opts.RTL = decksAreRTL(c.decks)
	}

	decks := make([]model.Deck, len(c.decks))
	for i, d := range c.decks {
		if d == nil {
			return nil, nil, &assemble.InputError{Reason: fmt.Sprintf("deck %d is nil", i)}
		}
		decks[i] = *d
	}

	return assemble.New(opts).Assemble(decks, sink)
}

// decksAreRTL reports whether the majority of strongly-directional deck
// names read right to left.
func decksAreRTL(decks []*model.Deck) bool {
	rtl, ltr := 0, 0
	for _, d := range decks {
		if d == nil {
			continue
		}
		switch text.DetectDirection(d.Name) {
		case text.RTL:
			rtl++
		case text.LTR:
			ltr++
		}
	}
	return rtl > ltr
}
