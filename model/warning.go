package model

import "fmt"

// Warning describes a non-fatal issue encountered during conversion, such as
// a slide that could not be rendered. Warnings never abort a page or a
// document; they are returned alongside results for the caller to surface.
type Warning struct {
	// Op names the pipeline stage that produced the warning ("compose",
	// "assemble", ...).
	Op string

	// Message is a human-readable description.
	Message string

	// Page is the 1-indexed output page the warning relates to, or 0 if not
	// tied to a page.
	Page int

	// Cell is the grid cell index on the page, or -1 if not tied to a cell.
	Cell int
}

// String formats the warning for display.
func (w Warning) String() string {
	switch {
	case w.Page > 0 && w.Cell >= 0:
		return fmt.Sprintf("%s: page %d, cell %d: %s", w.Op, w.Page, w.Cell, w.Message)
	case w.Page > 0:
		return fmt.Sprintf("%s: page %d: %s", w.Op, w.Page, w.Message)
	default:
		return fmt.Sprintf("%s: %s", w.Op, w.Message)
	}
}
