// Package compose rasterizes a batch of slides onto one page canvas
// according to a layout plan.
//
// Slides fill the grid in reading order, row by row; with the RTL option the
// column order is mirrored so reading runs right-to-left while rows still
// proceed top-to-bottom. Each slide is resampled with a high-quality filter
// to exactly the planned cell size, multiplied by the upscale factor so the
// page can be composited at a higher internal resolution than its final
// point size.
//
// Composition is best-effort: a slide that cannot be rendered leaves its
// cell blank and is reported as a warning; a single bad slide never aborts
// the page.
package compose
