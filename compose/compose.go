package compose

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/tsawler/handout/layout"
	"github.com/tsawler/handout/model"
)

// DefaultUpscale is the default compositing resolution multiplier. Pages are
// rendered at twice their point size so slides stay sharp after the lossy
// compression most sinks apply.
const DefaultUpscale = 2.0

// Options control page composition.
type Options struct {
	// RTL mirrors the column order so reading runs right-to-left.
	RTL bool

	// Upscale is the compositing resolution multiplier (pixels per point).
	// Must be positive.
	Upscale float64
}

// DefaultOptions returns left-to-right composition at the default upscale.
func DefaultOptions() Options {
	return Options{Upscale: DefaultUpscale}
}

// Compose renders up to plan.CellsPerPage slides onto a single page canvas.
// Slide i occupies grid cell (row i/SlidesPerRow, column i%SlidesPerRow).
// The background is white; slides are resampled with Catmull-Rom
// interpolation to the exact cell size.
//
// Per-slide failures are reported as warnings with the affected cell left
// blank; Compose only returns an error for contract violations (too many
// slides, non-positive upscale).
func Compose(plan layout.Plan, slides []model.Slide, opts Options) (*image.RGBA, []model.Warning, error) {
	if len(slides) > plan.CellsPerPage {
		return nil, nil, fmt.Errorf("compose: %d slides exceed page capacity %d", len(slides), plan.CellsPerPage)
	}
	if opts.Upscale <= 0 {
		return nil, nil, fmt.Errorf("compose: upscale must be positive, got %g", opts.Upscale)
	}

	pageW := int(math.Round(plan.Config.PageWidth * opts.Upscale))
	pageH := int(math.Round(plan.Config.PageHeight * opts.Upscale))
	page := image.NewRGBA(image.Rect(0, 0, pageW, pageH))
	draw.Draw(page, page.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	var warnings []model.Warning

	for i, slide := range slides {
		row := i / plan.Config.SlidesPerRow
		col := i % plan.Config.SlidesPerRow
		if opts.RTL {
			col = plan.Config.SlidesPerRow - 1 - col
		}

		cell := cellRect(plan, row, col, opts.Upscale)

		if slide.Image == nil {
			warnings = append(warnings, model.Warning{
				Op:      "compose",
				Message: fmt.Sprintf("slide %s has no image; cell left blank", slide.Ref()),
				Cell:    i,
			})
			continue
		}
		src := slide.Image.Bounds()
		if src.Dx() <= 0 || src.Dy() <= 0 {
			warnings = append(warnings, model.Warning{
				Op:      "compose",
				Message: fmt.Sprintf("slide %s has empty bounds; cell left blank", slide.Ref()),
				Cell:    i,
			})
			continue
		}

		xdraw.CatmullRom.Scale(page, cell, slide.Image, src, xdraw.Over, nil)
	}

	return page, warnings, nil
}

// cellRect converts the cell's point geometry to a pixel rectangle on the
// upscaled page canvas.
func cellRect(plan layout.Plan, row, col int, upscale float64) image.Rectangle {
	x, y := plan.CellOrigin(row, col)
	return image.Rect(
		int(math.Round(x*upscale)),
		int(math.Round(y*upscale)),
		int(math.Round((x+plan.SlideWidth)*upscale)),
		int(math.Round((y+plan.SlideHeight)*upscale)),
	)
}
