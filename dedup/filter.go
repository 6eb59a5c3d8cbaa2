package dedup

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/tsawler/handout/model"
)

// Thresholds holds the tunable parameters for progressive-slide detection.
type Thresholds struct {
	// SSIM is the minimum structural similarity between consecutive slides.
	SSIM float64

	// Overlap is the minimum fraction of the earlier slide's ink that must
	// survive into the later slide.
	Overlap float64

	// Removed is the maximum fraction of the earlier slide's ink allowed to
	// disappear in the later slide.
	Removed float64

	// Shrink is the downscale factor applied before comparison. Larger
	// values are cheaper and less sensitive to rendering noise.
	Shrink int

	// Luminance is the binarization threshold: pixels strictly darker than
	// this value count as ink.
	Luminance uint8

	// DilateRadius is the ink-mask dilation radius in downsampled pixels.
	DilateRadius int
}

// DefaultThresholds returns the standard detection parameters.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SSIM:         0.96,
		Overlap:      0.92,
		Removed:      0.05,
		Shrink:       4,
		Luminance:    128,
		DilateRadius: 1,
	}
}

// features holds the preprocessed representation of one slide used for
// pairwise comparison.
type features struct {
	gray *image.Gray
	mask *inkMask
}

// preprocess converts a slide to its comparison features: a downsampled
// grayscale image and a dilated binary ink mask. Returns nil for slides
// without usable pixels.
func preprocess(s model.Slide, th Thresholds) *features {
	if s.Image == nil {
		return nil
	}
	b := s.Image.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil
	}

	shrink := th.Shrink
	if shrink < 1 {
		shrink = 1
	}
	w := b.Dx() / shrink
	h := b.Dy() / shrink
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	gray := image.NewGray(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(gray, gray.Bounds(), s.Image, b, xdraw.Src, nil)

	mask := binarize(gray, th.Luminance).dilate(th.DilateRadius)

	return &features{gray: gray, mask: mask}
}

// progressive reports whether prev is a build that cur supersedes: the pair
// is structurally similar, nearly all of prev's ink survives into cur, and
// almost none of it disappears.
func progressive(prev, cur *features, th Thresholds) bool {
	if prev == nil || cur == nil {
		return false
	}
	if prev.mask.w != cur.mask.w || prev.mask.h != cur.mask.h {
		return false
	}

	if ssim(prev.gray, cur.gray) <= th.SSIM {
		return false
	}
	overlap, removed := inkRatios(prev.mask, cur.mask)
	return overlap > th.Overlap && removed < th.Removed
}

// Decide classifies every slide in the ordered sequence. The returned slice
// is parallel to the input: a slide classified as a build of its successor
// has Retained false and SupersededBy set to the successor's position.
// Inputs of length 0 or 1 are retained unchanged.
func Decide(slides []model.Slide, th Thresholds) []model.DedupDecision {
	decisions := make([]model.DedupDecision, len(slides))
	for i := range decisions {
		decisions[i] = model.DedupDecision{Retained: true, SupersededBy: -1}
	}
	if len(slides) <= 1 {
		return decisions
	}

	feats := make([]*features, len(slides))
	for i := range slides {
		feats[i] = preprocess(slides[i], th)
	}

	// Whenever a slide is a build of its successor it is dropped; runs of
	// consecutive builds thereby collapse to the last slide of the chain.
	// The final slide has no successor and is always retained.
	for i := 1; i < len(slides); i++ {
		if progressive(feats[i-1], feats[i], th) {
			decisions[i-1].Retained = false
			decisions[i-1].SupersededBy = i
		}
	}

	return decisions
}

// Filter returns the ordered subsequence of slides that survive progressive
// deduplication. The input is not modified; no slides are reordered or
// compared across decks. Filter is idempotent: running it on its own output
// returns the output unchanged.
func Filter(slides []model.Slide, th Thresholds) []model.Slide {
	decisions := Decide(slides, th)
	kept := make([]model.Slide, 0, len(slides))
	for i, d := range decisions {
		if d.Retained {
			kept = append(kept, slides[i])
		}
	}
	return kept
}
