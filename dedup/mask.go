package dedup

import "image"

// inkMask is a binary foreground mask over a downsampled slide. Set bits
// mark "ink": pixels darker than the luminance threshold.
type inkMask struct {
	w, h int
	bits []bool
}

func newInkMask(w, h int) *inkMask {
	return &inkMask{w: w, h: h, bits: make([]bool, w*h)}
}

func (m *inkMask) at(x, y int) bool {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	return m.bits[y*m.w+x]
}

func (m *inkMask) set(x, y int) {
	m.bits[y*m.w+x] = true
}

// count returns the number of ink pixels.
func (m *inkMask) count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// binarize converts a grayscale image to an ink mask: pixels strictly darker
// than the threshold become foreground.
func binarize(g *image.Gray, threshold uint8) *inkMask {
	b := g.Bounds()
	m := newInkMask(b.Dx(), b.Dy())
	for y := 0; y < m.h; y++ {
		row := g.Pix[y*g.Stride : y*g.Stride+m.w]
		for x, v := range row {
			if v < threshold {
				m.set(x, y)
			}
		}
	}
	return m
}

// dilate grows the mask by the given radius using a square structuring
// element. This closes small gaps left by anti-aliased glyph edges so that
// near-identical renderings of the same text produce overlapping ink.
func (m *inkMask) dilate(radius int) *inkMask {
	if radius <= 0 {
		return m
	}
	out := newInkMask(m.w, m.h)
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if !m.bits[y*m.w+x] {
				continue
			}
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					nx, ny := x+dx, y+dy
					if nx >= 0 && ny >= 0 && nx < out.w && ny < out.h {
						out.set(nx, ny)
					}
				}
			}
		}
	}
	return out
}

// inkRatios compares two masks of equal dimensions. overlap is the fraction
// of prev's ink still present in cur; removed is the fraction of prev's ink
// missing from cur. A blank prev counts as fully contained.
func inkRatios(prev, cur *inkMask) (overlap, removed float64) {
	total := prev.count()
	if total == 0 {
		return 1, 0
	}
	kept := 0
	for i, b := range prev.bits {
		if b && cur.bits[i] {
			kept++
		}
	}
	overlap = float64(kept) / float64(total)
	removed = float64(total-kept) / float64(total)
	return overlap, removed
}
