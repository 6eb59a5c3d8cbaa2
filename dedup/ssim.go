package dedup

import "image"

// SSIM stabilization constants for 8-bit dynamic range, per Wang et al.
const (
	ssimC1 = (0.01 * 255) * (0.01 * 255)
	ssimC2 = (0.03 * 255) * (0.03 * 255)
)

// ssimTile is the side length of the square tiles the images are split into.
// SSIM is computed per tile and averaged, so a localized change (one new
// bullet line) only depresses the tiles it touches.
const ssimTile = 8

// ssim returns the mean structural similarity of two grayscale images of
// equal dimensions, in [0, 1] for natural images. Images with mismatched
// dimensions score 0.
func ssim(a, b *image.Gray) float64 {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() || ab.Dx() == 0 || ab.Dy() == 0 {
		return 0
	}

	w, h := ab.Dx(), ab.Dy()
	var sum float64
	tiles := 0

	for ty := 0; ty < h; ty += ssimTile {
		for tx := 0; tx < w; tx += ssimTile {
			tw := min(ssimTile, w-tx)
			th := min(ssimTile, h-ty)
			sum += tileSSIM(a, b, tx, ty, tw, th)
			tiles++
		}
	}

	return sum / float64(tiles)
}

// tileSSIM computes the SSIM index of one tile.
func tileSSIM(a, b *image.Gray, tx, ty, tw, th int) float64 {
	n := float64(tw * th)

	var sumA, sumB float64
	for y := 0; y < th; y++ {
		ra := a.Pix[(ty+y)*a.Stride+tx : (ty+y)*a.Stride+tx+tw]
		rb := b.Pix[(ty+y)*b.Stride+tx : (ty+y)*b.Stride+tx+tw]
		for x := 0; x < tw; x++ {
			sumA += float64(ra[x])
			sumB += float64(rb[x])
		}
	}
	meanA := sumA / n
	meanB := sumB / n

	var varA, varB, cov float64
	for y := 0; y < th; y++ {
		ra := a.Pix[(ty+y)*a.Stride+tx : (ty+y)*a.Stride+tx+tw]
		rb := b.Pix[(ty+y)*b.Stride+tx : (ty+y)*b.Stride+tx+tw]
		for x := 0; x < tw; x++ {
			da := float64(ra[x]) - meanA
			db := float64(rb[x]) - meanB
			varA += da * da
			varB += db * db
			cov += da * db
		}
	}
	varA /= n
	varB /= n
	cov /= n

	num := (2*meanA*meanB + ssimC1) * (2*cov + ssimC2)
	den := (meanA*meanA + meanB*meanB + ssimC1) * (varA + varB + ssimC2)
	return num / den
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
