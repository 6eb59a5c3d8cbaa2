// Package dedup removes progressive "build" slides from a deck: successive
// slides that only add content to the previous one, as produced by
// incremental bullet reveals.
//
// Classification is purely image-based. Each slide is converted to
// grayscale, downscaled, binarized into an ink mask, and dilated to close
// anti-aliasing gaps. A slide is considered a build of its successor when
// the pair is structurally similar (SSIM), nearly all of the earlier
// slide's ink survives into the later slide, and almost none of it
// disappears. Runs of consecutive builds collapse to the last slide of the
// chain:
//
//	kept := dedup.Filter(deck.Slides, dedup.DefaultThresholds())
//
// The filter preserves order, never compares slides across decks, always
// retains the final slide of a non-empty input, and is idempotent on its
// own output.
package dedup
