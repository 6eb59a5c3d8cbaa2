// Package text detects the dominant writing direction of text.
//
// It drives automatic right-to-left page layout: when a deck name or OCR'd
// slide text is dominantly Arabic, Hebrew, or another RTL script, the
// compositor mirrors the slide grid to match the reading order.
package text

import (
	"golang.org/x/text/unicode/bidi"
)

// Direction represents the writing direction of text.
type Direction int

const (
	// LTR (Left-to-Right) for Latin, Cyrillic, etc.
	LTR Direction = iota
	// RTL (Right-to-Left) for Arabic, Hebrew, etc.
	RTL
	// Neutral for numbers, punctuation, etc.
	Neutral
)

// String returns a string representation of the direction ("LTR", "RTL", or "Neutral").
func (d Direction) String() string {
	switch d {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	case Neutral:
		return "Neutral"
	default:
		return "Unknown"
	}
}

// DetectDirection analyzes a string and returns its dominant text direction.
// It counts strong directional characters using their Unicode bidi classes
// and returns the direction with the higher count, or Neutral if no strong
// directional characters are present.
func DetectDirection(s string) Direction {
	ltrCount := 0
	rtlCount := 0

	for len(s) > 0 {
		prop, size := bidi.LookupString(s)
		switch prop.Class() {
		case bidi.L:
			ltrCount++
		case bidi.R, bidi.AL:
			rtlCount++
		}
		s = s[size:]
	}

	if ltrCount == 0 && rtlCount == 0 {
		return Neutral
	}
	if rtlCount > ltrCount {
		return RTL
	}
	return LTR
}

// IsRTL reports whether the dominant direction of s is right-to-left.
func IsRTL(s string) bool {
	return DetectDirection(s) == RTL
}
