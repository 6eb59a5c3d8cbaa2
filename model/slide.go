package model

import (
	"fmt"
	"image"
)

// Slide is one decoded raster slide image together with its provenance.
// The pixel data is owned by the caller; the conversion pipeline reads and
// resamples it but never mutates it.
type Slide struct {
	Image image.Image // decoded pixels; may be nil for a slide that failed upstream
	Deck  string      // name of the source deck
	Index int         // 0-indexed position within the source deck
}

// Ref returns the slide's provenance as a SlideRef.
func (s Slide) Ref() SlideRef {
	return SlideRef{Deck: s.Deck, Index: s.Index}
}

// AspectRatio returns width/height of the slide's pixels, or 0 if the slide
// has no usable image.
func (s Slide) AspectRatio() float64 {
	if s.Image == nil {
		return 0
	}
	b := s.Image.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return 0
	}
	return float64(b.Dx()) / float64(b.Dy())
}

// SlideRef identifies a slide by deck name and position without holding its
// pixel data.
type SlideRef struct {
	Deck  string
	Index int
}

// String returns a stable identifier like "lecture-01#3".
func (r SlideRef) String() string {
	return fmt.Sprintf("%s#%d", r.Deck, r.Index)
}

// Deck is the ordered sequence of slides belonging to one source document,
// plus the display name used for bookmarking.
type Deck struct {
	Name   string
	Slides []Slide
}

// NewDeck creates an empty deck with the given display name.
func NewDeck(name string) *Deck {
	return &Deck{Name: name}
}

// AddSlide appends an image to the deck, assigning its deck name and index.
func (d *Deck) AddSlide(img image.Image) {
	d.Slides = append(d.Slides, Slide{
		Image: img,
		Deck:  d.Name,
		Index: len(d.Slides),
	})
}

// SlideCount returns the number of slides in the deck.
func (d *Deck) SlideCount() int {
	return len(d.Slides)
}

// DedupDecision records the deduplication filter's verdict for one slide.
type DedupDecision struct {
	// Retained is true if the slide survives filtering.
	Retained bool

	// SupersededBy is the index (within the same deck) of the slide that
	// subsumed this one, or -1 if the slide was retained.
	SupersededBy int
}
