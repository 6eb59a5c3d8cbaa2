// Package handout provides a fluent API for turning slide decks into
// paginated handout documents.
//
// Slides are arranged on a fixed page grid, near-duplicate "progressive
// build" slides are collapsed to their final state, and each deck gets a
// bookmark in the output PDF.
//
// Basic usage:
//
//	doc, warnings, err := handout.New(deck).WritePDF("handout.pdf")
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", handout.FormatWarnings(warnings))
//	}
//
// With options:
//
//	doc, _, err := handout.New(lecture1, lecture2).
//	    SlidesPerRow(3).
//	    Packed().
//	    FilterProgressive().
//	    WritePDF("course.pdf")
package handout

import (
	"github.com/tsawler/handout/deckio"
	"github.com/tsawler/handout/model"
)

// New creates a Converter over the given decks, in order. Configuration
// methods return new Converter instances, so a configured Converter can be
// shared and further specialized safely.
//
// Example:
//
//	doc, warnings, err := handout.New(deck).WritePDF("handout.pdf")
func New(decks ...*model.Deck) *Converter {
	return &Converter{
		decks:   append([]*model.Deck(nil), decks...),
		options: defaultOptions(),
	}
}

// FromDirs creates a Converter by loading one deck per directory. Slides
// inside each directory are ordered by natural filename comparison.
//
// Example:
//
//	doc, warnings, err := handout.FromDirs("lectures/week1", "lectures/week2").
//	    WritePDF("weeks.pdf")
func FromDirs(dirs ...string) *Converter {
	c := &Converter{options: defaultOptions()}
	for _, dir := range dirs {
		deck, err := deckio.LoadDeckDir(dir)
		if err != nil {
			c.err = err
			return c
		}
		c.decks = append(c.decks, deck)
	}
	return c
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	deck := handout.Must(deckio.LoadDeckDir("slides"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustDocument is a helper that wraps a terminal operation returning
// (*model.Document, []Warning, error) and panics if the error is non-nil.
// It discards warnings and returns just the document.
//
// Example:
//
//	doc := handout.MustDocument(handout.New(deck).Document())
func MustDocument(doc *model.Document, _ []Warning, err error) *model.Document {
	if err != nil {
		panic(err)
	}
	return doc
}
