package model

import "image"

// Page is one output page: the composed raster plus references to the slides
// placed on it. Pages are numbered 1-based in final output order.
type Page struct {
	Number int        // 1-indexed page number
	Slides []SlideRef // slides placed on this page, in reading order

	// Image is the composed page raster. Its pixel dimensions are the page
	// size in points multiplied by the compositor's upscale factor.
	Image *image.RGBA

	// WidthPt and HeightPt are the page dimensions in points.
	WidthPt  float64
	HeightPt float64
}

// Bookmark marks the page on which a deck's first surviving slide lands.
type Bookmark struct {
	Name string
	Page int // 1-indexed page number
}

// Document is the assembled output: ordered pages plus bookmark markers.
// It is built incrementally by the assembler and finalized once all decks
// have been consumed.
type Document struct {
	Pages     []*Page
	Bookmarks []Bookmark
}

// NewDocument creates a new empty document.
func NewDocument() *Document {
	return &Document{}
}

// AddPage appends a page to the document, assigning its 1-based number.
func (d *Document) AddPage(page *Page) {
	page.Number = len(d.Pages) + 1
	d.Pages = append(d.Pages, page)
}

// AddBookmark records a bookmark pointing at the given 1-based page number.
func (d *Document) AddBookmark(name string, page int) {
	d.Bookmarks = append(d.Bookmarks, Bookmark{Name: name, Page: page})
}

// PageCount returns the total number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// GetPage returns a page by number (1-indexed), or nil if out of range.
func (d *Document) GetPage(number int) *Page {
	if number < 1 || number > len(d.Pages) {
		return nil
	}
	return d.Pages[number-1]
}
