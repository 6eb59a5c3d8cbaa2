package pdfsink

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// DefaultJPEGQuality is the quality used when embedding page rasters.
const DefaultJPEGQuality = 75

// Sink writes pages and bookmarks into an in-memory PDF document. It
// implements assemble.PageSink. Call Output or WriteFile once assembly has
// finished.
//
// A bookmark may only target the most recently drawn page; the assembler
// honors this by emitting each deck's bookmark right after the page that
// starts it.
type Sink struct {
	// JPEGQuality is the quality (1-100) used to compress page rasters.
	JPEGQuality int

	pdf   *gofpdf.Fpdf
	pages int
}

// New creates a PDF sink with the default JPEG quality.
func New() *Sink {
	return &Sink{JPEGQuality: DefaultJPEGQuality}
}

// DrawPage appends one page of the given point size with the raster scaled
// to cover it entirely.
func (s *Sink) DrawPage(page *image.RGBA, widthPt, heightPt float64) error {
	if page == nil {
		return fmt.Errorf("pdfsink: nil page raster")
	}
	if widthPt <= 0 || heightPt <= 0 {
		return fmt.Errorf("pdfsink: invalid page size %gx%g", widthPt, heightPt)
	}

	if s.pdf == nil {
		s.pdf = gofpdf.NewCustom(&gofpdf.InitType{
			OrientationStr: "P",
			UnitStr:        "pt",
			Size:           gofpdf.SizeType{Wd: widthPt, Ht: heightPt},
		})
		s.pdf.SetMargins(0, 0, 0)
		s.pdf.SetAutoPageBreak(false, 0)
	}

	s.pdf.AddPageFormat("P", gofpdf.SizeType{Wd: widthPt, Ht: heightPt})
	s.pages++

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, page, &jpeg.Options{Quality: s.quality()}); err != nil {
		return fmt.Errorf("pdfsink: encoding page %d: %w", s.pages, err)
	}

	name := fmt.Sprintf("page-%d", s.pages)
	opts := gofpdf.ImageOptions{ImageType: "JPEG"}
	s.pdf.RegisterImageOptionsReader(name, opts, &buf)
	s.pdf.ImageOptions(name, 0, 0, widthPt, heightPt, false, opts, 0, "")

	if s.pdf.Err() {
		return fmt.Errorf("pdfsink: drawing page %d: %w", s.pages, s.pdf.Error())
	}
	return nil
}

// AddBookmark records an outline entry pointing at the top of the given
// page, which must be the most recently drawn one.
func (s *Sink) AddBookmark(name string, page int) error {
	if page != s.pages || s.pdf == nil {
		return fmt.Errorf("pdfsink: bookmark %q targets page %d but the current page is %d", name, page, s.pages)
	}
	s.pdf.Bookmark(name, 0, 0)
	if s.pdf.Err() {
		return fmt.Errorf("pdfsink: adding bookmark %q: %w", name, s.pdf.Error())
	}
	return nil
}

// PageCount returns the number of pages drawn so far.
func (s *Sink) PageCount() int {
	return s.pages
}

// Output writes the finished PDF to w.
func (s *Sink) Output(w io.Writer) error {
	if s.pdf == nil {
		return fmt.Errorf("pdfsink: no pages drawn")
	}
	return s.pdf.Output(w)
}

// WriteFile writes the finished PDF to the named file.
func (s *Sink) WriteFile(path string) error {
	if s.pdf == nil {
		return fmt.Errorf("pdfsink: no pages drawn")
	}
	return s.pdf.OutputFileAndClose(path)
}

func (s *Sink) quality() int {
	if s.JPEGQuality < 1 || s.JPEGQuality > 100 {
		return DefaultJPEGQuality
	}
	return s.JPEGQuality
}
