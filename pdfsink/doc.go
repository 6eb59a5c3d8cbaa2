// Package pdfsink writes assembled pages to a PDF document.
//
// It implements the assemble.PageSink interface on top of gofpdf: every
// composed page raster becomes one PDF page of the same point size with the
// raster embedded as a JPEG, and bookmarks become outline entries.
//
//	sink := pdfsink.New()
//	doc, warnings, err := asm.Assemble(decks, sink)
//	if err == nil {
//	    err = sink.WriteFile("handout.pdf")
//	}
package pdfsink
