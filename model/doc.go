// Package model provides the intermediate representation (IR) shared by the
// handout conversion pipeline.
//
// This package defines the data structures passed between the deduplication
// filter, the layout planner, the page compositor, and the document
// assembler. All conversion operations ultimately produce these types.
//
// # Decks and Slides
//
// A [Deck] is the ordered slide images belonging to one source document:
//
//	deck := model.NewDeck("lecture-01")
//	deck.AddSlide(img)
//
// Each [Slide] carries a decoded raster image plus its provenance (deck name
// and 0-indexed position). Slides are immutable once produced; the pipeline
// only reads and resamples their pixels, never mutates them.
//
// # Documents
//
// A [Document] is the result of assembly: an ordered list of [Page] values
// plus the [Bookmark] markers recorded at deck boundaries. Pages reference
// their source slides by [SlideRef] rather than holding the decoded images,
// so callers remain free to release slide pixel buffers as soon as the
// assembler has consumed them.
//
// # Warnings
//
// Non-fatal issues encountered during conversion are reported as [Warning]
// values returned alongside results, never logged from inside the pipeline.
package model
