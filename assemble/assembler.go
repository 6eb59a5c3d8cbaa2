package assemble

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/tsawler/handout/compose"
	"github.com/tsawler/handout/dedup"
	"github.com/tsawler/handout/layout"
	"github.com/tsawler/handout/model"
)

// fallbackAspect is used when a deck contains no slide with usable pixels,
// so pagination can still proceed (the cells render blank with warnings).
const fallbackAspect = 4.0 / 3.0

// PageSink receives the assembled output in strict page order. Sinks are
// typically document writers; see the pdfsink package for a PDF-backed
// implementation.
type PageSink interface {
	// DrawPage is called once per produced page, in final page order. The
	// raster's pixel size is the page point size times the upscale factor.
	DrawPage(page *image.RGBA, widthPt, heightPt float64) error

	// AddBookmark records an outline entry for the given 1-based page.
	// The assembler only ever calls it for the most recently drawn page.
	AddBookmark(name string, page int) error
}

// Assembler converts decks into a paginated document. It caches layout
// plans per aspect ratio across calls. An Assembler must not be used from
// multiple goroutines concurrently.
type Assembler struct {
	opts  Options
	plans map[float64]layout.Plan
}

// New creates an Assembler with the given options.
func New(opts Options) *Assembler {
	return &Assembler{
		opts:  opts,
		plans: make(map[float64]layout.Plan),
	}
}

// pageGroup is one planned output page: the slides to place on it and the
// deck names whose bookmark lands on it.
type pageGroup struct {
	plan      layout.Plan
	slides    []model.Slide
	bookmarks []string
}

// composedPage is the result of rendering one pageGroup.
type composedPage struct {
	img      *image.RGBA
	warnings []model.Warning
	err      error
}

// Assemble converts the decks into a document, streaming every composed
// page to sink in page order (a nil sink assembles the document without
// emitting). It returns the finalized document, the non-fatal warnings
// collected along the way, and an error for invalid input or infeasible
// layout. On error no partial document is returned.
func (a *Assembler) Assemble(decks []model.Deck, sink PageSink) (*model.Document, []model.Warning, error) {
	if len(decks) == 0 {
		return nil, nil, &InputError{Reason: "no decks to assemble"}
	}
	for _, d := range decks {
		if len(d.Slides) == 0 {
			return nil, nil, &InputError{Reason: fmt.Sprintf("deck %q has no slides", d.Name)}
		}
	}

	var warnings []model.Warning

	// Per-deck progressive filtering. Decks are independent here; slides
	// are only ever compared within their own deck.
	filtered := make([]model.Deck, len(decks))
	for i, d := range decks {
		filtered[i] = d
		if a.opts.FilterProgressive {
			filtered[i].Slides = dedup.Filter(d.Slides, a.opts.Dedup)
		}
	}

	var groups []pageGroup
	var err error
	if a.opts.Packed {
		groups, err = a.packedGroups(filtered)
	} else {
		groups, err = a.boundaryGroups(filtered)
	}
	if err != nil {
		return nil, nil, err
	}

	composed, err := a.composeAll(groups)
	if err != nil {
		return nil, nil, err
	}

	// Flush strictly in page order.
	doc := model.NewDocument()
	for i, group := range groups {
		pageNum := i + 1
		for _, w := range composed[i].warnings {
			w.Page = pageNum
			warnings = append(warnings, w)
		}

		page := &model.Page{
			Image:    composed[i].img,
			WidthPt:  group.plan.Config.PageWidth,
			HeightPt: group.plan.Config.PageHeight,
		}
		for _, s := range group.slides {
			page.Slides = append(page.Slides, s.Ref())
		}
		doc.AddPage(page)

		if sink != nil {
			if err := sink.DrawPage(composed[i].img, page.WidthPt, page.HeightPt); err != nil {
				return nil, nil, fmt.Errorf("sink failed on page %d: %w", pageNum, err)
			}
		}
		for _, name := range group.bookmarks {
			doc.AddBookmark(name, pageNum)
			if sink != nil {
				if err := sink.AddBookmark(name, pageNum); err != nil {
					return nil, nil, fmt.Errorf("sink failed on bookmark %q: %w", name, err)
				}
			}
		}
	}

	return doc, warnings, nil
}

// boundaryGroups paginates each deck independently: a new page always starts
// at a deck boundary and the deck's bookmark lands on its first page.
func (a *Assembler) boundaryGroups(decks []model.Deck) ([]pageGroup, error) {
	var groups []pageGroup
	for _, d := range decks {
		plan, err := a.planFor(deckAspect(d.Slides))
		if err != nil {
			return nil, err
		}

		first := true
		for start := 0; start < len(d.Slides); start += plan.CellsPerPage {
			end := start + plan.CellsPerPage
			if end > len(d.Slides) {
				end = len(d.Slides)
			}
			g := pageGroup{plan: plan, slides: d.Slides[start:end]}
			if first {
				g.bookmarks = []string{d.Name}
				first = false
			}
			groups = append(groups, g)
		}
	}
	return groups, nil
}

// packedGroups concatenates all decks into one stream, optionally separated
// by blank spacer slides, and paginates it without regard for deck
// boundaries. Bookmarks are derived from the cumulative slide-to-page
// mapping of each deck's first surviving slide.
func (a *Assembler) packedGroups(decks []model.Deck) ([]pageGroup, error) {
	var stream []model.Slide
	starts := make([]int, len(decks)) // position of each deck's first slide

	for i, d := range decks {
		if a.opts.Spacer && len(stream) > 0 {
			stream = append(stream, spacerSlide(d.Slides))
		}
		starts[i] = len(stream)
		stream = append(stream, d.Slides...)
	}

	plan, err := a.planFor(deckAspect(stream))
	if err != nil {
		return nil, err
	}

	var groups []pageGroup
	for start := 0; start < len(stream); start += plan.CellsPerPage {
		end := start + plan.CellsPerPage
		if end > len(stream) {
			end = len(stream)
		}
		groups = append(groups, pageGroup{plan: plan, slides: stream[start:end]})
	}

	for i, d := range decks {
		page := starts[i] / plan.CellsPerPage
		groups[page].bookmarks = append(groups[page].bookmarks, d.Name)
	}

	return groups, nil
}

// composeAll renders every page group, either sequentially or fanned out
// over Workers goroutines. Results are indexed by group so the caller can
// flush them in order regardless of completion order.
func (a *Assembler) composeAll(groups []pageGroup) ([]composedPage, error) {
	opts := compose.Options{RTL: a.opts.RTL, Upscale: a.opts.Upscale}
	results := make([]composedPage, len(groups))

	workers := a.opts.Workers
	if workers > len(groups) {
		workers = len(groups)
	}

	if workers < 2 {
		for i, g := range groups {
			img, warns, err := compose.Compose(g.plan, g.slides, opts)
			if err != nil {
				return nil, err
			}
			results[i] = composedPage{img: img, warnings: warns}
		}
		return results, nil
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				img, warns, err := compose.Compose(groups[i].plan, groups[i].slides, opts)
				results[i] = composedPage{img: img, warnings: warns, err: err}
			}
		}()
	}
	for i := range groups {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
	}
	return results, nil
}

// planFor returns the cached layout plan for the aspect ratio, computing it
// on first use. Aspect ratios are quantized so float jitter from image
// dimensions does not defeat the cache.
func (a *Assembler) planFor(aspect float64) (layout.Plan, error) {
	key := math.Round(aspect*10000) / 10000
	if plan, ok := a.plans[key]; ok {
		return plan, nil
	}
	plan, err := layout.NewPlan(key, a.opts.Layout)
	if err != nil {
		return layout.Plan{}, err
	}
	a.plans[key] = plan
	return plan, nil
}

// deckAspect returns the aspect ratio of the first slide with usable
// pixels, falling back to 4:3 when none exists.
func deckAspect(slides []model.Slide) float64 {
	for _, s := range slides {
		if ar := s.AspectRatio(); ar > 0 {
			return ar
		}
	}
	return fallbackAspect
}

// spacerSlide builds the blank slide inserted between decks in packed mode.
// It matches the pixel dimensions of the next deck's first usable slide so
// the stream keeps a uniform aspect ratio.
func spacerSlide(next []model.Slide) model.Slide {
	w, h := 4, 3
	for _, s := range next {
		if s.Image != nil {
			b := s.Image.Bounds()
			if b.Dx() > 0 && b.Dy() > 0 {
				w, h = b.Dx(), b.Dy()
				break
			}
		}
	}
	blank := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(blank, blank.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return model.Slide{Image: blank, Deck: "", Index: -1}
}
