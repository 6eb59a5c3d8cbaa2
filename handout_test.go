package handout

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/handout/model"
)

func solidSlide(c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 80, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 80; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func testDeck(name string, n int) *model.Deck {
	deck := model.NewDeck(name)
	colors := []color.Color{
		color.RGBA{255, 0, 0, 255},
		color.RGBA{0, 255, 0, 255},
		color.RGBA{0, 0, 255, 255},
	}
	for i := 0; i < n; i++ {
		deck.AddSlide(solidSlide(colors[i%len(colors)]))
	}
	return deck
}

func TestConverterDocument(t *testing.T) {
	doc, warnings, err := New(testDeck("alpha", 3), testDeck("beta", 2)).Document()
	if err != nil {
		t.Fatalf("Document returned error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}

	// Five small slides fit one page per deck in boundary mode.
	if doc.PageCount() != 2 {
		t.Errorf("Expected 2 pages, got %d", doc.PageCount())
	}
	if len(doc.Bookmarks) != 2 {
		t.Fatalf("Expected 2 bookmarks, got %d", len(doc.Bookmarks))
	}
	if doc.Bookmarks[0].Name != "alpha" || doc.Bookmarks[0].Page != 1 {
		t.Errorf("Expected alpha bookmark on page 1, got %+v", doc.Bookmarks[0])
	}
	if doc.Bookmarks[1].Name != "beta" || doc.Bookmarks[1].Page != 2 {
		t.Errorf("Expected beta bookmark on page 2, got %+v", doc.Bookmarks[1])
	}
}

func TestConverterErrors(t *testing.T) {
	if _, _, err := New().Document(); err == nil {
		t.Error("Expected error for conversion with no decks")
	}
	if _, _, err := New(model.NewDeck("empty")).Document(); err == nil {
		t.Error("Expected error for deck with no slides")
	}
	if _, _, err := New(nil).Document(); err == nil {
		t.Error("Expected error for nil deck")
	}
}

func TestConverterImmutability(t *testing.T) {
	base := New(testDeck("alpha", 2))
	packed := base.Packed()
	if base == packed {
		t.Fatal("Expected Packed to return a new Converter")
	}

	// The base converter keeps boundary-mode behavior after the derived
	// converter was configured.
	baseDoc := MustDocument(base.Document())
	packedDoc := MustDocument(packed.Document())
	if baseDoc.PageCount() != packedDoc.PageCount() {
		t.Errorf("Expected identical page counts for one deck, got %d and %d",
			baseDoc.PageCount(), packedDoc.PageCount())
	}
}

func TestConverterPacked(t *testing.T) {
	// Default A4 grid fits eight 4:3 slides per page. Boundary mode needs a
	// page per deck; packed mode fits both decks plus the spacer on one.
	boundary := MustDocument(New(testDeck("alpha", 2), testDeck("beta", 2)).Document())
	packed := MustDocument(New(testDeck("alpha", 2), testDeck("beta", 2)).Packed().Document())

	if boundary.PageCount() != 2 {
		t.Errorf("Expected 2 boundary pages, got %d", boundary.PageCount())
	}
	if packed.PageCount() != 1 {
		t.Errorf("Expected 1 packed page, got %d", packed.PageCount())
	}
	if len(packed.Bookmarks) != 2 {
		t.Errorf("Expected both bookmarks in packed mode, got %d", len(packed.Bookmarks))
	}
}

func TestConverterFilterProgressive(t *testing.T) {
	deck := model.NewDeck("builds")
	for i := 0; i < 3; i++ {
		deck.AddSlide(solidSlide(color.White))
	}

	doc := MustDocument(New(deck).FilterProgressive().Document())
	if got := len(doc.GetPage(1).Slides); got != 1 {
		t.Errorf("Expected identical slides to collapse to 1, got %d", got)
	}
}

func TestConverterRTLAuto(t *testing.T) {
	arabic := func() *model.Deck {
		d := model.NewDeck("محاضرة")
		d.AddSlide(solidSlide(color.RGBA{255, 0, 0, 255}))
		d.AddSlide(solidSlide(color.RGBA{0, 0, 255, 255}))
		return d
	}

	auto := MustDocument(New(arabic()).RTLAuto().Document())
	explicit := MustDocument(New(arabic()).RTL().Document())
	ltr := MustDocument(New(arabic()).Document())

	if !bytes.Equal(auto.GetPage(1).Image.Pix, explicit.GetPage(1).Image.Pix) {
		t.Error("Expected auto-detected RTL raster to match explicit RTL")
	}
	if bytes.Equal(auto.GetPage(1).Image.Pix, ltr.GetPage(1).Image.Pix) {
		t.Error("Expected RTL raster to differ from LTR raster")
	}
}

func TestWritePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")

	doc, _, err := New(testDeck("alpha", 2)).JPEGQuality(85).WritePDF(path)
	if err != nil {
		t.Fatalf("WritePDF returned error: %v", err)
	}
	if doc.PageCount() != 1 {
		t.Errorf("Expected 1 page, got %d", doc.PageCount())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF-") {
		t.Error("Output does not look like a PDF document")
	}
}

func TestWriteTo(t *testing.T) {
	var buf bytes.Buffer
	if _, _, err := New(testDeck("alpha", 1)).WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo returned error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "%PDF-") {
		t.Error("Output does not look like a PDF document")
	}
}

func TestFromDirs(t *testing.T) {
	dir := t.TempDir()
	deckDir := filepath.Join(dir, "week1")
	if err := os.Mkdir(deckDir, 0o755); err != nil {
		t.Fatalf("creating deck dir: %v", err)
	}
	for _, name := range []string{"slide_1.png", "slide_2.png"} {
		f, err := os.Create(filepath.Join(deckDir, name))
		if err != nil {
			t.Fatalf("creating fixture: %v", err)
		}
		if err := png.Encode(f, solidSlide(color.White)); err != nil {
			t.Fatalf("encoding fixture: %v", err)
		}
		f.Close()
	}

	doc, _, err := FromDirs(deckDir).Document()
	if err != nil {
		t.Fatalf("FromDirs conversion returned error: %v", err)
	}
	if len(doc.Bookmarks) != 1 || doc.Bookmarks[0].Name != "week1" {
		t.Errorf("Expected a week1 bookmark, got %+v", doc.Bookmarks)
	}

	if _, _, err := FromDirs(filepath.Join(dir, "missing")).Document(); err == nil {
		t.Error("Expected error for missing deck directory")
	}
}

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected Must to panic on error")
		}
	}()
	Must(0, os.ErrNotExist)
}
