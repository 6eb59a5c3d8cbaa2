package deckio

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
}

func TestLoadDeck(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.png")
	writePNG(t, a, color.RGBA{255, 0, 0, 255})
	writePNG(t, b, color.RGBA{0, 0, 255, 255})

	deck, err := LoadDeck("lecture", []string{b, a})
	if err != nil {
		t.Fatalf("LoadDeck returned error: %v", err)
	}
	if deck.Name != "lecture" {
		t.Errorf("Expected deck name lecture, got %q", deck.Name)
	}
	if deck.SlideCount() != 2 {
		t.Fatalf("Expected 2 slides, got %d", deck.SlideCount())
	}

	// Explicit lists preserve the given order; b was passed first.
	r, _, bl, _ := deck.Slides[0].Image.At(3, 3).RGBA()
	if r != 0 || bl == 0 {
		t.Error("Expected first slide to be the blue image")
	}
}

func TestLoadDeckFailsFast(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	writePNG(t, good, color.White)
	corrupt := filepath.Join(dir, "corrupt.png")
	if err := os.WriteFile(corrupt, []byte("not a png"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := LoadDeck("d", []string{good, corrupt}); err == nil {
		t.Error("Expected error for corrupt slide")
	}
	if _, err := LoadDeck("d", []string{filepath.Join(dir, "missing.png")}); err == nil {
		t.Error("Expected error for missing slide")
	}
	if _, err := LoadDeck("d", []string{filepath.Join(dir, "notes.txt")}); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestLoadDeckDir(t *testing.T) {
	dir := t.TempDir()
	deckDir := filepath.Join(dir, "physics-101")
	if err := os.Mkdir(deckDir, 0o755); err != nil {
		t.Fatalf("creating deck dir: %v", err)
	}

	// Written out of order on purpose; numeric sorting must put slide_2
	// ahead of slide_10.
	writePNG(t, filepath.Join(deckDir, "slide_10.png"), color.RGBA{0, 0, 255, 255})
	writePNG(t, filepath.Join(deckDir, "slide_2.png"), color.RGBA{255, 0, 0, 255})
	writePNG(t, filepath.Join(deckDir, "slide_1.png"), color.White)
	if err := os.WriteFile(filepath.Join(deckDir, "notes.txt"), []byte("skip me"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if err := os.Mkdir(filepath.Join(deckDir, "extras"), 0o755); err != nil {
		t.Fatalf("creating subdir: %v", err)
	}

	deck, err := LoadDeckDir(deckDir)
	if err != nil {
		t.Fatalf("LoadDeckDir returned error: %v", err)
	}
	if deck.Name != "physics-101" {
		t.Errorf("Expected deck name physics-101, got %q", deck.Name)
	}
	if deck.SlideCount() != 3 {
		t.Fatalf("Expected 3 slides, got %d", deck.SlideCount())
	}

	r, _, _, _ := deck.Slides[1].Image.At(3, 3).RGBA()
	if r == 0 {
		t.Error("Expected slide_2 (red) in position 1, before slide_10")
	}
	_, _, b, _ := deck.Slides[2].Image.At(3, 3).RGBA()
	if b == 0 {
		t.Error("Expected slide_10 (blue) in position 2")
	}
}

func TestLoadDeckZip(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"slides/page_10.png", "slides/page_2.png", "slides/.hidden.png", "readme.txt"} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating archive entry: %v", err)
		}
		if filepath.Ext(name) == ".png" {
			img := image.NewRGBA(image.Rect(0, 0, 4, 4))
			if err := png.Encode(w, img); err != nil {
				t.Fatalf("encoding entry: %v", err)
			}
		} else {
			if _, err := w.Write([]byte("notes")); err != nil {
				t.Fatalf("writing entry: %v", err)
			}
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing archive: %v", err)
	}
	path := filepath.Join(dir, "deck.zip")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing archive: %v", err)
	}

	deck, err := LoadDeckZip("uploaded", path)
	if err != nil {
		t.Fatalf("LoadDeckZip returned error: %v", err)
	}
	if deck.SlideCount() != 2 {
		t.Errorf("Expected 2 slides (hidden and text entries skipped), got %d", deck.SlideCount())
	}

	fromReader, err := LoadDeckZipReader("uploaded", bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("LoadDeckZipReader returned error: %v", err)
	}
	if fromReader.SlideCount() != deck.SlideCount() {
		t.Errorf("Expected reader form to match file form, got %d slides", fromReader.SlideCount())
	}

	if _, err := LoadDeckZip("bad", filepath.Join(dir, "missing.zip")); err == nil {
		t.Error("Expected error for missing archive")
	}
}

func TestNaturalLess(t *testing.T) {
	tests := []struct {
		a, b     string
		expected bool
	}{
		{"slide_2.png", "slide_10.png", true},
		{"slide_10.png", "slide_2.png", false},
		{"slide_2.png", "slide_2.png", false},
		{"a.png", "b.png", true},
		{"slide_2.png", "slide_02.png", false},
		{"10.png", "9.png", false},
		{"slide.png", "slide_1.png", true},
		{"", "a", true},
	}

	for _, tt := range tests {
		if got := naturalLess(tt.a, tt.b); got != tt.expected {
			t.Errorf("naturalLess(%q, %q): expected %v, got %v", tt.a, tt.b, tt.expected, got)
		}
	}
}
