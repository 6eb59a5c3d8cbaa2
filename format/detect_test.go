package format

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		expected Format
	}{
		{"slide.png", PNG},
		{"slide.PNG", PNG},
		{"slide.jpg", JPEG},
		{"slide.jpeg", JPEG},
		{"slide.gif", GIF},
		{"slide.bmp", BMP},
		{"slide.tif", TIFF},
		{"slide.tiff", TIFF},
		{"slide.webp", WebP},
		{"deck.zip", Zip},
		{"/path/to/slide_03.Png", PNG},
		{"slide.txt", Unknown},
		{"slide", Unknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.expected {
			t.Errorf("Detect(%q): expected %v, got %v", tt.filename, tt.expected, got)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected Format
	}{
		{"png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0d"), PNG},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46, 0x00, 0x01}, JPEG},
		{"gif89a", []byte("GIF89a\x01\x00\x01\x00\x00\x00"), GIF},
		{"gif87a", []byte("GIF87a\x01\x00\x01\x00\x00\x00"), GIF},
		{"bmp", []byte("BM\x36\x00\x00\x00\x00\x00\x00\x00\x36\x00"), BMP},
		{"tiff little-endian", []byte("II*\x00\x08\x00\x00\x00\x00\x00\x00\x00"), TIFF},
		{"tiff big-endian", []byte("MM\x00*\x00\x00\x00\x08\x00\x00\x00\x00"), TIFF},
		{"webp", []byte("RIFF\x24\x00\x00\x00WEBP"), WebP},
		{"zip", []byte("PK\x03\x04\x14\x00\x00\x00\x08\x00\x00\x00"), Zip},
		{"text", []byte("hello world!"), Unknown},
		{"too short", []byte("\x89PNG"), Unknown},
		{"empty", nil, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDetectFile(t *testing.T) {
	dir := t.TempDir()

	// A real PNG with a misleading extension; content wins.
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	disguised := filepath.Join(dir, "slide.jpg")
	if err := os.WriteFile(disguised, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	got, err := DetectFile(disguised)
	if err != nil {
		t.Fatalf("DetectFile returned error: %v", err)
	}
	if got != PNG {
		t.Errorf("Expected PNG from content detection, got %v", got)
	}

	// Too short for a signature; extension fallback applies.
	short := filepath.Join(dir, "tiny.gif")
	if err := os.WriteFile(short, []byte("x"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	got, err = DetectFile(short)
	if err != nil {
		t.Fatalf("DetectFile returned error: %v", err)
	}
	if got != GIF {
		t.Errorf("Expected GIF from extension fallback, got %v", got)
	}

	if _, err := DetectFile(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestFormatString(t *testing.T) {
	tests := []struct {
		format   Format
		expected string
	}{
		{PNG, "PNG"},
		{JPEG, "JPEG"},
		{GIF, "GIF"},
		{BMP, "BMP"},
		{TIFF, "TIFF"},
		{WebP, "WebP"},
		{Zip, "ZIP"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.expected {
			t.Errorf("Expected %q, got %q", tt.expected, got)
		}
	}
}

func TestIsImage(t *testing.T) {
	for _, f := range []Format{PNG, JPEG, GIF, BMP, TIFF, WebP} {
		if !f.IsImage() {
			t.Errorf("Expected %v to be an image format", f)
		}
	}
	for _, f := range []Format{Zip, Unknown} {
		if f.IsImage() {
			t.Errorf("Expected %v not to be an image format", f)
		}
	}
}
