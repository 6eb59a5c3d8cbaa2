// Package deckio loads slide decks from image files, directories, and zip
// archives.
//
// A deck is an ordered sequence of slide images. Directory and archive
// loading orders slides by natural filename comparison, so slide_2.png sorts
// before slide_10.png. PNG, JPEG, GIF, BMP, TIFF and WebP images are
// supported.
package deckio

import (
	"archive/zip"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	// Slide image decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/handout/format"
	"github.com/tsawler/handout/model"
)

// LoadDeck builds a deck from an explicit list of image files, in the order
// given. Loading fails on the first file that is missing, unsupported, or
// does not decode.
func LoadDeck(name string, paths []string) (*model.Deck, error) {
	deck := model.NewDeck(name)
	for _, path := range paths {
		img, err := loadImage(path)
		if err != nil {
			return nil, err
		}
		deck.AddSlide(img)
	}
	return deck, nil
}

// LoadDeckDir builds a deck from every supported image file directly inside
// dir, ordered by natural filename comparison. The deck is named after the
// directory. Subdirectories and non-image files are skipped.
func LoadDeckDir(dir string) (*model.Deck, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading deck directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if format.Detect(entry.Name()).IsImage() {
			names = append(names, entry.Name())
		}
	}
	sortNatural(names)

	deck := model.NewDeck(filepath.Base(dir))
	for _, name := range names {
		img, err := loadImage(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		deck.AddSlide(img)
	}
	return deck, nil
}

// LoadDeckZip builds a deck from the supported image files inside a zip
// archive, ordered by natural filename comparison. Directory entries and
// non-image files are skipped.
func LoadDeckZip(name, path string) (*model.Deck, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening deck archive: %w", err)
	}
	defer r.Close()
	return loadDeckZip(name, &r.Reader)
}

// LoadDeckZipReader is the io.ReaderAt form of LoadDeckZip, for archives
// held in memory rather than on disk.
func LoadDeckZipReader(name string, ra io.ReaderAt, size int64) (*model.Deck, error) {
	r, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening deck archive: %w", err)
	}
	return loadDeckZip(name, r)
}

func loadDeckZip(name string, r *zip.Reader) (*model.Deck, error) {
	var files []*zip.File
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if strings.HasPrefix(filepath.Base(f.Name), ".") {
			continue
		}
		if format.Detect(f.Name).IsImage() {
			files = append(files, f)
		}
	}
	sort.Slice(files, func(i, j int) bool {
		return naturalLess(files[i].Name, files[j].Name)
	})

	deck := model.NewDeck(name)
	for _, f := range files {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s in archive: %w", f.Name, err)
		}
		img, _, err := image.Decode(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("decoding %s in archive: %w", f.Name, err)
		}
		deck.AddSlide(img)
	}
	return deck, nil
}

func loadImage(path string) (image.Image, error) {
	f := format.Detect(path)
	if !f.IsImage() {
		return nil, fmt.Errorf("unsupported slide format for %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening slide: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// sortNatural sorts filenames so that embedded numbers compare by value.
func sortNatural(names []string) {
	sort.Slice(names, func(i, j int) bool {
		return naturalLess(names[i], names[j])
	})
}

// naturalLess compares two strings, treating runs of digits as numbers.
func naturalLess(a, b string) bool {
	for len(a) > 0 && len(b) > 0 {
		if isDigit(a[0]) && isDigit(b[0]) {
			an, arest := splitNumber(a)
			bn, brest := splitNumber(b)
			if an != bn {
				return an < bn
			}
			a, b = arest, brest
			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// splitNumber consumes a leading digit run and returns its value with the
// remainder of the string. Values are capped well below overflow for any
// plausible filename.
func splitNumber(s string) (uint64, string) {
	var n uint64
	i := 0
	for i < len(s) && isDigit(s[i]) {
		if n < 1<<50 {
			n = n*10 + uint64(s[i]-'0')
		}
		i++
	}
	return n, s[i:]
}
