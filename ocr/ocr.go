//go:build ocr

// Package ocr recognizes text on slide images.
//
// Its main use is automatic right-to-left detection: the recognized text of
// a deck's first slides is fed to text.DetectDirection to decide whether the
// page grid should be mirrored.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// OCR support is compiled in only with the "ocr" build tag:
//
//	go build -tags ocr
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps Tesseract for slide text recognition.
type Client struct {
	client *gosseract.Client
}

// New creates an OCR client. Close it when no longer needed to release
// Tesseract resources.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c != nil && c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizeSlide performs OCR on a slide image and returns the recognized
// text with surrounding whitespace trimmed.
func (c *Client) RecognizeSlide(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("nil slide image")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encoding slide for OCR: %w", err)
	}
	if err := c.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// SetLanguage sets the language(s) used for recognition. Multiple languages
// can be specified as a "+" separated string (e.g. "eng+ara"). Default is
// "eng".
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}
