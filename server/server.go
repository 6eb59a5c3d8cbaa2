// Package server exposes handout conversion over HTTP.
//
// A single POST /convert endpoint accepts multipart uploads of slide decks
// (zip archives of images, or loose image files) and responds with either
// one merged PDF or a zip archive of per-deck PDFs.
package server

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/flanksource/commons/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"

	"github.com/tsawler/handout"
	"github.com/tsawler/handout/deckio"
	"github.com/tsawler/handout/format"
	"github.com/tsawler/handout/model"
)

// DefaultMaxUploadBytes caps the total size of one conversion request.
const DefaultMaxUploadBytes = 16 << 20

// Config holds the server settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// MaxUploadBytes caps the multipart request body size.
	MaxUploadBytes int64

	// RateLimit is the number of requests allowed per client IP per minute.
	RateLimit int
}

// DefaultConfig returns the default server settings.
func DefaultConfig() Config {
	return Config{
		Addr:           ":8080",
		MaxUploadBytes: DefaultMaxUploadBytes,
		RateLimit:      30,
	}
}

// Server handles conversion requests.
type Server struct {
	cfg    Config
	router chi.Router
}

// New creates a Server with its routes and middleware configured.
func New(cfg Config) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}

	s := &Server{cfg: cfg, router: chi.NewRouter()}

	s.router.Use(middleware.Recoverer)
	if cfg.RateLimit > 0 {
		s.router.Use(httprate.LimitByIP(cfg.RateLimit, time.Minute))
	}

	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/convert", s.handleConvert)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the server on the configured address and blocks.
func (s *Server) ListenAndServe() error {
	logger.Infof("handout server listening on %s", s.cfg.Addr)
	return http.ListenAndServe(s.cfg.Addr, s)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

// convertRequest is the parsed form of one conversion upload.
type convertRequest struct {
	decks      []*model.Deck
	singleFile bool
	configure  func(*handout.Converter) *handout.Converter
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		logger.Warnf("[%s] rejecting upload: %v", requestID, err)
		http.Error(w, "upload too large or malformed", http.StatusRequestEntityTooLarge)
		return
	}
	defer r.MultipartForm.RemoveAll()

	req, err := parseConvertRequest(r)
	if err != nil {
		logger.Warnf("[%s] bad request: %v", requestID, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logger.Infof("[%s] converting %d deck(s), single_file=%v", requestID, len(req.decks), req.singleFile)

	if req.singleFile {
		s.writeMergedPDF(w, requestID, req)
		return
	}
	s.writeDeckArchive(w, requestID, req)
}

// writeMergedPDF converts all decks into one packed PDF.
func (s *Server) writeMergedPDF(w http.ResponseWriter, requestID string, req *convertRequest) {
	conv := req.configure(handout.New(req.decks...).Packed())

	var buf bytes.Buffer
	_, warnings, err := conv.WriteTo(&buf)
	if err != nil {
		logger.Errorf("[%s] conversion failed: %v", requestID, err)
		http.Error(w, "conversion failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	logWarnings(requestID, warnings)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="handout.pdf"`)
	w.Write(buf.Bytes())
}

// writeDeckArchive converts each deck into its own PDF and responds with a
// zip archive of the results.
func (s *Server) writeDeckArchive(w http.ResponseWriter, requestID string, req *convertRequest) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, deck := range req.decks {
		conv := req.configure(handout.New(deck))

		var pdf bytes.Buffer
		_, warnings, err := conv.WriteTo(&pdf)
		if err != nil {
			logger.Errorf("[%s] conversion of %q failed: %v", requestID, deck.Name, err)
			http.Error(w, fmt.Sprintf("conversion of %q failed: %v", deck.Name, err), http.StatusUnprocessableEntity)
			return
		}
		logWarnings(requestID, warnings)

		entry, err := zw.Create(deck.Name + ".pdf")
		if err == nil {
			_, err = entry.Write(pdf.Bytes())
		}
		if err != nil {
			logger.Errorf("[%s] archiving %q failed: %v", requestID, deck.Name, err)
			http.Error(w, "archiving failed", http.StatusInternalServerError)
			return
		}
	}

	if err := zw.Close(); err != nil {
		logger.Errorf("[%s] archiving failed: %v", requestID, err)
		http.Error(w, "archiving failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="handouts.zip"`)
	w.Write(buf.Bytes())
}

// parseConvertRequest reads the uploaded decks and layout fields. Each zip
// upload becomes one deck named after the archive; loose image uploads are
// collected into a single "slides" deck in upload order.
func parseConvertRequest(r *http.Request) (*convertRequest, error) {
	files := r.MultipartForm.File["files[]"]
	if len(files) == 0 {
		files = r.MultipartForm.File["files"]
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files uploaded")
	}

	req := &convertRequest{}
	var loose *model.Deck

	for _, fh := range files {
		data, err := readUpload(fh)
		if err != nil {
			return nil, err
		}

		switch f := format.DetectFromMagic(data); {
		case f == format.Zip:
			name := strings.TrimSuffix(filepath.Base(fh.Filename), filepath.Ext(fh.Filename))
			deck, err := deckio.LoadDeckZipReader(name, bytes.NewReader(data), int64(len(data)))
			if err != nil {
				return nil, fmt.Errorf("reading deck %q: %w", fh.Filename, err)
			}
			if deck.SlideCount() == 0 {
				return nil, fmt.Errorf("deck %q contains no slide images", fh.Filename)
			}
			req.decks = append(req.decks, deck)

		case f.IsImage():
			img, _, err := image.Decode(bytes.NewReader(data))
			if err != nil {
				return nil, fmt.Errorf("decoding %q: %w", fh.Filename, err)
			}
			if loose == nil {
				loose = model.NewDeck("slides")
			}
			loose.AddSlide(img)

		default:
			return nil, fmt.Errorf("unsupported upload %q", fh.Filename)
		}
	}
	if loose != nil {
		req.decks = append(req.decks, loose)
	}

	req.singleFile = formBool(r, "single_file")
	configure, err := layoutConfigurator(r)
	if err != nil {
		return nil, err
	}
	req.configure = configure

	return req, nil
}

// layoutConfigurator turns the optional layout form fields into a Converter
// configuration step.
func layoutConfigurator(r *http.Request) (func(*handout.Converter) *handout.Converter, error) {
	slidesPerRow, err := formInt(r, "slides_per_row")
	if err != nil {
		return nil, err
	}
	gap, err := formFloat(r, "gap")
	if err != nil {
		return nil, err
	}
	margin, err := formFloat(r, "margin")
	if err != nil {
		return nil, err
	}
	topMargin, err := formFloat(r, "top_margin")
	if err != nil {
		return nil, err
	}
	rtl := formBool(r, "rtl")
	filter := formBool(r, "filter_progressive")

	return func(c *handout.Converter) *handout.Converter {
		if slidesPerRow > 0 {
			c = c.SlidesPerRow(slidesPerRow)
		}
		if gap >= 0 {
			c = c.Gap(gap)
		}
		if margin >= 0 {
			c = c.Margin(margin)
		}
		if topMargin >= 0 {
			c = c.TopMargin(topMargin)
		}
		if rtl {
			c = c.RTL()
		}
		if filter {
			c = c.FilterProgressive()
		}
		return c
	}, nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload %q: %w", fh.Filename, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("reading upload %q: %w", fh.Filename, err)
	}
	return buf.Bytes(), nil
}

func formBool(r *http.Request, field string) bool {
	switch strings.ToLower(r.FormValue(field)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func formInt(r *http.Request, field string) (int, error) {
	v := r.FormValue(field)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", field, v)
	}
	return n, nil
}

// formFloat returns -1 when the field is absent, so callers can tell "not
// set" apart from a legitimate zero.
func formFloat(r *http.Request, field string) (float64, error) {
	v := r.FormValue(field)
	if v == "" {
		return -1, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("invalid %s: %q", field, v)
	}
	return f, nil
}

func logWarnings(requestID string, warnings []handout.Warning) {
	for _, w := range warnings {
		logger.Warnf("[%s] %s", requestID, w.String())
	}
}
