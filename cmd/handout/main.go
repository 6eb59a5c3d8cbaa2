// Command handout converts slide decks into paginated handout PDFs.
//
// Each argument names one deck: either a directory of slide images or a zip
// archive of them. Decks are bookmarked in the output by name.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flanksource/commons/logger"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/spf13/cobra"

	"github.com/tsawler/handout"
	"github.com/tsawler/handout/deckio"
	"github.com/tsawler/handout/format"
	"github.com/tsawler/handout/model"
	"github.com/tsawler/handout/server"
)

// Build information (set by goreleaser)
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type convertFlags struct {
	output            string
	slidesPerRow      int
	gap               float64
	margin            float64
	topMargin         float64
	pageWidth         float64
	pageHeight        float64
	packed            bool
	noSpacer          bool
	rtl               bool
	rtlAuto           bool
	filterProgressive bool
	upscale           float64
	workers           int
	jpegQuality       int
	optimize          bool
}

func newRootCommand() *cobra.Command {
	var flags convertFlags

	rootCmd := &cobra.Command{
		Use:   "handout [flags] <deck>...",
		Short: "Convert slide decks into paginated handout PDFs",
		Long: `Handout arranges slide images on a fixed page grid, optionally collapsing
progressive build slides to their final state, and writes a bookmarked PDF.

Each argument names one deck: a directory of slide images, or a zip archive
of them. Slides inside a deck are ordered by natural filename comparison,
so slide_2.png comes before slide_10.png.`,
		Example: `  handout -o week1.pdf lectures/week1
  handout --slides-per-row 3 --filter-progressive -o course.pdf week1.zip week2.zip
  handout --packed --rtl-auto -o merged.pdf decks/*.zip`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(flags, args)
		},
	}

	rootCmd.Flags().StringVarP(&flags.output, "output", "o", "handout.pdf", "output PDF path")
	rootCmd.Flags().IntVar(&flags.slidesPerRow, "slides-per-row", 2, "slides per page row")
	rootCmd.Flags().Float64Var(&flags.gap, "gap", 10, "gap between slides in points")
	rootCmd.Flags().Float64Var(&flags.margin, "margin", 20, "side and bottom page margin in points")
	rootCmd.Flags().Float64Var(&flags.topMargin, "top-margin", 0, "top page margin in points")
	rootCmd.Flags().Float64Var(&flags.pageWidth, "page-width", 0, "page width in points (default A4)")
	rootCmd.Flags().Float64Var(&flags.pageHeight, "page-height", 0, "page height in points (default A4)")
	rootCmd.Flags().BoolVar(&flags.packed, "packed", false, "pack all decks into one continuous slide stream")
	rootCmd.Flags().BoolVar(&flags.noSpacer, "no-spacer", false, "omit the blank spacer between packed decks")
	rootCmd.Flags().BoolVar(&flags.rtl, "rtl", false, "mirror the grid for right-to-left reading")
	rootCmd.Flags().BoolVar(&flags.rtlAuto, "rtl-auto", false, "mirror the grid when deck names are right-to-left")
	rootCmd.Flags().BoolVar(&flags.filterProgressive, "filter-progressive", false, "collapse progressive build slides to their final state")
	rootCmd.Flags().Float64Var(&flags.upscale, "upscale", 2.0, "compositing resolution multiplier")
	rootCmd.Flags().IntVar(&flags.workers, "workers", 1, "goroutines composing pages")
	rootCmd.Flags().IntVar(&flags.jpegQuality, "jpeg-quality", 75, "JPEG quality for embedded page rasters")
	rootCmd.Flags().BoolVar(&flags.optimize, "optimize", false, "run pdfcpu optimization on the output")

	rootCmd.AddCommand(newServeCommand(), newVersionCommand())
	return rootCmd
}

func runConvert(flags convertFlags, args []string) error {
	decks := make([]*model.Deck, 0, len(args))
	for _, arg := range args {
		deck, err := loadDeck(arg)
		if err != nil {
			return err
		}
		if deck.SlideCount() == 0 {
			return fmt.Errorf("deck %q contains no slide images", arg)
		}
		logger.Infof("loaded deck %q with %d slide(s)", deck.Name, deck.SlideCount())
		decks = append(decks, deck)
	}

	conv := handout.New(decks...).
		SlidesPerRow(flags.slidesPerRow).
		Gap(flags.gap).
		Margin(flags.margin).
		TopMargin(flags.topMargin).
		Upscale(flags.upscale).
		Workers(flags.workers).
		JPEGQuality(flags.jpegQuality)

	if flags.pageWidth > 0 && flags.pageHeight > 0 {
		conv = conv.PageSize(flags.pageWidth, flags.pageHeight)
	}
	if flags.packed {
		conv = conv.Packed()
	}
	if flags.noSpacer {
		conv = conv.NoSpacer()
	}
	if flags.rtl {
		conv = conv.RTL()
	} else if flags.rtlAuto {
		conv = conv.RTLAuto()
	}
	if flags.filterProgressive {
		conv = conv.FilterProgressive()
	}

	doc, warnings, err := conv.WritePDF(flags.output)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.Warnf("%s", w.String())
	}

	if flags.optimize {
		if err := api.OptimizeFile(flags.output, "", nil); err != nil {
			return fmt.Errorf("optimizing %s: %w", flags.output, err)
		}
	}

	logger.Infof("wrote %s: %d page(s), %d bookmark(s)", flags.output, doc.PageCount(), len(doc.Bookmarks))
	return nil
}

// loadDeck loads a deck from a directory or a zip archive path.
func loadDeck(path string) (*model.Deck, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading deck %q: %w", path, err)
	}
	if info.IsDir() {
		return deckio.LoadDeckDir(path)
	}

	f, err := format.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading deck %q: %w", path, err)
	}
	if f != format.Zip {
		return nil, fmt.Errorf("deck %q must be a directory or a zip archive of slide images", path)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return deckio.LoadDeckZip(name, path)
}

func newServeCommand() *cobra.Command {
	cfg := server.DefaultConfig()

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the handout conversion HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.New(cfg).ListenAndServe()
		},
	}

	serveCmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	serveCmd.Flags().Int64Var(&cfg.MaxUploadBytes, "max-upload", cfg.MaxUploadBytes, "maximum upload size in bytes")
	serveCmd.Flags().IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "requests per client IP per minute (0 disables)")

	return serveCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("handout %s (%s)\n", version, commit)
		},
	}
}
