// pdfsift is a command-line tool that searches a folder tree of PDF
// documents for a term and can open the source PDF with the match
// highlighted.
//
// Matching is diacritic-, case- and hyphenation-insensitive by default:
// a term like "cafe" finds "Café", and words split across line breaks by
// hyphenation are joined back together before comparison.
//
// Usage:
//
//	pdfsift -term "machine learning" [options]
//
// Search options:
//
//	-term string      Text to search for (required unless -history)
//	-dir string       Folder tree to scan (default: configured folder)
//	-exact            Whole-word match: "kitap" will not match "kitaplık"
//	-match-case       Keep letter case significant
//	-keep-accents     Keep diacritics significant
//	-no-sidecars      Ignore hOCR sidecar files next to scanned PDFs
//
// Result options:
//
//	-open int         Highlight match N and open it in the PDF viewer
//	-out string       Directory for highlighted copies (default: temp dir)
//
// Other options:
//
//	-config string    Config file path (default: per-user location)
//	-history          Print remembered search terms and exit
//	-log-level string Log verbosity: debug, info, warn, error
//
// Examples:
//
// Search the configured folder and open the third match highlighted:
//
//	pdfsift -term "ashab-ı kehf" -open 3
//
// Exact-match scan of another tree:
//
//	pdfsift -dir ~/archive -term kitap -exact
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"

	"github.com/sardag/pdfsift/pkg/config"
	"github.com/sardag/pdfsift/pkg/highlight"
	"github.com/sardag/pdfsift/pkg/pdfsearch"
	"github.com/sardag/pdfsift/pkg/pdfstore"
	"github.com/sardag/pdfsift/pkg/textnorm"
	"github.com/sardag/pdfsift/pkg/viewer"
)

func main() {
	term := flag.String("term", "", "Text to search for")
	dir := flag.String("dir", "", "Folder tree to scan (default: configured folder)")
	exact := flag.Bool("exact", false, "Whole-word match")
	matchCase := flag.Bool("match-case", false, "Keep letter case significant")
	keepAccents := flag.Bool("keep-accents", false, "Keep diacritics significant")
	noSidecars := flag.Bool("no-sidecars", false, "Ignore hOCR sidecar files")
	open := flag.Int("open", 0, "Highlight match N and open it in the PDF viewer")
	out := flag.String("out", "", "Directory for highlighted copies")
	configPath := flag.String("config", config.DefaultPath(), "Config file path")
	showHistory := flag.Bool("history", false, "Print remembered search terms and exit")
	logLevel := flag.String("log-level", "warn", "Log verbosity: debug, info, warn, error")
	flag.Parse()

	log := newLogger(*logLevel)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *showHistory {
		for _, t := range cfg.SearchHistory {
			fmt.Println(t)
		}
		return
	}

	if strings.TrimSpace(*term) == "" {
		fmt.Fprintln(os.Stderr, "Error: must provide -term")
		flag.Usage()
		os.Exit(1)
	}

	root := *dir
	if root == "" {
		root = cfg.DefaultFolder
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: %s is not a readable folder\n", root)
		os.Exit(1)
	}

	opts := textnorm.DefaultOptions()
	opts.Lowercase = !*matchCase
	opts.RemoveAccents = !*keepAccents

	// Ctrl-C cancels the scan; matches found so far are still printed.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store := &pdfstore.Store{UseSidecars: !*noSidecars, Log: log}
	scanner := &pdfsearch.Scanner{
		Source: pdfstore.Source{Store: store},
		Log:    log,
		Norm:   opts,
		OnProgress: func(p pdfsearch.Progress) {
			fmt.Fprintf(os.Stderr, "\r%d/%d documents, %d pages, %d matches (%.1fs) ",
				p.DocsDone+1, p.DocsTotal, p.PagesDone, p.Matches, p.Elapsed.Seconds())
		},
	}

	res, err := scanner.Run(ctx, root, *term, *exact)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}

	printMatches(res.Matches)
	printStatus(res)

	cfg.AddHistory(*term)
	if *dir != "" {
		cfg.DefaultFolder = root
	}
	if err := cfg.Save(*configPath); err != nil {
		log.Warn("could not save config", "error", err)
	}

	if *open > 0 {
		if err := openMatch(res.Matches, *open, *out, cfg.ViewerPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func newLogger(level string) *slog.Logger {
	handler := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           charmLevel(level),
	})
	return slog.New(handler)
}

func charmLevel(level string) charmlog.Level {
	switch level {
	case "debug":
		return charmlog.DebugLevel
	case "info":
		return charmlog.InfoLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.WarnLevel
	}
}

func printMatches(matches []pdfsearch.Match) {
	for i, m := range matches {
		name := strings.TrimSuffix(filepath.Base(m.Source), filepath.Ext(m.Source))
		fmt.Printf("%4d  %s, p.%d  %s\n", i+1, name, m.Page, m.Snippet)
	}
}

func printStatus(res *pdfsearch.Result) {
	switch res.Status {
	case pdfsearch.StatusNoDocuments:
		fmt.Println("No PDF files found in the selected folder.")
	case pdfsearch.StatusNoMatches:
		fmt.Printf("No matches found (%d documents scanned in %.1fs).\n",
			res.DocsScanned, res.Elapsed.Seconds())
	case pdfsearch.StatusCancelled:
		fmt.Printf("Cancelled after %d matches (%.1fs).\n",
			len(res.Matches), res.Elapsed.Seconds())
	default:
		fmt.Printf("%d matches found in %d documents (%.1fs).\n",
			len(res.Matches), res.DocsScanned, res.Elapsed.Seconds())
	}
}

// openMatch writes a highlighted copy of the selected match's document,
// hands it to the OS viewer at the matched page and stays attached until
// the viewer exits. Ctrl-C while attached closes the viewer too.
func openMatch(matches []pdfsearch.Match, n int, outDir, viewerPath string) error {
	if n > len(matches) {
		return fmt.Errorf("match %d out of range, only %d found", n, len(matches))
	}
	m := matches[n-1]

	if outDir == "" {
		tmp, err := os.MkdirTemp("", "pdfsift-")
		if err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		outDir = tmp
	} else if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	dst := filepath.Join(outDir, filepath.Base(m.Source))
	if err := highlight.File(m.Source, dst, m.Page, m.Rects, highlight.DefaultConfig()); err != nil {
		return err
	}
	fmt.Println("Highlighted copy:", dst)

	launcher := &viewer.Launcher{Command: viewerPath}
	if err := launcher.Open(dst, m.Page); err != nil {
		return err
	}

	// A fresh signal context: an interrupt during the earlier scan must
	// not tear the viewer down the moment it appears.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	launcher.Wait(ctx)
	return nil
}
