// Package pdfstore is the PDF-access boundary of the search core: it
// discovers documents under a folder tree and extracts per-page text and
// per-word geometry from them.
//
// Text and geometry come from the PDF's own text layer via
// github.com/ledongthuc/pdf. For scanned documents whose text layer was
// produced by an OCR engine, an hOCR sidecar file next to the PDF
// (document.pdf -> document.hocr) takes precedence, since it carries the
// word boxes the bare text layer lacks.
package pdfstore

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/sardag/pdfsift/pkg/pdfsearch"
)

// Store opens PDF documents for scanning. The zero value is usable.
type Store struct {
	// UseSidecars enables hOCR sidecar lookup next to each PDF.
	UseSidecars bool
	// Log receives sidecar parse warnings; nil falls back to slog.Default.
	Log *slog.Logger
}

// List returns every PDF under root, recursively, sorted by path. An
// empty result is valid. Unreadable subdirectories are skipped; only a
// root that cannot be walked at all is an error.
func (s *Store) List(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Open acquires path for page extraction. The returned Document holds an
// open file handle until Close.
func (s *Store) Open(path string) (*Document, error) {
	f, r, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	doc := &Document{path: path, file: f, reader: r}

	if s.UseSidecars {
		pages, err := loadSidecar(path)
		switch {
		case err == nil:
			doc.sidecar = pages
		case !os.IsNotExist(err):
			s.logger().Warn("ignoring unreadable hOCR sidecar",
				"pdf", path, "error", err)
		}
	}
	return doc, nil
}

func (s *Store) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

// Document is one open PDF. Not safe for concurrent page extraction.
type Document struct {
	path    string
	file    *os.File
	reader  *pdflib.Reader
	sidecar []sidecarPage
}

// NumPages returns the page count of the PDF itself; sidecar pages
// beyond it are ignored.
func (d *Document) NumPages() int {
	return d.reader.NumPage()
}

// PageText returns the extracted text of the 1-based page. When a
// sidecar covers the page, its reconstructed text is used instead of the
// PDF text layer.
func (d *Document) PageText(page int) (text string, err error) {
	defer recoverExtraction(d.path, page, &err)

	if sc, ok := d.sidecarFor(page); ok {
		return sc.text, nil
	}

	p := d.reader.Page(page)
	if p.V.IsNull() {
		return "", fmt.Errorf("%s page %d: no content", d.path, page)
	}
	text, err = p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("%s page %d: plain text: %w", d.path, page, err)
	}
	return text, nil
}

// PageWords returns the page's words with bounding boxes, in reading
// order, in PDF user space (points, origin bottom-left).
func (d *Document) PageWords(page int) (words []pdfsearch.Word, err error) {
	defer recoverExtraction(d.path, page, &err)

	if sc, ok := d.sidecarFor(page); ok {
		return sc.words, nil
	}

	p := d.reader.Page(page)
	if p.V.IsNull() {
		return nil, fmt.Errorf("%s page %d: no content", d.path, page)
	}
	return assembleWords(p.Content().Text), nil
}

// Close releases the underlying file handle.
func (d *Document) Close() error {
	return d.file.Close()
}

func (d *Document) sidecarFor(page int) (sidecarPage, bool) {
	if page >= 1 && page <= len(d.sidecar) {
		return d.sidecar[page-1], true
	}
	return sidecarPage{}, false
}

// recoverExtraction converts extraction panics into per-page errors.
// ledongthuc/pdf signals some malformed content streams by panicking,
// and one bad page must not take down the whole scan.
func recoverExtraction(path string, page int, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s page %d: extraction failed: %v", path, page, r)
	}
}

// Source adapts Store to the pdfsearch.Source interface.
type Source struct {
	*Store
}

// Open satisfies pdfsearch.Source.
func (s Source) Open(path string) (pdfsearch.Document, error) {
	return s.Store.Open(path)
}
