// Package highlight produces a copy of a PDF with filled rectangles
// drawn over matched words. Pages of the source document are imported
// one by one and re-emitted; the target page gets a semi-transparent
// highlight layer on top, in the page's own coordinate space, so the
// rectangles land exactly where the matcher found the words.
package highlight

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"

	"github.com/sardag/pdfsift/pkg/pdfsearch"
)

// Config holds the visual settings for highlight rendering.
type Config struct {
	R, G, B   int     // fill color
	Opacity   float64 // 0..1 alpha for the fill
	LayerName string  // base name of the highlight layer
}

// DefaultConfig uses a tomato fill, readable over both light and dark
// page backgrounds.
func DefaultConfig() Config {
	return Config{R: 255, G: 99, B: 71, Opacity: 0.45, LayerName: "Highlights"}
}

// Apply returns a copy of pdfData with rects highlighted on the given
// 1-based page. Rectangles are in PDF user space (origin bottom-left),
// as produced by the search core.
func Apply(pdfData []byte, page int, rects []pdfsearch.BoundingBox, cfg Config) ([]byte, error) {
	if len(pdfData) == 0 {
		return nil, fmt.Errorf("input PDF data is empty")
	}
	if page < 1 {
		return nil, fmt.Errorf("page must be at least 1, got %d", page)
	}

	pdf := fpdf.New("P", "pt", "", "")
	importer := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(pdfData))

	// Importing the first page populates the importer's page inventory.
	tpl := importer.ImportPageFromStream(pdf, &rs, 1, "/MediaBox")
	sizes := importer.GetPageSizes()
	numPages := len(sizes)
	if page > numPages {
		return nil, fmt.Errorf("page %d out of range, document has %d pages", page, numPages)
	}

	for p := 1; p <= numPages; p++ {
		box := sizes[p]["/MediaBox"]
		w, h := box["w"], box["h"]

		pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})
		if p > 1 {
			tpl = importer.ImportPageFromStream(pdf, &rs, p, "/MediaBox")
		}
		importer.UseImportedTemplate(pdf, tpl, 0, 0, w, 0)

		if p == page {
			drawHighlights(pdf, h, rects, cfg, p)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("emit highlighted PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// File reads src, highlights rects on page and writes the result to dst
// atomically (temp file in the destination directory, then rename).
func File(src, dst string, page int, rects []pdfsearch.BoundingBox, cfg Config) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	out, err := Apply(data, page, rects, cfg)
	if err != nil {
		return fmt.Errorf("highlight %s: %w", src, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".highlight-*.pdf")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", dst, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp output: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", dst, err)
	}
	return nil
}

// drawHighlights paints the match rectangles on a named layer so viewers
// that understand optional content can toggle them.
func drawHighlights(pdf *fpdf.Fpdf, pageHeight float64, rects []pdfsearch.BoundingBox, cfg Config, pageNum int) {
	layer := pdf.AddLayer(fmt.Sprintf("%s (Page %d)", cfg.LayerName, pageNum), true)
	pdf.BeginLayer(layer)
	pdf.SetFillColor(cfg.R, cfg.G, cfg.B)
	pdf.SetAlpha(cfg.Opacity, "Multiply")

	for _, r := range rects {
		x, y, w, h := pageRect(r, pageHeight)
		if w <= 0 || h <= 0 {
			continue
		}
		pdf.Rect(x, y, w, h, "F")
	}

	pdf.SetAlpha(1.0, "Normal")
	pdf.EndLayer()
}

// pageRect converts a bottom-left-origin bounding box into fpdf's
// top-left drawing coordinates.
func pageRect(b pdfsearch.BoundingBox, pageHeight float64) (x, y, w, h float64) {
	return b.X1, pageHeight - b.Y2, b.X2 - b.X1, b.Y2 - b.Y1
}
