package pdfstore

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/sardag/pdfsift/pkg/pdfsearch"
)

// sidecarPage is one page of word geometry read from an hOCR file.
type sidecarPage struct {
	text  string
	words []pdfsearch.Word
}

// SidecarPath returns the hOCR sidecar path convention for a PDF:
// the same base name with an .hocr extension.
func SidecarPath(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + ".hocr"
}

func loadSidecar(pdfPath string) ([]sidecarPage, error) {
	data, err := os.ReadFile(SidecarPath(pdfPath))
	if err != nil {
		return nil, err
	}
	return parseSidecar(data)
}

// parseSidecar extracts per-page words from hOCR markup. Only ocr_page
// and ocrx_word elements matter here; the area/paragraph hierarchy OCR
// engines emit in between is irrelevant to matching and is traversed
// without being modeled. Lines (ocr_line) only contribute line breaks to
// the reconstructed page text.
//
// hOCR bounding boxes are top-left-origin pixels. They are flipped into
// bottom-left PDF space using the page bbox height, assuming the common
// 1:1 pixel-to-point layout of OCR-produced PDFs.
func parseSidecar(data []byte) ([]sidecarPage, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse hOCR: %w", err)
	}

	var pages []sidecarPage
	var findPages func(n *html.Node)
	findPages = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "ocr_page") {
			pages = append(pages, parsePage(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findPages(c)
		}
	}
	findPages(doc)

	if len(pages) == 0 {
		return nil, fmt.Errorf("no ocr_page elements in hOCR data")
	}
	return pages, nil
}

func parsePage(pageNode *html.Node) sidecarPage {
	_, _, _, pageH, _ := bboxFromTitle(attr(pageNode, "title"))

	var page sidecarPage
	var text strings.Builder
	sep := ""

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case hasClass(n, "ocrx_word"):
				word := strings.TrimSpace(nodeText(n))
				if word == "" {
					return
				}
				x1, y1, x2, y2, ok := bboxFromTitle(attr(n, "title"))
				if !ok {
					return
				}
				text.WriteString(sep)
				text.WriteString(word)
				sep = " "
				page.words = append(page.words, pdfsearch.Word{
					Text: word,
					Box: pdfsearch.BoundingBox{
						X1: x1,
						Y1: pageH - y2,
						X2: x2,
						Y2: pageH - y1,
					},
				})
				return
			case hasClass(n, "ocr_line") && text.Len() > 0:
				sep = "\n"
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(pageNode)

	page.text = text.String()
	return page
}

// bboxFromTitle pulls "bbox x1 y1 x2 y2" out of an hOCR title attribute,
// e.g. "bbox 100 200 300 400; x_wconf 95".
func bboxFromTitle(title string) (x1, y1, x2, y2 float64, ok bool) {
	for _, part := range strings.Split(title, ";") {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) < 5 || fields[0] != "bbox" {
			continue
		}
		coords := make([]float64, 4)
		for i, f := range fields[1:5] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return 0, 0, 0, 0, false
			}
			coords[i] = v
		}
		return coords[0], coords[1], coords[2], coords[3], true
	}
	return 0, 0, 0, 0, false
}

func hasClass(n *html.Node, class string) bool {
	return strings.Contains(attr(n, "class"), class)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}
