package pdfstore

import (
	"math"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/sardag/pdfsift/pkg/pdfsearch"
)

// The content stream gives baseline positions, not glyph boxes, so word
// boxes are approximated from standard Latin font metrics: ascent above
// and descent below the baseline as fractions of the font size.
const (
	ascentRatio  = 0.72
	descentRatio = 0.22

	// Fragments on one baseline further apart than this fraction of the
	// font size start a new word even without an explicit space.
	wordGapRatio = 0.3

	// Baselines closer than this fraction of the font size count as the
	// same text row.
	rowTolerance = 0.5
)

// assembleWords groups positioned text fragments into words in reading
// order. The content stream may emit fragments out of visual order, so
// they are first sorted into rows (top of page first, PDF Y grows
// upward) and left to right within a row; runs are then split on
// whitespace fragments, row changes and horizontal gaps.
func assembleWords(frags []pdflib.Text) []pdfsearch.Word {
	if len(frags) == 0 {
		return nil
	}

	ordered := make([]pdflib.Text, len(frags))
	copy(ordered, frags)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !sameRow(a.Y, b.Y, math.Max(a.FontSize, b.FontSize)) {
			return a.Y > b.Y
		}
		return a.X < b.X
	})

	var (
		words pdfWordList
		cur   strings.Builder
		box   pdfsearch.BoundingBox
		baseY float64
		size  float64
		endX  float64
	)
	flush := func() {
		words.add(cur.String(), box)
		cur.Reset()
	}

	for _, t := range ordered {
		if strings.TrimSpace(t.S) == "" {
			flush()
			continue
		}
		startsNew := cur.Len() > 0 &&
			(!sameRow(baseY, t.Y, math.Max(size, t.FontSize)) ||
				t.X-endX > wordGapRatio*math.Max(size, t.FontSize))
		if startsNew {
			flush()
		}
		if cur.Len() == 0 {
			box = pdfsearch.BoundingBox{
				X1: t.X,
				Y1: t.Y - descentRatio*t.FontSize,
				X2: t.X + t.W,
				Y2: t.Y + ascentRatio*t.FontSize,
			}
			baseY, size = t.Y, t.FontSize
		}
		cur.WriteString(t.S)
		endX = t.X + t.W
		box.X2 = math.Max(box.X2, endX)
		box.Y1 = math.Min(box.Y1, t.Y-descentRatio*t.FontSize)
		box.Y2 = math.Max(box.Y2, t.Y+ascentRatio*t.FontSize)
	}
	flush()
	return words
}

func sameRow(y1, y2, fontSize float64) bool {
	tol := rowTolerance * fontSize
	if tol <= 0 {
		tol = 1
	}
	return math.Abs(y1-y2) <= tol
}

type pdfWordList []pdfsearch.Word

func (l *pdfWordList) add(text string, box pdfsearch.BoundingBox) {
	if strings.TrimSpace(text) == "" {
		return
	}
	*l = append(*l, pdfsearch.Word{Text: text, Box: box})
}
