// Package pdfsearch locates a normalized search phrase inside PDF pages
// and maps each textual hit back onto the per-word bounding geometry of
// the page, producing the exact rectangles to highlight.
//
// The package is a pure in-process transformation: page text and word
// geometry come from a Source collaborator (see pdfstore for the real
// one), and the emitted rectangles stay in the original page coordinate
// space so a highlighter can annotate the source PDF directly.
package pdfsearch

import "time"

// BoundingBox is an axis-aligned rectangle in PDF user space: points,
// origin at the bottom-left of the page.
type BoundingBox struct {
	X1 float64 // left
	Y1 float64 // bottom
	X2 float64 // right
	Y2 float64 // top
}

// Word is one extracted word with its page geometry, produced by the
// PDF-access collaborator in reading order. Immutable once read.
type Word struct {
	Text string
	Box  BoundingBox
}

// WordRun is one logical word after hyphenation bonding: the concatenated
// text of one or more Words. It keeps only the first fragment's box, so a
// match inheriting a bonded run highlights the leading fragment.
type WordRun struct {
	Text string
	Box  BoundingBox
}

// Match is one located occurrence of the search term.
// Never mutated after creation.
type Match struct {
	Source  string        // document identifier (path)
	Page    int           // 1-based page number
	Rects   []BoundingBox // one rectangle per term token, page order
	Snippet string        // raw-text excerpt around the first occurrence
}

// PageMatch is the per-page matcher output before a document identifier
// and page number are attached: the window's rectangles plus the snippet
// shared by every match on the page.
type PageMatch struct {
	Rects   []BoundingBox
	Snippet string
}

// Status is the terminal state of a search session.
type Status int

const (
	StatusCompleted Status = iota
	StatusCancelled
	StatusNoDocuments
	StatusNoMatches
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	case StatusNoDocuments:
		return "no documents"
	case StatusNoMatches:
		return "no matches"
	default:
		return "unknown"
	}
}

// Result is the accumulated outcome of one search session. Matches are in
// discovery order: document order, then page order, then window order
// within a page.
type Result struct {
	Matches      []Match
	Status       Status
	DocsScanned  int
	PagesScanned int
	Elapsed      time.Duration
}

// Progress is a point-in-time report emitted after each scanned page.
type Progress struct {
	Document  string
	DocsDone  int
	DocsTotal int
	PagesDone int
	Matches   int
	Elapsed   time.Duration
}

// ProgressFunc receives Progress updates from the scan worker goroutine.
type ProgressFunc func(Progress)
