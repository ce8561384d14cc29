package pdfsearch

import (
	"strings"
	"unicode/utf8"

	"github.com/sardag/pdfsift/pkg/textnorm"
)

// snippetContext is the number of runes of raw text kept on each side of
// a match when building the excerpt shown to the user.
const snippetContext = 30

// Matcher holds one search term prepared for page scans. Build it once
// per search; it is safe for concurrent use, all state is read-only.
type Matcher struct {
	term   string // normalized form of the search term
	tokens int    // words in the normalized term
	exact  bool
	opts   textnorm.Options
}

// NewMatcher normalizes term under opts. With exact set, a word window
// must equal the term; otherwise substring containment is enough.
func NewMatcher(term string, exact bool, opts textnorm.Options) *Matcher {
	normalized := textnorm.Normalize(term, opts)
	return &Matcher{
		term:   normalized,
		tokens: len(strings.Fields(normalized)),
		exact:  exact,
		opts:   opts,
	}
}

// Term returns the normalized search term.
func (m *Matcher) Term() string { return m.term }

// Empty reports whether the term normalized down to nothing.
func (m *Matcher) Empty() bool { return m.tokens == 0 }

// SearchPage finds every occurrence of the term on one page. rawText is
// the page's extracted text, words its geometry in reading order. Each
// qualifying window of bonded words yields one PageMatch with one
// rectangle per term token; the snippet is shared page-wide. Overlapping
// windows are all reported, no suppression.
func (m *Matcher) SearchPage(rawText string, words []Word) []PageMatch {
	if m.Empty() {
		return nil
	}

	pageText := textnorm.Normalize(rawText, m.opts)
	idx := strings.Index(pageText, m.term)
	if idx < 0 {
		// Cheap rejection: the term is nowhere on the page, skip the
		// word-window scan entirely.
		return nil
	}

	snippet := buildSnippet(rawText,
		utf8.RuneCountInString(pageText[:idx]),
		utf8.RuneCountInString(m.term))

	runs := BondHyphenated(words)
	normed := make([]string, len(runs))
	for i, r := range runs {
		normed[i] = textnorm.Normalize(r.Text, m.opts)
	}

	n := m.tokens
	var matches []PageMatch
	for i := 0; i+n <= len(runs); i++ {
		window := strings.Join(normed[i:i+n], " ")
		if m.exact {
			if window != m.term {
				continue
			}
		} else if !strings.Contains(window, m.term) {
			continue
		}
		rects := make([]BoundingBox, n)
		for j, run := range runs[i : i+n] {
			rects[j] = run.Box
		}
		matches = append(matches, PageMatch{Rects: rects, Snippet: snippet})
	}
	return matches
}

var snippetLineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// buildSnippet slices a context window out of the raw text around the
// match. index and termLen are rune offsets located in the normalized
// page text; normalization is not length-preserving, so on pages with
// removable content before the match the window can land slightly off.
// The snippet is for human orientation only, so that imprecision is
// accepted rather than tracked through an offset map.
func buildSnippet(raw string, index, termLen int) string {
	rs := []rune(raw)
	start := min(max(index-snippetContext, 0), len(rs))
	end := min(index+termLen+snippetContext, len(rs))
	if end < start {
		end = start
	}
	return snippetLineBreaks.Replace("..." + string(rs[start:end]) + "...")
}
