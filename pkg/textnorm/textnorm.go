// Package textnorm canonicalizes text extracted from PDFs for comparison.
//
// PDF text layers are messy: soft hyphens from line wrapping, zero-width
// marks left behind by layout engines, inconsistent accents and casing,
// and Arabic rendered in presentation forms rather than logical letters.
// Normalize maps both the search term and the page text into one
// comparison space so that plain substring and equality checks work
// across all of that.
//
// Normalization is deterministic and idempotent: normalizing an already
// normalized string returns it unchanged.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/rangetable"
)

// Options selects which optional normalization stages run.
// The invisible-character and hyphen removal stages always run.
type Options struct {
	Lowercase          bool
	RemoveAccents      bool
	CollapseWhitespace bool
}

// DefaultOptions enables every stage, the right setting for
// diacritic-insensitive, case-insensitive search.
func DefaultOptions() Options {
	return Options{Lowercase: true, RemoveAccents: true, CollapseWhitespace: true}
}

// Hyphen-like code points removed outright so a hyphenated line break
// vanishes instead of leaving a stray dash inside the rejoined word.
var hyphenTable = rangetable.New(
	'\u00AD', // soft hyphen
	'\u002D', // hyphen-minus
	'\u2010', // hyphen
	'\u2011', // non-breaking hyphen
	'\u2012', // figure dash
	'\u2013', // en dash
	'\u2014', // em dash
	'\u2015', // horizontal bar
)

var (
	// Control, format, separator and combining-mark runes other than a
	// plain space. Dropping these first keeps later stages from comparing
	// strings that only differ by invisible content.
	dropInvisible = runes.Remove(runes.Predicate(func(r rune) bool {
		return r != ' ' && unicode.In(r, unicode.Cf, unicode.Cc, unicode.Zs, unicode.Mn)
	}))

	dropHyphens = runes.Remove(runes.In(hyphenTable))

	// NFKD also folds compatibility forms (ligatures, width variants),
	// then combining marks are discarded. No recomposition: everything
	// that matters for matching is gone by then.
	stripAccents = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

	// BOM, right-to-left mark and raw line breaks that survive pasting
	// or odd extractors; "-\n" collapses a hyphenated line wrap.
	strayMarks = strings.NewReplacer("\ufeff", "", "\u200f", "", "-\n", "", "\n", "")

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Normalize maps text to its canonical comparison form. Empty or invalid
// input yields an empty string; no stage can fail.
//
// Stage order matters: invisible characters go before hyphen removal so a
// control character cannot shield a dash, and whitespace collapses before
// accent stripping so combining marks never straddle trimmed boundaries.
func Normalize(text string, opts Options) string {
	if text == "" {
		return ""
	}

	s, _, _ := transform.String(dropInvisible, text)
	s, _, _ = transform.String(dropHyphens, s)
	s = strayMarks.Replace(s)

	if opts.CollapseWhitespace {
		s = strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
	}
	if opts.RemoveAccents {
		s, _, _ = transform.String(stripAccents, s)
		// NFKD maps compatibility dashes (U+FE63, U+FF0D) to a fresh
		// hyphen-minus; drop those too so a second pass is a no-op.
		s, _, _ = transform.String(dropHyphens, s)
	}
	if opts.Lowercase {
		s = strings.ToLower(s)
	}

	return foldPresentationForms(s)
}

// IsHyphen reports whether r belongs to the hyphen catalogue.
func IsHyphen(r rune) bool {
	return unicode.Is(hyphenTable, r)
}

// EndsWithHyphen reports whether the raw (non-normalized) word text ends
// in a catalogue hyphen. Bonding checks the raw text because Normalize
// would already have deleted the hyphen.
func EndsWithHyphen(s string) bool {
	r := lastRune(s)
	return r != 0 && IsHyphen(r)
}

// TrimTrailingHyphen removes one trailing catalogue hyphen, if present.
func TrimTrailingHyphen(s string) string {
	if !EndsWithHyphen(s) {
		return s
	}
	rs := []rune(s)
	return string(rs[:len(rs)-1])
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}
