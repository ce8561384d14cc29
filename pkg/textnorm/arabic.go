package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Arabic letters take isolated, initial, medial and final glyph forms.
// Logical text uses the base letters (U+0600 block) and lets the renderer
// shape them, but OCR output and some PDF generators emit the shaped
// presentation forms directly (U+FB50–FDFF, U+FE70–FEFF). Folding those
// back to base letters makes the two encodings compare equal; text in
// scripts without contextual shaping passes through untouched.

func isPresentationForm(r rune) bool {
	return (r >= 0xFB50 && r <= 0xFDFF) || (r >= 0xFE70 && r <= 0xFEFF)
}

// foldPresentationForms rewrites Arabic presentation-form runes to their
// NFKD base letters. Combining marks produced by the decomposition (a
// ligature like U+FDF2 expands to letters plus shadda) are dropped so the
// fold lands inside the already mark-free comparison space and repeated
// normalization stays a no-op.
func foldPresentationForms(s string) string {
	if !strings.ContainsFunc(s, isPresentationForm) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !isPresentationForm(r) {
			b.WriteRune(r)
			continue
		}
		for _, d := range norm.NFKD.String(string(r)) {
			if !unicode.Is(unicode.Mn, d) {
				b.WriteRune(d)
			}
		}
	}
	return b.String()
}
