package pdfsearch

import "github.com/sardag/pdfsift/pkg/textnorm"

// BondHyphenated merges words split across line breaks by hyphenation
// into single WordRuns. A word whose raw text ends in a catalogue hyphen
// absorbs the word that follows it; the hyphen is dropped and the run
// keeps the first fragment's bounding box. Bonding chains, so a word
// wrapped over three lines collapses into one run.
//
// The check runs on the raw text: normalization would already have
// deleted the hyphen. A trailing-hyphen word at the very end of the page
// has nothing to absorb and stays as it is.
func BondHyphenated(words []Word) []WordRun {
	runs := make([]WordRun, 0, len(words))
	for _, w := range words {
		if n := len(runs); n > 0 && textnorm.EndsWithHyphen(runs[n-1].Text) {
			runs[n-1].Text = textnorm.TrimTrailingHyphen(runs[n-1].Text) + w.Text
			continue
		}
		runs = append(runs, WordRun{Text: w.Text, Box: w.Box})
	}
	return runs
}
