package pdfsearch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sardag/pdfsift/pkg/textnorm"
)

// Source enumerates and opens documents for a scan. pdfstore.Store is the
// production implementation; tests substitute fakes.
type Source interface {
	// List returns document paths under root, recursively, in scan order.
	// An empty slice is a valid result, not an error.
	List(root string) ([]string, error)
	// Open acquires a document. The scanner closes it when the document's
	// pages are done, whether or not any page failed.
	Open(path string) (Document, error)
}

// Document is one open PDF. Page numbers are 1-based. Text and geometry
// extraction may fail independently per page.
type Document interface {
	NumPages() int
	PageText(page int) (string, error)
	PageWords(page int) ([]Word, error)
	Close() error
}

// ErrEmptyTerm is returned when the search term normalizes to nothing.
var ErrEmptyTerm = errors.New("search term is empty after normalization")

// Scanner runs a search session over a document tree. One session owns
// its Result exclusively while Run is in flight; callers interested in
// intermediate state must observe it through OnProgress, never by
// touching the result concurrently. Cancel by cancelling the context
// passed to Run: the flag is polled between documents and between pages,
// and matches already collected are kept.
type Scanner struct {
	Source Source
	Log    *slog.Logger

	// Norm selects the comparison space; zero value means exact bytes,
	// so most callers want textnorm.DefaultOptions.
	Norm textnorm.Options

	// OnProgress, when set, is invoked from the scan goroutine after
	// every page. It must not block for long.
	OnProgress ProgressFunc
}

// Run scans every PDF under root for term. It returns an error only when
// the session cannot start at all (inaccessible root, empty term); all
// page- and document-level failures are logged and skipped so one bad
// file cannot abort the session.
func (s *Scanner) Run(ctx context.Context, root, term string, exact bool) (*Result, error) {
	log := s.Log
	if log == nil {
		log = slog.Default()
	}

	matcher := NewMatcher(term, exact, s.Norm)
	if matcher.Empty() {
		return nil, ErrEmptyTerm
	}

	paths, err := s.Source.List(root)
	if err != nil {
		return nil, fmt.Errorf("list documents in %s: %w", root, err)
	}

	start := time.Now()
	res := &Result{Status: StatusCompleted}
	if len(paths) == 0 {
		res.Status = StatusNoDocuments
		return res, nil
	}

	for i, path := range paths {
		if ctx.Err() != nil {
			res.Status = StatusCancelled
			break
		}
		if err := s.scanDocument(ctx, matcher, path, i, len(paths), start, res, log); err != nil {
			if ctx.Err() != nil {
				// Cancellation observed mid-document; pages finished
				// before the flag was seen keep their matches.
				res.Status = StatusCancelled
				break
			}
			log.Warn("skipping document", "path", path, "error", err)
			continue
		}
		res.DocsScanned++
	}

	res.Elapsed = time.Since(start)
	if res.Status == StatusCompleted && len(res.Matches) == 0 {
		res.Status = StatusNoMatches
	}
	return res, nil
}

// scanDocument opens one PDF and scans its pages, accumulating matches
// into res. The document handle is released before returning, even when
// a page fails partway. A context error is returned as-is so the caller
// can flip the session status; extraction errors never propagate past
// the page that raised them.
func (s *Scanner) scanDocument(
	ctx context.Context,
	matcher *Matcher,
	path string,
	docIndex, docTotal int,
	start time.Time,
	res *Result,
	log *slog.Logger,
) error {
	doc, err := s.Source.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer doc.Close()

	for page := 1; page <= doc.NumPages(); page++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		text, err := doc.PageText(page)
		if err != nil {
			log.Warn("page text unavailable", "path", path, "page", page, "error", err)
			continue
		}
		words, err := doc.PageWords(page)
		if err != nil {
			log.Warn("page words unavailable", "path", path, "page", page, "error", err)
			continue
		}

		for _, pm := range matcher.SearchPage(text, words) {
			res.Matches = append(res.Matches, Match{
				Source:  path,
				Page:    page,
				Rects:   pm.Rects,
				Snippet: pm.Snippet,
			})
		}
		res.PagesScanned++

		if s.OnProgress != nil {
			s.OnProgress(Progress{
				Document:  path,
				DocsDone:  docIndex,
				DocsTotal: docTotal,
				PagesDone: res.PagesScanned,
				Matches:   len(res.Matches),
				Elapsed:   time.Since(start),
			})
		}
	}
	return nil
}
