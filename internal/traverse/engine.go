// Package traverse drives the fetch/extract/archive cycle over a paginated
// index. The same engine walks a forum's thread listing and a thread's post
// listing; the extractor and the per-item action decide which.
package traverse

import (
	"context"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/qjroberts/xenforo-scraper/internal/forum"
)

// Fetcher retrieves the page a ref points at.
type Fetcher interface {
	FetchPage(ctx context.Context, ref forum.PageRef) (*goquery.Document, error)
}

// Extractor converts a fetched page into its items plus the cursor for the
// following page.
type Extractor[T any] interface {
	Extract(doc *goquery.Document, ref forum.PageRef) ([]T, forum.Cursor, error)
}

// Stats accumulates what one traversal branch processed. Counts are carried
// up the call chain rather than kept in shared state.
type Stats struct {
	Pages int
	Items int
}

// Engine walks one paginated index. Items on a page are archived
// concurrently; the engine only advances to the next page once every item
// on the current page has completed. Pages themselves are strictly
// sequential because the next cursor is only known after extraction.
type Engine[T any] struct {
	Fetcher   Fetcher
	Extractor Extractor[T]

	// Archive handles one extracted item: a nested traversal for threads
	// found on a forum page, a store write for posts found on a thread page.
	Archive func(ctx context.Context, item T) error

	// MaxConcurrency caps in-flight archive calls per page; unbounded
	// when zero.
	MaxConcurrency int

	Logger *zap.Logger
}

// Run walks the index starting at ref until the cursor goes terminal or an
// error surfaces. There are no retries and no per-item salvage: the first
// fetch, extraction, or archival error aborts the branch.
func (e *Engine[T]) Run(ctx context.Context, ref forum.PageRef) (Stats, error) {
	log := e.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var stats Stats
	for !ref.Cursor.IsTerminal() {
		doc, err := e.Fetcher.FetchPage(ctx, ref)
		if err != nil {
			return stats, err
		}

		items, next, err := e.Extractor.Extract(doc, ref)
		if err != nil {
			return stats, err
		}

		log.Debug("page extracted",
			zap.String("url", ref.URL()),
			zap.Int("items", len(items)),
			zap.Stringer("next", next))

		if err := e.archiveAll(ctx, items); err != nil {
			return stats, err
		}

		stats.Pages++
		stats.Items += len(items)
		ref = ref.Advance(next)
	}
	return stats, nil
}

// archiveAll fans the page's items out to Archive and waits for all of them.
// Completion order does not matter; the first error wins.
func (e *Engine[T]) archiveAll(ctx context.Context, items []T) error {
	if len(items) == 0 {
		return nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	var sem chan struct{}
	if e.MaxConcurrency > 0 {
		sem = make(chan struct{}, e.MaxConcurrency)
	}

	for _, item := range items {
		wg.Add(1)
		go func(item T) {
			defer wg.Done()

			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			if err := e.Archive(ctx, item); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(item)
	}

	wg.Wait()
	return firstErr
}
