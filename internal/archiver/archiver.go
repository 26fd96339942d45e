// Package archiver wires the fetcher, extractors, traversal engine, and
// record store into one archive run.
package archiver

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/qjroberts/xenforo-scraper/internal/extract"
	"github.com/qjroberts/xenforo-scraper/internal/forum"
	"github.com/qjroberts/xenforo-scraper/internal/store"
	"github.com/qjroberts/xenforo-scraper/internal/traverse"
)

// Config holds one run's parameters.
type Config struct {
	// BaseURL of the forum installation, with trailing slash,
	// e.g. "https://example.com/".
	BaseURL string
	// Forums are the relative paths of the forums to archive,
	// e.g. "index.php?forums/general.12/".
	Forums []string
	// StartPage is the index page each forum traversal begins at; 1 when
	// zero or negative.
	StartPage int
	// MaxConcurrency caps concurrent per-page item archival; unbounded
	// when zero.
	MaxConcurrency int
	// Selectors overrides the markup addresses; zero fields use the
	// XenForo defaults.
	Selectors extract.Selectors
}

// Totals is what one run processed, aggregated from the per-branch stats.
type Totals struct {
	Forums  int
	Threads int
	Posts   int
}

// Archiver walks configured forums and persists what it finds.
type Archiver struct {
	cfg     Config
	fetcher traverse.Fetcher
	store   store.RecordStore
	log     *zap.Logger
}

// New builds an archiver. The fetcher and store are external collaborators
// supplied by the caller.
func New(cfg Config, fetcher traverse.Fetcher, recordStore store.RecordStore, log *zap.Logger) (*Archiver, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("archiver: base URL is required")
	}
	if len(cfg.Forums) == 0 {
		return nil, fmt.Errorf("archiver: at least one forum path is required")
	}
	if cfg.StartPage < 1 {
		cfg.StartPage = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Archiver{cfg: cfg, fetcher: fetcher, store: recordStore, log: log}, nil
}

// Run archives every configured forum in order. The first unrecovered
// fetch, parse, or persist error aborts the whole run.
func (a *Archiver) Run(ctx context.Context) (Totals, error) {
	var totals Totals

	// Thread traversals on one forum page run concurrently, so their post
	// counts aggregate through a run-local atomic rather than engine stats.
	var posts atomic.Int64

	for _, path := range a.cfg.Forums {
		a.log.Info("archiving forum", zap.String("path", path))

		engine := &traverse.Engine[forum.ThreadDescriptor]{
			Fetcher:   a.fetcher,
			Extractor: extract.NewForumExtractor(a.cfg.Selectors),
			Archive: func(ctx context.Context, td forum.ThreadDescriptor) error {
				n, err := a.archiveThread(ctx, td)
				posts.Add(int64(n))
				return err
			},
			MaxConcurrency: a.cfg.MaxConcurrency,
			Logger:         a.log,
		}

		ref := forum.PageRef{
			BaseURL: a.cfg.BaseURL,
			Path:    path,
			Cursor:  forum.Page(a.cfg.StartPage),
		}
		stats, err := engine.Run(ctx, ref)
		if err != nil {
			return totals, fmt.Errorf("forum %s: %w", path, err)
		}

		totals.Forums++
		totals.Threads += stats.Items
		a.log.Info("forum archived",
			zap.String("path", path),
			zap.Int("pages", stats.Pages),
			zap.Int("threads", stats.Items))
	}

	totals.Posts = int(posts.Load())
	return totals, nil
}

// archiveThread runs a nested traversal over one discovered thread's pages
// and persists the thread record once all of them are processed. Returns
// the number of posts archived.
func (a *Archiver) archiveThread(ctx context.Context, td forum.ThreadDescriptor) (int, error) {
	engine := &traverse.Engine[forum.PostRecord]{
		Fetcher:   a.fetcher,
		Extractor: extract.NewThreadExtractor(a.cfg.Selectors, td.Title),
		Archive: func(ctx context.Context, p forum.PostRecord) error {
			return a.store.SavePost(ctx, &p)
		},
		MaxConcurrency: a.cfg.MaxConcurrency,
		Logger:         a.log,
	}

	ref := forum.PageRef{
		BaseURL: a.cfg.BaseURL,
		Path:    td.Path,
		Cursor:  forum.Page(1),
	}
	stats, err := engine.Run(ctx, ref)
	if err != nil {
		return stats.Items, fmt.Errorf("thread %q: %w", td.Title, err)
	}

	thread := &forum.Thread{
		Title:  td.Title,
		URL:    forum.JoinURL(a.cfg.BaseURL, td.Path),
		Cursor: forum.Terminal,
	}
	if err := a.store.SaveThread(ctx, thread); err != nil {
		return stats.Items, err
	}

	a.log.Debug("thread archived",
		zap.String("title", td.Title),
		zap.Int("pages", stats.Pages),
		zap.Int("posts", stats.Items))
	return stats.Items, nil
}
