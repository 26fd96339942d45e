// Package store persists extracted thread and post records.
package store

import (
	"context"

	"github.com/qjroberts/xenforo-scraper/internal/forum"
)

// RecordStore accepts finished records for persistence. Implementations
// make no dedup or idempotency guarantee: re-running an archive against the
// same source produces duplicate records.
type RecordStore interface {
	SaveThread(ctx context.Context, t *forum.Thread) error
	SavePost(ctx context.Context, p *forum.PostRecord) error
}
