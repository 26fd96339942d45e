package forum

import (
	"fmt"
	"strings"
	"time"
)

// PageRef identifies one fetchable page of a paginated index. BaseURL is
// fixed for the whole run, Path is fixed per forum or thread, and Cursor
// advances as the traversal walks the index.
type PageRef struct {
	BaseURL string
	Path    string
	Cursor  Cursor
}

// URL builds the request URL for the referenced page. XenForo serves page 1
// at the bare path and later pages with a "page-N" suffix.
func (r PageRef) URL() string {
	base := r.BaseURL + r.Path
	if r.Cursor.IsTerminal() || int(r.Cursor) == 1 {
		return base
	}
	return fmt.Sprintf("%spage-%d", base, int(r.Cursor))
}

// Advance returns a copy of the ref positioned at the given cursor.
func (r PageRef) Advance(c Cursor) PageRef {
	r.Cursor = c
	return r
}

// ThreadDescriptor is a thread discovered on a forum index page. It is
// ephemeral: consumed immediately to start that thread's own traversal.
type ThreadDescriptor struct {
	Path  string
	Title string
}

// Thread is a forum thread record. It owns its own pagination state across
// its post pages and is persisted once, after all of its pages are done.
type Thread struct {
	Title  string
	URL    string
	Cursor Cursor
}

// PostRecord is one message extracted from a thread page. Immutable once
// extracted; persisted independently of its parent thread.
type PostRecord struct {
	Title       string
	Description string
	Date        time.Time
	Link        string
	GUID        string
	Author      string
	Number      int // 1-based position in the thread, 0 when unknown
	Likes       int
}

// JoinURL resolves a link found in page markup against the run's base URL.
// Absolute links pass through untouched.
func JoinURL(baseURL, href string) string {
	if href == "" {
		return baseURL
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return baseURL + strings.TrimPrefix(href, "/")
}
