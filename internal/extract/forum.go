package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/qjroberts/xenforo-scraper/internal/forum"
)

// ForumExtractor reads thread listings off a forum index page.
type ForumExtractor struct {
	sel Selectors
}

// NewForumExtractor builds a forum index extractor; unset selectors fall
// back to the XenForo defaults.
func NewForumExtractor(sel Selectors) *ForumExtractor {
	return &ForumExtractor{sel: sel.withDefaults()}
}

// Extract returns the page's thread descriptors in document order plus the
// cursor for the following index page.
func (e *ForumExtractor) Extract(doc *goquery.Document, ref forum.PageRef) ([]forum.ThreadDescriptor, forum.Cursor, error) {
	var threads []forum.ThreadDescriptor

	doc.Find(e.sel.ThreadItem).Each(func(_ int, item *goquery.Selection) {
		link := item.Find(e.sel.ThreadLink).First()
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}
		threads = append(threads, forum.ThreadDescriptor{
			Path:  href,
			Title: strings.TrimSpace(link.Text()),
		})
	})

	return threads, nextCursor(doc, e.sel, ref.Cursor), nil
}

// nextCursor reads the pagination widget's last-page indicator. No widget,
// no indicator, or current page at the last page all mean the branch is
// done; otherwise the traversal moves to the next page.
func nextCursor(doc *goquery.Document, sel Selectors, current forum.Cursor) forum.Cursor {
	nav := doc.Find(sel.PageNav).First()
	if nav.Length() == 0 {
		return forum.Terminal
	}
	lastAttr, ok := nav.Attr(sel.PageNavLast)
	if !ok {
		return forum.Terminal
	}
	last, err := strconv.Atoi(strings.TrimSpace(lastAttr))
	if err != nil || int(current) >= last {
		return forum.Terminal
	}
	return current.Next()
}
