package extract

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/qjroberts/xenforo-scraper/internal/forum"
)

// ThreadExtractor reads post records off one thread's pages. A new instance
// is built per thread because every record carries the thread's title.
type ThreadExtractor struct {
	sel         Selectors
	threadTitle string
}

// NewThreadExtractor builds an extractor for the named thread.
func NewThreadExtractor(sel Selectors, threadTitle string) *ThreadExtractor {
	return &ThreadExtractor{sel: sel.withDefaults(), threadTitle: threadTitle}
}

// Extract returns the page's post records in document order plus the cursor
// for the following page. A post whose date cannot be parsed fails the page:
// per-item salvage is deliberately not attempted.
func (e *ThreadExtractor) Extract(doc *goquery.Document, ref forum.PageRef) ([]forum.PostRecord, forum.Cursor, error) {
	var posts []forum.PostRecord
	var firstErr error

	doc.Find(e.sel.Message).EachWithBreak(func(_ int, msg *goquery.Selection) bool {
		post, err := e.extractPost(msg, ref)
		if err != nil {
			firstErr = err
			return false
		}
		posts = append(posts, post)
		return true
	})
	if firstErr != nil {
		return nil, forum.Terminal, firstErr
	}

	return posts, nextCursor(doc, e.sel, ref.Cursor), nil
}

func (e *ThreadExtractor) extractPost(msg *goquery.Selection, ref forum.PageRef) (forum.PostRecord, error) {
	date, err := e.postDate(msg)
	if err != nil {
		return forum.PostRecord{}, err
	}

	permalink, _ := msg.Find(e.sel.MessagePermalink).First().Attr("href")
	link := forum.JoinURL(ref.BaseURL, permalink)

	body, err := msg.Find(e.sel.MessageBody).First().Html()
	if err != nil {
		return forum.PostRecord{}, &ParseError{What: "post body", Value: err.Error()}
	}

	author, _ := msg.Attr(e.sel.MessageAuthor)

	return forum.PostRecord{
		Title:       e.threadTitle,
		Description: strings.TrimSpace(body),
		Date:        date,
		Link:        link,
		GUID:        link,
		Author:      author,
		Number:      postNumber(msg.Find(e.sel.MessageNumber).First().Text()),
		Likes:       likeCount(msg.Find(e.sel.MessageLikes).First().Text()),
	}, nil
}

// postDate prefers the date element's machine-readable attribute pair and
// falls back to the human-readable title attribute.
func (e *ThreadExtractor) postDate(msg *goquery.Selection) (date time.Time, err error) {
	el := msg.Find(e.sel.MessageDate).First()

	datePart, hasDate := el.Attr(e.sel.DateAttr)
	timePart, hasTime := el.Attr(e.sel.TimeAttr)
	if !hasDate || !hasTime {
		title, _ := el.Attr(e.sel.DateTitleAttr)
		datePart, timePart, err = SplitDateTitle(title)
		if err != nil {
			return time.Time{}, err
		}
	}

	return PostTime(datePart, timePart)
}

// postNumber parses a "#N" post-number label; 0 when the label is missing
// or malformed.
func postNumber(label string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(label), "#"))
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// likeCount parses the rating element's text; absent or unparsable ratings
// count as zero.
func likeCount(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
