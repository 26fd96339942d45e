// Package extract turns fetched forum markup into thread and post records.
package extract

// Selectors addresses the markup structures the extractors depend on. The
// target site's templates are the main source of brittleness, so everything
// the extractors look up lives here rather than inline in the extraction
// code. Zero values fall back to DefaultSelectors.
type Selectors struct {
	// Forum index pages.
	ThreadItem string // one listing row per thread
	ThreadLink string // anchor inside a row carrying href + title text

	// Thread pages.
	Message          string // one block per post
	MessageAuthor    string // attribute on the message block
	MessageBody      string // quote block whose inner markup is the post body
	MessageDate      string // element carrying the post date
	MessageLikes     string // rating element whose text is the like count
	MessagePermalink string // anchor whose href is the post permalink
	MessageNumber    string // label carrying the "#N" post number

	// Pagination widget, shared by both page kinds.
	PageNav     string // navigation widget element
	PageNavLast string // attribute on the widget naming the last page

	// Date element attributes; when both are present they take priority
	// over the human-readable title attribute.
	DateAttr      string
	TimeAttr      string
	DateTitleAttr string
}

// DefaultSelectors matches stock XenForo 1.x templates.
var DefaultSelectors = Selectors{
	ThreadItem: "li.discussionListItem",
	ThreadLink: "h3.title a",

	Message:          "li.message",
	MessageAuthor:    "data-author",
	MessageBody:      "blockquote.messageText",
	MessageDate:      ".DateTime",
	MessageLikes:     ".LikeText",
	MessagePermalink: "a.hashPermalink",
	MessageNumber:    "a.postNumber",

	PageNav:     ".PageNav",
	PageNavLast: "data-last",

	DateAttr:      "data-datestring",
	TimeAttr:      "data-timestring",
	DateTitleAttr: "title",
}

// withDefaults fills unset fields from DefaultSelectors.
func (s Selectors) withDefaults() Selectors {
	d := DefaultSelectors
	if s.ThreadItem == "" {
		s.ThreadItem = d.ThreadItem
	}
	if s.ThreadLink == "" {
		s.ThreadLink = d.ThreadLink
	}
	if s.Message == "" {
		s.Message = d.Message
	}
	if s.MessageAuthor == "" {
		s.MessageAuthor = d.MessageAuthor
	}
	if s.MessageBody == "" {
		s.MessageBody = d.MessageBody
	}
	if s.MessageDate == "" {
		s.MessageDate = d.MessageDate
	}
	if s.MessageLikes == "" {
		s.MessageLikes = d.MessageLikes
	}
	if s.MessagePermalink == "" {
		s.MessagePermalink = d.MessagePermalink
	}
	if s.MessageNumber == "" {
		s.MessageNumber = d.MessageNumber
	}
	if s.PageNav == "" {
		s.PageNav = d.PageNav
	}
	if s.PageNavLast == "" {
		s.PageNavLast = d.PageNavLast
	}
	if s.DateAttr == "" {
		s.DateAttr = d.DateAttr
	}
	if s.TimeAttr == "" {
		s.TimeAttr = d.TimeAttr
	}
	if s.DateTitleAttr == "" {
		s.DateTitleAttr = d.DateTitleAttr
	}
	return s
}
