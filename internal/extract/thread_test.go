package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qjroberts/xenforo-scraper/internal/forum"
)

const threadPage = `
<html><body>
<ol class="messageList">
  <li class="message" data-author="alice">
    <blockquote class="messageText">Hello <b>world</b></blockquote>
    <span class="LikeText">3</span>
    <abbr class="DateTime" data-datestring="Jan 5, 2015" data-timestring="2:30 PM">Jan 5, 2015</abbr>
    <a class="postNumber hashPermalink" href="index.php?threads/t.101/#post-1">#1</a>
  </li>
  <li class="message" data-author="bob">
    <blockquote class="messageText">Reply text</blockquote>
    <span class="DateTime" title="January 6, 2015 at 11:15 AM">Jan 6, 2015</span>
    <a class="postNumber hashPermalink" href="index.php?threads/t.101/#post-2">#2</a>
  </li>
</ol>
<div class="PageNav" data-page="1" data-last="2"></div>
</body></html>`

func threadRef(page int) forum.PageRef {
	return forum.PageRef{
		BaseURL: "https://example.com/",
		Path:    "index.php?threads/t.101/",
		Cursor:  forum.Page(page),
	}
}

func TestThreadExtractorReadsPosts(t *testing.T) {
	e := NewThreadExtractor(Selectors{}, "My thread")

	posts, next, err := e.Extract(doc(t, threadPage), threadRef(1))
	require.NoError(t, err)
	require.Len(t, posts, 2)

	first := posts[0]
	assert.Equal(t, "My thread", first.Title)
	assert.Equal(t, "Hello <b>world</b>", first.Description)
	assert.Equal(t, "alice", first.Author)
	assert.Equal(t, 3, first.Likes)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, "https://example.com/index.php?threads/t.101/#post-1", first.Link)
	assert.Equal(t, first.Link, first.GUID)
	assert.Equal(t, time.Date(2015, time.January, 5, 14, 30, 0, 0, time.UTC), first.Date)

	// Second post has no machine-readable attributes and no rating element:
	// the date falls back to the title attribute, likes default to zero.
	second := posts[1]
	assert.Equal(t, "bob", second.Author)
	assert.Equal(t, 0, second.Likes)
	assert.Equal(t, 2, second.Number)
	assert.Equal(t, time.Date(2015, time.January, 6, 11, 15, 0, 0, time.UTC), second.Date)

	assert.Equal(t, forum.Page(2), next)
}

func TestThreadExtractorLastPage(t *testing.T) {
	e := NewThreadExtractor(Selectors{}, "My thread")

	_, next, err := e.Extract(doc(t, threadPage), threadRef(2))
	require.NoError(t, err)
	assert.True(t, next.IsTerminal())
}

func TestThreadExtractorUnparsableDateFailsPage(t *testing.T) {
	page := `
<html><body>
<li class="message" data-author="mallory">
  <blockquote class="messageText">bad date</blockquote>
  <span class="DateTime" title="sometime recently"></span>
  <a class="postNumber hashPermalink" href="#post-9">#9</a>
</li>
</body></html>`

	e := NewThreadExtractor(Selectors{}, "My thread")
	_, _, err := e.Extract(doc(t, page), threadRef(1))
	require.Error(t, err)

	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestThreadExtractorMalformedNumberAndLikes(t *testing.T) {
	page := `
<html><body>
<li class="message" data-author="carol">
  <blockquote class="messageText">text</blockquote>
  <span class="LikeText">Carol likes this</span>
  <abbr class="DateTime" data-datestring="Feb 2, 2016" data-timestring="1:00 AM"></abbr>
  <a class="postNumber hashPermalink" href="#post-x">#abc</a>
</li>
</body></html>`

	e := NewThreadExtractor(Selectors{}, "My thread")
	posts, _, err := e.Extract(doc(t, page), threadRef(1))
	require.NoError(t, err)
	require.Len(t, posts, 1)

	assert.Equal(t, 0, posts[0].Number)
	assert.Equal(t, 0, posts[0].Likes)
	assert.Equal(t, time.Date(2016, time.February, 2, 1, 0, 0, 0, time.UTC), posts[0].Date)
}
