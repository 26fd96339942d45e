package forum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRefURL(t *testing.T) {
	tests := []struct {
		name   string
		cursor Cursor
		want   string
	}{
		{
			name:   "page 1 has the bare URL",
			cursor: Page(1),
			want:   "https://example.com/index.php?forums/x.12/",
		},
		{
			name:   "page 3 gets the page suffix",
			cursor: Page(3),
			want:   "https://example.com/index.php?forums/x.12/page-3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := PageRef{
				BaseURL: "https://example.com/",
				Path:    "index.php?forums/x.12/",
				Cursor:  tt.cursor,
			}
			assert.Equal(t, tt.want, ref.URL())
		})
	}
}

func TestCursorAdvancesMonotonically(t *testing.T) {
	c := Page(1)
	for want := 2; want <= 5; want++ {
		c = c.Next()
		require.False(t, c.IsTerminal())
		require.Equal(t, want, int(c))
	}
}

func TestTerminalCursor(t *testing.T) {
	assert.True(t, Terminal.IsTerminal())
	assert.False(t, Page(1).IsTerminal())
	assert.Equal(t, "terminal", Terminal.String())
	assert.Equal(t, "page 2", Page(2).String())
}

func TestPageRejectsNonPositive(t *testing.T) {
	assert.Panics(t, func() { Page(0) })
	assert.Panics(t, func() { Page(-3) })
}

func TestJoinURL(t *testing.T) {
	base := "https://example.com/"

	assert.Equal(t, "https://example.com/threads/x.1/", JoinURL(base, "threads/x.1/"))
	assert.Equal(t, "https://example.com/threads/x.1/", JoinURL(base, "/threads/x.1/"))
	assert.Equal(t, "https://other.net/a", JoinURL(base, "https://other.net/a"))
	assert.Equal(t, base, JoinURL(base, ""))
}
