package forum

import "fmt"

// Cursor is the pagination state of one traversal branch: either a positive
// page number or Terminal. Once a branch's cursor goes terminal no further
// fetch happens on that branch.
type Cursor int

// Terminal marks the end of a traversal branch.
const Terminal Cursor = 0

// Page returns a cursor positioned at page n. Panics on n < 1 because a
// non-positive page never corresponds to a fetchable URL.
func Page(n int) Cursor {
	if n < 1 {
		panic(fmt.Sprintf("forum: page cursor must be positive, got %d", n))
	}
	return Cursor(n)
}

// IsTerminal reports whether the branch has no further pages.
func (c Cursor) IsTerminal() bool {
	return c <= 0
}

// Next returns the cursor for the following page.
func (c Cursor) Next() Cursor {
	return Page(int(c) + 1)
}

func (c Cursor) String() string {
	if c.IsTerminal() {
		return "terminal"
	}
	return fmt.Sprintf("page %d", int(c))
}
