package nav

import (
	"slices"

	"github.com/CrestNiraj12/lemmyterm/domain"
)

// Cursor tracks the page a list has accepted. A zero Cursor has accepted
// nothing yet, so its first Advance asks for page 1.
type Cursor struct {
	page         int
	resetPending bool
}

// Advance returns the page to fetch next. With reset it returns 1 and marks
// that the next commit must clear the list. The page itself only moves on Commit.
func (c *Cursor) Advance(reset bool) int {
	if reset {
		c.resetPending = true
		return 1
	}
	return c.page + 1
}

// Commit records page as accepted and reports whether the caller must clear
// the accumulated items before appending.
func (c *Cursor) Commit(page int) (clear bool) {
	clear = c.resetPending || page <= 1
	c.page = max(page, 1)
	c.resetPending = false
	return clear
}

// Page returns the last accepted page, 0 before the first commit.
func (c Cursor) Page() int { return c.page }

// MergePage returns the list after accepting a page: incoming alone when
// clear is set, otherwise existing followed by the incoming items it does not
// already hold. The result is a new slice, so existing is never observed
// half-updated.
func MergePage(existing, incoming []domain.Item, replace bool) []domain.Item {
	if replace {
		existing = nil
	}
	out := make([]domain.Item, 0, len(existing)+len(incoming))
	out = append(out, existing...)
	seen := make(map[string]struct{}, len(out)+len(incoming))
	for _, it := range out {
		seen[it.ItemID()] = struct{}{}
	}
	for _, it := range incoming {
		if _, dup := seen[it.ItemID()]; dup {
			continue
		}
		seen[it.ItemID()] = struct{}{}
		out = append(out, it)
	}
	return slices.Clip(out)
}
