package nav

import (
	"reflect"
	"testing"

	"github.com/CrestNiraj12/lemmyterm/domain"
)

func posts(ids ...int) []domain.Item {
	out := make([]domain.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Post{ID: id})
	}
	return out
}

func TestCursor_AdvanceAndCommit(t *testing.T) {
	var c Cursor
	if got := c.Advance(false); got != 1 {
		t.Fatalf("zero cursor must ask for page 1, got %d", got)
	}
	if clear := c.Commit(1); !clear {
		t.Fatalf("first page must clear")
	}
	if got := c.Advance(false); got != 2 {
		t.Fatalf("expected page 2, got %d", got)
	}
	if c.Page() != 1 {
		t.Fatalf("advance must not move the page before commit")
	}
	if clear := c.Commit(2); clear {
		t.Fatalf("append page must not clear")
	}
}

func TestCursor_ResetFromDeepPage(t *testing.T) {
	var c Cursor
	for p := 1; p <= 4; p++ {
		c.Commit(p)
	}
	if got := c.Advance(true); got != 1 {
		t.Fatalf("reset must ask for page 1, got %d", got)
	}
	if c.Page() != 4 {
		t.Fatalf("page must not move before commit")
	}
	if clear := c.Commit(1); !clear {
		t.Fatalf("reset commit must clear")
	}
	if clear := c.Commit(2); clear || c.Advance(false) != 3 {
		t.Fatalf("unexpected cursor after reset: %+v", c)
	}
}

func TestMergePage(t *testing.T) {
	tests := []struct {
		name     string
		existing []domain.Item
		incoming []domain.Item
		replace  bool
		want     []domain.Item
	}{
		{name: "append", existing: posts(1, 2), incoming: posts(3, 4), want: posts(1, 2, 3, 4)},
		{name: "replace", existing: posts(1, 2), incoming: posts(7), replace: true, want: posts(7)},
		{name: "skip duplicates", existing: posts(1, 2), incoming: posts(2, 3, 3), want: posts(1, 2, 3)},
		{name: "empty page", existing: posts(1), incoming: nil, want: posts(1)},
		{name: "replace with nothing", existing: posts(1), replace: true, want: posts()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergePage(tt.existing, tt.incoming, tt.replace)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}
}

func TestMergePage_DoesNotAliasExisting(t *testing.T) {
	existing := make([]domain.Item, 2, 8)
	copy(existing, posts(1, 2))
	got := MergePage(existing, posts(3), false)
	got[0] = domain.Post{ID: 99}
	if existing[0].ItemID() != "post:1" {
		t.Fatalf("merge must return a new slice")
	}
}

// A reset after several appended pages leaves only the new filter's items.
func TestCursorMerge_ResetNeverInterleaves(t *testing.T) {
	var c Cursor
	var items []domain.Item
	for p, page := range [][]domain.Item{posts(1, 2), posts(3, 4), posts(5)} {
		req := c.Advance(false)
		if req != p+1 {
			t.Fatalf("expected page %d, got %d", p+1, req)
		}
		items = MergePage(items, page, c.Commit(req))
	}
	req := c.Advance(true)
	items = MergePage(items, posts(10, 11), c.Commit(req))
	if !reflect.DeepEqual(items, posts(10, 11)) {
		t.Fatalf("old items leaked into the reset list: %v", items)
	}
}
