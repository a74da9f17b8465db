package domain

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// BuildCommentTree reorders a flat comment listing for indented rendering.
//
// Deleted and removed comments are dropped. The rest are grouped by their
// top-level ancestor (the second path segment), groups keep the order in which
// they first appear, and each group is sorted by path so that every parent is
// followed directly by its descendants. A comment whose path has fewer than
// two segments forms its own group keyed by its id.
func BuildCommentTree(flat []Comment) []Comment {
	var order []string
	groups := make(map[string][]Comment)
	kept := 0
	for _, c := range flat {
		if c.Deleted || c.Removed {
			continue
		}
		key := threadKey(c)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], c)
		kept++
	}

	out := make([]Comment, 0, kept)
	for _, key := range order {
		group := groups[key]
		slices.SortStableFunc(group, func(a, b Comment) int {
			return ComparePaths(a.Path, b.Path)
		})
		out = append(out, group...)
	}
	return out
}

func threadKey(c Comment) string {
	segs := strings.Split(c.Path, ".")
	if len(segs) < 2 || segs[1] == "" {
		return strconv.Itoa(c.ID)
	}
	return segs[1]
}

// ComparePaths orders dot-separated paths segment by segment. Numeric
// segments compare as numbers, anything else as strings, and a path sorts
// before every path it prefixes.
func ComparePaths(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareSegment(as[i], bs[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(as), len(bs))
}

func compareSegment(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return cmp.Compare(ai, bi)
	}
	return strings.Compare(a, b)
}
