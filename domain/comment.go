package domain

import (
	"strconv"
	"strings"
	"time"
)

// Comment is a single record of a post's comment tree.
//
// Path lists the ancestor ids from the synthetic root "0" down to the
// comment itself, dot separated: a top-level comment 7 has path "0.7",
// a reply 9 to it has path "0.7.9".
type Comment struct {
	ID            int
	PostID        int
	PostName      string
	CommunityName string
	CreatorID     int
	CreatorName   string
	Content       string
	Path          string
	Score         int
	MyVote        int
	Saved         bool
	Deleted       bool
	Removed       bool
	Published     time.Time
}

// ItemID implements Item.
func (c Comment) ItemID() string { return "comment:" + strconv.Itoa(c.ID) }

// Depth is the indentation level derived from the path: 0 for top-level comments.
func (c Comment) Depth() int {
	return max(strings.Count(c.Path, ".")-1, 0)
}

// ParentID returns the id of the comment this one replies to, or 0 for top-level comments.
func (c Comment) ParentID() int {
	segs := strings.Split(c.Path, ".")
	if len(segs) < 3 {
		return 0
	}
	id, err := strconv.Atoi(segs[len(segs)-2])
	if err != nil {
		return 0
	}
	return id
}
