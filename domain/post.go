package domain

import (
	"strconv"
	"time"
)

// Post is a link or text submission to a community.
type Post struct {
	ID            int
	Name          string // Title
	URL           string // Optional link
	Body          string // Markdown
	CommunityID   int
	CommunityName string
	CreatorID     int
	CreatorName   string
	Score         int
	Comments      int
	MyVote        int // -1, 0 or 1
	Saved         bool
	Deleted       bool
	Published     time.Time
}

// ItemID implements Item.
func (p Post) ItemID() string { return "post:" + strconv.Itoa(p.ID) }

// PostDraft holds the editable fields of a post.
type PostDraft struct {
	Name        string
	URL         string
	Body        string
	CommunityID int
}
