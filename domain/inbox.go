package domain

import (
	"strconv"
	"time"
)

// InboxMode selects which inbox feed is shown.
type InboxMode int

const (
	InboxReplies InboxMode = iota
	InboxMentions
	InboxMessages
)

func (m InboxMode) String() string {
	switch m {
	case InboxMentions:
		return "Mentions"
	case InboxMessages:
		return "Messages"
	default:
		return "Replies"
	}
}

// Next cycles through the inbox modes.
func (m InboxMode) Next() InboxMode {
	return (m + 1) % 3
}

// InboxItem is a reply, mention or private message addressed to the user.
type InboxItem struct {
	Mode        InboxMode
	ID          int // Reply, mention or message id
	CommentID   int
	PostID      int
	PostName    string
	CreatorID   int
	CreatorName string
	Content     string
	Read        bool
	Published   time.Time
}

// ItemID implements Item.
func (i InboxItem) ItemID() string {
	return "inbox:" + i.Mode.String() + ":" + strconv.Itoa(i.ID)
}
