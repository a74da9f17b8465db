package lemmy

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/CrestNiraj12/lemmyterm/domain"
)

// lemmyTime accepts Lemmy timestamps with or without a zone suffix.
type lemmyTime time.Time

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func (t *lemmyTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil // Tolerate null and non-string values.
	}
	raw = strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			*t = lemmyTime(parsed.UTC())
			return nil
		}
	}
	return nil
}

func (t lemmyTime) Time() time.Time { return time.Time(t) }

type personJSON struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
	ActorID     string `json:"actor_id"`
}

type communityJSON struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ActorID     string `json:"actor_id"`
}

type postJSON struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Body        string    `json:"body"`
	CreatorID   int       `json:"creator_id"`
	CommunityID int       `json:"community_id"`
	Deleted     bool      `json:"deleted"`
	Removed     bool      `json:"removed"`
	Published   lemmyTime `json:"published"`
}

type postCountsJSON struct {
	Score    int `json:"score"`
	Comments int `json:"comments"`
}

type postView struct {
	Post      postJSON       `json:"post"`
	Creator   personJSON     `json:"creator"`
	Community communityJSON  `json:"community"`
	Counts    postCountsJSON `json:"counts"`
	Saved     bool           `json:"saved"`
	MyVote    *int           `json:"my_vote"`
}

type commentJSON struct {
	ID        int       `json:"id"`
	CreatorID int       `json:"creator_id"`
	PostID    int       `json:"post_id"`
	Content   string    `json:"content"`
	Path      string    `json:"path"`
	Deleted   bool      `json:"deleted"`
	Removed   bool      `json:"removed"`
	Published lemmyTime `json:"published"`
}

type commentView struct {
	Comment   commentJSON   `json:"comment"`
	Creator   personJSON    `json:"creator"`
	Post      postJSON      `json:"post"`
	Community communityJSON `json:"community"`
	Counts    struct {
		Score int `json:"score"`
	} `json:"counts"`
	Saved  bool `json:"saved"`
	MyVote *int `json:"my_vote"`
}

type communityView struct {
	Community  communityJSON `json:"community"`
	Subscribed string        `json:"subscribed"`
	Counts     struct {
		Subscribers int `json:"subscribers"`
		Posts       int `json:"posts"`
		Comments    int `json:"comments"`
	} `json:"counts"`
}

type personView struct {
	Person personJSON `json:"person"`
	Counts struct {
		PostCount    int `json:"post_count"`
		CommentCount int `json:"comment_count"`
	} `json:"counts"`
}

type readFlag struct {
	ID   int  `json:"id"`
	Read bool `json:"read"`
}

type mentionView struct {
	commentView
	PersonMention readFlag `json:"person_mention"`
}

type replyView struct {
	commentView
	CommentReply readFlag `json:"comment_reply"`
}

type privateMessageView struct {
	PrivateMessage struct {
		ID        int       `json:"id"`
		Content   string    `json:"content"`
		Read      bool      `json:"read"`
		Deleted   bool      `json:"deleted"`
		Published lemmyTime `json:"published"`
	} `json:"private_message"`
	Creator   personJSON `json:"creator"`
	Recipient personJSON `json:"recipient"`
}

func mapPost(v postView) domain.Post {
	return domain.Post{
		ID:            v.Post.ID,
		Name:          v.Post.Name,
		URL:           v.Post.URL,
		Body:          v.Post.Body,
		CommunityID:   v.Community.ID,
		CommunityName: v.Community.Name,
		CreatorID:     v.Creator.ID,
		CreatorName:   v.Creator.Name,
		Score:         v.Counts.Score,
		Comments:      v.Counts.Comments,
		MyVote:        deref(v.MyVote),
		Saved:         v.Saved,
		Deleted:       v.Post.Deleted || v.Post.Removed,
		Published:     v.Post.Published.Time(),
	}
}

func mapPosts(in []postView) []domain.Post {
	out := make([]domain.Post, 0, len(in))
	for _, v := range in {
		out = append(out, mapPost(v))
	}
	return out
}

func mapComment(v commentView) domain.Comment {
	return domain.Comment{
		ID:            v.Comment.ID,
		PostID:        v.Comment.PostID,
		PostName:      v.Post.Name,
		CommunityName: v.Community.Name,
		CreatorID:     v.Creator.ID,
		CreatorName:   v.Creator.Name,
		Content:       v.Comment.Content,
		Path:          v.Comment.Path,
		Score:         v.Counts.Score,
		MyVote:        deref(v.MyVote),
		Saved:         v.Saved,
		Deleted:       v.Comment.Deleted,
		Removed:       v.Comment.Removed,
		Published:     v.Comment.Published.Time(),
	}
}

func mapComments(in []commentView) []domain.Comment {
	out := make([]domain.Comment, 0, len(in))
	for _, v := range in {
		out = append(out, mapComment(v))
	}
	return out
}

func mapCommunity(v communityView) domain.Community {
	return domain.Community{
		ID:          v.Community.ID,
		Name:        v.Community.Name,
		Title:       v.Community.Title,
		Description: v.Community.Description,
		ActorID:     v.Community.ActorID,
		Subscribers: v.Counts.Subscribers,
		Posts:       v.Counts.Posts,
		Comments:    v.Counts.Comments,
		Subscribed:  v.Subscribed == "Subscribed" || v.Subscribed == "Pending",
	}
}

func mapCommunities(in []communityView) []domain.Community {
	out := make([]domain.Community, 0, len(in))
	for _, v := range in {
		out = append(out, mapCommunity(v))
	}
	return out
}

func mapPerson(v personView) domain.Person {
	return domain.Person{
		ID:           v.Person.ID,
		Name:         v.Person.Name,
		DisplayName:  v.Person.DisplayName,
		Bio:          v.Person.Bio,
		PostCount:    v.Counts.PostCount,
		CommentCount: v.Counts.CommentCount,
	}
}

func inboxFromComment(mode domain.InboxMode, flag readFlag, v commentView) domain.InboxItem {
	return domain.InboxItem{
		Mode:        mode,
		ID:          flag.ID,
		CommentID:   v.Comment.ID,
		PostID:      v.Comment.PostID,
		PostName:    v.Post.Name,
		CreatorID:   v.Creator.ID,
		CreatorName: v.Creator.Name,
		Content:     v.Comment.Content,
		Read:        flag.Read,
		Published:   v.Comment.Published.Time(),
	}
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
