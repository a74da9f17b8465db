package app

import (
	"context"

	"github.com/CrestNiraj12/lemmyterm/domain"
)

// PostQuery selects one page of a post listing.
type PostQuery struct {
	Page          int
	Limit         int
	Listing       domain.ListingType
	Sort          domain.SortType
	CommunityName string // Empty for the front page
}

// PostService reads and writes posts and their comment listings.
// Every call takes the session snapshot it should authenticate with.
type PostService interface {
	// ListPosts returns one page of posts.
	ListPosts(ctx context.Context, s domain.Session, q PostQuery) ([]domain.Post, error)

	// GetPost returns a single post.
	GetPost(ctx context.Context, s domain.Session, id int) (domain.Post, error)

	// ListComments returns the flat comment listing of a post, in server order.
	ListComments(ctx context.Context, s domain.Session, postID, maxDepth int) ([]domain.Comment, error)

	// CreatePost submits a new post.
	CreatePost(ctx context.Context, s domain.Session, draft domain.PostDraft) (domain.Post, error)

	// EditPost updates an existing post.
	EditPost(ctx context.Context, s domain.Session, id int, draft domain.PostDraft) (domain.Post, error)

	// DeletePost marks a post as deleted.
	DeletePost(ctx context.Context, s domain.Session, id int) (domain.Post, error)

	// VotePost sets the user's vote: 1, -1, or 0 to reset.
	VotePost(ctx context.Context, s domain.Session, id, score int) (domain.Post, error)

	// SavePost saves or unsaves a post.
	SavePost(ctx context.Context, s domain.Session, id int, save bool) (domain.Post, error)

	// ReportPost files a report against a post.
	ReportPost(ctx context.Context, s domain.Session, id int, reason string) error
}
