package app

import (
	"context"

	"github.com/CrestNiraj12/lemmyterm/domain"
)

// CommentService writes comments.
type CommentService interface {
	// CreateComment replies to a post, or to a comment when parentID is non-zero.
	CreateComment(ctx context.Context, s domain.Session, postID, parentID int, content string) (domain.Comment, error)

	EditComment(ctx context.Context, s domain.Session, id int, content string) (domain.Comment, error)
	DeleteComment(ctx context.Context, s domain.Session, id int) (domain.Comment, error)
	VoteComment(ctx context.Context, s domain.Session, id, score int) (domain.Comment, error)
	SaveComment(ctx context.Context, s domain.Session, id int, save bool) (domain.Comment, error)
	ReportComment(ctx context.Context, s domain.Session, id int, reason string) error
}
