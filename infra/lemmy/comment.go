package lemmy

import (
	"context"
	"fmt"
	"strings"

	"github.com/CrestNiraj12/lemmyterm/domain"
)

// commentService implements app.CommentService using the Lemmy API.
type commentService struct {
	client *Client
}

// NewCommentService creates a CommentService backed by Lemmy.
func NewCommentService(client *Client) *commentService {
	return &commentService{client: client}
}

type commentResponse struct {
	CommentView commentView `json:"comment_view"`
}

func (s *commentService) CreateComment(ctx context.Context, sess domain.Session, postID, parentID int, content string) (domain.Comment, error) {
	if err := requireLogin(sess); err != nil {
		return domain.Comment{}, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Comment{}, domain.ErrEmptyBody
	}
	body := map[string]any{"post_id": postID, "content": content, "auth": sess.JWT}
	if parentID != 0 {
		body["parent_id"] = parentID
	}

	var resp commentResponse
	if err := s.client.Post(ctx, sess, "/comment", body, &resp); err != nil {
		return domain.Comment{}, fmt.Errorf("creating comment: %w", err)
	}
	return mapComment(resp.CommentView), nil
}

func (s *commentService) EditComment(ctx context.Context, sess domain.Session, id int, content string) (domain.Comment, error) {
	if err := requireLogin(sess); err != nil {
		return domain.Comment{}, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Comment{}, domain.ErrEmptyBody
	}
	body := map[string]any{"comment_id": id, "content": content, "auth": sess.JWT}

	var resp commentResponse
	if err := s.client.Put(ctx, sess, "/comment", body, &resp); err != nil {
		return domain.Comment{}, fmt.Errorf("editing comment %d: %w", id, err)
	}
	return mapComment(resp.CommentView), nil
}

func (s *commentService) DeleteComment(ctx context.Context, sess domain.Session, id int) (domain.Comment, error) {
	if err := requireLogin(sess); err != nil {
		return domain.Comment{}, err
	}
	body := map[string]any{"comment_id": id, "deleted": true, "auth": sess.JWT}

	var resp commentResponse
	if err := s.client.Post(ctx, sess, "/comment/delete", body, &resp); err != nil {
		return domain.Comment{}, fmt.Errorf("deleting comment %d: %w", id, err)
	}
	return mapComment(resp.CommentView), nil
}

func (s *commentService) VoteComment(ctx context.Context, sess domain.Session, id, score int) (domain.Comment, error) {
	if err := requireLogin(sess); err != nil {
		return domain.Comment{}, err
	}
	body := map[string]any{"comment_id": id, "score": clampVote(score), "auth": sess.JWT}

	var resp commentResponse
	if err := s.client.Post(ctx, sess, "/comment/like", body, &resp); err != nil {
		return domain.Comment{}, fmt.Errorf("voting on comment %d: %w", id, err)
	}
	return mapComment(resp.CommentView), nil
}

func (s *commentService) SaveComment(ctx context.Context, sess domain.Session, id int, save bool) (domain.Comment, error) {
	if err := requireLogin(sess); err != nil {
		return domain.Comment{}, err
	}
	body := map[string]any{"comment_id": id, "save": save, "auth": sess.JWT}

	var resp commentResponse
	if err := s.client.Put(ctx, sess, "/comment/save", body, &resp); err != nil {
		return domain.Comment{}, fmt.Errorf("saving comment %d: %w", id, err)
	}
	return mapComment(resp.CommentView), nil
}

func (s *commentService) ReportComment(ctx context.Context, sess domain.Session, id int, reason string) error {
	if err := requireLogin(sess); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.ErrEmptyBody
	}
	body := map[string]any{"comment_id": id, "reason": reason, "auth": sess.JWT}
	if err := s.client.Post(ctx, sess, "/comment/report", body, nil); err != nil {
		return fmt.Errorf("reporting comment %d: %w", id, err)
	}
	return nil
}
