package lemmy

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/CrestNiraj12/lemmyterm/app"
	"github.com/CrestNiraj12/lemmyterm/domain"
)

// postService implements app.PostService using the Lemmy API.
type postService struct {
	client *Client
}

// NewPostService creates a PostService backed by Lemmy.
func NewPostService(client *Client) *postService {
	return &postService{client: client}
}

type postResponse struct {
	PostView postView `json:"post_view"`
}

func (s *postService) ListPosts(ctx context.Context, sess domain.Session, q app.PostQuery) ([]domain.Post, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(max(q.Page, 1)))
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	query.Set("sort", q.Sort.String())
	if q.CommunityName != "" {
		query.Set("community_name", q.CommunityName)
	} else {
		query.Set("type_", q.Listing.String())
	}

	var resp struct {
		Posts []postView `json:"posts"`
	}
	if err := s.client.Get(ctx, sess, "/post/list", query, &resp); err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	return mapPosts(resp.Posts), nil
}

func (s *postService) GetPost(ctx context.Context, sess domain.Session, id int) (domain.Post, error) {
	query := url.Values{}
	query.Set("id", strconv.Itoa(id))

	var resp postResponse
	if err := s.client.Get(ctx, sess, "/post", query, &resp); err != nil {
		return domain.Post{}, fmt.Errorf("fetching post %d: %w", id, err)
	}
	return mapPost(resp.PostView), nil
}

func (s *postService) ListComments(ctx context.Context, sess domain.Session, postID, maxDepth int) ([]domain.Comment, error) {
	query := url.Values{}
	query.Set("post_id", strconv.Itoa(postID))
	query.Set("sort", "Hot")
	query.Set("type_", "All")
	if maxDepth > 0 {
		query.Set("max_depth", strconv.Itoa(maxDepth))
	}

	var resp struct {
		Comments []commentView `json:"comments"`
	}
	if err := s.client.Get(ctx, sess, "/comment/list", query, &resp); err != nil {
		return nil, fmt.Errorf("listing comments of post %d: %w", postID, err)
	}
	return mapComments(resp.Comments), nil
}

type postForm struct {
	Name        string `json:"name"`
	URL         string `json:"url,omitempty"`
	Body        string `json:"body,omitempty"`
	CommunityID int    `json:"community_id,omitempty"`
	PostID      int    `json:"post_id,omitempty"`
	Auth        string `json:"auth"`
}

func newPostForm(sess domain.Session, draft domain.PostDraft) (postForm, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return postForm{}, domain.ErrEmptyTitle
	}
	return postForm{
		Name: name,
		URL:  strings.TrimSpace(draft.URL),
		Body: strings.TrimSpace(draft.Body),
		Auth: sess.JWT,
	}, nil
}

func (s *postService) CreatePost(ctx context.Context, sess domain.Session, draft domain.PostDraft) (domain.Post, error) {
	if err := requireLogin(sess); err != nil {
		return domain.Post{}, err
	}
	form, err := newPostForm(sess, draft)
	if err != nil {
		return domain.Post{}, err
	}
	form.CommunityID = draft.CommunityID

	var resp postResponse
	if err := s.client.Post(ctx, sess, "/post", form, &resp); err != nil {
		return domain.Post{}, fmt.Errorf("creating post: %w", err)
	}
	return mapPost(resp.PostView), nil
}

func (s *postService) EditPost(ctx context.Context, sess domain.Session, id int, draft domain.PostDraft) (domain.Post, error) {
	if err := requireLogin(sess); err != nil {
		return domain.Post{}, err
	}
	form, err := newPostForm(sess, draft)
	if err != nil {
		return domain.Post{}, err
	}
	form.PostID = id

	var resp postResponse
	if err := s.client.Put(ctx, sess, "/post", form, &resp); err != nil {
		return domain.Post{}, fmt.Errorf("editing post %d: %w", id, err)
	}
	return mapPost(resp.PostView), nil
}

func (s *postService) DeletePost(ctx context.Context, sess domain.Session, id int) (domain.Post, error) {
	if err := requireLogin(sess); err != nil {
		return domain.Post{}, err
	}
	body := map[string]any{"post_id": id, "deleted": true, "auth": sess.JWT}

	var resp postResponse
	if err := s.client.Post(ctx, sess, "/post/delete", body, &resp); err != nil {
		return domain.Post{}, fmt.Errorf("deleting post %d: %w", id, err)
	}
	return mapPost(resp.PostView), nil
}

func (s *postService) VotePost(ctx context.Context, sess domain.Session, id, score int) (domain.Post, error) {
	if err := requireLogin(sess); err != nil {
		return domain.Post{}, err
	}
	body := map[string]any{"post_id": id, "score": clampVote(score), "auth": sess.JWT}

	var resp postResponse
	if err := s.client.Post(ctx, sess, "/post/like", body, &resp); err != nil {
		return domain.Post{}, fmt.Errorf("voting on post %d: %w", id, err)
	}
	return mapPost(resp.PostView), nil
}

func (s *postService) SavePost(ctx context.Context, sess domain.Session, id int, save bool) (domain.Post, error) {
	if err := requireLogin(sess); err != nil {
		return domain.Post{}, err
	}
	body := map[string]any{"post_id": id, "save": save, "auth": sess.JWT}

	var resp postResponse
	if err := s.client.Put(ctx, sess, "/post/save", body, &resp); err != nil {
		return domain.Post{}, fmt.Errorf("saving post %d: %w", id, err)
	}
	return mapPost(resp.PostView), nil
}

func (s *postService) ReportPost(ctx context.Context, sess domain.Session, id int, reason string) error {
	if err := requireLogin(sess); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.ErrEmptyBody
	}
	body := map[string]any{"post_id": id, "reason": reason, "auth": sess.JWT}
	if err := s.client.Post(ctx, sess, "/post/report", body, nil); err != nil {
		return fmt.Errorf("reporting post %d: %w", id, err)
	}
	return nil
}

func clampVote(score int) int {
	switch {
	case score > 0:
		return 1
	case score < 0:
		return -1
	default:
		return 0
	}
}
