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

// communityService implements app.CommunityService using the Lemmy API.
type communityService struct {
	client *Client
}

// NewCommunityService creates a CommunityService backed by Lemmy.
func NewCommunityService(client *Client) *communityService {
	return &communityService{client: client}
}

type communityResponse struct {
	CommunityView communityView `json:"community_view"`
}

// ListCommunities lists the most active communities, or searches by name when q.Query is set.
func (s *communityService) ListCommunities(ctx context.Context, sess domain.Session, q app.CommunityQuery) ([]domain.Community, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(max(q.Page, 1)))
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}

	var resp struct {
		Communities []communityView `json:"communities"`
	}
	if term := strings.TrimSpace(q.Query); term != "" {
		query.Set("q", term)
		query.Set("type_", "Communities")
		query.Set("sort", "TopMonth")
		query.Set("listing_type", q.Listing.String())
		if err := s.client.Get(ctx, sess, "/search", query, &resp); err != nil {
			return nil, fmt.Errorf("searching communities: %w", err)
		}
		return mapCommunities(resp.Communities), nil
	}

	query.Set("sort", "TopMonth")
	query.Set("type_", q.Listing.String())
	if err := s.client.Get(ctx, sess, "/community/list", query, &resp); err != nil {
		return nil, fmt.Errorf("listing communities: %w", err)
	}
	return mapCommunities(resp.Communities), nil
}

func (s *communityService) GetCommunity(ctx context.Context, sess domain.Session, id int) (domain.Community, error) {
	query := url.Values{}
	query.Set("id", strconv.Itoa(id))

	var resp communityResponse
	if err := s.client.Get(ctx, sess, "/community", query, &resp); err != nil {
		return domain.Community{}, fmt.Errorf("fetching community %d: %w", id, err)
	}
	return mapCommunity(resp.CommunityView), nil
}

func (s *communityService) Subscribe(ctx context.Context, sess domain.Session, id int, follow bool) (domain.Community, error) {
	if err := requireLogin(sess); err != nil {
		return domain.Community{}, err
	}
	body := map[string]any{"community_id": id, "follow": follow, "auth": sess.JWT}

	var resp communityResponse
	if err := s.client.Post(ctx, sess, "/community/follow", body, &resp); err != nil {
		return domain.Community{}, fmt.Errorf("following community %d: %w", id, err)
	}
	return mapCommunity(resp.CommunityView), nil
}
