package app

import (
	"context"

	"github.com/CrestNiraj12/lemmyterm/domain"
)

// CommunityQuery selects one page of communities. A non-empty Query searches by name.
type CommunityQuery struct {
	Page    int
	Limit   int
	Listing domain.ListingType
	Query   string
}

// CommunityService reads communities and manages subscriptions.
type CommunityService interface {
	ListCommunities(ctx context.Context, s domain.Session, q CommunityQuery) ([]domain.Community, error)
	GetCommunity(ctx context.Context, s domain.Session, id int) (domain.Community, error)

	// Subscribe follows or unfollows a community.
	Subscribe(ctx context.Context, s domain.Session, id int, follow bool) (domain.Community, error)
}
