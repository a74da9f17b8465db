//go:build smoke

package lemmy

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/CrestNiraj12/lemmyterm/app"
	"github.com/CrestNiraj12/lemmyterm/domain"
)

func smokeSession(t *testing.T) domain.Session {
	t.Helper()
	base := strings.TrimSpace(os.Getenv("LEMMYTERM_SMOKE_INSTANCE"))
	if base == "" {
		t.Skip("LEMMYTERM_SMOKE_INSTANCE not set")
	}
	return domain.Session{InstanceURL: domain.NormalizeInstanceURL(base)}
}

func TestSmoke_FetchPostsAndComments(t *testing.T) {
	sess := smokeSession(t)
	client := NewClient(15*time.Second, "lemmyterm-smoke")
	posts := NewPostService(client)

	page, err := posts.ListPosts(context.Background(), sess, app.PostQuery{Page: 1, Limit: 5, Listing: domain.ListingLocal})
	if err != nil {
		t.Fatalf("post listing failed: %v", err)
	}
	if len(page) > 0 {
		comments, err := posts.ListComments(context.Background(), sess, page[0].ID, 8)
		if err != nil {
			t.Fatalf("comment listing failed: %v", err)
		}
		_ = domain.BuildCommentTree(comments)
	}
	if _, err := NewCommunityService(client).ListCommunities(context.Background(), sess, app.CommunityQuery{Page: 1, Limit: 5}); err != nil {
		t.Fatalf("community listing failed: %v", err)
	}
}

func TestSmoke_Login_OptIn(t *testing.T) {
	sess := smokeSession(t)
	user, pass := os.Getenv("LEMMYTERM_SMOKE_USER"), os.Getenv("LEMMYTERM_SMOKE_PASSWORD")
	if user == "" || pass == "" {
		t.Skip("LEMMYTERM_SMOKE_USER and LEMMYTERM_SMOKE_PASSWORD required")
	}
	client := NewClient(15*time.Second, "lemmyterm-smoke")
	got, err := NewAccountService(client).Login(context.Background(), sess.InstanceURL, user, pass, "")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !got.LoggedIn() || got.AccountName == "" {
		t.Fatalf("unexpected session: %+v", got)
	}
}
