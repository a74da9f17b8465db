package tui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/CrestNiraj12/lemmyterm/app"
	"github.com/CrestNiraj12/lemmyterm/domain"
	"github.com/CrestNiraj12/lemmyterm/tui/common"
	"github.com/CrestNiraj12/lemmyterm/tui/form"
	"github.com/CrestNiraj12/lemmyterm/tui/nav"
)

// communityPage is a community together with the first page of its posts.
type communityPage struct {
	Community domain.Community
	Posts     []domain.Post
}

// outcome is what a finished action reports back.
type outcome struct {
	Status string
	Item   domain.Item // Replaces the shown item with the same id
	Reload bool        // Reload the current screen's items in place
	Then   nav.Event   // Screen to open next
}

// open produces the screen for e. Events needing I/O go through Loading and
// are recorded once their screen is shown.
func (a *App) open(e nav.Event, amend bool) tea.Cmd {
	a.parked = nil
	a.confirm = nil
	if nav.Instant(e) {
		a.tracker.Cancel(nav.SlotScreen, nav.SlotItems)
		return a.showInstant(e, amend)
	}
	req := a.tracker.Begin(nav.SlotScreen)
	req.Event, req.Page, req.Amend = e, 1, amend
	if _, ok := e.(nav.OpenChooseInstance); ok {
		a.state = nav.ChooseInstance{Fetching: true}
	} else {
		a.state = nav.Loading{Label: loadingLabel(e)}
	}
	a.log.Debug("dispatch", "slot", req.Slot, "event", fmt.Sprintf("%+v", e))
	return a.fetchScreen(req)
}

func (a *App) showInstant(e nav.Event, amend bool) tea.Cmd {
	switch e := e.(type) {
	case nav.ShowMessage:
		a.show(nav.Message{Text: e.Text}, e, amend)
	case nav.ShowSettings:
		prefs := a.deps.Store.Preferences()
		a.show(nav.Settings{Prefs: prefs, Selected: prefs.CurrentIndex}, e, amend)
	case nav.ShowLogin:
		a.form = form.New(loginSpec(), nil)
		a.show(nav.Login{Instance: a.deps.Store.Current().InstanceURL}, e, amend)
		return a.form.Init()
	}
	return nil
}

func loadingLabel(e nav.Event) string {
	switch e.(type) {
	case nav.OpenPosts:
		return "Loading posts..."
	case nav.OpenCommunities:
		return "Loading communities..."
	case nav.OpenCommunity:
		return "Loading community..."
	case nav.OpenPost:
		return "Loading post..."
	case nav.OpenPerson:
		return "Loading profile..."
	case nav.OpenInbox:
		return "Loading inbox..."
	}
	return ""
}

// fetchScreen dispatches the work that produces req.Event's screen.
func (a *App) fetchScreen(req nav.Request) tea.Cmd {
	sess := a.deps.Store.Current()
	limit := a.deps.PageSize
	switch e := req.Event.(type) {
	case nav.OpenPosts:
		return a.fetchPosts(req, app.PostQuery{Listing: e.Listing, Sort: e.Sort})
	case nav.OpenCommunities:
		return a.fetchCommunities(req, e)
	case nav.OpenInbox:
		return a.fetchInbox(req, e)
	case nav.OpenPerson:
		return a.fetchPerson(req, e)
	case nav.OpenCommunity:
		posts, communities := a.deps.Posts, a.deps.Communities
		return nav.Dispatch(req, func(ctx context.Context) (communityPage, error) {
			c, err := communities.GetCommunity(ctx, sess, e.ID)
			if err != nil {
				return communityPage{}, err
			}
			ps, err := posts.ListPosts(ctx, sess, app.PostQuery{
				Page: req.Page, Limit: limit, Sort: e.Sort, CommunityName: c.Name,
			})
			if err != nil {
				return communityPage{}, fmt.Errorf("listing posts of %s: %w", c.Name, err)
			}
			return communityPage{Community: c, Posts: ps}, nil
		})
	case nav.OpenPost:
		posts := a.deps.Posts
		comments := a.tracker.Begin(nav.SlotItems)
		comments.Event = e
		return tea.Batch(
			nav.Dispatch(req, func(ctx context.Context) (domain.Post, error) {
				return posts.GetPost(ctx, sess, e.ID)
			}),
			a.fetchComments(comments, e.ID),
		)
	case nav.OpenChooseInstance:
		instances := a.deps.Instances
		return nav.Dispatch(req, func(ctx context.Context) ([]domain.Instance, error) {
			return instances.ListInstances(ctx)
		})
	}
	return nil
}

// beginItems issues a request loading page of event into the current screen.
func (a *App) beginItems(e nav.Event, page int, reset bool) nav.Request {
	req := a.tracker.Begin(nav.SlotItems)
	req.Event, req.Page, req.Reset = e, page, reset
	a.log.Debug("dispatch", "slot", req.Slot, "page", page, "reset", reset)
	return req
}

// fetchPage dispatches one more page for s, which must be a List or a
// paginated Detail.
func (a *App) fetchPage(req nav.Request, s nav.ViewState) tea.Cmd {
	switch s := s.(type) {
	case nav.List:
		return a.fetchScreen(req)
	case nav.Detail:
		switch e := s.Event.(type) {
		case nav.OpenCommunity:
			return a.fetchPosts(req, app.PostQuery{Sort: e.Sort, CommunityName: s.Community.Name})
		case nav.OpenPerson:
			return a.fetchPerson(req, e)
		case nav.OpenPost:
			return a.fetchComments(req, s.Post.ID)
		}
	}
	return nil
}

func (a *App) fetchPosts(req nav.Request, q app.PostQuery) tea.Cmd {
	sess := a.deps.Store.Current()
	posts := a.deps.Posts
	q.Page, q.Limit = req.Page, a.deps.PageSize
	return nav.Dispatch(req, func(ctx context.Context) ([]domain.Post, error) {
		return posts.ListPosts(ctx, sess, q)
	})
}

func (a *App) fetchCommunities(req nav.Request, e nav.OpenCommunities) tea.Cmd {
	sess := a.deps.Store.Current()
	communities := a.deps.Communities
	q := app.CommunityQuery{Page: req.Page, Limit: a.deps.PageSize, Listing: e.Listing, Query: e.Query}
	return nav.Dispatch(req, func(ctx context.Context) ([]domain.Community, error) {
		return communities.ListCommunities(ctx, sess, q)
	})
}

func (a *App) fetchInbox(req nav.Request, e nav.OpenInbox) tea.Cmd {
	sess := a.deps.Store.Current()
	accounts := a.deps.Accounts
	limit := a.deps.PageSize
	return nav.Dispatch(req, func(ctx context.Context) ([]domain.InboxItem, error) {
		return accounts.Inbox(ctx, sess, e.Mode, req.Page, limit, e.UnreadOnly)
	})
}

func (a *App) fetchPerson(req nav.Request, e nav.OpenPerson) tea.Cmd {
	sess := a.deps.Store.Current()
	accounts := a.deps.Accounts
	limit := a.deps.PageSize
	return nav.Dispatch(req, func(ctx context.Context) (domain.PersonDetail, error) {
		return accounts.PersonDetails(ctx, sess, e.ID, req.Page, limit, e.SavedOnly)
	})
}

func (a *App) fetchComments(req nav.Request, postID int) tea.Cmd {
	sess := a.deps.Store.Current()
	posts := a.deps.Posts
	depth := a.deps.CommentDepth
	return nav.Dispatch(req, func(ctx context.Context) ([]domain.Comment, error) {
		return posts.ListComments(ctx, sess, postID, depth)
	})
}

// act dispatches a write on the action slot. op receives a snapshot of the
// current session.
func (a *App) act(pending string, op func(ctx context.Context, sess domain.Session) (outcome, error)) tea.Cmd {
	req := a.tracker.Begin(nav.SlotAction)
	sess := a.deps.Store.Current()
	a.status = pending
	a.log.Debug("dispatch", "slot", req.Slot, "action", pending)
	return nav.Dispatch(req, func(ctx context.Context) (outcome, error) {
		return op(ctx, sess)
	})
}

// openURL hands a link to the system browser.
func openURL(rawURL string, logger *log.Logger) tea.Cmd {
	return func() tea.Msg {
		if !common.IsSafeExternalURL(rawURL) {
			return nil
		}
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", rawURL)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
		default:
			cmd = exec.Command("xdg-open", rawURL)
		}
		if err := cmd.Start(); err != nil {
			logger.Warn("opening link failed", "url", rawURL, "err", err)
		}
		return nil
	}
}
