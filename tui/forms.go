package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/lemmyterm/app"
	"github.com/CrestNiraj12/lemmyterm/domain"
	"github.com/CrestNiraj12/lemmyterm/tui/form"
	"github.com/CrestNiraj12/lemmyterm/tui/nav"
)

func loginSpec() form.Spec {
	return form.Spec{
		Title: "Log in",
		Fields: []form.Field{
			{Label: "Username or email", Required: true},
			{Label: "Password", Secret: true, Required: true},
			{Label: "2FA token", Placeholder: "only if enabled"},
		},
	}
}

// openForm shows a modal form over the current screen. Forms are not
// recorded on history; the screen under them is restored when they close.
func (a *App) openForm(kind nav.FormKind, target nav.Target, spec form.Spec) tea.Cmd {
	a.form = form.New(spec, a.deps.Editor)
	a.state = nav.Form{Kind: kind, Target: target, Title: spec.Title, Return: a.state}
	return a.form.Init()
}

func (a *App) closeForm(status string) tea.Cmd {
	switch s := a.state.(type) {
	case nav.Form:
		a.state = s.Return
		a.status = status
	case nav.Login:
		if a.history.Len() < 2 {
			return a.restart()
		}
		return a.back()
	}
	return nil
}

func (a *App) submitForm(msg form.SubmitMsg) tea.Cmd {
	switch s := a.state.(type) {
	case nav.Login:
		return a.login(s, msg.Values)
	case nav.Form:
		a.state = s.Return
		return a.submit(s, msg)
	}
	return nil
}

// login dispatches the credentials on the screen slot behind a Loading
// screen. Success is a session-lifecycle change.
func (a *App) login(s nav.Login, values []string) tea.Cmd {
	username, password, totp := values[0], values[1], values[2]
	accounts := a.deps.Accounts
	instance := s.Instance
	req := a.tracker.Begin(nav.SlotScreen)
	a.state = nav.Loading{Label: "Logging in..."}
	a.log.Debug("dispatch", "slot", req.Slot, "login", instance)
	return nav.Dispatch(req, func(ctx context.Context) (domain.Session, error) {
		return accounts.Login(ctx, instance, username, password, totp)
	})
}

func (a *App) submit(f nav.Form, msg form.SubmitMsg) tea.Cmd {
	t := f.Target
	switch f.Kind {
	case nav.FormNewPost:
		posts := a.deps.Posts
		draft := domain.PostDraft{Name: msg.Values[0], URL: msg.Values[1], Body: msg.Body, CommunityID: t.CommunityID}
		return a.act("Posting...", func(ctx context.Context, sess domain.Session) (outcome, error) {
			p, err := posts.CreatePost(ctx, sess, draft)
			return outcome{Status: "Post created.", Then: nav.OpenPost{ID: p.ID}}, err
		})

	case nav.FormEditPost:
		posts := a.deps.Posts
		draft := domain.PostDraft{Name: msg.Values[0], URL: msg.Values[1], Body: msg.Body, CommunityID: t.CommunityID}
		return a.act("Updating...", func(ctx context.Context, sess domain.Session) (outcome, error) {
			p, err := posts.EditPost(ctx, sess, t.PostID, draft)
			return outcome{Status: "Post updated.", Item: p}, err
		})

	case nav.FormReply:
		comments := a.deps.Comments
		body := msg.Body
		return a.act("Sending reply...", func(ctx context.Context, sess domain.Session) (outcome, error) {
			_, err := comments.CreateComment(ctx, sess, t.PostID, t.CommentID, body)
			return outcome{Status: "Reply sent.", Reload: true}, err
		})

	case nav.FormEditComment:
		comments := a.deps.Comments
		body := msg.Body
		return a.act("Updating...", func(ctx context.Context, sess domain.Session) (outcome, error) {
			c, err := comments.EditComment(ctx, sess, t.CommentID, body)
			return outcome{Status: "Comment updated.", Item: c}, err
		})

	case nav.FormReport:
		posts, comments := a.deps.Posts, a.deps.Comments
		reason := msg.Values[0]
		return a.act("Reporting...", func(ctx context.Context, sess domain.Session) (outcome, error) {
			var err error
			if t.CommentID != 0 {
				err = comments.ReportComment(ctx, sess, t.CommentID, reason)
			} else {
				err = posts.ReportPost(ctx, sess, t.PostID, reason)
			}
			return outcome{Status: "Report sent."}, err
		})

	case nav.FormMessage:
		accounts := a.deps.Accounts
		body := msg.Body
		return a.act("Sending message...", func(ctx context.Context, sess domain.Session) (outcome, error) {
			err := accounts.SendMessage(ctx, sess, t.PersonID, body)
			return outcome{Status: "Message sent."}, err
		})

	case nav.FormSearch:
		e := nav.OpenCommunities{Listing: domain.ListingAll, Query: msg.Values[0]}
		if l, ok := f.Return.(nav.List); ok && l.Kind == nav.ListCommunities {
			if cur, ok := l.Event.(nav.OpenCommunities); ok {
				e.Listing = cur.Listing
			}
			return a.open(e, true)
		}
		return a.open(e, false)

	case nav.FormInstance:
		url := domain.NormalizeInstanceURL(msg.Values[0])
		if !strings.HasPrefix(url, "https://") {
			a.status = "Instance URL must use https."
			return nil
		}
		return a.changeSession("choose instance", func(st app.SessionStore) error {
			return st.SetInstance(url)
		})
	}
	return nil
}
