package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/lemmyterm/domain"
	"github.com/CrestNiraj12/lemmyterm/tui/form"
	"github.com/CrestNiraj12/lemmyterm/tui/nav"
)

// toggleVote returns the score to send: pressing the direction already voted clears the vote.
func toggleVote(current, dir int) int {
	if current == dir {
		return 0
	}
	return dir
}

func voteStatus(score int) string {
	switch score {
	case 1:
		return "Upvoted."
	case -1:
		return "Downvoted."
	default:
		return "Vote removed."
	}
}

// creatorOf returns the author of it, or the person itself.
func creatorOf(it any) (int, string) {
	switch v := it.(type) {
	case domain.Post:
		return v.CreatorID, v.CreatorName
	case domain.Comment:
		return v.CreatorID, v.CreatorName
	case domain.InboxItem:
		return v.CreatorID, v.CreatorName
	case domain.Person:
		return v.ID, v.Label()
	}
	return 0, ""
}

func (a App) own(creatorID int) bool {
	sess := a.deps.Store.Current()
	return sess.LoggedIn() && creatorID == sess.AccountID
}

func (a *App) vote(it any, dir int) tea.Cmd {
	if !a.requireLogin() {
		return nil
	}
	switch v := it.(type) {
	case domain.Post:
		score := toggleVote(v.MyVote, dir)
		posts := a.deps.Posts
		return a.act("Voting...", func(ctx context.Context, sess domain.Session) (outcome, error) {
			p, err := posts.VotePost(ctx, sess, v.ID, score)
			return outcome{Status: voteStatus(score), Item: p}, err
		})
	case domain.Comment:
		score := toggleVote(v.MyVote, dir)
		comments := a.deps.Comments
		return a.act("Voting...", func(ctx context.Context, sess domain.Session) (outcome, error) {
			c, err := comments.VoteComment(ctx, sess, v.ID, score)
			return outcome{Status: voteStatus(score), Item: c}, err
		})
	}
	return nil
}

func (a *App) save(it any) tea.Cmd {
	if !a.requireLogin() {
		return nil
	}
	status := map[bool]string{true: "Saved.", false: "Removed from saved."}
	switch v := it.(type) {
	case domain.Post:
		posts := a.deps.Posts
		return a.act("Saving...", func(ctx context.Context, sess domain.Session) (outcome, error) {
			p, err := posts.SavePost(ctx, sess, v.ID, !v.Saved)
			return outcome{Status: status[!v.Saved], Item: p}, err
		})
	case domain.Comment:
		comments := a.deps.Comments
		return a.act("Saving...", func(ctx context.Context, sess domain.Session) (outcome, error) {
			c, err := comments.SaveComment(ctx, sess, v.ID, !v.Saved)
			return outcome{Status: status[!v.Saved], Item: c}, err
		})
	}
	return nil
}

func (a *App) reply(it any, viaEditor bool) tea.Cmd {
	if !a.requireLogin() {
		return nil
	}
	var target nav.Target
	var to string
	switch v := it.(type) {
	case domain.Post:
		target, to = nav.Target{PostID: v.ID}, v.Name
	case domain.Comment:
		target, to = nav.Target{PostID: v.PostID, CommentID: v.ID}, v.CreatorName
	case domain.InboxItem:
		if v.Mode == domain.InboxMessages {
			return a.message(v)
		}
		target, to = nav.Target{PostID: v.PostID, CommentID: v.CommentID}, v.CreatorName
	default:
		return nil
	}
	return a.openForm(nav.FormReply, target, form.Spec{
		Title:     "Reply to " + to,
		Body:      true,
		Header:    "Replying to " + to,
		ViaEditor: viaEditor,
	})
}

func (a *App) edit(it any, viaEditor bool) tea.Cmd {
	switch v := it.(type) {
	case domain.Post:
		if !a.own(v.CreatorID) {
			a.status = "You can only edit your own posts."
			return nil
		}
		return a.openForm(nav.FormEditPost, nav.Target{PostID: v.ID, CommunityID: v.CommunityID}, form.Spec{
			Title: "Edit post",
			Fields: []form.Field{
				{Label: "Title", Value: v.Name, Required: true},
				{Label: "URL", Value: v.URL, Placeholder: "optional link"},
			},
			Body:      true,
			BodyValue: v.Body,
			Header:    "Editing " + v.Name,
			ViaEditor: viaEditor,
		})
	case domain.Comment:
		if !a.own(v.CreatorID) {
			a.status = "You can only edit your own comments."
			return nil
		}
		return a.openForm(nav.FormEditComment, nav.Target{PostID: v.PostID, CommentID: v.ID}, form.Spec{
			Title:     "Edit comment",
			Body:      true,
			BodyValue: v.Content,
			Header:    "Editing your comment",
			ViaEditor: viaEditor,
		})
	}
	return nil
}

func (a *App) newPost(it any, viaEditor bool) tea.Cmd {
	var id int
	var name string
	switch v := it.(type) {
	case domain.Community:
		id, name = v.ID, v.Name
	case domain.Post:
		id, name = v.CommunityID, v.CommunityName
	default:
		a.status = "Open a community to post in it."
		return nil
	}
	if !a.requireLogin() {
		return nil
	}
	return a.openForm(nav.FormNewPost, nav.Target{CommunityID: id}, form.Spec{
		Title: "New post in c/" + name,
		Fields: []form.Field{
			{Label: "Title", Required: true},
			{Label: "URL", Placeholder: "optional link"},
		},
		Body:      true,
		Header:    "New post in c/" + name,
		ViaEditor: viaEditor,
	})
}

func (a *App) delete(it any) tea.Cmd {
	switch v := it.(type) {
	case domain.Post:
		if !a.own(v.CreatorID) {
			a.status = "You can only delete your own posts."
			return nil
		}
		a.confirm = &confirmation{prompt: "Delete this post?", run: func(a *App) tea.Cmd {
			posts := a.deps.Posts
			return a.act("Deleting...", func(ctx context.Context, sess domain.Session) (outcome, error) {
				p, err := posts.DeletePost(ctx, sess, v.ID)
				return outcome{Status: "Post deleted.", Item: p}, err
			})
		}}
	case domain.Comment:
		if !a.own(v.CreatorID) {
			a.status = "You can only delete your own comments."
			return nil
		}
		a.confirm = &confirmation{prompt: "Delete this comment?", run: func(a *App) tea.Cmd {
			comments := a.deps.Comments
			return a.act("Deleting...", func(ctx context.Context, sess domain.Session) (outcome, error) {
				_, err := comments.DeleteComment(ctx, sess, v.ID)
				return outcome{Status: "Comment deleted.", Reload: true}, err
			})
		}}
	}
	return nil
}

func (a *App) report(it any) tea.Cmd {
	var target nav.Target
	switch v := it.(type) {
	case domain.Post:
		target = nav.Target{PostID: v.ID}
	case domain.Comment:
		target = nav.Target{PostID: v.PostID, CommentID: v.ID}
	default:
		return nil
	}
	if !a.requireLogin() {
		return nil
	}
	return a.openForm(nav.FormReport, target, form.Spec{
		Title:  "Report",
		Fields: []form.Field{{Label: "Reason", Required: true}},
	})
}

func (a *App) subscribe(it any) tea.Cmd {
	c, ok := it.(domain.Community)
	if !ok || !a.requireLogin() {
		return nil
	}
	communities := a.deps.Communities
	follow := !c.Subscribed
	return a.act("Updating subscription...", func(ctx context.Context, sess domain.Session) (outcome, error) {
		updated, err := communities.Subscribe(ctx, sess, c.ID, follow)
		status := "Unsubscribed from c/" + c.Name + "."
		if follow {
			status = "Subscribed to c/" + c.Name + "."
		}
		return outcome{Status: status, Item: updated}, err
	})
}

func (a *App) block(it any) tea.Cmd {
	id, name := creatorOf(it)
	if id == 0 || !a.requireLogin() {
		return nil
	}
	if a.own(id) {
		a.status = "You cannot block yourself."
		return nil
	}
	a.confirm = &confirmation{prompt: fmt.Sprintf("Block %s?", name), run: func(a *App) tea.Cmd {
		accounts := a.deps.Accounts
		return a.act("Blocking...", func(ctx context.Context, sess domain.Session) (outcome, error) {
			err := accounts.BlockPerson(ctx, sess, id, true)
			return outcome{Status: "Blocked " + name + "."}, err
		})
	}}
	return nil
}

func (a *App) message(it any) tea.Cmd {
	id, name := creatorOf(it)
	if id == 0 || !a.requireLogin() {
		return nil
	}
	if a.own(id) {
		a.status = "You cannot message yourself."
		return nil
	}
	return a.openForm(nav.FormMessage, nav.Target{PersonID: id}, form.Spec{
		Title:  "Message to " + name,
		Body:   true,
		Header: "Private message to " + name,
	})
}

func (a *App) markAllRead() tea.Cmd {
	if !a.requireLogin() {
		return nil
	}
	accounts := a.deps.Accounts
	return a.act("Marking all as read...", func(ctx context.Context, sess domain.Session) (outcome, error) {
		err := accounts.MarkAllRead(ctx, sess)
		return outcome{Status: "Marked all as read.", Reload: true}, err
	})
}
