package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/lemmyterm/app"
	"github.com/CrestNiraj12/lemmyterm/domain"
	"github.com/CrestNiraj12/lemmyterm/tui/form"
	"github.com/CrestNiraj12/lemmyterm/tui/nav"
)

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, a.keys.ForceQuit) {
		return tea.Quit
	}
	if a.formActive() {
		var cmd tea.Cmd
		a.form, cmd = a.form.Update(msg)
		return cmd
	}
	if a.confirm != nil {
		c := a.confirm
		a.confirm = nil
		if key.Matches(msg, a.keys.Confirm) {
			return c.run(a)
		}
		a.status = "Cancelled."
		return nil
	}

	a.status = ""
	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit
	case key.Matches(msg, a.keys.ToggleHints):
		a.showKeys = !a.showKeys
		return nil
	case key.Matches(msg, a.keys.Back):
		if a.fetchingScreen() {
			return a.abandon()
		}
		return a.back()
	}
	if cmd, ok := a.screenKey(msg); ok {
		return cmd
	}

	switch s := a.state.(type) {
	case nav.List:
		return a.listKey(s, msg)
	case nav.Detail:
		return a.detailKey(s, msg)
	case nav.Settings:
		return a.settingsKey(s, msg)
	case nav.ChooseInstance:
		return a.instanceKey(s, msg)
	case nav.Message:
		if key.Matches(msg, a.keys.Refresh) && a.retry != nil {
			return a.open(a.retry, true)
		}
	}
	return nil
}

// fetchingScreen reports whether the shown state stands in for a screen
// that has not been recorded yet.
func (a *App) fetchingScreen() bool {
	switch s := a.state.(type) {
	case nav.Loading:
		return true
	case nav.ChooseInstance:
		return s.Fetching
	}
	return false
}

// screenKey handles the keys that open a top-level screen from anywhere.
func (a *App) screenKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	sess := a.deps.Store.Current()
	var e nav.Event
	switch {
	case key.Matches(msg, a.keys.Posts):
		if !a.requireInstance() {
			return nil, true
		}
		e = nav.DefaultEvent()
	case key.Matches(msg, a.keys.Communities):
		if !a.requireInstance() {
			return nil, true
		}
		e = nav.OpenCommunities{Listing: domain.ListingAll}
	case key.Matches(msg, a.keys.Inbox):
		if !a.requireLogin() {
			return nil, true
		}
		e = nav.OpenInbox{Mode: domain.InboxReplies, UnreadOnly: true}
	case key.Matches(msg, a.keys.Saved):
		if !a.requireLogin() {
			return nil, true
		}
		e = nav.OpenPerson{ID: sess.AccountID, SavedOnly: true}
	case key.Matches(msg, a.keys.Profile):
		if !a.requireLogin() {
			return nil, true
		}
		e = nav.OpenPerson{ID: sess.AccountID}
	case key.Matches(msg, a.keys.Settings):
		e = nav.ShowSettings{}
	case key.Matches(msg, a.keys.Login):
		if !a.requireInstance() {
			return nil, true
		}
		e = nav.ShowLogin{}
	case key.Matches(msg, a.keys.Instance):
		e = nav.OpenChooseInstance{}
	default:
		return nil, false
	}
	return a.open(e, false), true
}

func (a *App) listKey(s nav.List, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Up):
		s.Selected = max(s.Selected-1, 0)
		a.state = s
		return nil
	case key.Matches(msg, a.keys.Down):
		if s.Selected < len(s.Items)-1 {
			s.Selected++
			a.state = s
		}
		if s.Selected >= len(s.Items)-1 && a.infiniteScroll() {
			return a.loadMore()
		}
		return nil
	case key.Matches(msg, a.keys.LoadMore):
		return a.loadMore()
	case key.Matches(msg, a.keys.Refresh):
		return a.refreshItems()
	case key.Matches(msg, a.keys.Search):
		if s.Kind == nav.ListCommunities {
			return a.openForm(nav.FormSearch, nav.Target{}, form.Spec{
				Title:  "Search communities",
				Fields: []form.Field{{Label: "Name", Placeholder: "e.g. golang", Required: true}},
			})
		}
		return nil
	case key.Matches(msg, a.keys.MarkRead):
		if s.Kind == nav.ListInbox {
			return a.markAllRead()
		}
		return nil
	}
	if e, ok := a.refilter(s.Event, msg); ok {
		return a.open(e, true)
	}
	return a.itemKey(msg, a.selection())
}

func (a *App) detailKey(s nav.Detail, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Up):
		s.Selected = max(s.Selected-1, -1)
		a.state = s
		return nil
	case key.Matches(msg, a.keys.Down):
		if s.Selected < len(s.Items)-1 {
			s.Selected++
			a.state = s
		}
		if s.Selected >= len(s.Items)-1 && a.infiniteScroll() {
			return a.loadMore()
		}
		return nil
	case key.Matches(msg, a.keys.LoadMore):
		return a.loadMore()
	case key.Matches(msg, a.keys.Refresh):
		return a.open(s.Event, true)
	}
	if e, ok := a.refilter(s.Event, msg); ok {
		return a.open(e, true)
	}
	return a.itemKey(msg, a.selection())
}

// refilter returns the event reproducing the current screen with the filter
// msg changes.
func (a *App) refilter(e nav.Event, msg tea.KeyMsg) (nav.Event, bool) {
	switch e := e.(type) {
	case nav.OpenPosts:
		switch {
		case key.Matches(msg, a.keys.Listing):
			e.Listing = e.Listing.Next()
			return e, true
		case key.Matches(msg, a.keys.Sort):
			e.Sort = e.Sort.Next()
			return e, true
		}
	case nav.OpenCommunities:
		if key.Matches(msg, a.keys.Listing) {
			e.Listing = e.Listing.Next()
			return e, true
		}
	case nav.OpenCommunity:
		if key.Matches(msg, a.keys.Sort) {
			e.Sort = e.Sort.Next()
			return e, true
		}
	case nav.OpenInbox:
		switch {
		case key.Matches(msg, a.keys.Listing):
			e.Mode = e.Mode.Next()
			return e, true
		case key.Matches(msg, a.keys.Unread):
			e.UnreadOnly = !e.UnreadOnly
			return e, true
		}
	}
	return nil, false
}

// selection returns what item actions apply to: the selected item, or the
// Detail's own entity while its header is selected.
func (a App) selection() any {
	switch s := a.state.(type) {
	case nav.List:
		if s.Selected >= 0 && s.Selected < len(s.Items) {
			return s.Items[s.Selected]
		}
	case nav.Detail:
		if s.Selected >= 0 && s.Selected < len(s.Items) {
			return s.Items[s.Selected]
		}
		switch s.Kind {
		case nav.DetailPost:
			return s.Post
		case nav.DetailCommunity:
			return s.Community
		default:
			return s.Person
		}
	}
	return nil
}

func (a *App) itemKey(msg tea.KeyMsg, it any) tea.Cmd {
	if it == nil {
		return nil
	}
	switch {
	case key.Matches(msg, a.keys.Enter):
		return a.enter(it)
	case key.Matches(msg, a.keys.Upvote):
		return a.vote(it, 1)
	case key.Matches(msg, a.keys.Downvote):
		return a.vote(it, -1)
	case key.Matches(msg, a.keys.Save):
		return a.save(it)
	case key.Matches(msg, a.keys.Reply), key.Matches(msg, a.keys.ReplyEditor):
		return a.reply(it, key.Matches(msg, a.keys.ReplyEditor))
	case key.Matches(msg, a.keys.Edit), key.Matches(msg, a.keys.EditEditor):
		return a.edit(it, key.Matches(msg, a.keys.EditEditor))
	case key.Matches(msg, a.keys.NewPost), key.Matches(msg, a.keys.NewEditor):
		return a.newPost(it, key.Matches(msg, a.keys.NewEditor))
	case key.Matches(msg, a.keys.Delete):
		return a.delete(it)
	case key.Matches(msg, a.keys.Report):
		return a.report(it)
	case key.Matches(msg, a.keys.Subscribe):
		return a.subscribe(it)
	case key.Matches(msg, a.keys.Block):
		return a.block(it)
	case key.Matches(msg, a.keys.Message):
		return a.message(it)
	case key.Matches(msg, a.keys.Author):
		if id, _ := creatorOf(it); id != 0 {
			return a.open(nav.OpenPerson{ID: id}, false)
		}
	case key.Matches(msg, a.keys.Community):
		if p, ok := it.(domain.Post); ok {
			return a.open(nav.OpenCommunity{ID: p.CommunityID}, false)
		}
	case key.Matches(msg, a.keys.Open):
		if p, ok := it.(domain.Post); ok && p.URL != "" {
			return openURL(p.URL, a.log)
		}
		a.status = "Nothing to open."
	}
	return nil
}

func (a *App) enter(it any) tea.Cmd {
	switch v := it.(type) {
	case domain.Post:
		if d, ok := a.state.(nav.Detail); ok && d.Kind == nav.DetailPost {
			return nil
		}
		return a.open(nav.OpenPost{ID: v.ID}, false)
	case domain.Community:
		if _, ok := a.state.(nav.Detail); ok {
			return nil
		}
		return a.open(nav.OpenCommunity{ID: v.ID}, false)
	case domain.Comment:
		if d, ok := a.state.(nav.Detail); ok && d.Kind == nav.DetailPost {
			return nil
		}
		return a.open(nav.OpenPost{ID: v.PostID}, false)
	case domain.InboxItem:
		if v.Mode == domain.InboxMessages {
			return a.message(v)
		}
		return a.open(nav.OpenPost{ID: v.PostID}, false)
	}
	return nil
}

func (a *App) settingsKey(s nav.Settings, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Up):
		s.Selected = max(s.Selected-1, 0)
		a.state = s
	case key.Matches(msg, a.keys.Down):
		s.Selected = max(min(s.Selected+1, len(s.Prefs.Accounts)-1), 0)
		a.state = s
	case key.Matches(msg, a.keys.Enter):
		if s.Selected == s.Prefs.CurrentIndex {
			a.status = "Already using this account."
			return nil
		}
		index := s.Selected
		return a.changeSession("switch account", func(st app.SessionStore) error {
			return st.Switch(index)
		})
	case key.Matches(msg, a.keys.NewPost):
		return a.changeSession("create account", func(st app.SessionStore) error {
			if err := st.Create(); err != nil {
				return err
			}
			return st.Switch(len(st.Preferences().Accounts) - 1)
		})
	case key.Matches(msg, a.keys.Delete):
		if s.Selected == s.Prefs.CurrentIndex {
			a.status = domain.Describe(domain.ErrRemoveCurrent)
			return nil
		}
		index := s.Selected
		a.confirm = &confirmation{prompt: "Remove this account?", run: func(a *App) tea.Cmd {
			if err := a.deps.Store.Remove(index); err != nil {
				a.status = "Error: " + domain.Describe(err)
				return nil
			}
			a.refreshSettings()
			a.status = "Account removed."
			return nil
		}}
	case key.Matches(msg, a.keys.Logout):
		if !a.deps.Store.Current().LoggedIn() {
			a.status = "Not logged in."
			return nil
		}
		cmd := a.changeSession("logout", func(st app.SessionStore) error {
			return st.Logout()
		})
		if cmd != nil {
			a.status = "Logged out."
		}
		return cmd
	case key.Matches(msg, a.keys.InfiniteScroll):
		if err := a.deps.Store.SetInfiniteScroll(!s.Prefs.InfiniteScroll); err != nil {
			a.status = "Error: " + domain.Describe(err)
			return nil
		}
		a.refreshSettings()
	}
	return nil
}

// refreshSettings reloads the Settings screen from the store in place.
func (a *App) refreshSettings() {
	s, ok := a.state.(nav.Settings)
	if !ok {
		return
	}
	s.Prefs = a.deps.Store.Preferences()
	s.Selected = clampSelection(s.Selected, len(s.Prefs.Accounts), 0)
	a.state = s
}

func (a *App) instanceKey(s nav.ChooseInstance, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Up):
		s.Selected = max(s.Selected-1, 0)
		a.state = s
	case key.Matches(msg, a.keys.Down):
		s.Selected = max(min(s.Selected+1, len(s.Instances)-1), 0)
		a.state = s
	case key.Matches(msg, a.keys.Enter):
		if s.Selected >= len(s.Instances) {
			return nil
		}
		url := s.Instances[s.Selected].URL()
		return a.changeSession("choose instance", func(st app.SessionStore) error {
			return st.SetInstance(url)
		})
	case key.Matches(msg, a.keys.Search):
		return a.openForm(nav.FormInstance, nav.Target{}, form.Spec{
			Title:  "Use another instance",
			Fields: []form.Field{{Label: "Instance URL", Placeholder: "https://lemmy.ml", Required: true}},
		})
	case key.Matches(msg, a.keys.Refresh):
		return a.open(nav.OpenChooseInstance{}, true)
	}
	return nil
}
