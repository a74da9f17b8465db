package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/lemmyterm/app"
	"github.com/CrestNiraj12/lemmyterm/domain"
	"github.com/CrestNiraj12/lemmyterm/tui/form"
	"github.com/CrestNiraj12/lemmyterm/tui/nav"
)

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		return a.handleKey(msg)

	case form.SubmitMsg:
		return a.submitForm(msg)
	case form.CancelMsg:
		return a.closeForm("Cancelled.")
	case form.ErrorMsg:
		return a.closeForm("Error: " + msg.Err.Error())

	case nav.Result[[]domain.Post]:
		return a.onPosts(msg)
	case nav.Result[[]domain.Community]:
		return a.onCommunities(msg)
	case nav.Result[[]domain.InboxItem]:
		return a.onInbox(msg)
	case nav.Result[[]domain.Instance]:
		return a.onInstances(msg)
	case nav.Result[communityPage]:
		return a.onCommunityPage(msg)
	case nav.Result[domain.Post]:
		return a.onPost(msg)
	case nav.Result[[]domain.Comment]:
		return a.onComments(msg)
	case nav.Result[domain.PersonDetail]:
		return a.onPerson(msg)
	case nav.Result[domain.Session]:
		return a.onLogin(msg)
	case nav.Result[outcome]:
		return a.onOutcome(msg)
	}

	// Everything else (cursor blink, editor exit) belongs to the open form.
	if a.formActive() {
		var cmd tea.Cmd
		a.form, cmd = a.form.Update(msg)
		return cmd
	}
	return nil
}

// --- Results ---

// accept retires req and reports whether its result should be applied. Stale
// results are dropped; failures are surfaced and also reported false.
func (a *App) accept(req nav.Request, err error) bool {
	if !a.tracker.Accept(req) {
		a.log.Debug("dropped stale result", "slot", req.Slot, "id", req.ID)
		return false
	}
	if err != nil {
		a.fail(req, err)
		return false
	}
	return true
}

// fail shows what went wrong. Screen and item failures replace the screen
// with a Message recorded on history; action failures only set the status.
func (a *App) fail(req nav.Request, err error) {
	a.log.Warn("request failed", "slot", req.Slot, "err", err)
	if req.Slot == nav.SlotAction {
		a.status = "Error: " + domain.Describe(err)
		return
	}
	a.tracker.Cancel(nav.SlotScreen, nav.SlotItems)
	a.parked = nil
	a.retry = req.Event
	text := domain.Describe(err)
	a.show(nav.Message{Text: text}, nav.ShowMessage{Text: text}, false)
}

func (a *App) onPosts(msg nav.Result[[]domain.Post]) tea.Cmd {
	if !a.accept(msg.Req, msg.Err) {
		return nil
	}
	items := toItems(msg.Value)
	exhausted := len(msg.Value) < a.deps.PageSize
	if msg.Req.Slot == nav.SlotScreen {
		a.showList(nav.ListPosts, msg.Req, items, exhausted)
		return nil
	}
	a.applyPage(msg.Req, items, exhausted)
	return nil
}

func (a *App) onCommunities(msg nav.Result[[]domain.Community]) tea.Cmd {
	if !a.accept(msg.Req, msg.Err) {
		return nil
	}
	items := toItems(msg.Value)
	exhausted := len(msg.Value) < a.deps.PageSize
	if msg.Req.Slot == nav.SlotScreen {
		a.showList(nav.ListCommunities, msg.Req, items, exhausted)
		return nil
	}
	a.applyPage(msg.Req, items, exhausted)
	return nil
}

func (a *App) onInbox(msg nav.Result[[]domain.InboxItem]) tea.Cmd {
	if !a.accept(msg.Req, msg.Err) {
		return nil
	}
	items := toItems(msg.Value)
	exhausted := len(msg.Value) < a.deps.PageSize
	if msg.Req.Slot == nav.SlotScreen {
		a.showList(nav.ListInbox, msg.Req, items, exhausted)
		return nil
	}
	a.applyPage(msg.Req, items, exhausted)
	return nil
}

func (a *App) onInstances(msg nav.Result[[]domain.Instance]) tea.Cmd {
	if !a.accept(msg.Req, msg.Err) {
		return nil
	}
	a.show(nav.ChooseInstance{Instances: msg.Value}, msg.Req.Event, msg.Req.Amend)
	return nil
}

func (a *App) onCommunityPage(msg nav.Result[communityPage]) tea.Cmd {
	if !a.accept(msg.Req, msg.Err) {
		return nil
	}
	d := nav.Detail{
		Kind:      nav.DetailCommunity,
		Event:     msg.Req.Event,
		Community: msg.Value.Community,
		Selected:  -1,
		Items:     nav.MergePage(nil, toItems(msg.Value.Posts), true),
		Exhausted: len(msg.Value.Posts) < a.deps.PageSize,
	}
	d.Pager.Commit(msg.Req.Page)
	a.show(d, msg.Req.Event, msg.Req.Amend)
	return nil
}

func (a *App) onPost(msg nav.Result[domain.Post]) tea.Cmd {
	if !a.accept(msg.Req, msg.Err) {
		return nil
	}
	d := nav.Detail{
		Kind:         nav.DetailPost,
		Event:        msg.Req.Event,
		Post:         msg.Value,
		Selected:     -1,
		LoadingItems: true,
	}
	if p := a.parked; p != nil && p.event == msg.Req.Event {
		d.Items, d.LoadingItems, d.Exhausted = p.items, false, true
	}
	a.parked = nil
	a.show(d, msg.Req.Event, msg.Req.Amend)
	return nil
}

// onComments applies a post's comment tree. Comments that beat their post
// are parked until the post screen is shown.
func (a *App) onComments(msg nav.Result[[]domain.Comment]) tea.Cmd {
	if !a.accept(msg.Req, msg.Err) {
		return nil
	}
	items := toItems(domain.BuildCommentTree(msg.Value))
	if d, ok := a.screen().(nav.Detail); ok && d.Event == msg.Req.Event {
		a.withScreen(func(s nav.ViewState) nav.ViewState {
			d := s.(nav.Detail)
			d.Items = items
			d.Pager.Commit(1)
			d.LoadingItems, d.Exhausted = false, true
			d.Selected = clampSelection(d.Selected, len(d.Items), -1)
			return d
		})
		return nil
	}
	if a.tracker.Pending(nav.SlotScreen) {
		a.parked = &parkedComments{event: msg.Req.Event, items: items}
	}
	return nil
}

func (a *App) onPerson(msg nav.Result[domain.PersonDetail]) tea.Cmd {
	if !a.accept(msg.Req, msg.Err) {
		return nil
	}
	v := msg.Value
	items := v.Items()
	exhausted := len(v.Posts) < a.deps.PageSize && len(v.Comments) < a.deps.PageSize
	if msg.Req.Slot == nav.SlotItems {
		a.applyPage(msg.Req, items, exhausted)
		return nil
	}
	d := nav.Detail{
		Kind:      nav.DetailPerson,
		Event:     msg.Req.Event,
		Person:    v.Person,
		Selected:  -1,
		Items:     nav.MergePage(nil, items, true),
		Exhausted: exhausted,
	}
	d.Pager.Commit(msg.Req.Page)
	a.show(d, msg.Req.Event, msg.Req.Amend)
	return nil
}

func (a *App) onLogin(msg nav.Result[domain.Session]) tea.Cmd {
	if !a.accept(msg.Req, msg.Err) {
		return nil
	}
	sess := msg.Value
	cmd := a.changeSession("login", func(s app.SessionStore) error {
		return s.SetCredentials(sess)
	})
	if cmd == nil {
		a.show(nav.Message{Text: a.status}, nav.ShowMessage{Text: a.status}, false)
		return nil
	}
	a.status = "Logged in as " + sess.AccountName + "."
	return cmd
}

func (a *App) onOutcome(msg nav.Result[outcome]) tea.Cmd {
	if !a.accept(msg.Req, msg.Err) {
		return nil
	}
	o := msg.Value
	a.status = o.Status
	if o.Item != nil {
		a.replaceItem(o.Item)
	}
	switch {
	case o.Then != nil:
		return a.open(o.Then, false)
	case o.Reload:
		return a.refreshItems()
	}
	return nil
}

func (a *App) showList(kind nav.ListKind, req nav.Request, items []domain.Item, exhausted bool) {
	l := nav.List{Kind: kind, Event: req.Event, Exhausted: exhausted}
	l.Pager.Commit(req.Page)
	l.Items = nav.MergePage(nil, items, true)
	a.show(l, req.Event, req.Amend)
}

// applyPage merges an accepted page into the screen it was requested for,
// clearing first when the cursor says so. The screen receives the merged
// list in one assignment.
func (a *App) applyPage(req nav.Request, incoming []domain.Item, exhausted bool) {
	a.withScreen(func(s nav.ViewState) nav.ViewState {
		switch s := s.(type) {
		case nav.List:
			if s.Event != req.Event {
				return s
			}
			replace := s.Pager.Commit(req.Page) || req.Reset
			s.Items = nav.MergePage(s.Items, incoming, replace)
			s.LoadingMore, s.Exhausted = false, exhausted
			s.Selected = clampSelection(s.Selected, len(s.Items), 0)
			return s
		case nav.Detail:
			if s.Event != req.Event {
				return s
			}
			replace := s.Pager.Commit(req.Page) || req.Reset
			s.Items = nav.MergePage(s.Items, incoming, replace)
			s.LoadingItems, s.Exhausted = false, exhausted
			s.Selected = clampSelection(s.Selected, len(s.Items), -1)
			return s
		}
		return s
	})
}

func (a *App) replaceItem(it domain.Item) {
	a.withScreen(func(s nav.ViewState) nav.ViewState {
		switch s := s.(type) {
		case nav.List:
			s.Items = replaceIn(s.Items, it)
			return s
		case nav.Detail:
			s.Items = replaceIn(s.Items, it)
			switch v := it.(type) {
			case domain.Post:
				if s.Kind == nav.DetailPost && s.Post.ID == v.ID {
					s.Post = v
				}
			case domain.Community:
				if s.Kind == nav.DetailCommunity && s.Community.ID == v.ID {
					s.Community = v
				}
			}
			return s
		}
		return s
	})
}

// replaceIn returns a copy of items with it in place of the item sharing its id.
func replaceIn(items []domain.Item, it domain.Item) []domain.Item {
	out := make([]domain.Item, len(items))
	for i, old := range items {
		if old.ItemID() != it.ItemID() {
			out[i] = old
			continue
		}
		if c, ok := it.(domain.Comment); ok && c.Path == "" {
			c.Path = old.(domain.Comment).Path
			it = c
		}
		out[i] = it
	}
	return out
}

func toItems[T domain.Item](in []T) []domain.Item {
	out := make([]domain.Item, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

// clampSelection keeps sel within [floor, n).
func clampSelection(sel, n, floor int) int {
	return max(min(sel, n-1), floor)
}

// --- Paging ---

// loadMore requests the page after the last accepted one.
func (a *App) loadMore() tea.Cmd {
	switch s := a.state.(type) {
	case nav.List:
		if s.LoadingMore || s.Exhausted {
			return nil
		}
		req := a.beginItems(s.Event, s.Pager.Advance(false), false)
		s.LoadingMore = true
		a.state = s
		return a.fetchPage(req, s)
	case nav.Detail:
		if s.Kind == nav.DetailPost || s.LoadingItems || s.Exhausted {
			return nil
		}
		req := a.beginItems(s.Event, s.Pager.Advance(false), false)
		s.LoadingItems = true
		a.state = s
		return a.fetchPage(req, s)
	}
	return nil
}

// refreshItems reloads the current screen's items from page 1 in place. The
// old items stay on screen until the new page replaces them.
func (a *App) refreshItems() tea.Cmd {
	var cmd tea.Cmd
	a.withScreen(func(s nav.ViewState) nav.ViewState {
		switch s := s.(type) {
		case nav.List:
			req := a.beginItems(s.Event, s.Pager.Advance(true), true)
			s.LoadingMore = true
			cmd = a.fetchPage(req, s)
			return s
		case nav.Detail:
			req := a.beginItems(s.Event, s.Pager.Advance(true), true)
			s.LoadingItems = true
			cmd = a.fetchPage(req, s)
			return s
		}
		return s
	})
	return cmd
}

// --- Navigation ---

// back replays the screen before the current one.
func (a *App) back() tea.Cmd {
	e, ok := a.history.Back()
	if !ok {
		return nil
	}
	a.log.Debug("back", "event", e, "depth", a.history.Len())
	return a.open(e, false)
}

// abandon leaves a Loading screen by replaying the screen it was entered from.
func (a *App) abandon() tea.Cmd {
	e, ok := a.history.Top()
	if !ok {
		return nil
	}
	return a.open(e, true)
}
