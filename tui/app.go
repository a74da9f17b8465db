package tui

import (
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/CrestNiraj12/lemmyterm/app"
	"github.com/CrestNiraj12/lemmyterm/domain"
	"github.com/CrestNiraj12/lemmyterm/infra/editor"
	"github.com/CrestNiraj12/lemmyterm/tui/common"
	"github.com/CrestNiraj12/lemmyterm/tui/form"
	"github.com/CrestNiraj12/lemmyterm/tui/nav"
	"github.com/CrestNiraj12/lemmyterm/tui/render"
)

const (
	defaultPageSize     = 20
	defaultCommentDepth = 8
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Posts       app.PostService
	Comments    app.CommentService
	Communities app.CommunityService
	Accounts    app.AccountService
	Instances   app.InstanceService
	Store       app.SessionStore
	Editor      *editor.EnvEditor
	Renderer    render.Renderer
	Logger      *log.Logger

	PageSize     int
	CommentDepth int
}

// confirmation is a destructive action waiting for y.
type confirmation struct {
	prompt string
	run    func(a *App) tea.Cmd
}

// parkedComments holds a post's comments that arrived before the post itself.
type parkedComments struct {
	event nav.Event
	items []domain.Item
}

// App is the root Bubble Tea model and the only place ViewState changes.
type App struct {
	deps Deps
	keys common.KeyMap
	log  *log.Logger

	state   nav.ViewState
	history nav.History
	tracker nav.Tracker
	form    form.Model // Widgets of the open Form or Login screen
	spinner spinner.Model

	status   string // Transient status message (e.g. "Reply sent.")
	confirm  *confirmation
	showKeys bool
	parked   *parkedComments
	retry    nav.Event // Event whose failure is on screen
	width    int
	height   int

	initCmd tea.Cmd
}

// NewApp creates the root model and enters the initial sequence: the
// instance chooser without an instance, otherwise the default list.
func NewApp(deps Deps) App {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Renderer == nil {
		deps.Renderer = render.New(nil)
	}
	if deps.PageSize <= 0 {
		deps.PageSize = defaultPageSize
	}
	if deps.CommentDepth <= 0 {
		deps.CommentDepth = defaultCommentDepth
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	a := App{
		deps:    deps,
		keys:    common.DefaultKeyMap(),
		log:     deps.Logger,
		spinner: s,
	}
	a.initCmd = a.enterInitial()
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.initCmd)
}

// Update handles one message. All state mutation happens here.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	return a, cmd
}

func (a App) View() string {
	sess := a.deps.Store.Current()
	f := render.Frame{
		Width:    a.width,
		Height:   a.height,
		Spinner:  a.spinner.View(),
		Status:   a.status,
		Account:  sess.AccountName,
		Instance: strings.TrimPrefix(sess.InstanceURL, "https://"),
		ShowKeys: a.showKeys,
	}
	if a.formActive() {
		f.Widget = a.form.View()
	}
	if a.confirm != nil {
		f.Confirm = a.confirm.prompt
	}
	return a.deps.Renderer.Render(a.state, f)
}

// State returns the current screen.
func (a App) State() nav.ViewState { return a.state }

// History returns the recorded screen events, oldest first.
func (a App) History() []nav.Event { return a.history.Events() }

func (a App) formActive() bool {
	switch a.state.(type) {
	case nav.Form, nav.Login:
		return true
	}
	return false
}

// screen returns the screen results apply to: the current one, or the one
// under an open form.
func (a App) screen() nav.ViewState {
	if f, ok := a.state.(nav.Form); ok {
		return f.Return
	}
	return a.state
}

// withScreen replaces the screen returned by screen with fn's result.
func (a *App) withScreen(fn func(nav.ViewState) nav.ViewState) {
	if f, ok := a.state.(nav.Form); ok {
		f.Return = fn(f.Return)
		a.state = f
		return
	}
	a.state = fn(a.state)
}

// show makes state current and records e, the event that reproduces it.
func (a *App) show(state nav.ViewState, e nav.Event, amend bool) {
	a.state = state
	a.confirm = nil
	if e == nil {
		return
	}
	if amend {
		a.history.Amend(e)
	} else {
		a.history.Push(e)
	}
}

func (a *App) enterInitial() tea.Cmd {
	if !a.deps.Store.Current().HasInstance() {
		return a.open(nav.OpenChooseInstance{}, false)
	}
	return a.open(nav.DefaultEvent(), false)
}

// restart forgets everything tied to the previous session and re-enters
// the initial sequence.
func (a *App) restart() tea.Cmd {
	a.history.Clear()
	a.tracker.Reset()
	a.parked = nil
	a.retry = nil
	a.confirm = nil
	return a.enterInitial()
}

// changeSession applies a session-lifecycle change to the store.
func (a *App) changeSession(what string, change func(app.SessionStore) error) tea.Cmd {
	if err := change(a.deps.Store); err != nil {
		a.log.Warn("session change failed", "change", what, "err", err)
		a.status = "Error: " + domain.Describe(err)
		return nil
	}
	sess := a.deps.Store.Current()
	a.log.Info("session changed", "change", what, "instance", sess.InstanceURL, "account", sess.AccountName)
	return a.restart()
}

func (a *App) requireLogin() bool {
	if a.deps.Store.Current().LoggedIn() {
		return true
	}
	a.status = domain.Describe(domain.ErrNotLoggedIn)
	return false
}

func (a *App) requireInstance() bool {
	if a.deps.Store.Current().HasInstance() {
		return true
	}
	a.status = "Choose an instance first."
	return false
}

func (a App) infiniteScroll() bool {
	return a.deps.Store.Preferences().InfiniteScroll
}
