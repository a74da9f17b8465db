package tui

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/lemmyterm/app"
	"github.com/CrestNiraj12/lemmyterm/domain"
	"github.com/CrestNiraj12/lemmyterm/tui/nav"
)

// fakeLemmy implements every service the TUI consumes.
type fakeLemmy struct {
	posts       func(q app.PostQuery) ([]domain.Post, error)
	communities func(q app.CommunityQuery) ([]domain.Community, error)
	comments    []domain.Comment
	inbox       []domain.InboxItem
	instances   []domain.Instance
	loginErr    error

	postQueries []app.PostQuery
	replies     []string
}

func pagedPosts(q app.PostQuery) ([]domain.Post, error) {
	base := int(q.Listing)*1000 + q.Page*10
	return []domain.Post{
		{ID: base + 1, Name: fmt.Sprintf("post %d", base+1), CommunityID: 7, CommunityName: "golang", CreatorID: 99},
		{ID: base + 2, Name: fmt.Sprintf("post %d", base+2), CommunityID: 7, CommunityName: "golang", CreatorID: 99},
	}, nil
}

func (f *fakeLemmy) ListPosts(_ context.Context, _ domain.Session, q app.PostQuery) ([]domain.Post, error) {
	f.postQueries = append(f.postQueries, q)
	if f.posts == nil {
		return pagedPosts(q)
	}
	return f.posts(q)
}
func (f *fakeLemmy) GetPost(_ context.Context, _ domain.Session, id int) (domain.Post, error) {
	return domain.Post{ID: id, Name: fmt.Sprintf("post %d", id)}, nil
}
func (f *fakeLemmy) ListComments(context.Context, domain.Session, int, int) ([]domain.Comment, error) {
	return f.comments, nil
}
func (f *fakeLemmy) CreatePost(_ context.Context, _ domain.Session, d domain.PostDraft) (domain.Post, error) {
	return domain.Post{ID: 500, Name: d.Name, CommunityID: d.CommunityID}, nil
}
func (f *fakeLemmy) EditPost(_ context.Context, _ domain.Session, id int, d domain.PostDraft) (domain.Post, error) {
	return domain.Post{ID: id, Name: d.Name}, nil
}
func (f *fakeLemmy) DeletePost(_ context.Context, _ domain.Session, id int) (domain.Post, error) {
	return domain.Post{ID: id, Deleted: true}, nil
}
func (f *fakeLemmy) VotePost(_ context.Context, _ domain.Session, id, score int) (domain.Post, error) {
	return domain.Post{ID: id, Name: fmt.Sprintf("post %d", id), Score: score, MyVote: score}, nil
}
func (f *fakeLemmy) SavePost(_ context.Context, _ domain.Session, id int, save bool) (domain.Post, error) {
	return domain.Post{ID: id, Saved: save}, nil
}
func (f *fakeLemmy) ReportPost(context.Context, domain.Session, int, string) error { return nil }

func (f *fakeLemmy) CreateComment(_ context.Context, _ domain.Session, postID, parentID int, content string) (domain.Comment, error) {
	f.replies = append(f.replies, fmt.Sprintf("%d/%d: %s", postID, parentID, content))
	return domain.Comment{ID: 900, PostID: postID, Content: content}, nil
}
func (f *fakeLemmy) EditComment(_ context.Context, _ domain.Session, id int, content string) (domain.Comment, error) {
	return domain.Comment{ID: id, Content: content}, nil
}
func (f *fakeLemmy) DeleteComment(_ context.Context, _ domain.Session, id int) (domain.Comment, error) {
	return domain.Comment{ID: id, Deleted: true}, nil
}
func (f *fakeLemmy) VoteComment(_ context.Context, _ domain.Session, id, score int) (domain.Comment, error) {
	return domain.Comment{ID: id, MyVote: score}, nil
}
func (f *fakeLemmy) SaveComment(_ context.Context, _ domain.Session, id int, save bool) (domain.Comment, error) {
	return domain.Comment{ID: id, Saved: save}, nil
}
func (f *fakeLemmy) ReportComment(context.Context, domain.Session, int, string) error { return nil }

func (f *fakeLemmy) ListCommunities(_ context.Context, _ domain.Session, q app.CommunityQuery) ([]domain.Community, error) {
	if f.communities == nil {
		return []domain.Community{{ID: 7, Name: "golang"}, {ID: 8, Name: "rust"}}, nil
	}
	return f.communities(q)
}
func (f *fakeLemmy) GetCommunity(_ context.Context, _ domain.Session, id int) (domain.Community, error) {
	return domain.Community{ID: id, Name: "golang"}, nil
}
func (f *fakeLemmy) Subscribe(_ context.Context, _ domain.Session, id int, follow bool) (domain.Community, error) {
	return domain.Community{ID: id, Name: "golang", Subscribed: follow}, nil
}

func (f *fakeLemmy) Login(_ context.Context, instanceURL, username, _, _ string) (domain.Session, error) {
	if f.loginErr != nil {
		return domain.Session{}, f.loginErr
	}
	return domain.Session{InstanceURL: instanceURL, JWT: "jwt", AccountID: 42, AccountName: username}, nil
}
func (f *fakeLemmy) PersonDetails(_ context.Context, _ domain.Session, id, _, _ int, _ bool) (domain.PersonDetail, error) {
	return domain.PersonDetail{Person: domain.Person{ID: id, Name: "alice"}}, nil
}
func (f *fakeLemmy) Inbox(context.Context, domain.Session, domain.InboxMode, int, int, bool) ([]domain.InboxItem, error) {
	return f.inbox, nil
}
func (f *fakeLemmy) SendMessage(context.Context, domain.Session, int, string) error { return nil }
func (f *fakeLemmy) MarkAllRead(context.Context, domain.Session) error             { return nil }
func (f *fakeLemmy) BlockPerson(context.Context, domain.Session, int, bool) error  { return nil }

func (f *fakeLemmy) ListInstances(context.Context) ([]domain.Instance, error) {
	return f.instances, nil
}

// memStore is an in-memory app.SessionStore.
type memStore struct {
	prefs domain.Preferences
}

func newMemStore(s domain.Session) *memStore {
	return &memStore{prefs: domain.Preferences{Accounts: []domain.Session{s}}}
}

func (m *memStore) Current() domain.Session         { return m.prefs.Current() }
func (m *memStore) Preferences() domain.Preferences { return m.prefs.Clone() }
func (m *memStore) SetInstance(u string) error {
	m.prefs.Accounts[m.prefs.CurrentIndex] = domain.Session{InstanceURL: domain.NormalizeInstanceURL(u)}
	return nil
}
func (m *memStore) SetCredentials(s domain.Session) error {
	m.prefs.Accounts[m.prefs.CurrentIndex] = s
	return nil
}
func (m *memStore) Logout() error {
	m.prefs.Accounts[m.prefs.CurrentIndex] = m.prefs.Current().LoggedOut()
	return nil
}
func (m *memStore) Switch(i int) error {
	if i < 0 || i >= len(m.prefs.Accounts) {
		return domain.ErrNoSuchAccount
	}
	m.prefs.CurrentIndex = i
	return nil
}
func (m *memStore) Create() error {
	m.prefs.Accounts = append(m.prefs.Accounts, domain.Session{})
	return nil
}
func (m *memStore) Remove(i int) error {
	if i == m.prefs.CurrentIndex {
		return domain.ErrRemoveCurrent
	}
	m.prefs.Accounts = append(m.prefs.Accounts[:i], m.prefs.Accounts[i+1:]...)
	if i < m.prefs.CurrentIndex {
		m.prefs.CurrentIndex--
	}
	return nil
}
func (m *memStore) SetInfiniteScroll(on bool) error {
	m.prefs.InfiniteScroll = on
	return nil
}

var (
	anonymous = domain.Session{InstanceURL: "https://lemmy.test"}
	loggedIn  = domain.Session{InstanceURL: "https://lemmy.test", JWT: "jwt", AccountID: 42, AccountName: "me"}
)

func newTestApp(sess domain.Session, fake *fakeLemmy) (App, *memStore) {
	store := newMemStore(sess)
	a := NewApp(Deps{
		Posts:       fake,
		Comments:    fake,
		Communities: fake,
		Accounts:    fake,
		Instances:   fake,
		Store:       store,
		PageSize:    2,
	})
	return a, store
}

// started returns an app that has shown the default list.
func started(t *testing.T, sess domain.Session, fake *fakeLemmy) (App, *memStore) {
	t.Helper()
	a, store := newTestApp(sess, fake)
	a = settle(t, a, a.initCmd)
	if _, ok := a.State().(nav.List); !ok {
		t.Fatalf("expected the default list, got %T", a.State())
	}
	return a, store
}

func step(a App, msg tea.Msg) (App, tea.Cmd) {
	m, cmd := a.Update(msg)
	return m.(App), cmd
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(a App, k string) (App, tea.Cmd) {
	return step(a, keyMsg(k))
}

// results runs cmd, expanding batches, and returns the worker results it
// produced. Widget messages such as cursor blinks are discarded.
func results(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, results(c)...)
		}
		return out
	}
	if !isResult(msg) {
		return nil
	}
	return []tea.Msg{msg}
}

func isResult(msg tea.Msg) bool {
	switch msg.(type) {
	case nav.Result[[]domain.Post], nav.Result[[]domain.Community], nav.Result[[]domain.InboxItem],
		nav.Result[[]domain.Instance], nav.Result[communityPage], nav.Result[domain.Post],
		nav.Result[[]domain.Comment], nav.Result[domain.PersonDetail], nav.Result[domain.Session],
		nav.Result[outcome]:
		return true
	}
	return false
}

// settle feeds every result cmd produces back into the app until no work is left.
func settle(t *testing.T, a App, cmd tea.Cmd) App {
	t.Helper()
	pending := []tea.Cmd{cmd}
	for round := 0; len(pending) > 0; round++ {
		if round > 10 {
			t.Fatalf("app did not settle")
		}
		var next []tea.Cmd
		for _, c := range pending {
			for _, msg := range results(c) {
				var more tea.Cmd
				a, more = step(a, msg)
				if more != nil {
					next = append(next, more)
				}
			}
		}
		pending = next
	}
	return a
}

// pressed presses k and settles the work it started.
func pressed(t *testing.T, a App, k string) App {
	t.Helper()
	a, cmd := press(a, k)
	return settle(t, a, cmd)
}

// stepped delivers msg and settles the work it started.
func stepped(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	a, cmd := step(a, msg)
	return settle(t, a, cmd)
}

// splitPost separates the two results of opening a post.
func splitPost(t *testing.T, msgs []tea.Msg) (post, comments tea.Msg) {
	t.Helper()
	for _, m := range msgs {
		switch m.(type) {
		case nav.Result[domain.Post]:
			post = m
		case nav.Result[[]domain.Comment]:
			comments = m
		}
	}
	if post == nil || comments == nil {
		t.Fatalf("expected post and comments requests, got %d results", len(msgs))
	}
	return post, comments
}

func postIDs(items []domain.Item) []int {
	var ids []int
	for _, it := range items {
		switch v := it.(type) {
		case domain.Post:
			ids = append(ids, v.ID)
		case domain.Comment:
			ids = append(ids, v.ID)
		}
	}
	return ids
}
