package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/lemmyterm/tui/common"
	"github.com/CrestNiraj12/lemmyterm/tui/nav"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	cardLines     = 4 // Two content lines plus the border
)

// Frame is everything outside the ViewState that a render needs.
type Frame struct {
	Width    int
	Height   int
	Spinner  string // Current spinner frame
	Status   string // Transient status line
	Widget   string // View of the active form, for form and login screens
	Account  string // e.g. "alice@lemmy.ml", or "" when logged out
	Instance string
	Confirm  string // Pending confirmation prompt
	ShowKeys bool
	Now      time.Time
}

// Renderer turns the current ViewState into the terminal frame.
type Renderer interface {
	Render(state nav.ViewState, f Frame) string
}

// Terminal is the lipgloss Renderer.
type Terminal struct {
	md Markdown
}

// New creates a Terminal renderer. A nil md renders bodies as plain text.
func New(md Markdown) *Terminal {
	if md == nil {
		md = Plain{}
	}
	return &Terminal{md: md}
}

func (t *Terminal) Render(state nav.ViewState, f Frame) string {
	if f.Width <= 0 {
		f.Width = defaultWidth
	}
	if f.Height <= 0 {
		f.Height = defaultHeight
	}
	if f.Now.IsZero() {
		f.Now = time.Now()
	}

	header := t.header(state, f)
	footer := t.footer(state, f)
	bodyHeight := max(f.Height-lipgloss.Height(header)-lipgloss.Height(footer), cardLines)

	var body string
	switch s := state.(type) {
	case nav.Loading:
		label := s.Label
		if label == "" {
			label = "Loading..."
		}
		body = "\n " + f.Spinner + " " + label
	case nav.List:
		body = t.list(s, f, bodyHeight)
	case nav.Detail:
		body = t.detail(s, f, bodyHeight)
	case nav.Form, nav.Login:
		body = f.Widget
	case nav.Message:
		body = t.message(s, f)
	case nav.Settings:
		body = t.settings(s, f)
	case nav.ChooseInstance:
		body = t.instances(s, f, bodyHeight)
	default:
		body = ""
	}
	return header + "\n" + body + "\n" + footer
}

func (t *Terminal) header(state nav.ViewState, f Frame) string {
	title := common.AppTitleStyle.Render("lemmyterm")
	who := "not logged in"
	if f.Account != "" {
		who = f.Account
	}
	if f.Instance != "" {
		who += " • " + f.Instance
	}
	line := title + common.TaglineStyle.Render(who)

	var active int
	switch s := state.(type) {
	case nav.List:
		switch s.Kind {
		case nav.ListCommunities:
			active = 1
		case nav.ListInbox:
			active = 2
		}
		return line + "\n" + tabs(active) + "  " + common.TimestampStyle.Render(filterLabel(s.Event))
	case nav.Detail:
		return line + "\n" + tabs(-1)
	}
	return line
}

func tabs(active int) string {
	names := []string{"1 Posts", "2 Communities", "3 Inbox"}
	parts := make([]string, len(names))
	for i, n := range names {
		if i == active {
			parts[i] = common.TabActiveStyle.Render(n)
		} else {
			parts[i] = common.TabInactiveStyle.Render(n)
		}
	}
	return " " + strings.Join(parts, "")
}

func filterLabel(e nav.Event) string {
	switch e := e.(type) {
	case nav.OpenPosts:
		return e.Listing.String() + " • " + e.Sort.String()
	case nav.OpenCommunities:
		if e.Query != "" {
			return fmt.Sprintf("search %q", e.Query)
		}
		return e.Listing.String()
	case nav.OpenInbox:
		if e.UnreadOnly {
			return e.Mode.String() + " • unread"
		}
		return e.Mode.String() + " • all"
	}
	return ""
}

func (t *Terminal) footer(state nav.ViewState, f Frame) string {
	var lines []string
	switch s := state.(type) {
	case nav.List:
		if notice := pagingNotice(s.LoadingMore, s.Exhausted, s.Pager.Page(), len(s.Items), f.Spinner); notice != "" {
			lines = append(lines, notice)
		}
	case nav.Detail:
		if notice := pagingNotice(s.LoadingItems, s.Exhausted, s.Pager.Page(), len(s.Items), f.Spinner); notice != "" {
			lines = append(lines, notice)
		}
	}
	if f.Confirm != "" {
		lines = append(lines, common.ConfirmStyle.Render(f.Confirm+" (y/n)"))
	}
	if f.Status != "" {
		lines = append(lines, common.StatusBarStyle.Render(f.Status))
	}
	items := hints(state)
	if f.ShowKeys {
		items = allKeys(state)
		return strings.Join(lines, "\n") + "\n" + common.StatusBarStyle.Width(max(f.Width-2, 16)).Render(strings.Join(items, "\n"))
	}
	lines = append(lines, common.StatusBarStyle.Width(max(f.Width-2, 16)).Render("  "+strings.Join(items, " • ")))
	return strings.Join(lines, "\n")
}

func pagingNotice(loading, exhausted bool, page, n int, spinner string) string {
	switch {
	case loading && page > 0 && n > 0:
		return fmt.Sprintf(" %s Loading page %d...", spinner, page+1)
	case loading:
		return " " + spinner + " Loading..."
	case exhausted && n > 0:
		return common.TimestampStyle.Render("  🚀 End of the fediverse reached.")
	case exhausted:
		return common.TimestampStyle.Render("  Nothing here yet.")
	}
	return ""
}

func (t *Terminal) message(s nav.Message, f Frame) string {
	text := common.ErrorStyle.Width(max(f.Width-4, 16)).Render(common.SanitizeForTerminal(s.Text))
	return "\n  " + strings.ReplaceAll(text, "\n", "\n  ")
}

func (t *Terminal) list(s nav.List, f Frame, height int) string {
	if len(s.Items) == 0 {
		if s.LoadingMore {
			return ""
		}
		return common.TimestampStyle.Render("\n  Nothing to show.")
	}
	width := f.Width
	start, end := window(len(s.Items), s.Selected, max(height/cardLines, 1))
	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(card(t.item(s.Items[i], width-4, f.Now), width, i == s.Selected))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (t *Terminal) detail(s nav.Detail, f Frame, height int) string {
	width := f.Width
	var b strings.Builder
	if s.Selected < 0 {
		head := t.detailHeader(s, width-4, f.Now, true)
		b.WriteString(card(clipLines(head, max(height-cardLines-2, 3)), width, true))
		b.WriteString("\n")
		height -= lipgloss.Height(head) + 2
		for i := 0; i < len(s.Items) && height >= cardLines; i++ {
			text := t.item(s.Items[i], width-4, f.Now)
			b.WriteString(card(text, width, false))
			b.WriteString("\n")
			height -= lipgloss.Height(text) + 2
		}
		return strings.TrimRight(b.String(), "\n")
	}

	b.WriteString(" " + t.detailHeader(s, width-4, f.Now, false) + "\n")
	height--
	start, end := window(len(s.Items), s.Selected, max(height/(cardLines+1), 1))
	for i := start; i < end; i++ {
		b.WriteString(card(t.item(s.Items[i], width-4, f.Now), width, i == s.Selected))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (t *Terminal) settings(s nav.Settings, f Frame) string {
	var b strings.Builder
	b.WriteString(common.TitleStyle.Render("\n  Accounts"))
	b.WriteString("\n\n")
	for i, acct := range s.Prefs.Accounts {
		marker := "  "
		if i == s.Selected {
			marker = "▸ "
		}
		active := " "
		if i == s.Prefs.CurrentIndex {
			active = "*"
		}
		name := "anonymous"
		if acct.LoggedIn() {
			name = acct.AccountName
		}
		instance := acct.InstanceURL
		if instance == "" {
			instance = "no instance"
		}
		line := fmt.Sprintf("%s[%s] %s @ %s", marker, active, name, instance)
		if i == s.Selected {
			line = common.TabActiveStyle.Render(line)
		} else {
			line = common.ContentStyle.Render("  " + line)
		}
		b.WriteString(line + "\n")
	}
	scroll := "off"
	if s.Prefs.InfiniteScroll {
		scroll = "on"
	}
	b.WriteString("\n  " + common.TimestampStyle.Render("Infinite scroll: "+scroll))
	return b.String()
}

func (t *Terminal) instances(s nav.ChooseInstance, f Frame, height int) string {
	var b strings.Builder
	b.WriteString(common.TitleStyle.Render("\n  Choose an instance"))
	b.WriteString("\n\n")
	if s.Fetching {
		b.WriteString("  " + f.Spinner + " Fetching instances...")
		return b.String()
	}
	if len(s.Instances) == 0 {
		b.WriteString(common.TimestampStyle.Render("  No instances listed. Press / to enter a URL."))
		return b.String()
	}
	start, end := window(len(s.Instances), s.Selected, max(height-4, 1))
	for i := start; i < end; i++ {
		line := s.Instances[i].Domain
		if i == s.Selected {
			b.WriteString(common.TabActiveStyle.Render("▸ "+line) + "\n")
		} else {
			b.WriteString(common.ContentStyle.Render("    "+line) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// window returns the visible range [start, end) of n rows keeping selected in view.
func window(n, selected, capacity int) (int, int) {
	if n <= capacity {
		return 0, n
	}
	selected = min(max(selected, 0), n-1)
	start := max(selected-capacity/2, 0)
	end := start + capacity
	if end > n {
		end = n
		start = n - capacity
	}
	return start, end
}

func card(text string, width int, selected bool) string {
	style := common.UnselectedStyle
	if selected {
		style = common.SelectedStyle
	}
	return style.Width(max(width-2, 16)).Render(text)
}

func clipLines(text string, maxLines int) string {
	if maxLines < 1 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) <= maxLines {
		return text
	}
	return strings.Join(lines[:maxLines], "\n") + "\n…"
}

func clampLinesToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		if ansi.StringWidth(ln) > width {
			lines[i] = ansi.Truncate(ln, width, "…")
		}
	}
	return strings.Join(lines, "\n")
}

// score renders a score colored by the user's own vote.
func score(n, myVote int) string {
	s := fmt.Sprintf("▲ %d", n)
	switch {
	case myVote > 0:
		return common.UpvotedStyle.Render(s)
	case myVote < 0:
		return common.DownvotedStyle.Render(fmt.Sprintf("▼ %d", n))
	}
	return common.TimestampStyle.Render(s)
}

func savedBadge(saved bool) string {
	if !saved {
		return ""
	}
	return common.SuccessStyle.Render(" ★")
}

var _ Renderer = (*Terminal)(nil)
