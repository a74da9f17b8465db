package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/lemmyterm/domain"
	"github.com/CrestNiraj12/lemmyterm/tui/common"
	"github.com/CrestNiraj12/lemmyterm/tui/nav"
)

const (
	commentIndent   = 2
	maxCommentLines = 6
	maxBodyLines    = 12
)

func (t *Terminal) item(it domain.Item, width int, now time.Time) string {
	switch v := it.(type) {
	case domain.Post:
		return postLine(v, width, now)
	case domain.Comment:
		return t.comment(v, width, now)
	case domain.Community:
		return communityLine(v, width)
	case domain.InboxItem:
		return inboxLine(v, width, now)
	case domain.Instance:
		return v.Domain
	}
	return it.ItemID()
}

func postLine(p domain.Post, width int, now time.Time) string {
	title := common.TitleStyle.Render(common.SanitizeForTerminal(p.Name))
	if p.Deleted {
		title = common.TimestampStyle.Render("[deleted] ") + title
	}
	top := score(p.Score, p.MyVote) + "  " + title + savedBadge(p.Saved)
	meta := fmt.Sprintf("%s • %s • %s • %s",
		common.CommunityStyle.Render("c/"+common.SanitizeForTerminal(p.CommunityName)),
		common.AuthorStyle.Render(common.SanitizeForTerminal(p.CreatorName)),
		common.TimestampStyle.Render(common.RelativeTime(p.Published, now)),
		common.TimestampStyle.Render(common.Plural(p.Comments, "comment")),
	)
	return clampLinesToWidth(top+"\n"+meta, width)
}

func (t *Terminal) comment(c domain.Comment, width int, now time.Time) string {
	indent := c.Depth() * commentIndent
	bodyWidth := max(width-indent, 20)
	meta := fmt.Sprintf("%s • %s • %s%s",
		common.AuthorStyle.Render(common.SanitizeForTerminal(c.CreatorName)),
		common.TimestampStyle.Render(common.RelativeTime(c.Published, now)),
		score(c.Score, c.MyVote),
		savedBadge(c.Saved),
	)
	if c.PostName != "" && c.Depth() == 0 {
		meta += common.TimestampStyle.Render(" • on " + common.SanitizeForTerminal(c.PostName))
	}
	body := clipLines(t.md.Render(c.Content, bodyWidth), maxCommentLines)
	text := clampLinesToWidth(meta+"\n"+body, bodyWidth)
	if indent == 0 {
		return text
	}
	return lipgloss.NewStyle().
		PaddingLeft(indent).
		Render(text)
}

func communityLine(c domain.Community, width int) string {
	top := common.CommunityStyle.Render("c/"+common.SanitizeForTerminal(c.Name)) + "  " +
		common.TitleStyle.Render(common.SanitizeForTerminal(c.Title))
	if c.Subscribed {
		top += common.SuccessStyle.Render("  ✓ subscribed")
	}
	meta := common.TimestampStyle.Render(fmt.Sprintf("%s • %s",
		common.Plural(c.Subscribers, "subscriber"), common.Plural(c.Posts, "post")))
	return clampLinesToWidth(top+"\n"+meta, width)
}

func inboxLine(i domain.InboxItem, width int, now time.Time) string {
	kind := map[domain.InboxMode]string{
		domain.InboxReplies:  "reply",
		domain.InboxMentions: "mention",
		domain.InboxMessages: "message",
	}[i.Mode]
	top := common.AuthorStyle.Render(common.SanitizeForTerminal(i.CreatorName)) + " " +
		common.TimestampStyle.Render(kind)
	if i.PostName != "" {
		top += common.TimestampStyle.Render(" on ") + common.TitleStyle.Render(common.SanitizeForTerminal(i.PostName))
	}
	top += common.TimestampStyle.Render(" • " + common.RelativeTime(i.Published, now))
	if !i.Read {
		top += common.ConfirmStyle.Render("unread")
	}
	body := strings.Join(strings.Fields(common.SanitizeForTerminal(i.Content)), " ")
	return clampLinesToWidth(top+"\n"+common.ContentStyle.Render(body), width)
}

func (t *Terminal) detailHeader(s nav.Detail, width int, now time.Time, full bool) string {
	switch s.Kind {
	case nav.DetailPost:
		p := s.Post
		head := postLine(p, width, now)
		if !full {
			return clampLinesToWidth(common.TitleStyle.Render(common.SanitizeForTerminal(p.Name)), width)
		}
		if p.URL != "" {
			head += "\n" + common.TimestampStyle.Render(common.SanitizeForTerminal(p.URL))
		}
		if body := t.md.Render(p.Body, width); body != "" {
			head += "\n\n" + clipLines(body, maxBodyLines)
		}
		return head

	case nav.DetailCommunity:
		c := s.Community
		head := communityLine(c, width)
		if !full {
			return clampLinesToWidth(common.CommunityStyle.Render("c/"+common.SanitizeForTerminal(c.Name)), width)
		}
		if desc := t.md.Render(c.Description, width); desc != "" {
			head += "\n\n" + clipLines(desc, maxBodyLines/2)
		}
		return head

	default:
		p := s.Person
		name := common.AuthorStyle.Render(common.SanitizeForTerminal(p.Label()))
		if p.DisplayName != "" && p.DisplayName != p.Name {
			name += common.TimestampStyle.Render(" @" + common.SanitizeForTerminal(p.Name))
		}
		if s.Event == (nav.OpenPerson{ID: p.ID, SavedOnly: true}) {
			name += common.SuccessStyle.Render("  saved")
		}
		if !full {
			return clampLinesToWidth(name, width)
		}
		head := name + "\n" + common.TimestampStyle.Render(fmt.Sprintf("%s • %s",
			common.Plural(p.PostCount, "post"), common.Plural(p.CommentCount, "comment")))
		if bio := t.md.Render(p.Bio, width); bio != "" {
			head += "\n\n" + clipLines(bio, maxBodyLines/2)
		}
		return head
	}
}

func hints(state nav.ViewState) []string {
	switch s := state.(type) {
	case nav.List:
		switch s.Kind {
		case nav.ListPosts:
			return []string{"j/k: move", "enter: open", "tab: listing", "s: sort", "+/-: vote", "m: more", "esc: back", "?: all keys"}
		case nav.ListCommunities:
			return []string{"j/k: move", "enter: open", "/: search", "f: subscribe", "tab: listing", "esc: back", "?: all keys"}
		default:
			return []string{"j/k: move", "enter: open", "tab: mode", "U: unread", "M: mark read", "esc: back", "?: all keys"}
		}
	case nav.Detail:
		switch s.Kind {
		case nav.DetailPost:
			return []string{"j/k: move", "c/C: reply", "+/-: vote", "S: save", "u: author", "o: open", "esc: back", "?: all keys"}
		case nav.DetailCommunity:
			return []string{"j/k: move", "enter: open", "f: subscribe", "n/N: post", "esc: back", "?: all keys"}
		default:
			return []string{"j/k: move", "enter: open", "w: message", "B: block", "esc: back", "?: all keys"}
		}
	case nav.Message:
		return []string{"esc: back", "r: retry", "q: quit"}
	case nav.Settings:
		return []string{"j/k: move", "enter: switch", "n: new account", "d: remove", "X: logout", "i: infinite scroll", "I: instance", "L: login", "esc: back"}
	case nav.ChooseInstance:
		return []string{"j/k: move", "enter: choose", "/: custom URL", "r: refresh", "q: quit"}
	case nav.Loading:
		return []string{"esc: back", "q: quit"}
	}
	return nil
}

func allKeys(state nav.ViewState) []string {
	core := []string{
		"j / k           move",
		"enter           open selected",
		"esc             back",
		"r               refresh",
		"m               load more",
		"1 / 2 / 3       posts / communities / inbox",
		"4 / 5 / 6       saved / profile / settings",
		"L / I           login / choose instance",
	}
	switch s := state.(type) {
	case nav.List:
		switch s.Kind {
		case nav.ListPosts:
			core = append(core, "tab / s         listing / sort", "+ / -           vote", "S               save", "u / t           author / community", "o               open link", "n / N           new post inline / $EDITOR")
		case nav.ListCommunities:
			core = append(core, "tab             listing", "/               search", "f               subscribe")
		case nav.ListInbox:
			core = append(core, "tab             replies / mentions / messages", "U               unread only", "M               mark all read", "c / C           reply inline / $EDITOR")
		}
	case nav.Detail:
		core = append(core,
			"+ / -           vote",
			"S               save",
			"c / C           reply inline / $EDITOR",
			"e / E           edit own inline / $EDITOR",
			"d               delete own",
			"!               report",
			"u               open author",
			"t               open community",
			"f               subscribe",
			"B               block author",
			"w               message author",
			"o               open link",
		)
	}
	return append(core, "?               hide keys", "q               quit")
}
