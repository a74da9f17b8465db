package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all screens.
type KeyMap struct {
	Quit        key.Binding
	ForceQuit   key.Binding
	Back        key.Binding
	Refresh     key.Binding
	Up          key.Binding
	Down        key.Binding
	Enter       key.Binding
	LoadMore    key.Binding
	ToggleHints key.Binding

	// Filters
	Listing key.Binding // tab — cycle listing type, or inbox mode
	Sort    key.Binding
	Search  key.Binding
	Unread  key.Binding // U — inbox unread-only toggle

	// Screens
	Posts       key.Binding
	Communities key.Binding
	Inbox       key.Binding
	Saved       key.Binding
	Profile     key.Binding
	Settings    key.Binding
	Login       key.Binding
	Instance    key.Binding
	Author      key.Binding // u — open the selected item's author
	Community   key.Binding // t — open the selected post's community

	// Actions
	Upvote      key.Binding
	Downvote    key.Binding
	Save        key.Binding
	NewPost     key.Binding // n — inline
	NewEditor   key.Binding // N — $EDITOR
	Reply       key.Binding // c — inline
	ReplyEditor key.Binding // C — $EDITOR
	Edit        key.Binding // e — inline
	EditEditor  key.Binding // E — $EDITOR
	Delete      key.Binding
	Report      key.Binding
	Subscribe   key.Binding
	Block       key.Binding
	MarkRead    key.Binding
	Message     key.Binding
	Open        key.Binding // o — open in browser
	Confirm     key.Binding

	// Settings
	Logout         key.Binding
	InfiniteScroll key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "load more"),
		),
		ToggleHints: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "all keys"),
		),
		Listing: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "listing"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Unread: key.NewBinding(
			key.WithKeys("U"),
			key.WithHelp("U", "unread only"),
		),
		Posts: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "posts"),
		),
		Communities: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "communities"),
		),
		Inbox: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "inbox"),
		),
		Saved: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "saved"),
		),
		Profile: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "profile"),
		),
		Settings: key.NewBinding(
			key.WithKeys("6"),
			key.WithHelp("6", "settings"),
		),
		Login: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "login"),
		),
		Instance: key.NewBinding(
			key.WithKeys("I"),
			key.WithHelp("I", "instance"),
		),
		Author: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "author"),
		),
		Community: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "community"),
		),
		Upvote: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "upvote"),
		),
		Downvote: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "downvote"),
		),
		Save: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "save"),
		),
		NewPost: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "post (inline)"),
		),
		NewEditor: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "post ($EDITOR)"),
		),
		Reply: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "reply (inline)"),
		),
		ReplyEditor: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "reply ($EDITOR)"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit (inline)"),
		),
		EditEditor: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "edit ($EDITOR)"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Report: key.NewBinding(
			key.WithKeys("!"),
			key.WithHelp("!", "report"),
		),
		Subscribe: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "subscribe"),
		),
		Block: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "block author"),
		),
		MarkRead: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "mark all read"),
		),
		Message: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "message"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		Logout: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "logout"),
		),
		InfiniteScroll: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "infinite scroll"),
		),
	}
}
