package nav

import "github.com/CrestNiraj12/lemmyterm/domain"

// Screen identifies a ViewState variant.
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenList
	ScreenDetail
	ScreenForm
	ScreenMessage
	ScreenSettings
	ScreenChooseInstance
	ScreenLogin
)

func (s Screen) String() string {
	switch s {
	case ScreenList:
		return "list"
	case ScreenDetail:
		return "detail"
	case ScreenForm:
		return "form"
	case ScreenMessage:
		return "message"
	case ScreenSettings:
		return "settings"
	case ScreenChooseInstance:
		return "choose-instance"
	case ScreenLogin:
		return "login"
	default:
		return "loading"
	}
}

// ViewState is the current screen. Exactly one is current at a time, and it
// is only ever replaced by the controller.
type ViewState interface {
	Screen() Screen
}

// Loading is shown while a screen request is in flight.
type Loading struct {
	Label string
}

// ListKind says what a List holds.
type ListKind int

const (
	ListPosts ListKind = iota
	ListCommunities
	ListInbox
)

// List is a paginated list screen. Event holds its filter.
type List struct {
	Kind        ListKind
	Event       Event
	Items       []domain.Item
	Selected    int
	Pager       Cursor
	LoadingMore bool
	Exhausted   bool
}

// DetailKind says what a Detail shows.
type DetailKind int

const (
	DetailPost DetailKind = iota
	DetailCommunity
	DetailPerson
)

// Detail is a single entity with a list of items under it: a post and its
// comment tree, a community and its posts, or a person and their posts and
// comments. Selected is -1 while the entity itself is selected.
type Detail struct {
	Kind         DetailKind
	Event        Event
	Post         domain.Post
	Community    domain.Community
	Person       domain.Person
	Items        []domain.Item
	Selected     int
	Pager        Cursor
	LoadingItems bool
	Exhausted    bool
}

// FormKind says what a Form submits.
type FormKind int

const (
	FormNewPost FormKind = iota
	FormEditPost
	FormReply
	FormEditComment
	FormReport
	FormSearch
	FormMessage
	FormInstance
)

// Target identifies what a form applies to. Unused ids are zero.
type Target struct {
	PostID      int
	CommentID   int
	CommunityID int
	PersonID    int
}

// Form is a draft in progress. The widgets holding the draft live with the
// controller. Return is restored when the form is cancelled or submitted.
type Form struct {
	Kind   FormKind
	Target Target
	Title  string
	Return ViewState
}

// Message shows text, usually a failure description.
type Message struct {
	Text string
}

// Settings lists stored accounts and preferences.
type Settings struct {
	Prefs    domain.Preferences
	Selected int
}

// ChooseInstance lists known instances. Fetching is set while the list is
// still being retrieved.
type ChooseInstance struct {
	Instances []domain.Instance
	Selected  int
	Fetching  bool
}

// Login is the login form for Instance.
type Login struct {
	Instance string
}

func (Loading) Screen() Screen        { return ScreenLoading }
func (List) Screen() Screen           { return ScreenList }
func (Detail) Screen() Screen         { return ScreenDetail }
func (Form) Screen() Screen           { return ScreenForm }
func (Message) Screen() Screen        { return ScreenMessage }
func (Settings) Screen() Screen       { return ScreenSettings }
func (ChooseInstance) Screen() Screen { return ScreenChooseInstance }
func (Login) Screen() Screen          { return ScreenLogin }
