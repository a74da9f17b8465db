package nav

import "github.com/CrestNiraj12/lemmyterm/domain"

// Event is a screen-producing navigation event. Every implementation is a
// comparable value type, so two events are equal when their contents are.
type Event interface {
	isEvent()
}

// OpenPosts shows the front page listing.
type OpenPosts struct {
	Listing domain.ListingType
	Sort    domain.SortType
}

// OpenCommunities shows the community directory, or search results when Query is set.
type OpenCommunities struct {
	Listing domain.ListingType
	Query   string
}

// OpenCommunity shows a community and its posts.
type OpenCommunity struct {
	ID   int
	Sort domain.SortType
}

// OpenPost shows a post and its comment tree.
type OpenPost struct {
	ID int
}

// OpenPerson shows a profile. SavedOnly lists the user's saved items instead.
type OpenPerson struct {
	ID        int
	SavedOnly bool
}

// OpenInbox shows replies, mentions or private messages.
type OpenInbox struct {
	Mode       domain.InboxMode
	UnreadOnly bool
}

// OpenChooseInstance lists instances to pick from.
type OpenChooseInstance struct{}

// ShowLogin shows the login form.
type ShowLogin struct{}

// ShowSettings shows accounts and preferences.
type ShowSettings struct{}

// ShowMessage shows a message, usually a failure description.
type ShowMessage struct {
	Text string
}

func (OpenPosts) isEvent()          {}
func (OpenCommunities) isEvent()    {}
func (OpenCommunity) isEvent()      {}
func (OpenPost) isEvent()           {}
func (OpenPerson) isEvent()         {}
func (OpenInbox) isEvent()          {}
func (OpenChooseInstance) isEvent() {}
func (ShowLogin) isEvent()          {}
func (ShowSettings) isEvent()       {}
func (ShowMessage) isEvent()        {}

// Instant reports whether e produces its screen without any I/O.
func Instant(e Event) bool {
	switch e.(type) {
	case ShowLogin, ShowSettings, ShowMessage:
		return true
	default:
		return false
	}
}

// DefaultEvent is the list shown once an instance is configured.
func DefaultEvent() Event {
	return OpenPosts{Listing: domain.ListingLocal, Sort: domain.SortHot}
}
