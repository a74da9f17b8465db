package domain

// ListingType restricts which communities a post listing draws from.
type ListingType int

const (
	ListingLocal ListingType = iota
	ListingAll
	ListingSubscribed
)

// String returns the Lemmy API value.
func (l ListingType) String() string {
	switch l {
	case ListingAll:
		return "All"
	case ListingSubscribed:
		return "Subscribed"
	default:
		return "Local"
	}
}

// Next cycles Local → All → Subscribed.
func (l ListingType) Next() ListingType {
	return (l + 1) % 3
}

// SortType orders a post listing.
type SortType int

const (
	SortHot SortType = iota
	SortActive
	SortNew
	SortTopDay
	SortTopWeek
)

// String returns the Lemmy API value.
func (s SortType) String() string {
	switch s {
	case SortActive:
		return "Active"
	case SortNew:
		return "New"
	case SortTopDay:
		return "TopDay"
	case SortTopWeek:
		return "TopWeek"
	default:
		return "Hot"
	}
}

// Next cycles through the supported sorts.
func (s SortType) Next() SortType {
	return (s + 1) % 5
}
