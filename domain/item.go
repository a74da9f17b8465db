package domain

// Item is anything shown as a row of a paginated list.
type Item interface {
	// ItemID is unique across all item kinds.
	ItemID() string
}
