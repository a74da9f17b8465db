package domain

import "strconv"

// Community groups posts on an instance.
type Community struct {
	ID          int
	Name        string
	Title       string
	Description string
	ActorID     string // Federated identity URL
	Subscribers int
	Posts       int
	Comments    int
	Subscribed  bool
}

// ItemID implements Item.
func (c Community) ItemID() string { return "community:" + strconv.Itoa(c.ID) }
