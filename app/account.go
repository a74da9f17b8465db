package app

import (
	"context"

	"github.com/CrestNiraj12/lemmyterm/domain"
)

// AccountService provides profiles, the inbox, and login.
type AccountService interface {
	// Login exchanges credentials for a session on the given instance.
	// The returned session carries the JWT and the account identity.
	Login(ctx context.Context, instanceURL, username, password, totp string) (domain.Session, error)

	// PersonDetails returns one page of a profile. savedOnly restricts to the
	// user's saved posts and comments.
	PersonDetails(ctx context.Context, s domain.Session, id, page, limit int, savedOnly bool) (domain.PersonDetail, error)

	// Inbox returns one page of replies, mentions or private messages.
	Inbox(ctx context.Context, s domain.Session, mode domain.InboxMode, page, limit int, unreadOnly bool) ([]domain.InboxItem, error)

	// SendMessage sends a private message to a person.
	SendMessage(ctx context.Context, s domain.Session, recipientID int, content string) error

	// MarkAllRead marks every reply and mention as read.
	MarkAllRead(ctx context.Context, s domain.Session) error

	// BlockPerson blocks or unblocks a user.
	BlockPerson(ctx context.Context, s domain.Session, id int, block bool) error
}
