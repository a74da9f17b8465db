package app

import "github.com/CrestNiraj12/lemmyterm/domain"

// SessionStore owns the stored accounts. It is read when dispatching work and
// mutated only in response to session-lifecycle events.
type SessionStore interface {
	// Current returns a snapshot of the active account.
	Current() domain.Session

	// Preferences returns a snapshot of everything stored.
	Preferences() domain.Preferences

	// SetInstance points the active account at an instance and drops its credential.
	SetInstance(instanceURL string) error

	// SetCredentials stores a logged-in session on the active account.
	SetCredentials(s domain.Session) error

	// Logout drops the active account's credential and identity.
	Logout() error

	// Switch makes the account at index active.
	Switch(index int) error

	// Create appends a blank account without switching to it.
	Create() error

	// Remove deletes a non-active account.
	Remove(index int) error

	SetInfiniteScroll(on bool) error
}
