package domain

// Session is one stored account: the instance it talks to and, once logged in, its credential and identity.
type Session struct {
	InstanceURL string `json:"instance_url"`
	JWT         string `json:"jwt,omitempty"`
	AccountID   int    `json:"id"`
	AccountName string `json:"name"`
}

// HasInstance reports whether an instance has been chosen.
func (s Session) HasInstance() bool { return s.InstanceURL != "" }

// LoggedIn reports whether the session carries a credential.
func (s Session) LoggedIn() bool { return s.JWT != "" }

// LoggedOut returns a copy without credential or identity.
func (s Session) LoggedOut() Session {
	return Session{InstanceURL: s.InstanceURL}
}

// Preferences is everything the session store persists.
type Preferences struct {
	Accounts       []Session `json:"accounts"`
	CurrentIndex   int       `json:"current_account_index"`
	InfiniteScroll bool      `json:"infinite_scroll"`
}

// Current returns the active account, or a blank session if none is stored.
func (p Preferences) Current() Session {
	if p.CurrentIndex < 0 || p.CurrentIndex >= len(p.Accounts) {
		return Session{}
	}
	return p.Accounts[p.CurrentIndex]
}

// Clone returns a deep copy.
func (p Preferences) Clone() Preferences {
	p.Accounts = append([]Session(nil), p.Accounts...)
	return p
}
