package session

import (
	"encoding/json"
	"fmt"

	"github.com/peterbourgon/diskv/v3"

	"github.com/CrestNiraj12/lemmyterm/domain"
)

const preferencesKey = "preferences"

// DiskStore implements app.SessionStore on a diskv directory. Every mutation
// is written through before it becomes visible. It is not safe for concurrent
// use; the TUI only touches it from its update loop.
type DiskStore struct {
	d               *diskv.Diskv
	defaultInstance string
	prefs           domain.Preferences
}

// Open loads the store under dir, creating a single blank account pointed at
// defaultInstance when nothing is stored yet.
func Open(dir, defaultInstance string, infiniteScroll bool) (*DiskStore, error) {
	s := &DiskStore{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			CacheSizeMax: 64 * 1024,
			PathPerm:     0o700,
			FilePerm:     0o600,
		}),
		defaultInstance: domain.NormalizeInstanceURL(defaultInstance),
	}

	if !s.d.Has(preferencesKey) {
		s.prefs = domain.Preferences{
			Accounts:       []domain.Session{{InstanceURL: s.defaultInstance}},
			InfiniteScroll: infiniteScroll,
		}
		return s, nil
	}

	data, err := s.d.Read(preferencesKey)
	if err != nil {
		return nil, fmt.Errorf("reading preferences: %w", err)
	}
	var prefs domain.Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("parsing preferences: %w", err)
	}
	if len(prefs.Accounts) == 0 {
		prefs.Accounts = []domain.Session{{InstanceURL: s.defaultInstance}}
	}
	if prefs.CurrentIndex < 0 || prefs.CurrentIndex >= len(prefs.Accounts) {
		prefs.CurrentIndex = 0
	}
	s.prefs = prefs
	return s, nil
}

func (s *DiskStore) Current() domain.Session { return s.prefs.Current() }

func (s *DiskStore) Preferences() domain.Preferences { return s.prefs.Clone() }

func (s *DiskStore) SetInstance(instanceURL string) error {
	return s.update(func(p *domain.Preferences) error {
		p.Accounts[p.CurrentIndex] = domain.Session{InstanceURL: domain.NormalizeInstanceURL(instanceURL)}
		return nil
	})
}

func (s *DiskStore) SetCredentials(sess domain.Session) error {
	return s.update(func(p *domain.Preferences) error {
		p.Accounts[p.CurrentIndex] = sess
		return nil
	})
}

func (s *DiskStore) Logout() error {
	return s.update(func(p *domain.Preferences) error {
		p.Accounts[p.CurrentIndex] = p.Accounts[p.CurrentIndex].LoggedOut()
		return nil
	})
}

func (s *DiskStore) Switch(index int) error {
	return s.update(func(p *domain.Preferences) error {
		if index < 0 || index >= len(p.Accounts) {
			return domain.ErrNoSuchAccount
		}
		p.CurrentIndex = index
		return nil
	})
}

func (s *DiskStore) Create() error {
	return s.update(func(p *domain.Preferences) error {
		p.Accounts = append(p.Accounts, domain.Session{InstanceURL: s.defaultInstance})
		return nil
	})
}

func (s *DiskStore) Remove(index int) error {
	return s.update(func(p *domain.Preferences) error {
		if index < 0 || index >= len(p.Accounts) {
			return domain.ErrNoSuchAccount
		}
		if index == p.CurrentIndex {
			return domain.ErrRemoveCurrent
		}
		p.Accounts = append(p.Accounts[:index], p.Accounts[index+1:]...)
		if index < p.CurrentIndex {
			p.CurrentIndex--
		}
		return nil
	})
}

func (s *DiskStore) SetInfiniteScroll(on bool) error {
	return s.update(func(p *domain.Preferences) error {
		p.InfiniteScroll = on
		return nil
	})
}

// update applies fn to a copy and persists it; the in-memory state only
// changes when the write succeeds.
func (s *DiskStore) update(fn func(*domain.Preferences) error) error {
	next := s.prefs.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	if err := s.d.Write(preferencesKey, data); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	s.prefs = next
	return nil
}
