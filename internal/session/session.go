// Package session holds the authenticated user for the process. The store is
// only mutated by explicit login/logout, never concurrently with in-flight
// requests, but it is lock-guarded regardless. State is persisted to a file
// in the config dir so the identity survives across CLI invocations.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	gosync "sync"

	"bagsync/internal/domain/inventory"
)

type state struct {
	User *inventory.User `json:"user,omitempty"`
}

// Store is the local session store. Construct it explicitly and inject it;
// there is no package-level singleton.
type Store struct {
	mu   gosync.RWMutex
	path string
	user *inventory.User
}

// NewStore loads any persisted session from path. A missing or unreadable
// state file starts an empty session rather than failing.
func NewStore(path string) *Store {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return s
	}
	s.user = st.User
	return s
}

// Set stores the user issued by the backend at login and persists it.
func (s *Store) Set(u inventory.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &u
	return s.persist()
}

// Current returns the authenticated user, if any.
func (s *Store) Current() (inventory.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return inventory.User{}, false
	}
	return *s.user, true
}

// Clear drops the session on logout and removes the state file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session state: %w", err)
	}
	return nil
}

func (s *Store) persist() error {
	data, err := json.MarshalIndent(state{User: s.user}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session state: %w", err)
	}
	return nil
}
