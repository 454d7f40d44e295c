// Package devices holds the fetched device collection and its
// loading/error lifecycle.
package devices

import (
	"context"
	"sync"

	"github.com/netdash/netdash/internal/model"
)

// Lister is the external device-listing collaborator.
type Lister interface {
	Devices(ctx context.Context) ([]model.Device, error)
}

// State is a point-in-time snapshot of the collection.
type State struct {
	Devices []model.Device
	Loading bool
	Error   string
}

// Store is the device state container. On a failed fetch the previous
// snapshot is kept, so the UI can keep showing the last good data alongside
// the error. Overlapping fetches are not deduplicated; the later resolution
// wins.
type Store struct {
	mu     sync.Mutex
	lister Lister

	devices []model.Device
	loading bool
	err     string
}

// New creates an empty device store.
func New(lister Lister) *Store {
	return &Store{lister: lister}
}

// Snapshot returns the current collection state. The returned slice is
// shared; callers treat devices as immutable.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Devices: s.devices,
		Loading: s.loading,
		Error:   s.err,
	}
}

// Fetch replaces the collection wholesale from the backend. The error is
// both stored and returned.
func (s *Store) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	devices, err := s.lister.Devices(ctx)
	if err != nil {
		s.mu.Lock()
		s.loading = false
		s.err = err.Error()
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.devices = devices
	s.loading = false
	s.mu.Unlock()
	return nil
}

// ClearError clears the fetch error. Idempotent.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}
