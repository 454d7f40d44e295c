// Package mockapi is an in-memory implementation of the backend contract,
// used for local development, demos, and tests. The real backend is an
// external service; this one only mimics its HTTP surface.
package mockapi

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/netdash/netdash/internal/model"
)

var (
	errUserNotFound = errors.New("user not found")
	errUserExists   = errors.New("username already taken")
)

type userRecord struct {
	model.User
	passwordHash []byte
	createdAt    time.Time
}

// Store holds all mock data in memory
type Store struct {
	mu      sync.RWMutex
	users   map[string]*userRecord
	devices []model.Device
}

// NewStore creates a mock store with seed data: an administrator, a viewer,
// and a small device inventory.
func NewStore() *Store {
	s := &Store{users: make(map[string]*userRecord)}

	s.mustSeedUser("admin", "secret", model.RoleAdministrator)
	s.mustSeedUser("viewer", "secret", model.RoleViewer)
	s.devices = seedDevices()

	return s
}

func (s *Store) mustSeedUser(username, password string, role model.Role) {
	if _, err := s.CreateUser(username, password, role); err != nil {
		panic(err)
	}
}

// Authenticate checks a username/password pair and returns the user on
// success.
func (s *Store) Authenticate(username, password string) (*model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.users {
		if rec.Username == username {
			if bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(password)) == nil {
				u := rec.User
				return &u, true
			}
			return nil, false
		}
	}
	return nil, false
}

// UserByID returns a user by identifier.
func (s *Store) UserByID(id string) (*model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[id]
	if !ok {
		return nil, false
	}
	u := rec.User
	return &u, true
}

// Users lists all users in creation order.
func (s *Store) Users() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*userRecord, 0, len(s.users))
	for _, rec := range s.users {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].createdAt.Before(records[j].createdAt)
	})

	users := make([]model.User, len(records))
	for i, rec := range records {
		users[i] = rec.User
	}
	return users
}

// CreateUser adds a user with a bcrypt-hashed password.
func (s *Store) CreateUser(username, password string, role model.Role) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.users {
		if rec.Username == username {
			return nil, errUserExists
		}
	}

	rec := &userRecord{
		User: model.User{
			ID:       uuid.New().String(),
			Username: username,
			Role:     role,
		},
		passwordHash: hash,
		createdAt:    time.Now(),
	}
	s.users[rec.ID] = rec

	u := rec.User
	return &u, nil
}

// DeleteUser removes a user by identifier.
func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return errUserNotFound
	}
	delete(s.users, id)
	return nil
}

// SetPassword replaces a user's password hash.
func (s *Store) SetPassword(id, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[id]
	if !ok {
		return errUserNotFound
	}
	rec.passwordHash = hash
	return nil
}

// Devices returns the device inventory in arrival order.
func (s *Store) Devices() []model.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()

	devices := make([]model.Device, len(s.devices))
	copy(devices, s.devices)
	return devices
}

func seedDevices() []model.Device {
	now := time.Now()
	return []model.Device{
		{
			ID:               uuid.New().String(),
			IPAddress:        "192.168.1.1",
			MACAddress:       "00:11:22:33:44:55",
			Hostname:         "router-gateway",
			DeviceType:       "router",
			Status:           model.StatusOnline,
			LastResponseTime: 2.3,
			FirstDiscovered:  now.Add(-30 * 24 * time.Hour),
			LastSeen:         now,
			CreatedAt:        now.Add(-30 * 24 * time.Hour),
			UpdatedAt:        now,
			IsMonitored:      true,
		},
		{
			ID:               uuid.New().String(),
			IPAddress:        "192.168.1.10",
			MACAddress:       "00:11:22:33:44:66",
			Hostname:         "server-01",
			DeviceType:       "server",
			Status:           model.StatusOnline,
			LastResponseTime: 0.8,
			FirstDiscovered:  now.Add(-30 * 24 * time.Hour),
			LastSeen:         now,
			CreatedAt:        now.Add(-30 * 24 * time.Hour),
			UpdatedAt:        now,
			IsMonitored:      true,
			Notes:            "Primary application server",
		},
		{
			ID:              uuid.New().String(),
			IPAddress:       "192.168.1.20",
			MACAddress:      "00:11:22:33:44:77",
			Hostname:        "workstation-01",
			DeviceType:      "workstation",
			Status:          model.StatusOffline,
			FirstDiscovered: now.Add(-14 * 24 * time.Hour),
			LastSeen:        now.Add(-time.Hour),
			CreatedAt:       now.Add(-14 * 24 * time.Hour),
			UpdatedAt:       now.Add(-time.Hour),
			IsMonitored:     true,
		},
		{
			ID:               uuid.New().String(),
			IPAddress:        "192.168.1.30",
			MACAddress:       "00:11:22:33:44:88",
			Hostname:         "printer-01",
			DeviceType:       "printer",
			Status:           model.StatusWarning,
			LastResponseTime: 45.2,
			FirstDiscovered:  now.Add(-7 * 24 * time.Hour),
			LastSeen:         now,
			CreatedAt:        now.Add(-7 * 24 * time.Hour),
			UpdatedAt:        now,
			IsMonitored:      false,
			Notes:            "High response times since firmware update",
		},
	}
}
