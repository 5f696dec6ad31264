// Package session persists the signed-in triple (authToken, userRole,
// userData) on behalf of the auth session store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
)

// Persisted field names, kept identical across storages
const (
	KeyAuthToken = "authToken"
	KeyUserRole  = "userRole"
	KeyUserData  = "userData"
)

// ErrPartialRecord is returned when a storage holds only part of the triple
var ErrPartialRecord = errors.New("session: persisted record is incomplete")

// Record is the persisted triple. It is always written and cleared as a whole.
type Record struct {
	AuthToken string          `json:"authToken"`
	UserRole  kernel.Role     `json:"userRole"`
	UserData  json.RawMessage `json:"userData"`
}

// Valid reports whether the record is a usable signed-in triple. A role
// without a token is never valid.
func (r Record) Valid() bool {
	return r.AuthToken != "" && r.UserRole != "" && len(r.UserData) > 0
}

// Storage is the on-device mirror of the session
type Storage interface {
	// Load returns the stored record, or nil when nothing is stored
	Load(ctx context.Context) (*Record, error)
	// Save replaces the whole triple
	Save(ctx context.Context, rec Record) error
	// Clear removes the whole triple
	Clear(ctx context.Context) error
}

// MemoryStorage keeps the record in process memory
type MemoryStorage struct {
	mu     sync.Mutex
	rec    *Record
	saves  int
	clears int
}

// NewMemoryStorage creates an empty in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load(_ context.Context) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rec == nil {
		return nil, nil
	}
	cp := *m.rec
	return &cp, nil
}

func (m *MemoryStorage) Save(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = &rec
	m.saves++
	return nil
}

func (m *MemoryStorage) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = nil
	m.clears++
	return nil
}

// Clears returns how many times Clear was called
func (m *MemoryStorage) Clears() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clears
}

// Saves returns how many times Save was called
func (m *MemoryStorage) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
