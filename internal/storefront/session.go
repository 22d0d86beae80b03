// internal/storefront/session.go
package storefront

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/javajoker/storefront/internal/models"
)

// CurrentUser is the identity the storefront acts as. Guests are made up
// locally and never sent to the server.
type CurrentUser struct {
	models.PublicUser
	Token string `json:"token,omitempty"`
}

func NewGuest() CurrentUser {
	return CurrentUser{
		PublicUser: models.PublicUser{
			ID:        "guest-" + uuid.NewString(),
			Name:      "Guest",
			Role:      models.RoleGuest,
			CreatedAt: time.Now().UTC(),
		},
	}
}

func (u CurrentUser) IsGuest() bool {
	return u.Role == models.RoleGuest || u.Role == ""
}

func (u CurrentUser) IsAdmin() bool {
	return u.Role == models.RoleAdmin
}

// Store persists the current user under a single key.
type Store interface {
	// Load returns nil when nothing has been saved.
	Load() (*CurrentUser, error)
	Save(user CurrentUser) error
	Clear() error
	Close() error
}

var (
	sessionBucket  = []byte("storefront")
	currentUserKey = []byte("currentUser")
)

// BoltStore keeps the current user in a bbolt file.
type BoltStore struct {
	db *bbolt.DB
}

func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare session store: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Load() (*CurrentUser, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(sessionBucket).Get(currentUserKey); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || data == nil {
		return nil, err
	}
	return decodeUser(data)
}

func (s *BoltStore) Save(user CurrentUser) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(sessionBucket).Put(currentUserKey, data)
	})
}

func (s *BoltStore) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(sessionBucket).Delete(currentUserKey)
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

// MemoryStore is a Store for tests and short-lived tools.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (*CurrentUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, nil
	}
	return decodeUser(s.data)
}

func (s *MemoryStore) Save(user CurrentUser) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var errCorruptSession = errors.New("stored session is unreadable")

func decodeUser(data []byte) (*CurrentUser, error) {
	var user CurrentUser
	if err := json.Unmarshal(data, &user); err != nil || user.ID == "" {
		return nil, errCorruptSession
	}
	return &user, nil
}
