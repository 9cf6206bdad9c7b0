package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	domain "sps-user-service/internal/domain/user"
	"sps-user-service/pkg/security"
)

// Persistence abstracts the durable snapshot layer. The store never
// touches the filesystem itself.
type Persistence interface {
	Load() (map[int64]*domain.User, int64)
	Save(users map[int64]*domain.User, nextID int64) error
}

// Bootstrap describes the administrator synthesized on first start when
// the store is empty.
type Bootstrap struct {
	Email    string
	Name     string
	Password string
}

// CreateInput carries the fields for a new user. Password is plaintext
// and is hashed before the record is inserted.
type CreateInput struct {
	Email    string
	Name     string
	Password string
	Type     domain.Type
}

// UpdateInput carries a partial update. Empty fields are preserved from
// the existing record; Password is re-hashed only when supplied.
type UpdateInput struct {
	Email    string
	Name     string
	Password string
	Type     domain.Type
}

// Option configures a Store.
type Option func(*Store)

// WithSaveErrorHook installs a callback invoked whenever a durable write
// fails. Save failures never surface to callers; the hook exists so
// operators can detect silent data-loss risk.
func WithSaveErrorHook(fn func(error)) Option {
	return func(s *Store) { s.onSaveError = fn }
}

// Store is the sole authority over the current set of user records and
// id assignment. Initialization is asynchronous: the constructor loads
// the persisted snapshot in the background and closes a readiness
// channel; every operation awaits readiness before touching state.
type Store struct {
	mu     sync.RWMutex
	users  map[int64]*domain.User
	nextID int64

	ready     chan struct{}
	persist   Persistence
	bootstrap Bootstrap
	log       *zap.Logger

	onSaveError func(error)
	saves       sync.WaitGroup
}

// New creates a Store and starts loading the persisted snapshot. Callers
// may use the store immediately; operations block until the initial load
// completes.
func New(p Persistence, b Bootstrap, log *zap.Logger, opts ...Option) *Store {
	s := &Store{
		users:     map[int64]*domain.User{},
		nextID:    1,
		ready:     make(chan struct{}),
		persist:   p,
		bootstrap: b,
		log:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.init()
	return s
}

func (s *Store) init() {
	defer close(s.ready)

	users, nextID := s.persist.Load()

	s.mu.Lock()
	s.users = users
	s.nextID = nextID
	empty := len(users) == 0
	if empty {
		s.insertAdminLocked()
	}
	count := len(s.users)
	s.mu.Unlock()

	if empty {
		s.saveAsync()
	}
	s.log.Info("store initialized", zap.Int("users", count))
}

// insertAdminLocked synthesizes the built-in administrator. Caller holds
// the write lock.
func (s *Store) insertAdminLocked() {
	hash, err := security.HashPassword(s.bootstrap.Password)
	if err != nil {
		s.log.Error("failed to hash bootstrap admin password", zap.Error(err))
		return
	}
	now := time.Now()
	admin := &domain.User{
		ID:        s.nextID,
		Email:     s.bootstrap.Email,
		Name:      s.bootstrap.Name,
		Type:      domain.TypeAdmin,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextID++
	s.users[admin.ID] = admin
	s.log.Info("bootstrapped admin user", zap.String("email", admin.Email))
}

// awaitReady blocks until the initial load has completed.
func (s *Store) awaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// saveAsync snapshots the current state and persists it in the
// background. Each save serializes the full in-memory snapshot, so the
// last save to complete is consistent with the state at the time it was
// triggered; no merge logic is needed. Failures are logged and reported
// through the save-error hook, never to callers.
func (s *Store) saveAsync() {
	s.mu.RLock()
	snapshot := make(map[int64]*domain.User, len(s.users))
	for id, u := range s.users {
		snapshot[id] = u.Clone()
	}
	nextID := s.nextID
	s.mu.RUnlock()

	s.saves.Add(1)
	go func() {
		defer s.saves.Done()
		if err := s.persist.Save(snapshot, nextID); err != nil {
			s.log.Error("failed to save users to persistent storage", zap.Error(err))
			if s.onSaveError != nil {
				s.onSaveError(err)
			}
		}
	}()
}

// Flush waits for all in-flight saves to complete. Used on graceful
// shutdown and in tests.
func (s *Store) Flush() {
	s.saves.Wait()
}

// CreateUser assigns the next sequential id, hashes the password, stamps
// both timestamps, inserts the record and persists. The returned record
// is stripped of the password hash.
func (s *Store) CreateUser(ctx context.Context, in CreateInput) (*domain.User, error) {
	if err := s.awaitReady(ctx); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s.mu.Lock()
	u := &domain.User{
		ID:        s.nextID,
		Email:     in.Email,
		Name:      in.Name,
		Type:      in.Type,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextID++
	s.users[u.ID] = u
	s.mu.Unlock()

	s.saveAsync()
	return u.Sanitized(), nil
}

// GetAllUsers returns all records stripped of the password hash, ordered
// by id.
func (s *Store) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	if err := s.awaitReady(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	users := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u.Sanitized())
	}
	s.mu.RUnlock()

	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// GetUserByID returns the stripped record, or nil if the id is absent.
func (s *Store) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	if err := s.awaitReady(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return u.Sanitized(), nil
}

// GetUserByEmail returns the full record including the password hash, or
// nil if absent. Used only by authentication.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := s.awaitReady(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u.Clone(), nil
		}
	}
	return nil, nil
}

// UpdateUser merges the supplied fields onto the existing record,
// re-hashes the password only if a new one is given, refreshes UpdatedAt
// and persists. Returns nil if the id is absent.
func (s *Store) UpdateUser(ctx context.Context, id int64, in UpdateInput) (*domain.User, error) {
	if err := s.awaitReady(ctx); err != nil {
		return nil, err
	}

	var hash string
	if in.Password != "" {
		h, err := security.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	s.mu.Lock()
	u, ok := s.users[id]
	if !ok {
		s.mu.Unlock()
		return nil, nil
	}

	updated := u.Clone()
	if in.Email != "" {
		updated.Email = in.Email
	}
	if in.Name != "" {
		updated.Name = in.Name
	}
	if in.Type != "" {
		updated.Type = in.Type
	}
	if hash != "" {
		updated.Password = hash
	}
	updated.UpdatedAt = time.Now()
	s.users[id] = updated
	s.mu.Unlock()

	s.saveAsync()
	return updated.Sanitized(), nil
}

// DeleteUser removes the record if present and persists. Returns whether
// a record was removed.
func (s *Store) DeleteUser(ctx context.Context, id int64) (bool, error) {
	if err := s.awaitReady(ctx); err != nil {
		return false, err
	}

	s.mu.Lock()
	_, ok := s.users[id]
	if !ok {
		s.mu.Unlock()
		return false, nil
	}
	delete(s.users, id)
	s.mu.Unlock()

	s.saveAsync()
	return true, nil
}

// EmailExists reports whether any record other than excludeID has the
// exact email. Pass excludeID 0 to check against all records.
func (s *Store) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	if err := s.awaitReady(ctx); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}
