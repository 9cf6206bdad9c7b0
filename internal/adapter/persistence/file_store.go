package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	domain "sps-user-service/internal/domain/user"
)

// Snapshot is the on-disk representation of the full user set.
type Snapshot struct {
	NextID    int64          `json:"nextId"`
	Users     []*domain.User `json:"users"`
	LastSaved time.Time      `json:"lastSaved"`
}

// FileStore persists the user set as a single JSON document. It is the
// only component that touches the filesystem. Writes are atomic: the
// snapshot is written to a temporary path and renamed over the canonical
// file, so a crash mid-write never corrupts the canonical file.
type FileStore struct {
	dir  string
	path string
	log  *zap.Logger
}

// NewFileStore creates a FileStore rooted at dir, persisting to file.
func NewFileStore(dir, file string, log *zap.Logger) *FileStore {
	return &FileStore{
		dir:  dir,
		path: filepath.Join(dir, file),
		log:  log,
	}
}

// Path returns the canonical path of the persisted file.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the persisted snapshot and returns the user mapping and the
// next-id counter. A missing or malformed file is a recoverable
// condition: Load logs it and returns the empty default (no users,
// next id 1).
func (f *FileStore) Load() (map[int64]*domain.User, int64) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			f.log.Info("no persisted data found, starting with empty store")
		} else {
			f.log.Error("failed to read persisted data, starting with empty store", zap.Error(err))
		}
		return map[int64]*domain.User{}, 1
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		f.log.Error("persisted data is not valid JSON, starting with empty store", zap.Error(err))
		return map[int64]*domain.User{}, 1
	}

	// Structural validation: a usable snapshot has a positive next-id
	// and an array of users.
	if snap.NextID < 1 || snap.Users == nil {
		f.log.Error("persisted data has invalid structure, starting with empty store",
			zap.Int64("next_id", snap.NextID))
		return map[int64]*domain.User{}, 1
	}

	users := make(map[int64]*domain.User, len(snap.Users))
	for _, u := range snap.Users {
		users[u.ID] = u
	}

	f.log.Info("loaded users from persistent storage", zap.Int("count", len(users)))
	return users, snap.NextID
}

// Save serializes the full snapshot and writes it durably. The caller is
// expected to log and swallow a failure: in-memory state stays
// authoritative for the running process.
func (f *FileStore) Save(users map[int64]*domain.User, nextID int64) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	snap := Snapshot{
		NextID:    nextID,
		Users:     make([]*domain.User, 0, len(users)),
		LastSaved: time.Now(),
	}
	for _, u := range users {
		snap.Users = append(snap.Users, u)
	}
	sort.Slice(snap.Users, func(i, j int) bool { return snap.Users[i].ID < snap.Users[j].ID })

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	f.log.Debug("saved users to persistent storage", zap.Int("count", len(snap.Users)))
	return nil
}

// Reset removes the persisted file. Absence of the file is not an error.
func (f *FileStore) Reset() error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to reset persisted data: %w", err)
	}
	return nil
}
