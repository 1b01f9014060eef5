// Package store provides SessionStore implementations.
//
// Memory keeps the identity for the lifetime of the process, matching
// the per-tab session lifetime of the dashboard: closing the process
// forgets the session. File persists the identity to a JSON file under
// the user's config directory for longer-lived sessions. Both hold at
// most one record and tolerate corrupted content on load.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	rentadmin "github.com/fleetly/rentadmin-go"
)

// compile-time checks
var (
	_ rentadmin.SessionStore = (*Memory)(nil)
	_ rentadmin.SessionStore = (*File)(nil)
)

// Memory is a process-lifetime session store.
type Memory struct {
	mu sync.RWMutex
	id *rentadmin.Identity
}

// NewMemory creates an empty in-memory session store.
func NewMemory() *Memory {
	return &Memory{}
}

// Load returns the stored identity, or nil when absent.
func (m *Memory) Load() (*rentadmin.Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.id == nil {
		return nil, nil
	}
	cp := *m.id
	return &cp, nil
}

// Save replaces the stored identity. A nil identity clears the store.
func (m *Memory) Save(id *rentadmin.Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == nil {
		m.id = nil
		return nil
	}
	cp := *id
	m.id = &cp
	return nil
}

// Clear removes the stored identity.
func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.id = nil
	return nil
}

// File is a session store backed by a single JSON file.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile creates a file-backed session store at the given path.
// An empty path defaults to <user-config-dir>/rentadmin/session.json.
func NewFile(path string) *File {
	if path == "" {
		path = defaultPath()
	}
	return &File{path: path}
}

// Path returns the file path the store reads and writes.
func (f *File) Path() string { return f.path }

// Load returns the persisted identity. A missing file, unreadable file
// or corrupted JSON content is treated as an absent session.
func (f *File) Load() (*rentadmin.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, nil
	}

	var id rentadmin.Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, nil
	}
	if id.Token == "" {
		return nil, nil
	}
	return &id, nil
}

// Save writes the identity to the file. A nil identity clears it.
func (f *File) Save(id *rentadmin.Identity) error {
	if id == nil {
		return f.Clear()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(id, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o600)
}

// Clear removes the session file.
func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func defaultPath() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "rentadmin", "session.json")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "rentadmin", "session.json")
}
