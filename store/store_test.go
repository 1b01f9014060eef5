package store_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	rentadmin "github.com/fleetly/rentadmin-go"
	"github.com/fleetly/rentadmin-go/store"
)

func testIdentity() *rentadmin.Identity {
	return &rentadmin.Identity{
		UserID:    "user-1",
		Name:      "Admin Demo",
		Email:     "admin@demo.com",
		Role:      "admin",
		Token:     "header.payload.sig",
		ExpiresAt: time.Now().Add(59 * time.Minute).Truncate(time.Second),
	}
}

func TestMemory_LoadEmpty(t *testing.T) {
	s := store.NewMemory()

	id, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if id != nil {
		t.Errorf("Load() = %+v, want nil", id)
	}
}

func TestMemory_SaveAndLoad(t *testing.T) {
	s := store.NewMemory()
	want := testIdentity()

	if err := s.Save(want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got == nil || got.Token != want.Token || got.Email != want.Email {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestMemory_SaveNilClears(t *testing.T) {
	s := store.NewMemory()
	if err := s.Save(testIdentity()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if err := s.Save(nil); err != nil {
		t.Fatalf("Save(nil) error: %v", err)
	}
	id, _ := s.Load()
	if id != nil {
		t.Error("Save(nil) should clear the store")
	}
}

func TestMemory_Clear(t *testing.T) {
	s := store.NewMemory()
	if err := s.Save(testIdentity()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	id, _ := s.Load()
	if id != nil {
		t.Error("Clear() should remove the identity")
	}
}

func TestMemory_LoadReturnsCopy(t *testing.T) {
	s := store.NewMemory()
	if err := s.Save(testIdentity()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	first, _ := s.Load()
	first.Token = "mutated"

	second, _ := s.Load()
	if second.Token == "mutated" {
		t.Error("mutating a loaded identity must not affect the store")
	}
}

func TestFile_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := store.NewFile(path)
	want := testIdentity()

	if err := s.Save(want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got == nil || got.Token != want.Token {
		t.Fatalf("Load() = %+v, want %+v", got, want)
	}
	if !got.ExpiresAt.Equal(want.ExpiresAt) {
		t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, want.ExpiresAt)
	}
}

func TestFile_LoadMissingFile(t *testing.T) {
	s := store.NewFile(filepath.Join(t.TempDir(), "absent.json"))

	id, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if id != nil {
		t.Error("Load() on a missing file should return nil")
	}
}

func TestFile_LoadCorruptedContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := store.NewFile(path)

	id, err := s.Load()
	if err != nil {
		t.Fatalf("Load() on corrupted content should not error, got: %v", err)
	}
	if id != nil {
		t.Error("Load() on corrupted content should return nil")
	}
}

func TestFile_LoadEmptyToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{"user_id":"u1","token":""}`), 0o600); err != nil {
		t.Fatal(err)
	}
	s := store.NewFile(path)

	id, _ := s.Load()
	if id != nil {
		t.Error("a record without a token is not a valid session")
	}
}

func TestFile_SaveNilClears(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := store.NewFile(path)
	if err := s.Save(testIdentity()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if err := s.Save(nil); err != nil {
		t.Fatalf("Save(nil) error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Save(nil) should remove the session file")
	}
}

func TestFile_ClearMissingFile(t *testing.T) {
	s := store.NewFile(filepath.Join(t.TempDir(), "absent.json"))
	if err := s.Clear(); err != nil {
		t.Errorf("Clear() on a missing file should not error, got: %v", err)
	}
}

func TestFile_DefaultPath(t *testing.T) {
	s := store.NewFile("")
	if s.Path() == "" {
		t.Error("default path should not be empty")
	}
}
