package session_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/session"
	"github.com/golang-jwt/jwt/v5"
)

func sampleRecord() session.Record {
	return session.Record{
		AuthToken: "tok-123",
		UserRole:  kernel.RoleJobSeeker,
		UserData:  json.RawMessage(`{"id":"u1","email":"ana@example.com"}`),
	}
}

func TestRecordValid(t *testing.T) {
	tests := []struct {
		name string
		rec  session.Record
		want bool
	}{
		{name: "complete", rec: sampleRecord(), want: true},
		{name: "role without token", rec: session.Record{UserRole: kernel.RoleEmployer, UserData: json.RawMessage(`{}`)}},
		{name: "token without user", rec: session.Record{AuthToken: "t", UserRole: kernel.RoleEmployer}},
		{name: "empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStorages(t *testing.T) {
	key := [32]byte{}
	copy(key[:], strings.Repeat("s", 32))

	storages := map[string]func(t *testing.T) session.Storage{
		"memory": func(*testing.T) session.Storage { return session.NewMemoryStorage() },
		"file": func(t *testing.T) session.Storage {
			return session.NewFileStorage(filepath.Join(t.TempDir(), "nested", "session.json"), nil)
		},
		"sealed file": func(t *testing.T) session.Storage {
			return session.NewFileStorage(filepath.Join(t.TempDir(), "session.bin"), &key)
		},
	}
	for name, mk := range storages {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := mk(t)

			rec, err := s.Load(ctx)
			if err != nil || rec != nil {
				t.Fatalf("Load() on empty storage = %v, %v", rec, err)
			}

			want := sampleRecord()
			if err := s.Save(ctx, want); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			rec, err = s.Load(ctx)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if rec.AuthToken != want.AuthToken || rec.UserRole != want.UserRole || string(rec.UserData) != string(want.UserData) {
				t.Errorf("Load() = %+v, want %+v", rec, want)
			}

			if err := s.Clear(ctx); err != nil {
				t.Fatalf("Clear() error = %v", err)
			}
			if rec, _ := s.Load(ctx); rec != nil {
				t.Errorf("Load() after Clear = %+v", rec)
			}
			if err := s.Clear(ctx); err != nil {
				t.Errorf("second Clear() error = %v", err)
			}
		})
	}
}

func TestSealedFileIsNotPlaintext(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.bin")
	key := [32]byte{1, 2, 3}
	if err := session.NewFileStorage(path, &key).Save(ctx, sampleRecord()); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "tok-123") {
		t.Error("sealed session file contains the token in clear")
	}
	info, _ := os.Stat(path)
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}

	wrong := [32]byte{9}
	if _, err := session.NewFileStorage(path, &wrong).Load(ctx); err == nil {
		t.Error("Load() with the wrong key should fail")
	}
}

func TestMemoryStorageCounts(t *testing.T) {
	ctx := context.Background()
	m := session.NewMemoryStorage()
	_ = m.Save(ctx, sampleRecord())
	_ = m.Clear(ctx)
	_ = m.Clear(ctx)
	if m.Saves() != 1 || m.Clears() != 2 {
		t.Errorf("saves=%d clears=%d", m.Saves(), m.Clears())
	}
}

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func TestExpired(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "past exp", token: signed(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()}), want: true},
		{name: "future exp", token: signed(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()})},
		{name: "no exp", token: signed(t, jwt.MapClaims{"sub": "u1"})},
		{name: "opaque token", token: "not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := session.Expired(tt.token, now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}
