package authsrv_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Abraxas-365/hireboard/pkg/errx"
	"github.com/Abraxas-365/hireboard/pkg/httpx"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/session"
	"github.com/Abraxas-365/hireboard/recruitment/auth"
	"github.com/Abraxas-365/hireboard/recruitment/auth/authsrv"
	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u-1",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func seekerUser() auth.User {
	return auth.User{ID: "u-1", Email: "ana@example.com", Role: kernel.RoleJobSeeker, FirstName: "Ana"}
}

func signIn(t *testing.T, store *authsrv.SessionStore, token string) {
	t.Helper()
	if err := store.Begin(context.Background(), &auth.AuthResponse{Token: token, User: seekerUser()}); err != nil {
		t.Fatalf("Begin: %v", err)
	}
}

func TestConcurrentUnauthorizedEndsSessionOnce(t *testing.T) {
	var sawToken atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer expired-token" {
			sawToken.Add(1)
		}
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(errx.Response{Error: "Unauthorized", Message: "token expired"})
	}))
	defer srv.Close()

	storage := session.NewMemoryStorage()
	store := authsrv.NewSessionStore(storage)
	signIn(t, store, "expired-token")

	var ended atomic.Int32
	store.OnSessionEnded(func(reason authsrv.EndReason) {
		if reason != authsrv.EndUnauthorized {
			t.Errorf("end reason = %s", reason)
		}
		ended.Add(1)
	})

	client := httpx.New(httpx.Config{BaseURL: srv.URL},
		httpx.WithTokenSource(store),
		httpx.WithUnauthorizedHandler(store),
	)

	const calls = 8
	var wg sync.WaitGroup
	errs := make([]error, calls)
	for i := range calls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = client.Get(context.Background(), "/api/jobs", nil, nil)
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if !errx.IsType(err, errx.TypeUnauthorized) {
			t.Errorf("call %d error = %v, want unauthorized", i, err)
		}
	}
	if sawToken.Load() == 0 {
		t.Error("no request carried the bearer token")
	}
	if got := storage.Clears(); got != 1 {
		t.Errorf("storage cleared %d times, want 1", got)
	}
	if got := ended.Load(); got != 1 {
		t.Errorf("session ended %d times, want 1", got)
	}
	rec, err := storage.Load(context.Background())
	if err != nil || rec != nil {
		t.Errorf("persisted record = %+v, %v; want nothing", rec, err)
	}
	if store.Token() != "" || store.Current().User != nil {
		t.Error("session still in memory")
	}
}

func TestInvalidateIgnoresReplacedToken(t *testing.T) {
	ctx := context.Background()
	storage := session.NewMemoryStorage()
	store := authsrv.NewSessionStore(storage)
	signIn(t, store, "first")
	if err := store.RotateToken(ctx, "second"); err != nil {
		t.Fatalf("RotateToken: %v", err)
	}

	if store.Invalidate(ctx, "first") {
		t.Fatal("a 401 for an old token ended the new session")
	}
	if store.Token() != "second" || storage.Clears() != 0 {
		t.Errorf("token %q, clears %d", store.Token(), storage.Clears())
	}
	if store.Invalidate(ctx, "") {
		t.Error("a 401 for an anonymous request ended the session")
	}
	if !store.Invalidate(ctx, "second") {
		t.Error("current token not invalidated")
	}
}

func TestRestore(t *testing.T) {
	now := time.Now()
	userData, _ := json.Marshal(seekerUser())
	valid := signedToken(t, now.Add(time.Hour))

	tests := []struct {
		name       string
		stored     *session.Record
		wantToken  string
		wantClears int
	}{
		{
			name:      "nothing stored",
			stored:    nil,
			wantToken: "",
		},
		{
			name:      "valid token",
			stored:    &session.Record{AuthToken: valid, UserRole: kernel.RoleJobSeeker, UserData: userData},
			wantToken: valid,
		},
		{
			name:      "opaque token without expiry",
			stored:    &session.Record{AuthToken: "opaque", UserRole: kernel.RoleJobSeeker, UserData: userData},
			wantToken: "opaque",
		},
		{
			name:       "expired token",
			stored:     &session.Record{AuthToken: signedToken(t, now.Add(-time.Minute)), UserRole: kernel.RoleJobSeeker, UserData: userData},
			wantClears: 1,
		},
		{
			name:       "role without token",
			stored:     &session.Record{UserRole: kernel.RoleEmployer, UserData: userData},
			wantClears: 1,
		},
		{
			name:       "unreadable user",
			stored:     &session.Record{AuthToken: valid, UserRole: kernel.RoleJobSeeker, UserData: json.RawMessage(`"nope"`)},
			wantClears: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			storage := session.NewMemoryStorage()
			if tt.stored != nil {
				_ = storage.Save(ctx, *tt.stored)
			}
			store := authsrv.NewSessionStore(storage)
			if !store.Loading() {
				t.Fatal("store should be loading before Restore")
			}

			if err := store.Restore(ctx); err != nil {
				t.Fatalf("Restore: %v", err)
			}
			if store.Loading() {
				t.Error("still loading after Restore")
			}
			if got := store.Token(); got != tt.wantToken {
				t.Errorf("token = %q, want %q", got, tt.wantToken)
			}
			if got := storage.Clears(); got != tt.wantClears {
				t.Errorf("clears = %d, want %d", got, tt.wantClears)
			}
			if tt.wantToken != "" && store.Current().User.Email != "ana@example.com" {
				t.Errorf("user = %+v", store.Current().User)
			}
		})
	}
}

func TestBeginAndEnd(t *testing.T) {
	ctx := context.Background()
	storage := session.NewMemoryStorage()
	store := authsrv.NewSessionStore(storage)
	signIn(t, store, "tok")

	rec, _ := storage.Load(ctx)
	if rec == nil || rec.AuthToken != "tok" || rec.UserRole != kernel.RoleJobSeeker {
		t.Fatalf("persisted record = %+v", rec)
	}

	user := seekerUser()
	user.FirstName = "Anita"
	if err := store.UpdateUser(ctx, user); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	rec, _ = storage.Load(ctx)
	var persisted auth.User
	_ = json.Unmarshal(rec.UserData, &persisted)
	if persisted.FirstName != "Anita" || rec.AuthToken != "tok" {
		t.Errorf("after UpdateUser: %+v", rec)
	}

	var reasons []authsrv.EndReason
	store.OnSessionEnded(func(r authsrv.EndReason) { reasons = append(reasons, r) })
	if err := store.End(ctx); err != nil {
		t.Fatalf("End: %v", err)
	}
	if rec, _ := storage.Load(ctx); rec != nil {
		t.Errorf("record still stored: %+v", rec)
	}
	if len(reasons) != 1 || reasons[0] != authsrv.EndLogout {
		t.Errorf("reasons = %v", reasons)
	}
	if err := store.UpdateUser(ctx, user); !errx.IsCode(err, auth.CodeNotAuthenticated) {
		t.Errorf("UpdateUser when signed out = %v", err)
	}
}

func TestExpireIfDue(t *testing.T) {
	ctx := context.Background()
	store := authsrv.NewSessionStore(session.NewMemoryStorage())
	signIn(t, store, signedToken(t, time.Now().Add(time.Hour)))
	if store.ExpireIfDue(ctx) {
		t.Fatal("live token expired")
	}

	signIn(t, store, signedToken(t, time.Now().Add(-time.Second)))
	if !store.ExpireIfDue(ctx) {
		t.Fatal("dead token kept")
	}
	if store.Token() != "" {
		t.Error("token still set")
	}
}

// stuckStorage fails the first clearFailures calls to Clear
type stuckStorage struct {
	*session.MemoryStorage
	mu            sync.Mutex
	clearFailures int
}

func (s *stuckStorage) Clear(ctx context.Context) error {
	s.mu.Lock()
	fail := s.clearFailures > 0
	if fail {
		s.clearFailures--
	}
	s.mu.Unlock()
	if fail {
		return errors.New("disk is read only")
	}
	return s.MemoryStorage.Clear(ctx)
}

func TestInvalidatedTokenIsNotRestored(t *testing.T) {
	tests := []struct {
		name          string
		clearFailures int
	}{
		{name: "clear works", clearFailures: 0},
		{name: "clear works on retry", clearFailures: 1},
		{name: "clear keeps failing", clearFailures: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			storage := &stuckStorage{MemoryStorage: session.NewMemoryStorage()}
			store := authsrv.NewSessionStore(storage)
			signIn(t, store, "rejected-token")

			storage.clearFailures = tt.clearFailures
			if !store.Invalidate(ctx, "rejected-token") {
				t.Fatal("Invalidate() = false, want true")
			}

			// Restore may fail to clear the leftover record; it must still not sign in
			next := authsrv.NewSessionStore(storage)
			_ = next.Restore(ctx)
			if got := next.Token(); got != "" {
				t.Errorf("restored token %q after invalidation", got)
			}
		})
	}
}
