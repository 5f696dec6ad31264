package authsrv_test

import (
	"context"
	"testing"

	"github.com/Abraxas-365/hireboard/pkg/errx"
	"github.com/Abraxas-365/hireboard/pkg/formx"
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/pkg/session"
	"github.com/Abraxas-365/hireboard/recruitment/auth"
	"github.com/Abraxas-365/hireboard/recruitment/auth/authsrv"
)

type fakeGateway struct {
	auth.Gateway
	logins int
	resp   *auth.AuthResponse
	err    error
}

func (f *fakeGateway) Login(_ context.Context, _ auth.LoginRequest) (*auth.AuthResponse, error) {
	f.logins++
	return f.resp, f.err
}

func (f *fakeGateway) Register(_ context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{Token: "new", User: auth.User{ID: "u-2", Email: req.Email, Role: req.Role}}, nil
}

func TestLoginValidatesBeforeCallingBackend(t *testing.T) {
	gw := &fakeGateway{}
	svc := authsrv.NewService(gw, authsrv.NewSessionStore(session.NewMemoryStorage()))

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email"})
	if !errx.IsCode(err, formx.CodeInvalid) {
		t.Fatalf("Login error = %v, want %s", err, formx.CodeInvalid)
	}
	if gw.logins != 0 {
		t.Errorf("gateway called %d times", gw.logins)
	}
}

func TestLoginPersistsSession(t *testing.T) {
	storage := session.NewMemoryStorage()
	store := authsrv.NewSessionStore(storage)
	gw := &fakeGateway{resp: &auth.AuthResponse{Token: "tok", User: seekerUser()}}
	svc := authsrv.NewService(gw, store)

	user, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != "u-1" || store.Token() != "tok" || storage.Saves() != 1 {
		t.Errorf("user %+v token %q saves %d", user, store.Token(), storage.Saves())
	}
}

func TestLoginFailureLeavesSessionUntouched(t *testing.T) {
	storage := session.NewMemoryStorage()
	gw := &fakeGateway{err: auth.ErrInvalidCredentials()}
	svc := authsrv.NewService(gw, authsrv.NewSessionStore(storage))

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ana@example.com", Password: "wrong-pass"})
	if !errx.IsCode(err, auth.CodeInvalidCredentials) {
		t.Fatalf("Login error = %v", err)
	}
	if storage.Saves() != 0 || svc.Store().Token() != "" {
		t.Error("session written after a failed login")
	}
}

func TestRegisterEmployerNeedsCompany(t *testing.T) {
	svc := authsrv.NewService(&fakeGateway{}, authsrv.NewSessionStore(session.NewMemoryStorage()))
	req := auth.RegisterRequest{
		Email:     "boss@example.com",
		Password:  "secret123",
		FirstName: "Bo",
		LastName:  "Ss",
		Role:      kernel.RoleEmployer,
	}
	if _, err := svc.Register(context.Background(), req); !errx.IsCode(err, formx.CodeInvalid) {
		t.Fatalf("Register without company = %v", err)
	}

	req.CompanyName = "Acme"
	user, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !user.IsEmployer() || svc.Store().Token() != "new" {
		t.Errorf("user %+v", user)
	}
}
