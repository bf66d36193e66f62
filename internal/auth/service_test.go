package auth

import (
	"context"
	"io"
	"testing"

	"github.com/nhakalabs/storefront-gateway/internal/cart"
	pkgauth "github.com/nhakalabs/storefront-gateway/pkg/auth"
	"github.com/nhakalabs/storefront-gateway/pkg/auth/session"
	"github.com/nhakalabs/storefront-gateway/pkg/commerce"
	"github.com/nhakalabs/storefront-gateway/pkg/config"
	pkgerrors "github.com/nhakalabs/storefront-gateway/pkg/errors"
	"github.com/nhakalabs/storefront-gateway/pkg/logger"
)

type commerceStub struct {
	result  *commerce.AuthResult
	authErr error
}

func (c *commerceStub) SignIn(_ context.Context, creds commerce.Credentials) (*commerce.AuthResult, error) {
	if c.authErr != nil {
		return nil, c.authErr
	}
	return c.result, nil
}

func (c *commerceStub) SignUp(_ context.Context, input commerce.SignupInput) (*commerce.AuthResult, error) {
	if c.authErr != nil {
		return nil, c.authErr
	}
	return c.result, nil
}

func (c *commerceStub) Me(_ context.Context) (*commerce.User, error) {
	return &c.result.User, nil
}

type sessionsStub struct {
	created []session.Record
	revoked []string
}

func (s *sessionsStub) Create(_ context.Context, record session.Record) (string, error) {
	s.created = append(s.created, record)
	return "sess-1", nil
}

func (s *sessionsStub) Revoke(_ context.Context, sessionID string) error {
	s.revoked = append(s.revoked, sessionID)
	return nil
}

type teardownStub struct {
	sessions []string
}

func (td *teardownStub) Teardown(sessionID string) {
	td.sessions = append(td.sessions, sessionID)
}

func jwtConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "nhaka-gateway",
		ExpirationMinutes: 60,
	}
}

type fixture struct {
	svc      Service
	commerce *commerceStub
	sessions *sessionsStub
	carts    *cart.Provider
	teardown *teardownStub
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	api := &commerceStub{result: &commerce.AuthResult{
		AccessToken: "upstream-token",
		User:        commerce.User{ID: "user-1", FullName: "Jane Doe", Email: "jane@example.com", Role: "customer"},
	}}
	sessions := &sessionsStub{}
	carts := cart.NewProvider()
	teardown := &teardownStub{}

	svc, err := NewService(api, sessions, carts, teardown, jwtConfig(), logger.New(logger.Options{Output: io.Discard}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return &fixture{svc: svc, commerce: api, sessions: sessions, carts: carts, teardown: teardown}
}

func TestSignInEstablishesSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	got, err := f.svc.SignIn(context.Background(), commerce.Credentials{Email: "jane@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	if len(f.sessions.created) != 1 {
		t.Fatalf("expected one session, got %d", len(f.sessions.created))
	}
	record := f.sessions.created[0]
	if record.AccessToken != "upstream-token" || record.UserID != "user-1" {
		t.Fatalf("session record missing upstream custody: %+v", record)
	}

	claims, err := pkgauth.ParseSessionToken(jwtConfig(), got.Token)
	if err != nil {
		t.Fatalf("gateway token does not parse: %v", err)
	}
	if claims.ID != "sess-1" {
		t.Fatalf("token session id = %q, want sess-1", claims.ID)
	}
	if got.User.FullName != "Jane Doe" {
		t.Fatalf("unexpected user %+v", got.User)
	}

	if _, err := f.carts.Use("sess-1"); err != nil {
		t.Fatal("sign-in should mount a cart store for the session")
	}
}

func TestSignInRequiresCredentials(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.svc.SignIn(context.Background(), commerce.Credentials{Email: "jane@example.com"})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSignInPropagatesUpstreamRejection(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.commerce.authErr = pkgerrors.New(pkgerrors.CodeUnauthorized, "bad credentials")

	_, err := f.svc.SignIn(context.Background(), commerce.Credentials{Email: "jane@example.com", Password: "wrong"})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if len(f.sessions.created) != 0 {
		t.Fatal("no session should exist after a rejected sign-in")
	}
}

func TestSignUpEstablishesSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	got, err := f.svc.SignUp(context.Background(), commerce.SignupInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if got.Token == "" {
		t.Fatal("sign up should return a gateway token")
	}
}

func TestSignOutTearsEverythingDown(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	if _, err := f.svc.SignIn(context.Background(), commerce.Credentials{Email: "jane@example.com", Password: "secret"}); err != nil {
		t.Fatalf("sign in: %v", err)
	}

	if err := f.svc.SignOut(context.Background(), "sess-1"); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if len(f.sessions.revoked) != 1 || f.sessions.revoked[0] != "sess-1" {
		t.Fatalf("session not revoked: %+v", f.sessions.revoked)
	}
	if len(f.teardown.sessions) != 1 {
		t.Fatal("checkout state not torn down")
	}
	if _, err := f.carts.Use("sess-1"); err == nil {
		t.Fatal("cart store should be unmounted after sign-out")
	}
}

func TestSignOutWithBlankSessionIsNoOp(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	if err := f.svc.SignOut(context.Background(), "  "); err != nil {
		t.Fatalf("blank sign out should be a no-op, got %v", err)
	}
	if len(f.sessions.revoked) != 0 {
		t.Fatal("nothing should be revoked")
	}
}
