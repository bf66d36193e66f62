package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nhakalabs/storefront-gateway/internal/cart"
	pkgauth "github.com/nhakalabs/storefront-gateway/pkg/auth"
	"github.com/nhakalabs/storefront-gateway/pkg/auth/session"
	"github.com/nhakalabs/storefront-gateway/pkg/commerce"
	"github.com/nhakalabs/storefront-gateway/pkg/config"
	pkgerrors "github.com/nhakalabs/storefront-gateway/pkg/errors"
	"github.com/nhakalabs/storefront-gateway/pkg/logger"
)

type authAPI interface {
	SignIn(ctx context.Context, creds commerce.Credentials) (*commerce.AuthResult, error)
	SignUp(ctx context.Context, input commerce.SignupInput) (*commerce.AuthResult, error)
	Me(ctx context.Context) (*commerce.User, error)
}

type sessionManager interface {
	Create(ctx context.Context, record session.Record) (string, error)
	Revoke(ctx context.Context, sessionID string) error
}

type cartMounter interface {
	Mount(sessionID string) *cart.Store
	Unmount(sessionID string)
}

type checkoutTeardown interface {
	Teardown(sessionID string)
}

// Session is what the browser gets back at sign-in: a gateway token plus the
// signed-in profile. The upstream access token stays server-side.
type Session struct {
	Token string        `json:"token"`
	User  commerce.User `json:"user"`
}

// Service owns the gateway's session lifecycle.
type Service interface {
	SignIn(ctx context.Context, creds commerce.Credentials) (*Session, error)
	SignUp(ctx context.Context, input commerce.SignupInput) (*Session, error)
	SignOut(ctx context.Context, sessionID string) error
	Me(ctx context.Context) (*commerce.User, error)
}

type service struct {
	commerce authAPI
	sessions sessionManager
	carts    cartMounter
	checkout checkoutTeardown
	cfg      config.JWTConfig
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds the auth service.
func NewService(
	client authAPI,
	sessions sessionManager,
	carts cartMounter,
	checkout checkoutTeardown,
	cfg config.JWTConfig,
	logg *logger.Logger,
) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("commerce client required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart provider required")
	}
	if checkout == nil {
		return nil, fmt.Errorf("checkout service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		commerce: client,
		sessions: sessions,
		carts:    carts,
		checkout: checkout,
		cfg:      cfg,
		logg:     logg,
		now:      time.Now,
	}, nil
}

func (s *service) SignIn(ctx context.Context, creds commerce.Credentials) (*Session, error) {
	if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}
	result, err := s.commerce.SignIn(ctx, creds)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, result)
}

func (s *service) SignUp(ctx context.Context, input commerce.SignupInput) (*Session, error) {
	if strings.TrimSpace(input.Email) == "" || input.Password == "" || strings.TrimSpace(input.FullName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name, email and password are required")
	}
	result, err := s.commerce.SignUp(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, result)
}

// establish turns an upstream auth result into a gateway session: the access
// token goes to Redis, a fresh cart store is mounted, and the browser gets a
// signed gateway token referencing the session.
func (s *service) establish(ctx context.Context, result *commerce.AuthResult) (*Session, error) {
	sessionID, err := s.sessions.Create(ctx, session.Record{
		AccessToken: result.AccessToken,
		UserID:      result.User.ID,
		Email:       result.User.Email,
		FullName:    result.User.FullName,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create session")
	}

	s.carts.Mount(sessionID)

	token, err := pkgauth.MintSessionToken(s.cfg, s.now(), pkgauth.SessionTokenPayload{
		SessionID: sessionID,
		UserID:    result.User.ID,
		Email:     result.User.Email,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token")
	}

	s.logg.Info(s.logg.WithSessionID(ctx, sessionID), "session established")
	return &Session{Token: token, User: result.User}, nil
}

// SignOut revokes the session and tears down its cart and checkout state.
func (s *service) SignOut(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session")
	}
	s.checkout.Teardown(sessionID)
	s.carts.Unmount(sessionID)
	s.logg.Info(s.logg.WithSessionID(ctx, sessionID), "session revoked")
	return nil
}

func (s *service) Me(ctx context.Context) (*commerce.User, error) {
	return s.commerce.Me(ctx)
}
