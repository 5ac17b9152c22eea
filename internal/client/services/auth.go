// Package services contains application services for the SiteAdmin client.
// This file defines the authentication service: login, registration,
// logout and the local session status.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/siteadmin/internal/client/models"
	"github.com/dmitrijs2005/siteadmin/internal/client/tokens"
	"github.com/dmitrijs2005/siteadmin/internal/client/validate"
	"github.com/dmitrijs2005/siteadmin/internal/logging"
)

// AuthClient is the part of the API client the auth service needs.
type AuthClient interface {
	Login(ctx context.Context, creds models.Credentials) (tokens.Pair, error)
	Register(ctx context.Context, r models.Registration) (tokens.Pair, error)
	Logout(ctx context.Context) error
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: validate credentials, authenticate, persist the token pair.
//   - Register: create an account and persist the issued pair.
//   - Logout: best-effort server logout; local tokens are always cleared.
//   - Status: report what the local store says about the session.
type AuthService interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, name, email, password string) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) (Session, error)
}

// Session describes the stored credentials. ExpiresAt is zero when the
// access token is not a JWT carrying an exp claim.
type Session struct {
	SignedIn  bool
	ExpiresAt time.Time
}

// Expired reports whether the access token's exp claim is in the past
// relative to now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

type authService struct {
	client AuthClient
	store  tokens.Store
	log    logging.Logger
}

func NewAuthService(client AuthClient, store tokens.Store, log logging.Logger) AuthService {
	return &authService{client: client, store: store, log: log}
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	creds := models.Credentials{Email: email, Password: password}
	if err := validate.SignIn(creds); err != nil {
		return err
	}

	pair, err := a.client.Login(ctx, creds)
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	return a.save(ctx, pair)
}

func (a *authService) Register(ctx context.Context, name, email, password string) error {
	if err := validate.SignIn(models.Credentials{Email: email, Password: password}); err != nil {
		return err
	}

	pair, err := a.client.Register(ctx, models.Registration{Name: name, Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return a.save(ctx, pair)
}

func (a *authService) save(ctx context.Context, pair tokens.Pair) error {
	if err := a.store.SetTokens(ctx, pair); err != nil {
		return fmt.Errorf("saving tokens error: %w", err)
	}
	a.log.Info(ctx, "signed in")
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		a.log.Warn(ctx, "server logout failed", "error", err)
	}
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing tokens error: %w", err)
	}
	return nil
}

func (a *authService) Status(ctx context.Context) (Session, error) {
	token, err := a.store.AccessToken(ctx)
	if err != nil {
		return Session{}, err
	}
	if token == "" {
		return Session{}, nil
	}

	s := Session{SignedIn: true}
	if exp, ok := tokens.Expiry(token); ok {
		s.ExpiresAt = exp
	}
	return s, nil
}
