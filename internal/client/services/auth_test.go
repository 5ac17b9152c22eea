package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/siteadmin/internal/client/models"
	"github.com/dmitrijs2005/siteadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/siteadmin/internal/client/tokens"
	"github.com/dmitrijs2005/siteadmin/internal/client/validate"
	"github.com/dmitrijs2005/siteadmin/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// ---- fake client ----

type fakeAuthClient struct {
	LoginRet    tokens.Pair
	LoginErr    error
	RegisterRet tokens.Pair
	RegisterErr error
	LogoutErr   error

	LastCreds        models.Credentials
	LastRegistration models.Registration
	LoginCalls       int
	LogoutCalls      int
}

func (f *fakeAuthClient) Login(_ context.Context, creds models.Credentials) (tokens.Pair, error) {
	f.LoginCalls++
	f.LastCreds = creds
	return f.LoginRet, f.LoginErr
}

func (f *fakeAuthClient) Register(_ context.Context, r models.Registration) (tokens.Pair, error) {
	f.LastRegistration = r
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeAuthClient) Logout(context.Context) error {
	f.LogoutCalls++
	return f.LogoutErr
}

func newMemStore() tokens.Store {
	return tokens.NewStore(metadata.NewMemoryRepository())
}

// ---- TESTS ----

func TestLogin_StoresTokens(t *testing.T) {
	fc := &fakeAuthClient{LoginRet: tokens.Pair{AccessToken: "a1", RefreshToken: "r1"}}
	store := newMemStore()
	svc := NewAuthService(fc, store, logging.Nop())

	require.NoError(t, svc.Login(context.Background(), "admin@site.io", "secret"))
	require.Equal(t, models.Credentials{Email: "admin@site.io", Password: "secret"}, fc.LastCreds)

	a, _ := store.AccessToken(context.Background())
	r, _ := store.RefreshToken(context.Background())
	require.Equal(t, "a1", a)
	require.Equal(t, "r1", r)
}

func TestLogin_InvalidInputNeverCallsServer(t *testing.T) {
	fc := &fakeAuthClient{}
	svc := NewAuthService(fc, newMemStore(), logging.Nop())

	err := svc.Login(context.Background(), "not-an-email", "")
	var fe validate.FieldErrors
	require.True(t, errors.As(err, &fe))
	require.Contains(t, fe, "email")
	require.Contains(t, fe, "password")
	require.Zero(t, fc.LoginCalls)
}

func TestLogin_ErrorWrapped(t *testing.T) {
	boom := errors.New("bad creds")
	svc := NewAuthService(&fakeAuthClient{LoginErr: boom}, newMemStore(), logging.Nop())

	err := svc.Login(context.Background(), "a@b.co", "pw")
	require.ErrorIs(t, err, boom)
	require.True(t, strings.HasPrefix(err.Error(), "login error:"))
}

func TestRegister_StoresTokens(t *testing.T) {
	fc := &fakeAuthClient{RegisterRet: tokens.Pair{AccessToken: "a2", RefreshToken: "r2"}}
	store := newMemStore()
	svc := NewAuthService(fc, store, logging.Nop())

	require.NoError(t, svc.Register(context.Background(), "Ann", "ann@site.io", "pw"))
	require.Equal(t, "Ann", fc.LastRegistration.Name)
	a, _ := store.AccessToken(context.Background())
	require.Equal(t, "a2", a)
}

func TestLogout_ClearsEvenWhenServerFails(t *testing.T) {
	fc := &fakeAuthClient{LogoutErr: errors.New("down")}
	store := newMemStore()
	require.NoError(t, store.SetTokens(context.Background(), tokens.Pair{AccessToken: "a", RefreshToken: "r"}))
	svc := NewAuthService(fc, store, logging.Nop())

	require.NoError(t, svc.Logout(context.Background()))
	require.Equal(t, 1, fc.LogoutCalls)

	a, _ := store.AccessToken(context.Background())
	r, _ := store.RefreshToken(context.Background())
	require.Empty(t, a)
	require.Empty(t, r)
}

func TestStatus(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := NewAuthService(&fakeAuthClient{}, store, logging.Nop())

	s, err := svc.Status(ctx)
	require.NoError(t, err)
	require.False(t, s.SignedIn)

	require.NoError(t, store.SetTokens(ctx, tokens.Pair{AccessToken: "opaque", RefreshToken: "r"}))
	s, err = svc.Status(ctx)
	require.NoError(t, err)
	require.True(t, s.SignedIn)
	require.True(t, s.ExpiresAt.IsZero())
	require.False(t, s.Expired(time.Now()))

	exp := time.Now().Add(-time.Minute).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	require.NoError(t, store.SetAccessToken(ctx, signed))

	s, err = svc.Status(ctx)
	require.NoError(t, err)
	require.True(t, s.ExpiresAt.Equal(exp))
	require.True(t, s.Expired(time.Now()))
}
