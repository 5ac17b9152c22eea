package devserver_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/siteadmin/internal/client/client"
	"github.com/dmitrijs2005/siteadmin/internal/client/models"
	"github.com/dmitrijs2005/siteadmin/internal/client/refresh"
	"github.com/dmitrijs2005/siteadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/siteadmin/internal/client/services"
	"github.com/dmitrijs2005/siteadmin/internal/client/tokens"
	"github.com/dmitrijs2005/siteadmin/internal/client/transport"
	"github.com/dmitrijs2005/siteadmin/internal/devserver"
	"github.com/dmitrijs2005/siteadmin/internal/devserver/config"
	"github.com/dmitrijs2005/siteadmin/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type harness struct {
	cfg       *config.Config
	clock     *clock
	refreshes atomic.Int32
	redirects atomic.Int32
	transport transport.Transport
	store     tokens.Store
	api       *client.APIClient
	auth      services.AuthService
	content   services.ContentService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{cfg: &config.Config{}, clock: &clock{t: time.Now()}}
	h.cfg.LoadDefaults()

	srv, err := devserver.New(h.cfg, logging.Nop(),
		devserver.WithClock(h.clock.Now),
		devserver.WithPasswordCost(bcrypt.MinCost),
	)
	require.NoError(t, err)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh" {
			h.refreshes.Add(1)
		}
		srv.Handler().ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)

	tr, err := transport.NewHTTPTransport(ts.URL+"/api", 5*time.Second, logging.Nop())
	require.NoError(t, err)

	h.transport = tr
	h.store = tokens.NewStore(metadata.NewMemoryRepository())
	h.api = client.New(tr, h.store, refresh.RedirectorFunc(func(context.Context, error) {
		h.redirects.Add(1)
	}))
	t.Cleanup(func() { _ = h.api.Close() })

	h.auth = services.NewAuthService(h.api, h.store, logging.Nop())
	h.content = services.NewContentService(h.api)
	return h
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	require.NoError(t, h.auth.Login(context.Background(), h.cfg.AdminEmail, h.cfg.AdminPassword))
}

func TestRoundTrip_ExpiredAccessTokenIsRefreshedOnce(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.login(t)

	oldAccess, err := h.store.AccessToken(ctx)
	require.NoError(t, err)
	oldRefresh, err := h.store.RefreshToken(ctx)
	require.NoError(t, err)

	h.clock.Advance(h.cfg.AccessTokenTTL + time.Minute)

	const n = 5
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = h.content.Inquiries(ctx, services.InquiryQuery{})
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), h.refreshes.Load())
	assert.Zero(t, h.redirects.Load())

	newAccess, _ := h.store.AccessToken(ctx)
	newRefresh, _ := h.store.RefreshToken(ctx)
	assert.NotEqual(t, oldAccess, newAccess)
	assert.NotEqual(t, oldRefresh, newRefresh, "rotated refresh token is kept")
}

func TestRoundTrip_ExpiredSessionRedirects(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.login(t)

	h.clock.Advance(h.cfg.RefreshTokenTTL + time.Minute)

	_, err := h.content.Inquiries(ctx, services.InquiryQuery{})
	require.ErrorIs(t, err, client.ErrUnauthorized)
	require.ErrorIs(t, err, refresh.ErrRefreshFailed)
	assert.Equal(t, int32(1), h.redirects.Load())

	access, _ := h.store.AccessToken(ctx)
	assert.Empty(t, access)

	s, err := h.auth.Status(ctx)
	require.NoError(t, err)
	assert.False(t, s.SignedIn)
}

func TestRoundTrip_ContentWrites(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.login(t)

	saved, err := h.content.SaveService(ctx, "", models.Service{Title: "Data Engineering", ShortDesc: "Pipelines"},
		&transport.File{FieldName: "file", FileName: "icon.png", Content: []byte("\x89PNG\r\n\x1a\n")})
	require.NoError(t, err)
	assert.Equal(t, "data-engineering", saved.Slug)
	assert.Len(t, saved.Images, 1)

	_, err = h.content.SaveService(ctx, "", models.Service{Title: "Data Engineering", ShortDesc: "Again"}, nil)
	require.Error(t, err)
	assert.Equal(t, "Slug already exists", client.Message(err))

	require.NoError(t, h.content.SubmitContact(ctx, models.Inquiry{
		Name: "Ann", Email: "ann@example.com", Message: "Please call me back",
	}))
	open, err := h.content.Inquiries(ctx, services.InquiryQuery{Handled: services.FilterNotHandled})
	require.NoError(t, err)
	require.NotEmpty(t, open)

	handled, err := h.content.MarkInquiryHandled(ctx, open[0].ID)
	require.NoError(t, err)
	assert.True(t, handled.Handled)

	d, err := h.content.Dashboard(ctx)
	require.NoError(t, err)
	assert.Len(t, d.Services, 3, "two seeded plus one created")
	assert.Zero(t, h.refreshes.Load())

	require.NoError(t, h.content.DeleteService(ctx, saved.ID))
	_, err = h.content.GetService(ctx, saved.ID)
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestRoundTrip_LogoutRevokesSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.login(t)
	refreshToken, _ := h.store.RefreshToken(ctx)

	require.NoError(t, h.auth.Logout(ctx))

	_, err := client.NewTokenRefresher(h.transport).Refresh(ctx, refreshToken)
	assert.Error(t, err)
}
