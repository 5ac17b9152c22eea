package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/siteadmin/internal/client/tokens"
	"github.com/dmitrijs2005/siteadmin/internal/client/transport"
	"github.com/dmitrijs2005/siteadmin/internal/logging"
)

// DefaultTimeout bounds a single refresh call.
const DefaultTimeout = 15 * time.Second

// Refresher exchanges a refresh token for a new access token. A returned
// pair with an empty RefreshToken keeps the stored one.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (tokens.Pair, error)
}

// RefresherFunc adapts a function to Refresher.
type RefresherFunc func(ctx context.Context, refreshToken string) (tokens.Pair, error)

func (f RefresherFunc) Refresh(ctx context.Context, refreshToken string) (tokens.Pair, error) {
	return f(ctx, refreshToken)
}

// Redirector sends the user back to the sign-in entry point after the
// session could not be recovered.
type Redirector interface {
	RedirectToSignIn(ctx context.Context, cause error)
}

// RedirectorFunc adapts a function to Redirector.
type RedirectorFunc func(ctx context.Context, cause error)

func (f RedirectorFunc) RedirectToSignIn(ctx context.Context, cause error) { f(ctx, cause) }

// Replay re-sends one request with the given access token. The caller is
// responsible for marking the request as retried.
type Replay func(ctx context.Context, accessToken string) (*transport.Response, error)

// State is the coordinator's refresh state.
type State int

const (
	StateNormal State = iota
	StateRefreshing
)

func (s State) String() string {
	if s == StateRefreshing {
		return "REFRESHING"
	}
	return "NORMAL"
}

type outcome struct {
	resp *transport.Response
	err  error
}

// pending is a queued continuation. done is buffered so settling never
// blocks, even if the waiter already gave up on its context.
type pending struct {
	ctx    context.Context
	replay Replay
	done   chan outcome
}

// Coordinator lets at most one refresh run at a time and parks every other
// unauthorized request until it settles.
type Coordinator struct {
	store     tokens.Store
	refresher Refresher
	redirect  Redirector
	timeout   time.Duration
	log       logging.Logger

	mu         sync.Mutex
	refreshing bool
	queue      []*pending
	// gen is bumped by Reset so a leader that outlives a reset leaves the
	// new state alone.
	gen uint64
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithTimeout sets the refresh call timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for refresh events.
func WithLogger(l logging.Logger) Option {
	return func(c *Coordinator) { c.log = l }
}

// NewCoordinator returns a coordinator in the NORMAL state.
func NewCoordinator(store tokens.Store, refresher Refresher, redirect Redirector, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:     store,
		refresher: refresher,
		redirect:  redirect,
		timeout:   DefaultTimeout,
		log:       logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// State reports whether a refresh is in flight.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.refreshing {
		return StateRefreshing
	}
	return StateNormal
}

// Pending returns the number of queued callers.
func (c *Coordinator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Recover handles a request that failed with 401 and has not been retried.
// sentWith is the access token the failed attempt carried.
//
// If the stored token has already been replaced since the request was sent
// (a refresh settled while it was in flight), the request is replayed with
// the current token without another refresh.
func (c *Coordinator) Recover(ctx context.Context, sentWith string, replay Replay) (*transport.Response, error) {
	if current, err := c.store.AccessToken(ctx); err == nil && current != "" && current != sentWith {
		if c.State() == StateNormal {
			return replay(ctx, current)
		}
	}

	c.mu.Lock()
	if c.refreshing {
		p := &pending{ctx: ctx, replay: replay, done: make(chan outcome, 1)}
		c.queue = append(c.queue, p)
		c.mu.Unlock()

		select {
		case o := <-p.done:
			return o.resp, o.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	c.refreshing = true
	gen := c.gen
	c.mu.Unlock()

	token, err := c.refresh(ctx, gen)

	c.mu.Lock()
	var queue []*pending
	if c.gen == gen {
		queue = c.queue
		c.queue = nil
		c.refreshing = false
	}
	c.mu.Unlock()

	if errors.Is(err, ErrCoordinatorReset) {
		c.log.Info(ctx, "refresh outcome dropped after reset")
		return nil, err
	}
	if err != nil {
		c.log.Warn(ctx, "token refresh failed", "error", err, "queued", len(queue))
		for _, p := range queue {
			p.done <- outcome{err: err}
		}
		c.redirect.RedirectToSignIn(context.WithoutCancel(ctx), err)
		return nil, err
	}

	c.log.Info(ctx, "access token refreshed", "queued", len(queue))
	if len(queue) > 0 {
		go c.drain(queue, token)
	}
	return replay(ctx, token)
}

// Reset drops every queued caller with ErrCoordinatorReset and returns the
// coordinator to NORMAL. Meant for teardown (logout, shutdown).
func (c *Coordinator) Reset() {
	c.mu.Lock()
	queue := c.queue
	c.queue = nil
	c.refreshing = false
	c.gen++
	c.mu.Unlock()

	for _, p := range queue {
		p.done <- outcome{err: ErrCoordinatorReset}
	}
}

// drain replays queued requests one by one in arrival order.
func (c *Coordinator) drain(queue []*pending, token string) {
	for _, p := range queue {
		if err := p.ctx.Err(); err != nil {
			p.done <- outcome{err: err}
			continue
		}
		resp, err := p.replay(p.ctx, token)
		p.done <- outcome{resp: resp, err: err}
	}
}

// refresh performs the single refresh call and updates the store. Any
// failure clears both tokens. If Reset ran since generation gen started,
// the store is left alone and ErrCoordinatorReset is returned.
func (c *Coordinator) refresh(ctx context.Context, gen uint64) (string, error) {
	ctx = context.WithoutCancel(ctx)
	c.log.Info(ctx, "refreshing access token")

	token, err := c.exchange(ctx, gen)
	if err == nil || errors.Is(err, ErrCoordinatorReset) {
		return token, err
	}

	current, cerr := c.commit(gen, func() error { return c.store.Clear(ctx) })
	if !current {
		return "", ErrCoordinatorReset
	}
	if cerr != nil {
		c.log.Error(ctx, "failed to clear credentials", "error", cerr)
	}
	return "", fmt.Errorf("%w: %w", ErrRefreshFailed, err)
}

// commit runs fn under the coordinator lock if no Reset happened since gen.
// Holding the lock orders the store write before or after a Reset, never
// across it.
func (c *Coordinator) commit(gen uint64, fn func() error) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return false, nil
	}
	return true, fn()
}

func (c *Coordinator) exchange(ctx context.Context, gen uint64) (string, error) {
	refreshToken, err := c.store.RefreshToken(ctx)
	if err != nil {
		return "", fmt.Errorf("read refresh token: %w", err)
	}
	if refreshToken == "" {
		return "", ErrNoRefreshToken
	}

	rctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	pair, err := c.refresher.Refresh(rctx, refreshToken)
	if err != nil {
		return "", err
	}
	if pair.AccessToken == "" {
		return "", tokens.ErrEmptyToken
	}

	current, err := c.commit(gen, func() error {
		if pair.RefreshToken != "" {
			return c.store.SetTokens(ctx, pair)
		}
		return c.store.SetAccessToken(ctx, pair.AccessToken)
	})
	if !current {
		return "", ErrCoordinatorReset
	}
	if err != nil {
		return "", fmt.Errorf("store refreshed token: %w", err)
	}
	return pair.AccessToken, nil
}
