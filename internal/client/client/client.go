package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/siteadmin/internal/client/refresh"
	"github.com/dmitrijs2005/siteadmin/internal/client/tokens"
	"github.com/dmitrijs2005/siteadmin/internal/client/transport"
	"github.com/dmitrijs2005/siteadmin/internal/common"
	"github.com/dmitrijs2005/siteadmin/internal/logging"
)

type APIClient struct {
	transport transport.Transport
	store     tokens.Store
	coord     *refresh.Coordinator
	log       logging.Logger
}

type options struct {
	refreshTimeout time.Duration
	log            logging.Logger
}

type Option func(*options)

// WithRefreshTimeout bounds the refresh call. Zero keeps
// refresh.DefaultTimeout.
func WithRefreshTimeout(d time.Duration) Option {
	return func(o *options) { o.refreshTimeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

// New wires the interceptors around t. redirect is told when the session
// cannot be recovered.
func New(t transport.Transport, store tokens.Store, redirect refresh.Redirector, opts ...Option) *APIClient {
	o := options{log: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	c := &APIClient{transport: t, store: store, log: o.log}
	c.coord = refresh.NewCoordinator(store, NewTokenRefresher(t), redirect,
		refresh.WithTimeout(o.refreshTimeout),
		refresh.WithLogger(o.log),
	)
	return c
}

func (c *APIClient) Store() tokens.Store {
	return c.store
}

func (c *APIClient) Coordinator() *refresh.Coordinator {
	return c.coord
}

// Close releases any caller still waiting on a refresh.
func (c *APIClient) Close() error {
	c.coord.Reset()
	return nil
}

// call is one logical request. retried is set on the copy that is replayed
// after a refresh; a 401 on that copy is final.
type call struct {
	req     *transport.Request
	retried bool
}

func (cl *call) retry() *call {
	return &call{req: cl.req, retried: true}
}

// Do sends req with the stored access token, recovering from an expired
// token at most once.
func (c *APIClient) Do(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	token, err := c.store.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLocalDataNotAvailable, err)
	}

	resp, err := c.roundTrip(ctx, &call{req: req}, token)
	return resp, mapError(err)
}

// send bypasses the response interceptor. Used for the auth endpoints,
// where a 401 means bad credentials rather than an expired token.
func (c *APIClient) send(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	token, err := c.store.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLocalDataNotAvailable, err)
	}
	resp, err := c.transport.Do(ctx, authorize(req, token))
	return resp, mapError(err)
}

func (c *APIClient) roundTrip(ctx context.Context, cl *call, token string) (*transport.Response, error) {
	resp, err := c.transport.Do(ctx, authorize(cl.req, token))
	if err == nil || cl.retried || !transport.IsStatus(err, http.StatusUnauthorized) {
		return resp, err
	}

	c.log.Debug(ctx, "access token rejected", "method", cl.req.Method, "path", cl.req.Path)
	return c.coord.Recover(ctx, token, func(ctx context.Context, accessToken string) (*transport.Response, error) {
		return c.roundTrip(ctx, cl.retry(), accessToken)
	})
}

// authorize is the request interceptor. It works on a clone so a request
// can be replayed with a different token.
func authorize(req *transport.Request, token string) *transport.Request {
	out := req.Clone()
	if token != "" {
		out.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}
	if out.IsMultipart() {
		out.Header.Del(common.ContentTypeHeaderName)
	} else if len(out.Body) > 0 && out.Header.Get(common.ContentTypeHeaderName) == "" {
		out.Header.Set(common.ContentTypeHeaderName, common.JSONContentType)
	}
	return out
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, refresh.ErrRefreshFailed) || errors.Is(err, refresh.ErrCoordinatorReset) {
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var se *transport.StatusError
	if !errors.As(err, &se) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	switch se.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	default:
		return err
	}
}
