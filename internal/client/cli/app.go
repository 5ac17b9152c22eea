package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/dmitrijs2005/siteadmin/internal/client/client"
	"github.com/dmitrijs2005/siteadmin/internal/client/config"
	"github.com/dmitrijs2005/siteadmin/internal/client/services"
	"github.com/dmitrijs2005/siteadmin/internal/client/transport"
	"github.com/dmitrijs2005/siteadmin/internal/logging"
)

type App struct {
	config  *config.Config
	auth    services.AuthService
	content services.ContentService
	log     logging.Logger

	reader *bufio.Reader
	out    io.Writer

	signedIn atomic.Bool
	email    string

	closers []func() error
}

// NewApp builds the token store, API client and services described by c.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	app := &App{config: c, log: log, reader: bufio.NewReader(os.Stdin), out: os.Stdout}

	repo, closeRepo, err := openRepository(ctx, c)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, closeRepo)

	store, err := openTokenStore(ctx, c, repo)
	if err != nil {
		app.Close()
		return nil, err
	}

	tr, err := transport.NewHTTPTransport(c.APIBaseURL, c.RequestTimeout, log)
	if err != nil {
		app.Close()
		return nil, err
	}

	api := client.New(tr, store, app,
		client.WithRefreshTimeout(c.RefreshTimeout),
		client.WithLogger(log),
	)
	app.closers = append(app.closers, api.Close)

	app.auth = services.NewAuthService(api, store, log)
	app.content = services.NewContentService(api)
	return app, nil
}

// Close releases the API client and the token store, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// RedirectToSignIn is called by the API client when the session could not
// be refreshed. The stored tokens are already gone; the App only has to
// return to the signed-out prompt.
func (a *App) RedirectToSignIn(ctx context.Context, cause error) {
	if a.signedIn.Swap(false) {
		a.log.Warn(ctx, "session expired", "error", cause)
		fmt.Fprintln(a.out, "Your session has expired. Please log in again.")
	}
}

func (a *App) isLoggedIn() bool {
	return a.signedIn.Load()
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return "(signed out)"
	}
	if a.email != "" {
		return fmt.Sprintf("(%s)", a.email)
	}
	return "(signed in)"
}

// Run restores the session from the token store and starts the REPL. It
// returns when the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	if s, err := a.auth.Status(ctx); err != nil {
		a.log.Error(ctx, "failed to read session", "error", err)
	} else {
		a.signedIn.Store(s.SignedIn)
	}

	fmt.Fprintln(a.out, "Welcome to SiteAdmin CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}
