package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/siteadmin/internal/client/models"
	"github.com/dmitrijs2005/siteadmin/internal/client/tokens"
	"github.com/dmitrijs2005/siteadmin/internal/client/transport"
)

// Login exchanges credentials for a token pair. The pair is returned, not
// stored; storing it is the caller's decision.
func (c *APIClient) Login(ctx context.Context, creds models.Credentials) (tokens.Pair, error) {
	return c.authenticate(ctx, pathAuthLogin, creds)
}

func (c *APIClient) Register(ctx context.Context, r models.Registration) (tokens.Pair, error) {
	return c.authenticate(ctx, pathAuthRegister, r)
}

// GoogleLogin trades a Google ID token for a token pair.
func (c *APIClient) GoogleLogin(ctx context.Context, idToken string) (tokens.Pair, error) {
	return c.authenticate(ctx, pathAuthGoogle, map[string]string{"token": idToken})
}

// Logout tells the backend to drop the session and releases any caller
// still queued behind a refresh. It never triggers a refresh itself.
func (c *APIClient) Logout(ctx context.Context) error {
	defer c.coord.Reset()

	resp, err := c.send(ctx, transport.NewRequest(http.MethodPost, pathAuthLogout))
	if err != nil {
		return err
	}
	return decode(resp, nil)
}

func (c *APIClient) authenticate(ctx context.Context, path string, body any) (tokens.Pair, error) {
	req, err := transport.NewJSONRequest(http.MethodPost, path, body)
	if err != nil {
		return tokens.Pair{}, err
	}
	resp, err := c.send(ctx, req)
	if err != nil {
		return tokens.Pair{}, err
	}

	var tr models.TokenResponse
	if err := decode(resp, &tr); err != nil {
		return tokens.Pair{}, err
	}
	if tr.AccessToken == "" {
		return tokens.Pair{}, fmt.Errorf("%w: %s returned no access token", ErrUnexpectedResponse, path)
	}
	return tokens.Pair{AccessToken: tr.AccessToken, RefreshToken: tr.RefreshToken}, nil
}
