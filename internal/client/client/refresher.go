package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/siteadmin/internal/client/models"
	"github.com/dmitrijs2005/siteadmin/internal/client/tokens"
	"github.com/dmitrijs2005/siteadmin/internal/client/transport"
	"github.com/dmitrijs2005/siteadmin/internal/common"
)

// TokenRefresher calls auth/refresh straight on the transport, so the
// refresh request never goes through the response interceptor.
type TokenRefresher struct {
	transport transport.Transport
}

func NewTokenRefresher(t transport.Transport) *TokenRefresher {
	return &TokenRefresher{transport: t}
}

func (r *TokenRefresher) Refresh(ctx context.Context, refreshToken string) (tokens.Pair, error) {
	req, err := transport.NewJSONRequest(http.MethodPost, pathAuthRefresh, models.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return tokens.Pair{}, err
	}
	req.Header.Set(common.ContentTypeHeaderName, common.JSONContentType)

	resp, err := r.transport.Do(ctx, req)
	if err != nil {
		return tokens.Pair{}, err
	}

	var tr models.TokenResponse
	if err := decode(resp, &tr); err != nil {
		return tokens.Pair{}, err
	}
	return tokens.Pair{AccessToken: tr.AccessToken, RefreshToken: tr.RefreshToken}, nil
}
