package devserver

import (
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/siteadmin/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the standard claims plus the user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type refreshEntry struct {
	userID  string
	expires time.Time
}

// Issuer mints access tokens and keeps the set of live refresh tokens.
// A refresh token is single use: Rotate deletes it and issues a new pair.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time

	mu      sync.Mutex
	refresh map[string]refreshEntry
}

func NewIssuer(secret []byte, accessTTL, refreshTTL time.Duration, now func() time.Time) *Issuer {
	if now == nil {
		now = time.Now
	}
	return &Issuer{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        now,
		refresh:    make(map[string]refreshEntry),
	}
}

func (i *Issuer) Issue(userID string) (TokenPair, error) {
	access, err := i.accessToken(userID)
	if err != nil {
		return TokenPair{}, err
	}
	refresh := uuid.NewString()

	i.mu.Lock()
	i.refresh[refresh] = refreshEntry{userID: userID, expires: i.now().Add(i.refreshTTL)}
	i.mu.Unlock()

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Rotate trades a live refresh token for a new pair. Unknown tokens yield
// common.ErrInvalidToken, expired ones common.ErrRefreshTokenExpired; both
// are removed.
func (i *Issuer) Rotate(refreshToken string) (TokenPair, error) {
	i.mu.Lock()
	entry, ok := i.refresh[refreshToken]
	delete(i.refresh, refreshToken)
	i.mu.Unlock()

	if !ok {
		return TokenPair{}, common.ErrInvalidToken
	}
	if entry.expires.Before(i.now()) {
		return TokenPair{}, common.ErrRefreshTokenExpired
	}
	return i.Issue(entry.userID)
}

// Revoke drops every refresh token belonging to userID.
func (i *Issuer) Revoke(userID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for tok, e := range i.refresh {
		if e.userID == userID {
			delete(i.refresh, tok)
		}
	}
}

// Verify checks the signature and expiry of an access token and returns
// its user id.
func (i *Issuer) Verify(accessToken string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(accessToken, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}
	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}
	return claims.UserID, nil
}

func (i *Issuer) accessToken(userID string) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.accessTTL)),
		},
		UserID: userID,
	})
	return token.SignedString(i.secret)
}
