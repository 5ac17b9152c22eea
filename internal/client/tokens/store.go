// Package tokens is the client's credential store: the access/refresh token
// pair persisted in a metadata repository.
//
// The refresh coordinator is the only writer during normal operation
// (SetAccessToken on refresh, Clear on terminal failure); login and logout
// write through SetTokens and Clear. Everything else only reads the access
// token.
package tokens

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/siteadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/siteadmin/internal/common"
	"github.com/dmitrijs2005/siteadmin/internal/cryptox"
)

const saltKey = "token_salt"

var ErrEmptyToken = errors.New("empty token")

// Pair is the credential pair issued at login.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

type Store interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	SetAccessToken(ctx context.Context, token string) error
	SetTokens(ctx context.Context, pair Pair) error
	Clear(ctx context.Context) error
}

// RepositoryStore implements Store on top of a metadata.Repository. When a
// key is configured, values are sealed with cryptox before they are written.
type RepositoryStore struct {
	repo metadata.Repository
	key  []byte
}

func NewStore(repo metadata.Repository) *RepositoryStore {
	return &RepositoryStore{repo: repo}
}

// NewSealedStore returns a store whose values are encrypted with a key
// derived from passphrase. The salt is created on first use and kept in the
// repository next to the tokens; Clear leaves it in place.
func NewSealedStore(ctx context.Context, repo metadata.Repository, passphrase []byte) (*RepositoryStore, error) {
	salt, err := repo.Get(ctx, saltKey)
	if err != nil {
		return nil, fmt.Errorf("read token salt: %w", err)
	}
	if salt == nil {
		salt = common.GenerateRandByteArray(cryptox.SaltSize)
		if err := repo.Set(ctx, saltKey, salt); err != nil {
			return nil, fmt.Errorf("save token salt: %w", err)
		}
	}
	return &RepositoryStore{repo: repo, key: cryptox.DeriveKey(passphrase, salt)}, nil
}

func (s *RepositoryStore) AccessToken(ctx context.Context) (string, error) {
	return s.get(ctx, common.AccessTokenKey)
}

func (s *RepositoryStore) RefreshToken(ctx context.Context) (string, error) {
	return s.get(ctx, common.RefreshTokenKey)
}

func (s *RepositoryStore) SetAccessToken(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	v, err := s.seal(token)
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, common.AccessTokenKey, v)
}

// SetTokens replaces both tokens in one repository write.
func (s *RepositoryStore) SetTokens(ctx context.Context, pair Pair) error {
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return ErrEmptyToken
	}
	access, err := s.seal(pair.AccessToken)
	if err != nil {
		return err
	}
	refresh, err := s.seal(pair.RefreshToken)
	if err != nil {
		return err
	}
	return s.repo.SetMany(ctx, map[string][]byte{
		common.AccessTokenKey:  access,
		common.RefreshTokenKey: refresh,
	})
}

func (s *RepositoryStore) Clear(ctx context.Context) error {
	return s.repo.DeleteMany(ctx, common.AccessTokenKey, common.RefreshTokenKey)
}

func (s *RepositoryStore) get(ctx context.Context, key string) (string, error) {
	v, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	if s.key == nil {
		return string(v), nil
	}
	plain, err := cryptox.Open(v, s.key)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", key, err)
	}
	return string(plain), nil
}

func (s *RepositoryStore) seal(token string) ([]byte, error) {
	if s.key == nil {
		return []byte(token), nil
	}
	return cryptox.Seal([]byte(token), s.key)
}
