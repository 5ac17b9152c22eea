package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/siteadmin/internal/client/client"
	"github.com/dmitrijs2005/siteadmin/internal/client/config"
	"github.com/dmitrijs2005/siteadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/siteadmin/internal/client/tokens"
	"github.com/redis/go-redis/v9"
)

// openRepository returns the metadata repository selected by
// cfg.TokenStore together with a function that releases it.
func openRepository(ctx context.Context, cfg *config.Config) (metadata.Repository, func() error, error) {
	switch cfg.TokenStore {
	case config.StoreMemory:
		return metadata.NewMemoryRepository(), func() error { return nil }, nil

	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return metadata.NewRedisRepository(rdb, metadata.DefaultRedisPrefix), rdb.Close, nil

	case config.StoreSQLite:
		db, err := client.InitDatabase(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, nil, fmt.Errorf("error initializing database: %w", err)
		}
		return metadata.NewSQLiteRepository(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown token store %q", config.ErrInvalidConfig, cfg.TokenStore)
	}
}

// openTokenStore wraps repo in a token store, sealed when a passphrase is
// configured.
func openTokenStore(ctx context.Context, cfg *config.Config, repo metadata.Repository) (tokens.Store, error) {
	if cfg.TokenPassphrase == "" {
		return tokens.NewStore(repo), nil
	}
	return tokens.NewSealedStore(ctx, repo, []byte(cfg.TokenPassphrase))
}
