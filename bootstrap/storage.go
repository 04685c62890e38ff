package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"entsearch/catalogue"
	"entsearch/config"

	"go.uber.org/zap"
)

// CatalogueComponents holds the feature catalogue and how to release it.
// Catalogue is nil when the catalogue is disabled.
type CatalogueComponents struct {
	Catalogue catalogue.Catalogue
	Close     func() error
}

// retryDelays between Redis connection attempts.
var retryDelays = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

// InitCatalogue creates the configured feature catalogue.
func InitCatalogue(ctx context.Context, cfg *config.Config, sugar *zap.SugaredLogger) (*CatalogueComponents, error) {
	noop := func() error { return nil }

	if !cfg.Catalogue.Enabled {
		sugar.Info("Feature catalogue disabled by configuration")
		return &CatalogueComponents{Close: noop}, nil
	}

	if cfg.Catalogue.Backend != config.CatalogueBackendRedis {
		sugar.Info("Using in-memory feature catalogue")
		return &CatalogueComponents{Catalogue: catalogue.NewMemory(), Close: noop}, nil
	}

	redisCfg := cfg.Catalogue.Redis
	store := catalogue.NewRedis(catalogue.RedisOptions{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
		PoolSize: redisCfg.PoolSize,
		Prefix:   redisCfg.Prefix,
	}, sugar)

	if err := pingWithRetry(ctx, store, sugar); err != nil {
		_ = store.Close()
		errMsg := ClassifyConnectionError(err, ServiceRedis, redisCfg.Addr)
		fmt.Fprintf(os.Stderr, "\n========================================\n")
		fmt.Fprintf(os.Stderr, "FATAL: Feature Catalogue Connection Failed\n")
		fmt.Fprintf(os.Stderr, "========================================\n")
		fmt.Fprintf(os.Stderr, "%s\n", errMsg)
		fmt.Fprintf(os.Stderr, "========================================\n\n")
		return nil, fmt.Errorf("failed to connect to Redis after %d attempts: %w", len(retryDelays)+1, err)
	}

	sugar.Infow("Connected to Redis feature catalogue",
		"addr", redisCfg.Addr,
		"prefix", redisCfg.Prefix)
	return &CatalogueComponents{Catalogue: store, Close: store.Close}, nil
}

type pinger interface {
	Ping(ctx context.Context) error
}

func pingWithRetry(ctx context.Context, p pinger, sugar *zap.SugaredLogger) error {
	var lastErr error
	for attempt := 0; attempt <= len(retryDelays); attempt++ {
		if attempt > 0 {
			delay := retryDelays[attempt-1]
			sugar.Infow("Retrying Redis connection",
				"attempt", attempt,
				"max_retries", len(retryDelays),
				"delay", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if lastErr = p.Ping(ctx); lastErr == nil {
			return nil
		}
		sugar.Warnw("Redis connection attempt failed",
			"attempt", attempt+1,
			"error", lastErr)
	}
	return lastErr
}
