package catalogue

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"entsearch/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultOpTimeout = 5 * time.Second

// RedisOptions configures the Redis catalogue.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
	// Prefix namespaces the catalogue hashes.
	Prefix string
	// OpTimeout bounds each Redis round trip. Zero means five seconds.
	OpTimeout time.Duration
}

// Redis stores the catalogue in two Redis hashes keyed by entry id, so a
// landing page service in another process can read it. Values are JSON.
//
// The hashes outlive the process. Registering an id that is already stored
// overwrites it, so restarts and replicas sharing one Redis register the
// same entries without error.
type Redis struct {
	client    *redis.Client
	prefix    string
	opTimeout time.Duration
	logger    *zap.SugaredLogger
}

// NewRedis creates a Redis backed catalogue.
func NewRedis(opts RedisOptions, logger *zap.SugaredLogger) *Redis {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	timeout := opts.OpTimeout
	if timeout <= 0 {
		timeout = defaultOpTimeout
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
		PoolSize: opts.PoolSize,
	})

	return &Redis{
		client:    client,
		prefix:    opts.Prefix,
		opTimeout: timeout,
		logger:    logger,
	}
}

// Ping tests the Redis connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}

// SolutionsKey is the hash holding solutions.
func (r *Redis) SolutionsKey() string {
	return r.prefix + ":solutions"
}

// FeaturesKey is the hash holding features.
func (r *Redis) FeaturesKey() string {
	return r.prefix + ":features"
}

// RegisterSolution adds or replaces a solution.
func (r *Redis) RegisterSolution(solution Solution) error {
	if err := validateSolution(solution); err != nil {
		return err
	}
	return r.put(KindSolution, r.SolutionsKey(), solution.ID, solution)
}

// Register adds or replaces a feature.
func (r *Redis) Register(feature Feature) error {
	if err := validateFeature(feature); err != nil {
		return err
	}
	return r.put(KindFeature, r.FeaturesKey(), feature.ID, feature)
}

func (r *Redis) put(kind, key, id string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s %s: %w", kind, id, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.opTimeout)
	defer cancel()

	added, err := r.client.HSet(ctx, key, id, data).Result()
	if err != nil {
		r.logger.Errorw("Failed to store catalogue entry",
			"kind", kind,
			"id", id,
			"error", err)
		return fmt.Errorf("failed to store %s %s: %w", kind, id, err)
	}
	if added == 0 {
		r.logger.Debugw("Replaced existing catalogue entry",
			"kind", kind,
			"id", id)
	}

	metrics.CatalogueRegistrations.WithLabelValues(kind).Inc()
	return nil
}

// Solutions returns the stored solutions ordered by id.
func (r *Redis) Solutions() ([]Solution, error) {
	var out []Solution
	err := r.list(r.SolutionsKey(), func(raw string) error {
		var s Solution
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return err
		}
		out = append(out, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Features returns the stored features ordered by id.
func (r *Redis) Features() ([]Feature, error) {
	var out []Feature
	err := r.list(r.FeaturesKey(), func(raw string) error {
		var f Feature
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			return err
		}
		out = append(out, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Redis) list(key string, decode func(raw string) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.opTimeout)
	defer cancel()

	values, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}

	for id, raw := range values {
		if err := decode(raw); err != nil {
			r.logger.Warnw("Skipping undecodable catalogue entry",
				"key", key,
				"id", id,
				"error", err)
		}
	}
	return nil
}
