// Package coordinator makes sure the initial Enterprise Search config data
// has been fetched, best effort, before any application view is shown.
package coordinator

import (
	"context"
	"sync/atomic"
	"time"

	"entsearch/configdata"
	"entsearch/core"
	"entsearch/metrics"
	"entsearch/util"

	"go.uber.org/zap"
)

// Coordinator owns the shared ApplicationData and the "has initialized" flag.
//
// Concurrent EnsureInitialData calls are memory safe but not deduplicated:
// two mounts that both observe the flag unset will both fetch. The flag only
// keeps later mounts from fetching again.
type Coordinator struct {
	host        string
	data        *core.ApplicationData
	initialized atomic.Bool
	logger      *zap.SugaredLogger
}

// New creates a coordinator for the given Enterprise Search host.
// An empty host disables fetching for the coordinator's lifetime.
func New(host string, logger *zap.SugaredLogger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Coordinator{
		host:   host,
		data:   core.NewApplicationData(host),
		logger: logger,
	}
}

// Host returns the configured Enterprise Search host.
func (c *Coordinator) Host() string {
	return c.host
}

// Data returns the shared application data.
func (c *Coordinator) Data() *core.ApplicationData {
	return c.data
}

// Initialized reports whether a fetch has succeeded.
func (c *Coordinator) Initialized() bool {
	return c.initialized.Load()
}

// EnsureInitialData fetches the config data unless there is no host to call
// or a previous fetch already succeeded. Failures only set the error flag on
// the application data; the next call tries again.
func (c *Coordinator) EnsureInitialData(ctx context.Context, getter configdata.Getter) {
	if c.host == "" {
		return // No API to call
	}
	if c.initialized.Load() {
		return // Already made a successful initial call
	}

	start := time.Now()
	result := configdata.Fetch(ctx, getter)
	metrics.ConfigDataFetchDuration.Observe(time.Since(start).Seconds())

	c.apply(result)
}

// apply stores the projection of a fetch result on the shared state.
func (c *Coordinator) apply(result configdata.Result) {
	if !result.OK() {
		c.data.MarkErrorConnecting()
		metrics.ConfigDataFetches.WithLabelValues(metrics.OutcomeFailure).Inc()
		c.logger.Warnw("Failed to fetch Enterprise Search config data, will retry on next mount",
			"host", c.host,
			"error", util.SanitizeError(result.Err))
		return
	}

	c.data.Merge(result.Fields)
	if result.PublicURL != "" {
		c.data.ReplaceExternalURL(core.NewExternalURL(result.PublicURL))
	}
	c.initialized.Store(true)

	metrics.ConfigDataFetches.WithLabelValues(metrics.OutcomeSuccess).Inc()
	metrics.ConfigDataInitialized.Set(1)
	c.logger.Infow("Enterprise Search config data loaded",
		"host", c.host,
		"external_url", c.data.ExternalURL().EnterpriseSearchURL(),
		"fields", len(result.Fields))
}
