package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"entsearch/config"
	"entsearch/util/goroutine"
	"entsearch/views"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newAppConfig(host string) *config.Config {
	cfg := &config.Config{}
	cfg.EnterpriseSearch.Host = host
	cfg.API.Port = 0
	cfg.API.RateLimit.RequestsPerSecond = 100
	cfg.API.RateLimit.Burst = 100
	cfg.API.RateLimit.MaxClients = 8
	cfg.Catalogue.Enabled = true
	cfg.Catalogue.Backend = config.CatalogueBackendMemory
	cfg.Catalogue.Redis.Prefix = "feature_catalogue"
	cfg.Logging.Level = "debug"
	return cfg
}

func newEnterpriseSearch(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"publicUrl":"https://pub.example","readOnlyMode":false}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", path, nil))
	return rr
}

func TestNewAppFromConfig_MemoryCatalogue(t *testing.T) {
	var hits atomic.Int32
	es := newEnterpriseSearch(t, &hits)

	app, err := NewAppFromConfig(context.Background(), newAppConfig(es.URL), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer app.Shutdown()

	assert.Len(t, app.Shell.Applications(), 3)
	solutions, err := app.Catalogue.Catalogue.Solutions()
	require.NoError(t, err)
	assert.Len(t, solutions, 1)
	assert.Zero(t, hits.Load(), "nothing is fetched before the first mount")

	h := app.APIServer.Handler()
	rr := get(t, h, "/app/enterprise_search/overview")
	require.Equal(t, http.StatusOK, rr.Code)

	var page views.Page
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	assert.Equal(t, views.StateReady, page.State)
	assert.Equal(t, "https://pub.example", page.ExternalURL)
	assert.Equal(t, "Enterprise Search", app.Shell.Chrome().Current())

	rr = get(t, h, "/app/enterprise_search/app_search")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int32(1), hits.Load())
	assert.True(t, app.Coordinator.Initialized())
}

func TestNewAppFromConfig_NoHost(t *testing.T) {
	cfg := newAppConfig("")
	cfg.Catalogue.Enabled = false

	app, err := NewAppFromConfig(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer app.Shutdown()

	assert.Nil(t, app.Catalogue.Catalogue)

	rr := get(t, app.APIServer.Handler(), "/app/enterprise_search/workplace_search")
	require.Equal(t, http.StatusOK, rr.Code)
	var page views.Page
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	assert.Equal(t, views.StateSetupGuide, page.State)

	rr = get(t, app.APIServer.Handler(), "/api/catalogue")
	assert.JSONEq(t, `{"solutions":[],"features":[]}`, rr.Body.String())
}

func TestNewAppFromConfig_RedisCatalogue(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := newAppConfig("")
	cfg.Catalogue.Backend = config.CatalogueBackendRedis
	cfg.Catalogue.Redis.Addr = mr.Addr()

	app, err := NewAppFromConfig(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer app.Shutdown()

	keys := mr.Keys()
	assert.Contains(t, keys, "feature_catalogue:solutions")
	assert.Contains(t, keys, "feature_catalogue:features")
	fields, err := mr.HKeys("feature_catalogue:features")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"appSearch", "workplaceSearch"}, fields)
}

func TestNewAppFromConfig_RedisCatalogueSurvivesRestart(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := newAppConfig("")
	cfg.Catalogue.Backend = config.CatalogueBackendRedis
	cfg.Catalogue.Redis.Addr = mr.Addr()

	first, err := NewAppFromConfig(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	first.Shutdown()

	// a second replica may still be running against the same Redis
	replica, err := NewAppFromConfig(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer replica.Shutdown()

	restarted, err := NewAppFromConfig(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer restarted.Shutdown()

	solutions, err := restarted.Catalogue.Catalogue.Solutions()
	require.NoError(t, err)
	assert.Len(t, solutions, 1)
	features, err := restarted.Catalogue.Catalogue.Features()
	require.NoError(t, err)
	assert.Len(t, features, 2)
}

func TestNewAppFromConfig_RedisUnavailable(t *testing.T) {
	saved := retryDelays
	retryDelays = nil
	defer func() { retryDelays = saved }()

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := newAppConfig("")
	cfg.Catalogue.Backend = config.CatalogueBackendRedis
	cfg.Catalogue.Redis.Addr = addr

	_, err := NewAppFromConfig(context.Background(), cfg, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestApp_StartAndShutdown(t *testing.T) {
	goroutine.AssertNoLeaks(t)

	app, err := NewAppFromConfig(context.Background(), newAppConfig(""), zaptest.NewLogger(t))
	require.NoError(t, err)

	require.NoError(t, app.Start(context.Background()))
	app.Shutdown()
}

func TestNewAppFromConfig_MountsWithoutUnmountAreBounded(t *testing.T) {
	cfg := newAppConfig("")
	cfg.API.MaxMounts = 5

	app, err := NewAppFromConfig(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer app.Shutdown()

	h := app.APIServer.Handler()
	for i := 0; i < 40; i++ {
		rr := get(t, h, "/app/enterprise_search/overview")
		require.Equal(t, http.StatusOK, rr.Code)
	}

	assert.Equal(t, 5, app.Shell.ActiveMounts())
}
