// Package api exposes the host shell over HTTP: navigating to an application
// mounts it and returns the rendered view, and the registries and shared
// application data can be inspected.
//
//	@title			Enterprise Search Plugin API
//	@version		1.0
//	@description	Mounts the Enterprise Search applications and exposes the feature catalogue and config data state
//
// @license.name	MIT
// @license.url	https://opensource.org/licenses/MIT
//
// @host		localhost:5601
// @BasePath	/
// @securityDefinitions.apikey	EnterpriseSearchAuth
// @in							header
// @name						Authorization
// @description				Forwarded to Enterprise Search when the config data is fetched
package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"entsearch/catalogue"
	"entsearch/config"
	"entsearch/core"
	_ "entsearch/docs"
	"entsearch/shell"

	"github.com/gorilla/mux"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// MountIDHeader carries the id of the mount created by a navigation.
const MountIDHeader = "X-Mount-Id"

// Shell is the part of the host shell served over HTTP.
type Shell interface {
	Navigate(ctx context.Context, path string, params shell.MountParams) (string, error)
	Unmount(mountID string) error
	Applications() []shell.App
}

// CatalogueLister lists catalogue entries.
type CatalogueLister interface {
	Solutions() ([]catalogue.Solution, error)
	Features() ([]catalogue.Feature, error)
}

// InitialData reports the state of the config data bootstrap.
type InitialData interface {
	Host() string
	Initialized() bool
	Data() *core.ApplicationData
}

// API holds the API server
type API struct {
	router    *mux.Router
	serverMu  sync.Mutex
	server    *http.Server
	stopped   bool
	shell     Shell
	catalogue CatalogueLister
	initial   InitialData
	config    *config.Config
	logger    *zap.SugaredLogger
	limiters  *lru.Cache[string, *rate.Limiter]
}

// NewAPI creates a new API server. catalogue may be nil.
func NewAPI(sh Shell, cat CatalogueLister, initial InitialData, cfg *config.Config, logger *zap.SugaredLogger) (*API, error) {
	limiters, err := lru.New[string, *rate.Limiter](cfg.API.RateLimit.MaxClients)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limiter cache: %w", err)
	}

	api := &API{
		router:    mux.NewRouter(),
		shell:     sh,
		catalogue: cat,
		initial:   initial,
		config:    cfg,
		logger:    logger,
		limiters:  limiters,
	}
	api.setupRoutes()
	return api, nil
}

// setupRoutes sets up the API routes
func (a *API) setupRoutes() {
	a.router.Use(a.corsMiddleware)
	a.router.Use(a.rateLimitMiddleware)

	a.router.HandleFunc("/api/applications", a.getApplications).Methods("GET")
	a.router.HandleFunc("/api/catalogue", a.getCatalogue).Methods("GET")
	a.router.HandleFunc("/api/application_data", a.getApplicationData).Methods("GET")
	a.router.HandleFunc("/api/mounts/{id}", a.unmountApplication).Methods("DELETE")
	a.router.HandleFunc("/health", a.healthCheck).Methods("GET")
	a.router.Handle("/metrics", promhttp.Handler())
	a.router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	a.router.PathPrefix("/app/").HandlerFunc(a.mountApplication).Methods("GET")
}

// Handler returns the routed handler with middleware applied.
func (a *API) Handler() http.Handler {
	return a.router
}

// Start starts the API server. It returns http.ErrServerClosed once Stop
// has been called, even if Stop ran first.
func (a *API) Start(addr string) error {
	a.serverMu.Lock()
	if a.stopped {
		a.serverMu.Unlock()
		return http.ErrServerClosed
	}
	a.server = &http.Server{
		Addr:              addr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	server := a.server
	a.serverMu.Unlock()

	return server.ListenAndServe()
}

// Stop stops the API server
func (a *API) Stop(ctx context.Context) error {
	a.serverMu.Lock()
	a.stopped = true
	server := a.server
	a.serverMu.Unlock()

	if server != nil {
		return server.Shutdown(ctx)
	}
	return nil
}
