package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"entsearch/api"
	"entsearch/catalogue"
	"entsearch/config"
	"entsearch/configdata"
	"entsearch/coordinator"
	"entsearch/shell"
	"entsearch/util/goroutine"
	"entsearch/views"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// App represents the Enterprise Search plugin service with all its components.
type App struct {
	// Configuration
	Config *config.Config
	Logger *zap.Logger
	Sugar  *zap.SugaredLogger

	// Plugin
	Coordinator *coordinator.Coordinator
	Client      *configdata.Client
	Shell       *shell.Shell
	Views       *views.Registry
	Catalogue   *CatalogueComponents

	// Services
	APIServer *api.API

	// Lifecycle
	serviceWg *sync.WaitGroup
}

// NewApp creates a new application instance and initializes all components.
// An empty configPath searches the default config locations.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger, sugar, err := InitLogger(level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	sugar.Info("Enterprise Search plugin starting...")

	cfg, err := InitConfig(configPath, sugar)
	if err != nil {
		return nil, err
	}
	level.SetLevel(cfg.GetLogLevel())

	return NewAppFromConfig(ctx, cfg, logger)
}

// NewAppFromConfig wires the application from an already loaded configuration.
func NewAppFromConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	sugar := logger.Sugar()
	app := &App{
		Config:    cfg,
		Logger:    logger,
		Sugar:     sugar,
		serviceWg: &sync.WaitGroup{},
	}

	app.Coordinator = coordinator.New(cfg.EnterpriseSearch.Host, sugar)
	app.Client = configdata.NewClient(cfg.GetBackendURL(), cfg.EnterpriseSearch.RequestTimeout)
	app.Shell = shell.NewWithLimit(sugar, cfg.API.MaxMounts)
	app.Views = views.NewDefaultRegistry()

	catalogueComponents, err := InitCatalogue(ctx, cfg, sugar)
	if err != nil {
		return nil, err
	}
	app.Catalogue = catalogueComponents

	// A disabled catalogue must reach SetupPlugin as a nil interface
	var registry catalogue.Registry
	if catalogueComponents.Catalogue != nil {
		registry = catalogueComponents.Catalogue
	}

	client := app.Client
	err = SetupPlugin(app.Shell, registry, PluginDeps{
		Host:        cfg.EnterpriseSearch.Host,
		Coordinator: app.Coordinator,
		Views:       app.Views,
		Clients: func(params shell.MountParams) configdata.Getter {
			return client.WithAuthorization(params.Authorization)
		},
		Logger: sugar,
	})
	if err != nil {
		_ = catalogueComponents.Close()
		return nil, fmt.Errorf("failed to set up plugin: %w", err)
	}
	sugar.Infow("Enterprise Search applications registered",
		"applications", len(app.Shell.Applications()),
		"catalogue", registry != nil)

	app.APIServer, err = api.NewAPI(app.Shell, catalogueComponents.Catalogue, app.Coordinator, cfg, sugar)
	if err != nil {
		_ = catalogueComponents.Close()
		return nil, fmt.Errorf("failed to create API server: %w", err)
	}

	return app, nil
}

// Start starts all application services.
func (a *App) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", a.Config.API.Port)
	goroutine.Go(a.serviceWg, "api-server", a.Sugar, func() {
		a.Sugar.Infof("API server started on %s", addr)
		if err := a.APIServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Sugar.Errorf("API server error: %v", err)
		}
	})
	return nil
}

// WaitForShutdown blocks until a shutdown signal is received.
func (a *App) WaitForShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}

// Shutdown gracefully shuts down all components.
func (a *App) Shutdown() {
	a.Sugar.Info("Shutting down...")

	// Phase 1 - Stop accepting requests
	a.Sugar.Info("Phase 1: Stopping API server...")
	if a.APIServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.APIServer.Stop(ctx); err != nil {
			a.Sugar.Errorw("Failed to stop API server", "error", err)
		}
	}

	// Phase 2 - Tear down mounted applications
	a.Sugar.Info("Phase 2: Unmounting applications...")
	if a.Shell != nil {
		a.Shell.UnmountAll()
	}

	// Phase 3 - Wait for service goroutines
	a.Sugar.Info("Phase 3: Waiting for service goroutines to complete...")
	done := make(chan struct{})
	go func() {
		a.serviceWg.Wait()
		close(done)
	}()
	select {
	case <-done:
		a.Sugar.Info("All service goroutines stopped successfully")
	case <-time.After(10 * time.Second):
		a.Sugar.Warn("Service goroutine shutdown timed out")
	}

	// Phase 4 - Release connections
	a.Sugar.Info("Phase 4: Closing connections...")
	if a.Client != nil {
		_ = a.Client.Close()
	}
	if a.Catalogue != nil && a.Catalogue.Close != nil {
		if err := a.Catalogue.Close(); err != nil {
			a.Sugar.Errorw("Failed to close feature catalogue", "error", err)
		}
	}

	a.Sugar.Info("Shutdown complete")
	_ = a.Logger.Sync()
}
