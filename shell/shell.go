// Package shell is the host application shell: it keeps the registry of
// applications, owns the document title and tracks mounted applications
// until they are torn down.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"entsearch/core"
	"entsearch/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// DefaultMaxMounts bounds the mount table when no limit is configured.
const DefaultMaxMounts = 1024

// Errors
var (
	ErrInvalidApp    = errors.New("invalid application descriptor")
	ErrDuplicateApp  = errors.New("application already registered")
	ErrUnknownApp    = errors.New("unknown application")
	ErrNoRoute       = errors.New("no application matches route")
	ErrMountNotFound = errors.New("mount not found")
)

// MountParams is handed to an application when the host mounts it.
type MountParams struct {
	MountID     string
	AppBasePath string
	// Path is the part of the navigated path below AppBasePath.
	Path string
	// Element receives the rendered application.
	Element io.Writer
	// Authorization carries the navigating user's credentials.
	Authorization string
}

// Teardown unmounts an application.
type Teardown func()

// MountFunc renders an application into params.Element.
type MountFunc func(ctx context.Context, params MountParams) (Teardown, error)

// App is an application registration.
type App struct {
	ID       string           `json:"id" validate:"required"`
	Title    string           `json:"title" validate:"required"`
	AppRoute string           `json:"appRoute" validate:"required,startswith=/"`
	Category core.AppCategory `json:"category"`
	Icon     string           `json:"icon,omitempty"`
	Mount    MountFunc        `json:"-" validate:"required"`
}

// Shell is the in-process host shell.
//
// Mounts are kept in an LRU of bounded size. When the table is full the
// least recently created mount is torn down to make room, so clients that
// never unmount cannot grow it.
type Shell struct {
	mu        sync.RWMutex
	apps      []App
	byID      map[string]int
	mounts    *lru.Cache[string, Teardown]
	maxMounts int
	chrome    *Chrome
	validate  *validator.Validate
	logger    *zap.SugaredLogger
}

// New creates an empty shell with DefaultMaxMounts.
func New(logger *zap.SugaredLogger) *Shell {
	return NewWithLimit(logger, DefaultMaxMounts)
}

// NewWithLimit creates an empty shell holding at most maxMounts mounts.
// A non-positive limit means DefaultMaxMounts.
func NewWithLimit(logger *zap.SugaredLogger, maxMounts int) *Shell {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if maxMounts <= 0 {
		maxMounts = DefaultMaxMounts
	}

	s := &Shell{
		byID:      make(map[string]int),
		maxMounts: maxMounts,
		chrome:    &Chrome{},
		validate:  validator.New(),
		logger:    logger,
	}
	// size is positive, so creation cannot fail
	s.mounts, _ = lru.NewWithEvict[string, Teardown](maxMounts, s.release)
	return s
}

// release runs a teardown leaving the mount table, whether it was removed
// by Unmount, UnmountAll or evicted.
func (s *Shell) release(mountID string, teardown Teardown) {
	teardown()
	metrics.ActiveMounts.Dec()
	s.logger.Debugw("Application unmounted",
		"mount_id", mountID)
}

// DocTitle returns the document title of the shell chrome.
func (s *Shell) DocTitle() DocTitle {
	return s.chrome
}

// Chrome returns the shell chrome.
func (s *Shell) Chrome() *Chrome {
	return s.chrome
}

// Register adds an application. Mounting is deferred until navigation.
func (s *Shell) Register(app App) error {
	if err := s.validate.Struct(app); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidApp, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[app.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateApp, app.ID)
	}
	s.byID[app.ID] = len(s.apps)
	s.apps = append(s.apps, app)

	s.logger.Infow("Application registered",
		"id", app.ID,
		"route", app.AppRoute)
	return nil
}

// Applications returns the registered applications in registration order.
func (s *Shell) Applications() []App {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]App, len(s.apps))
	copy(out, s.apps)
	return out
}

// App looks up an application by id.
func (s *Shell) App(id string) (App, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return App{}, false
	}
	return s.apps[i], true
}

// Resolve finds the application owning path, preferring the longest route.
// It returns the application and the remainder of the path below its route.
func (s *Shell) Resolve(path string) (App, string, error) {
	s.mu.RLock()
	candidates := make([]App, len(s.apps))
	copy(candidates, s.apps)
	s.mu.RUnlock()

	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].AppRoute) > len(candidates[j].AppRoute)
	})

	for _, app := range candidates {
		route := strings.TrimRight(app.AppRoute, "/")
		if path == route {
			return app, "", nil
		}
		if strings.HasPrefix(path, route+"/") {
			return app, strings.TrimPrefix(path, route), nil
		}
	}
	return App{}, "", fmt.Errorf("%w: %s", ErrNoRoute, path)
}

// Navigate resolves path and mounts the owning application.
func (s *Shell) Navigate(ctx context.Context, path string, params MountParams) (string, error) {
	app, sub, err := s.Resolve(path)
	if err != nil {
		return "", err
	}
	params.Path = sub
	return s.Mount(ctx, app.ID, params)
}

// Mount invokes the application's mount callback and records its teardown
// under a new mount id.
func (s *Shell) Mount(ctx context.Context, appID string, params MountParams) (string, error) {
	app, ok := s.App(appID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownApp, appID)
	}

	if params.MountID == "" {
		params.MountID = uuid.New().String()
	}
	params.AppBasePath = app.AppRoute
	if params.Element == nil {
		params.Element = io.Discard
	}

	teardown, err := app.Mount(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to mount %s: %w", appID, err)
	}
	if teardown == nil {
		teardown = func() {}
	}

	metrics.ApplicationMounts.WithLabelValues(appID).Inc()
	metrics.ActiveMounts.Inc()

	// A reused mount id tears down the mount it replaces
	s.mounts.Remove(params.MountID)
	if s.mounts.Add(params.MountID, teardown) {
		s.logger.Warnw("Mount table full, evicted oldest mount",
			"limit", s.MaxMounts())
	}
	s.logger.Debugw("Application mounted",
		"id", appID,
		"mount_id", params.MountID,
		"path", params.Path)

	return params.MountID, nil
}

// Unmount runs and forgets the teardown registered under mountID.
func (s *Shell) Unmount(mountID string) error {
	if !s.mounts.Remove(mountID) {
		return fmt.Errorf("%w: %s", ErrMountNotFound, mountID)
	}
	return nil
}

// ActiveMounts returns the number of mounts not yet torn down.
func (s *Shell) ActiveMounts() int {
	return s.mounts.Len()
}

// MaxMounts returns the size of the mount table.
func (s *Shell) MaxMounts() int {
	return s.maxMounts
}

// UnmountAll tears down every mounted application.
func (s *Shell) UnmountAll() {
	s.mounts.Purge()
}
