// Package views renders the Enterprise Search applications. Each application
// id maps to a factory; a view is built per mount and renders a JSON page
// model into the mount element.
package views

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"entsearch/core"
)

// ErrUnknownView is returned when no factory is registered for an id.
var ErrUnknownView = errors.New("no view registered for application")

// PageState is the screen a view shows.
type PageState string

const (
	// StateSetupGuide is shown while no Enterprise Search host is configured.
	StateSetupGuide PageState = "setup_guide"
	// StateErrorConnecting is shown after the config data could not be fetched.
	StateErrorConnecting PageState = "error_connecting"
	// StateReady is the normal application screen.
	StateReady PageState = "ready"
)

// Deps is what a view is built from. Data is shared with the coordinator.
type Deps struct {
	Host    string
	Data    *core.ApplicationData
	MountID string
	Path    string
}

// View renders one mounted application.
type View interface {
	Render(w io.Writer) error
}

// Factory builds a view for a mount.
type Factory func(deps Deps) View

// Registry maps application ids to view factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// NewDefaultRegistry creates a registry with the three Enterprise Search views.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(core.EnterpriseSearchPlugin.ID, NewOverview)
	r.Register(core.AppSearchPlugin.ID, NewAppSearch)
	r.Register(core.WorkplaceSearchPlugin.ID, NewWorkplaceSearch)
	return r
}

// Register binds a factory to an application id, replacing any previous one.
func (r *Registry) Register(appID string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[appID] = factory
}

// Build instantiates the view for appID.
func (r *Registry) Build(appID string, deps Deps) (View, error) {
	r.mu.RLock()
	factory, ok := r.factories[appID]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownView, appID)
	}
	return factory(deps), nil
}

// Link points at an external product UI.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Page is the rendered page model.
type Page struct {
	App          string    `json:"app"`
	Title        string    `json:"title"`
	State        PageState `json:"state"`
	MountID      string    `json:"mountId,omitempty"`
	Path         string    `json:"path"`
	ExternalURL  string    `json:"externalUrl,omitempty"`
	ReadOnlyMode bool      `json:"readOnlyMode"`
	Links        []Link    `json:"links,omitempty"`
}

// page is the shared implementation of the three views.
type page struct {
	plugin core.PluginInfo
	deps   Deps
	links  func(u core.ExternalURL) []Link
}

func (p *page) Render(w io.Writer) error {
	model := p.Model()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(model); err != nil {
		return fmt.Errorf("failed to render %s: %w", p.plugin.ID, err)
	}
	return nil
}

// Model builds the page model from the current application data.
func (p *page) Model() Page {
	model := Page{
		App:     p.plugin.ID,
		Title:   p.plugin.Name,
		MountID: p.deps.MountID,
		Path:    p.deps.Path,
	}
	if model.Path == "" {
		model.Path = "/"
	}

	switch {
	case p.deps.Host == "" || p.deps.Data == nil:
		model.State = StateSetupGuide
	case p.deps.Data.ErrorConnecting():
		model.State = StateErrorConnecting
	default:
		external := p.deps.Data.ExternalURL()
		model.State = StateReady
		model.ExternalURL = external.EnterpriseSearchURL()
		model.ReadOnlyMode = p.deps.Data.ReadOnlyMode()
		model.Links = p.links(external)
	}
	return model
}

// NewOverview builds the Enterprise Search overview view.
func NewOverview(deps Deps) View {
	return &page{
		plugin: core.EnterpriseSearchPlugin,
		deps:   deps,
		links: func(u core.ExternalURL) []Link {
			return []Link{
				{Label: "Launch " + core.AppSearchPlugin.Name, URL: u.AppSearchURL("")},
				{Label: "Launch " + core.WorkplaceSearchPlugin.Name, URL: u.WorkplaceSearchURL("")},
			}
		},
	}
}

// NewAppSearch builds the App Search view.
func NewAppSearch(deps Deps) View {
	return &page{
		plugin: core.AppSearchPlugin,
		deps:   deps,
		links: func(u core.ExternalURL) []Link {
			return []Link{{Label: "Launch " + core.AppSearchPlugin.Name, URL: u.AppSearchURL("")}}
		},
	}
}

// NewWorkplaceSearch builds the Workplace Search view.
func NewWorkplaceSearch(deps Deps) View {
	return &page{
		plugin: core.WorkplaceSearchPlugin,
		deps:   deps,
		links: func(u core.ExternalURL) []Link {
			return []Link{{Label: "Launch " + core.WorkplaceSearchPlugin.Name, URL: u.WorkplaceSearchURL("")}}
		},
	}
}
