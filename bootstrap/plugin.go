package bootstrap

import (
	"context"
	"fmt"

	"entsearch/catalogue"
	"entsearch/configdata"
	"entsearch/coordinator"
	"entsearch/core"
	"entsearch/shell"
	"entsearch/views"

	"go.uber.org/zap"
)

// Catalogue icons of the two product features.
const (
	AppSearchIcon       = "appSearchApp"
	WorkplaceSearchIcon = "workplaceSearchApp"
)

// Host is the application shell the plugin registers into.
type Host interface {
	Register(app shell.App) error
	DocTitle() shell.DocTitle
}

// ClientFactory returns the config data client for one mount. It receives
// the mount parameters so the request can carry the user's credentials.
type ClientFactory func(params shell.MountParams) configdata.Getter

// PluginDeps is what the plugin's mount callbacks close over.
type PluginDeps struct {
	Host        string
	Coordinator *coordinator.Coordinator
	Views       *views.Registry
	Clients     ClientFactory
	Logger      *zap.SugaredLogger
}

// SetupPlugin registers the three Enterprise Search applications with the
// host and, when a catalogue is present, their catalogue entries.
// A nil registry is skipped without error.
func SetupPlugin(host Host, registry catalogue.Registry, deps PluginDeps) error {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop().Sugar()
	}

	descriptors := []struct {
		info core.PluginInfo
		icon string
	}{
		{info: core.EnterpriseSearchPlugin},
		{info: core.AppSearchPlugin, icon: core.LogoIcon},
		{info: core.WorkplaceSearchPlugin, icon: core.LogoIcon},
	}

	for _, d := range descriptors {
		if err := registerApplication(host, d.info, d.icon, deps); err != nil {
			return err
		}
	}

	if registry == nil {
		deps.Logger.Info("Feature catalogue not available, skipping catalogue entries")
		return nil
	}
	return RegisterFeatureCatalogueEntries(registry)
}

func registerApplication(host Host, info core.PluginInfo, icon string, deps PluginDeps) error {
	app := shell.App{
		ID:       info.ID,
		Title:    info.Title(),
		AppRoute: info.URL,
		Category: core.EnterpriseSearchCategory,
		Icon:     icon,
		Mount:    mountApplication(host, info, deps),
	}
	if err := host.Register(app); err != nil {
		return fmt.Errorf("failed to register %s: %w", info.ID, err)
	}
	return nil
}

// mountApplication runs, in order: document title, initial data, view
// lookup, render.
func mountApplication(host Host, info core.PluginInfo, deps PluginDeps) shell.MountFunc {
	return func(ctx context.Context, params shell.MountParams) (shell.Teardown, error) {
		host.DocTitle().Change(info.Name)

		deps.Coordinator.EnsureInitialData(ctx, deps.Clients(params))

		view, err := deps.Views.Build(info.ID, views.Deps{
			Host:    deps.Host,
			Data:    deps.Coordinator.Data(),
			MountID: params.MountID,
			Path:    params.Path,
		})
		if err != nil {
			return nil, err
		}
		if err := view.Render(params.Element); err != nil {
			return nil, err
		}

		return func() {
			deps.Logger.Debugw("Application unmounted",
				"id", info.ID,
				"mount_id", params.MountID)
		}, nil
	}
}

// RegisterFeatureCatalogueEntries adds the Enterprise Search solution and the
// two product features to the catalogue.
func RegisterFeatureCatalogueEntries(registry catalogue.Registry) error {
	es := core.EnterpriseSearchPlugin
	if err := registry.RegisterSolution(catalogue.Solution{
		ID:           es.ID,
		Title:        es.Name,
		Subtitle:     es.Subtitle,
		Icon:         core.LogoIcon,
		Descriptions: es.Descriptions,
		Path:         es.URL,
	}); err != nil {
		return fmt.Errorf("failed to register catalogue solution: %w", err)
	}

	features := []struct {
		info core.PluginInfo
		icon string
	}{
		{core.AppSearchPlugin, AppSearchIcon},
		{core.WorkplaceSearchPlugin, WorkplaceSearchIcon},
	}
	for _, f := range features {
		if err := registry.Register(catalogue.Feature{
			ID:             f.info.ID,
			Title:          f.info.Name,
			Icon:           f.icon,
			Description:    f.info.Description,
			Path:           f.info.URL,
			Category:       core.FeatureCategoryData,
			ShowOnHomePage: false,
		}); err != nil {
			return fmt.Errorf("failed to register catalogue feature %s: %w", f.info.ID, err)
		}
	}
	return nil
}
