package views

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"entsearch/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHost = "http://localhost:3002"

func render(t *testing.T, r *Registry, appID string, deps Deps) Page {
	t.Helper()
	view, err := r.Build(appID, deps)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, view.Render(&buf))

	var page Page
	require.NoError(t, json.Unmarshal(buf.Bytes(), &page))
	return page
}

func TestRegistry_UnknownView(t *testing.T) {
	_, err := NewDefaultRegistry().Build("kibana", Deps{})
	assert.ErrorIs(t, err, ErrUnknownView)
}

func TestRegistry_FactoryIsLazy(t *testing.T) {
	r := NewRegistry()
	var built int
	r.Register("x", func(deps Deps) View {
		built++
		return NewAppSearch(deps)
	})
	assert.Zero(t, built)

	_, err := r.Build("x", Deps{})
	require.NoError(t, err)
	_, err = r.Build("x", Deps{})
	require.NoError(t, err)
	assert.Equal(t, 2, built)
}

func TestViews_SetupGuideWithoutHost(t *testing.T) {
	r := NewDefaultRegistry()
	for _, id := range []string{core.EnterpriseSearchPlugin.ID, core.AppSearchPlugin.ID, core.WorkplaceSearchPlugin.ID} {
		t.Run(id, func(t *testing.T) {
			page := render(t, r, id, Deps{Data: core.NewApplicationData("")})
			assert.Equal(t, StateSetupGuide, page.State)
			assert.Equal(t, id, page.App)
			assert.Empty(t, page.Links)
		})
	}
}

func TestViews_ErrorConnecting(t *testing.T) {
	data := core.NewApplicationData(testHost)
	data.MarkErrorConnecting()

	page := render(t, NewDefaultRegistry(), core.AppSearchPlugin.ID, Deps{Host: testHost, Data: data})
	assert.Equal(t, StateErrorConnecting, page.State)
	assert.Empty(t, page.ExternalURL)
}

func TestViews_Ready(t *testing.T) {
	data := core.NewApplicationData(testHost)
	data.Merge(map[string]any{core.FieldReadOnlyMode: true})
	data.ReplaceExternalURL(core.NewExternalURL("https://pub.example"))
	r := NewDefaultRegistry()

	tests := []struct {
		appID string
		title string
		links []Link
	}{
		{core.EnterpriseSearchPlugin.ID, "Enterprise Search", []Link{
			{Label: "Launch App Search", URL: "https://pub.example/as"},
			{Label: "Launch Workplace Search", URL: "https://pub.example/ws"},
		}},
		{core.AppSearchPlugin.ID, "App Search", []Link{
			{Label: "Launch App Search", URL: "https://pub.example/as"},
		}},
		{core.WorkplaceSearchPlugin.ID, "Workplace Search", []Link{
			{Label: "Launch Workplace Search", URL: "https://pub.example/ws"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.appID, func(t *testing.T) {
			page := render(t, r, tt.appID, Deps{Host: testHost, Data: data, MountID: "m1", Path: "/engines"})
			assert.Equal(t, StateReady, page.State)
			assert.Equal(t, tt.title, page.Title)
			assert.Equal(t, "m1", page.MountID)
			assert.Equal(t, "/engines", page.Path)
			assert.Equal(t, "https://pub.example", page.ExternalURL)
			assert.True(t, page.ReadOnlyMode)
			assert.Equal(t, tt.links, page.Links)
		})
	}
}

func TestViews_DefaultPath(t *testing.T) {
	page := render(t, NewDefaultRegistry(), core.AppSearchPlugin.ID, Deps{})
	assert.Equal(t, "/", page.Path)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestViews_RenderWriteError(t *testing.T) {
	view := NewWorkplaceSearch(Deps{})
	assert.Error(t, view.Render(failingWriter{}))
}
