package core

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExternalURL(t *testing.T) {
	u := NewExternalURL("http://localhost:3002")

	assert.Equal(t, "http://localhost:3002", u.EnterpriseSearchURL())
	assert.Equal(t, "http://localhost:3002/as", u.AppSearchURL(""))
	assert.Equal(t, "http://localhost:3002/as/engines", u.AppSearchURL("/engines"))
	assert.Equal(t, "http://localhost:3002/ws", u.WorkplaceSearchURL(""))
	assert.Equal(t, "http://localhost:3002/ws/sources", u.WorkplaceSearchURL("/sources"))
}

func TestExternalURL_EmptyBase(t *testing.T) {
	u := NewExternalURL("")
	assert.Equal(t, "/as/engines", u.AppSearchURL("/engines"))
	assert.Equal(t, "", u.EnterpriseSearchURL())
}

func TestApplicationData_InitialState(t *testing.T) {
	d := NewApplicationData("http://host")

	assert.Equal(t, "http://host", d.ExternalURL().EnterpriseSearchURL())
	assert.False(t, d.ErrorConnecting())
	assert.Empty(t, d.Fields())
}

func TestApplicationData_MergeOverwritesAndSkipsPublicURL(t *testing.T) {
	d := NewApplicationData("http://host")

	d.Merge(map[string]any{"a": 1, "b": "x"})
	d.Merge(map[string]any{"b": "y", PublicURLField: "https://pub"})

	fields := d.Fields()
	assert.Equal(t, 1, fields["a"])
	assert.Equal(t, "y", fields["b"])
	assert.NotContains(t, fields, PublicURLField)
	// Merging never touches the external URL.
	assert.Equal(t, "http://host", d.ExternalURL().EnterpriseSearchURL())
}

func TestApplicationData_MergeDropsReservedFields(t *testing.T) {
	d := NewApplicationData("http://host")

	d.Merge(map[string]any{
		FieldExternalURL:     "https://elsewhere",
		FieldErrorConnecting: true,
		FieldReadOnlyMode:    true,
	})

	assert.Equal(t, map[string]any{FieldReadOnlyMode: true}, d.Fields())
	assert.False(t, d.ErrorConnecting())
	assert.Equal(t, "http://host", d.ExternalURL().EnterpriseSearchURL())

	m := d.Snapshot().Map()
	assert.Equal(t, "http://host", m[FieldExternalURL])
	assert.NotContains(t, m, FieldErrorConnecting)
}

func TestIsReservedField(t *testing.T) {
	for _, key := range []string{PublicURLField, FieldExternalURL, FieldErrorConnecting} {
		assert.True(t, IsReservedField(key), key)
	}
	assert.False(t, IsReservedField(FieldReadOnlyMode))
}

func TestApplicationData_FieldsReturnsCopy(t *testing.T) {
	d := NewApplicationData("")
	d.Merge(map[string]any{"a": 1})

	fields := d.Fields()
	fields["a"] = 2

	v, ok := d.Field("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestApplicationData_TypedAccessors(t *testing.T) {
	d := NewApplicationData("")
	assert.False(t, d.ReadOnlyMode())

	d.Merge(map[string]any{
		FieldReadOnlyMode:    true,
		FieldILMEnabled:      true,
		FieldIsFederatedAuth: "not-a-bool",
	})

	assert.True(t, d.ReadOnlyMode())
	assert.True(t, d.ILMEnabled())
	assert.False(t, d.IsFederatedAuth())
}

func TestApplicationData_ErrorFlag(t *testing.T) {
	d := NewApplicationData("")
	d.MarkErrorConnecting()
	assert.True(t, d.ErrorConnecting())
}

func TestApplicationDataSnapshot_MarshalJSON(t *testing.T) {
	d := NewApplicationData("http://host")
	d.Merge(map[string]any{FieldReadOnlyMode: false})

	raw, err := json.Marshal(d.Snapshot())
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "http://host", out["externalUrl"])
	assert.Equal(t, false, out[FieldReadOnlyMode])
	assert.NotContains(t, out, "errorConnecting")

	d.MarkErrorConnecting()
	raw, err = json.Marshal(d.Snapshot())
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, true, out["errorConnecting"])
}

func TestApplicationData_ConcurrentAccess(t *testing.T) {
	d := NewApplicationData("http://host")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			d.Merge(map[string]any{"k": i})
			d.ReplaceExternalURL(NewExternalURL("http://other"))
		}(i)
		go func() {
			defer wg.Done()
			_ = d.Snapshot()
			_ = d.ExternalURL().AppSearchURL("")
		}()
	}
	wg.Wait()

	assert.Equal(t, "http://other", d.ExternalURL().EnterpriseSearchURL())
}

func TestPluginInfo_Title(t *testing.T) {
	assert.Equal(t, "Overview", EnterpriseSearchPlugin.Title())
	assert.Equal(t, "App Search", AppSearchPlugin.Title())
	assert.True(t, FeatureCategoryData.IsValid())
	assert.False(t, FeatureCategory("bogus").IsValid())
}
