package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"entsearch/bootstrap"
	"entsearch/core"

	"github.com/fatih/color"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, host string) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "enterprise_search:\n  host: \"" + host + "\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newConfigServer(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()
	var authorization string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != core.ConfigDataPath {
			http.NotFound(w, r)
			return
		}
		authorization = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &authorization
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })

	cmd := NewConfigDataCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const payload = `{"publicUrl":"https://ent.example","readOnlyMode":true,"ilmEnabled":false,"appSearch":{"role":"owner"}}`

func TestConfigData_JSON(t *testing.T) {
	srv, auth := newConfigServer(t, http.StatusOK, payload)
	path := writeConfig(t, srv.URL)

	out, err := execute(t, "--config", path, "--json", "--authorization", "Basic abc")
	require.NoError(t, err)
	assert.Equal(t, "Basic abc", *auth)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "https://ent.example", got["externalUrl"])
	assert.Equal(t, true, got["readOnlyMode"])
	assert.NotContains(t, got, "publicUrl")
	assert.NotContains(t, got, "errorConnecting")
}

func TestConfigData_YAML(t *testing.T) {
	srv, _ := newConfigServer(t, http.StatusOK, payload)
	path := writeConfig(t, srv.URL)

	out, err := execute(t, "--config", path, "--yaml")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "https://ent.example", got["externalUrl"])
	assert.Equal(t, map[string]any{"role": "owner"}, got["appSearch"])
}

func TestConfigData_Table(t *testing.T) {
	srv, _ := newConfigServer(t, http.StatusOK, payload)
	path := writeConfig(t, srv.URL)

	out, err := execute(t, "--config", path, "--no-color", "--quiet")
	require.NoError(t, err)

	assert.Contains(t, out, "ENTERPRISE SEARCH CONFIG DATA")
	assert.Contains(t, out, "https://ent.example/as")
	assert.Contains(t, out, "https://ent.example/ws")
	assert.Contains(t, out, `{"role":"owner"}`)
	assert.NotContains(t, out, "Config data loaded")
}

func TestConfigData_NoPublicURLKeepsHost(t *testing.T) {
	srv, _ := newConfigServer(t, http.StatusOK, `{"readOnlyMode":false}`)
	path := writeConfig(t, srv.URL)

	out, err := execute(t, "--config", path, "--json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, srv.URL, got["externalUrl"])
}

func TestConfigData_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`, "rejected the credentials"},
		{"server error", http.StatusInternalServerError, `{}`, "answered with an error status"},
		{"not an object", http.StatusOK, `[1,2]`, "returned an unexpected response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newConfigServer(t, tt.status, tt.body)
			path := writeConfig(t, srv.URL)

			_, err := execute(t, "--config", path, "--json")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestConfigData_NoHost(t *testing.T) {
	path := writeConfig(t, "")

	_, err := execute(t, "--config", path, "--json")
	assert.ErrorIs(t, err, ErrNoHost)
}

func TestConfigData_ConflictingFormats(t *testing.T) {
	_, err := execute(t, "--json", "--yaml")
	assert.Error(t, err)
}

func TestConfigData_UnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()
	path := writeConfig(t, addr)

	_, err := execute(t, "--config", path, "--json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Connection refused by "+bootstrap.ServiceEnterpriseSearch)
}
