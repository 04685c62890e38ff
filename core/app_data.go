package core

import (
	"encoding/json"
	"maps"
	"sync"
)

// Well-known config data fields returned by the Enterprise Search server.
const (
	FieldReadOnlyMode     = "readOnlyMode"
	FieldILMEnabled       = "ilmEnabled"
	FieldIsFederatedAuth  = "isFederatedAuth"
	FieldConfiguredLimits = "configuredLimits"
	FieldAppSearch        = "appSearch"
	FieldWorkplaceSearch  = "workplaceSearch"
)

// Keys computed from the shared state. A server sent field with one of these
// names would shadow the computed value, so Merge drops them.
const (
	FieldExternalURL     = "externalUrl"
	FieldErrorConnecting = "errorConnecting"
)

// IsReservedField reports whether key is never stored by Merge.
func IsReservedField(key string) bool {
	switch key {
	case PublicURLField, FieldExternalURL, FieldErrorConnecting:
		return true
	}
	return false
}

// ApplicationData is the state shared by all mounted Enterprise Search views.
// One instance exists per plugin; views hold a pointer and re-read it on render.
type ApplicationData struct {
	mu              sync.RWMutex
	externalURL     ExternalURL
	fields          map[string]any
	errorConnecting bool
}

// NewApplicationData creates the shared state with an external URL derived
// from the configured host.
func NewApplicationData(host string) *ApplicationData {
	return &ApplicationData{
		externalURL: NewExternalURL(host),
		fields:      make(map[string]any),
	}
}

// ExternalURL returns the current link helper.
func (d *ApplicationData) ExternalURL() ExternalURL {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.externalURL
}

// ReplaceExternalURL swaps the link helper for a new one.
func (d *ApplicationData) ReplaceExternalURL(u ExternalURL) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.externalURL = u
}

// Merge copies fields into the stored data, overwriting existing keys.
// Reserved fields are never stored: the public URL is applied through
// ReplaceExternalURL and the error flag only changes on a failed fetch.
func (d *ApplicationData) Merge(fields map[string]any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for k, v := range fields {
		if IsReservedField(k) {
			continue
		}
		d.fields[k] = v
	}
}

// MarkErrorConnecting records that the last fetch attempt failed.
func (d *ApplicationData) MarkErrorConnecting() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errorConnecting = true
}

// ErrorConnecting reports whether a fetch attempt has failed.
func (d *ApplicationData) ErrorConnecting() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.errorConnecting
}

// Field returns a single remote field.
func (d *ApplicationData) Field(key string) (any, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.fields[key]
	return v, ok
}

// Fields returns a copy of all remote fields.
func (d *ApplicationData) Fields() map[string]any {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return maps.Clone(d.fields)
}

// ReadOnlyMode reports whether the Enterprise Search server is read only.
func (d *ApplicationData) ReadOnlyMode() bool {
	return d.boolField(FieldReadOnlyMode)
}

// ILMEnabled reports whether index lifecycle management is enabled.
func (d *ApplicationData) ILMEnabled() bool {
	return d.boolField(FieldILMEnabled)
}

// IsFederatedAuth reports whether Enterprise Search uses federated auth.
func (d *ApplicationData) IsFederatedAuth() bool {
	return d.boolField(FieldIsFederatedAuth)
}

func (d *ApplicationData) boolField(key string) bool {
	v, ok := d.Field(key)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Snapshot captures the current state for serialization.
func (d *ApplicationData) Snapshot() ApplicationDataSnapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return ApplicationDataSnapshot{
		ExternalURL:     d.externalURL.EnterpriseSearchURL(),
		ErrorConnecting: d.errorConnecting,
		Fields:          maps.Clone(d.fields),
	}
}

// ApplicationDataSnapshot is a point-in-time copy of ApplicationData.
type ApplicationDataSnapshot struct {
	ExternalURL     string
	ErrorConnecting bool
	Fields          map[string]any
}

// Map flattens the remote fields next to the external URL and error flag.
func (s ApplicationDataSnapshot) Map() map[string]any {
	out := make(map[string]any, len(s.Fields)+2)
	for k, v := range s.Fields {
		out[k] = v
	}
	out[FieldExternalURL] = s.ExternalURL
	if s.ErrorConnecting {
		out[FieldErrorConnecting] = true
	}
	return out
}

// MarshalJSON encodes the flattened form returned by Map.
func (s ApplicationDataSnapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}
