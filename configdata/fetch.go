package configdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"entsearch/core"

	"github.com/xeipuuv/gojsonschema"
)

// payloadSchema accepts any JSON object whose publicUrl, when present, is a string.
const payloadSchema = `{
  "type": "object",
  "properties": {
    "publicUrl": { "type": ["string", "null"] }
  }
}`

var compiledSchema = mustCompileSchema(payloadSchema)

func mustCompileSchema(schema string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("configdata: invalid payload schema: %v", err))
	}
	return s
}

// Result is the outcome of a single config data fetch.
// Exactly one of Err or Fields is meaningful.
type Result struct {
	Fields    map[string]any
	PublicURL string
	Err       error
}

// OK reports whether the fetch succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Fetch requests the config data once and never returns a Go error; failures
// come back inside the Result wrapped in ErrFetchFailed.
func Fetch(ctx context.Context, getter Getter) Result {
	body, err := getter.Get(ctx, core.ConfigDataPath)
	if err != nil {
		return Result{Err: fmt.Errorf("%w: %w", ErrFetchFailed, err)}
	}

	fields, publicURL, err := Parse(body)
	if err != nil {
		return Result{Err: fmt.Errorf("%w: %w", ErrFetchFailed, err)}
	}

	return Result{Fields: fields, PublicURL: publicURL}
}

// Parse validates a config data payload and splits off the public URL.
func Parse(body []byte) (map[string]any, string, error) {
	validation, err := compiledSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if !validation.Valid() {
		msgs := make([]string, 0, len(validation.Errors()))
		for _, e := range validation.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, "", fmt.Errorf("%w: %s", ErrMalformedPayload, strings.Join(msgs, "; "))
	}

	var fields map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&fields); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	publicURL, _ := fields[core.PublicURLField].(string)
	delete(fields, core.PublicURLField)

	return fields, publicURL, nil
}
