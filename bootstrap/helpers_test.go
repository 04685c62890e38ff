package bootstrap

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"testing"

	"entsearch/configdata"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassifyConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{
			name:     "nil error returns empty string",
			err:      nil,
			contains: "",
		},
		{
			name:     "auth failure",
			err:      fmt.Errorf("%w: %w", configdata.ErrFetchFailed, configdata.ErrAuthFailed),
			contains: "rejected the credentials",
		},
		{
			name:     "malformed payload",
			err:      fmt.Errorf("%w: %w", configdata.ErrFetchFailed, configdata.ErrMalformedPayload),
			contains: "unexpected response",
		},
		{
			name:     "bad status",
			err:      fmt.Errorf("%w: 502", configdata.ErrUnexpectedStatus),
			contains: "error status",
		},
		{
			name:     "timeout",
			err:      fmt.Errorf("get: %w", timeoutError{}),
			contains: "timed out",
		},
		{
			name:     "connection refused",
			err:      &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED},
			contains: "Connection refused",
		},
		{
			name:     "dns failure",
			err:      errors.New("dial tcp: lookup es.invalid: no such host"),
			contains: "Cannot resolve hostname",
		},
		{
			name:     "anything else",
			err:      errors.New("boom"),
			contains: "Failed to connect",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ClassifyConnectionError(tt.err, ServiceEnterpriseSearch, "http://localhost:3002")
			if tt.contains == "" && result != "" {
				t.Errorf("ClassifyConnectionError() = %q, want empty string", result)
			}
			if tt.contains != "" && !strings.Contains(result, tt.contains) {
				t.Errorf("ClassifyConnectionError() = %q, want to contain %q", result, tt.contains)
			}
		})
	}
}

func TestClassifyConnectionError_NamesService(t *testing.T) {
	result := ClassifyConnectionError(errors.New("boom"), ServiceRedis, "localhost:6379")
	if !strings.Contains(result, "Redis at localhost:6379") {
		t.Errorf("ClassifyConnectionError() = %q, want service and address", result)
	}
}
