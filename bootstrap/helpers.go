package bootstrap

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	"entsearch/configdata"
)

// Services named in connection diagnostics.
const (
	ServiceEnterpriseSearch = "Enterprise Search"
	ServiceRedis            = "Redis"
)

// ClassifyConnectionError turns a connection failure into a message with
// likely causes and remediation steps.
func ClassifyConnectionError(err error, service, addr string) string {
	if err == nil {
		return ""
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, configdata.ErrAuthFailed) {
		return fmt.Sprintf("%s at %s rejected the credentials.\n"+
			"  Remediation:\n"+
			"  - Pass a valid Authorization header (--authorization)\n"+
			"  - Verify the user has access to Enterprise Search", service, addr)
	}

	if errors.Is(err, configdata.ErrMalformedPayload) {
		return fmt.Sprintf("%s at %s returned an unexpected response.\n"+
			"  Possible causes:\n"+
			"  - enterprise_search.backend_url points at a different service\n"+
			"  - A proxy is answering with an HTML error page\n"+
			"  Remediation:\n"+
			"  - Request %s directly and inspect the body", service, addr, addr+"/api/enterprise_search/config_data")
	}

	if errors.Is(err, configdata.ErrUnexpectedStatus) {
		return fmt.Sprintf("%s at %s answered with an error status: %v\n"+
			"  Remediation:\n"+
			"  - Check the %s server logs\n"+
			"  - Verify the deployment version exposes the config data endpoint", service, addr, err, service)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Sprintf("Connection to %s at %s timed out.\n"+
			"  Possible causes:\n"+
			"  - %s is starting up (wait and retry)\n"+
			"  - Network latency or firewall blocking the connection\n"+
			"  Remediation:\n"+
			"  - Verify network connectivity: nc -zv %s\n"+
			"  - Raise enterprise_search.request_timeout", service, addr, service, addr)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		if errors.Is(opErr.Err, syscall.ECONNREFUSED) ||
			(opErr.Err != nil && strings.Contains(strings.ToLower(opErr.Err.Error()), "connection refused")) {
			return fmt.Sprintf("Connection refused by %s at %s.\n"+
				"  This usually means %s is not running.\n"+
				"  Remediation:\n"+
				"  - Start %s and retry\n"+
				"  - Verify the address is correct in config.yaml", service, addr, service, service)
		}
	}

	if strings.Contains(errStr, "no such host") || strings.Contains(errStr, "lookup") {
		return fmt.Sprintf("Cannot resolve hostname in %s address %s.\n"+
			"  Remediation:\n"+
			"  - Verify the hostname is correct\n"+
			"  - Check DNS configuration", service, addr)
	}

	return fmt.Sprintf("Failed to connect to %s at %s: %v\n"+
		"  Remediation:\n"+
		"  - Ensure %s is running and accessible\n"+
		"  - Verify network connectivity", service, addr, err, service)
}
