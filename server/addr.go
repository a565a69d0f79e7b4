package server

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	internalstrings "github.com/amonks/tasklist/internal/strings"
)

// DefaultPort is used when no address is configured.
const DefaultPort = 8089

// ResolveAddr picks the server address. An explicit flag value wins over
// the configured one; with neither, the default local port is used. A bare
// port number means 127.0.0.1:<port>.
func ResolveAddr(flagAddr, configAddr string) (string, error) {
	if !internalstrings.IsBlank(flagAddr) {
		return normalizeAddr(flagAddr)
	}
	if !internalstrings.IsBlank(configAddr) {
		return normalizeAddr(configAddr)
	}
	return fmt.Sprintf("127.0.0.1:%d", DefaultPort), nil
}

func normalizeAddr(addr string) (string, error) {
	trimmed := strings.TrimSpace(addr)
	if trimmed == "" {
		return "", fmt.Errorf("address is required")
	}
	if strings.Contains(trimmed, ":") {
		return trimmed, nil
	}
	port, err := strconv.Atoi(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid port %q", trimmed)
	}
	if port <= 0 || port > 65535 {
		return "", fmt.Errorf("port out of range: %d", port)
	}
	return fmt.Sprintf("127.0.0.1:%d", port), nil
}

// listenAddr strips a URL scheme so an address shared with clients can be
// passed to net.Listen.
func listenAddr(addr string) string {
	trimmed := strings.TrimSpace(addr)
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return trimmed
	}
	return parsed.Host
}
