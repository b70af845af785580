package utils

import (
	"fmt"
	"net"
	"net/url"
	"time"
)

// defaultPorts by URL scheme, for DSNs that omit the port
var defaultPorts = map[string]string{
	"http":       "80",
	"https":      "443",
	"postgres":   "5432",
	"postgresql": "5432",
	"mysql":      "3306",
	"sqlserver":  "1433",
}

// PingService checks if a service is reachable at the given URL with a bare TCP dial
func PingService(serviceURL string, timeout time.Duration) error {
	parsedURL, err := url.Parse(serviceURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsedURL.Hostname() == "" {
		return fmt.Errorf("invalid URL: missing host")
	}

	port := parsedURL.Port()
	if port == "" {
		port = defaultPorts[parsedURL.Scheme]
	}
	if port == "" {
		return fmt.Errorf("no port for scheme %q", parsedURL.Scheme)
	}

	return PingAddress(parsedURL.Hostname(), port, timeout)
}

// PingAddress dials host:port once and closes the connection
func PingAddress(host, port string, timeout time.Duration) error {
	address := net.JoinHostPort(host, port)

	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	return nil
}
