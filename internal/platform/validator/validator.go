// internal/platform/validator/validator.go
package validator

import (
	"net"
	"net/url"
	"strconv"
	"strings"
)

// IsURL verifica si un string es una URL absoluta con scheme y host.
func IsURL(urlStr string) bool {
	if len(urlStr) == 0 {
		return false
	}
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}

// IsHTTPURL is IsURL restricted to http and https.
func IsHTTPURL(urlStr string) bool {
	if !IsURL(urlStr) {
		return false
	}
	scheme := strings.ToLower(urlStr[:strings.Index(urlStr, ":")])
	return scheme == "http" || scheme == "https"
}

// NormalizeURL lowercases scheme and host, drops default ports and a bare
// trailing slash. Path and query are kept as is.
func NormalizeURL(urlStr string) string {
	urlStr = strings.TrimSpace(urlStr)

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return urlStr
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)

	if parsed.Scheme == "http" {
		parsed.Host = strings.TrimSuffix(parsed.Host, ":80")
	}
	if parsed.Scheme == "https" {
		parsed.Host = strings.TrimSuffix(parsed.Host, ":443")
	}
	if parsed.Path == "/" && parsed.RawQuery == "" && parsed.Fragment == "" {
		parsed.Path = ""
	}
	return parsed.String()
}

// IsHostPort valida "host:port" o ":port" con puerto en [1-65535].
func IsHostPort(addr string) bool {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	return IsPort(port)
}

// IsListenAddr valida una dirección de escucha "host:port" o ":port". Port 0
// is allowed and lets the OS pick a free port.
func IsListenAddr(addr string) bool {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	return port == "0" || IsPort(port)
}

// IsPort valida que un puerto esté en el rango válido [1-65535].
func IsPort(portStr string) bool {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return false
	}
	return port >= 1 && port <= 65535
}

// IsEmpty verifica si un string está vacío o solo contiene espacios.
func IsEmpty(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}
