package config

import (
	"net/http"
	"os"
	"strings"
)

const (
	productionOrigin = "https://api.dehack.app"
	productionPort   = "8080"
	localOrigin      = "http://localhost:5000"
)

// ResolveBaseURL decides the externally visible origin used when building
// upload URLs. An explicit BASE_URL always wins; without one we fall back to
// the production markers (Heroku dyno, container, production port), then to
// whatever the request tells us about itself. r may be nil when no request
// context exists.
func (c *Config) ResolveBaseURL(r *http.Request) string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}

	if inProduction(c.Port) {
		return productionOrigin
	}

	if r != nil && r.Host != "" {
		if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
			return "https://" + r.Host
		}
		return "http://" + r.Host
	}

	return localOrigin
}

func inProduction(port string) bool {
	if os.Getenv("DYNO") != "" {
		return true
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return port == productionPort
}
