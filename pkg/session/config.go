package session

import (
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process-wide session configuration. It selects the token
// transport and declares the two external service base URLs. Constructed
// once at startup and passed by value; never mutated afterwards.
type Config struct {
	// UseCookieAuth selects the cookie transport when true (token shared
	// across sibling subdomains) and the local persistent store otherwise.
	UseCookieAuth bool `env:"AUTH_USE_COOKIE" envDefault:"false"`

	// CookieDomain scopes the shared session cookie. Must include the
	// leading dot. Only used when UseCookieAuth is true.
	CookieDomain string `env:"AUTH_COOKIE_DOMAIN" envDefault:".skylane.app"`

	// AuthServiceURL is the centralized auth service users are redirected
	// to for login.
	AuthServiceURL string `env:"AUTH_SERVICE_URL" envDefault:"http://localhost:3000"`

	// APIBaseURL is the booking backend, used for token validation and all
	// API calls.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8080"`
}

var loadDotEnv sync.Once

// LoadConfig resolves the configuration from the environment. A missing
// variable silently falls back to its default; the only failure mode is an
// unparseable value.
func LoadConfig() (Config, error) {
	loadDotEnv.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoadConfig works like LoadConfig but panics on failure. Session
// configuration is required for the application to start.
func MustLoadConfig() Config {
	cfg, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("session: failed to load configuration: %v", err))
	}
	return cfg
}

// LoginURL builds the auth service login URL carrying the given location as
// the url-encoded return destination.
func (c Config) LoginURL(current string) string {
	return c.AuthServiceURL + "/login?redirect=" + url.QueryEscape(current)
}

// ValidateURL is the remote token validation endpoint.
func (c Config) ValidateURL() string {
	return c.APIBaseURL + "/api/auth/validate"
}
