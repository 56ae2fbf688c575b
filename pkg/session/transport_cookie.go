package session

import (
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// CookieTransport carries the token in a domain-scoped cookie, the transport
// used when the front-end and the auth service share a parent domain. The
// cookie jar stands in for the browser's cookie storage.
type CookieTransport struct {
	jar    http.CookieJar
	site   *url.URL
	domain string
}

// CookieOption configures a CookieTransport.
type CookieOption func(*CookieTransport)

// WithJar shares an existing cookie jar, typically the one attached to the
// application's HTTP client so the cookie travels with outbound requests.
func WithJar(jar http.CookieJar) CookieOption {
	return func(t *CookieTransport) {
		if jar != nil {
			t.jar = jar
		}
	}
}

// WithSiteURL overrides the origin the token cookie is read for. Defaults to
// the apex host of the cookie domain over https.
func WithSiteURL(site string) CookieOption {
	return func(t *CookieTransport) {
		if u, err := url.Parse(site); err == nil && u.Host != "" {
			t.site = u
		}
	}
}

// NewCookieTransport creates a cookie transport scoped to the given domain.
// The domain must carry its leading dot so the cookie is shared across
// sibling subdomains.
func NewCookieTransport(domain string, opts ...CookieOption) (*CookieTransport, error) {
	t := &CookieTransport{domain: domain}

	for _, opt := range opts {
		opt(t)
	}

	if t.jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		t.jar = jar
	}

	if t.site == nil {
		host := strings.TrimPrefix(domain, ".")
		if host == "" {
			return nil, ErrInvalidSiteURL
		}
		t.site = &url.URL{Scheme: "https", Host: host, Path: "/"}
	}

	return t, nil
}

func (t *CookieTransport) Load() (string, error) {
	for _, c := range t.jar.Cookies(t.site) {
		if c.Name == TokenKey && c.Value != "" {
			return c.Value, nil
		}
	}
	return "", ErrTokenNotFound
}

func (t *CookieTransport) Store(token string, ttl time.Duration) error {
	maxAge := int(ttl.Seconds())
	if maxAge <= 0 {
		return errors.Join(ErrStorageUnavailable, errors.New("non-positive cookie lifetime"))
	}

	t.jar.SetCookies(t.site, []*http.Cookie{t.cookie(token, maxAge)})
	return nil
}

// Clear expires the cookie using the same Domain and Path attributes used to
// set it. Mismatched attributes make deletion a silent no-op in some cookie
// stores, so they are centralized in cookie().
func (t *CookieTransport) Clear() error {
	t.jar.SetCookies(t.site, []*http.Cookie{t.cookie("", -1)})
	return nil
}

func (t *CookieTransport) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     TokenKey,
		Value:    value,
		Domain:   t.domain,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}
