package navguard

import "net/url"

// Route declares a navigation target and its access metadata.
type Route struct {
	Name string
	Path string

	// RequiresAuth gates the route behind a validated session.
	RequiresAuth bool

	// RequiresRole additionally restricts the route to one role. Only
	// meaningful when RequiresAuth is set.
	RequiresRole string
}

// Routes is the route table consulted on every navigation attempt.
type Routes []Route

// Match finds the route declared for path. Unknown paths return a zero
// Route: they carry no access metadata and resolve as plain allows.
func (rs Routes) Match(path string) (Route, bool) {
	for _, r := range rs {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// Intent is one navigation attempt: the target path and its query
// parameters. It lives only for the duration of a single guard evaluation.
type Intent struct {
	Path  string
	Query url.Values
}

// FullPath renders the path with its encoded query string.
func (i Intent) FullPath() string {
	if len(i.Query) == 0 {
		return i.Path
	}
	return i.Path + "?" + i.Query.Encode()
}
