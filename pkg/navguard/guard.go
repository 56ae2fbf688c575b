package navguard

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/skylane/flightkit/pkg/statemachine"
)

// Pipeline states, in evaluation order.
const (
	StateIdle            = statemachine.State("idle")
	StateTokenExtraction = statemachine.State("token_extraction")
	StateAuthCheck       = statemachine.State("auth_check")
	StateRoleCheck       = statemachine.State("role_check")
	StateResolved        = statemachine.State("resolved")
)

const (
	eventBegin = statemachine.Event("begin")
	eventNext  = statemachine.Event("next")
)

// TokenParam is the query parameter carrying a relayed session token.
const TokenParam = "token"

// Session is the slice of the session manager the guard depends on.
type Session interface {
	// SetToken stores an unvalidated token extracted from the URL.
	SetToken(token string)

	// Validate checks the stored token against the auth service.
	Validate(ctx context.Context) bool

	// HasRole reports whether the validated user carries the role.
	HasRole(role string) bool

	// LoginURL builds the external login redirect for the given location.
	LoginURL(current string) string
}

// Guard intercepts every navigation attempt and resolves it to an allow, an
// internal redirect, or an external redirect to the login page.
//
// Evaluations are serialized: only one navigation attempt is in flight at a
// time, and an evaluation is not interruptible by a newer one: a slow
// validation call blocks the next route transition.
type Guard struct {
	mu       sync.Mutex
	session  Session
	routes   Routes
	homePath string
	origin   string
	notifier Notifier
	logger   *slog.Logger
}

// Option configures a Guard.
type Option func(*Guard)

// WithHomePath sets the internal redirect target for role denials.
// Defaults to "/".
func WithHomePath(path string) Option {
	return func(g *Guard) {
		if path != "" {
			g.homePath = path
		}
	}
}

// WithOrigin sets the application origin prepended to the intent path when
// encoding the login return URL.
func WithOrigin(origin string) Option {
	return func(g *Guard) { g.origin = origin }
}

// WithNotifier sets the denial notice sink.
func WithNotifier(n Notifier) Option {
	return func(g *Guard) {
		if n != nil {
			g.notifier = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Guard) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a navigation guard over the given session and route table.
func New(session Session, routes Routes, opts ...Option) *Guard {
	g := &Guard{
		session:  session,
		routes:   routes,
		homePath: "/",
		notifier: nopNotifier{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// evaluation is the per-navigation scratch state threaded through the
// pipeline machine.
type evaluation struct {
	intent Intent
	route  Route
	res    Resolution
}

// Evaluate runs the guard pipeline for one navigation attempt. Token
// extraction always happens before any auth or role evaluation and
// short-circuits both for this attempt; validation happens on the follow-up
// navigation the internal redirect triggers.
func (g *Guard) Evaluate(ctx context.Context, intent Intent) Resolution {
	g.mu.Lock()
	defer g.mu.Unlock()

	route, _ := g.routes.Match(intent.Path)
	ev := &evaluation{intent: intent, route: route}

	m := g.machine(ev)
	for m.Current() != StateResolved {
		event := eventNext
		if m.Current() == StateIdle {
			event = eventBegin
		}
		if err := m.Fire(ctx, event, ev); err != nil {
			// A pipeline gap is a programming error; failing open would
			// skip auth, so abort the navigation instead.
			g.logger.Error("navguard: pipeline stalled", "state", m.Current(), "error", err)
			ev.res = Resolution{Action: ActionRedirectInternal, Path: g.homePath, Reason: "guard pipeline error"}
			break
		}
	}

	ev.res.Trace = m.Trace()
	g.logger.Debug("navguard: resolved",
		"path", intent.Path,
		"action", string(ev.res.Action),
		"reason", ev.res.Reason,
	)
	return ev.res
}

func (g *Guard) machine(ev *evaluation) *statemachine.Machine {
	hasRelayToken := func(context.Context, statemachine.State, statemachine.Event, any) bool {
		return ev.intent.Query.Get(TokenParam) != ""
	}

	extractToken := func(context.Context, statemachine.State, statemachine.State, statemachine.Event, any) error {
		g.session.SetToken(ev.intent.Query.Get(TokenParam))

		query := make(url.Values, len(ev.intent.Query))
		for k, vs := range ev.intent.Query {
			if k != TokenParam {
				query[k] = vs
			}
		}

		// Replace the history entry so the token never survives in the URL.
		ev.res = Resolution{
			Action:  ActionRedirectInternal,
			Path:    ev.intent.Path,
			Query:   query,
			Replace: true,
			Reason:  "token extracted from url",
		}
		return nil
	}

	authNotRequired := func(context.Context, statemachine.State, statemachine.Event, any) bool {
		return !ev.route.RequiresAuth
	}

	sessionInvalid := func(ctx context.Context, _ statemachine.State, _ statemachine.Event, _ any) bool {
		return !g.session.Validate(ctx)
	}

	redirectToLogin := func(context.Context, statemachine.State, statemachine.State, statemachine.Event, any) error {
		ev.res = Resolution{
			Action: ActionRedirectExternal,
			Target: g.session.LoginURL(g.origin + ev.intent.FullPath()),
			Reason: "authentication required",
		}
		return nil
	}

	roleMissing := func(context.Context, statemachine.State, statemachine.Event, any) bool {
		return ev.route.RequiresRole != "" && !g.session.HasRole(ev.route.RequiresRole)
	}

	denyRole := func(context.Context, statemachine.State, statemachine.State, statemachine.Event, any) error {
		g.notifier.Notify(fmt.Sprintf("Access denied. This page requires the %s role.", ev.route.RequiresRole))
		ev.res = Resolution{
			Action: ActionRedirectInternal,
			Path:   g.homePath,
			Reason: "missing required role",
		}
		return nil
	}

	allow := func(context.Context, statemachine.State, statemachine.State, statemachine.Event, any) error {
		ev.res = Resolution{Action: ActionAllow}
		return nil
	}

	return statemachine.New(StateIdle,
		statemachine.Transition{From: StateIdle, To: StateTokenExtraction, Event: eventBegin},
		statemachine.Transition{
			From: StateTokenExtraction, To: StateResolved, Event: eventNext,
			Guards:  []statemachine.Guard{hasRelayToken},
			Actions: []statemachine.Action{extractToken},
		},
		statemachine.Transition{From: StateTokenExtraction, To: StateAuthCheck, Event: eventNext},
		statemachine.Transition{
			From: StateAuthCheck, To: StateResolved, Event: eventNext,
			Guards:  []statemachine.Guard{authNotRequired},
			Actions: []statemachine.Action{allow},
		},
		statemachine.Transition{
			From: StateAuthCheck, To: StateResolved, Event: eventNext,
			Guards:  []statemachine.Guard{sessionInvalid},
			Actions: []statemachine.Action{redirectToLogin},
		},
		statemachine.Transition{From: StateAuthCheck, To: StateRoleCheck, Event: eventNext},
		statemachine.Transition{
			From: StateRoleCheck, To: StateResolved, Event: eventNext,
			Guards:  []statemachine.Guard{roleMissing},
			Actions: []statemachine.Action{denyRole},
		},
		statemachine.Transition{From: StateRoleCheck, To: StateResolved, Event: eventNext,
			Actions: []statemachine.Action{allow},
		},
	)
}
