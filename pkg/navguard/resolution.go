package navguard

import (
	"net/url"

	"github.com/skylane/flightkit/pkg/statemachine"
)

// Action is the outcome class of a guard evaluation.
type Action string

const (
	// ActionAllow lets the pending navigation proceed unmodified.
	ActionAllow Action = "allow"

	// ActionRedirectInternal replaces the pending navigation with another
	// in-app route.
	ActionRedirectInternal Action = "redirect_internal"

	// ActionRedirectExternal abandons in-app routing entirely and leaves
	// the application via a full-page navigation. The pending navigation
	// is aborted, not completed.
	ActionRedirectExternal Action = "redirect_external"
)

// Resolution is the terminal result of one guard evaluation.
type Resolution struct {
	Action Action

	// Path and Query describe the internal redirect target.
	Path  string
	Query url.Values

	// Replace indicates the internal redirect should replace the current
	// history entry instead of appending one.
	Replace bool

	// Target is the absolute URL of an external redirect.
	Target string

	// Reason is a short human-readable explanation, for logs.
	Reason string

	// Trace is the sequence of pipeline states the evaluation passed
	// through.
	Trace []statemachine.State
}
