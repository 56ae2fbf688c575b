// Package statemachine implements a small finite state machine with guarded
// transitions and side-effect actions.
//
// A Machine is built from an initial State and a list of Transitions. Firing
// an Event picks the first registered transition for the current state whose
// guards all pass, runs its actions in order, and moves to the target state.
// An action returning an error aborts the transition.
//
// Registering multiple transitions for the same state/event pair gives
// priority-ordered branching, which is how the navigation guard expresses
// its skip-vs-check decisions.
//
//	m := statemachine.New("idle",
//	    statemachine.Transition{From: "idle", To: "running", Event: "start"},
//	    statemachine.Transition{From: "running", To: "done", Event: "finish"},
//	)
//	err := m.Fire(ctx, "start", nil)
//
// The visited-state trace is retained and exposed via Trace for debugging
// and tests.
package statemachine
