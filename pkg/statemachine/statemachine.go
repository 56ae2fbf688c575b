package statemachine

import (
	"context"
	"sync"
)

// State identifies a state in the machine.
type State string

// Event triggers a state transition.
type Event string

// Guard evaluates whether a transition should be taken based on runtime
// conditions. Guards may be stateful closures over the evaluation data.
type Guard func(ctx context.Context, from State, event Event, data any) bool

// Action executes side effects during a transition. Returning an error
// prevents the state change.
type Action func(ctx context.Context, from, to State, event Event, data any) error

// Transition defines a state change triggered by an event, with optional
// guards and actions.
type Transition struct {
	From    State
	To      State
	Event   Event
	Guards  []Guard  // all must pass for the transition to be taken
	Actions []Action // executed in order before the state change
}

// Machine is an in-memory finite state machine. Transitions registered for
// the same from/event pair are tried in registration order; the first one
// whose guards all pass wins, which enables guard-based branching.
type Machine struct {
	mu          sync.Mutex
	initial     State
	current     State
	trace       []State
	transitions map[State]map[Event][]Transition
}

// New creates a machine in the given initial state.
func New(initial State, transitions ...Transition) *Machine {
	m := &Machine{
		initial:     initial,
		current:     initial,
		trace:       []State{initial},
		transitions: make(map[State]map[Event][]Transition),
	}
	for _, t := range transitions {
		m.add(t)
	}
	return m
}

func (m *Machine) add(t Transition) {
	if _, ok := m.transitions[t.From]; !ok {
		m.transitions[t.From] = make(map[Event][]Transition)
	}
	m.transitions[t.From][t.Event] = append(m.transitions[t.From][t.Event], t)
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Trace returns the sequence of states visited since creation or the last
// Reset, starting with the initial state.
func (m *Machine) Trace() []State {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]State, len(m.trace))
	copy(out, m.trace)
	return out
}

// Fire attempts to transition using the given event. The evaluation data is
// passed through to guards and actions.
func (m *Machine) Fire(ctx context.Context, event Event, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.pick(ctx, event, data)
	if err != nil {
		return err
	}

	for _, action := range t.Actions {
		if action == nil {
			continue
		}
		if err := action(ctx, t.From, t.To, event, data); err != nil {
			return err
		}
	}

	m.current = t.To
	m.trace = append(m.trace, t.To)
	return nil
}

// CanFire reports whether the event would cause a transition from the
// current state. Guards are evaluated; actions are not run.
func (m *Machine) CanFire(ctx context.Context, event Event, data any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := m.pick(ctx, event, data)
	return err == nil
}

// Reset returns the machine to its initial state and clears the trace.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial
	m.trace = []State{m.initial}
}

func (m *Machine) pick(ctx context.Context, event Event, data any) (Transition, error) {
	candidates := m.transitions[m.current][event]
	if len(candidates) == 0 {
		return Transition{}, &NoTransitionError{State: m.current, Event: event}
	}

	for _, t := range candidates {
		if guardsPass(ctx, t, event, data, m.current) {
			return t, nil
		}
	}

	return Transition{}, &RejectedError{State: m.current, Event: event}
}

func guardsPass(ctx context.Context, t Transition, event Event, data any, from State) bool {
	for _, g := range t.Guards {
		if g != nil && !g(ctx, from, event, data) {
			return false
		}
	}
	return true
}
