package fsm

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition means the event has no registered handler in the
	// current state. The machine stays in its current state and no effect runs.
	ErrInvalidTransition = errors.New("event not valid in current state")
	// ErrTableInconsistent means a handler is registered for a pair the
	// transition table does not cover. Unreachable once Validate has passed.
	ErrTableInconsistent = errors.New("transition table inconsistent with handlers")
)

func NewFSM(initial State) *FSM {
	return &FSM{
		initial:      initial,
		current:      initial,
		transitions:  make(map[State]map[Event]State),
		handlers:     make(map[State]map[Event]Effect),
		onTransition: make([]TransitionCallback, 0),
		ctx:          newFSMContext(initial),
	}
}

// Copy returns a machine sharing the transition table, handlers and
// transition callbacks, reset to the initial state with a fresh context.
func (fsm *FSM) Copy() *FSM {
	return &FSM{
		initial:      fsm.initial,
		current:      fsm.initial,
		transitions:  fsm.transitions,
		handlers:     fsm.handlers,
		onTransition: fsm.onTransition,
		ctx:          newFSMContext(fsm.initial),
	}
}

func (fsm *FSM) GetContext() *FSMContext {
	return fsm.ctx
}

func (fsm *FSM) GetCurrent() State {
	fsm.mu.RLock()
	defer fsm.mu.RUnlock()

	return fsm.current
}

func (fsm *FSM) Transition(from State, event Event, to State) *FSM {
	_, ok := fsm.transitions[from]
	if !ok {
		fsm.transitions[from] = make(map[Event]State)
	}
	fsm.transitions[from][event] = to

	return fsm
}

func (fsm *FSM) Handle(state State, event Event, effect Effect) *FSM {
	_, ok := fsm.handlers[state]
	if !ok {
		fsm.handlers[state] = make(map[Event]Effect)
	}
	fsm.handlers[state][event] = effect

	return fsm
}

func (fsm *FSM) OnTransition(cb TransitionCallback) *FSM {
	fsm.onTransition = append(fsm.onTransition, cb)
	return fsm
}

// Next is the pure transition table lookup. The table is immutable once the
// machine is built, so concurrent reads need no locking.
func (fsm *FSM) Next(state State, event Event) (State, bool) {
	to, ok := fsm.transitions[state][event]
	return to, ok
}

// Validate checks that for every state the set of handled events equals the
// set of events the transition table defines a next state for. A machine
// that passes Validate can never hit ErrTableInconsistent at runtime.
func (fsm *FSM) Validate() error {
	states := map[State]struct{}{fsm.initial: {}}
	for from, byEvent := range fsm.transitions {
		states[from] = struct{}{}
		for _, to := range byEvent {
			states[to] = struct{}{}
		}
	}
	for state := range fsm.handlers {
		states[state] = struct{}{}
	}

	for state := range states {
		for event := range fsm.transitions[state] {
			if _, ok := fsm.handlers[state][event]; !ok {
				return fmt.Errorf("state %s: event %s has a transition but no handler", state, event)
			}
		}
		for event := range fsm.handlers[state] {
			if _, ok := fsm.transitions[state][event]; !ok {
				return fmt.Errorf("state %s: event %s has a handler but no transition", state, event)
			}
		}
	}

	return nil
}

// Apply consumes a single event: it runs the effect registered for the
// current state and advances to the next state from the transition table.
// On any error the machine stays in its current state.
func (fsm *FSM) Apply(event Event) error {
	fsm.mu.Lock()
	defer fsm.mu.Unlock()

	prevState := fsm.current

	handler, ok := fsm.handlers[prevState][event]
	if !ok {
		return fmt.Errorf("%w: event %s in state %s", ErrInvalidTransition, event, prevState)
	}

	fsm.ctx.State = prevState
	fsm.ctx.Event = event

	if err := handler(fsm.ctx); err != nil {
		return fmt.Errorf("effect for event %s in state %s: %w", event, prevState, err)
	}

	nextState, ok := fsm.transitions[prevState][event]
	if !ok {
		return fmt.Errorf("%w: event %s handled in state %s but has no next state", ErrTableInconsistent, event, prevState)
	}

	fsm.ctx.State = nextState

	for _, trCb := range fsm.onTransition {
		if err := trCb(prevState, nextState, event, fsm.ctx); err != nil {
			fsm.ctx.State = prevState
			return err
		}
	}

	fsm.current = nextState

	return nil
}
