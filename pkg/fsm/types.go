package fsm

import "sync"

type (
	State string
	Event string

	Effect             func(ctx *FSMContext) error
	TransitionCallback func(from, to State, event Event, ctx *FSMContext) error

	FSM struct {
		initial      State
		current      State
		transitions  map[State]map[Event]State
		handlers     map[State]map[Event]Effect
		onTransition []TransitionCallback

		ctx *FSMContext
		mu  sync.RWMutex
	}
)
