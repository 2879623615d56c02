package fsm

type FSMContext struct {
	State State
	Event Event
	Data  map[string]any
	Meta  map[string]any
}

func newFSMContext(initial State) *FSMContext {
	return &FSMContext{
		State: initial,
		Data:  make(map[string]any),
		Meta:  make(map[string]any),
	}
}
