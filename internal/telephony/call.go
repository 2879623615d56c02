package telephony

import (
	"context"

	"github.com/luckyComet55/callstate-daemon/internal/notifier"
	"github.com/luckyComet55/callstate-daemon/pkg/fsm"
)

const (
	CALL_STATE_IDLE    fsm.State = "IDLE"
	CALL_STATE_RINGING fsm.State = "RINGING"
	CALL_STATE_IN_CALL fsm.State = "IN_CALL"
)

const (
	EVENT_INCOMING_CALL fsm.Event = "INCOMING_CALL"
	EVENT_CALL_ANSWERED fsm.Event = "CALL_ANSWERED"
	EVENT_CALL_DECLINED fsm.Event = "CALL_DECLINED"
	EVENT_CALL_ENDED    fsm.Event = "CALL_ENDED"
)

func CallStates() []fsm.State {
	return []fsm.State{CALL_STATE_IDLE, CALL_STATE_RINGING, CALL_STATE_IN_CALL}
}

func CallEvents() []fsm.Event {
	return []fsm.Event{EVENT_INCOMING_CALL, EVENT_CALL_ANSWERED, EVENT_CALL_DECLINED, EVENT_CALL_ENDED}
}

// DefaultSequence is the scripted stimulus of the call simulator: a call
// arrives, is answered, ends, and the script wraps around.
func DefaultSequence() []fsm.Event {
	return []fsm.Event{EVENT_INCOMING_CALL, EVENT_CALL_ANSWERED, EVENT_CALL_ENDED}
}

// NewCallMachine builds the call state machine. Every handled pair has a
// table entry and vice versa; Validate enforces that before the machine is
// handed out. Effects only emit through the notifier, they never touch the
// machine's state.
func NewCallMachine(sink notifier.Notifier) (*fsm.FSM, error) {
	machine := fsm.NewFSM(CALL_STATE_IDLE).
		Transition(CALL_STATE_IDLE, EVENT_INCOMING_CALL, CALL_STATE_RINGING).
		Transition(CALL_STATE_RINGING, EVENT_CALL_ANSWERED, CALL_STATE_IN_CALL).
		Transition(CALL_STATE_RINGING, EVENT_CALL_DECLINED, CALL_STATE_IDLE).
		Transition(CALL_STATE_IN_CALL, EVENT_CALL_ENDED, CALL_STATE_IDLE).
		Handle(CALL_STATE_IDLE, EVENT_INCOMING_CALL, notifyEffect(sink, "Phone started ringing")).
		Handle(CALL_STATE_RINGING, EVENT_CALL_ANSWERED, notifyEffect(sink, "Call answered. Starting conversation")).
		Handle(CALL_STATE_RINGING, EVENT_CALL_DECLINED, notifyEffect(sink, "Call declined")).
		Handle(CALL_STATE_IN_CALL, EVENT_CALL_ENDED, notifyEffect(sink, "Call ended"))

	if err := machine.Validate(); err != nil {
		return nil, err
	}

	return machine, nil
}

func notifyEffect(sink notifier.Notifier, message string) fsm.Effect {
	return func(ctx *fsm.FSMContext) error {
		c := context.Background()
		if metaCtx, ok := ctx.Meta["ctx"].(context.Context); ok {
			c = metaCtx
		}
		line, _ := ctx.Meta["line"].(string)

		return sink.Notify(c, line, ctx.Event, message)
	}
}
