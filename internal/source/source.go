package source

import (
	"errors"
	"slices"
	"sync"

	"github.com/luckyComet55/callstate-daemon/pkg/fsm"
)

// EventSource yields the next logical event per consumed wake-up.
type EventSource interface {
	Next() fsm.Event
}

// CyclicSource replays a fixed sequence forever.
type CyclicSource struct {
	sequence []fsm.Event
	cursor   int
	mu       sync.Mutex
}

func NewCyclicSource(sequence ...fsm.Event) (*CyclicSource, error) {
	if len(sequence) == 0 {
		return nil, errors.New("cyclic source needs at least one event")
	}

	return &CyclicSource{
		sequence: slices.Clone(sequence),
	}, nil
}

func (cs *CyclicSource) Next() fsm.Event {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	event := cs.sequence[cs.cursor]
	cs.cursor = (cs.cursor + 1) % len(cs.sequence)
	return event
}

func (cs *CyclicSource) Len() int {
	return len(cs.sequence)
}
