package repository

import (
	"fmt"

	"github.com/luckyComet55/callstate-daemon/pkg/fsm"
)

type LineRepository interface {
	GetLineState(string) (fsm.State, bool)
	CheckLineExists(string) (bool, error)
	AddLine(string) error
	RemoveLine(string) error
	TriggerLineEvent(string, fsm.Event) error
	SetLineMeta(string, string, any) error
	GetLineMeta(string, string) (any, error)
}

type lineRepository struct {
	lineStates  map[string]*fsm.FSM
	fsmOriginal *fsm.FSM
}

// NewLineRepository tracks one call machine per phone line, each cloned from
// a validated prototype. Lines are registered at startup and driven by a
// single consumer, so access is not locked; a second consumer would need
// its own mutual exclusion.
func NewLineRepository(prototype *fsm.FSM) LineRepository {
	return &lineRepository{
		lineStates:  make(map[string]*fsm.FSM),
		fsmOriginal: prototype,
	}
}

func (lr *lineRepository) RemoveLine(lineID string) error {
	delete(lr.lineStates, lineID)
	return nil
}

func (lr *lineRepository) GetLineState(lineID string) (fsm.State, bool) {
	machine, ok := lr.lineStates[lineID]
	if !ok {
		return "", ok
	}
	return machine.GetCurrent(), ok
}

func (lr *lineRepository) AddLine(lineID string) error {
	if _, ok := lr.lineStates[lineID]; ok {
		return fmt.Errorf("line %s already exists", lineID)
	}

	machine := lr.fsmOriginal.Copy()
	machine.GetContext().Meta["line"] = lineID
	lr.lineStates[lineID] = machine
	return nil
}

func (lr *lineRepository) CheckLineExists(lineID string) (bool, error) {
	_, ok := lr.lineStates[lineID]
	return ok, nil
}

func (lr *lineRepository) SetLineMeta(lineID string, key string, value any) error {
	machine, ok := lr.lineStates[lineID]
	if !ok {
		return fmt.Errorf("line %s does not exist", lineID)
	}

	machine.GetContext().Meta[key] = value
	return nil
}

func (lr *lineRepository) GetLineMeta(lineID string, key string) (any, error) {
	machine, ok := lr.lineStates[lineID]
	if !ok {
		return nil, fmt.Errorf("line %s does not exist", lineID)
	}

	value, ok := machine.GetContext().Meta[key]
	if !ok {
		return nil, fmt.Errorf("no meta with key: %s", key)
	}
	return value, nil
}

func (lr *lineRepository) TriggerLineEvent(lineID string, event fsm.Event) error {
	machine, ok := lr.lineStates[lineID]
	if !ok {
		return fmt.Errorf("line %s does not exist", lineID)
	}

	return machine.Apply(event)
}
