package fsm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordEffect(calls *[]string, name string) Effect {
	return func(_ *FSMContext) error {
		*calls = append(*calls, name)
		return nil
	}
}

func newTestFSM(calls *[]string) *FSM {
	return NewFSM("a").
		Transition("a", "go", "b").
		Transition("b", "back", "a").
		Handle("a", "go", recordEffect(calls, "go")).
		Handle("b", "back", recordEffect(calls, "back"))
}

func TestValidate(t *testing.T) {
	var calls []string
	require.NoError(t, newTestFSM(&calls).Validate())
}

func TestValidate_HandlerWithoutTransition(t *testing.T) {
	var calls []string
	machine := newTestFSM(&calls).
		Handle("a", "jump", recordEffect(&calls, "jump"))

	err := machine.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has a handler but no transition")
}

func TestValidate_TransitionWithoutHandler(t *testing.T) {
	var calls []string
	machine := newTestFSM(&calls).
		Transition("a", "jump", "b")

	err := machine.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has a transition but no handler")
}

func TestApply_AdvancesAndRunsEffect(t *testing.T) {
	var calls []string
	machine := newTestFSM(&calls)

	require.NoError(t, machine.Apply("go"))
	assert.Equal(t, State("b"), machine.GetCurrent())
	assert.Equal(t, []string{"go"}, calls)
}

func TestApply_InvalidEvent(t *testing.T) {
	var calls []string
	machine := newTestFSM(&calls)

	err := machine.Apply("back")
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, State("a"), machine.GetCurrent())
	assert.Empty(t, calls)
}

func TestApply_EffectErrorKeepsState(t *testing.T) {
	effectErr := errors.New("sink unavailable")
	machine := NewFSM("a").
		Transition("a", "go", "b").
		Handle("a", "go", func(_ *FSMContext) error { return effectErr })

	err := machine.Apply("go")
	require.ErrorIs(t, err, effectErr)
	assert.Equal(t, State("a"), machine.GetCurrent())
}

func TestApply_TableInconsistent(t *testing.T) {
	var calls []string
	// Handler registered without a table entry; Validate would reject this.
	machine := NewFSM("a").
		Handle("a", "go", recordEffect(&calls, "go"))

	err := machine.Apply("go")
	require.ErrorIs(t, err, ErrTableInconsistent)
	assert.Equal(t, State("a"), machine.GetCurrent())
}

func TestNext(t *testing.T) {
	var calls []string
	machine := newTestFSM(&calls)

	next, ok := machine.Next("a", "go")
	require.True(t, ok)
	assert.Equal(t, State("b"), next)

	_, ok = machine.Next("a", "back")
	assert.False(t, ok)
}

func TestOnTransition(t *testing.T) {
	var calls []string
	var observed []string
	machine := newTestFSM(&calls).
		OnTransition(func(from, to State, event Event, _ *FSMContext) error {
			observed = append(observed, string(from)+"->"+string(to)+":"+string(event))
			return nil
		})

	require.NoError(t, machine.Apply("go"))
	require.NoError(t, machine.Apply("back"))
	assert.Equal(t, []string{"a->b:go", "b->a:back"}, observed)
}

func TestCopy_IndependentState(t *testing.T) {
	var calls []string
	machine := newTestFSM(&calls)
	clone := machine.Copy()

	require.NoError(t, clone.Apply("go"))
	assert.Equal(t, State("b"), clone.GetCurrent())
	assert.Equal(t, State("a"), machine.GetCurrent())
}
