package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckyComet55/callstate-daemon/pkg/fsm"
)

func TestCyclicSource_Order(t *testing.T) {
	cs, err := NewCyclicSource("a", "b", "c")
	require.NoError(t, err)

	got := make([]fsm.Event, 0, 6)
	for i := 0; i < 6; i++ {
		got = append(got, cs.Next())
	}
	assert.Equal(t, []fsm.Event{"a", "b", "c", "a", "b", "c"}, got)
}

func TestCyclicSource_RestartsAfterFullCycles(t *testing.T) {
	cs, err := NewCyclicSource("a", "b", "c")
	require.NoError(t, err)

	first := cs.Next()
	for i := 0; i < 2*cs.Len()-1; i++ {
		cs.Next()
	}
	assert.Equal(t, first, cs.Next(), "after a multiple of the cycle length the sequence restarts")
}

func TestCyclicSource_Empty(t *testing.T) {
	_, err := NewCyclicSource()
	require.Error(t, err)
}

func TestCyclicSource_SingleEvent(t *testing.T) {
	cs, err := NewCyclicSource("a")
	require.NoError(t, err)

	assert.Equal(t, fsm.Event("a"), cs.Next())
	assert.Equal(t, fsm.Event("a"), cs.Next())
}
