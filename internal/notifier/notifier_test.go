package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckyComet55/callstate-daemon/pkg/fsm"
)

func TestMultiNotifier_FansOutToAllSinks(t *testing.T) {
	var first, second int
	sink := NewMultiNotifier(
		NotifierFunc(func(_ context.Context, _ string, _ fsm.Event, _ string) error {
			first++
			return nil
		}),
		NotifierFunc(func(_ context.Context, _ string, _ fsm.Event, _ string) error {
			second++
			return nil
		}),
	)

	require.NoError(t, sink.Notify(context.Background(), "main", "CALL_ENDED", "Call ended"))
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestMultiNotifier_KeepsGoingOnError(t *testing.T) {
	sinkErr := errors.New("telegram unreachable")
	var reached bool
	sink := NewMultiNotifier(
		NotifierFunc(func(_ context.Context, _ string, _ fsm.Event, _ string) error {
			return sinkErr
		}),
		NotifierFunc(func(_ context.Context, _ string, _ fsm.Event, _ string) error {
			reached = true
			return nil
		}),
	)

	err := sink.Notify(context.Background(), "main", "CALL_ENDED", "Call ended")
	require.ErrorIs(t, err, sinkErr)
	assert.True(t, reached, "later sinks still run when an earlier one fails")
}
