package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/luckyComet55/callstate-daemon/internal/notifier"
	"github.com/luckyComet55/callstate-daemon/pkg/fsm"
)

type EventFilter struct {
	logger        *slog.Logger
	allowedEvents []fsm.Event
}

// NewEventFilter allows only the listed events through. An empty list
// allows everything.
func NewEventFilter(allowedEvents []fsm.Event, logger *slog.Logger) *EventFilter {
	return &EventFilter{
		allowedEvents: allowedEvents,
		logger:        logger,
	}
}

func (ef *EventFilter) IsEventAllowed(event fsm.Event) bool {
	return len(ef.allowedEvents) == 0 || slices.Contains(ef.allowedEvents, event)
}

func WithEventFilter(filter *EventFilter, sink notifier.Notifier) notifier.Notifier {
	return notifier.NotifierFunc(func(ctx context.Context, line string, event fsm.Event, message string) error {
		if !filter.IsEventAllowed(event) {
			filter.logger.Debug(fmt.Sprintf("event %s on line %s is not in the notify list", event, line))
			return nil
		}

		return sink.Notify(ctx, line, event, message)
	})
}
