package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/luckyComet55/callstate-daemon/internal/metrics"
	"github.com/luckyComet55/callstate-daemon/internal/repository"
	"github.com/luckyComet55/callstate-daemon/internal/source"
	"github.com/luckyComet55/callstate-daemon/pkg/fsm"
)

// Consumer is the run-loop: wait for a signal, ask the event source what
// happened, feed it to the line's machine, repeat until ctx is done.
type Consumer struct {
	logger  *slog.Logger
	sync    *Synchronizer
	events  source.EventSource
	lines   repository.LineRepository
	lineID  string
	metrics *metrics.Metrics
}

func NewConsumer(sync *Synchronizer, events source.EventSource, lines repository.LineRepository, lineID string, m *metrics.Metrics, logger *slog.Logger) *Consumer {
	return &Consumer{
		logger:  logger,
		sync:    sync,
		events:  events,
		lines:   lines,
		lineID:  lineID,
		metrics: m,
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	if ok, _ := c.lines.CheckLineExists(c.lineID); !ok {
		return fmt.Errorf("line %s does not exist", c.lineID)
	}

	c.sync.WatchCancel(ctx)

	for {
		if err := c.sync.Wait(ctx); err != nil {
			c.logger.Info("consumer stopped")
			return nil
		}
		c.metrics.WakeupsTotal.Inc()

		event := c.events.Next()
		state, _ := c.lines.GetLineState(c.lineID)

		if err := c.lines.TriggerLineEvent(c.lineID, event); err != nil {
			switch {
			case errors.Is(err, fsm.ErrInvalidTransition):
				// A real decoder cannot guarantee validity, so an impossible
				// event is reported and dropped; the line keeps its state.
				c.metrics.InvalidEventsTotal.WithLabelValues(string(state), string(event)).Inc()
				c.logger.Warn("dropping event", "line", c.lineID, "state", state, "event", event)
			case errors.Is(err, fsm.ErrTableInconsistent):
				return err
			default:
				c.logger.Error(err.Error(), "line", c.lineID, "event", event)
			}
		}
	}
}
