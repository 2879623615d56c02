package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/luckyComet55/callstate-daemon/internal/metrics"
)

// Producer simulates arrival of external call stimuli: one fire-and-forget
// signal per interval.
type Producer struct {
	logger   *slog.Logger
	sync     *Synchronizer
	metrics  *metrics.Metrics
	interval time.Duration
}

func NewProducer(sync *Synchronizer, interval time.Duration, m *metrics.Metrics, logger *slog.Logger) *Producer {
	return &Producer{
		logger:   logger,
		sync:     sync,
		metrics:  m,
		interval: interval,
	}
}

func (p *Producer) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("producer stopped")
			return
		case <-ticker.C:
			p.sync.Signal()
			p.metrics.SignalsTotal.Inc()
			p.logger.Debug("signaled event available")
		}
	}
}
