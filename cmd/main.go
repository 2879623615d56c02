package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-telegram/bot"

	dotenv "github.com/joho/godotenv"
	envconf "github.com/sethvargo/go-envconfig"

	"github.com/luckyComet55/callstate-daemon/internal/metrics"
	"github.com/luckyComet55/callstate-daemon/internal/middleware"
	"github.com/luckyComet55/callstate-daemon/internal/notifier"
	repo "github.com/luckyComet55/callstate-daemon/internal/repository"
	"github.com/luckyComet55/callstate-daemon/internal/runner"
	"github.com/luckyComet55/callstate-daemon/internal/source"
	"github.com/luckyComet55/callstate-daemon/internal/telephony"
	"github.com/luckyComet55/callstate-daemon/pkg/fsm"
)

type AppConfig struct {
	Env              string        `env:"ENV, default=dev"`
	LineID           string        `env:"LINE_ID, default=main"`
	ProducerInterval time.Duration `env:"PRODUCER_INTERVAL, default=3s"`
	NotifyEvents     []string      `env:"NOTIFY_EVENTS"`
	MetricsAddr      string        `env:"METRICS_ADDR"`
	BotApiKey        string        `env:"BOT_TOKEN"`
	NotifyChatID     int64         `env:"NOTIFY_CHAT_ID"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := dotenv.Load(); err != nil {
		log.Println("Warning! No .env file found")
	}

	var c AppConfig

	envconf.MustProcess(ctx, &c)

	logger := configureLogger(c)
	m := metrics.New()

	var sink notifier.Notifier = notifier.NewLogNotifier(logger.With("component", "logNotifier"))
	if c.BotApiKey != "" {
		b, err := bot.New(c.BotApiKey)
		if err != nil {
			panic(err)
		}
		tgSink := notifier.NewTelegramNotifier(b, c.NotifyChatID, logger.With("component", "telegramNotifier"))
		sink = notifier.NewMultiNotifier(sink, tgSink)
	}
	if len(c.NotifyEvents) > 0 {
		allowedEvents := make([]fsm.Event, 0, len(c.NotifyEvents))
		for _, event := range c.NotifyEvents {
			allowedEvents = append(allowedEvents, fsm.Event(event))
		}
		eventFilter := middleware.NewEventFilter(allowedEvents, logger.With("component", "eventFilter"))
		sink = middleware.WithEventFilter(eventFilter, sink)
	}

	callMachine, err := telephony.NewCallMachine(sink)
	if err != nil {
		panic(err)
	}
	callMachine.OnTransition(func(from, to fsm.State, event fsm.Event, _ *fsm.FSMContext) error {
		m.TransitionsTotal.WithLabelValues(string(from), string(to), string(event)).Inc()
		logger.Debug("call transition", "from", from, "to", to, "event", event)
		return nil
	})

	lineRepo := repo.NewLineRepository(callMachine)
	if err := lineRepo.AddLine(c.LineID); err != nil {
		panic(err)
	}
	if err := lineRepo.SetLineMeta(c.LineID, "ctx", ctx); err != nil {
		panic(err)
	}

	events, err := source.NewCyclicSource(telephony.DefaultSequence()...)
	if err != nil {
		panic(err)
	}

	eventReady := runner.NewSynchronizer()
	producer := runner.NewProducer(eventReady, c.ProducerInterval, m, logger.With("component", "producer"))
	consumer := runner.NewConsumer(eventReady, events, lineRepo, c.LineID, m, logger.With("component", "consumer"))

	if c.MetricsAddr != "" {
		go serveMetrics(ctx, c.MetricsAddr, m, logger.With("component", "metrics"))
	}

	go producer.Run(ctx)

	if err := consumer.Run(ctx); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func serveMetrics(ctx context.Context, addr string, m *metrics.Metrics, logger *slog.Logger) {
	srv := &http.Server{Addr: addr, Handler: m.Handler()}
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error(err.Error())
		}
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error(err.Error())
	}
}

func configureLogger(c AppConfig) *slog.Logger {
	var logger *slog.Logger
	switch c.Env {
	case "dev":
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case "prod":
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		panic(fmt.Sprintf("incorrect env type: %s. possible values: dev, prod", c.Env))
	}
	return logger
}
