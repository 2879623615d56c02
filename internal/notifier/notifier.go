package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"

	"github.com/luckyComet55/callstate-daemon/pkg/fsm"
)

// Notifier is the sink every call transition effect emits through.
type Notifier interface {
	Notify(ctx context.Context, line string, event fsm.Event, message string) error
}

type NotifierFunc func(ctx context.Context, line string, event fsm.Event, message string) error

func (nf NotifierFunc) Notify(ctx context.Context, line string, event fsm.Event, message string) error {
	return nf(ctx, line, event, message)
}

type logNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) Notifier {
	return &logNotifier{
		logger: logger,
	}
}

func (ln *logNotifier) Notify(_ context.Context, line string, event fsm.Event, message string) error {
	ln.logger.Info(message, "line", line, "event", event)
	return nil
}

type telegramNotifier struct {
	logger *slog.Logger
	bot    *bot.Bot
	chatID int64
}

func NewTelegramNotifier(b *bot.Bot, chatID int64, logger *slog.Logger) Notifier {
	return &telegramNotifier{
		logger: logger,
		bot:    b,
		chatID: chatID,
	}
}

func (tn *telegramNotifier) Notify(ctx context.Context, line string, _ fsm.Event, message string) error {
	if _, err := tn.bot.SendMessage(ctx, &bot.SendMessageParams{
		Text:   fmt.Sprintf("line %s: %s", line, message),
		ChatID: tn.chatID,
	}); err != nil {
		tn.logger.Error(err.Error())
		return err
	}
	return nil
}

type multiNotifier struct {
	sinks []Notifier
}

// NewMultiNotifier fans a notification out to every sink. All sinks are
// attempted; the first error is returned.
func NewMultiNotifier(sinks ...Notifier) Notifier {
	return &multiNotifier{
		sinks: sinks,
	}
}

func (mn *multiNotifier) Notify(ctx context.Context, line string, event fsm.Event, message string) error {
	var firstErr error
	for _, sink := range mn.sinks {
		if err := sink.Notify(ctx, line, event, message); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
