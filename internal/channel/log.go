package channel

import (
	"context"
	"log/slog"
)

// LogChannel writes messages to the structured log instead of a real
// gateway. Used in development and when no gateway URL is configured.
type LogChannel struct {
	logger *slog.Logger
}

func NewLogChannel(logger *slog.Logger) *LogChannel {
	return &LogChannel{logger: logger}
}

func (c *LogChannel) Send(_ context.Context, target, text string) error {
	c.logger.Info("message dispatched to log channel",
		slog.String("target", target),
		slog.Int("length", len(text)),
	)
	return nil
}
