package mailer

import (
	"context"

	"go.uber.org/zap"
)

// consoleMailer logs instead of sending. Used when no provider key is
// configured, typically local development.
type consoleMailer struct {
	logger *zap.Logger
}

func NewConsole(logger *zap.Logger) Mailer {
	return &consoleMailer{logger: logger.Named("mailer.console")}
}

func (m *consoleMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("mail delivered to console",
		zap.String("to", msg.ToEmail),
		zap.String("subject", msg.Subject),
		zap.Int("attachments", len(msg.Attachments)),
	)
	return nil
}
