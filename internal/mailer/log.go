package mailer

import (
	"context"

	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/logger"
)

// LogSender is the development Sender: it logs instead of delivering.
type LogSender struct{}

// NewLogSender creates a sender that only logs.
func NewLogSender() *LogSender { return &LogSender{} }

// Send logs the message and reports success.
func (s *LogSender) Send(_ context.Context, msg Message) error {
	logger.Info("email send (log sender)",
		"to", msg.To,
		"from", msg.FromEmail,
		"subject", msg.Subject)
	return nil
}
