package notify

import (
	"context"
	"log"
)

// LogSender writes notifications to the application log instead of sending
// them. It is the default transport.
type LogSender struct{}

// NewLogSender creates a new LogSender.
func NewLogSender() *LogSender {
	return &LogSender{}
}

// Send logs the notification and always succeeds.
func (s *LogSender) Send(ctx context.Context, n Notification) error {
	log.Printf("notification (not delivered): to=%s subject=%q template=%s", n.Recipient, n.Subject, n.Template)
	return nil
}
