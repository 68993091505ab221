package notify

import (
	"context"
	"fmt"
	"html"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers notifications via the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a sender using the given API key and from address.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Send delivers a single notification email.
func (s *ResendSender) Send(ctx context.Context, n Notification) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{n.Recipient},
		Subject: n.Subject,
		Html:    renderHTML(n),
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	return nil
}

// renderHTML produces a plain definition-list body from the notification
// data. Proper templates can replace this per-template later.
func renderHTML(n Notification) string {
	body := "<h2>" + html.EscapeString(n.Subject) + "</h2><dl>"
	for _, key := range []string{"teacher_name", "school_name", "date", "time_range", "students", "coach", "event_link"} {
		v := n.Data[key]
		if v == "" {
			continue
		}
		body += "<dt>" + html.EscapeString(key) + "</dt><dd>" + html.EscapeString(v) + "</dd>"
	}
	return body + "</dl>"
}
