// Package notify delivers admin notifications over email and mobile push.
package notify

import (
	"context"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Email is a single outgoing message
type Email struct {
	To      string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

// Push is a notification for one device token
type Push struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

type EmailSender interface {
	SendEmail(ctx context.Context, email Email) error
}

type PushSender interface {
	SendPush(ctx context.Context, push Push) error
}

// NoopSender stands in for a channel that is not configured
type NoopSender struct{}

func (NoopSender) SendEmail(ctx context.Context, email Email) error { return nil }

func (NoopSender) SendPush(ctx context.Context, push Push) error { return nil }

var rupiahPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah renders an amount the way receipts print it, e.g. Rp130.000
func FormatRupiah(amount int64) string {
	if amount < 0 {
		return "-" + rupiahPrinter.Sprintf("Rp%d", -amount)
	}
	return rupiahPrinter.Sprintf("Rp%d", amount)
}
