// Package notifier fans alert messages out to the static recipient set.
package notifier

import (
	"context"

	"github.com/oshokin/transformer-sentry/internal/logger"
	"github.com/oshokin/transformer-sentry/internal/metrics"
)

// Sender delivers a message to a single recipient.
type Sender interface {
	SendMessage(ctx context.Context, recipientID, text string) error
}

// Notifier broadcasts text to every configured recipient, best effort.
type Notifier struct {
	// sender performs individual deliveries.
	sender Sender
	// recipients is the static broadcast target list.
	recipients []string
}

// New creates a Notifier over the provided recipient set.
func New(sender Sender, recipients []string) *Notifier {
	return &Notifier{
		sender:     sender,
		recipients: recipients,
	}
}

// Broadcast attempts delivery to each non-empty recipient. A failed delivery
// is logged and does not abort the remaining ones; an empty recipient set is
// a silent no-op. The caller never learns about individual failures.
func (n *Notifier) Broadcast(ctx context.Context, text string) {
	for _, recipient := range n.recipients {
		if recipient == "" {
			continue
		}

		if err := n.sender.SendMessage(ctx, recipient, text); err != nil {
			metrics.DeliveryFailuresTotal.Inc()
			logger.WarnKV(ctx, "Notification delivery failed", "recipient", recipient, "error", err)
		}
	}
}
