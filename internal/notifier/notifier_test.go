package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errTestDelivery = errors.New("test delivery error")

// recordingSender is a Sender capturing deliveries and failing selected recipients.
type recordingSender struct {
	// delivered collects the recipients of every attempted delivery.
	delivered []string
	// failFor lists recipients whose deliveries fail.
	failFor map[string]bool
}

func (s *recordingSender) SendMessage(_ context.Context, recipientID, _ string) error {
	s.delivered = append(s.delivered, recipientID)

	if s.failFor[recipientID] {
		return errTestDelivery
	}

	return nil
}

// TestNotifier_Broadcast verifies fan-out order and that empty ids are skipped.
func TestNotifier_Broadcast(t *testing.T) {
	t.Parallel()

	sender := new(recordingSender)
	n := New(sender, []string{"1001", "", "1002"})

	n.Broadcast(context.Background(), "HIGH TEMP: 51.0 °C")

	require.Equal(t, []string{"1001", "1002"}, sender.delivered)
}

// TestNotifier_Broadcast_FailureIsolation verifies one failing delivery does
// not abort the remaining recipients.
func TestNotifier_Broadcast_FailureIsolation(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{failFor: map[string]bool{"1001": true}}
	n := New(sender, []string{"1001", "1002", "1003"})

	n.Broadcast(context.Background(), "Overcurrent: 2.50 A — Relay opened")

	require.Equal(t, []string{"1001", "1002", "1003"}, sender.delivered)
}

// TestNotifier_Broadcast_EmptySet verifies an empty recipient set is a no-op.
func TestNotifier_Broadcast_EmptySet(t *testing.T) {
	t.Parallel()

	sender := new(recordingSender)
	n := New(sender, nil)

	n.Broadcast(context.Background(), "unused")

	require.Empty(t, sender.delivered)
}
