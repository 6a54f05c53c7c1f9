package command

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/oshokin/transformer-sentry/internal/domain/safety"
	"github.com/oshokin/transformer-sentry/internal/logger"
	"github.com/oshokin/transformer-sentry/internal/metrics"
	"github.com/oshokin/transformer-sentry/internal/store"
)

// Sender delivers a confirmation reply to a single recipient.
type Sender interface {
	SendMessage(ctx context.Context, recipientID, text string) error
}

// helpText is the fixed reply to the start command.
const helpText = "Transformer Safety Bot ready.\n" +
	"/status – live snapshot\n" +
	"/maintenance_on /maintenance_off – toggle maintenance\n" +
	"/relay_open /relay_close – control relay\n" +
	"/earthrod_on /earthrod_off – control earth rod\n"

// binding ties a command name to its store mutation and confirmation text.
type binding struct {
	// fields is the exact mutation written to the state document.
	fields map[string]any
	// confirmation is sent back to the sender after the write.
	confirmation string
}

// bindings is the fixed command table. relay_on mirrors relay_status for
// consumers of the document that read either field.
//
//nolint:gochecknoglobals // The command table is immutable configuration.
var bindings = map[string]binding{
	"maintenance_on": {
		fields:       map[string]any{safety.FieldMaintenanceMode: true},
		confirmation: "Maintenance mode: ON",
	},
	"maintenance_off": {
		fields:       map[string]any{safety.FieldMaintenanceMode: false},
		confirmation: "Maintenance mode: OFF",
	},
	"relay_open": {
		fields:       map[string]any{safety.FieldRelayStatus: 0, safety.FieldRelayOn: false},
		confirmation: "Relay: OPEN requested",
	},
	"relay_close": {
		fields:       map[string]any{safety.FieldRelayStatus: 1, safety.FieldRelayOn: true},
		confirmation: "Relay: CLOSED requested",
	},
	"earthrod_on": {
		fields:       map[string]any{safety.FieldEarthRodStatus: 1},
		confirmation: "Earth rod: ENGAGE requested",
	},
	"earthrod_off": {
		fields:       map[string]any{safety.FieldEarthRodStatus: 0},
		confirmation: "Earth rod: RETRACT requested",
	},
}

// Dispatcher authorizes and executes operator commands.
type Dispatcher struct {
	// gateway performs state document reads and mutations.
	gateway store.Gateway
	// sender delivers confirmation replies to the issuing sender only.
	sender Sender
	// authorized is the recipient set used as the allow-list.
	authorized map[string]struct{}
	// thresholds parameterize the status report.
	thresholds safety.Thresholds
}

// NewDispatcher creates a dispatcher over the recipient set.
// The same identities that receive broadcasts are allowed to command.
func NewDispatcher(gateway store.Gateway, sender Sender, recipients []string, thresholds safety.Thresholds) *Dispatcher {
	authorized := make(map[string]struct{}, len(recipients))

	for _, r := range recipients {
		if r != "" {
			authorized[r] = struct{}{}
		}
	}

	return &Dispatcher{
		gateway:    gateway,
		sender:     sender,
		authorized: authorized,
		thresholds: thresholds,
	}
}

// Authorized reports whether the sender may issue commands.
// Exact string membership, no normalization.
func (d *Dispatcher) Authorized(senderID string) bool {
	_, ok := d.authorized[senderID]

	return ok
}

// Handle processes one inbound chat message. Unauthorized and unknown
// commands are dropped without any reply: the bot does not confirm its
// presence to unlisted identities.
func (d *Dispatcher) Handle(ctx context.Context, senderID, text string) {
	name := parseCommand(text)
	if name == "" {
		return
	}

	if !d.Authorized(senderID) {
		// Expected traffic, not an error.
		logger.DebugKV(ctx, "Ignoring command from unlisted sender", "command", name)

		return
	}

	ctx = logger.WithKV(ctx, "command", name, "command_id", uuid.NewString())

	switch name {
	case "status":
		snapshot := d.gateway.Read(ctx)
		d.reply(ctx, senderID, Report(snapshot, d.thresholds))
	case "start":
		d.reply(ctx, senderID, helpText)
	default:
		b, ok := bindings[name]
		if !ok {
			logger.DebugKV(ctx, "Unknown command, no reply")

			return
		}

		d.gateway.Write(ctx, b.fields)
		d.reply(ctx, senderID, b.confirmation)
	}

	metrics.CommandsTotal.WithLabelValues(name).Inc()
	logger.InfoKV(ctx, "Command executed", "sender", senderID)
}

// reply confirms to the issuing sender only. Delivery failures are soft:
// the mutation already happened and the next status command shows it.
func (d *Dispatcher) reply(ctx context.Context, senderID, text string) {
	if err := d.sender.SendMessage(ctx, senderID, text); err != nil {
		metrics.DeliveryFailuresTotal.Inc()
		logger.WarnKV(ctx, "Confirmation delivery failed", "error", err)
	}
}

// parseCommand extracts the command name from a chat message:
// leading slash stripped, bot mention suffix dropped, first word only.
func parseCommand(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return ""
	}

	name := strings.TrimPrefix(text, "/")
	if i := strings.IndexAny(name, " \t\n"); i >= 0 {
		name = name[:i]
	}

	// "/status@sentry_bot" addresses this bot in a group chat.
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}

	return strings.ToLower(name)
}
