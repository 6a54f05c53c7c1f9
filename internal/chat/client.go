package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// Update is an inbound chat event delivered through the webhook.
type Update struct {
	// SenderID identifies the chat that issued the message.
	SenderID string `json:"sender_id"`
	// Text is the raw message text, e.g. "/relay_close".
	Text string `json:"text"`
}

// sendMessageRequest is the chat gateway sendMessage payload.
type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

const (
	// breakerConsecutiveFailures trips the breaker open.
	breakerConsecutiveFailures = 5

	// breakerOpenTimeout is how long the breaker stays open before probing.
	breakerOpenTimeout = 30 * time.Second
)

var (
	// errRecipientRequired is returned when the recipient id is empty.
	errRecipientRequired = errors.New("recipient must be provided")
	// errMessageRequired is returned when the message text is empty.
	errMessageRequired = errors.New("message text must be provided")
)

// Client sends messages through the chat gateway REST API.
// Safe for concurrent use: each call is an independent request.
type Client struct {
	// httpClient carries the bounded per-call timeout.
	httpClient *http.Client
	// baseURL is the gateway API base, e.g. "https://chat.local/bot".
	baseURL string
	// token authenticates requests.
	token string
	// breaker fails deliveries fast while the gateway is down.
	breaker *gobreaker.CircuitBreaker
}

// NewClient creates a chat gateway client with the given call timeout.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "chat-gateway",
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerConsecutiveFailures
			},
			Timeout: breakerOpenTimeout,
		}),
	}
}

// SendMessage delivers text to a single recipient.
// A delivery failure is returned to the caller, who decides whether it is
// soft (broadcast fan-out) or worth reporting.
func (c *Client) SendMessage(ctx context.Context, recipientID, text string) error {
	if recipientID == "" {
		return errRecipientRequired
	}

	if text == "" {
		return errMessageRequired
	}

	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.post(ctx, recipientID, text)
	})
	if err != nil {
		return fmt.Errorf("send message to %s: %w", recipientID, err)
	}

	return nil
}

// post performs the sendMessage HTTP call.
func (c *Client) post(ctx context.Context, recipientID, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID: recipientID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sendMessage", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}

	defer func() {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("chat gateway replied %s", resp.Status)
	}

	return nil
}
