// Package server is the HTTP wrapper around the monitor process: health
// probe, Prometheus metrics and the chat webhook feeding the dispatcher.
package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oshokin/transformer-sentry/internal/chat"
	"github.com/oshokin/transformer-sentry/internal/logger"
)

// Dispatcher handles an inbound chat message.
type Dispatcher interface {
	Handle(ctx context.Context, senderID, text string)
}

// Handler serves the HTTP surface of the monitor.
type Handler struct {
	// dispatcher executes inbound commands.
	dispatcher Dispatcher
	// secret guards the webhook path.
	secret string
}

// NewHandler creates the HTTP handler set.
func NewHandler(dispatcher Dispatcher, secret string) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		secret:     secret,
	}
}

// NewRouter builds the chi router exposing health, metrics and the webhook.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/webhook/{secret}", h.handleWebhook)

	return r
}

// handleHealth reports liveness.
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleWebhook receives an inbound chat update and feeds the dispatcher.
// The reply is 200 regardless of authorization outcome so the transport
// does not retry and strangers learn nothing; only a bad secret gets 403.
func (h *Handler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	secret := chi.URLParam(r, "secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.secret)) != 1 {
		http.Error(w, "forbidden", http.StatusForbidden)

		return
	}

	var update chat.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		logger.WarnKV(r.Context(), "Undecodable webhook payload", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)

		return
	}

	h.dispatcher.Handle(r.Context(), update.SenderID, update.Text)

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
