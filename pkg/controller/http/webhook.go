package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/screfy/ldw/pkg/domain/interfaces"
	"github.com/screfy/ldw/pkg/domain/types"
	"github.com/screfy/ldw/pkg/schema"
)

// WebhookHandler handles Linear webhooks
type WebhookHandler struct {
	guard   *OriginGuard
	relayUC interfaces.RelayUseCase
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(guard *OriginGuard, relayUC interfaces.RelayUseCase) *WebhookHandler {
	return &WebhookHandler{
		guard:   guard,
		relayUC: relayUC,
	}
}

// Handle processes webhook requests: origin guard, credential extraction,
// tolerant body validation, then relay
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	if err := h.guard.Check(forwardedFor(r)); err != nil {
		logger.Warn("Rejected request from untrusted origin", "error", err)
		writeError(ctx, w, err)
		return
	}

	creds, err := schema.ParseCredentials(r.URL.Query())
	if err != nil {
		logger.Warn("Invalid relay credentials", "error", err)
		writeError(ctx, w, err)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("Failed to read request body", "error", err)
		writeError(ctx, w, goerr.Wrap(err, "failed to read request body", goerr.T(types.ErrTagBadRequest)))
		return
	}
	defer r.Body.Close()

	// Tolerant mode: answering success for unsupported payloads stops
	// Linear from endlessly redelivering them
	event, ok := schema.MatchEvent(body)
	if !ok {
		logger.Info("Skipped unsupported event payload")
		writeSuccess(ctx, w, "Event skipped.")
		return
	}

	if err := h.relayUC.ProcessEvent(ctx, event, creds); err != nil {
		logger.Error("Failed to relay event", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, "OK")
}

// forwardedFor extracts the claimed origin address: the first element of
// X-Forwarded-For, empty string when absent
func forwardedFor(r *http.Request) string {
	addr, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	return strings.TrimSpace(addr)
}
