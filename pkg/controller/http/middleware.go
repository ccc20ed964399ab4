package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/screfy/ldw/pkg/domain/types"
	"github.com/screfy/ldw/pkg/schema"
)

// LoggingMiddleware returns a middleware that logs HTTP requests
func LoggingMiddleware(ctx context.Context) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			logger := ctxlog.From(ctx)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("HTTP request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"duration_ms", time.Since(start).Milliseconds(),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// Envelope is the response body of every webhook endpoint reply
type Envelope struct {
	Success bool `json:"success"`
	Message any  `json:"message"`
	Error   any  `json:"error"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.From(ctx).Error("Failed to encode response", "error", err)
	}
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, message string) {
	writeJSON(ctx, w, http.StatusOK, Envelope{Success: true, Message: message, Error: nil})
}

// writeError maps the error taxonomy to a status code and envelope.
// Anything untagged, including upstream transport failures, stays an
// opaque 500 so internals never leak to the sender.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var errBody any = "Something went wrong."

	switch {
	case goerr.HasTag(err, types.ErrTagBadRequest):
		status = http.StatusBadRequest
		if vs := schema.Violations(err); len(vs) > 0 {
			errBody = vs
		} else {
			errBody = err.Error()
		}
	case goerr.HasTag(err, types.ErrTagForbidden):
		status = http.StatusForbidden
		errBody = err.Error()
	case goerr.HasTag(err, types.ErrTagMethodNotAllowed):
		status = http.StatusMethodNotAllowed
		errBody = err.Error()
	}

	writeJSON(ctx, w, status, Envelope{Success: false, Message: nil, Error: errBody})
}
