package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/mesto-api/internal/api/shared"
	"github.com/phrazzld/mesto-api/internal/apperr"
	"github.com/phrazzld/mesto-api/internal/platform/logger"
	"github.com/phrazzld/mesto-api/internal/redact"
)

// HandleAPIError is the single place errors become HTTP responses.
// The status and message come from the error's apperr kind; anything
// unclassified is reported as a generic Internal error. Validation failures
// also carry field-level details.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperr.From(err)
	if appErr == nil {
		appErr = apperr.Internal(errors.New("nil error passed to error handler"))
	}

	log := logger.FromContext(r.Context())
	attrs := []any{
		slog.String("kind", appErr.Kind.String()),
		slog.Int("status", appErr.StatusCode()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	}
	if traceID := shared.GetTraceID(r.Context()); traceID != "" {
		attrs = append(attrs, slog.String("trace_id", traceID))
	}

	if appErr.Kind == apperr.KindInternal {
		log.Error("request failed", append(attrs, slog.String("error", redact.Error(err)))...)
	} else {
		log.Debug("request rejected", append(attrs, slog.String("error", redact.Error(err)))...)
	}

	resp := shared.ErrorResponse{Message: appErr.ClientMessage()}
	var verr *shared.ValidationError
	if appErr.Kind == apperr.KindBadRequest && errors.As(err, &verr) {
		resp.Details = verr.Fields
	}
	shared.RespondWithJSON(w, r, appErr.StatusCode(), resp)
}

// NotFoundHandler answers requests for routes that do not exist.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	HandleAPIError(w, r, apperr.NotFound(""))
}

// MethodNotAllowedHandler answers requests using a method the route does
// not serve. 405 has no apperr kind, so the body is written directly in the
// same shape the responder uses.
func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	logger.FromContext(r.Context()).Debug("request rejected",
		slog.Int("status", http.StatusMethodNotAllowed),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))
	shared.RespondWithJSON(w, r, http.StatusMethodNotAllowed,
		shared.ErrorResponse{Message: MsgMethodNotAllowed})
}

// MsgMethodNotAllowed is the body message for 405 responses.
const MsgMethodNotAllowed = "Method not allowed"
