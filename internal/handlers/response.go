package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"persona-admin/internal/contextutil"
	"persona-admin/internal/render"
	"persona-admin/internal/service"
)

// TimestampLayout is the wire format of every timestamp in responses.
const TimestampLayout = "2006-01-02T15:04:05"

// maxBodyBytes bounds request bodies. Prompts are at most 100k characters,
// and imports carry several of them.
const maxBodyBytes = 8 << 20

// Response is the envelope wrapping every admin API response.
//
// swagger:model Response
type Response struct {
	Success      bool   `json:"success"`
	Data         any    `json:"data,omitempty"`
	Message      string `json:"message,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	Timestamp    string `json:"timestamp"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimestampLayout)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, resp Response) {
	resp.Timestamp = formatTime(time.Now())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any, message string) {
	writeJSON(ctx, w, status, Response{Success: true, Data: data, Message: message})
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	writeJSON(ctx, w, status, Response{Success: false, ErrorMessage: message})
}

// writeServiceError maps service errors to HTTP status codes.
// prefix describes the failed operation, e.g. "Failed to create persona".
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error, prefix string) {
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *service.ValidationError
	var duplicateErr *service.DuplicateError

	switch {
	case errors.As(err, &validationErr):
		logger.WarnContext(ctx, "validation failed", "field", validationErr.Field, "error", validationErr.Message)
		writeError(ctx, w, http.StatusBadRequest, validationMessage(validationErr))
	case errors.As(err, &duplicateErr):
		logger.WarnContext(ctx, "duplicate persona", "persona_code", duplicateErr.PersonaCode)
		writeError(ctx, w, http.StatusConflict, "PersonaCode already exists")
	case errors.Is(err, service.ErrNotFound):
		writeError(ctx, w, http.StatusNotFound, fmt.Sprintf("%s: %v", prefix, err))
	case errors.Is(err, service.ErrInvalidInput):
		writeError(ctx, w, http.StatusBadRequest, fmt.Sprintf("%s: %v", prefix, err))
	case errors.Is(err, service.ErrExternalService):
		logger.ErrorContext(ctx, "external service error", "error", err)
		writeError(ctx, w, http.StatusBadGateway, fmt.Sprintf("%s: %v", prefix, err))
	case errors.Is(err, service.ErrUnavailable):
		writeError(ctx, w, http.StatusServiceUnavailable, fmt.Sprintf("%s: %v", prefix, err))
	default:
		logger.ErrorContext(ctx, "request failed", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, fmt.Sprintf("%s: %v", prefix, err))
	}
}

// validationMessage prefixes the field name unless the message is already
// a sentence of its own.
func validationMessage(e *service.ValidationError) string {
	r, _ := utf8.DecodeRuneInString(e.Message)
	if unicode.IsUpper(r) {
		return e.Message
	}
	return e.Field + " " + e.Message
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(r *http.Request, w http.ResponseWriter, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// reportData returns the report as-is, or rendered to HTML when the request
// asks for ?format=html.
func reportData(r *http.Request, report string) (string, error) {
	if !strings.EqualFold(r.URL.Query().Get("format"), "html") {
		return report, nil
	}
	return render.Markdown(report)
}
