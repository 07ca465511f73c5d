package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/cards-api/internal/domain"
	"github.com/phrazzld/cards-api/internal/redact"
)

// Meta holds the optional fields that may accompany data or an error.
type Meta struct {
	Issues  []domain.Issue `json:"issues,omitempty"`
	Count   *int           `json:"count,omitempty"`
	Message string         `json:"message,omitempty"`
	Success bool           `json:"success,omitempty"`
}

// Envelope is the JSON body of every response. Data and Error are never both set.
type Envelope[T any] struct {
	Data  *T     `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
	Meta
}

// None is the data type of envelopes that carry no data.
type None struct{}

// EnvelopeOption adds an optional field to an envelope.
type EnvelopeOption func(*Meta)

// WithCount sets the count field.
func WithCount(n int) EnvelopeOption {
	return func(m *Meta) {
		m.Count = &n
	}
}

// WithMessage sets the advisory message field.
func WithMessage(msg string) EnvelopeOption {
	return func(m *Meta) {
		m.Message = msg
	}
}

// WithSuccess sets success to true.
func WithSuccess() EnvelopeOption {
	return func(m *Meta) {
		m.Success = true
	}
}

// WithIssues attaches validation issues.
func WithIssues(issues []domain.Issue) EnvelopeOption {
	return func(m *Meta) {
		m.Issues = issues
	}
}

// Success wraps data in an envelope.
func Success[T any](data T, opts ...EnvelopeOption) Envelope[T] {
	env := Envelope[T]{Data: &data}
	applyOptions(&env.Meta, opts)
	return env
}

// Ack builds a data-less success envelope, used by mutations that return
// nothing but a confirmation.
func Ack(opts ...EnvelopeOption) Envelope[None] {
	var env Envelope[None]
	applyOptions(&env.Meta, opts)
	return env
}

// Failure builds an error envelope. Data is always absent.
func Failure(message string, opts ...EnvelopeOption) Envelope[None] {
	env := Envelope[None]{Error: message}
	applyOptions(&env.Meta, opts)
	return env
}

func applyOptions(m *Meta, opts []EnvelopeOption) {
	for _, opt := range opts {
		opt(m)
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode JSON response", "error", err)
	}
}

// RespondWithEnvelope writes env as the JSON body.
func RespondWithEnvelope[T any](w http.ResponseWriter, r *http.Request, status int, env Envelope[T]) {
	RespondWithJSON(w, r, status, env)
}

// RespondWithFailureAndLog writes a failure envelope and logs the underlying
// error. Only env reaches the client; err is redacted and goes to the log.
//
// Log level strategy:
//   - 5xx errors: ERROR
//   - 4xx errors: DEBUG
func RespondWithFailureAndLog(
	w http.ResponseWriter,
	r *http.Request,
	logger *slog.Logger,
	status int,
	env Envelope[None],
	err error,
) {
	if logger == nil {
		logger = slog.Default()
	}

	attrs := []slog.Attr{
		slog.String("trace_id", GetTraceID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", env.Error),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)),
		)
	}

	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.LogAttrs(r.Context(), level, "API error response", attrs...)

	RespondWithEnvelope(w, r, status, env)
}
