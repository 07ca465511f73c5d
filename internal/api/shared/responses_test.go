package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/cards-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string `json:"name"`
}

func TestEnvelopeEncoding(t *testing.T) {
	tests := []struct {
		name     string
		envelope interface{}
		expected string
	}{
		{
			name:     "success with data",
			envelope: Success(item{Name: "a"}, WithMessage("created")),
			expected: `{"data":{"name":"a"},"message":"created"}`,
		},
		{
			name:     "success with empty list",
			envelope: Success([]item{}, WithCount(0)),
			expected: `{"data":[],"count":0}`,
		},
		{
			name:     "ack without data",
			envelope: Ack(WithSuccess(), WithMessage("done")),
			expected: `{"message":"done","success":true}`,
		},
		{
			name:     "failure without extras",
			envelope: Failure("Card not found"),
			expected: `{"error":"Card not found"}`,
		},
		{
			name: "failure with issues",
			envelope: Failure("Validation failed", WithIssues([]domain.Issue{
				{Field: "title", Code: domain.IssueTooSmall, Message: "Title is required"},
			})),
			expected: `{"error":"Validation failed","issues":[{"field":"title","code":"too_small","message":"Title is required"}]}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body, err := json.Marshal(tc.envelope)
			require.NoError(t, err)
			assert.JSONEq(t, tc.expected, string(body))
		})
	}
}

func TestFailureNeverCarriesData(t *testing.T) {
	env := Failure("Failed to create card", WithMessage("ignored"), WithSuccess())

	assert.Nil(t, env.Data)
	assert.Equal(t, "Failed to create card", env.Error)
}

func TestRespondWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/cards", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusCreated, map[string]int{"n": 1})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"n":1}`, w.Body.String())
}

func TestRespondWithJSONEncodingError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/cards", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusOK, map[string]interface{}{"ch": make(chan int)})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRespondWithFailureAndLog(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		expectedLevel string
	}{
		{name: "server error logs at ERROR", status: http.StatusInternalServerError, expectedLevel: "ERROR"},
		{name: "not found logs at DEBUG", status: http.StatusNotFound, expectedLevel: "DEBUG"},
		{name: "bad request logs at DEBUG", status: http.StatusBadRequest, expectedLevel: "DEBUG"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			req := httptest.NewRequest(http.MethodPost, "/cards", nil)
			req = req.WithContext(WithTraceID(req.Context(), "trace-123"))
			w := httptest.NewRecorder()

			err := errors.New("dial tcp: password=hunter22 refused")
			RespondWithFailureAndLog(w, req, logger, tc.status, Failure("Failed to create card"), err)

			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, `{"error":"Failed to create card"}`, w.Body.String())
			assert.NotContains(t, w.Body.String(), "hunter22")

			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tc.expectedLevel, entry["level"])
			assert.Equal(t, "trace-123", entry["trace_id"])
			assert.Equal(t, float64(tc.status), entry["status_code"])
			assert.Equal(t, "Failed to create card", entry["user_message"])
			assert.NotContains(t, entry["error"], "hunter22")
			assert.Contains(t, entry["error"], "[REDACTED_CREDENTIAL]")
		})
	}
}
