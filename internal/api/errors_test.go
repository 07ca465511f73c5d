package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/cards-api/internal/domain"
	"github.com/phrazzld/cards-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyError(t *testing.T) {
	titleIssue := domain.Issue{Field: "title", Code: domain.IssueTooSmall, Message: "Title is required"}
	idIssue := domain.Issue{Field: "id", Code: domain.IssueInvalidString, Message: "ID must be a number"}

	tests := []struct {
		name           string
		err            error
		op             Operation
		expectedStatus int
		expectedError  string
		expectedIssues []domain.Issue
	}{
		{
			name:           "validation error",
			err:            domain.NewValidationError(nil, titleIssue),
			op:             OpCreate,
			expectedStatus: http.StatusBadRequest,
			expectedError:  MsgValidationFailed,
			expectedIssues: []domain.Issue{titleIssue},
		},
		{
			name:           "invalid id",
			err:            domain.NewValidationError(domain.ErrInvalidID, idIssue),
			op:             OpDelete,
			expectedStatus: http.StatusBadRequest,
			expectedError:  MsgInvalidID,
			expectedIssues: []domain.Issue{idIssue},
		},
		{
			name:           "wrapped validation error",
			err:            fmt.Errorf("decode: %w", domain.NewValidationError(nil, titleIssue)),
			op:             OpUpdate,
			expectedStatus: http.StatusBadRequest,
			expectedError:  MsgValidationFailed,
			expectedIssues: []domain.Issue{titleIssue},
		},
		{
			name:           "card not found",
			err:            store.ErrCardNotFound,
			op:             OpUpdate,
			expectedStatus: http.StatusNotFound,
			expectedError:  MsgCardNotFound,
		},
		{
			name:           "generic not found",
			err:            fmt.Errorf("update: %w", store.ErrNotFound),
			op:             OpDelete,
			expectedStatus: http.StatusNotFound,
			expectedError:  MsgCardNotFound,
		},
		{
			name:           "create failure",
			err:            errors.New("connection refused"),
			op:             OpCreate,
			expectedStatus: http.StatusInternalServerError,
			expectedError:  MsgCreateFailed,
		},
		{
			name:           "list failure",
			err:            errors.New("connection refused"),
			op:             OpFetch,
			expectedStatus: http.StatusInternalServerError,
			expectedError:  MsgFetchFailed,
		},
		{
			name:           "update failure",
			err:            store.ErrInvalidEntity,
			op:             OpUpdate,
			expectedStatus: http.StatusInternalServerError,
			expectedError:  MsgUpdateFailed,
		},
		{
			name:           "delete failure",
			err:            errors.New("timeout"),
			op:             OpDelete,
			expectedStatus: http.StatusInternalServerError,
			expectedError:  MsgDeleteFailed,
		},
		{
			name:           "unknown operation",
			err:            errors.New("boom"),
			op:             Operation("archive"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "An unexpected error occurred",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, env := ClassifyError(tc.err, tc.op)

			assert.Equal(t, tc.expectedStatus, status)
			assert.Equal(t, tc.expectedError, env.Error)
			assert.Equal(t, tc.expectedIssues, env.Issues)
			assert.Nil(t, env.Data)
			assert.False(t, env.Success)
		})
	}
}

func TestHandleAPIErrorDoesNotLeakDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/cards", nil)
	w := httptest.NewRecorder()

	err := errors.New(`pq: relation "cards" does not exist at postgres://admin:s3cret@db:5432/cards`)
	HandleAPIError(w, req, err, OpFetch)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch cards"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "s3cret")
	assert.NotContains(t, w.Body.String(), "relation")
}
