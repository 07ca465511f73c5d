package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/cards-api/internal/api/shared"
	"github.com/phrazzld/cards-api/internal/domain"
	"github.com/phrazzld/cards-api/internal/platform/logger"
	"github.com/phrazzld/cards-api/internal/store"
)

// Operation names the handler action that failed. It selects the generic
// message used for unclassified errors.
type Operation string

// Handler operations.
const (
	OpCreate Operation = "create"
	OpFetch  Operation = "fetch"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// User-facing error messages.
const (
	MsgValidationFailed = "Validation failed"
	MsgInvalidID        = "Invalid ID"
	MsgCardNotFound     = "Card not found"
	MsgCreateFailed     = "Failed to create card"
	MsgFetchFailed      = "Failed to fetch cards"
	MsgUpdateFailed     = "Failed to update card"
	MsgDeleteFailed     = "Failed to delete card"
)

// ClassifyError maps err to a status code and a failure envelope. Only the
// fixed messages above and validation issues reach the client; the raw error
// text never does.
func ClassifyError(err error, op Operation) (int, shared.Envelope[shared.None]) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		message := MsgValidationFailed
		if errors.Is(verr, domain.ErrInvalidID) {
			message = MsgInvalidID
		}
		return http.StatusBadRequest, shared.Failure(message, shared.WithIssues(verr.Issues))

	case store.IsNotFoundError(err):
		return http.StatusNotFound, shared.Failure(MsgCardNotFound)

	default:
		return http.StatusInternalServerError, shared.Failure(unclassifiedMessage(op))
	}
}

func unclassifiedMessage(op Operation) string {
	switch op {
	case OpCreate:
		return MsgCreateFailed
	case OpFetch:
		return MsgFetchFailed
	case OpUpdate:
		return MsgUpdateFailed
	case OpDelete:
		return MsgDeleteFailed
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError classifies err, logs it with the request's logger and
// writes the failure response.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, op Operation) {
	status, env := ClassifyError(err, op)
	shared.RespondWithFailureAndLog(w, r, logger.FromContext(r.Context()), status, env, err)
}
