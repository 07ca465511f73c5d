package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/phrazzld/cards-api/internal/domain"
)

// MaxBodyBytes bounds the size of a JSON request body.
const MaxBodyBytes int64 = 1 << 20

// DecodeJSON reads the request body into an untyped value for the validator.
// An empty, malformed or oversized body is reported as a *domain.ValidationError
// with a single invalid_json issue.
func DecodeJSON(w http.ResponseWriter, r *http.Request) (any, error) {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer func() { _ = body.Close() }()

	var raw any
	dec := json.NewDecoder(body)
	if err := dec.Decode(&raw); err != nil {
		return nil, invalidJSON(err)
	}

	// Trailing garbage after the first value is malformed too.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after JSON value")
		}
		return nil, invalidJSON(err)
	}

	return raw, nil
}

func invalidJSON(err error) error {
	message := "Malformed JSON body"
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		message = "Request body is required"
	case errors.As(err, &maxErr):
		message = "Request body is too large"
	}

	verr := domain.NewValidationError(nil, domain.Issue{
		Code:    domain.IssueInvalidJSON,
		Message: message,
	})
	return errors.Join(verr, err)
}
