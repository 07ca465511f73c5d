package domain

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxCardID is the largest accepted card ID. It matches the range of the
// BIGINT/INTEGER primary key columns used by the stores.
const MaxCardID int64 = math.MaxInt64

// Field names as they appear in request bodies.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldID          = "id"
)

// Tag rules applied to the string values of each field.
const (
	titleRule  = "min=1,max=100"
	statusRule = "oneof=todo doing done"
)

var (
	validate  = validator.New(validator.WithRequiredStructEnabled())
	idPattern = regexp.MustCompile(`^[0-9]+$`)
)

// ParseCreate validates an untyped create payload (the result of decoding a
// JSON body) and returns the normalized input. Missing status defaults to
// DefaultCardStatus. All field problems are reported together.
func ParseCreate(raw any) (CreateCardInput, error) {
	obj, err := asObject(raw)
	if err != nil {
		return CreateCardInput{}, err
	}

	in := CreateCardInput{Status: DefaultCardStatus}
	var issues []Issue

	if v, ok := obj[FieldTitle]; ok {
		title, issue := parseTitle(v)
		if issue != nil {
			issues = append(issues, *issue)
		}
		in.Title = title
	} else {
		issues = append(issues, Issue{Field: FieldTitle, Code: IssueInvalidType, Message: "Required"})
	}

	if v, ok := obj[FieldDescription]; ok {
		desc, issue := parseDescription(v)
		if issue != nil {
			issues = append(issues, *issue)
		} else {
			in.Description = &desc
		}
	}

	if v, ok := obj[FieldStatus]; ok {
		status, issue := parseStatus(v)
		if issue != nil {
			issues = append(issues, *issue)
		} else {
			in.Status = status
		}
	}

	if len(issues) > 0 {
		return CreateCardInput{}, NewValidationError(ErrValidation, issues...)
	}
	return in, nil
}

// ParseUpdate validates an untyped partial update. Each present field follows
// the same rules as ParseCreate. Keys other than title, description and status
// are ignored, and an update that sets none of them is rejected.
func ParseUpdate(raw any) (UpdateCardInput, error) {
	obj, err := asObject(raw)
	if err != nil {
		return UpdateCardInput{}, err
	}

	var (
		in     UpdateCardInput
		issues []Issue
	)

	if v, ok := obj[FieldTitle]; ok {
		title, issue := parseTitle(v)
		if issue != nil {
			issues = append(issues, *issue)
		} else {
			in.Title = &title
		}
	}

	if v, ok := obj[FieldDescription]; ok {
		desc, issue := parseDescription(v)
		if issue != nil {
			issues = append(issues, *issue)
		} else {
			in.Description = &desc
		}
	}

	if v, ok := obj[FieldStatus]; ok {
		status, issue := parseStatus(v)
		if issue != nil {
			issues = append(issues, *issue)
		} else {
			in.Status = &status
		}
	}

	if len(issues) > 0 {
		return UpdateCardInput{}, NewValidationError(ErrValidation, issues...)
	}
	if in.IsEmpty() {
		return UpdateCardInput{}, NewValidationError(ErrValidation, Issue{
			Code:    IssueCustom,
			Message: "At least one field must be provided",
		})
	}
	return in, nil
}

// ParseID converts a path segment into a card ID. Only plain ASCII digits are
// accepted: no sign, whitespace or decimal point. Values above MaxCardID are
// rejected rather than wrapped.
func ParseID(raw string) (int64, error) {
	if !idPattern.MatchString(raw) {
		return 0, NewValidationError(ErrInvalidID, Issue{
			Field:   FieldID,
			Code:    IssueInvalidString,
			Message: "ID must be a number",
		})
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, NewValidationError(ErrInvalidID, Issue{
			Field:   FieldID,
			Code:    IssueTooBig,
			Message: fmt.Sprintf("ID must not exceed %d", MaxCardID),
		})
	}
	return id, nil
}

func asObject(raw any) (map[string]any, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, NewValidationError(ErrValidation, Issue{
			Code:    IssueInvalidType,
			Message: fmt.Sprintf("Expected object, received %s", jsonTypeName(raw)),
		})
	}
	return obj, nil
}

func parseTitle(v any) (string, *Issue) {
	title, ok := v.(string)
	if !ok {
		return "", typeIssue(FieldTitle, "string", v)
	}

	if err := validate.Var(title, titleRule); err != nil {
		switch failedTag(err) {
		case "min":
			return "", &Issue{Field: FieldTitle, Code: IssueTooSmall, Message: "Title is required"}
		default:
			return "", &Issue{
				Field:   FieldTitle,
				Code:    IssueTooBig,
				Message: fmt.Sprintf("Title must be at most %d characters", MaxCardTitleLength),
			}
		}
	}
	return title, nil
}

func parseDescription(v any) (string, *Issue) {
	desc, ok := v.(string)
	if !ok {
		return "", typeIssue(FieldDescription, "string", v)
	}
	return desc, nil
}

func parseStatus(v any) (CardStatus, *Issue) {
	s, ok := v.(string)
	if !ok {
		return "", typeIssue(FieldStatus, "string", v)
	}

	if err := validate.Var(s, statusRule); err != nil {
		allowed := make([]string, len(CardStatuses))
		for i, status := range CardStatuses {
			allowed[i] = "'" + string(status) + "'"
		}
		return "", &Issue{
			Field: FieldStatus,
			Code:  IssueInvalidEnumValue,
			Message: fmt.Sprintf("Invalid enum value. Expected %s, received '%s'",
				strings.Join(allowed, " | "), s),
		}
	}
	return CardStatus(s), nil
}

// failedTag returns the validator tag that rejected a value, or "" when err
// is not a validator error.
func failedTag(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Tag()
	}
	return ""
}

func typeIssue(field, expected string, got any) *Issue {
	return &Issue{
		Field:   field,
		Code:    IssueInvalidType,
		Message: fmt.Sprintf("Expected %s, received %s", expected, jsonTypeName(got)),
	}
}

// jsonTypeName names the JSON type of a value produced by encoding/json.
func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, float32, int, int64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
