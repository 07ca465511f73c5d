package domain

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
	return verr
}

func TestParseCreate(t *testing.T) {
	t.Parallel()

	desc := "two litres"

	tests := []struct {
		name     string
		raw      any
		expected CreateCardInput
	}{
		{
			name:     "title only defaults status",
			raw:      map[string]any{"title": "Buy milk"},
			expected: CreateCardInput{Title: "Buy milk", Status: CardStatusTodo},
		},
		{
			name:     "all fields",
			raw:      map[string]any{"title": "Buy milk", "description": desc, "status": "doing"},
			expected: CreateCardInput{Title: "Buy milk", Description: &desc, Status: CardStatusDoing},
		},
		{
			name:     "single character title",
			raw:      map[string]any{"title": "x", "status": "done"},
			expected: CreateCardInput{Title: "x", Status: CardStatusDone},
		},
		{
			name:     "title at maximum length",
			raw:      map[string]any{"title": strings.Repeat("a", MaxCardTitleLength)},
			expected: CreateCardInput{Title: strings.Repeat("a", MaxCardTitleLength), Status: CardStatusTodo},
		},
		{
			name:     "length counts characters not bytes",
			raw:      map[string]any{"title": strings.Repeat("é", MaxCardTitleLength)},
			expected: CreateCardInput{Title: strings.Repeat("é", MaxCardTitleLength), Status: CardStatusTodo},
		},
		{
			name:     "unknown keys ignored",
			raw:      map[string]any{"title": "Buy milk", "priority": 3},
			expected: CreateCardInput{Title: "Buy milk", Status: CardStatusTodo},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseCreate(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestParseCreate_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		raw            any
		expectedFields []string
		expectedCode   string
	}{
		{
			name:           "empty title",
			raw:            map[string]any{"title": ""},
			expectedFields: []string{"title"},
			expectedCode:   IssueTooSmall,
		},
		{
			name:           "title too long",
			raw:            map[string]any{"title": strings.Repeat("a", MaxCardTitleLength+1)},
			expectedFields: []string{"title"},
			expectedCode:   IssueTooBig,
		},
		{
			name:           "missing title",
			raw:            map[string]any{"description": "no title"},
			expectedFields: []string{"title"},
			expectedCode:   IssueInvalidType,
		},
		{
			name:           "title wrong type",
			raw:            map[string]any{"title": 42.0},
			expectedFields: []string{"title"},
			expectedCode:   IssueInvalidType,
		},
		{
			name:           "null description",
			raw:            map[string]any{"title": "ok", "description": nil},
			expectedFields: []string{"description"},
			expectedCode:   IssueInvalidType,
		},
		{
			name:           "unknown status",
			raw:            map[string]any{"title": "ok", "status": "blocked"},
			expectedFields: []string{"status"},
			expectedCode:   IssueInvalidEnumValue,
		},
		{
			name:           "status is case sensitive",
			raw:            map[string]any{"title": "ok", "status": "TODO"},
			expectedFields: []string{"status"},
			expectedCode:   IssueInvalidEnumValue,
		},
		{
			name:           "every failing field is reported",
			raw:            map[string]any{"title": "", "description": false, "status": "later"},
			expectedFields: []string{"title", "description", "status"},
		},
		{
			name:           "not an object",
			raw:            []any{"title"},
			expectedFields: []string{""},
			expectedCode:   IssueInvalidType,
		},
		{
			name:           "null body",
			raw:            nil,
			expectedFields: []string{""},
			expectedCode:   IssueInvalidType,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseCreate(tc.raw)
			verr := requireValidationError(t, err)

			assert.ErrorIs(t, err, ErrValidation)
			require.Len(t, verr.Issues, len(tc.expectedFields))
			for i, field := range tc.expectedFields {
				assert.Equal(t, field, verr.Issues[i].Field)
				assert.NotEmpty(t, verr.Issues[i].Message)
			}
			if tc.expectedCode != "" {
				assert.Equal(t, tc.expectedCode, verr.Issues[0].Code)
			}
		})
	}
}

func TestParseUpdate(t *testing.T) {
	t.Parallel()

	title := "Buy oat milk"
	desc := ""
	done := CardStatusDone

	tests := []struct {
		name     string
		raw      any
		expected UpdateCardInput
	}{
		{
			name:     "title only",
			raw:      map[string]any{"title": title},
			expected: UpdateCardInput{Title: &title},
		},
		{
			name:     "status only",
			raw:      map[string]any{"status": "done"},
			expected: UpdateCardInput{Status: &done},
		},
		{
			name:     "empty description clears text",
			raw:      map[string]any{"description": ""},
			expected: UpdateCardInput{Description: &desc},
		},
		{
			name:     "all fields",
			raw:      map[string]any{"title": title, "description": "", "status": "done"},
			expected: UpdateCardInput{Title: &title, Description: &desc, Status: &done},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseUpdate(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
			assert.False(t, got.IsEmpty())
		})
	}
}

func TestParseUpdate_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		raw           any
		expectedField string
		expectedCode  string
	}{
		{
			name:         "empty object",
			raw:          map[string]any{},
			expectedCode: IssueCustom,
		},
		{
			name:         "only unknown keys",
			raw:          map[string]any{"priority": "high"},
			expectedCode: IssueCustom,
		},
		{
			name:          "empty title",
			raw:           map[string]any{"title": ""},
			expectedField: "title",
			expectedCode:  IssueTooSmall,
		},
		{
			name:          "title too long",
			raw:           map[string]any{"title": strings.Repeat("b", 101)},
			expectedField: "title",
			expectedCode:  IssueTooBig,
		},
		{
			name:          "bad status",
			raw:           map[string]any{"status": "archived"},
			expectedField: "status",
			expectedCode:  IssueInvalidEnumValue,
		},
		{
			name:          "null title",
			raw:           map[string]any{"title": nil},
			expectedField: "title",
			expectedCode:  IssueInvalidType,
		},
		{
			name:         "string body",
			raw:          "title",
			expectedCode: IssueInvalidType,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseUpdate(tc.raw)
			verr := requireValidationError(t, err)

			assert.ErrorIs(t, err, ErrValidation)
			require.Len(t, verr.Issues, 1)
			assert.Equal(t, tc.expectedField, verr.Issues[0].Field)
			assert.Equal(t, tc.expectedCode, verr.Issues[0].Code)
		})
	}
}

func TestParseID(t *testing.T) {
	t.Parallel()

	valid := map[string]int64{
		"0":                   0,
		"5":                   5,
		"007":                 7,
		"999":                 999,
		"9223372036854775807": MaxCardID,
	}
	for raw, expected := range valid {
		raw, expected := raw, expected
		t.Run("valid "+raw, func(t *testing.T) {
			t.Parallel()
			id, err := ParseID(raw)
			require.NoError(t, err)
			assert.Equal(t, expected, id)
		})
	}

	invalid := []string{
		"",
		"abc",
		"-1",
		"+1",
		"1.5",
		" 1",
		"1 ",
		"1e3",
		"12a",
		"０１", // full-width digits
		"9223372036854775808",
		"99999999999999999999999",
	}
	for _, raw := range invalid {
		raw := raw
		t.Run("invalid "+strconv.Quote(raw), func(t *testing.T) {
			t.Parallel()
			_, err := ParseID(raw)
			verr := requireValidationError(t, err)
			assert.ErrorIs(t, err, ErrInvalidID)
			assert.True(t, verr.HasField(FieldID))
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := NewValidationError(nil,
		Issue{Field: "title", Code: IssueTooSmall, Message: "Title is required"},
		Issue{Code: IssueCustom, Message: "At least one field must be provided"},
	)

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t,
		"validation failed: title: Title is required; At least one field must be provided",
		err.Error())
	assert.Equal(t, "invalid ID", NewValidationError(ErrInvalidID).Error())
}

func TestCardStatus_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range CardStatuses {
		assert.True(t, s.Valid(), "status %q", s)
	}
	assert.False(t, CardStatus("").Valid())
	assert.False(t, CardStatus("archived").Valid())
	assert.Equal(t, CardStatusTodo, DefaultCardStatus)
}
