package shared

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx), "Expected empty trace ID in original context")

	ctxWithTrace := SetTraceID(ctx)

	traceID := GetTraceID(ctxWithTrace)
	require.NotEmpty(t, traceID)
	_, err := uuid.Parse(traceID)
	assert.NoError(t, err, "Expected trace ID to be a UUID")

	assert.Empty(t, GetTraceID(ctx), "Expected original context to remain unchanged")
}

func TestSetTraceIDIsUnique(t *testing.T) {
	const iterations = 100
	seen := make(map[string]bool, iterations)

	for i := 0; i < iterations; i++ {
		id := GetTraceID(SetTraceID(context.Background()))
		assert.False(t, seen[id], "Generated duplicate trace ID: %s", id)
		seen[id] = true
	}
}

func TestGetTraceIDWithInvalidContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, 123)

	assert.Empty(t, GetTraceID(ctx), "Expected empty trace ID when context has invalid type")
}
