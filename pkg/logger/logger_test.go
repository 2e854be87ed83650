package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONAndServiceAttr(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("bookshop", "info", &buf)

	log.Info("hello", "key", "value")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "bookshop", entry["service"])
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "value", entry["key"])
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("bookshop", "warn", &buf)

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestCorrelationIDRoundTrip(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", CorrelationIDFromContext(ctx))
	assert.Empty(t, CorrelationIDFromContext(context.Background()))
}

func TestWithContext_AddsFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter("bookshop", "info", &buf)

	ctx := WithCorrelationID(context.Background(), "abc-123")
	ctx = WithUserEmail(ctx, "reader@example.com")

	WithContext(ctx, base).Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc-123", entry["correlation_id"])
	assert.Equal(t, "reader@example.com", entry["user_email"])
}

func TestFromContext_Fallback(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	var buf bytes.Buffer
	stored := NewWithWriter("bookshop", "info", &buf)
	ctx := NewContext(context.Background(), stored)
	assert.Same(t, stored, FromContext(ctx))
}
