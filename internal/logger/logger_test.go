package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextFieldsAreKept(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "storefront", Level: zerolog.DebugLevel, Output: buf})

	ctx := log.WithRequestID(context.Background(), "req-123")
	ctx = log.WithCartID(ctx, "cart-1")
	ctx = log.WithSession(ctx, "0123456789abcdef")

	log.Error(ctx, "boom", errors.New("kaput"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "storefront", entry["service"])
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "cart-1", entry["cart_id"])
	assert.Equal(t, "01234567", entry["session"])
	assert.Equal(t, "kaput", entry["error"])
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "boom", entry["message"])
}

func TestLevelFilters(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{Level: zerolog.WarnLevel, Output: buf})

	log.Info(context.Background(), "hidden")
	assert.Zero(t, buf.Len())

	log.Warn(context.Background(), "shown", nil)
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("invalid"))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
}
