package identitymap

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingLoader(calls *int, value string, err error) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		*calls++
		return value, err
	}
}

func TestLoad_dedupesWithinRequest(t *testing.T) {
	ctx := WithMap(t.Context(), New())
	id := uuid.New()

	var calls int
	for range 3 {
		v, err := Load(ctx, KindCart, id, countingLoader(&calls, "cart-1", nil))
		require.NoError(t, err)
		assert.Equal(t, "cart-1", v)
	}
	assert.Equal(t, 1, calls)

	// same id, other kind
	_, err := Load(ctx, KindOrder, id, countingLoader(&calls, "order-1", nil))
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestLoad_withoutMap(t *testing.T) {
	id := uuid.New()

	var calls int
	for range 2 {
		_, err := Load(t.Context(), KindCart, id, countingLoader(&calls, "cart-1", nil))
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
}

func TestLoad_errorsAreNotRemembered(t *testing.T) {
	ctx := WithMap(t.Context(), New())
	id := uuid.New()
	boom := errors.New("boom")

	var calls int
	_, err := Load(ctx, KindProduct, id, countingLoader(&calls, "", boom))
	assert.ErrorIs(t, err, boom)

	v, err := Load(ctx, KindProduct, id, countingLoader(&calls, "product-1", nil))
	require.NoError(t, err)
	assert.Equal(t, "product-1", v)
	assert.Equal(t, 2, calls)
}

func TestForget(t *testing.T) {
	ctx := WithMap(t.Context(), New())
	id := uuid.New()

	var calls int
	_, _ = Load(ctx, KindCart, id, countingLoader(&calls, "v1", nil))
	Forget(ctx, KindCart, id)

	v, err := Load(ctx, KindCart, id, countingLoader(&calls, "v2", nil))
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
	assert.Equal(t, 2, calls)

	Forget(t.Context(), KindCart, id)
}

func TestSeparateRequestsDoNotShare(t *testing.T) {
	id := uuid.New()

	var calls int
	_, _ = Load(WithMap(t.Context(), New()), KindUser, id, countingLoader(&calls, "u", nil))
	_, _ = Load(WithMap(t.Context(), New()), KindUser, id, countingLoader(&calls, "u", nil))
	assert.Equal(t, 2, calls)
}
