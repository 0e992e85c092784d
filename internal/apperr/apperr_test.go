package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataFor(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeForbidden, status: http.StatusForbidden, publicMsg: "access denied"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected", detailsOK: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error"},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", detailsOK: true},
		{code: "SOMETHING_UNKNOWN", status: http.StatusInternalServerError, publicMsg: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			meta := MetadataFor(tt.code)
			assert.Equal(t, tt.status, meta.HTTPStatus)
			assert.Equal(t, tt.publicMsg, meta.PublicMessage)
			assert.Equal(t, tt.detailsOK, meta.DetailsAllowed)
		})
	}
}

func TestWrapAndAs(t *testing.T) {
	cause := errors.New("q.GetCart: not found")

	err := Wrap(CodeValidation, cause, "cart does not exist").WithDetails(map[string]any{"cart_id": "x"})
	wrapped := fmt.Errorf("cartService.AddItem: %w", err)

	typed := As(wrapped)
	require.NotNil(t, typed)
	assert.Equal(t, CodeValidation, typed.Code())
	assert.Equal(t, "cart does not exist", typed.Message())
	assert.Equal(t, map[string]any{"cart_id": "x"}, typed.Details())
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "VALIDATION_ERROR: cart does not exist", typed.Error())

	assert.Nil(t, As(cause))
	assert.Nil(t, As(nil))
	assert.Equal(t, CodeInternal, CodeOf(cause))
	assert.Equal(t, CodeValidation, CodeOf(wrapped))
}

func TestNilError(t *testing.T) {
	var err *Error
	assert.Equal(t, CodeInternal, err.Code())
	assert.Empty(t, err.Message())
	assert.Nil(t, err.Details())
	assert.Nil(t, err.WithDetails("x"))
	assert.Nil(t, err.Unwrap())
}
