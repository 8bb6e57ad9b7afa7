package weir_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weirhq/weir"
)

func TestErrorMatchesByCode(t *testing.T) {
	t.Parallel()

	derived := weir.ErrNotFound.WithMessage("no such widget: %d", 7)
	assert.ErrorIs(t, derived, weir.ErrNotFound)
	assert.Equal(t, "no such widget: 7", derived.Error())
	assert.NotErrorIs(t, derived, weir.ErrMethodNotAllowed)
}

func TestErrorWrapsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("tcp reset")
	wrapped := weir.ErrMalformedBody.WithCause(cause)

	assert.ErrorIs(t, wrapped, weir.ErrMalformedBody)
	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, wrapped.Error(), "tcp reset")
}

func TestDerivedErrorsDoNotMutateSentinels(t *testing.T) {
	t.Parallel()

	_ = weir.ErrInvalidQuery.WithMessage("custom")
	assert.Equal(t, "invalid query string", weir.ErrInvalidQuery.Message)
}

func TestErrorResponseRendering(t *testing.T) {
	t.Parallel()

	t.Run("structured error keeps status and code", func(t *testing.T) {
		t.Parallel()

		resp := weir.ErrorResponse(weir.ErrUnexpectedContentType)
		assert.Equal(t, http.StatusUnsupportedMediaType, resp.Status())
		assert.Contains(t, string(resp.Body()), "UNEXPECTED_CONTENT_TYPE")
	})

	t.Run("wrapped structured error is unwrapped", func(t *testing.T) {
		t.Parallel()

		err := errors.Join(errors.New("outer"), weir.ErrNotFound)
		resp := weir.ErrorResponse(err)
		assert.Equal(t, http.StatusNotFound, resp.Status())
	})

	t.Run("opaque error becomes generic 500", func(t *testing.T) {
		t.Parallel()

		resp := weir.ErrorResponse(errors.New("secret connection string"))
		require.Equal(t, http.StatusInternalServerError, resp.Status())
		assert.Contains(t, string(resp.Body()), "INTERNAL_ERROR")
		assert.NotContains(t, string(resp.Body()), "secret")
	})

	t.Run("cause never leaks into the body", func(t *testing.T) {
		t.Parallel()

		resp := weir.ErrorResponse(weir.ErrInvalidParam.WithCause(errors.New("reflect: blow up")))
		assert.NotContains(t, string(resp.Body()), "reflect")
	})
}
