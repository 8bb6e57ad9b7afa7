package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weirhq/weir"
	"github.com/weirhq/weir/middleware"
)

func newApp(mw ...weir.Middleware) *weir.App {
	app := weir.New()
	app.Use(mw...)
	app.Get("/", weir.EndpointFunc(func(req *weir.Request) *weir.Response {
		id, _ := middleware.GetRequestID(req)
		return weir.Text(id)
	}))
	return app
}

func do(t *testing.T, h http.Handler, mutate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates uuid and sets header", func(t *testing.T) {
		t.Parallel()

		app := newApp(middleware.RequestID())
		w := do(t, app, nil)

		id := w.Header().Get("X-Request-ID")
		require.NotEmpty(t, id)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)

		// The handler sees the same ID the client receives.
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("each request gets its own id", func(t *testing.T) {
		t.Parallel()

		app := newApp(middleware.RequestID())
		first := do(t, app, nil).Header().Get("X-Request-ID")
		second := do(t, app, nil).Header().Get("X-Request-ID")
		assert.NotEqual(t, first, second)
	})

	t.Run("ignores client id by default", func(t *testing.T) {
		t.Parallel()

		app := newApp(middleware.RequestID())
		w := do(t, app, func(r *http.Request) {
			r.Header.Set("X-Request-ID", "client-chosen")
		})
		assert.NotEqual(t, "client-chosen", w.Header().Get("X-Request-ID"))
	})

	t.Run("reuses client id when configured", func(t *testing.T) {
		t.Parallel()

		app := newApp(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			UseExisting: true,
		}))
		w := do(t, app, func(r *http.Request) {
			r.Header.Set("X-Request-ID", "trace-123")
		})
		assert.Equal(t, "trace-123", w.Header().Get("X-Request-ID"))
	})

	t.Run("custom generator and header", func(t *testing.T) {
		t.Parallel()

		app := newApp(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Generator:  func() string { return "fixed" },
			HeaderName: "X-Trace-ID",
		}))
		w := do(t, app, nil)
		assert.Equal(t, "fixed", w.Header().Get("X-Trace-ID"))
	})

	t.Run("skip leaves request untouched", func(t *testing.T) {
		t.Parallel()

		app := newApp(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Skip: func(*weir.Request) bool { return true },
		}))
		w := do(t, app, nil)
		assert.Empty(t, w.Header().Get("X-Request-ID"))
		assert.Empty(t, w.Body.String())
	})
}

func TestGetRequestIDWithoutMiddleware(t *testing.T) {
	t.Parallel()

	req := weir.NewRequest(httptest.NewRequest(http.MethodGet, "/", nil))
	id, ok := middleware.GetRequestID(req)
	assert.False(t, ok)
	assert.Empty(t, id)
}
