package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weirhq/weir"
	"github.com/weirhq/weir/middleware"
)

func logApp(t *testing.T, cfg middleware.AccessLogConfig) (*weir.App, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	cfg.Logger = slog.New(slog.NewTextHandler(&buf, nil))

	app := weir.New()
	app.Use(middleware.AccessLogWithConfig(cfg))
	app.Get("/ok", weir.EndpointFunc(func(*weir.Request) *weir.Response {
		return weir.Text("ok")
	}))
	app.Get("/fail", weir.EndpointFunc(func(*weir.Request) *weir.Response {
		return weir.Status(http.StatusInternalServerError)
	}))
	return app, &buf
}

func get(h http.Handler, target string) {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
}

func TestAccessLog(t *testing.T) {
	t.Parallel()

	t.Run("logs served requests at info", func(t *testing.T) {
		t.Parallel()

		app, buf := logApp(t, middleware.AccessLogConfig{})
		get(app, "/ok")

		out := buf.String()
		assert.Contains(t, out, "level=INFO")
		assert.Contains(t, out, "request served")
		assert.Contains(t, out, "method=GET")
		assert.Contains(t, out, "path=/ok")
		assert.Contains(t, out, "status=200")
		assert.Contains(t, out, "duration=")
	})

	t.Run("logs client errors at warn", func(t *testing.T) {
		t.Parallel()

		app, buf := logApp(t, middleware.AccessLogConfig{})
		get(app, "/missing")

		out := buf.String()
		assert.Contains(t, out, "level=WARN")
		assert.Contains(t, out, "request rejected")
		assert.Contains(t, out, "status=404")
	})

	t.Run("logs server errors at error", func(t *testing.T) {
		t.Parallel()

		app, buf := logApp(t, middleware.AccessLogConfig{})
		get(app, "/fail")

		out := buf.String()
		assert.Contains(t, out, "level=ERROR")
		assert.Contains(t, out, "request failed")
		assert.Contains(t, out, "status=500")
	})

	t.Run("includes request id when present", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		app := weir.New()
		app.Use(
			middleware.RequestIDWithConfig(middleware.RequestIDConfig{
				Generator: func() string { return "rid-1" },
			}),
			middleware.AccessLogWithConfig(middleware.AccessLogConfig{
				Logger: slog.New(slog.NewTextHandler(&buf, nil)),
			}),
		)
		app.Get("/ok", weir.EndpointFunc(func(*weir.Request) *weir.Response {
			return weir.Text("ok")
		}))

		get(app, "/ok")
		assert.Contains(t, buf.String(), "request_id=rid-1")
	})

	t.Run("skip suppresses logging", func(t *testing.T) {
		t.Parallel()

		app, buf := logApp(t, middleware.AccessLogConfig{
			Skip: func(req *weir.Request) bool { return req.Path() == "/ok" },
		})
		get(app, "/ok")
		assert.Empty(t, buf.String())
	})
}
