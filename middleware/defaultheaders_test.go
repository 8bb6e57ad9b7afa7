package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weirhq/weir"
	"github.com/weirhq/weir/middleware"
)

func TestDefaultHeaders(t *testing.T) {
	t.Parallel()

	app := weir.New()
	app.Use(middleware.DefaultHeaders(map[string]string{
		"X-Frame-Options": "DENY",
		"Cache-Control":   "no-store",
	}))
	app.Get("/", weir.EndpointFunc(func(*weir.Request) *weir.Response {
		return weir.Text("ok")
	}))
	app.Get("/cached", weir.EndpointFunc(func(*weir.Request) *weir.Response {
		return weir.Text("ok").WithHeader("Cache-Control", "max-age=60")
	}))

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	// Handler-set headers win over defaults.
	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cached", nil))
	assert.Equal(t, "max-age=60", w.Header().Get("Cache-Control"))
}
