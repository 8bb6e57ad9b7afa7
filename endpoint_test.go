package weir_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weirhq/weir"
)

type idParams struct {
	ID int `path:"id"`
}

type pageQuery struct {
	Page int `query:"page"`
}

func TestHandlerAdapters(t *testing.T) {
	t.Parallel()

	t.Run("H0 returns string as text", func(t *testing.T) {
		t.Parallel()

		app := weir.New()
		app.Get("/", weir.H0(func(req *weir.Request) (string, error) {
			return "plain", nil
		}))

		w := serve(t, app, http.MethodGet, "/")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "plain", w.Body.String())
		assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	})

	t.Run("H1 extracts path params", func(t *testing.T) {
		t.Parallel()

		app := weir.New()
		app.Get("/items/:id", weir.H1(func(req *weir.Request, p weir.Path[idParams]) (int, error) {
			assert.Equal(t, 17, p.Value.ID)
			return http.StatusAccepted, nil
		}))

		w := serve(t, app, http.MethodGet, "/items/17")
		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("H2 extracts left to right", func(t *testing.T) {
		t.Parallel()

		app := weir.New()
		app.Get("/items/:id", weir.H2(func(req *weir.Request, p weir.Path[idParams], q weir.Query[pageQuery]) (map[string]int, error) {
			return map[string]int{"id": p.Value.ID, "page": q.Value.Page}, nil
		}))

		w := serve(t, app, http.MethodGet, "/items/3?page=2")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":3,"page":2}`, w.Body.String())
	})

	t.Run("extraction failure short-circuits the handler", func(t *testing.T) {
		t.Parallel()

		ran := false
		app := weir.New()
		app.Get("/items/:id", weir.H1(func(req *weir.Request, p weir.Path[idParams]) (string, error) {
			ran = true
			return "never", nil
		}))

		w := serve(t, app, http.MethodGet, "/items/not-a-number")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_PATH_PARAM")
		assert.False(t, ran)
	})

	t.Run("handler error renders structured response", func(t *testing.T) {
		t.Parallel()

		app := weir.New()
		app.Get("/teapot", weir.H0(func(req *weir.Request) (string, error) {
			return "", &weir.Error{Status: http.StatusTeapot, Code: "TEAPOT", Message: "short and stout"}
		}))

		w := serve(t, app, http.MethodGet, "/teapot")
		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.JSONEq(t, `{"code":"TEAPOT","message":"short and stout"}`, w.Body.String())
	})

	t.Run("opaque handler error renders generic 500", func(t *testing.T) {
		t.Parallel()

		app := weir.New()
		app.Get("/boom", weir.H0(func(req *weir.Request) (string, error) {
			return "", errors.New("database exploded")
		}))

		w := serve(t, app, http.MethodGet, "/boom")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "database exploded")
	})
}

type customResponder struct{ code int }

func (c customResponder) Response() *weir.Response {
	return weir.Text("custom").WithStatus(c.code)
}

func TestRespondConversions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		value       any
		wantStatus  int
		wantBody    string
		contentType string
	}{
		{"nil becomes 204", nil, http.StatusNoContent, "", ""},
		{"string becomes text", "hi", http.StatusOK, "hi", "text/plain; charset=utf-8"},
		{"bytes become octet-stream", []byte{0x1, 0x2}, http.StatusOK, "\x01\x02", "application/octet-stream"},
		{"int becomes status", http.StatusCreated, http.StatusCreated, "", ""},
		{"responder renders itself", customResponder{code: http.StatusPaymentRequired}, http.StatusPaymentRequired, "custom", "text/plain; charset=utf-8"},
		{"response passes through", weir.Text("direct").WithStatus(http.StatusAccepted), http.StatusAccepted, "direct", "text/plain; charset=utf-8"},
		{"struct becomes json", struct {
			N int `json:"n"`
		}{N: 9}, http.StatusOK, `{"n":9}`, "application/json; charset=utf-8"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := weir.Respond(tt.value)
			require.NotNil(t, resp)

			w := httptest.NewRecorder()
			require.NoError(t, resp.Write(w, false))
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
			if tt.contentType != "" {
				assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
			}
		})
	}

	t.Run("error renders via error response", func(t *testing.T) {
		t.Parallel()

		resp := weir.Respond(weir.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, resp.Status())
		assert.True(t, strings.Contains(string(resp.Body()), "NOT_FOUND"))
	})
}
