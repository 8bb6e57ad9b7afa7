package weir

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
)

// Response is the uniform result of dispatching a request: a status code, a
// header collection, and a body. The body is either empty, in-memory bytes,
// or a lazy producer for streaming and file-send, opened only when the
// boundary layer writes the response out. Handlers, middleware and error
// converters all construct Responses; the surrounding server consumes them.
type Response struct {
	status int
	header http.Header

	body   []byte
	stream io.Reader
	file   string
}

// NewResponse creates an empty response with the given status code.
func NewResponse(status int) *Response {
	return &Response{status: status, header: make(http.Header)}
}

// Status returns the response status code, defaulting to 200 OK.
func (r *Response) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// Header returns the mutable header collection.
func (r *Response) Header() http.Header {
	if r.header == nil {
		r.header = make(http.Header)
	}
	return r.header
}

// WithStatus returns the response with the status code replaced.
func (r *Response) WithStatus(status int) *Response {
	r.status = status
	return r
}

// WithHeader returns the response with a header added.
func (r *Response) WithHeader(key, value string) *Response {
	r.Header().Add(key, value)
	return r
}

// WithContentType returns the response with the Content-Type replaced.
func (r *Response) WithContentType(contentType string) *Response {
	r.Header().Set("Content-Type", contentType)
	return r
}

// Body returns the in-memory body bytes, or nil for empty and lazy bodies.
func (r *Response) Body() []byte { return r.body }

// Write serializes the response to w. When headOnly is set (HEAD requests)
// headers and status are written but the body is suppressed. Lazy bodies
// are produced here: streams are copied through and files are opened,
// sent, and closed.
func (r *Response) Write(w http.ResponseWriter, headOnly bool) error {
	h := w.Header()
	for key, values := range r.header {
		for _, v := range values {
			h.Add(key, v)
		}
	}

	if r.file != "" {
		return r.writeFile(w, headOnly)
	}

	if r.stream == nil && h.Get("Content-Length") == "" {
		h.Set("Content-Length", strconv.Itoa(len(r.body)))
	}

	w.WriteHeader(r.Status())

	if r.stream != nil {
		if c, ok := r.stream.(io.Closer); ok {
			defer c.Close()
		}
		if headOnly {
			return nil
		}
		_, err := io.Copy(w, r.stream)
		return err
	}

	if headOnly {
		return nil
	}

	if len(r.body) > 0 {
		_, err := w.Write(r.body)
		return err
	}
	return nil
}

func (r *Response) writeFile(w http.ResponseWriter, headOnly bool) error {
	f, err := os.Open(r.file)
	if err != nil {
		// The response was already promised to the client as a file send;
		// degrade to a plain 404/500 rather than failing the connection.
		status := http.StatusInternalServerError
		if os.IsNotExist(err) {
			status = http.StatusNotFound
		}
		http.Error(w, http.StatusText(status), status)
		return fmt.Errorf("open %s: %w", r.file, err)
	}
	defer f.Close()

	h := w.Header()
	if h.Get("Content-Type") == "" {
		if ct := mime.TypeByExtension(filepath.Ext(r.file)); ct != "" {
			h.Set("Content-Type", ct)
		}
	}
	if info, err := f.Stat(); err == nil {
		h.Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	}

	w.WriteHeader(r.Status())
	if headOnly {
		return nil
	}
	_, err = io.Copy(w, f)
	return err
}

// Text creates a text/plain response with 200 OK status.
func Text(content string) *Response {
	return Bytes([]byte(content), "text/plain; charset=utf-8")
}

// Textf creates a formatted text/plain response with 200 OK status.
func Textf(format string, args ...any) *Response {
	return Text(fmt.Sprintf(format, args...))
}

// HTML creates a text/html response with 200 OK status.
func HTML(content string) *Response {
	return Bytes([]byte(content), "text/html; charset=utf-8")
}

// JSONResponse creates an application/json response with 200 OK status. Values that
// cannot be marshaled render as a generic 500 instead of propagating a
// fault through the pipeline.
func JSONResponse(v any) *Response {
	data, err := json.Marshal(v)
	if err != nil {
		resp := Bytes([]byte(`{"code":"INTERNAL_ERROR","message":"response encoding failed"}`), "application/json; charset=utf-8")
		return resp.WithStatus(http.StatusInternalServerError)
	}
	return Bytes(data, "application/json; charset=utf-8")
}

// Bytes creates a response with the given content type and 200 OK status.
func Bytes(content []byte, contentType string) *Response {
	resp := NewResponse(http.StatusOK)
	resp.body = content
	if contentType != "" {
		resp.header.Set("Content-Type", contentType)
	}
	return resp
}

// Status creates an empty response with the given status code.
func Status(code int) *Response {
	return NewResponse(code)
}

// NoContent creates a 204 No Content response.
func NoContent() *Response {
	return NewResponse(http.StatusNoContent)
}

// Stream creates a response whose body is produced lazily from rd when the
// response is written. If rd implements io.Closer it is closed afterwards.
func Stream(rd io.Reader, contentType string) *Response {
	resp := NewResponse(http.StatusOK)
	resp.stream = rd
	if contentType != "" {
		resp.header.Set("Content-Type", contentType)
	}
	return resp
}

// File creates a response that sends the named file. The file is opened
// only when the response is written; the Content-Type is inferred from the
// file extension unless already set.
func File(path string) *Response {
	resp := NewResponse(http.StatusOK)
	resp.file = path
	return resp
}

// Redirect creates a redirect response to url. Codes outside the 3xx range
// fall back to 302 Found.
func Redirect(url string, code int) *Response {
	if code < http.StatusMultipleChoices || code > http.StatusPermanentRedirect {
		code = http.StatusFound
	}
	resp := NewResponse(code)
	resp.header.Set("Location", url)
	return resp
}
