package weir

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// Params holds named path segments captured by a route match, in capture
// order. Merging a nested match appends the inner captures after the outer
// ones; lookups scan from the end so inner names shadow outer ones on
// collision.
type Params struct {
	keys   []string
	values []string
}

// Get returns the captured value for name.
func (p *Params) Get(name string) (string, bool) {
	for i := len(p.keys) - 1; i >= 0; i-- {
		if p.keys[i] == name {
			return p.values[i], true
		}
	}
	return "", false
}

// Len returns the number of captured parameters.
func (p *Params) Len() int { return len(p.keys) }

// Keys returns the captured parameter names in capture order.
func (p *Params) Keys() []string {
	keys := make([]string, len(p.keys))
	copy(keys, p.keys)
	return keys
}

func (p *Params) add(key, value string) {
	p.keys = append(p.keys, key)
	p.values = append(p.values, value)
}

// Request is the per-request carrier the dispatch core operates on. It
// wraps the parsed request head, owns the captured route parameters and the
// route-path cursor used by nested routing, carries a typed extension map
// for injected facts (application state, request id), and holds the body as
// a consume-at-most-once slot. A Request is owned exclusively by the task
// processing it; no synchronization is required.
type Request struct {
	inner      *http.Request
	body       io.ReadCloser
	params     Params
	remoteAddr string
	routePath  string
	ext        map[any]any
}

// NewRequest wraps a parsed *http.Request for dispatch. The body handle is
// moved into the request's consumable slot; the remote address is taken
// from the underlying connection fact.
func NewRequest(r *http.Request) *Request {
	req := &Request{
		inner:      r,
		body:       r.Body,
		remoteAddr: r.RemoteAddr,
	}
	// A bodyless request still gets a readable empty stream; only a second
	// take reports consumption.
	if req.body == nil {
		req.body = http.NoBody
	}
	return req
}

// Request returns the underlying parsed request head for raw access.
func (r *Request) Request() *http.Request { return r.inner }

// Context returns the request-scoped context of the underlying request.
func (r *Request) Context() context.Context { return r.inner.Context() }

// Method returns the HTTP method.
func (r *Request) Method() string { return r.inner.Method }

// URL returns the request URL.
func (r *Request) URL() *url.URL { return r.inner.URL }

// Path returns the full request path.
func (r *Request) Path() string {
	if r.inner.URL.Path == "" {
		return "/"
	}
	return r.inner.URL.Path
}

// Header returns the request headers.
func (r *Request) Header() http.Header { return r.inner.Header }

// RemoteAddr returns the peer address fact recorded by the boundary layer.
func (r *Request) RemoteAddr() string { return r.remoteAddr }

// Params returns the route parameters captured for this request.
func (r *Request) Params() *Params { return &r.params }

// Param returns the named route parameter, or "" if absent.
func (r *Request) Param(name string) string {
	v, _ := r.params.Get(name)
	return v
}

// RoutePath returns the yet-unrouted path suffix. Before any routing it is
// the full request path; after a mounted sub-router is selected it is the
// suffix beneath the mount prefix.
func (r *Request) RoutePath() string {
	if r.routePath != "" {
		return r.routePath
	}
	return r.Path()
}

func (r *Request) setRoutePath(path string) { r.routePath = path }

func (r *Request) mergeParams(keys, values []string) {
	for i, key := range keys {
		if i < len(values) {
			r.params.add(key, values[i])
		}
	}
}

// TakeBody removes and returns the body handle. The body may be taken at
// most once; a second attempt reports ErrBodyConsumed rather than silently
// yielding an empty stream.
func (r *Request) TakeBody() (io.ReadCloser, error) {
	if r.body == nil {
		return nil, ErrBodyConsumed
	}
	body := r.body
	r.body = nil
	return body, nil
}

// ReadBody consumes the body to completion and returns its bytes. Like
// TakeBody it succeeds at most once per request.
func (r *Request) ReadBody() ([]byte, error) {
	body, err := r.TakeBody()
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, ErrMalformedBody.WithCause(err)
	}
	return data, nil
}

// ContentType returns the raw Content-Type header value.
func (r *Request) ContentType() string {
	return r.inner.Header.Get("Content-Type")
}

// SetValue stores a keyed fact on the request for later pipeline stages.
// Use unexported key types to avoid collisions, as with context values.
func (r *Request) SetValue(key, val any) {
	if r.ext == nil {
		r.ext = make(map[any]any)
	}
	r.ext[key] = val
}

// Value returns a fact previously stored with SetValue, or nil.
func (r *Request) Value(key any) any {
	if r.ext == nil {
		return nil
	}
	return r.ext[key]
}

type extensionKey[T any] struct{}

// SetExtension stores v in the request's typed extension map, keyed by its
// type identity. This is how state middleware hands shared values to the
// State extractor without global variables.
func SetExtension[T any](r *Request, v T) {
	r.SetValue(extensionKey[T]{}, v)
}

// Extension retrieves a value of type T from the typed extension map.
func Extension[T any](r *Request) (T, bool) {
	v, ok := r.Value(extensionKey[T]{}).(T)
	return v, ok
}
