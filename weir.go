package weir

// Endpoint is the minimal type-erased unit the router invokes: a request
// goes in, a response comes out. Handlers of arbitrary signatures are
// adapted into this shape by H0..H4; Router itself implements Endpoint so
// mounted sub-routers are dispatched the same way as plain handlers.
type Endpoint interface {
	Serve(req *Request) *Response
}

// EndpointFunc adapts a plain function to the Endpoint interface.
type EndpointFunc func(req *Request) *Response

// Serve implements Endpoint.
func (f EndpointFunc) Serve(req *Request) *Response { return f(req) }

// Middleware wraps the remainder of the dispatch pipeline. A middleware may
// mutate the request before forwarding, call next.Run exactly once, skip it
// entirely to short-circuit, and mutate the returned response before
// returning it. Calling next.Run more than once is a programming error.
type Middleware interface {
	Handle(req *Request, next Next) *Response
}

// MiddlewareFunc adapts a plain function to the Middleware interface.
type MiddlewareFunc func(req *Request, next Next) *Response

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(req *Request, next Next) *Response { return f(req, next) }

// Responder is implemented by handler return values that know how to render
// themselves as a response. Values that do not implement it are converted by
// the adapters: strings become text/plain, byte slices octet-stream, ints
// bare status codes, errors structured error responses, and anything else is
// JSON-encoded.
type Responder interface {
	Response() *Response
}
