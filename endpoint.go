package weir

// Extractor pulls a typed value out of a request. Implementations populate
// the receiver in place and report a *Error (or any error, which is wrapped
// into a generic 500) when the request does not carry what they need.
type Extractor interface {
	Extract(req *Request) error
}

// PtrExtractor constrains a type parameter to pointer-receiver extractors,
// letting the handler adapters allocate the value and extract into it.
type PtrExtractor[T any] interface {
	*T
	Extractor
}

// H0 adapts a plain function into an Endpoint. The return value is converted
// into a Response; see Respond for the conversion rules.
func H0[R any](fn func(req *Request) (R, error)) EndpointFunc {
	return func(req *Request) *Response {
		v, err := fn(req)
		if err != nil {
			return ErrorResponse(err)
		}
		return Respond(v)
	}
}

// H1 adapts a function taking one extracted argument into an Endpoint.
// Extraction failures short-circuit into an error response before the
// function runs.
func H1[A any, PA PtrExtractor[A], R any](fn func(req *Request, a A) (R, error)) EndpointFunc {
	return func(req *Request) *Response {
		var a A
		if err := PA(&a).Extract(req); err != nil {
			return ErrorResponse(err)
		}
		v, err := fn(req, a)
		if err != nil {
			return ErrorResponse(err)
		}
		return Respond(v)
	}
}

// H2 adapts a function taking two extracted arguments into an Endpoint.
// Arguments are extracted left to right; the first failure wins.
func H2[A any, PA PtrExtractor[A], B any, PB PtrExtractor[B], R any](fn func(req *Request, a A, b B) (R, error)) EndpointFunc {
	return func(req *Request) *Response {
		var a A
		if err := PA(&a).Extract(req); err != nil {
			return ErrorResponse(err)
		}
		var b B
		if err := PB(&b).Extract(req); err != nil {
			return ErrorResponse(err)
		}
		v, err := fn(req, a, b)
		if err != nil {
			return ErrorResponse(err)
		}
		return Respond(v)
	}
}

// H3 adapts a function taking three extracted arguments into an Endpoint.
func H3[A any, PA PtrExtractor[A], B any, PB PtrExtractor[B], C any, PC PtrExtractor[C], R any](fn func(req *Request, a A, b B, c C) (R, error)) EndpointFunc {
	return func(req *Request) *Response {
		var a A
		if err := PA(&a).Extract(req); err != nil {
			return ErrorResponse(err)
		}
		var b B
		if err := PB(&b).Extract(req); err != nil {
			return ErrorResponse(err)
		}
		var c C
		if err := PC(&c).Extract(req); err != nil {
			return ErrorResponse(err)
		}
		v, err := fn(req, a, b, c)
		if err != nil {
			return ErrorResponse(err)
		}
		return Respond(v)
	}
}

// H4 adapts a function taking four extracted arguments into an Endpoint.
func H4[A any, PA PtrExtractor[A], B any, PB PtrExtractor[B], C any, PC PtrExtractor[C], D any, PD PtrExtractor[D], R any](fn func(req *Request, a A, b B, c C, d D) (R, error)) EndpointFunc {
	return func(req *Request) *Response {
		var a A
		if err := PA(&a).Extract(req); err != nil {
			return ErrorResponse(err)
		}
		var b B
		if err := PB(&b).Extract(req); err != nil {
			return ErrorResponse(err)
		}
		var c C
		if err := PC(&c).Extract(req); err != nil {
			return ErrorResponse(err)
		}
		var d D
		if err := PD(&d).Extract(req); err != nil {
			return ErrorResponse(err)
		}
		v, err := fn(req, a, b, c, d)
		if err != nil {
			return ErrorResponse(err)
		}
		return Respond(v)
	}
}

// Respond converts an arbitrary handler return value into a Response:
//
//   - nil becomes 204 No Content
//   - *Response passes through unchanged
//   - Responder implementations render themselves
//   - string becomes a text/plain body
//   - []byte becomes an application/octet-stream body
//   - int becomes a bare status code
//   - error renders via ErrorResponse
//   - anything else is serialized as JSON
func Respond(v any) *Response {
	switch t := v.(type) {
	case nil:
		return NoContent()
	case *Response:
		if t == nil {
			return NoContent()
		}
		return t
	case Responder:
		return t.Response()
	case string:
		return Text(t)
	case []byte:
		return Bytes(t, "application/octet-stream")
	case int:
		return Status(t)
	case error:
		return ErrorResponse(t)
	default:
		return JSONResponse(v)
	}
}
