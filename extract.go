package weir

import (
	"errors"
	"mime"
	"net/url"
	"strings"

	"github.com/weirhq/weir/binder"
)

// Path decodes captured path parameters into T using `path` struct tags.
// A parameter the route never captured rejects with a 400; a captured value
// that fails to parse into the field type rejects with a 400 as well.
type Path[T any] struct {
	Value T
}

func (p *Path[T]) Extract(req *Request) error {
	if err := binder.Path(&p.Value, req.Params().Get); err != nil {
		if errors.Is(err, binder.ErrMissingValue) {
			return ErrMissingParam.WithCause(err)
		}
		return ErrInvalidParam.WithCause(err)
	}
	return nil
}

// Query decodes the request's query string into T using `query` struct tags.
// A request without a query string yields the zero value of T.
type Query[T any] struct {
	Value T
}

func (q *Query[T]) Extract(req *Request) error {
	raw := req.URL().RawQuery
	if raw == "" {
		return nil
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return ErrInvalidQuery.WithCause(err)
	}
	if err := binder.Query(&q.Value, values); err != nil {
		return ErrInvalidQuery.WithCause(err)
	}
	return nil
}

// JSON consumes the request body and decodes it into T. The request must
// declare a JSON content type (application/json or any */*+json variant);
// anything else rejects with 415 before the body is touched.
type JSON[T any] struct {
	Value T
}

func (j *JSON[T]) Extract(req *Request) error {
	if !isJSONContentType(req.ContentType()) {
		return ErrUnexpectedContentType.WithMessage("expected a JSON content type, got %q", req.ContentType())
	}
	data, err := req.ReadBody()
	if err != nil {
		return err
	}
	if err := binder.JSON(&j.Value, data); err != nil {
		return ErrMalformedBody.WithCause(err)
	}
	return nil
}

// Form consumes the request body as application/x-www-form-urlencoded and
// decodes it into T using `form` struct tags.
type Form[T any] struct {
	Value T
}

func (f *Form[T]) Extract(req *Request) error {
	if !isFormContentType(req.ContentType()) {
		return ErrUnexpectedContentType.WithMessage("expected %s, got %q", formContentType, req.ContentType())
	}
	data, err := req.ReadBody()
	if err != nil {
		return err
	}
	values, err := url.ParseQuery(string(data))
	if err != nil {
		return ErrMalformedBody.WithCause(err)
	}
	if err := binder.Form(&f.Value, values); err != nil {
		return ErrMalformedBody.WithCause(err)
	}
	return nil
}

// Body consumes the raw request body without interpreting it.
type Body struct {
	Data        []byte
	ContentType string
}

func (b *Body) Extract(req *Request) error {
	data, err := req.ReadBody()
	if err != nil {
		return err
	}
	b.Data = data
	b.ContentType = req.ContentType()
	return nil
}

// RemoteAddr reports the peer address the request arrived from.
type RemoteAddr struct {
	Addr string
}

func (a *RemoteAddr) Extract(req *Request) error {
	a.Addr = req.RemoteAddr()
	return nil
}

// State retrieves a value of type T previously installed by ProvideState.
// Extracting state that was never provided is an application wiring fault
// and rejects with 500.
type State[T any] struct {
	Value T
}

func (s *State[T]) Extract(req *Request) error {
	v, ok := Extension[T](req)
	if !ok {
		return ErrMissingState
	}
	s.Value = v
	return nil
}

// ProvideState returns a middleware that makes state available to every
// request passing through it for retrieval with the State extractor.
func ProvideState[T any](state T) MiddlewareFunc {
	return func(req *Request, next Next) *Response {
		SetExtension(req, state)
		return next.Run(req)
	}
}

const formContentType = "application/x-www-form-urlencoded"

func isJSONContentType(ct string) bool {
	mediatype, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	_, subtype, ok := strings.Cut(mediatype, "/")
	if !ok {
		return false
	}
	return subtype == "json" || strings.HasSuffix(subtype, "+json")
}

func isFormContentType(ct string) bool {
	mediatype, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediatype == formContentType
}
