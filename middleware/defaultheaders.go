package middleware

import "github.com/weirhq/weir"

// DefaultHeaders creates a middleware that sets the given headers on every
// response after the rest of the pipeline has produced it. Headers a handler
// already set are left alone.
func DefaultHeaders(headers map[string]string) weir.Middleware {
	return weir.MiddlewareFunc(func(req *weir.Request, next weir.Next) *weir.Response {
		resp := next.Run(req)
		for name, value := range headers {
			if resp.Header().Get(name) == "" {
				resp.Header().Set(name, value)
			}
		}
		return resp
	})
}
