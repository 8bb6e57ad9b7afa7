package middleware

import (
	"github.com/google/uuid"

	"github.com/weirhq/weir"
)

// requestIDKey is used as a key for storing the request ID on the request.
type requestIDKey struct{}

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(req *weir.Request) bool
	// Generator creates new request IDs (default: UUID v4)
	Generator func() string
	// HeaderName specifies the header name for the request ID (default: "X-Request-ID")
	HeaderName string
	// UseExisting determines whether to reuse a request ID sent by the client
	UseExisting bool
}

// RequestID creates a request ID middleware with default configuration.
// It generates a new UUID for each request and includes it in both the
// request and the response headers.
func RequestID() weir.Middleware {
	return RequestIDWithConfig(RequestIDConfig{})
}

// RequestIDWithConfig creates a request ID middleware with custom
// configuration. The ID is stored on the request for retrieval with
// GetRequestID and set on the response header.
func RequestIDWithConfig(cfg RequestIDConfig) weir.Middleware {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Request-ID"
	}

	if cfg.Generator == nil {
		cfg.Generator = func() string {
			return uuid.New().String()
		}
	}

	return weir.MiddlewareFunc(func(req *weir.Request, next weir.Next) *weir.Response {
		if cfg.Skip != nil && cfg.Skip(req) {
			return next.Run(req)
		}

		var requestID string

		if cfg.UseExisting {
			if existingID := req.Header().Get(cfg.HeaderName); existingID != "" {
				requestID = existingID
			}
		}

		if requestID == "" {
			requestID = cfg.Generator()
		}

		req.SetValue(requestIDKey{}, requestID)

		resp := next.Run(req)
		resp.Header().Set(cfg.HeaderName, requestID)
		return resp
	})
}

// GetRequestID retrieves the request ID assigned by the RequestID
// middleware. Returns the ID and whether one was found.
func GetRequestID(req *weir.Request) (string, bool) {
	id, ok := req.Value(requestIDKey{}).(string)
	return id, ok
}
