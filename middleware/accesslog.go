package middleware

import (
	"log/slog"
	"time"

	"github.com/weirhq/weir"
)

// AccessLogConfig configures the access logging middleware.
type AccessLogConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(req *weir.Request) bool

	// Logger is the slog logger to use (default: slog.Default())
	Logger *slog.Logger

	// SlowRequestThreshold logs slow requests at warning level (default: 5s)
	SlowRequestThreshold time.Duration
}

// AccessLog creates an access logging middleware writing one structured log
// line per request.
func AccessLog(log *slog.Logger) weir.Middleware {
	return AccessLogWithConfig(AccessLogConfig{Logger: log})
}

// AccessLogWithConfig creates an access logging middleware with custom
// configuration. Responses log at info level, client errors at warn, server
// errors at error; requests slower than the threshold are promoted to warn.
func AccessLogWithConfig(cfg AccessLogConfig) weir.Middleware {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}

	return weir.MiddlewareFunc(func(req *weir.Request, next weir.Next) *weir.Response {
		if cfg.Skip != nil && cfg.Skip(req) {
			return next.Run(req)
		}

		start := time.Now()
		resp := next.Run(req)
		elapsed := time.Since(start)

		attrs := []any{
			slog.String("method", req.Method()),
			slog.String("path", req.Path()),
			slog.Int("status", resp.Status()),
			slog.Duration("duration", elapsed),
			slog.String("remote_addr", req.RemoteAddr()),
		}
		if id, ok := GetRequestID(req); ok {
			attrs = append(attrs, slog.String("request_id", id))
		}

		ctx := req.Context()
		switch {
		case resp.Status() >= 500:
			cfg.Logger.ErrorContext(ctx, "request failed", attrs...)
		case resp.Status() >= 400:
			cfg.Logger.WarnContext(ctx, "request rejected", attrs...)
		case elapsed >= cfg.SlowRequestThreshold:
			cfg.Logger.WarnContext(ctx, "slow request", attrs...)
		default:
			cfg.Logger.InfoContext(ctx, "request served", attrs...)
		}

		return resp
	})
}
