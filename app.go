package weir

import (
	"log/slog"
	"net/http"
)

// App is the top-level router bound to the net/http boundary. It owns the
// root route table and translates between http.Request/ResponseWriter and
// the framework's Request/Response values.
type App struct {
	*Router

	logger *slog.Logger
}

// Option configures an App at construction time.
type Option func(*App)

// WithLogger replaces the logger used for panics and write failures.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an empty App.
func New(opts ...Option) *App {
	app := &App{
		Router: NewRouter(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// NewWithState creates an App with shared state installed for every request,
// retrievable in handlers through the State extractor.
func NewWithState[T any](state T, opts ...Option) *App {
	app := New(opts...)
	app.Use(ProvideState(state))
	return app
}

// Logger returns the App's logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// ServeHTTP implements http.Handler. HEAD responses are written without a
// body but with the headers the matched GET endpoint produced.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := NewRequest(r)
	resp := a.serve(req)
	headOnly := r.Method == http.MethodHead
	if err := resp.Write(w, headOnly); err != nil {
		a.logger.ErrorContext(r.Context(), "failed to write response",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}
}

// serve dispatches through the route table, converting handler panics into
// a 500 so a single misbehaving endpoint cannot take the process down.
func (a *App) serve(req *Request) (resp *Response) {
	defer func() {
		if rec := recover(); rec != nil {
			a.logger.ErrorContext(req.Context(), "panic while serving request",
				slog.String("method", req.Method()),
				slog.String("path", req.Path()),
				slog.Any("panic", rec),
			)
			resp = ErrInternal.Response()
		}
	}()
	resp = a.Router.Serve(req)
	if resp == nil {
		// A nil response from the chain is a programming error, same as
		// calling next.Run twice. Degrade to a 500 instead of crashing
		// in the write path.
		a.logger.ErrorContext(req.Context(), "endpoint returned nil response",
			slog.String("method", req.Method()),
			slog.String("path", req.Path()),
		)
		resp = ErrInternal.Response()
	}
	return resp
}

var (
	_ http.Handler = (*App)(nil)
	_ Endpoint     = (*App)(nil)
)
