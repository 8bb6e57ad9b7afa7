package httpserver

import "errors"

var (
	// ErrMissingAddress is returned when the server address is not provided.
	ErrMissingAddress = errors.New("server address is required")

	// ErrServerAlreadyRunning is returned by Start when the server is
	// already serving.
	ErrServerAlreadyRunning = errors.New("server is already running")

	// ErrFailedLoadCert is returned when the configured TLS certificate
	// pair cannot be loaded.
	ErrFailedLoadCert = errors.New("failed to load certificate")
)
