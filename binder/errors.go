package binder

import "errors"

// Error variables define common binding failures that can occur during
// request processing.
var (
	// ErrMissingValue indicates a required value was not present in the
	// source data, such as a path parameter the route never captured.
	ErrMissingValue = errors.New("missing required value")

	// ErrFailedToParsePath indicates path parameter conversion failed.
	ErrFailedToParsePath = errors.New("failed to parse path parameters")

	// ErrFailedToParseQuery indicates query parameter parsing failed,
	// typically due to type conversion errors.
	ErrFailedToParseQuery = errors.New("failed to parse query parameters")

	// ErrFailedToParseForm indicates form data parsing failed due to
	// invalid URL-encoded data or type conversion errors.
	ErrFailedToParseForm = errors.New("failed to parse form data")

	// ErrFailedToParseJSON indicates the body contains invalid JSON or
	// doesn't match the target struct schema.
	ErrFailedToParseJSON = errors.New("failed to parse JSON body")
)
