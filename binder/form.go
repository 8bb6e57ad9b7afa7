package binder

import "net/url"

// Form binds parsed URL-encoded form values onto v using `form` struct
// tags. Tag syntax and supported field types match Query.
func Form(v any, values url.Values) error {
	return bindToStruct(v, "form", values, ErrFailedToParseForm)
}
