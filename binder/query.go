package binder

import "net/url"

// Query binds parsed query parameters onto v.
//
// It supports struct tags for custom parameter names:
//   - `query:"name"` - binds to query parameter "name"
//   - `query:"-"` - skips the field
//
// Supported types:
//   - Basic types: string, int, int64, uint, uint64, float32, float64, bool
//   - Slices of basic types for multi-value parameters
//   - Pointers for optional fields
func Query(v any, values url.Values) error {
	return bindToStruct(v, "query", values, ErrFailedToParseQuery)
}
