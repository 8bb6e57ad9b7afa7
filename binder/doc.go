// Package binder maps request data onto Go structs using reflection.
//
// Each binder takes already-extracted raw data (captured path parameters,
// parsed query or form values, a JSON body) and populates struct fields
// selected by tags:
//
//	type ListParams struct {
//		Page int      `query:"page"`
//		Tags []string `query:"tags"` // ?tags=go&tags=web or ?tags=go,web
//	}
//
// Fields without a tag bind by their lowercase name; a tag of "-" skips the
// field. Basic types, slices of basic types, and pointers for optional
// fields are supported.
package binder
