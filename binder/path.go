package binder

import (
	"fmt"
	"reflect"
)

// Path binds captured path parameters onto v using the provided lookup.
// The lookup is called once per struct field with the parameter name from
// the `path` tag (or the lowercase field name when untagged).
//
// A parameter the lookup cannot find is an error for plain fields and
// leaves pointer fields nil, so pointers mark optional parameters:
//
//	type EditParams struct {
//		PostID   int     `path:"id"`
//		Revision *string `path:"rev"`
//	}
func Path(v any, lookup func(name string) (string, bool)) error {
	if lookup == nil {
		return fmt.Errorf("%w: lookup function is nil", ErrFailedToParsePath)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", ErrFailedToParsePath)
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", ErrFailedToParsePath)
	}

	rt := rv.Type()

	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		fieldType := rt.Field(i)

		if !field.CanSet() {
			continue
		}

		paramName, skip := parseFieldTag(fieldType, "path")
		if skip {
			continue
		}

		value, ok := lookup(paramName)
		if !ok {
			if fieldType.Type.Kind() == reflect.Pointer {
				continue
			}
			return fmt.Errorf("%w: path parameter %q", ErrMissingValue, paramName)
		}

		if err := setFieldValue(field, fieldType.Type, []string{value}); err != nil {
			return fmt.Errorf("%w: field %s: %v", ErrFailedToParsePath, fieldType.Name, err)
		}
	}

	return nil
}
