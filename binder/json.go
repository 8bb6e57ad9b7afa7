package binder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// JSON decodes data onto v. Unknown fields are tolerated so clients can
// evolve payloads independently, but trailing data after the top-level
// value is rejected.
func JSON(v any, data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}

	// Verify nothing follows the decoded value
	var extra json.RawMessage
	if err := decoder.Decode(&extra); err != io.EOF {
		return fmt.Errorf("%w: unexpected data after JSON value", ErrFailedToParseJSON)
	}

	return nil
}
