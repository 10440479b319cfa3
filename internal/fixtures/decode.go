package fixtures

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Decode unmarshals a fixture payload into a slice of T. A payload that is
// valid JSON but not an array (an object, a scalar, null) yields an empty
// result rather than an error: the load succeeds with no items. Malformed
// JSON is a load failure.
func Decode[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("fixture is not valid JSON")
		}
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return items, nil
}
