package paymentdomain

import (
	"encoding/json"
	"fmt"
)

// Helpers for rebuilding records from structured mappings. JSON decoding turns
// every number into a float64, so integer fields accept both forms.

func mapString(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %s: expected string, got %T", key, v)
	}
	return s, nil
}

func mapInt64(m map[string]any, key string) (int64, bool, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch n := v.(type) {
	case int:
		return int64(n), true, nil
	case int64:
		return n, true, nil
	case float64:
		if n != float64(int64(n)) {
			return 0, false, fmt.Errorf("field %s: %v is not an integer", key, n)
		}
		return int64(n), true, nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false, fmt.Errorf("field %s: %w", key, err)
		}
		return i, true, nil
	default:
		return 0, false, fmt.Errorf("field %s: expected integer, got %T", key, v)
	}
}

func mapMetadata(m map[string]any, key string) (map[string]any, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	md, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("field %s: expected mapping, got %T", key, v)
	}
	out := make(map[string]any, len(md))
	for k, val := range md {
		out[k] = val
	}
	return out, nil
}
