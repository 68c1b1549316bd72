package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// fields holds the top-level members of a server document, undecoded.
type fields map[string]json.RawMessage

var nullLiteral = []byte("null")

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, nullLiteral)
}

func decodeFields(data []byte) (fields, error) {
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("expected JSON object: %w", err)
	}
	return f, nil
}

// optional decodes raw into a fresh T. Missing, null and malformed values
// all yield nil.
func optional[T any](raw json.RawMessage) *T {
	if isNull(raw) {
		return nil
	}
	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		return nil
	}
	return v
}

func nonNegative(v *float64) *float64 {
	if v == nil || *v < 0 {
		return nil
	}
	return v
}

// Or dereferences p, falling back when p is absent.
func Or[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
