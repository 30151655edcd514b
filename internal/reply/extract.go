// Package reply extracts structured results from raw agent output.
//
// Agent replies are not guaranteed to be clean JSON: they may be wrapped
// in prose, markdown code fences, or carry trailing commentary. The
// contract is whole-object-or-fallback; there is no field-by-field
// salvage of partially valid objects.
package reply

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoObject reports that no balanced JSON object was found in a reply.
var ErrNoObject = errors.New("no JSON object in reply")

// Extract finds the first balanced JSON object in raw text (handles
// markdown wrappers and surrounding prose). Braces inside string
// literals do not count toward balance. Returns false when the text
// contains no balanced object.
func Extract(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]

		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}

	return "", false
}

// Decode parses an agent reply into v. The whole text is tried first;
// if that fails, the first balanced object inside it is tried. Only the
// first balanced span is attempted.
func Decode(raw string, v any) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ErrNoObject
	}

	if err := json.Unmarshal([]byte(trimmed), v); err == nil {
		return nil
	}

	obj, ok := Extract(trimmed)
	if !ok {
		return ErrNoObject
	}
	if err := json.Unmarshal([]byte(obj), v); err != nil {
		return fmt.Errorf("parse extracted object: %w", err)
	}
	return nil
}

// DecodeOr parses raw into a T, returning fallback when no usable
// object can be extracted.
func DecodeOr[T any](raw string, fallback T) T {
	var v T
	if err := Decode(raw, &v); err != nil {
		return fallback
	}
	return v
}
