package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Archive exports wrap most scalar fields in single-element arrays
// ("title": ["Intro"], "isCued": ["false"]). The helpers below accept either
// form so documents written by both old and new exporters decode the same.

// unwrap returns the scalar inside a one-element array, or raw itself.
// An empty array or null yields nil.
func unwrap(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] != '[' {
		return trimmed, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return unwrap(items[0])
}

func decodeText(raw json.RawMessage) (string, error) {
	v, err := unwrap(raw)
	if err != nil || v == nil {
		return "", err
	}

	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", err
	}
	return s, nil
}

// decodeFlag reads a boolean, or the strings "true"/"false".
// ok is false when the field is absent or holds any other string, so the
// caller's default applies.
func decodeFlag(raw json.RawMessage) (value bool, ok bool, err error) {
	v, err := unwrap(raw)
	if err != nil || v == nil {
		return false, false, err
	}

	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return false, false, err
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true":
			return true, true, nil
		case "false":
			return false, true, nil
		default:
			return false, false, nil
		}
	}

	var b bool
	if err := json.Unmarshal(v, &b); err != nil {
		return false, false, err
	}
	return b, true, nil
}

// decodeSeconds reads a JSON number or a numeric string.
func decodeSeconds(raw json.RawMessage) (float64, error) {
	v, err := unwrap(raw)
	if err != nil || v == nil {
		return 0, err
	}

	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("invalid number %q", s)
		}
		return f, nil
	}

	var f float64
	if err := json.Unmarshal(v, &f); err != nil {
		return 0, err
	}
	return f, nil
}
