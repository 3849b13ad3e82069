package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError reports a completion that did not contain a usable JSON object.
type ParseError struct {
	Reason string
	Raw    string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse completion: %s: %v", e.Reason, e.Err)
	}
	return "parse completion: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExtractJSONObject returns the first balanced {...} substring of raw.
// Braces inside JSON strings are ignored, so fences and prose around the
// object do not matter.
func ExtractJSONObject(raw string) (string, error) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", &ParseError{Reason: "no JSON object in response", Raw: raw}
	}

	depth := 0
	inString, escaped := false, false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
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
				return raw[start : i+1], nil
			}
		}
	}

	return "", &ParseError{Reason: "unbalanced JSON object in response", Raw: raw}
}

// DecodeJSONObject extracts and parses the JSON object in raw.
// Every failure is a *ParseError.
func DecodeJSONObject(raw string) (map[string]any, error) {
	object, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(object), &data); err != nil {
		return nil, &ParseError{Reason: "invalid JSON object", Raw: raw, Err: err}
	}
	if data == nil {
		return nil, &ParseError{Reason: "null JSON object", Raw: raw}
	}

	return data, nil
}
