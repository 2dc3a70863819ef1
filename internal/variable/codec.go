// Package variable implements the value codec, the import merge engine, and
// the export serializer that sit on top of a VariableStore.
//
// Values are persisted as text. Plain strings are stored verbatim; every
// other JSON-representable value is stored as canonical JSON (sorted object
// keys, 2-space indent, no HTML escaping) so repeated encodes of the same
// value are byte-identical.
package variable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Encode converts a value to its persisted textual form. Strings persist
// verbatim; all other types persist as canonical JSON.
func Encode(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encoding value: %w", err)
	}

	// Encoder.Encode appends a newline that is not part of the stored form.
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Decode converts stored text back to a value. When asJSON is false the raw
// text is returned unchanged (a plain string stays a string even if it looks
// numeric). When asJSON is true the text must parse as JSON; malformed input
// yields a DecodeError naming key.
func Decode(key, raw string, asJSON bool) (any, error) {
	if !asJSON {
		return raw, nil
	}

	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, &DecodeError{Key: key, Err: err}
	}
	return v, nil
}

// DecodeRich returns the richest representable form of stored text: the
// parsed JSON value when the text is valid JSON, otherwise the text itself.
// Export relies on this to re-emit structured values as structured JSON.
func DecodeRich(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}
