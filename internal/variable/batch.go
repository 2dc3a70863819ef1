package variable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Pair is one (key, value) entry of an import batch, in document order.
type Pair struct {
	Key   string
	Value any
}

// ParseBatch parses an import document: a UTF-8 JSON object mapping variable
// keys to values of any JSON type. Pair order follows the document so the
// merge engine processes keys in input order. A key repeated in the document
// keeps its first position with the last value, matching object semantics.
func ParseBatch(data []byte) ([]Pair, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, fmt.Errorf("the file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("the file must contain a JSON object")
	}

	var pairs []Pair
	seen := make(map[string]int)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("parsing import file: object key is not a string")
		}

		var val any
		if err := dec.Decode(&val); err != nil {
			return nil, &DecodeError{Key: key, Err: err}
		}

		if i, dup := seen[key]; dup {
			pairs[i].Value = val
			continue
		}
		seen[key] = len(pairs)
		pairs = append(pairs, Pair{Key: key, Value: val})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("the file must contain a single JSON object")
	}

	return pairs, nil
}
