package variable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/varlet/varlet/internal/store"
)

// Export renders every stored variable as one JSON object, keys in lexical
// order, values decoded to their richest form, 2-space indented with a
// trailing newline. Two exports with no mutation in between are
// byte-identical. Export never mutates the store.
//
// The int result is the number of keys actually rendered into the document.
// A key whose value cannot be read (for example an undecryptable row) is
// omitted from the document and reported in the returned error slice;
// remaining keys are still exported.
func Export(st store.Store) ([]byte, int, []error, error) {
	keys, err := st.List()
	if err != nil {
		return nil, 0, nil, fmt.Errorf("listing variables: %w", err)
	}
	sort.Strings(keys)

	doc := make(map[string]any, len(keys))
	var keyErrs []error
	for _, key := range keys {
		raw, err := st.Get(key)
		if err != nil {
			keyErrs = append(keyErrs, fmt.Errorf("exporting %q: %w", key, err))
			continue
		}
		doc[key] = DecodeRich(raw)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, 0, keyErrs, fmt.Errorf("encoding export: %w", err)
	}

	return buf.Bytes(), len(doc), keyErrs, nil
}
