package variable

import (
	"fmt"
	"strings"
)

// NotFoundError is returned when a variable is looked up without a default
// and no backend holds the key.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("variable %q does not exist", e.Key)
}

// DecodeError is returned when a stored or imported value cannot be parsed
// as JSON even though structured decoding was requested. It always names the
// offending key so one bad value never obscures which entry failed.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding variable %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ConflictError is returned by a restrict-policy import when one or more
// incoming keys already exist. It carries every rejected key; non-conflicting
// keys from the same batch have already been written by the time it is raised.
type ConflictError struct {
	Keys []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("import conflicts with existing variables: %s", strings.Join(e.Keys, ", "))
}
