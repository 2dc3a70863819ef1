package secrets

import (
	"os"
	"strings"
)

// DefaultEnvPrefix is the prefix for environment-variable lookups:
// VARLET_VAR_foo answers a lookup for "foo".
const DefaultEnvPrefix = "VARLET_VAR_"

// Env resolves variables from the process environment.
type Env struct {
	// Prefix prepended to the key; DefaultEnvPrefix when empty.
	Prefix string
}

func (e *Env) GetVariable(key string) (string, bool, error) {
	prefix := e.Prefix
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}

	if val, ok := os.LookupEnv(prefix + key); ok {
		return val, true, nil
	}
	// Keys are conventionally lower-case while environment names are upper.
	if val, ok := os.LookupEnv(prefix + strings.ToUpper(key)); ok {
		return val, true, nil
	}
	return "", false, nil
}
