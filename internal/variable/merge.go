package variable

import (
	"errors"
	"fmt"

	"github.com/varlet/varlet/internal/store"
)

// Policy decides what happens when an imported key already exists.
type Policy string

const (
	// PolicyOverwrite replaces the stored value with the incoming one.
	PolicyOverwrite Policy = "overwrite"
	// PolicyIgnore leaves the stored value untouched.
	PolicyIgnore Policy = "ignore"
	// PolicyRestrict leaves the stored value untouched and reports the key
	// as a conflict once the whole batch has been processed.
	PolicyRestrict Policy = "restrict"
)

// ParsePolicy validates a conflict disposition string. The empty string
// selects the default, overwrite.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "":
		return PolicyOverwrite, nil
	case PolicyOverwrite, PolicyIgnore, PolicyRestrict:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("invalid conflict disposition %q (valid: overwrite, ignore, restrict)", s)
	}
}

// Summary reports the per-key classification of an import.
type Summary struct {
	Added       int      `json:"added"`
	Overwritten int      `json:"overwritten"`
	Skipped     int      `json:"skipped"`
	Rejected    []string `json:"rejected,omitempty"`
}

// Merge reconciles a batch against the store under the given policy.
//
// Pairs are processed in input order, each as an independent read-decide-write
// against the store. Absent keys are always written. Existing keys are
// replaced, skipped, or rejected per the policy. Under PolicyRestrict the
// returned error is a ConflictError listing every rejected key, raised only
// after every non-conflicting key has been committed; the Summary is valid
// alongside the error.
func Merge(st store.Store, batch []Pair, policy Policy) (Summary, error) {
	var sum Summary

	for _, p := range batch {
		encoded, err := Encode(p.Value)
		if err != nil {
			return sum, fmt.Errorf("variable %q: %w", p.Key, err)
		}

		_, err = st.Get(p.Key)
		switch {
		case errors.Is(err, store.ErrNotFound):
			if err := st.Set(p.Key, encoded); err != nil {
				return sum, err
			}
			sum.Added++
		case err != nil:
			return sum, err
		default:
			switch policy {
			case PolicyOverwrite:
				if err := st.Set(p.Key, encoded); err != nil {
					return sum, err
				}
				sum.Overwritten++
			case PolicyIgnore:
				sum.Skipped++
			case PolicyRestrict:
				sum.Rejected = append(sum.Rejected, p.Key)
			}
		}
	}

	if policy == PolicyRestrict && len(sum.Rejected) > 0 {
		return sum, &ConflictError{Keys: sum.Rejected}
	}
	return sum, nil
}
