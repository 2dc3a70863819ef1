package variable

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/varlet/varlet/internal/store"
)

func newTestStore(t *testing.T) *store.SQLite {
	t.Helper()
	st, err := store.OpenSQLite(filepath.Join(t.TempDir(), "variables.db"), nil)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func mustGet(t *testing.T, st store.Store, key string) string {
	t.Helper()
	val, err := st.Get(key)
	if err != nil {
		t.Fatalf("Get(%q) error = %v", key, err)
	}
	return val
}

func TestMerge_AddsAbsentKeys(t *testing.T) {
	batch := []Pair{
		{Key: "str", Value: "hello string"},
		{Key: "int", Value: 42.0},
		{Key: "map", Value: map[string]any{"foo": "bar"}},
	}

	// Absent keys are written regardless of policy.
	for _, policy := range []Policy{PolicyOverwrite, PolicyIgnore, PolicyRestrict} {
		st := newTestStore(t)
		sum, err := Merge(st, batch, policy)
		if err != nil {
			t.Fatalf("Merge(%s) error = %v", policy, err)
		}
		if sum.Added != 3 || sum.Overwritten != 0 || sum.Skipped != 0 || len(sum.Rejected) != 0 {
			t.Errorf("Merge(%s) summary = %+v, want 3 added", policy, sum)
		}
	}

	st := newTestStore(t)
	if _, err := Merge(st, batch, PolicyOverwrite); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if got := mustGet(t, st, "str"); got != "hello string" {
		t.Errorf("str = %q, want verbatim string", got)
	}
	if got := mustGet(t, st, "int"); got != "42" {
		t.Errorf("int = %q, want %q", got, "42")
	}
	if got := mustGet(t, st, "map"); got != "{\n  \"foo\": \"bar\"\n}" {
		t.Errorf("map = %q, want canonical JSON", got)
	}
}

func TestMerge_OverwriteReplaces(t *testing.T) {
	st := newTestStore(t)
	if err := st.Set("var_a", "some_value"); err != nil {
		t.Fatal(err)
	}

	sum, err := Merge(st, []Pair{{Key: "var_a", Value: "some_other_value"}}, PolicyOverwrite)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if sum.Overwritten != 1 || sum.Added != 0 {
		t.Errorf("summary = %+v, want 1 overwritten", sum)
	}
	if got := mustGet(t, st, "var_a"); got != "some_other_value" {
		t.Errorf("var_a = %q, want %q", got, "some_other_value")
	}
}

func TestMerge_IgnoreKeepsStored(t *testing.T) {
	st := newTestStore(t)
	if err := st.Set("var_a", "some_value"); err != nil {
		t.Fatal(err)
	}

	sum, err := Merge(st, []Pair{{Key: "var_a", Value: "some_other_value"}}, PolicyIgnore)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if sum.Skipped != 1 || sum.Added != 0 || sum.Overwritten != 0 {
		t.Errorf("summary = %+v, want 1 skipped", sum)
	}
	if got := mustGet(t, st, "var_a"); got != "some_value" {
		t.Errorf("var_a = %q, want unchanged %q", got, "some_value")
	}
}

func TestMerge_RestrictRejectsAndReports(t *testing.T) {
	st := newTestStore(t)
	if err := st.Set("var_a", "some_value"); err != nil {
		t.Fatal(err)
	}

	sum, err := Merge(st, []Pair{{Key: "var_a", Value: "some_other_value"}}, PolicyRestrict)
	if err == nil {
		t.Fatal("Merge() expected ConflictError")
	}

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Merge() error = %T, want *ConflictError", err)
	}
	if !reflect.DeepEqual(conflict.Keys, []string{"var_a"}) {
		t.Errorf("ConflictError.Keys = %v, want [var_a]", conflict.Keys)
	}
	if !reflect.DeepEqual(sum.Rejected, []string{"var_a"}) {
		t.Errorf("summary rejected = %v, want [var_a]", sum.Rejected)
	}
	if got := mustGet(t, st, "var_a"); got != "some_value" {
		t.Errorf("var_a = %q, want unchanged %q", got, "some_value")
	}
}

func TestMerge_RestrictCommitsNonConflictingKeys(t *testing.T) {
	st := newTestStore(t)
	if err := st.Set("existing", "old"); err != nil {
		t.Fatal(err)
	}

	batch := []Pair{
		{Key: "fresh_a", Value: "a"},
		{Key: "existing", Value: "new"},
		{Key: "fresh_b", Value: "b"},
	}

	sum, err := Merge(st, batch, PolicyRestrict)

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Merge() error = %v, want *ConflictError", err)
	}
	if sum.Added != 2 {
		t.Errorf("summary added = %d, want 2", sum.Added)
	}

	// The conflict is raised only after every non-conflicting key committed.
	if got := mustGet(t, st, "fresh_a"); got != "a" {
		t.Errorf("fresh_a = %q, want committed", got)
	}
	if got := mustGet(t, st, "fresh_b"); got != "b" {
		t.Errorf("fresh_b = %q, want committed", got)
	}
	if got := mustGet(t, st, "existing"); got != "old" {
		t.Errorf("existing = %q, want unchanged", got)
	}
}

func TestMerge_OverwriteIdempotent(t *testing.T) {
	st := newTestStore(t)

	batch := []Pair{
		{Key: "a", Value: map[string]any{"x": 1.0}},
		{Key: "b", Value: "plain"},
	}

	if _, err := Merge(st, batch, PolicyOverwrite); err != nil {
		t.Fatalf("seed Merge() error = %v", err)
	}

	first, err := Merge(st, batch, PolicyOverwrite)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	firstState, _, _, err := Export(st)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	second, err := Merge(st, batch, PolicyOverwrite)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	secondState, _, _, err := Export(st)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-run classification differs: %+v vs %+v", first, second)
	}
	if string(firstState) != string(secondState) {
		t.Errorf("re-run state differs:\n%s\nvs\n%s", firstState, secondState)
	}
}

func TestMerge_DefaultPolicyIsOverwrite(t *testing.T) {
	policy, err := ParsePolicy("")
	if err != nil {
		t.Fatalf("ParsePolicy() error = %v", err)
	}
	if policy != PolicyOverwrite {
		t.Errorf("default policy = %q, want overwrite", policy)
	}
}

func TestMerge_OrderIndependentAcrossDisjointKeys(t *testing.T) {
	batch := []Pair{
		{Key: "a", Value: 1.0},
		{Key: "b", Value: 2.0},
		{Key: "c", Value: 3.0},
	}
	reversed := []Pair{batch[2], batch[1], batch[0]}

	st1 := newTestStore(t)
	if _, err := Merge(st1, batch, PolicyOverwrite); err != nil {
		t.Fatal(err)
	}
	st2 := newTestStore(t)
	if _, err := Merge(st2, reversed, PolicyOverwrite); err != nil {
		t.Fatal(err)
	}

	exp1, _, _, err := Export(st1)
	if err != nil {
		t.Fatal(err)
	}
	exp2, _, _, err := Export(st2)
	if err != nil {
		t.Fatal(err)
	}
	if string(exp1) != string(exp2) {
		t.Errorf("final state depends on import order:\n%s\nvs\n%s", exp1, exp2)
	}
}
