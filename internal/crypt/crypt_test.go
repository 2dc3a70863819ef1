package crypt

import (
	"strings"
	"testing"
)

func TestSealOpenRoundTrip(t *testing.T) {
	box := New("secret-key")

	tests := []string{
		"plain value",
		"",
		"{\n  \"foo\": \"bar\"\n}",
		strings.Repeat("long ", 1000),
	}

	for _, plain := range tests {
		sealed, err := box.Seal(plain)
		if err != nil {
			t.Fatalf("Seal() error = %v", err)
		}
		if sealed == plain && plain != "" {
			t.Errorf("Seal() returned plaintext")
		}

		got, err := box.Open(sealed)
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if got != plain {
			t.Errorf("Open(Seal(%q)) = %q", plain, got)
		}
	}
}

func TestSealUsesFreshNonce(t *testing.T) {
	box := New("secret-key")

	first, err := box.Seal("value")
	if err != nil {
		t.Fatal(err)
	}
	second, err := box.Seal("value")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("two Seal() calls produced identical ciphertext")
	}
}

func TestOpenWrongKey(t *testing.T) {
	sealed, err := New("right-key").Seal("value")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := New("wrong-key").Open(sealed); err == nil {
		t.Error("Open() with wrong key expected error")
	}
}

func TestOpenGarbage(t *testing.T) {
	box := New("key")

	if _, err := box.Open("not base64!!!"); err == nil {
		t.Error("Open() of invalid base64 expected error")
	}
	if _, err := box.Open("c2hvcnQ="); err == nil {
		t.Error("Open() of truncated ciphertext expected error")
	}
}

func TestSameSecretSameKey(t *testing.T) {
	// Values sealed by one process must open in the next.
	sealed, err := New("stable-secret").Seal("value")
	if err != nil {
		t.Fatal(err)
	}

	got, err := New("stable-secret").Open(sealed)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got != "value" {
		t.Errorf("Open() = %q, want %q", got, "value")
	}
}
