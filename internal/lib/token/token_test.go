package token

import (
	"strings"
	"testing"
)

const urlSafeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

func TestNew_FixedLength(t *testing.T) {
	got, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if len(got) != Length {
		t.Errorf("New() length = %d, want %d", len(got), Length)
	}
}

func TestNew_PrintableAlphabet(t *testing.T) {
	got, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for _, r := range got {
		if !strings.ContainsRune(urlSafeAlphabet, r) {
			t.Errorf("New() produced character %q outside base64url alphabet", r)
		}
	}
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		got, err := New()
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if _, ok := seen[got]; ok {
			t.Fatalf("New() produced duplicate token %s", got)
		}
		seen[got] = struct{}{}
	}
}
