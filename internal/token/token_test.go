package token

import "testing"

func TestNewIsUniqueAndWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		tok := New()
		if !ValidFormat(tok) {
			t.Fatalf("generated token has bad format: %q", tok)
		}
		if seen[tok] {
			t.Fatalf("duplicate token after %d generations", i)
		}
		seen[tok] = true
	}
}

func TestValidFormatRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "abc", "not-a-token", "12345678-1234-1234-1234-12345678901g"} {
		if ValidFormat(s) {
			t.Errorf("ValidFormat(%q) = true", s)
		}
	}
}
