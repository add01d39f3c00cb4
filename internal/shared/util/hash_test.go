package util

import "testing"

func TestQueryDigest(t *testing.T) {
	got := QueryDigest("Champaign, IL")
	if got != QueryDigest("  champaign, il ") {
		t.Fatalf("expected case and whitespace insensitive digest, got %s", got)
	}
	if got == QueryDigest("Urbana, IL") {
		t.Fatalf("expected distinct digests for distinct queries")
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("digest contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
}
