package util

import "testing"

func TestFingerprint(t *testing.T) {
	got := Fingerprint("system", "prompt")
	if got != Fingerprint("system", "prompt") {
		t.Fatalf("expected stable hash, got %s", got)
	}
	if got == Fingerprint("system", "other") {
		t.Fatalf("expected different prompts to differ")
	}
	if got != Fingerprint("system\n\nprompt") {
		t.Fatalf("expected parts to be joined with a blank line")
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
}
