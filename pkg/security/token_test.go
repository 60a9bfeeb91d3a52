package security

import "testing"

func TestGenerateResetToken(t *testing.T) {
	plain, digest, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(plain) != 43 { // 32 bytes base64url, unpadded
		t.Errorf("expected 43-char token, got %d", len(plain))
	}
	if digest != DigestToken(plain) {
		t.Error("digest must match DigestToken of the plain value")
	}

	other, _, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if plain == other {
		t.Error("two generated tokens must differ")
	}
}

func TestDigestToken(t *testing.T) {
	first := DigestToken("some-token")
	second := DigestToken("some-token")

	if first != second {
		t.Error("digest must be deterministic")
	}
	if len(first) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(first))
	}
	if first == "some-token" {
		t.Error("digest must not equal the input")
	}
	if DigestToken("another-token") == first {
		t.Error("different inputs must digest differently")
	}
}
