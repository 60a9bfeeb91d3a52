package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// GenerateResetToken returns a 256-bit random value and its digest. Only the
// digest may be persisted.
func GenerateResetToken() (plain string, digestHex string, err error) {
	b := make([]byte, 32)
	if _, err = rand.Read(b); err != nil {
		return "", "", err
	}
	plain = base64.RawURLEncoding.EncodeToString(b)
	digestHex = DigestToken(plain)
	return
}

// DigestToken is the one-way form under which refresh and reset tokens are
// stored and compared.
func DigestToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
