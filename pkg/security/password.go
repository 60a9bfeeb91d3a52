package security

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes with bcrypt at the given cost; cost <= 0 falls back to
// the library default. Hashing is deliberately slow.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(h), err
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
