package security

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is fixed so hashes stay comparable across deployments while
// remaining deliberately slow to brute-force offline.
const bcryptCost = 10

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash verifies password against a stored bcrypt hash. The salt
// is embedded in the hash, so no separate salt handling is needed.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
