package utils

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost balances hashing latency against brute-force resistance.
const DefaultBcryptCost = 12

// HashPassword returns a salted bcrypt hash of the password. A fresh salt is
// generated per call, so two hashes of the same password differ.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether the password matches the hash under the
// salt and cost embedded in the hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
