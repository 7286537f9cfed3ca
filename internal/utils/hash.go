package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor used for both password and passcode hashes.
// Matches bcrypt's salt-round default used at registration time; raising it
// invalidates no existing hashes because the cost is embedded in each hash.
const bcryptCost = 10

// HashSecret hashes a plain-text password or note passcode with bcrypt.
// The salt is generated per call and embedded in the returned hash, so two
// hashes of the same input differ.
//
// The raw secret is never stored or logged; callers must discard it after
// hashing.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CompareSecret checks a plain-text secret against a stored bcrypt hash.
// The comparison is constant-time for a given cost factor, so the mismatch
// path does not reveal how close the guess was.
//
// Returns nil on match, bcrypt.ErrMismatchedHashAndPassword on mismatch,
// or another error if the stored hash is malformed.
func CompareSecret(storedHash, secret string) error {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(secret))
}
