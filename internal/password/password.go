// Package password abstracts how stored credentials are encoded and matched.
//
// The default Plain codec stores and compares passwords verbatim, preserving
// the behavior of the original service. Plaintext credentials are unsuitable
// for production; the Bcrypt codec is the documented alternative and is
// selected with APP_PASSWORD_HASHING=true. Switching codecs changes what is
// written to the store, not the HTTP surface.
package password

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Codec encodes a password for storage and matches a candidate against a
// stored encoding.
type Codec interface {
	Encode(password string) (string, error)
	Match(encoded, candidate string) bool
}

// Plain stores passwords verbatim and matches by equality.
type Plain struct{}

// Encode returns the password unchanged.
func (Plain) Encode(password string) (string, error) {
	return password, nil
}

// Match compares the stored password and the candidate in constant time.
func (Plain) Match(encoded, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(encoded), []byte(candidate)) == 1
}

// Bcrypt stores bcrypt hashes and matches with bcrypt comparison.
type Bcrypt struct {
	// Cost is the bcrypt cost parameter; zero means bcrypt.DefaultCost.
	Cost int
}

// Encode hashes the password with bcrypt.
func (b Bcrypt) Encode(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	return string(hash), nil
}

// Match verifies the candidate against the stored bcrypt hash.
func (b Bcrypt) Match(encoded, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(candidate)) == nil
}
