// Package token provides bearer token issuance and verification.
package token

import "errors"

// Token errors.
var (
	ErrInvalidToken = errors.New("invalid token")
)

// Issuer produces a signed token carrying the user id as its only
// application claim.
type Issuer interface {
	Issue(userID string) (string, error)
}

// Verifier validates a token and extracts the user id claim. A structurally
// valid token without the claim yields an empty user id and a nil error; the
// caller decides how to treat the missing claim.
type Verifier interface {
	Verify(tokenString string) (string, error)
}
