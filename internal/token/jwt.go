package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims plus the owning user id. The claim
// name keeps the document-store id field used by the original service.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"_id,omitempty"`
}

// JWTManager implements Issuer and Verifier with HS256-signed JWTs.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTManager creates a JWTManager signing with the given secret. Tokens
// expire after ttl; a zero ttl issues tokens without an expiry claim.
func NewJWTManager(secret []byte, ttl time.Duration) (*JWTManager, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("jwt: secret must not be empty")
	}

	return &JWTManager{secret: secret, ttl: ttl}, nil
}

// Issue produces a signed token embedding the user id claim.
func (m *JWTManager) Issue(userID string) (string, error) {
	claims := Claims{UserID: userID}
	if m.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(m.ttl))
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return tokenString, nil
}

// Verify parses and validates the token and returns the user id claim.
// An expired, malformed, or wrongly signed token yields ErrInvalidToken.
func (m *JWTManager) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return m.secret, nil
		})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !parsed.Valid {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}
