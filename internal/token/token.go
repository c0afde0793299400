// Package token implements the signed claim codec used by every invite and
// verification flow.
package token

import (
	"github.com/golang-jwt/jwt/v4"

	"wellcheck_backend/internal/apperr"
)

// Codec encodes and verifies compact, tamper-evident claim sets. The secret
// is passed explicitly at construction; there is no global state.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Issue serializes and signs the claims with HS256. No claim is implicit:
// callers wanting expiry must include their own "exp" claim.
func (c *Codec) Issue(claims map[string]any) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims(claims))
	return tok.SignedString(c.secret)
}

// Verify returns the claims carried by the token, or apperr.ErrInvalidToken
// on any failure. Signature mismatch, malformed structure, unsupported
// algorithm and expiry (enforced when an "exp" claim is present) all collapse
// into the same outcome; callers cannot distinguish the cause.
func (c *Codec) Verify(tokenString string) (map[string]any, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, apperr.ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.ErrInvalidToken
	}
	return map[string]any(claims), nil
}
