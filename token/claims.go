package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload carried by authkit tokens. Access tokens carry the
// owner id; refresh tokens additionally carry their mint time in Date so
// two refresh tokens for the same user are never byte-identical.
type Claims struct {
	ID   uint  `json:"id"`
	Date int64 `json:"date,omitempty"`
	jwt.RegisteredClaims
}

// sign mints an HS256 token for the claims with the given lifetime.
func sign(claims *Claims, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// parse verifies signature, algorithm and expiry and returns the claims.
func parse(tokenValue, secret string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenValue, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("token: unexpected signing method: %s", t.Method.Alg())
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("token: parse: %w", err)
	}
	if !tok.Valid {
		return nil, fmt.Errorf("token: invalid token")
	}
	return claims, nil
}
