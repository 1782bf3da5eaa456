package cookies

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

// ErrNoSecret is returned by Sign when the secret is empty.
var ErrNoSecret = errors.New("cookies: secret must be provided")

// Sign returns value + "." + base64(HMAC-SHA256(secret, value)) with
// trailing "=" padding stripped from the digest.
func Sign(value, secret string) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(value))
	digest := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return value + "." + strings.TrimRight(digest, "="), nil
}

// Unsign verifies a signed cookie string and returns the embedded value.
// On any mismatch it returns ("", false); it never returns an error, the
// caller decides whether a failed verification is fatal.
func Unsign(signed, secret string) (string, bool) {
	if secret == "" {
		return "", false
	}
	idx := strings.LastIndex(signed, ".")
	if idx < 0 {
		return "", false
	}
	value := signed[:idx]
	expected, err := Sign(value, secret)
	if err != nil {
		return "", false
	}
	if !hmac.Equal([]byte(expected), []byte(signed)) {
		return "", false
	}
	return value, true
}
