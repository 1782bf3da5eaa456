package token

import (
	"net/http"
	"strings"

	"github.com/kbukum/authkit/cookies"
	apperrors "github.com/kbukum/authkit/errors"
	"github.com/kbukum/authkit/logger"
)

// Token sources for ExtractOptions.From.
const (
	FromHeader = "header"
	FromCookie = "cookie"
	FromQuery  = "query"
)

// Default names for each source.
const (
	DefaultHeaderName = "authorization"
	DefaultCookieName = "authorization"
	DefaultQueryName  = "access_token"
)

// ExtractOptions selects where the raw token is read from and under which
// name. Zero-value names fall back to the defaults above.
type ExtractOptions struct {
	From       string `yaml:"from" mapstructure:"from"`
	CookieName string `yaml:"cookie_name" mapstructure:"cookie_name"`
	HeaderName string `yaml:"header_name" mapstructure:"header_name"`
	QueryName  string `yaml:"query_name" mapstructure:"query_name"`
}

// ApplyDefaults fills in zero-value fields.
func (o *ExtractOptions) ApplyDefaults() {
	if o.From == "" {
		o.From = FromHeader
	}
	if o.CookieName == "" {
		o.CookieName = DefaultCookieName
	}
	if o.HeaderName == "" {
		o.HeaderName = DefaultHeaderName
	}
	if o.QueryName == "" {
		o.QueryName = DefaultQueryName
	}
}

// FromRequest pulls the raw token string from the request according to the
// options. A missing token is not an error: the caller decides whether the
// route tolerates an anonymous request. A tampered signed cookie is an
// error.
func FromRequest(r *http.Request, opts ExtractOptions, cookieSecret string) (string, error) {
	opts.ApplyDefaults()

	switch opts.From {
	case FromHeader:
		value := r.Header.Get(opts.HeaderName)
		if value == "" {
			return "", nil
		}
		parts := strings.Split(strings.TrimSpace(value), " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1], nil
		}
		return strings.TrimSpace(value), nil

	case FromCookie:
		cookie, err := r.Cookie(opts.CookieName)
		if err != nil || cookie.Value == "" {
			return "", nil
		}
		if cookieSecret == "" {
			return cookie.Value, nil
		}
		value, ok := cookies.Unsign(cookie.Value, cookieSecret)
		if !ok {
			logger.GetGlobalLogger().WithComponent("token").Error(
				"cookie signature validation failed",
				logger.Fields("cookie_name", opts.CookieName),
			)
			return "", apperrors.InvalidToken("Invalid or tampered token in cookie.")
		}
		return value, nil

	case FromQuery:
		return r.URL.Query().Get(opts.QueryName), nil

	default:
		logger.GetGlobalLogger().WithComponent("auth").Warn(
			"unknown token source",
			logger.Fields("from", opts.From),
		)
		return "", nil
	}
}
