package authkit

import (
	"time"

	apperrors "github.com/kbukum/authkit/errors"
	"github.com/kbukum/authkit/routes"
	"github.com/kbukum/authkit/token"
	"github.com/kbukum/authkit/validation"
)

// Config is the immutable plugin configuration. It is captured once at
// construction and shared read-only across requests, so it is safe for
// concurrent use without synchronization.
type Config struct {
	// JWTSecret verifies and signs tokens. Required.
	JWTSecret string `yaml:"jwt_secret" mapstructure:"jwt_secret" validate:"required"`

	// CookieSecret signs authorization cookies. Required when tokens are
	// read from a cookie.
	CookieSecret string `yaml:"cookie_secret" mapstructure:"cookie_secret"`

	// GetTokenFrom selects where the raw token is read from.
	GetTokenFrom token.ExtractOptions `yaml:"get_token_from" mapstructure:"get_token_from"`

	// PublicRoutes are servable without a valid credential. Defaults to
	// POST /login and POST /register.
	PublicRoutes []routes.Rule `yaml:"public_routes" mapstructure:"public_routes"`

	// VerifyAccessTokenOnlyInJWT trusts the JWT payload's id claim instead
	// of cross-checking the persisted token table.
	VerifyAccessTokenOnlyInJWT bool `yaml:"verify_access_token_only_in_jwt" mapstructure:"verify_access_token_only_in_jwt"`

	// Prefix scopes enforcement: requests outside it pass through
	// unauthenticated. Empty means every route is covered.
	Prefix string `yaml:"prefix" mapstructure:"prefix"`

	// AccessTokenTTL is the default access token lifetime (default: 15m).
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" mapstructure:"access_token_ttl"`

	// RefreshTokenTTL is the default refresh token lifetime (default: 168h).
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" mapstructure:"refresh_token_ttl"`

	// RefreshSecret signs refresh tokens; falls back to JWTSecret.
	RefreshSecret string `yaml:"refresh_secret" mapstructure:"refresh_secret"`

	// UserValidation is an optional hook run against every resolved user.
	// An error rejects the request and propagates unchanged.
	UserValidation token.UserValidationFunc `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	c.GetTokenFrom.ApplyDefaults()
	if c.PublicRoutes == nil {
		c.PublicRoutes = []routes.Rule{
			{URL: "/login", Method: "POST"},
			{URL: "/register", Method: "POST"},
		}
	}
	if c.AccessTokenTTL == 0 {
		c.AccessTokenTTL = 15 * time.Minute
	}
	if c.RefreshTokenTTL == 0 {
		c.RefreshTokenTTL = 7 * 24 * time.Hour
	}
}

// Validate checks the configuration. Errors here are fatal: the plugin
// must not be constructed from an invalid Config.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return apperrors.Configuration(appErr.Message)
		}
		return apperrors.Configuration(err.Error())
	}
	if c.GetTokenFrom.From == token.FromCookie && c.CookieSecret == "" {
		return apperrors.Configuration("cookie_secret is required when tokens are read from a cookie")
	}
	return nil
}
