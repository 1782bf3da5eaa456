// Package validation validates configuration structs through struct tags.
//
// It wraps the validator library and converts its field errors into the
// authkit error type, so a misconfigured plugin fails construction with a
// single structured error listing every offending field.
//
//	type Config struct {
//	    JWTSecret string `mapstructure:"jwt_secret" validate:"required"`
//	}
//	err := validation.Validate(cfg)
package validation
