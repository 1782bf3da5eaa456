// Package config loads the authkit plugin configuration from YAML files,
// .env files and environment variables.
//
// Sources are layered: a YAML file (when present) provides the base, a
// .env file can add variables, and AUTHKIT_* environment variables win
// over both. Secrets are expected to arrive through the environment.
//
//	cfg, err := config.Load(config.WithConfigFile("authkit.yml"))
//	plugin, err := authkit.New(*cfg, stores, log)
package config
