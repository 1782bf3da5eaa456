// Package store defines the data-access capabilities authkit needs and
// provides two implementations: a GORM-backed store for real databases and
// an in-memory store for tests and hosts without persistence.
//
// The middleware core only ever talks to the narrow UserStore and
// TokenStore interfaces, never to GORM directly, so a host can plug in its
// own storage layer by implementing them.
package store
