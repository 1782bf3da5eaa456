// Package authkit is an authentication middleware for Gin backed by GORM.
//
// The middleware resolves a bearer credential from the request (header,
// signed cookie or query parameter), verifies it as a JWT, optionally
// cross-checks a persisted token row, and attaches the authenticated user
// to the Gin context. Requests to routes outside the configured public
// allow list are rejected with a structured 401 when validation fails.
//
//	st := store.NewGormStore(db, log)
//	plugin, err := authkit.New(authkit.Config{
//	    JWTSecret: os.Getenv("JWT_SECRET"),
//	    GetTokenFrom: token.ExtractOptions{From: token.FromHeader},
//	}, authkit.Stores{Users: st, Tokens: st}, log)
//	if err != nil {
//	    // configuration errors are fatal
//	}
//	router.Use(plugin.Middleware())
//
// Handlers read the result with CurrentAuth or CurrentUser:
//
//	if user, ok := authkit.CurrentUser(c); ok {
//	    // authenticated
//	}
//
// Token issuance, rotation and revocation live on Plugin.Issuer, or can be
// used standalone through the token package.
package authkit
