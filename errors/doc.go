// Package errors provides the unified error type for authkit.
//
// Every failure the middleware or the token services can produce is an
// *AppError carrying a machine-readable code and the HTTP status the host
// should answer with. The set of codes is closed: authentication failures
// map to 401, missing resources to 404, malformed calls to 400 and
// configuration problems to 500.
//
// Usage:
//
//	if err := issuer.Remove(ctx, token); err != nil {
//	    if appErr, ok := errors.AsAppError(err); ok {
//	        c.JSON(appErr.HTTPStatus, appErr.ToResponse())
//	    }
//	}
package errors
