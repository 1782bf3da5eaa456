// Package token implements the credential pipeline of authkit: extracting
// a raw token from an incoming request, validating it and resolving the
// owning user, and minting, rotating and revoking access/refresh token
// pairs.
//
// Tokens are HS256 JWTs carrying the owner id. Persistence goes through
// the store package; a Validator or Issuer constructed without a token
// store trusts the JWT contents alone.
package token
