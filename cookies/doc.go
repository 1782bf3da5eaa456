// Package cookies implements HMAC-signed cookie values.
//
// A signed cookie is the plain value concatenated with a dot and the
// base64-encoded HMAC-SHA256 digest of the value, with trailing "="
// padding stripped. The value is not encrypted; signing only detects
// tampering.
package cookies
