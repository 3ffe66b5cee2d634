// Package token issues the per-report management token, the sole credential
// for mutating a lost report. Tokens are generated server-side, never
// rotated, and valid for the lifetime of their record. Validation is an
// equality match against the stored value, performed by the record store as
// part of the id+token lookup.
package token

import "github.com/google/uuid"

// New returns a fresh opaque management token. The random UUID format keeps
// tokens fixed-width and crypto-random without carrying any claims.
func New() string {
	return uuid.NewString()
}

// ValidFormat reports whether s looks like a token this package issued.
// Malformed tokens can never match a stored one, so callers may skip the
// store lookup entirely.
func ValidFormat(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
