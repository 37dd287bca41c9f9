package auth

import (
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes surfaced on rich errors so API clients can branch without
// string matching.
const (
	TextCodeInvalidCredentials = "INVALID_CREDENTIALS"
	TextCodeEmailConflict      = "EMAIL_IN_USE"
	TextCodeTokenExpired       = "TOKEN_EXPIRED"
	TextCodeTokenMalformed     = "TOKEN_MALFORMED"
	TextCodeInvalidSignature   = "TOKEN_SIGNATURE_INVALID"
	TextCodeHashingFailure     = "HASHING_FAILURE"
)

// ErrMismatchedHashAndPassword is the single, deliberately generic error for
// any credential failure at sign-in. Unknown identifiers and wrong passwords
// both collapse to it so the response shape never reveals whether an account
// exists.
var ErrMismatchedHashAndPassword = goerrors.New("email or password is incorrect", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(goerrors.CodeUnauthorized)

// ErrEmailConflict is returned when a sign-up collides with an existing
// account. The store's unique index is the atomic arbiter; we only translate.
var ErrEmailConflict = goerrors.New("an account with this email already exists", goerrors.CategoryConflict).
	WithTextCode(TextCodeEmailConflict).
	WithCode(goerrors.CodeConflict)

// ErrTokenExpired is returned when a token's validity window has elapsed.
// Callers should treat it as "retry with a fresh login".
var ErrTokenExpired = goerrors.New("authentication token has expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenSignatureInvalid is returned when a token's signature does not
// verify against the configured key. Callers should treat it as tampered.
var ErrTokenSignatureInvalid = goerrors.New("authentication token signature is invalid", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidSignature).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed is returned for tokens we cannot parse at all.
var ErrTokenMalformed = goerrors.New("authentication token is malformed", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// ErrHashingFailure wraps infrastructure-level failures of the hashing
// primitive (randomness, resources). Fatal to the calling operation.
var ErrHashingFailure = goerrors.New("unable to hash password", goerrors.CategoryInternal).
	WithTextCode(TextCodeHashingFailure)

// ErrNoEmptyString rejects empty passwords before they reach bcrypt
var ErrNoEmptyString = goerrors.New("password must not be empty", goerrors.CategoryValidation).
	WithTextCode("EMPTY_PASSWORD")

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found")

// ErrUnableToFindSession is the error when our reequest has no cookie
var ErrUnableToFindSession = errors.New("unable to find session")

// ErrUnableToDecodeSession unable to decode JWT from session cookie
var ErrUnableToDecodeSession = errors.New("unable to decode session")

// ErrUnableToMapClaims unable to get claims from token
var ErrUnableToMapClaims = errors.New("unable to map claims")

// ErrUnableToParseData parse error
var ErrUnableToParseData = errors.New("unable to parse data")

// IsUnauthorizedError reports whether err represents a credential failure
// that should surface as HTTP 401.
func IsUnauthorizedError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrMismatchedHashAndPassword) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenSignatureInvalid) ||
		errors.Is(err, ErrTokenMalformed)
}

// IsConflictError reports whether err represents a duplicate identity.
func IsConflictError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrEmailConflict)
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsInvalidSignatureError will check for signature verification failures
func IsInvalidSignatureError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenSignatureInvalid) {
		return true
	}
	return strings.Contains(err.Error(), "signature is invalid")
}
