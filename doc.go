// Package auth provides a credential authentication core: password hashing,
// JWT issuance and verification, and the sign-up/sign-in orchestration that
// ties them to a user store.
//
// Components are explicit objects wired together at process start:
//   - PasswordHasher turns plaintext passwords into salted bcrypt hashes and
//     verifies them with a tunable work factor.
//   - TokenService signs and validates time-bound HMAC tokens carrying the
//     user id, email, and role, with distinct errors for expired, tampered,
//     and malformed tokens.
//   - Auther coordinates SignUp (hash + persist) and Login (lookup + compare
//     + issue) against an injected IdentityProvider, and exposes Authorize,
//     the fail-closed decision point consumed by request middleware.
//
// Credential failures are deliberately uninformative: an unknown email and a
// wrong password collapse to the same error so callers cannot enumerate
// accounts. Transport concerns (routing, serialization, cookie vs header
// delivery) live in the middleware/jwtware package and the HTTP helpers; the
// core itself receives plain data and returns plain results.
package auth
