package auth

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies passwords with an explicit bcrypt work
// factor. Use it when the cost comes from configuration; the package level
// functions use the build default.
type PasswordHasher struct {
	cost int
}

var _ PasswordAuthenticator = PasswordHasher{}

// NewPasswordHasher creates a hasher with the given work factor. Costs
// outside the bcrypt range fall back to the build default.
func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = passwordHashCost()
	}
	return PasswordHasher{cost: cost}
}

// Cost returns the configured work factor.
func (p PasswordHasher) Cost() int {
	return p.cost
}

// HashPassword will generate a salted password hash
func (p PasswordHasher) HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", goerrors.Wrap(err, ErrHashingFailure.Category, ErrHashingFailure.Message).
			WithTextCode(ErrHashingFailure.TextCode)
	}
	return string(h), nil
}

// ComparePasswordAndHash will validate the given cleartext
// password matches the hashed password
func (p PasswordHasher) ComparePasswordAndHash(password, hash string) error {
	return ComparePasswordAndHash(password, hash)
}

// HashPassword will generate a password hash using the default work factor
func HashPassword(password string) (string, error) {
	return NewPasswordHasher(passwordHashCost()).HashPassword(password)
}

// ComparePasswordAndHash will validate the given cleartext
// password matches the hashed password
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}

// RandomPasswordHash is a temporary password
func RandomPasswordHash() string {
	pwd := uuid.New()

	h, err := HashPassword(pwd.String())
	if err != nil {
		return RandomPasswordHash()
	}

	return h
}
