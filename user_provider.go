package auth

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// UserStore is the storage boundary the provider depends on. Uniqueness of
// email and username is the store's transactional guarantee.
type UserStore interface {
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)
	Register(ctx context.Context, user *User) (*User, error)
}

// UserProvider resolves identities from a UserStore and verifies credentials
type UserProvider struct {
	store     UserStore
	hasher    PasswordAuthenticator
	Validator func(*User) error
	logger    Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserStore) *UserProvider {
	return &UserProvider{
		store:     store,
		hasher:    NewPasswordHasher(passwordHashCost()),
		logger:    defLogger{},
		Validator: defaultValidator,
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

// WithPasswordAuthenticator overrides the hashing component, e.g. to use a
// configured work factor.
func (u *UserProvider) WithPasswordAuthenticator(hasher PasswordAuthenticator) *UserProvider {
	if hasher != nil {
		u.hasher = hasher
	}
	return u
}

func (u *UserProvider) validate(user *User) error {
	if u.Validator != nil {
		return u.Validator(user)
	}
	return defaultValidator(user)
}

// VerifyIdentity will find the user, compare the password, and return the
// identity. A missing record and a password mismatch both return
// ErrMismatchedHashAndPassword so callers cannot tell which one happened.
func (u UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	user, err := u.store.GetByIdentifier(ctx, identifier)
	if err != nil {
		if goerrors.IsNotFound(err) || goerrors.Is(err, ErrIdentityNotFound) {
			return nil, ErrMismatchedHashAndPassword
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during verification")
	}

	if user == nil {
		return nil, ErrMismatchedHashAndPassword
	}

	if err := u.hasher.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrMismatchedHashAndPassword
	}

	if err := u.validate(user); err != nil {
		return nil, err
	}

	return NewIdentityFromUser(user), nil
}

// FindIdentityByIdentifier resolves an identity without verifying credentials
func (u UserProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	user, err := u.store.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, ErrIdentityNotFound
	}

	if err := u.validate(user); err != nil {
		return nil, err
	}

	return NewIdentityFromUser(user), nil
}

// RegisterUser hashes the password and persists a new credential record with
// the default role. Duplicate identities surface as ErrEmailConflict.
func (u UserProvider) RegisterUser(ctx context.Context, payload SignUpPayload) (*User, error) {
	hash, err := u.hasher.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Email:        payload.Email,
		Username:     getUsername(payload.Username, payload.Email),
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		PasswordHash: hash,
		Role:         RoleRegular,
		IsActive:     true,
	}

	created, err := u.store.Register(ctx, user)
	if err != nil {
		if IsConflictError(err) {
			return nil, ErrEmailConflict
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to persist user registration")
	}

	return created, nil
}

var _ IdentityProvider = (*UserProvider)(nil)
var _ AccountRegistrerer = (*UserProvider)(nil)

func getUsername(username, email string) string {
	if username != "" {
		return username
	}

	if at := strings.Index(email, "@"); at > 0 {
		username = email[:at]
	}

	return username
}

func defaultValidator(u *User) error {
	u.EnsureRole()
	switch u.Role {
	case RoleAdmin, RoleRegular:
		return nil
	default:
		return goerrors.New("user has an unknown or invalid role", goerrors.CategoryAuth).
			WithTextCode("INVALID_ROLE").
			WithMetadata(map[string]any{"role": u.Role, "user_id": u.ID.String()})
	}
}
