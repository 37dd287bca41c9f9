package auth

import (
	"context"
	"reflect"

	"github.com/golang-jwt/jwt/v5"
)

// Principal is the authenticated identity an authorization decision yields.
type Principal struct {
	ID    string
	Email string
	Role  string
}

// HasRole checks if the principal has a specific role
func (p *Principal) HasRole(role string) bool {
	return p != nil && p.Role == role
}

// IsAtLeast checks if the principal's role is at least the minimum required role
func (p *Principal) IsAtLeast(minRole UserRole) bool {
	return p != nil && UserRole(p.Role).IsAtLeast(minRole)
}

type registeringProvider interface {
	IdentityProvider
	AccountRegistrerer
}

type Auther struct {
	provider        IdentityProvider
	registry        AccountRegistrerer
	signingKey      []byte
	tokenExpiration int
	issuer          string
	audience        []string
	logger          Logger
	tokenService    TokenService
	tokenValidator  TokenValidator
}

// NewAuthenticator returns a new Authenticator. The provider resolves and
// verifies identities; if it also registers accounts (as UserProvider does)
// sign-up is wired automatically.
func NewAuthenticator(provider IdentityProvider, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	a := &Auther{
		provider:        provider,
		signingKey:      []byte(opts.GetSigningKey()),
		tokenExpiration: opts.GetTokenExpiration(),
		audience:        opts.GetAudience(),
		issuer:          opts.GetIssuer(),
		logger:          defLogger{},
		tokenService:    tokenService,
	}

	if rp, ok := provider.(registeringProvider); ok {
		a.registry = rp
	}

	return a
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	s.tokenService = NewTokenService(
		s.signingKey,
		s.tokenExpiration,
		s.issuer,
		s.audience,
		logger,
	)
	return s
}

// WithRegistry sets the account registrar used by SignUp.
func (s *Auther) WithRegistry(registry AccountRegistrerer) *Auther {
	s.registry = registry
	return s
}

// WithTokenValidator sets a custom token validator for externally issued tokens.
func (s *Auther) WithTokenValidator(validator TokenValidator) *Auther {
	s.tokenValidator = validator
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// SignUp validates the payload and creates a durable credential record. No
// token is issued: the caller signs in separately. A duplicate email fails
// with ErrEmailConflict and creates nothing.
func (s *Auther) SignUp(ctx context.Context, payload SignUpPayload) (*User, error) {
	if s.registry == nil {
		s.logger.Error("SignUp called without an account registry")
		return nil, ErrIdentityNotFound
	}

	if err := payload.Validate(); err != nil {
		return nil, err
	}

	user, err := s.registry.RegisterUser(ctx, payload)
	if err != nil {
		s.logger.Error("SignUp register user error", "error", err)
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and returns a signed session token. Any
// credential failure collapses to ErrMismatchedHashAndPassword.
func (s *Auther) Login(ctx context.Context, identifier, password string) (string, error) {
	var err error
	var identity Identity

	if identity, err = s.provider.VerifyIdentity(ctx, identifier, password); err != nil {
		s.logger.Error("Login verify identity error", "error", err)
		return "", err
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		s.logger.Error("Login identity is nil or zero value")
		return "", ErrIdentityNotFound
	}

	token, err := s.generateJWT(identity)
	if err != nil {
		s.logger.Error("Login failed to generate token", "error", err)
		return "", err
	}

	return token, nil
}

// Authorize is the decision point request middleware consumes. It validates
// the presented token and returns the principal it proves. Every validation
// failure denies; there is no allow-on-error path.
func (s *Auther) Authorize(token string) (*Principal, error) {
	if token == "" {
		return nil, ErrTokenMalformed
	}

	validator := s.tokenValidator
	if validator == nil {
		validator = s.tokenService
	}

	claims, err := validator.Validate(token)
	if err != nil {
		s.logger.Error("Authorize validation failed", "error", err)
		return nil, err
	}

	return &Principal{
		ID:    claims.UserID(),
		Email: claims.Email(),
		Role:  claims.Role(),
	}, nil
}

func (s Auther) SessionFromToken(raw string) (Session, error) {
	validator := s.tokenValidator
	if validator == nil {
		validator = s.tokenService
	}

	claims, err := validator.Validate(raw)
	if err != nil {
		s.logger.Error("SessionFromToken validation failed", "error", err)
		return nil, err
	}

	session, err := sessionFromAuthClaims(claims)
	if err != nil {
		s.logger.Error("SessionFromToken failed to create session from claims", "error", err)
		return nil, err
	}

	return session, nil
}

func (s *Auther) IdentityFromSession(ctx context.Context, session Session) (Identity, error) {
	identity, err := s.provider.FindIdentityByIdentifier(ctx, session.GetUserID())
	if err != nil {
		s.logger.Error("IdentityFromSession find identity by identifier: %s", err)
		return nil, err
	}

	return identity, nil
}

func (s *Auther) generateJWT(identity Identity) (string, error) {
	return s.tokenService.Generate(identity)
}

var _ Authenticator = (*Auther)(nil)
var _ TokenValidator = (*TokenServiceImpl)(nil)
var _ jwt.Claims = (*JWTClaims)(nil)
