package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRouteAuthenticator(t *testing.T, auther Authenticator) *RouteAuthenticator {
	t.Helper()
	httpAuth, err := NewHTTPAuthenticator(auther, routeConfigStub{})
	require.NoError(t, err)
	httpAuth.Logger = defLogger{}
	return httpAuth
}

type routeConfigStub struct{}

func (routeConfigStub) GetSigningKey() string    { return "test-signing-key" }
func (routeConfigStub) GetSigningMethod() string { return "HS256" }
func (routeConfigStub) GetContextKey() string    { return "user" }
func (routeConfigStub) GetTokenExpiration() int  { return 24 }
func (routeConfigStub) GetTokenLookup() string   { return "header:Authorization" }
func (routeConfigStub) GetAuthScheme() string    { return "Bearer" }
func (routeConfigStub) GetIssuer() string        { return "test-issuer" }
func (routeConfigStub) GetAudience() []string    { return []string{"test-audience"} }
func (routeConfigStub) GetPasswordHashCost() int { return 4 }

func TestRouteAuthenticator_Login(t *testing.T) {
	t.Run("sets the session cookie and returns the token", func(t *testing.T) {
		httpAuth := newRouteAuthenticator(t, authenticatorStub{loginToken: "signed.jwt.token"})

		ctx := router.NewMockContext()
		ctx.On("Context").Return(context.Background())

		var cookie *router.Cookie
		ctx.On("Cookie", mock.Anything).Return().Run(func(args mock.Arguments) {
			cookie = args.Get(0).(*router.Cookie)
		})

		token, err := httpAuth.Login(ctx, LoginRequest{
			Identifier: "user@example.com",
			Password:   "hunter2",
		})
		require.NoError(t, err)
		require.Equal(t, "signed.jwt.token", token)

		require.NotNil(t, cookie)
		require.Equal(t, "user", cookie.Name)
		require.Equal(t, "signed.jwt.token", cookie.Value)
		require.True(t, cookie.HTTPOnly)
		require.True(t, cookie.Secure)
		require.Equal(t, "Strict", cookie.SameSite)
	})

	t.Run("credential failure sets no cookie", func(t *testing.T) {
		httpAuth := newRouteAuthenticator(t, authenticatorStub{loginErr: ErrMismatchedHashAndPassword})

		ctx := router.NewMockContext()
		ctx.On("Context").Return(context.Background())

		_, err := httpAuth.Login(ctx, LoginRequest{
			Identifier: "user@example.com",
			Password:   "wrong",
		})
		require.ErrorIs(t, err, ErrMismatchedHashAndPassword)
		ctx.AssertNotCalled(t, "Cookie", mock.Anything)
	})
}

func TestRouteAuthenticator_Logout(t *testing.T) {
	httpAuth := newRouteAuthenticator(t, authenticatorStub{})

	ctx := router.NewMockContext()

	var cookie *router.Cookie
	ctx.On("Cookie", mock.Anything).Return().Run(func(args mock.Arguments) {
		cookie = args.Get(0).(*router.Cookie)
	})

	httpAuth.Logout(ctx)

	require.NotNil(t, cookie)
	require.Equal(t, "user", cookie.Name)
	require.Empty(t, cookie.Value)
	require.True(t, cookie.Expires.Before(time.Now()), "logout cookie must be expired")
}

func TestMakeAuthErrorHandler(t *testing.T) {
	httpAuth := newRouteAuthenticator(t, authenticatorStub{})

	var handled *goerrors.Error
	httpAuth.AuthErrorHandler = func(c router.Context, err error) error {
		goerrors.As(err, &handled)
		return nil
	}

	handler := httpAuth.MakeAuthErrorHandler(false)

	tests := []struct {
		name     string
		err      error
		textCode string
	}{
		{"expired token", errors.New("token is expired by 3m"), TextCodeTokenExpired},
		{"tampered token", errors.New("signature is invalid"), TextCodeInvalidSignature},
		{"unparseable token", errors.New("token is malformed: bad segments"), TextCodeTokenMalformed},
		{"missing token", errors.New("missing or malformed JWT"), TextCodeTokenMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handled = nil
			ctx := router.NewMockContext()
			require.NoError(t, handler(ctx, tt.err))
			require.NotNil(t, handled)
			require.Equal(t, tt.textCode, handled.TextCode)
		})
	}

	t.Run("optional mode proceeds unauthenticated", func(t *testing.T) {
		optional := httpAuth.MakeAuthErrorHandler(true)

		ctx := router.NewMockContext()
		require.NoError(t, optional(ctx, errors.New("token is expired")))
		require.True(t, ctx.NextCalled)
	})
}

func TestDefaultAuthErrHandlerAlwaysReturns401(t *testing.T) {
	httpAuth := newRouteAuthenticator(t, authenticatorStub{})

	errs := []error{ErrTokenExpired, ErrTokenSignatureInvalid, ErrTokenMalformed, errors.New("opaque")}

	for _, failure := range errs {
		ctx := router.NewMockContext()
		ctx.On("OriginalURL").Return("/protected")
		ctx.On("JSON", router.StatusUnauthorized, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			body := args.Get(1).(map[string]string)
			require.Equal(t, "unauthenticated", body["error"])
		})

		require.NoError(t, httpAuth.defaultAuthErrHandler(ctx, failure))
		ctx.AssertExpectations(t)
	}
}

func TestDefaultErrHandlerRoutesByCategory(t *testing.T) {
	httpAuth := newRouteAuthenticator(t, authenticatorStub{})

	t.Run("conflict surfaces as 409", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.On("JSON", router.StatusConflict, mock.Anything).Return(nil)

		require.NoError(t, httpAuth.defaultErrHandler(ctx, ErrEmailConflict))
		ctx.AssertExpectations(t)
	})

	t.Run("auth category delegates to the auth error handler", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.On("OriginalURL").Return("/protected")
		ctx.On("JSON", router.StatusUnauthorized, mock.Anything).Return(nil)

		require.NoError(t, httpAuth.defaultErrHandler(ctx, ErrTokenExpired))
		ctx.AssertExpectations(t)
	})

	t.Run("everything else is a 500", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.On("JSON", router.StatusInternalServerError, mock.Anything).Return(nil)

		require.NoError(t, httpAuth.defaultErrHandler(ctx, errors.New("db down")))
		ctx.AssertExpectations(t)
	})
}
