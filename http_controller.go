package auth

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// AuthControllerRoutes holds the route paths the controller registers
type AuthControllerRoutes struct {
	SignUp  string
	SignIn  string
	SignOut string
}

// AuthController exposes the JSON authentication endpoints: sign-up creates
// a credential record, sign-in sets the session cookie and returns the token
type AuthController struct {
	Debug        bool
	Logger       Logger
	Auth         Authenticator
	Auther       HTTPAuthenticator
	Routes       *AuthControllerRoutes
	ErrorHandler router.ErrorHandler
}

type AuthControllerOption func(*AuthController) *AuthController

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

func WithControllerAuthenticator(auth Authenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auth = auth
		return c
	}
}

func WithControllerHTTPAuthenticator(auther HTTPAuthenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

func WithControllerDebug(debug bool) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Debug = debug
		return c
	}
}

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Routes: &AuthControllerRoutes{
			SignUp:  "/auth/sign-up",
			SignIn:  "/auth/sign-in",
			SignOut: "/auth/sign-out",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auth == nil {
		panic("Missing Authenticator in auth controller...")
	}

	if c.Auther == nil {
		panic("Missing HTTPAuthenticator in auth controller...")
	}

	if c.ErrorHandler == nil {
		c.ErrorHandler = c.defaultErrorHandler
	}

	return c
}

// RegisterAuthRoutes mounts the authentication endpoints on the given router
func RegisterAuthRoutes[T any](app router.Router[T], opts ...AuthControllerOption) {
	controller := NewAuthController(opts...)

	app.Post(controller.Routes.SignUp, controller.SignUpPost).
		SetName("sign-up.post")

	app.Post(controller.Routes.SignIn, controller.SignInPost).
		SetName("sign-in.post")

	app.Post(controller.Routes.SignOut, controller.SignOutPost).
		SetName("sign-out.post")
}

// LoginRequest payload
type LoginRequest struct {
	Identifier string `form:"identifier" json:"identifier"`
	Password   string `form:"password" json:"password"`
}

// GetIdentifier returns the identifier
func (r LoginRequest) GetIdentifier() string {
	return r.Identifier
}

// GetPassword will return the password
func (r LoginRequest) GetPassword() string {
	return r.Password
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Identifier,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

func (a *AuthController) SignUpPost(ctx router.Context) error {
	payload := new(SignUpPayload)

	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(router.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
	}

	if a.Debug {
		fmt.Println("======= AUTH SIGN UP ======")
		fmt.Println(print.MaybePrettyJSON(map[string]string{
			"email":    payload.Email,
			"username": payload.Username,
		}))
		fmt.Println("===========================")
	}

	user, err := a.Auth.SignUp(ctx.Context(), *payload)
	if err != nil {
		if IsConflictError(err) {
			return ctx.JSON(router.StatusConflict, map[string]string{
				"error":     "an account with this email already exists",
				"text_code": TextCodeEmailConflict,
			})
		}
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, map[string]any{
		"id":    user.ID.String(),
		"email": user.Email,
	})
}

func (a *AuthController) SignInPost(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(router.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
	}

	token, err := a.Auther.Login(ctx, payload)
	if err != nil {
		// Unknown email and wrong password produce this exact body. Do not
		// branch on the underlying cause.
		return ctx.JSON(router.StatusUnauthorized, map[string]string{
			"error":     "email or password is incorrect",
			"text_code": TextCodeInvalidCredentials,
		})
	}

	return ctx.JSON(router.StatusOK, map[string]string{
		"access_token": token,
	})
}

func (a *AuthController) SignOutPost(ctx router.Context) error {
	a.Auther.Logout(ctx)
	return ctx.JSON(router.StatusOK, map[string]string{
		"message": "signed out",
	})
}

func (a *AuthController) defaultErrorHandler(ctx router.Context, err error) error {
	a.Logger.Error("Auth controller error", "error", err)
	return ctx.JSON(router.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}
