package auth

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// SignUpPayload carries the transient plaintext credentials for registration.
// The password is discarded once hashed.
type SignUpPayload struct {
	Email     string `form:"email" json:"email"`
	Username  string `form:"username" json:"username"`
	Password  string `form:"password" json:"password"`
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
}

// Validate will run validation rules
func (p SignUpPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&p.Username, validation.Length(2, 50)),
		validation.Field(&p.Password, validation.Required, validation.Length(6, 72)),
		validation.Field(&p.FirstName, validation.Length(0, 100)),
		validation.Field(&p.LastName, validation.Length(0, 100)),
	)
}
