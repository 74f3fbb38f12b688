// Package auth implements the local, mock sign-in flow. Nothing here checks
// a password against anything; credentials are only validated for shape.
package auth

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const MinPasswordLength = 6

const (
	MsgMissingFields = "Please fill in all fields."
	MsgShortPassword = "Password must be at least 6 characters."
)

// User is the single active user of a session
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Initial returns the first letter of the username, for avatars
func (u User) Initial() string {
	for _, r := range u.Username {
		return strings.ToUpper(string(r))
	}
	return "?"
}

// Credentials is what the sign-in form collects
type Credentials struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
	Username string `validate:"required_if=Register true"`
	Register bool
}

// ValidationError carries the message shown inline on the form
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the credentials and returns a *ValidationError
func Validate(c Credentials) error {
	c.Email = strings.TrimSpace(c.Email)
	c.Username = strings.TrimSpace(c.Username)

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return &ValidationError{Msg: MsgMissingFields}
		}
		return err
	}
	if len(c.Password) < MinPasswordLength {
		return &ValidationError{Msg: MsgShortPassword}
	}
	return nil
}

// SignIn validates the credentials and builds the session user. On login the
// username is taken from the email's local part.
func SignIn(c Credentials) (User, error) {
	if err := Validate(c); err != nil {
		return User{}, err
	}

	email := strings.TrimSpace(c.Email)
	username := strings.TrimSpace(c.Username)
	if !c.Register {
		username, _, _ = strings.Cut(email, "@")
	}

	return User{
		ID:       uuid.NewString(),
		Username: username,
		Email:    email,
	}, nil
}

// Login is SignIn for an existing account
func Login(email, password string) (User, error) {
	return SignIn(Credentials{Email: email, Password: password})
}

// Register is SignIn for a new account
func Register(email, password, username string) (User, error) {
	return SignIn(Credentials{Email: email, Password: password, Username: username, Register: true})
}
