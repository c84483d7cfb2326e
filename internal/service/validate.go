package service

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}

// String lengths are counted in code points.
type postInput struct {
	Text string `validate:"min=1,max=200"`
}

type accountInput struct {
	Username  string `validate:"min=1,max=32,username"`
	Password  string `validate:"min=1,max=72"`
	FirstName string `validate:"min=1,max=32"`
	LastName  string `validate:"min=1,max=32"`
}

type profileInput struct {
	Password  string `validate:"min=1,max=72"`
	FirstName string `validate:"min=1,max=32"`
	LastName  string `validate:"min=1,max=32"`
}
