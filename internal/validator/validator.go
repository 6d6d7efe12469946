// Package validator checks request structs with go-playground/validator and
// turns the first failing rule into a client-facing validation error.
package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"dicel-erp/internal/errs"

	"github.com/cockroachdb/errors"
	playground "github.com/go-playground/validator/v10"
)

var (
	ErrInvalidEmail    = errs.Validation("invalid email")
	ErrInvalidPassword = errs.Validation("password must be at least 8 characters and contain a letter and a digit")
)

var (
	emailRegex  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	letterRegex = regexp.MustCompile(`[A-Za-z]`)
	digitRegex  = regexp.MustCompile(`[0-9]`)
)

var validate = newValidate()

func newValidate() *playground.Validate {
	v := playground.New(playground.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("password", func(fl playground.FieldLevel) bool {
		return ValidatePassword(fl.Field().String()) == nil
	})
	return v
}

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 || !letterRegex.MatchString(password) || !digitRegex.MatchString(password) {
		return ErrInvalidPassword
	}
	return nil
}

// Struct validates req against its `validate` tags.
func Struct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.Wrap(err, "validate request")
	}
	return errs.Validation(describe(fieldErrs[0]))
}

func describe(fe playground.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "password":
		return ErrInvalidPassword.Error()
	}
	return fmt.Sprintf("%s is invalid", field)
}
