// Package errs defines the error taxonomy shared by stores, services and
// handlers. Every error that reaches a handler is classified by mark into a
// kind with a fixed HTTP status; anything unmarked is internal.
package errs

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrBusinessRule = errors.New("business rule violation")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")
)

const (
	KindNotFound     = "not_found"
	KindBusinessRule = "business_rule"
	KindValidation   = "validation_error"
	KindUnauthorized = "unauthorized"
	KindForbidden    = "forbidden"
	KindInternal     = "internal_error"
)

const internalMessage = "Internal server error"

type class struct {
	mark   error
	kind   string
	status int
}

var classes = []class{
	{ErrNotFound, KindNotFound, http.StatusNotFound},
	{ErrBusinessRule, KindBusinessRule, http.StatusBadRequest},
	{ErrValidation, KindValidation, http.StatusBadRequest},
	{ErrUnauthorized, KindUnauthorized, http.StatusUnauthorized},
	{ErrForbidden, KindForbidden, http.StatusForbidden},
}

func NotFound(entity string) error {
	return errors.Mark(errors.Newf("%s not found", entity), ErrNotFound)
}

func BusinessRule(message string) error {
	return errors.Mark(errors.New(message), ErrBusinessRule)
}

func Validation(message string) error {
	return errors.Mark(errors.New(message), ErrValidation)
}

func Validationf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrValidation)
}

func Unauthorized(message string) error {
	return errors.Mark(errors.New(message), ErrUnauthorized)
}

func Forbidden(message string) error {
	return errors.Mark(errors.New(message), ErrForbidden)
}

func Wrap(err error, op string) error {
	return errors.Wrap(err, op)
}

func classify(err error) (class, bool) {
	for _, c := range classes {
		if errors.Is(err, c.mark) {
			return c, true
		}
	}
	return class{}, false
}

func Kind(err error) string {
	if c, ok := classify(err); ok {
		return c.kind
	}
	return KindInternal
}

func HTTPStatus(err error) int {
	if c, ok := classify(err); ok {
		return c.status
	}
	return http.StatusInternalServerError
}

func IsInternal(err error) bool {
	_, ok := classify(err)
	return !ok
}

// Message is the text safe to show a client. Wrapping context added by
// callers is stripped; internal errors never leak.
func Message(err error) string {
	if IsInternal(err) {
		return internalMessage
	}
	return errors.UnwrapAll(err).Error()
}

func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505"
}

func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23503"
}
