// Package validation wraps a single validator instance driven by the
// `validate:` struct tags on request and model types.
package validation

import (
	"github.com/go-playground/validator/v10"

	"github.com/abhinandan-jain01/nearmart/apperrors"
)

var validate = validator.New()

// Struct validates v and converts the first tag failure into an Invalid error
// suitable for returning straight to the client.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return apperrors.Invalid("validation failed on field '%s' (%s)", errs[0].Field(), errs[0].Tag())
	}
	return apperrors.Wrap(apperrors.KindInvalid, "validation failed", err)
}
