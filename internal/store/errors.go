// Package store implements the identity, content and submission-intake
// service layer. Stores own all business rules; HTTP handlers only adapt
// requests onto them.
package store

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrValidation covers malformed or missing fields and uniqueness violations.
	ErrValidation = errors.New("validation error")
	// ErrNotFound means a referenced entity id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAuthorization means the acting principal lacks permission.
	ErrAuthorization = errors.New("not authorized")
)

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func authorizationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrAuthorization, fmt.Sprintf(format, args...))
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkStruct runs tag validation and folds the result into ErrValidation so
// callers only ever need errors.Is.
func checkStruct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return validationf("field %s failed on %s", f.Field(), f.Tag())
		}
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
