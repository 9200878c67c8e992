package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	// Indian mobile number format. Regional assumption carried over from the
	// registration form rules; not a general-purpose phone validator.
	mobileRegex = regexp.MustCompile(`^[6-9]\d{9}$`)
	// 12-digit identity document number (Aadhaar).
	idNumberRegex = regexp.MustCompile(`^\d{12}$`)
)

// RegisterValidators installs custom binding validators used by request DTOs.
// Must be called once before the router is built.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("inmobile", func(fl validator.FieldLevel) bool {
		return mobileRegex.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}

	return v.RegisterValidation("idnumber", func(fl validator.FieldLevel) bool {
		return idNumberRegex.MatchString(fl.Field().String())
	})
}
