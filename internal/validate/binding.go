package validate

import (
	"encoding/json" // JSON encoding
	"errors"        // Error inspection
	"fmt"           // String formatting
	"reflect"       // Field reflection
	"strings"       // String helpers

	"foodgram/internal/domain" // Domain models and error kinds

	"github.com/gin-gonic/gin/binding"       // Gin validator hook
	"github.com/go-playground/validator/v10" // Struct validation
)

// RegisterBinding installs the custom "slug" and "username" tags on gin's
// request validator and makes field errors report JSON names.
func RegisterBinding() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("validate: unexpected binding engine")
	}
	v.RegisterTagNameFunc(jsonName)
	if err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("register slug: %w", err)
	}
	if err := v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return IsValidUsername(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("register username: %w", err)
	}
	return nil
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// FromBinding converts a gin bind error into a domain error.
func FromBinding(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		verr := domain.NewValidationError()
		for _, fe := range fieldErrs {
			verr.Add(fe.Field(), message(fe))
		}
		return verr
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		return domain.FieldError(typeErr.Field, fmt.Sprintf("expected %s", typeErr.Type))
	case errors.As(err, &syntaxErr):
		return domain.NewError(domain.ErrBadRequest, "malformed JSON body")
	}
	return domain.NewError(domain.ErrBadRequest, err.Error())
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	case "email":
		return "enter a valid email address"
	case "slug":
		return "slug may contain only letters, digits, \"_\" and \"-\""
	case "username":
		return "enter a valid username"
	case "nefield":
		return fmt.Sprintf("must differ from %s", fe.Param())
	}
	return fmt.Sprintf("failed on the %q rule", fe.Tag())
}
