package validators

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/anonto42/tweeter/backend/internal/timezones"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// usernamePattern allows letters, digits and @/./+/-/_
var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// CustomValidator adapts go-playground/validator to echo.Validator
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator with the username and timezone rules registered
func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("timezone", func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		return name == "" || timezones.Valid(name)
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator. Failures come back as 400 with one message per field.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	messages := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages[fe.Field()] = fieldMessage(fe)
	}
	return echo.NewHTTPError(http.StatusBadRequest, messages)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	case "timezone":
		return fmt.Sprintf("%q is not a valid timezone.", fe.Value())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}
