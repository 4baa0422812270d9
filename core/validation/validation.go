package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/OmatthewY/explore-with-me/core/errors"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result collects field errors. It is also an error so it can travel
// inside an AppError.
type Result struct {
	Errors []FieldError `json:"errors"`
}

func (r *Result) Add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

func (r *Result) HasError() bool {
	return r != nil && len(r.Errors) > 0
}

func (r *Result) Error() string {
	parts := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		parts[i] = fmt.Sprintf("Field: %s. Error: %s", e.Field, e.Message)
	}
	return strings.Join(parts, "; ")
}

// AppError wraps the result as an invalid-input error.
func (r *Result) AppError() *errors.AppError {
	return errors.NewAppError(errors.ErrInvalidInput, r.Error(), r)
}

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		instance = v
	})
	return instance
}

// Struct runs the validate tags of v.
func Struct(v any) *Result {
	res := &Result{}
	err := get().Struct(v)
	if err == nil {
		return res
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		res.Add("", err.Error())
		return res
	}
	for _, fe := range fieldErrs {
		res.Add(fe.Field(), message(fe))
	}
	return res
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "must not be blank"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("length must be at least %s", fe.Param())
		}
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("length must be at most %s", fe.Param())
		}
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "email":
		return "must be a well-formed email address"
	case "ipv4":
		return "must be an IPv4 address"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}

// EchoValidator adapts the shared validator to echo.Validator.
type EchoValidator struct{}

func (EchoValidator) Validate(i any) error {
	if res := Struct(i); res.HasError() {
		return res.AppError()
	}
	return nil
}
