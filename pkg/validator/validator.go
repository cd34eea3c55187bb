package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// Validator validates structs by their validate tags and reports errors per JSON field name
type Validator struct {
	v *playground.Validate
}

// New creates a validator that names fields after their json tag
func New() *Validator {
	v := playground.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{v: v}
}

// RegisterRule adds a string rule usable as `validate:"tag=param"`
func (v *Validator) RegisterRule(tag string, fn func(value, param string) bool) error {
	return v.v.RegisterValidation(tag, func(fl playground.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		return fn(fl.Field().String(), fl.Param())
	})
}

// RegisterStringer makes struct types validate as their String() form,
// so string rules like required and oneof apply to them.
func (v *Validator) RegisterStringer(types ...fmt.Stringer) {
	values := make([]any, 0, len(types))
	for _, t := range types {
		values = append(values, t)
	}
	v.v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if s, ok := field.Interface().(fmt.Stringer); ok {
			return s.String()
		}
		return nil
	}, values...)
}

// Validate checks s and returns a field -> message map, or nil when s is valid
func (v *Validator) Validate(s any) (map[string]string, error) {
	err := v.v.Struct(s)
	if err == nil {
		return nil, nil
	}

	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = message(fe)
	}
	return fields, nil
}

// fieldPath drops the top-level struct name from the namespace
func fieldPath(fe playground.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "choice":
		return "must be a listed option or other:<description>"
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}

// SanitizeString sanitizes a string by removing potentially dangerous characters
func SanitizeString(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	return strings.TrimSpace(s)
}

// SanitizeEmail sanitizes an email address
func SanitizeEmail(email string) string {
	return strings.ToLower(SanitizeString(email))
}
