package rules

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Email reports an error when the accessed string is not a valid email
// address. Empty values pass; combine with Required for mandatory fields.
func Email[F any](field string, get func(F) string, opts ...Option) Rule[F] {
	cfg := applyOptions("must be a valid email address", opts)
	validate := validator.New()
	return Func[F](func(fields F) Errors {
		value := get(fields)
		if value == "" {
			return nil
		}
		if err := validate.Var(value, "email"); err != nil {
			return Errors{field: {cfg.message}}
		}
		return nil
	})
}

// Tags validates the fields struct against its `validate:"..."` struct tags
// using go-playground/validator. Field names in the resulting mapping come
// from the json tag when present, matching how the rest of the library keys
// errors. A fields type that validator cannot inspect (not a struct) reports
// a single form-level message rather than failing.
func Tags[F any]() Rule[F] {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		tag := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return field.Name
		}
		return tag
	})

	return Func[F](func(fields F) Errors {
		err := validate.Struct(fields)
		if err == nil {
			return nil
		}
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return Errors{FormField: {"validation could not run on this value"}}
		}
		out := make(Errors, len(verrs))
		for _, fe := range verrs {
			out.Add(fe.Field(), tagMessage(fe))
		}
		return out
	})
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed the %q check", fe.Tag())
	}
}
