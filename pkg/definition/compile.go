package definition

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-formstate/pkg/rules"
)

// Accessor binds a declared field name to typed getters on the fields
// struct. Only the getters a field's constraints need have to be set: string
// constraints (required, lengths, pattern, format) use String, numeric
// bounds use Number.
type Accessor[F any] struct {
	String func(F) string
	Number func(F) float64
}

// Bindings maps declared field names to their accessors.
type Bindings[F any] map[string]Accessor[F]

// Compile turns a definition into a rule set over the bound fields struct.
// Every declared field must be bound and every constraint must find a getter
// of the right type; anything else errors here, at wiring time, so the
// returned set stays total at validation time. Unknown format names are
// skipped: formats are an open set and an unenforced one must not make an
// otherwise checkable form unusable.
func Compile[F any](form Form, bind Bindings[F]) (rules.Set[F], error) {
	var set rules.Set[F]
	if err := form.Validate(); err != nil {
		return set, err
	}

	for _, field := range form.Fields {
		accessor, ok := bind[field.Name]
		if !ok {
			return set, fmt.Errorf("definition: no binding for field %q", field.Name)
		}
		fieldRules, err := compileField(field, accessor)
		if err != nil {
			return set, err
		}
		set = set.With(fieldRules...)
	}

	for _, rule := range form.Rules {
		set = set.With(rules.Expr[F](rule.Field, rule.Expr, rule.Message))
	}
	return set, nil
}

func compileField[F any](field Field, accessor Accessor[F]) ([]rules.Rule[F], error) {
	var out []rules.Rule[F]

	if field.Required {
		if accessor.String == nil {
			return nil, fmt.Errorf("definition: field %q: required needs a string binding", field.Name)
		}
		out = append(out, rules.Required(field.Name, accessor.String, messageOption(field, "required")...))
	}

	for _, constraint := range field.Constraints {
		rule, err := compileConstraint(field, constraint, accessor)
		if err != nil {
			return nil, err
		}
		if rule != nil {
			out = append(out, rule)
		}
	}
	return out, nil
}

func compileConstraint[F any](field Field, constraint Constraint, accessor Accessor[F]) (rules.Rule[F], error) {
	opts := messageOption(field, constraint.Kind)

	switch constraint.Kind {
	case ConstraintMinLength:
		if accessor.String == nil {
			return nil, stringBindingError(field.Name, constraint.Kind)
		}
		value, _ := strconv.Atoi(constraint.Params["value"])
		return rules.MinLength(field.Name, value, accessor.String, opts...), nil
	case ConstraintMaxLength:
		if accessor.String == nil {
			return nil, stringBindingError(field.Name, constraint.Kind)
		}
		value, _ := strconv.Atoi(constraint.Params["value"])
		return rules.MaxLength(field.Name, value, accessor.String, opts...), nil
	case ConstraintPattern:
		if accessor.String == nil {
			return nil, stringBindingError(field.Name, constraint.Kind)
		}
		return rules.Pattern(field.Name, constraint.Params["pattern"], accessor.String, opts...), nil
	case ConstraintFormat:
		if constraint.Params["format"] != "email" {
			return nil, nil
		}
		if accessor.String == nil {
			return nil, stringBindingError(field.Name, constraint.Kind)
		}
		return rules.Email(field.Name, accessor.String, opts...), nil
	case ConstraintMin:
		if accessor.Number == nil {
			return nil, numberBindingError(field.Name, constraint.Kind)
		}
		value, _ := strconv.ParseFloat(constraint.Params["value"], 64)
		return rules.Min(field.Name, value, accessor.Number, boundOptions(field, opts)...), nil
	case ConstraintMax:
		if accessor.Number == nil {
			return nil, numberBindingError(field.Name, constraint.Kind)
		}
		value, _ := strconv.ParseFloat(constraint.Params["value"], 64)
		return rules.Max(field.Name, value, accessor.Number, boundOptions(field, opts)...), nil
	default:
		return nil, fmt.Errorf("definition: field %q: unknown constraint kind %q", field.Name, constraint.Kind)
	}
}

// boundOptions marks numeric bounds on non-required fields as optional so an
// unfilled zero passes, mirroring how the string rules skip empty values.
func boundOptions(field Field, opts []rules.Option) []rules.Option {
	if field.Required {
		return opts
	}
	return append(append([]rules.Option(nil), opts...), rules.Optional())
}

func messageOption(field Field, kind string) []rules.Option {
	message, ok := field.Messages[kind]
	if !ok || message == "" {
		return nil
	}
	return []rules.Option{rules.WithMessage(message)}
}

func stringBindingError(field, kind string) error {
	return fmt.Errorf("definition: field %q: constraint %q needs a string binding", field, kind)
}

func numberBindingError(field, kind string) error {
	return fmt.Errorf("definition: field %q: constraint %q needs a numeric binding", field, kind)
}
