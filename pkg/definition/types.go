// Package definition loads declarative form definitions (YAML files or
// OpenAPI request bodies) and compiles their constraints into a typed rule
// set for a fixed-shape fields struct. The definition contributes labels,
// messages and constraints; the fields struct stays the single source of
// truth for which fields exist, so a definition that references an unbound
// field fails at compile time instead of silently validating nothing.
package definition

import (
	"errors"
	"fmt"
	"strconv"
)

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
)

// Constraint kinds understood by the compiler. Numeric bounds and length
// limits carry their threshold in Params["value"]; pattern rules carry the
// expression in Params["pattern"]; format rules carry the format name in
// Params["format"]. Any kind may carry a custom Params["message"].
const (
	ConstraintMin       = "min"
	ConstraintMax       = "max"
	ConstraintMinLength = "minLength"
	ConstraintMaxLength = "maxLength"
	ConstraintPattern   = "pattern"
	ConstraintFormat    = "format"
)

// Constraint is a single declarative validation constraint on a field.
type Constraint struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Field describes one input of a form: its name, kind, presentation strings
// and constraints. Labels and descriptions are sanitised at load time.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Label       string            `json:"label,omitempty"`
	Description string            `json:"description,omitempty"`
	Required    bool              `json:"required"`
	Messages    map[string]string `json:"messages,omitempty"`
	Constraints []Constraint      `json:"constraints,omitempty"`
}

// CrossRule is a cross-field constraint expressed as a boolean expression
// over the bound fields struct, reported against a single field.
type CrossRule struct {
	Field   string `json:"field"`
	Expr    string `json:"expr"`
	Message string `json:"message,omitempty"`
}

// Form is a complete declarative definition.
type Form struct {
	Name   string      `json:"name"`
	Title  string      `json:"title,omitempty"`
	Fields []Field     `json:"fields"`
	Rules  []CrossRule `json:"rules,omitempty"`
}

var (
	errFormNameMissing = errors.New("definition: form name is required")
	errFormNoFields    = errors.New("definition: form declares no fields")
)

// Validate checks the structural invariants of a definition: named form,
// at least one field, unique non-empty field names, known types, and
// well-formed constraint parameters.
func (f Form) Validate() error {
	if f.Name == "" {
		return errFormNameMissing
	}
	if len(f.Fields) == 0 {
		return errFormNoFields
	}
	seen := make(map[string]struct{}, len(f.Fields))
	for _, field := range f.Fields {
		if field.Name == "" {
			return fmt.Errorf("definition: form %q has a field without a name", f.Name)
		}
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("definition: form %q declares field %q twice", f.Name, field.Name)
		}
		seen[field.Name] = struct{}{}
		if err := validateFieldType(field.Type); err != nil {
			return fmt.Errorf("definition: field %q: %w", field.Name, err)
		}
		for _, constraint := range field.Constraints {
			if err := validateConstraint(constraint); err != nil {
				return fmt.Errorf("definition: field %q: %w", field.Name, err)
			}
		}
	}
	for _, rule := range f.Rules {
		if rule.Field == "" {
			return fmt.Errorf("definition: form %q has a cross-field rule without a target field", f.Name)
		}
		if _, ok := seen[rule.Field]; !ok {
			return fmt.Errorf("definition: cross-field rule targets unknown field %q", rule.Field)
		}
		if rule.Expr == "" {
			return fmt.Errorf("definition: cross-field rule on %q has no expression", rule.Field)
		}
	}
	return nil
}

func validateFieldType(t FieldType) error {
	switch t {
	case FieldTypeString, FieldTypeInteger, FieldTypeNumber, FieldTypeBoolean:
		return nil
	case "":
		return errors.New("field type is required")
	default:
		return fmt.Errorf("unknown field type %q", t)
	}
}

func validateConstraint(c Constraint) error {
	switch c.Kind {
	case ConstraintMin, ConstraintMax:
		raw, ok := c.Params["value"]
		if !ok {
			return fmt.Errorf("constraint %q has no value", c.Kind)
		}
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Errorf("constraint %q has non-numeric value %q", c.Kind, raw)
		}
	case ConstraintMinLength, ConstraintMaxLength:
		raw, ok := c.Params["value"]
		if !ok {
			return fmt.Errorf("constraint %q has no value", c.Kind)
		}
		if _, err := strconv.Atoi(raw); err != nil {
			return fmt.Errorf("constraint %q has non-integer value %q", c.Kind, raw)
		}
	case ConstraintPattern:
		if c.Params["pattern"] == "" {
			return errors.New("pattern constraint has no pattern")
		}
	case ConstraintFormat:
		if c.Params["format"] == "" {
			return errors.New("format constraint has no format")
		}
	case "":
		return errors.New("constraint kind is required")
	default:
		return fmt.Errorf("unknown constraint kind %q", c.Kind)
	}
	return nil
}
