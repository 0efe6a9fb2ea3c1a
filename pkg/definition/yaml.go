package definition

import (
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/rules"
)

type yamlForm struct {
	Name   string      `yaml:"name"`
	Title  string      `yaml:"title"`
	Fields []yamlField `yaml:"fields"`
	Rules  []yamlRule  `yaml:"rules"`
}

type yamlField struct {
	Name        string            `yaml:"name"`
	Type        string            `yaml:"type"`
	Label       string            `yaml:"label"`
	Description string            `yaml:"description"`
	Required    bool              `yaml:"required"`
	MinLength   *int              `yaml:"minLength"`
	MaxLength   *int              `yaml:"maxLength"`
	Pattern     string            `yaml:"pattern"`
	Format      string            `yaml:"format"`
	Min         *float64          `yaml:"min"`
	Max         *float64          `yaml:"max"`
	Messages    map[string]string `yaml:"messages"`
}

type yamlRule struct {
	Field   string `yaml:"field"`
	Expr    string `yaml:"expr"`
	Message string `yaml:"message"`
}

// ParseYAML decodes a YAML form definition and validates its structure.
// Presentation strings and custom messages are sanitised here, so the rest
// of the library can treat the returned Form as display-safe.
func ParseYAML(data []byte) (Form, error) {
	if len(data) == 0 {
		return Form{}, errors.New("definition: yaml payload is empty")
	}
	var raw yamlForm
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Form{}, fmt.Errorf("definition: parse yaml: %w", err)
	}

	form := Form{
		Name:  raw.Name,
		Title: rules.SanitizeMessage(raw.Title),
	}
	for _, field := range raw.Fields {
		form.Fields = append(form.Fields, convertYAMLField(field))
	}
	for _, rule := range raw.Rules {
		form.Rules = append(form.Rules, CrossRule{
			Field:   rule.Field,
			Expr:    rule.Expr,
			Message: rules.SanitizeMessage(rule.Message),
		})
	}

	if err := form.Validate(); err != nil {
		return Form{}, err
	}
	return form, nil
}

func convertYAMLField(raw yamlField) Field {
	field := Field{
		Name:        raw.Name,
		Type:        FieldType(raw.Type),
		Label:       rules.SanitizeMessage(raw.Label),
		Description: rules.SanitizeMessage(raw.Description),
		Required:    raw.Required,
		Messages:    sanitizeMessages(raw.Messages),
	}
	if raw.MinLength != nil {
		field.Constraints = append(field.Constraints, Constraint{
			Kind:   ConstraintMinLength,
			Params: map[string]string{"value": strconv.Itoa(*raw.MinLength)},
		})
	}
	if raw.MaxLength != nil {
		field.Constraints = append(field.Constraints, Constraint{
			Kind:   ConstraintMaxLength,
			Params: map[string]string{"value": strconv.Itoa(*raw.MaxLength)},
		})
	}
	if raw.Pattern != "" {
		field.Constraints = append(field.Constraints, Constraint{
			Kind:   ConstraintPattern,
			Params: map[string]string{"pattern": raw.Pattern},
		})
	}
	if raw.Format != "" {
		field.Constraints = append(field.Constraints, Constraint{
			Kind:   ConstraintFormat,
			Params: map[string]string{"format": raw.Format},
		})
	}
	if raw.Min != nil {
		field.Constraints = append(field.Constraints, Constraint{
			Kind:   ConstraintMin,
			Params: map[string]string{"value": formatFloat(*raw.Min)},
		})
	}
	if raw.Max != nil {
		field.Constraints = append(field.Constraints, Constraint{
			Kind:   ConstraintMax,
			Params: map[string]string{"value": formatFloat(*raw.Max)},
		})
	}
	return field
}

func sanitizeMessages(raw map[string]string) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]string, len(raw))
	for kind, message := range raw {
		cleaned := rules.SanitizeMessage(message)
		if cleaned == "" {
			continue
		}
		out[kind] = cleaned
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
