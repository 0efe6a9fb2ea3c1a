package definition

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formstate/pkg/rules"
)

// ParseOpenAPI extracts a form definition from the JSON request body of one
// operation in an OpenAPI document. Only scalar top-level properties map to
// fields; nested objects and arrays are skipped, since the state container
// works over flat fixed-shape structs. Properties are emitted in name order
// so the definition is deterministic regardless of document layout.
func ParseOpenAPI(ctx context.Context, data []byte, operationID string) (Form, error) {
	if len(data) == 0 {
		return Form{}, errors.New("definition: openapi payload is empty")
	}
	if strings.TrimSpace(operationID) == "" {
		return Form{}, errors.New("definition: operation id is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return Form{}, fmt.Errorf("definition: load openapi document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return Form{}, errors.New("definition: openapi document contains no paths")
	}

	operation := findOperation(spec, operationID)
	if operation == nil {
		return Form{}, fmt.Errorf("definition: operation %q not found", operationID)
	}

	schema := requestBodySchema(operation)
	if schema == nil {
		return Form{}, fmt.Errorf("definition: operation %q has no object request body", operationID)
	}

	form := Form{
		Name:   operationID,
		Title:  rules.SanitizeMessage(operation.Summary),
		Fields: fieldsFromSchema(schema),
	}
	if len(form.Fields) == 0 {
		return Form{}, fmt.Errorf("definition: operation %q request body has no scalar properties", operationID)
	}
	if err := form.Validate(); err != nil {
		return Form{}, err
	}
	return form, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range []*openapi3.Operation{
			item.Get, item.Put, item.Post, item.Delete, item.Patch,
		} {
			if operation != nil && operation.OperationID == operationID {
				return operation
			}
		}
	}
	return nil
}

func requestBodySchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	media, ok := operation.RequestBody.Value.Content["application/json"]
	if !ok || media.Schema == nil || media.Schema.Value == nil {
		return nil
	}
	schema := media.Schema.Value
	if len(schema.Properties) == 0 {
		return nil
	}
	return schema
}

func fieldsFromSchema(schema *openapi3.Schema) []Field {
	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		fieldType, ok := scalarFieldType(ref.Value.Type)
		if !ok {
			continue
		}
		_, mandatory := required[name]
		fields = append(fields, Field{
			Name:        name,
			Type:        fieldType,
			Label:       rules.SanitizeMessage(ref.Value.Title),
			Description: rules.SanitizeMessage(ref.Value.Description),
			Required:    mandatory,
			Constraints: constraintsFromSchema(ref.Value),
		})
	}
	return fields
}

func scalarFieldType(types *openapi3.Types) (FieldType, bool) {
	if types == nil {
		return "", false
	}
	values := types.Slice()
	if len(values) != 1 {
		return "", false
	}
	switch values[0] {
	case "string":
		return FieldTypeString, true
	case "integer":
		return FieldTypeInteger, true
	case "number":
		return FieldTypeNumber, true
	case "boolean":
		return FieldTypeBoolean, true
	default:
		return "", false
	}
}

func constraintsFromSchema(src *openapi3.Schema) []Constraint {
	var out []Constraint
	if src.MinLength != 0 {
		out = append(out, Constraint{
			Kind:   ConstraintMinLength,
			Params: map[string]string{"value": strconv.FormatUint(src.MinLength, 10)},
		})
	}
	if src.MaxLength != nil {
		out = append(out, Constraint{
			Kind:   ConstraintMaxLength,
			Params: map[string]string{"value": strconv.FormatUint(*src.MaxLength, 10)},
		})
	}
	if src.Pattern != "" {
		out = append(out, Constraint{
			Kind:   ConstraintPattern,
			Params: map[string]string{"pattern": src.Pattern},
		})
	}
	if src.Format != "" {
		out = append(out, Constraint{
			Kind:   ConstraintFormat,
			Params: map[string]string{"format": src.Format},
		})
	}
	if src.Min != nil {
		out = append(out, Constraint{
			Kind:   ConstraintMin,
			Params: map[string]string{"value": formatFloat(*src.Min)},
		})
	}
	if src.Max != nil {
		out = append(out, Constraint{
			Kind:   ConstraintMax,
			Params: map[string]string{"value": formatFloat(*src.Max)},
		})
	}
	return out
}
