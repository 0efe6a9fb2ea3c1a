// Package testsupport provides fixture helpers shared by the package tests.
package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/goliatone/go-formstate/pkg/definition"
)

// LoadDefinition reads and parses a YAML form definition fixture, failing
// the test on any error to keep contract tests concise.
func LoadDefinition(t *testing.T, path string) definition.Form {
	t.Helper()

	form, err := LoadDefinitionFromPath(path)
	if err != nil {
		t.Fatalf("load definition: %v", err)
	}
	return form
}

// LoadDefinitionFromPath parses a YAML definition without requiring a
// testing.T, so callers can wire fixtures in setup functions.
func LoadDefinitionFromPath(path string) (definition.Form, error) {
	if path == "" {
		return definition.Form{}, errors.New("testsupport: definition path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return definition.Form{}, fmt.Errorf("testsupport: read definition: %w", err)
	}
	form, err := definition.ParseYAML(data)
	if err != nil {
		return definition.Form{}, fmt.Errorf("testsupport: parse definition: %w", err)
	}
	return form, nil
}

// LoadOpenAPIDefinition extracts a form definition from an OpenAPI fixture.
func LoadOpenAPIDefinition(t *testing.T, path, operationID string) definition.Form {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read openapi fixture: %v", err)
	}
	form, err := definition.ParseOpenAPI(context.Background(), data, operationID)
	if err != nil {
		t.Fatalf("parse openapi fixture: %v", err)
	}
	return form
}
