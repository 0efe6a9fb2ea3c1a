package formstate

import (
	"context"

	"github.com/goliatone/go-formstate/pkg/definition"
	"github.com/goliatone/go-formstate/pkg/rules"
	"github.com/goliatone/go-formstate/pkg/state"
)

// Snapshot aliases the state container's snapshot type via the root package
// for convenience.
type Snapshot[F any] = state.Snapshot[F]

// Form exposes the container's four operations over a fields type.
type Form[F any] = state.Form[F]

// Entity is a finalized, validated domain record.
type Entity[F any] = state.Entity[F]

// Patch is an explicit set of field overrides applied functionally.
type Patch[F any] = state.Patch[F]

// PatchFunc adapts a function into a Patch.
type PatchFunc[F any] = state.PatchFunc[F]

// Errors is the field-keyed error mapping validation produces.
type Errors = rules.Errors

// ErrInvalidSnapshot is returned when converting a snapshot that still has
// validation errors.
var ErrInvalidSnapshot = state.ErrInvalidSnapshot

// New builds a Form around a rule set. It is the simplest entry point for
// callers defining rules in code.
func New[F any](validator state.Validator[F]) Form[F] {
	return state.New(validator)
}

// NewID mints a fresh opaque entity identity.
func NewID() string {
	return state.NewID()
}

// FromYAML builds a Form from a YAML definition and a set of field bindings,
// combining the definition parse and rule compile steps.
func FromYAML[F any](data []byte, bind definition.Bindings[F]) (Form[F], definition.Form, error) {
	def, err := definition.ParseYAML(data)
	if err != nil {
		return Form[F]{}, definition.Form{}, err
	}
	set, err := definition.Compile(def, bind)
	if err != nil {
		return Form[F]{}, definition.Form{}, err
	}
	return state.New(set), def, nil
}

// FromOpenAPI builds a Form from one operation's request body in an OpenAPI
// document, mirroring FromYAML for schema-first callers.
func FromOpenAPI[F any](ctx context.Context, data []byte, operationID string, bind definition.Bindings[F]) (Form[F], definition.Form, error) {
	def, err := definition.ParseOpenAPI(ctx, data, operationID)
	if err != nil {
		return Form[F]{}, definition.Form{}, err
	}
	set, err := definition.Compile(def, bind)
	if err != nil {
		return Form[F]{}, definition.Form{}, err
	}
	return state.New(set), def, nil
}
