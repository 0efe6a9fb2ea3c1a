package state

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formstate/pkg/rules"
)

// Errors re-exports the error mapping so callers of this package rarely need
// to import rules directly.
type Errors = rules.Errors

// ErrInvalidSnapshot is returned by ToEntity when the snapshot still carries
// validation errors. Hitting it means the caller skipped checking Valid —
// a defect to fix, not a condition to retry.
var ErrInvalidSnapshot = errors.New("formstate: snapshot is not valid")

var errEntityIDRequired = errors.New("formstate: entity id is required")

// Form binds a rule set to a fields type and exposes the container's four
// operations: Empty, Transition, ToEntity and FromEntity. Form is a value;
// one Form can serve any number of concurrent snapshot lines.
type Form[F any] struct {
	rules Validator[F]
}

// Validator is the contract a rule set satisfies. It must be pure and total:
// a (possibly nil) error mapping for every input, no side effects, no
// panics.
type Validator[F any] interface {
	Validate(fields F) Errors
}

// New builds a Form around a rule set. A nil validator accepts everything.
func New[F any](validator Validator[F]) Form[F] {
	return Form[F]{rules: validator}
}

// Empty returns the starting snapshot: zero-valued fields, validated
// immediately so required-field errors are visible before the first
// transition.
func (f Form[F]) Empty() Snapshot[F] {
	var zero F
	return f.revalidate(Snapshot[F]{fields: zero})
}

// Transition applies a patch to a snapshot and returns the successor with
// errors and validity recomputed and the dirty flag set. The input snapshot
// is left observably unchanged; this is the only operation that alters field
// values. A nil patch recomputes state without touching fields.
func (f Form[F]) Transition(s Snapshot[F], patch Patch[F]) Snapshot[F] {
	next := s
	if patch != nil {
		next.fields = patch.Apply(s.fields)
	}
	next.dirty = true
	return f.revalidate(next)
}

// ToEntity converts a valid snapshot into an Entity carrying the given
// identity. It fails with ErrInvalidSnapshot when the snapshot still has
// errors and never returns a partially populated entity. The snapshot is
// not consumed; callers typically discard it once submission succeeds.
func (f Form[F]) ToEntity(s Snapshot[F], id string) (Entity[F], error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return Entity[F]{}, errEntityIDRequired
	}
	if !s.valid {
		return Entity[F]{}, fmt.Errorf("%w: fields %s have errors",
			ErrInvalidSnapshot, strings.Join(s.errors.Fields(), ", "))
	}
	return Entity[F]{id: trimmed, fields: s.fields}, nil
}

// Restore rehydrates an entity from externally stored values, running the
// rule set first so the valid-by-construction invariant holds for restored
// entities too. It is the storage-side mirror of ToEntity and fails the same
// way when the stored values no longer pass the current rules.
func (f Form[F]) Restore(id string, fields F) (Entity[F], error) {
	return f.ToEntity(f.revalidate(Snapshot[F]{fields: fields}), id)
}

// FromEntity loads an entity into a fresh snapshot for editing. The rule set
// runs immediately; an entity built by ToEntity is expected to come back
// valid, but the check runs regardless so rule changes since the entity was
// stored still surface. UI flags reset to their defaults.
func (f Form[F]) FromEntity(e Entity[F]) Snapshot[F] {
	return f.revalidate(Snapshot[F]{fields: e.fields})
}

func (f Form[F]) revalidate(s Snapshot[F]) Snapshot[F] {
	var errs Errors
	if f.rules != nil {
		errs = f.rules.Validate(s.fields)
	}
	s.errors = errs
	s.valid = errs.Empty()
	return s
}
