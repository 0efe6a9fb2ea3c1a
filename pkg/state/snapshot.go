// Package state implements an immutable form state container. A Snapshot is
// one point-in-time value of a form in progress; every change produces a new
// snapshot and re-runs the form's rule set, so validity is always derived
// from the error mapping and never drifts from it. Snapshots are plain
// values: any number of holders can read one concurrently without locks, and
// whichever caller sequences Transition calls decides write ordering
// (last write wins).
package state

import (
	"github.com/goliatone/go-formstate/pkg/rules"
)

// Snapshot captures field values, the derived error mapping and validity,
// and the transient UI flags of a form in progress. Snapshots are only
// constructed by Form; callers receive them by value and cannot alter one
// in place.
type Snapshot[F any] struct {
	fields     F
	errors     rules.Errors
	valid      bool
	dirty      bool
	submitting bool
}

// Fields returns the field values. F is a plain struct, so the returned copy
// shares nothing mutable with the snapshot.
func (s Snapshot[F]) Fields() F { return s.fields }

// Errors returns a copy of the error mapping; mutating it cannot touch the
// snapshot.
func (s Snapshot[F]) Errors() rules.Errors { return s.errors.Clone() }

// ErrorsFor returns the messages recorded for one field.
func (s Snapshot[F]) ErrorsFor(field string) []string {
	if len(s.errors) == 0 {
		return nil
	}
	return append([]string(nil), s.errors[field]...)
}

// Valid reports whether the error mapping is empty.
func (s Snapshot[F]) Valid() bool { return s.valid }

// Dirty reports whether any transition has been applied since the snapshot
// line was created or loaded from an entity.
func (s Snapshot[F]) Dirty() bool { return s.dirty }

// Submitting reports the transient submission flag.
func (s Snapshot[F]) Submitting() bool { return s.submitting }

// WithSubmitting returns a snapshot with only the submission flag changed.
// Field values, errors and validity carry over untouched; submission itself
// is the caller's collaboration with a persistence layer, not this
// package's.
func (s Snapshot[F]) WithSubmitting(on bool) Snapshot[F] {
	s.submitting = on
	return s
}

// Patch is an explicit set of field overrides applied functionally: Apply
// receives the current fields by value and returns the new ones. Patch types
// list their overridable fields as pointers so absent fields carry over, per
// the fixed-shape struct design of this package.
type Patch[F any] interface {
	Apply(fields F) F
}

// PatchFunc adapts a function into a Patch.
type PatchFunc[F any] func(fields F) F

// Apply implements Patch. A nil function leaves the fields unchanged.
func (fn PatchFunc[F]) Apply(fields F) F {
	if fn == nil {
		return fields
	}
	return fn(fields)
}
