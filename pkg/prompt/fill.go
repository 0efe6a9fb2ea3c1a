package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formstate/pkg/definition"
	"github.com/goliatone/go-formstate/pkg/state"
)

// ErrDeclined signals the user answered no to the submission confirmation.
var ErrDeclined = errors.New("prompt: submission declined")

// FieldPatcher maps one answered field to a patch on the fields struct. A
// nil return skips the field (for example, an answer the caller cannot
// represent); the loop then moves on without a transition.
type FieldPatcher[F any] func(field, value string) state.Patch[F]

// FillOption customises a Fill run.
type FillOption[F any] func(*fillConfig[F])

type fillConfig[F any] struct {
	observer func(field string, snap state.Snapshot[F])
	confirm  string
}

// WithObserver registers a callback invoked after every transition with the
// field that changed and the successor snapshot, letting callers react to
// per-step state while the loop runs.
func WithObserver[F any](fn func(field string, snap state.Snapshot[F])) FillOption[F] {
	return func(c *fillConfig[F]) {
		c.observer = fn
	}
}

// WithConfirmation makes Fill ask a yes/no question through the driver once
// every field is answered and the snapshot is valid. Declining returns the
// snapshot together with ErrDeclined so callers skip conversion. Invalid
// snapshots skip the question; there is nothing to convert.
func WithConfirmation[F any](message string) FillOption[F] {
	return func(c *fillConfig[F]) {
		c.confirm = strings.TrimSpace(message)
	}
}

// Fill prompts for every field in the definition and drives the form from
// its empty snapshot through one transition per answer, reporting each
// step's validation messages through the driver. It returns the final
// snapshot — valid or not; gating on validity stays with the caller — and
// fails only when the driver does (abort, closed terminal, cancelled
// context) or when a requested confirmation is declined.
func Fill[F any](
	ctx context.Context,
	driver Driver,
	form state.Form[F],
	def definition.Form,
	patcher FieldPatcher[F],
	opts ...FillOption[F],
) (state.Snapshot[F], error) {
	var cfg fillConfig[F]
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	snap := form.Empty()
	for _, field := range def.Fields {
		value, err := driver.Input(ctx, InputConfig{
			Message: fieldMessage(field),
			Help:    field.Description,
		})
		if err != nil {
			return snap, fmt.Errorf("prompt: read %s: %w", field.Name, err)
		}

		patch := patcher(field.Name, value)
		if patch == nil {
			continue
		}
		snap = form.Transition(snap, patch)
		if cfg.observer != nil {
			cfg.observer(field.Name, snap)
		}
		for _, message := range snap.ErrorsFor(field.Name) {
			if err := driver.Info(ctx, fmt.Sprintf("%s %s", field.Name, message)); err != nil {
				return snap, fmt.Errorf("prompt: report %s: %w", field.Name, err)
			}
		}
	}

	if cfg.confirm != "" && snap.Valid() {
		ok, err := driver.Confirm(ctx, ConfirmConfig{Message: cfg.confirm, Default: true})
		if err != nil {
			return snap, fmt.Errorf("prompt: confirm: %w", err)
		}
		if !ok {
			return snap, ErrDeclined
		}
	}
	return snap, nil
}

func fieldMessage(field definition.Field) string {
	if label := strings.TrimSpace(field.Label); label != "" {
		return label
	}
	return field.Name
}
