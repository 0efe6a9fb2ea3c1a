package prompt_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/definition"
	"github.com/goliatone/go-formstate/pkg/prompt"
	"github.com/goliatone/go-formstate/pkg/rules"
	"github.com/goliatone/go-formstate/pkg/state"
)

type contactFields struct {
	Name  string
	Email string
}

func contactPatcher(field, value string) state.Patch[contactFields] {
	switch field {
	case "name":
		return state.PatchFunc[contactFields](func(f contactFields) contactFields {
			f.Name = value
			return f
		})
	case "email":
		return state.PatchFunc[contactFields](func(f contactFields) contactFields {
			f.Email = value
			return f
		})
	default:
		return nil
	}
}

func contactDefinition() definition.Form {
	return definition.Form{
		Name: "contact",
		Fields: []definition.Field{
			{Name: "name", Type: definition.FieldTypeString, Label: "Full name", Required: true},
			{Name: "email", Type: definition.FieldTypeString, Required: true},
			{Name: "fax", Type: definition.FieldTypeString},
		},
	}
}

func contactForm() state.Form[contactFields] {
	return state.New(rules.NewSet(
		rules.Required("name", func(f contactFields) string { return f.Name }),
		rules.Required("email", func(f contactFields) string { return f.Email }),
	))
}

// scriptedDriver answers prompts from a canned script keyed by message and
// records every prompt, notice and confirmation it handled.
type scriptedDriver struct {
	answers   map[string]string
	failWith  error
	confirm   bool
	asked     []string
	infos     []string
	confirmed []string
}

func (d *scriptedDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	d.asked = append(d.asked, cfg.Message)
	if d.failWith != nil {
		return "", d.failWith
	}
	return d.answers[cfg.Message], nil
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	d.confirmed = append(d.confirmed, cfg.Message)
	return d.confirm, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func TestFill_DrivesTransitionsPerAnswer(t *testing.T) {
	driver := &scriptedDriver{answers: map[string]string{
		"Full name": "Jane",
		"email":     "jane@example.com",
	}}

	var steps []string
	snap, err := prompt.Fill(
		context.Background(),
		driver,
		contactForm(),
		contactDefinition(),
		contactPatcher,
		prompt.WithObserver(func(field string, _ state.Snapshot[contactFields]) {
			steps = append(steps, field)
		}),
	)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}

	if !snap.Valid() {
		t.Fatalf("expected a valid snapshot, errors: %v", snap.Errors())
	}
	want := contactFields{Name: "Jane", Email: "jane@example.com"}
	if diff := cmp.Diff(want, snap.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	// The unknown "fax" field is prompted but skipped by the patcher.
	if diff := cmp.Diff([]string{"Full name", "email", "fax"}, driver.asked); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"name", "email"}, steps); diff != "" {
		t.Fatalf("transition steps mismatch (-want +got):\n%s", diff)
	}
}

func TestFill_PartialAnswersLeaveErrors(t *testing.T) {
	driver := &scriptedDriver{answers: map[string]string{"Full name": "Jane"}}

	snap, err := prompt.Fill(
		context.Background(),
		driver,
		contactForm(),
		contactDefinition(),
		contactPatcher,
	)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if snap.Valid() {
		t.Fatal("snapshot with an unanswered required field must not be valid")
	}
	if got := snap.ErrorsFor("email"); len(got) == 0 {
		t.Fatal("email should carry a required error")
	}
}

func TestFill_ReportsPerStepErrorsThroughDriver(t *testing.T) {
	driver := &scriptedDriver{answers: map[string]string{
		"Full name": "",
		"email":     "jane@example.com",
	}}

	snap, err := prompt.Fill(
		context.Background(),
		driver,
		contactForm(),
		contactDefinition(),
		contactPatcher,
	)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if snap.Valid() {
		t.Fatal("snapshot with an empty required answer must not be valid")
	}
	if diff := cmp.Diff([]string{"name is required"}, driver.infos); diff != "" {
		t.Fatalf("reported notices mismatch (-want +got):\n%s", diff)
	}
}

func TestFill_ConfirmationAccepted(t *testing.T) {
	driver := &scriptedDriver{
		answers: map[string]string{"Full name": "Jane", "email": "jane@example.com"},
		confirm: true,
	}

	snap, err := prompt.Fill(
		context.Background(),
		driver,
		contactForm(),
		contactDefinition(),
		contactPatcher,
		prompt.WithConfirmation[contactFields]("Convert to an entity?"),
	)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if !snap.Valid() {
		t.Fatalf("expected a valid snapshot, errors: %v", snap.Errors())
	}
	if diff := cmp.Diff([]string{"Convert to an entity?"}, driver.confirmed); diff != "" {
		t.Fatalf("confirmation prompts mismatch (-want +got):\n%s", diff)
	}
}

func TestFill_ConfirmationDeclined(t *testing.T) {
	driver := &scriptedDriver{
		answers: map[string]string{"Full name": "Jane", "email": "jane@example.com"},
	}

	snap, err := prompt.Fill(
		context.Background(),
		driver,
		contactForm(),
		contactDefinition(),
		contactPatcher,
		prompt.WithConfirmation[contactFields]("Convert to an entity?"),
	)
	if !errors.Is(err, prompt.ErrDeclined) {
		t.Fatalf("err = %v, want ErrDeclined", err)
	}
	if !snap.Valid() {
		t.Fatal("a declined fill still returns the final snapshot")
	}
}

func TestFill_ConfirmationSkippedWhenInvalid(t *testing.T) {
	driver := &scriptedDriver{answers: map[string]string{"Full name": "Jane"}}

	snap, err := prompt.Fill(
		context.Background(),
		driver,
		contactForm(),
		contactDefinition(),
		contactPatcher,
		prompt.WithConfirmation[contactFields]("Convert to an entity?"),
	)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if snap.Valid() {
		t.Fatal("snapshot with an unanswered required field must not be valid")
	}
	if len(driver.confirmed) != 0 {
		t.Fatalf("invalid snapshot must not be confirmed, asked %v", driver.confirmed)
	}
}

func TestFill_PropagatesDriverFailure(t *testing.T) {
	driver := &scriptedDriver{failWith: prompt.ErrAborted}

	_, err := prompt.Fill(
		context.Background(),
		driver,
		contactForm(),
		contactDefinition(),
		contactPatcher,
	)
	if !errors.Is(err, prompt.ErrAborted) {
		t.Fatalf("err = %v, want ErrAborted", err)
	}
}
