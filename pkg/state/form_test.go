package state_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/rules"
	"github.com/goliatone/go-formstate/pkg/state"
)

type contactFields struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// contactPatch lists the overridable fields as pointers; absent fields carry
// over unchanged.
type contactPatch struct {
	Name  *string
	Email *string
}

func (p contactPatch) Apply(f contactFields) contactFields {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Email != nil {
		f.Email = *p.Email
	}
	return f
}

func strPtr(s string) *string { return &s }

func contactForm() state.Form[contactFields] {
	return state.New(rules.NewSet(
		rules.Required("name", func(f contactFields) string { return f.Name }),
		rules.Required("email", func(f contactFields) string { return f.Email }),
		rules.Email("email", func(f contactFields) string { return f.Email }),
	))
}

func snapshotDiff(want, got state.Snapshot[contactFields]) string {
	return cmp.Diff(want, got, cmp.AllowUnexported(state.Snapshot[contactFields]{}))
}

func TestEmpty_ReportsRequiredFields(t *testing.T) {
	snap := contactForm().Empty()

	if snap.Valid() {
		t.Fatal("empty snapshot with required fields must not be valid")
	}
	if snap.Dirty() {
		t.Fatal("empty snapshot must not be dirty")
	}
	want := rules.Errors{
		"name":  {"is required"},
		"email": {"is required"},
	}
	if diff := cmp.Diff(want, snap.Errors()); diff != "" {
		t.Fatalf("error mapping mismatch (-want +got):\n%s", diff)
	}
}

func TestTransition_LeavesInputUnchanged(t *testing.T) {
	form := contactForm()
	before := form.Empty()
	witness := before

	after := form.Transition(before, contactPatch{Name: strPtr("Jane")})

	if diff := snapshotDiff(witness, before); diff != "" {
		t.Fatalf("input snapshot changed (-want +got):\n%s", diff)
	}
	if after.Fields().Name != "Jane" {
		t.Fatalf("name = %q, want %q", after.Fields().Name, "Jane")
	}
	if !after.Dirty() {
		t.Fatal("transition must mark the successor dirty")
	}
}

func TestTransition_PartialFillKeepsRemainingErrors(t *testing.T) {
	form := contactForm()
	snap := form.Transition(form.Empty(), contactPatch{Name: strPtr("Jane")})

	if snap.Valid() {
		t.Fatal("snapshot with a missing required field must not be valid")
	}
	if got := snap.ErrorsFor("name"); got != nil {
		t.Fatalf("name should carry no errors, got %v", got)
	}
	if got := snap.ErrorsFor("email"); len(got) == 0 {
		t.Fatal("email should still be reported as missing")
	}
}

func TestTransition_EmptyPatchIsIdempotent(t *testing.T) {
	form := contactForm()
	once := form.Transition(form.Empty(), contactPatch{Name: strPtr("Jane")})
	twice := form.Transition(once, contactPatch{})

	if diff := snapshotDiff(once, twice); diff != "" {
		t.Fatalf("empty patch changed the snapshot (-want +got):\n%s", diff)
	}
}

func TestValidityMatchesErrorMapping(t *testing.T) {
	form := contactForm()
	snapshots := []state.Snapshot[contactFields]{
		form.Empty(),
		form.Transition(form.Empty(), contactPatch{Name: strPtr("Jane")}),
		form.Transition(form.Empty(), contactPatch{
			Name:  strPtr("Jane"),
			Email: strPtr("jane@example.com"),
		}),
	}
	for i, snap := range snapshots {
		if snap.Valid() != snap.Errors().Empty() {
			t.Fatalf("snapshot %d: valid = %v but errors = %v", i, snap.Valid(), snap.Errors())
		}
	}
}

func TestToEntity_FullFillScenario(t *testing.T) {
	form := contactForm()
	snap := form.Transition(form.Empty(), contactPatch{Name: strPtr("Jane")})
	snap = form.Transition(snap, contactPatch{Email: strPtr("jane@example.com")})

	if !snap.Valid() {
		t.Fatalf("fully populated snapshot should be valid, errors: %v", snap.Errors())
	}

	entity, err := form.ToEntity(snap, "42")
	if err != nil {
		t.Fatalf("ToEntity: %v", err)
	}
	if entity.ID() != "42" {
		t.Fatalf("entity id = %q, want %q", entity.ID(), "42")
	}
	want := contactFields{Name: "Jane", Email: "jane@example.com"}
	if diff := cmp.Diff(want, entity.Fields()); diff != "" {
		t.Fatalf("entity fields mismatch (-want +got):\n%s", diff)
	}
}

func TestToEntity_GatesOnValidity(t *testing.T) {
	form := contactForm()
	snap := form.Transition(form.Empty(), contactPatch{Name: strPtr("Jane")})

	entity, err := form.ToEntity(snap, "42")
	if !errors.Is(err, state.ErrInvalidSnapshot) {
		t.Fatalf("err = %v, want ErrInvalidSnapshot", err)
	}
	if entity.ID() != "" {
		t.Fatalf("failed conversion must not return a populated entity, got id %q", entity.ID())
	}
}

func TestToEntity_RequiresIdentity(t *testing.T) {
	form := contactForm()
	snap := form.Transition(form.Empty(), contactPatch{
		Name:  strPtr("Jane"),
		Email: strPtr("jane@example.com"),
	})
	if _, err := form.ToEntity(snap, "   "); err == nil {
		t.Fatal("expected an error for a blank id")
	}
}

func TestFromEntity_RoundTripResetsUIFlags(t *testing.T) {
	form := contactForm()
	snap := form.Transition(form.Empty(), contactPatch{
		Name:  strPtr("Jane"),
		Email: strPtr("jane@example.com"),
	})
	snap = snap.WithSubmitting(true)

	entity, err := form.ToEntity(snap, state.NewID())
	if err != nil {
		t.Fatalf("ToEntity: %v", err)
	}

	loaded := form.FromEntity(entity)
	if diff := cmp.Diff(snap.Fields(), loaded.Fields()); diff != "" {
		t.Fatalf("domain fields mismatch (-want +got):\n%s", diff)
	}
	if !loaded.Valid() {
		t.Fatalf("entity fields should validate, errors: %v", loaded.Errors())
	}
	if loaded.Dirty() || loaded.Submitting() {
		t.Fatal("UI flags must reset on load")
	}
}

func TestRestore_GatesLikeToEntity(t *testing.T) {
	form := contactForm()

	entity, err := form.Restore("stored-1", contactFields{Name: "Jane", Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if entity.ID() != "stored-1" {
		t.Fatalf("entity id = %q, want %q", entity.ID(), "stored-1")
	}

	if _, err := form.Restore("stored-2", contactFields{Name: "Jane"}); !errors.Is(err, state.ErrInvalidSnapshot) {
		t.Fatalf("err = %v, want ErrInvalidSnapshot", err)
	}
}

func TestWithSubmitting_FlipsOnlyTheFlag(t *testing.T) {
	form := contactForm()
	snap := form.Transition(form.Empty(), contactPatch{Name: strPtr("Jane")})

	submitting := snap.WithSubmitting(true)
	if !submitting.Submitting() {
		t.Fatal("flag should be set")
	}
	if diff := snapshotDiff(snap, submitting.WithSubmitting(false)); diff != "" {
		t.Fatalf("round-tripping the flag changed other state (-want +got):\n%s", diff)
	}
	if snap.Submitting() {
		t.Fatal("input snapshot changed")
	}
}

func TestSnapshot_ErrorsAccessorDoesNotAlias(t *testing.T) {
	form := contactForm()
	snap := form.Empty()

	stolen := snap.Errors()
	stolen.Add("name", "mutated")
	stolen.Add("injected", "mutated")

	want := rules.Errors{
		"name":  {"is required"},
		"email": {"is required"},
	}
	if diff := cmp.Diff(want, snap.Errors()); diff != "" {
		t.Fatalf("snapshot errors changed through accessor (-want +got):\n%s", diff)
	}
}

func TestEntity_MarshalJSON(t *testing.T) {
	form := contactForm()
	snap := form.Transition(form.Empty(), contactPatch{
		Name:  strPtr("Jane"),
		Email: strPtr("jane@example.com"),
	})
	entity, err := form.ToEntity(snap, "42")
	if err != nil {
		t.Fatalf("ToEntity: %v", err)
	}

	payload, err := json.Marshal(entity)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":"42","fields":{"name":"Jane","email":"jane@example.com"}}`
	if string(payload) != want {
		t.Fatalf("payload = %s, want %s", payload, want)
	}
}

func TestNewID_MintsUniqueIdentities(t *testing.T) {
	if state.NewID() == state.NewID() {
		t.Fatal("expected unique ids")
	}
	if state.NewID() == "" {
		t.Fatal("expected a non-empty id")
	}
}
