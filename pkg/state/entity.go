package state

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Entity is a finalized domain record: an opaque identity plus a set of
// field values that satisfied the form's rule set at conversion time. The
// only constructor is Form.ToEntity, so every entity in circulation passed
// validation; there is no way to build one from partial data.
type Entity[F any] struct {
	id     string
	fields F
}

// ID returns the opaque identity the entity was converted with.
func (e Entity[F]) ID() string { return e.id }

// Fields returns the domain field values.
func (e Entity[F]) Fields() F { return e.fields }

// MarshalJSON serialises the entity for handoff to a persistence
// collaborator. There is deliberately no UnmarshalJSON: decoding would
// bypass the valid-by-construction guarantee, so stored entities re-enter
// through Form.FromEntity on a snapshot instead.
func (e Entity[F]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID     string `json:"id"`
		Fields F      `json:"fields"`
	}{ID: e.id, Fields: e.fields})
}

// NewID mints a fresh opaque identity. Callers with their own identity
// scheme pass whatever string they like to ToEntity instead.
func NewID() string {
	return uuid.NewString()
}
