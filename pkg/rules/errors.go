package rules

import (
	"sort"
	"strings"
)

// FormField is the pseudo field name used for messages that do not belong to
// any single field, such as a rule set that could not run at all.
const FormField = "_form"

// Errors maps field names to human-readable validation messages. An empty (or
// nil) mapping means the validated value is acceptable; validity is always
// derived from this mapping, never stored independently of it.
type Errors map[string][]string

// Empty reports whether the mapping carries no messages at all.
func (e Errors) Empty() bool {
	for _, messages := range e {
		if len(messages) > 0 {
			return false
		}
	}
	return true
}

// Add appends a message for a field, allocating the mapping on first use. The
// receiver must be addressable through a non-nil map; use Merge for combining
// whole mappings.
func (e Errors) Add(field, message string) {
	if e == nil {
		return
	}
	e[field] = append(e[field], message)
}

// Fields returns the sorted field names that currently carry messages.
func (e Errors) Fields() []string {
	if len(e) == 0 {
		return nil
	}
	fields := make([]string, 0, len(e))
	for field, messages := range e {
		if len(messages) == 0 {
			continue
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Clone returns a deep copy so holders of a snapshot can never alias each
// other's mappings.
func (e Errors) Clone() Errors {
	if len(e) == 0 {
		return nil
	}
	out := make(Errors, len(e))
	for field, messages := range e {
		out[field] = append([]string(nil), messages...)
	}
	return out
}

// Merge combines mappings into a fresh normalised mapping. Later arguments
// append after earlier ones; duplicates within a field collapse to the first
// occurrence.
func Merge(mappings ...Errors) Errors {
	combined := make(Errors)
	for _, mapping := range mappings {
		for field, messages := range mapping {
			combined[field] = append(combined[field], messages...)
		}
	}
	return Normalize(combined)
}

// Normalize trims whitespace, drops empty messages and empty field keys, and
// removes duplicate messages per field while preserving their order. The
// result is nil when nothing survives, so Empty and cmp comparisons stay
// stable.
func Normalize(e Errors) Errors {
	if len(e) == 0 {
		return nil
	}
	out := make(Errors, len(e))
	for field, messages := range e {
		key := strings.TrimSpace(field)
		if key == "" {
			continue
		}
		cleaned := normalizeMessages(messages)
		if len(cleaned) == 0 {
			continue
		}
		out[key] = append(out[key], cleaned...)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
