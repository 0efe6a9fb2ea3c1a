// Package rules implements the validation side of the form state container:
// pure, deterministic, total functions from a fields struct to an error
// mapping. Rules never return Go errors and never panic; a rule that cannot
// run (bad pattern, bad expression) reports the problem through the mapping
// itself so callers always receive a usable result.
package rules

// Rule validates a fields struct and reports problems as an error mapping.
// Implementations must be pure: no side effects, same output for the same
// input, and a (possibly nil) mapping for every input.
type Rule[F any] interface {
	Validate(fields F) Errors
}

// Func adapts a plain function into a Rule.
type Func[F any] func(fields F) Errors

// Validate implements Rule.
func (fn Func[F]) Validate(fields F) Errors {
	if fn == nil {
		return nil
	}
	return fn(fields)
}

// Set is an ordered collection of rules evaluated together. The zero value is
// usable and reports every input as valid. Sets are values; With returns a
// grown copy and never mutates the receiver.
type Set[F any] struct {
	rules []Rule[F]
}

// NewSet builds a Set from the given rules, skipping nils.
func NewSet[F any](rules ...Rule[F]) Set[F] {
	return Set[F]{}.With(rules...)
}

// With returns a new Set containing the receiver's rules followed by the
// given ones. Nil rules are dropped.
func (s Set[F]) With(rules ...Rule[F]) Set[F] {
	combined := make([]Rule[F], 0, len(s.rules)+len(rules))
	combined = append(combined, s.rules...)
	for _, rule := range rules {
		if rule == nil {
			continue
		}
		combined = append(combined, rule)
	}
	return Set[F]{rules: combined}
}

// Len reports how many rules the set carries.
func (s Set[F]) Len() int { return len(s.rules) }

// Validate runs every rule against the fields struct and merges the results
// into one normalised mapping. A nil result means the fields are valid.
func (s Set[F]) Validate(fields F) Errors {
	if len(s.rules) == 0 {
		return nil
	}
	mappings := make([]Errors, 0, len(s.rules))
	for _, rule := range s.rules {
		if mapping := rule.Validate(fields); len(mapping) > 0 {
			mappings = append(mappings, mapping)
		}
	}
	return Merge(mappings...)
}
