package rules

import (
	"cmp"
	"fmt"
	"regexp"
	"strings"
)

// Option customises a built-in rule.
type Option func(*config)

type config struct {
	message  string
	skipZero bool
}

// WithMessage overrides the default message a built-in rule reports.
func WithMessage(message string) Option {
	return func(c *config) {
		c.message = strings.TrimSpace(message)
	}
}

// Optional makes Min and Max treat the zero value as "not filled in" and
// pass it, the numeric counterpart of how the string rules skip empties.
// String rules ignore the option; they already skip empty values.
func Optional() Option {
	return func(c *config) {
		c.skipZero = true
	}
}

func applyOptions(defaultMessage string, opts []Option) config {
	cfg := config{message: defaultMessage}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.message == "" {
		cfg.message = defaultMessage
	}
	return cfg
}

// Required reports an error when the accessed string is empty or whitespace.
func Required[F any](field string, get func(F) string, opts ...Option) Rule[F] {
	cfg := applyOptions("is required", opts)
	return Func[F](func(fields F) Errors {
		if strings.TrimSpace(get(fields)) == "" {
			return Errors{field: {cfg.message}}
		}
		return nil
	})
}

// MinLength reports an error when the accessed string is shorter than min
// runes. Empty values pass so optional fields stay optional; combine with
// Required for mandatory ones.
func MinLength[F any](field string, min int, get func(F) string, opts ...Option) Rule[F] {
	cfg := applyOptions(fmt.Sprintf("must be at least %d characters", min), opts)
	return Func[F](func(fields F) Errors {
		value := get(fields)
		if value == "" {
			return nil
		}
		if len([]rune(value)) < min {
			return Errors{field: {cfg.message}}
		}
		return nil
	})
}

// MaxLength reports an error when the accessed string is longer than max
// runes.
func MaxLength[F any](field string, max int, get func(F) string, opts ...Option) Rule[F] {
	cfg := applyOptions(fmt.Sprintf("must be at most %d characters", max), opts)
	return Func[F](func(fields F) Errors {
		if len([]rune(get(fields))) > max {
			return Errors{field: {cfg.message}}
		}
		return nil
	})
}

// Pattern reports an error when the accessed string does not match the given
// regular expression. A pattern that fails to compile makes the rule report
// the configuration problem on every non-empty input instead of failing
// construction, keeping rule evaluation total.
func Pattern[F any](field, pattern string, get func(F) string, opts ...Option) Rule[F] {
	cfg := applyOptions("has an invalid format", opts)
	re, err := regexp.Compile(pattern)
	return Func[F](func(fields F) Errors {
		value := get(fields)
		if value == "" {
			return nil
		}
		if err != nil {
			return Errors{field: {fmt.Sprintf("cannot be checked: invalid pattern %q", pattern)}}
		}
		if !re.MatchString(value) {
			return Errors{field: {cfg.message}}
		}
		return nil
	})
}

// Min reports an error when the accessed value is below the bound. The zero
// value fails a positive bound unless Optional is set, since a number carries
// no notion of "unanswered" the way an empty string does.
func Min[F any, N cmp.Ordered](field string, bound N, get func(F) N, opts ...Option) Rule[F] {
	cfg := applyOptions(fmt.Sprintf("must be at least %v", bound), opts)
	return Func[F](func(fields F) Errors {
		value := get(fields)
		var zero N
		if cfg.skipZero && value == zero {
			return nil
		}
		if value < bound {
			return Errors{field: {cfg.message}}
		}
		return nil
	})
}

// Max reports an error when the accessed value is above the bound. Optional
// skips the zero value, matching Min.
func Max[F any, N cmp.Ordered](field string, bound N, get func(F) N, opts ...Option) Rule[F] {
	cfg := applyOptions(fmt.Sprintf("must be at most %v", bound), opts)
	return Func[F](func(fields F) Errors {
		value := get(fields)
		var zero N
		if cfg.skipZero && value == zero {
			return nil
		}
		if value > bound {
			return Errors{field: {cfg.message}}
		}
		return nil
	})
}
