package rules

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Expr builds a cross-field rule from a boolean expression evaluated against
// the fields struct, e.g. Expr[signupFields]("confirm", `Confirm == Password`,
// "must match the password"). The expression is compiled once at
// construction; compile and runtime failures surface as messages on the
// target field so the rule stays total like every other rule.
func Expr[F any](field, expression, message string) Rule[F] {
	message = strings.TrimSpace(message)
	if message == "" {
		message = "is invalid"
	}

	var zero F
	program, compileErr := expr.Compile(expression, expr.Env(zero), expr.AsBool())

	return Func[F](func(fields F) Errors {
		if compileErr != nil {
			return Errors{field: {configMessage(expression, compileErr)}}
		}
		ok, err := runBool(program, fields)
		if err != nil {
			return Errors{field: {configMessage(expression, err)}}
		}
		if !ok {
			return Errors{field: {message}}
		}
		return nil
	})
}

func runBool[F any](program *vm.Program, fields F) (bool, error) {
	result, err := expr.Run(program, fields)
	if err != nil {
		return false, err
	}
	ok, isBool := result.(bool)
	if !isBool {
		return false, fmt.Errorf("expression yielded %T, want bool", result)
	}
	return ok, nil
}

func configMessage(expression string, err error) string {
	summary := err.Error()
	if idx := strings.IndexByte(summary, '\n'); idx >= 0 {
		summary = summary[:idx]
	}
	return fmt.Sprintf("cannot be checked: rule %q: %s", expression, strings.TrimSpace(summary))
}
