package hooks

import "strings"

// Condition grammar: a single comparison "lhs <op> rhs". Operators live
// in a small registry so new comparisons can be added without touching
// call sites. An expression that contains no registered operator is not
// an error: it evaluates true (permissiveDefault), so hooks with
// free-form annotations in their condition field still run.

// permissiveDefault is the documented fallback for expressions the
// grammar does not understand.
const permissiveDefault = true

type operator struct {
	token string
	eval  func(lhs, rhs string, ctx *Context) bool
}

var operators = []operator{
	{token: "==", eval: evalEquals},
}

// contextKeys maps recognized lhs identifiers to context accessors.
// Unrecognized keys compare false.
var contextKeys = map[string]func(*Context) string{
	"event":      func(c *Context) string { return c.Event },
	"session_id": func(c *Context) string { return c.SessionID },
}

// EvaluateCondition decides whether a hook should run for the given
// context. It is total: every input maps to a boolean.
func EvaluateCondition(condition string, ctx *Context) bool {
	for _, op := range operators {
		if strings.Contains(condition, op.token) {
			parts := strings.Split(condition, op.token)
			if len(parts) != 2 {
				// Multiple operators in one expression is not a
				// supported form; treat as non-matching.
				return false
			}
			lhs := strings.TrimSpace(parts[0])
			rhs := strings.Trim(strings.TrimSpace(parts[1]), `'"`)
			return op.eval(lhs, rhs, ctx)
		}
	}
	return permissiveDefault
}

func evalEquals(lhs, rhs string, ctx *Context) bool {
	accessor, ok := contextKeys[lhs]
	if !ok {
		return false
	}
	return accessor(ctx) == rhs
}

// shouldRun applies the condition gate for a hook definition. A hook
// with no condition, or a disabled one, is always runnable.
func shouldRun(def *Definition, ctx *Context) bool {
	cond := def.Condition
	if cond == nil || !cond.Enabled {
		return true
	}
	return EvaluateCondition(cond.Condition, ctx)
}
