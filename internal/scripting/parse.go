package scripting

import (
	"strings"

	"github.com/hexmill/hexmill/internal/gamevar"
	"github.com/hexmill/hexmill/internal/hexgrid"
)

// Prefix marks a variable body as a JavaScript program.
const Prefix = "js:"

// IsScript reports whether a variable body routes to the JavaScript VM.
func IsScript(expr string) bool {
	return strings.HasPrefix(strings.TrimSpace(expr), Prefix)
}

// ParseStrict compiles a variable body. Bodies carrying the "js:"
// prefix compile on the embedded VM; everything else goes through the
// arithmetic evaluator. Compile failures surface as errors.
func ParseStrict(expr string) (gamevar.Func, error) {
	if body, ok := strings.CutPrefix(strings.TrimSpace(expr), Prefix); ok {
		script, err := CompileScript(body)
		if err != nil {
			return nil, err
		}
		return script.Eval, nil
	}
	return gamevar.ParseStrict(expr)
}

// Parse is the total form of ParseStrict: a body that does not compile
// evaluates to nil forever.
func Parse(expr string) gamevar.Func {
	fn, err := ParseStrict(expr)
	if err != nil {
		return func(hexgrid.GameState) any { return nil }
	}
	return fn
}
