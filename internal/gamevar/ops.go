package gamevar

import (
	"fmt"
	"math"

	"github.com/hexmill/hexmill/internal/hexgrid"
)

func intUnary(x supplier, name string) (supplier, error) {
	var op func(int) any
	switch name {
	case "-", "neg", "negate", "negative":
		op = func(v int) any { return -v }
	case "abs", "absolute":
		op = func(v int) any {
			if v < 0 {
				return -v
			}
			return v
		}
	case "sq", "sqr", "square", "squared":
		op = func(v int) any { return v * v }
	case "sqrt", "squareroot", "square_root", "square-root":
		op = func(v int) any { return int(math.Sqrt(float64(v))) }
	case "bool", "boolean":
		op = func(v int) any {
			if v != 0 {
				return 1
			}
			return 0
		}
	case "not", "!":
		op = func(v int) any {
			if v == 0 {
				return 1
			}
			return 0
		}
	default:
		return supplier{}, fmt.Errorf("unknown operation: %s", name)
	}
	return supplier{kind: kindInt, eval: func(s hexgrid.GameState) any {
		v, ok := AsInt(x.eval(s))
		if !ok {
			return nil
		}
		return op(v)
	}}, nil
}

func floatUnary(x supplier, name string) (supplier, error) {
	var op func(float64) any
	switch name {
	case "-", "neg", "negate", "negative":
		op = func(v float64) any { return -v }
	case "abs", "absolute":
		op = func(v float64) any { return math.Abs(v) }
	case "sq", "sqr", "square", "squared":
		op = func(v float64) any { return v * v }
	case "sqrt", "squareroot", "square_root", "square-root":
		op = func(v float64) any { return math.Sqrt(v) }
	default:
		return supplier{}, fmt.Errorf("unknown operation: %s", name)
	}
	return supplier{kind: kindFloat, eval: func(s hexgrid.GameState) any {
		v, ok := AsFloat(x.eval(s))
		if !ok {
			return nil
		}
		return op(v)
	}}, nil
}

func intBinary(a, b supplier, name string) (supplier, error) {
	var op func(int, int) any
	switch name {
	case "+", "adds", "add", "plus", "addition":
		op = func(x, y int) any { return x + y }
	case "-", "subtracts", "subtract", "minus", "subtraction":
		op = func(x, y int) any { return x - y }
	case "*", "multiplies", "multiply", "times", "time", "multiplication":
		op = func(x, y int) any { return x * y }
	case "/", "divides", "divide", "division":
		op = func(x, y int) any {
			if y == 0 {
				return nil
			}
			return x / y
		}
	case "%", "mod", "modulo", "modulos", "remainder":
		op = func(x, y int) any {
			if y == 0 {
				return nil
			}
			return x % y
		}
	case "^", "pow", "power", "exp", "exponent":
		op = func(x, y int) any { return int(math.Pow(float64(x), float64(y))) }
	case "max", "maximum":
		op = func(x, y int) any {
			if x > y {
				return x
			}
			return y
		}
	case "min", "minimum":
		op = func(x, y int) any {
			if x < y {
				return x
			}
			return y
		}
	case "avg", "average", "mean":
		op = func(x, y int) any { return (x + y) / 2 }
	case "equals", "equal", "==", "is", "same":
		op = func(x, y int) any { return boolInt(x == y) }
	case "not_equals", "not_equal", "!=", "not", "is_not", "not_same":
		op = func(x, y int) any { return boolInt(x != y) }
	default:
		return supplier{}, fmt.Errorf("unknown operation: %s", name)
	}
	return supplier{kind: kindInt, eval: func(s hexgrid.GameState) any {
		x, ok1 := AsInt(a.eval(s))
		y, ok2 := AsInt(b.eval(s))
		if !ok1 || !ok2 {
			return nil
		}
		return op(x, y)
	}}, nil
}

func floatBinary(a, b supplier, name string) (supplier, error) {
	var op func(float64, float64) any
	switch name {
	case "+", "adds", "add", "plus", "addition":
		op = func(x, y float64) any { return x + y }
	case "-", "subtracts", "subtract", "minus", "subtraction":
		op = func(x, y float64) any { return x - y }
	case "*", "multiplies", "multiply", "times", "time", "multiplication":
		op = func(x, y float64) any { return x * y }
	case "/", "divides", "divide", "division":
		op = func(x, y float64) any {
			if y == 0 {
				return nil
			}
			return x / y
		}
	case "%", "mod", "modulo", "modulos", "remainder":
		op = func(x, y float64) any {
			if y == 0 {
				return nil
			}
			return math.Mod(x, y)
		}
	case "^", "pow", "power", "exp", "exponent":
		op = func(x, y float64) any { return math.Pow(x, y) }
	case "max", "maximum":
		op = func(x, y float64) any { return math.Max(x, y) }
	case "min", "minimum":
		op = func(x, y float64) any { return math.Min(x, y) }
	case "avg", "average", "mean":
		op = func(x, y float64) any { return (x + y) / 2 }
	case "equals", "equal", "==", "is", "same":
		op = func(x, y float64) any { return boolFloat(ulpEqual(x, y)) }
	case "equals_exact", "equal_exact", "===", "is_exact", "same_exact":
		op = func(x, y float64) any { return boolFloat(x == y) }
	case "not_equals", "not_equal", "!=", "not", "is_not", "not_same":
		op = func(x, y float64) any { return boolFloat(!ulpEqual(x, y)) }
	default:
		return supplier{}, fmt.Errorf("unknown operation: %s", name)
	}
	return supplier{kind: kindFloat, eval: func(s hexgrid.GameState) any {
		x, ok1 := AsFloat(a.eval(s))
		y, ok2 := AsFloat(b.eval(s))
		if !ok1 || !ok2 {
			return nil
		}
		return op(x, y)
	}}, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// ulpEqual compares with a tolerance of one ULP of the larger magnitude,
// so accumulated float error does not break equality checks.
func ulpEqual(x, y float64) bool {
	m := math.Max(math.Abs(x), math.Abs(y))
	return math.Abs(x-y) < ulp(m)
}

func ulp(x float64) float64 {
	return math.Nextafter(x, math.Inf(1)) - x
}
