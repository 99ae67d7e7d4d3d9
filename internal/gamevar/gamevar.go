// Package gamevar evaluates the arithmetic sub-language used inside
// ${...} variable expressions. An expression is compiled into a Func
// that reads a game state and yields an int, a float64, a *hexgrid.Piece,
// or nil when the value is undefined (division by zero, empty queue,
// unparsable input).
package gamevar

import (
	"math"
	"strconv"
	"strings"

	"github.com/hexmill/hexmill/internal/hexgrid"
)

// Func computes a variable value from a game state. The result is one
// of int, float64, *hexgrid.Piece, or nil.
type Func func(hexgrid.GameState) any

type kind int

const (
	kindInt kind = iota
	kindFloat
	kindPiece
)

// supplier pairs an evaluator with its statically known result kind,
// which drives operator resolution during parsing.
type supplier struct {
	kind kind
	eval Func
}

func constInt(v int) supplier {
	return supplier{kind: kindInt, eval: func(hexgrid.GameState) any { return v }}
}

func constFloat(v float64) supplier {
	return supplier{kind: kindFloat, eval: func(hexgrid.GameState) any { return v }}
}

// named resolves a predefined supplier name or a numeric literal.
func named(name string) (supplier, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "zero", "0":
		return constInt(0), true
	case "one", "1":
		return constInt(1), true
	case "pi", "π":
		return constFloat(math.Pi), true
	case "hex", "6":
		return constInt(6), true
	case "length", "len":
		return supplier{kind: kindInt, eval: func(s hexgrid.GameState) any {
			if s == nil || s.Engine() == nil {
				return 0
			}
			return s.Engine().Length()
		}}, true
	case "radius", "r":
		return supplier{kind: kindInt, eval: func(s hexgrid.GameState) any {
			if s == nil || s.Engine() == nil {
				return 0
			}
			return s.Engine().Radius()
		}}, true
	case "lines", "l":
		return supplier{kind: kindInt, eval: func(s hexgrid.GameState) any {
			if s == nil || s.Engine() == nil {
				return 0
			}
			return s.Engine().Radius()*2 - 1
		}}, true
	case "size", "s":
		return supplier{kind: kindInt, eval: func(s hexgrid.GameState) any {
			if s == nil {
				return 0
			}
			return len(s.Queue())
		}}, true
	case "first":
		return supplier{kind: kindPiece, eval: func(s hexgrid.GameState) any {
			if s == nil || len(s.Queue()) == 0 {
				return nil
			}
			return s.Queue()[0]
		}}, true
	case "last":
		return supplier{kind: kindPiece, eval: func(s hexgrid.GameState) any {
			if s == nil || len(s.Queue()) == 0 {
				return nil
			}
			q := s.Queue()
			return q[len(q)-1]
		}}, true
	case "score":
		return supplier{kind: kindInt, eval: func(s hexgrid.GameState) any {
			if s == nil {
				return 0
			}
			return s.Score()
		}}, true
	case "turn", "turns":
		return supplier{kind: kindInt, eval: func(s hexgrid.GameState) any {
			if s == nil {
				return 0
			}
			return s.Turn()
		}}, true
	case "fill", "filled", "percentfilled", "percent_filled", "percent-filled":
		return supplier{kind: kindFloat, eval: func(s hexgrid.GameState) any {
			if s == nil || s.Engine() == nil {
				return 0.0
			}
			return s.Engine().PercentFilled()
		}}, true
	case "entropy":
		return supplier{kind: kindFloat, eval: func(s hexgrid.GameState) any {
			if s == nil || s.Engine() == nil {
				return 0.0
			}
			return s.Engine().Entropy()
		}}, true
	}
	if v, err := strconv.Atoi(name); err == nil {
		return constInt(v), true
	}
	if v, err := strconv.ParseFloat(name, 64); err == nil {
		return constFloat(v), true
	}
	return supplier{}, false
}

// AsInt coerces an evaluation result to an int. Pieces coerce through
// their byte pattern.
func AsInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case float64:
		return int(t), true
	case *hexgrid.Piece:
		if t == nil {
			return 0, false
		}
		return int(t.ToByte()), true
	}
	return 0, false
}

// AsFloat coerces an evaluation result to a float64. Pieces coerce
// through their byte pattern.
func AsFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case float64:
		return t, true
	case *hexgrid.Piece:
		if t == nil {
			return 0, false
		}
		return float64(t.ToByte()), true
	}
	return 0, false
}

// AsPiece coerces an evaluation result to a piece, or nil.
func AsPiece(v any) *hexgrid.Piece {
	if p, ok := v.(*hexgrid.Piece); ok {
		return p
	}
	return nil
}

func castIntUnknown(s supplier) supplier {
	return supplier{kind: kindInt, eval: func(state hexgrid.GameState) any {
		v, ok := AsInt(s.eval(state))
		if !ok {
			return nil
		}
		return v
	}}
}

func castFloatUnknown(s supplier) supplier {
	return supplier{kind: kindFloat, eval: func(state hexgrid.GameState) any {
		v, ok := AsFloat(s.eval(state))
		if !ok {
			return nil
		}
		return v
	}}
}

// patternOf maps a piece value to its byte pattern. A nil piece reads
// as -1; a non-piece value is undefined.
func patternOf(s supplier) supplier {
	return supplier{kind: kindInt, eval: func(state hexgrid.GameState) any {
		v := s.eval(state)
		if v == nil {
			return -1
		}
		p, ok := v.(*hexgrid.Piece)
		if !ok {
			return nil
		}
		if p == nil {
			return -1
		}
		return int(p.ToByte())
	}}
}

// pieceOf maps a byte pattern in [0, 127] to a piece with the default
// occupied color. Out-of-range or non-numeric values read as nil.
func pieceOf(s supplier) supplier {
	return supplier{kind: kindPiece, eval: func(state hexgrid.GameState) any {
		n, ok := AsInt(s.eval(state))
		if !ok || n < 0 || n > 127 {
			return nil
		}
		p, err := hexgrid.PieceFromByte(byte(n), hexgrid.ColorOccupied)
		if err != nil {
			return nil
		}
		return p
	}}
}
