package goalexpr

import (
	"github.com/hexmill/hexmill/internal/gamevar"
	"github.com/hexmill/hexmill/internal/hexgrid"
	"github.com/hexmill/hexmill/internal/scripting"
)

// VarType enumerates the value types a named achievement variable may
// declare. Only integer, double, and piece variables can be referenced
// from an expression; cell and engine declarations exist for
// completeness and are rejected at compile time.
type VarType int

const (
	VarInt VarType = iota
	VarDouble
	VarPiece
	VarCell
	VarEngine
)

func (t VarType) String() string {
	switch t {
	case VarInt:
		return "integer"
	case VarDouble:
		return "double"
	case VarPiece:
		return "piece"
	case VarCell:
		return "cell"
	case VarEngine:
		return "engine"
	}
	return "invalid"
}

// Variable is a named value recomputed from the game state between goal
// evaluations. The owner calls Update before each Test; the two must
// not run concurrently on the same achievement instance.
type Variable struct {
	typ    VarType
	symbol string
	eval   gamevar.Func
	value  any
}

// NewVariable parses the symbol and binds it to the declared type.
// Plain symbols go through the arithmetic evaluator and "js:" bodies
// through the script VM; either way the symbol must compile even
// though later evaluation is total.
func NewVariable(symbol string, typ VarType) (*Variable, error) {
	eval, err := scripting.ParseStrict(symbol)
	if err != nil {
		return nil, err
	}
	return &Variable{typ: typ, symbol: symbol, eval: eval}, nil
}

func (v *Variable) Type() VarType { return v.typ }

func (v *Variable) Symbol() string { return v.symbol }

// Update recomputes the cached value from the snapshot. Values that
// cannot be coerced to the declared type clear the cache, which makes
// any predicate reading the variable false until the next update.
func (v *Variable) Update(s hexgrid.GameState) {
	val := v.eval(s)
	switch v.typ {
	case VarInt:
		if i, ok := coerceInt(val); ok {
			v.value = i
			return
		}
	case VarDouble:
		if f, ok := coerceFloat(val); ok {
			v.value = f
			return
		}
	case VarPiece:
		if p, ok := val.(*hexgrid.Piece); ok && p != nil {
			v.value = p
			return
		}
	}
	v.value = nil
}

func (v *Variable) intValue() (int, bool) {
	i, ok := v.value.(int)
	return i, ok
}

func (v *Variable) floatValue() (float64, bool) {
	f, ok := v.value.(float64)
	return f, ok
}

func (v *Variable) pieceValue() *hexgrid.Piece {
	p, _ := v.value.(*hexgrid.Piece)
	return p
}

// coerceInt narrows a dynamic gamevar value to an integer. Doubles
// truncate; anything else, including pieces, does not coerce.
func coerceInt(val any) (int, bool) {
	switch v := val.(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	}
	return 0, false
}

func coerceFloat(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}
