package goalexpr

import "github.com/hexmill/hexmill/internal/hexgrid"

// Provider evaluation. The boolean result reports whether a value was
// produced; variables that are absent or of the wrong type produce
// nothing, which every consumer treats as a failed test.

func (n *node) evalInt(ev *env) (int, bool) {
	switch n.op {
	case "const":
		return n.intVal, true
	case "var":
		if v := ev.ctx.Vars[n.varName]; v != nil {
			return v.intValue()
		}
	case "anon":
		return coerceInt(n.varEval(ev.state))
	}
	return 0, false
}

func (n *node) evalDouble(ev *env) (float64, bool) {
	switch n.op {
	case "const":
		return n.floatVal, true
	case "var":
		if v := ev.ctx.Vars[n.varName]; v != nil {
			return v.floatValue()
		}
	case "anon":
		return coerceFloat(n.varEval(ev.state))
	}
	return 0, false
}

func (n *node) evalPiece(ev *env) *hexgrid.Piece {
	switch n.op {
	case "const":
		return n.pieceVal
	case "var":
		if v := ev.ctx.Vars[n.varName]; v != nil {
			return v.pieceValue()
		}
	case "anon":
		p, _ := n.varEval(ev.state).(*hexgrid.Piece)
		return p
	}
	return nil
}

func (n *node) evalEngine(ev *env) *hexgrid.Engine {
	if n.op == "const" {
		return n.engineVal
	}
	return nil
}

func (n *node) evalCell(ev *env) *hexgrid.Block {
	if n.op == "const" {
		return n.cellVal
	}
	return nil
}

// testCell evaluates a cell predicate node against one block.
func (n *node) testCell(ev *env, b *hexgrid.Block) bool {
	switch n.op {
	case "false":
		return false
	case "true":
		return true
	case "state":
		return b.State()
	case "is":
		other := n.args[0].evalCell(ev)
		return other != nil && b.SamePosition(other) &&
			b.Color() == other.Color() && b.State() == other.State()
	case "color":
		c, ok := n.args[0].evalInt(ev)
		return ok && b.Color() == c
	case "at":
		i, iok := n.args[0].evalInt(ev)
		k, kok := n.args[1].evalInt(ev)
		return iok && kok && b.LineI() == i && b.LineK() == k
	case "or":
		return n.args[0].testCell(ev, b) || n.args[1].testCell(ev, b)
	case "and":
		return n.args[0].testCell(ev, b) && n.args[1].testCell(ev, b)
	case "not":
		return !n.args[0].testCell(ev, b)
	}
	return false
}

// compareCells evaluates a cell comparator node against an ordered pair.
func (n *node) compareCells(ev *env, a, b *hexgrid.Block) bool {
	switch n.op {
	case "overlap":
		return a.SamePosition(b)
	case "separate":
		return !a.SamePosition(b)
	case "is":
		return a.State() == b.State() && a.Color() == b.Color()
	case "not":
		return a.State() != b.State() || a.Color() != b.Color()
	case "analogous":
		return a.State() == b.State()
	case "divergent":
		return a.State() != b.State()
	case "color":
		return a.Color() == b.Color()
	case "varied":
		return a.Color() != b.Color()
	case "i-line":
		return a.InLineI(b.Hex)
	case "j-line":
		return a.InLineJ(b.Hex)
	case "k-line":
		return a.InLineK(b.Hex)
	case "i-adjacent":
		return a.AdjacentI(b.Hex)
	case "j-adjacent":
		return a.AdjacentJ(b.Hex)
	case "k-adjacent":
		return a.AdjacentK(b.Hex)
	case "adjacent":
		return a.Adjacent(b.Hex)
	case "front":
		return a.Front(b.Hex)
	case "back":
		return a.Back(b.Hex)
	}
	return false
}
