package goalexpr

import (
	"math"
	"strconv"

	"github.com/hexmill/hexmill/internal/hexgrid"
)

// testEngine evaluates a top level engine predicate node against the
// board.
func (n *node) testEngine(ev *env, e *hexgrid.Engine) bool {
	switch n.op {
	case "all":
		for _, line := range n.args[0].traverse(ev, e) {
			if !n.args[1].testLine(ev, line) {
				return false
			}
		}
		return true
	case "none":
		for _, line := range n.args[0].traverse(ev, e) {
			if n.args[1].testLine(ev, line) {
				return false
			}
		}
		return true
	case "any":
		for _, line := range n.args[0].traverse(ev, e) {
			if n.args[1].testLine(ev, line) {
				return true
			}
		}
		return false
	case "ratio":
		// The bound arguments read upper first, then lower.
		c, t := 0, 0
		for _, line := range n.args[0].traverse(ev, e) {
			if n.args[1].testLine(ev, line) {
				c++
			}
			t++
		}
		r := 0.0
		if t > 0 {
			r = float64(c) / float64(t)
		}
		up, upok := n.args[2].evalDouble(ev)
		lo, look := n.args[3].evalDouble(ev)
		return upok && look && lo <= r && r <= up
	case "sequence":
		want, ok := n.args[2].evalInt(ev)
		if !ok {
			return false
		}
		run := 0
		for _, line := range n.args[0].traverse(ev, e) {
			if n.args[1].testLine(ev, line) {
				run++
				if run >= want {
					return true
				}
			} else {
				run = 0
			}
		}
		return false
	case "checker":
		for _, line := range n.args[0].traverse(ev, e) {
			for i, b := range line {
				if i%2 == 0 {
					if !n.args[1].testCell(ev, b) {
						return false
					}
				} else if !n.args[2].testCell(ev, b) {
					return false
				}
			}
		}
		return true
	case "filled":
		return n.boundedDouble(ev, e.PercentFilled())
	case "entropy":
		return n.boundedDouble(ev, e.Entropy())
	case "length":
		return n.boundedInt(ev, e.Length())
	case "radius":
		return n.boundedInt(ev, e.Radius())
	case "density-index", "densest-index", "sparsest-index",
		"entropy-index", "most-entropic-index", "least-entropic-index",
		"eliminate-index", "reduction-index":
		return n.placementIndex(ev, e)
	case "is":
		other := n.args[0].evalEngine(ev)
		return other != nil && e.Equals(other)
	case "matches":
		other := n.args[0].evalEngine(ev)
		return other != nil && e.EqualsIgnoreColor(other)
	case "appears":
		code, ok := n.args[0].evalInt(ev)
		if !ok {
			return false
		}
		for _, b := range e.Blocks() {
			if e.Pattern(b.LineI(), b.LineK(), false) == code {
				return true
			}
		}
		return false
	case "lacks":
		code, ok := n.args[0].evalInt(ev)
		if !ok {
			return false
		}
		for _, b := range e.Blocks() {
			if e.Pattern(b.LineI(), b.LineK(), false) == code {
				return false
			}
		}
		return true
	case "not":
		return !n.args[0].testEngine(ev, e)
	case "or":
		return n.args[0].testEngine(ev, e) || n.args[1].testEngine(ev, e)
	case "and":
		return n.args[0].testEngine(ev, e) && n.args[1].testEngine(ev, e)
	case "xor":
		return n.args[0].testEngine(ev, e) != n.args[1].testEngine(ev, e)
	case "equals":
		return n.testEquals(ev)
	}
	return false
}

// boundedDouble tests a board scalar against the node's (lower, upper)
// double bounds.
func (n *node) boundedDouble(ev *env, val float64) bool {
	lo, look := n.args[0].evalDouble(ev)
	up, upok := n.args[1].evalDouble(ev)
	return look && upok && lo <= val && val <= up
}

func (n *node) boundedInt(ev *env, val int) bool {
	lo, look := n.args[0].evalInt(ev)
	up, upok := n.args[1].evalInt(ev)
	return look && upok && lo <= val && val <= up
}

func (n *node) testEquals(ev *env) bool {
	a, b := n.args[0], n.args[1]
	switch a.kind {
	case kindInt:
		v1, ok1 := a.evalInt(ev)
		v2, ok2 := b.evalInt(ev)
		return ok1 && ok2 && v1 == v2
	case kindDouble:
		v1, ok1 := a.evalDouble(ev)
		v2, ok2 := b.evalDouble(ev)
		return ok1 && ok2 && v1 == v2
	case kindPiece:
		p1 := a.evalPiece(ev)
		p2 := b.evalPiece(ev)
		return p1 != nil && p2 != nil && p1.Equals(p2)
	case kindEngine:
		e1 := a.evalEngine(ev)
		e2 := b.evalEngine(ev)
		return e1 != nil && e2 != nil && e1.Equals(e2)
	}
	return false
}

// metricFunc scores a hypothetical placement of a grid at an anchor.
type metricFunc func(e *hexgrid.Engine, origin hexgrid.Hex, g hexgrid.Grid) float64

// placementIndex evaluates one of the index predicates: reduce a
// per-anchor placement metric over every board position and test the
// result against double bounds.
func (n *node) placementIndex(ev *env, e *hexgrid.Engine) bool {
	metric, option := indexSpec(n.op)
	reduce, ok := aggregateIndex(metric, option)
	if !ok {
		return false
	}
	piece := n.args[0].evalPiece(ev)
	lo, look := n.args[1].evalDouble(ev)
	up, upok := n.args[2].evalDouble(ev)
	if piece == nil || !look || !upok {
		return false
	}
	val := reduce(e, piece)
	return lo <= val && val <= up
}

func indexSpec(op string) (metricFunc, string) {
	switch op {
	case "density-index":
		return (*hexgrid.Engine).DenseIndex, "avg"
	case "densest-index":
		return (*hexgrid.Engine).DenseIndex, "max"
	case "sparsest-index":
		return (*hexgrid.Engine).DenseIndex, "min"
	case "entropy-index":
		return entropyMetric, "avg"
	case "most-entropic-index":
		return entropyMetric, "max"
	case "least-entropic-index":
		return entropyMetric, "min"
	case "eliminate-index":
		return eliminateMetric, "max"
	case "reduction-index":
		return eliminateMetric, "avg"
	}
	return nil, ""
}

func entropyMetric(e *hexgrid.Engine, origin hexgrid.Hex, g hexgrid.Grid) float64 {
	v, err := e.EntropyIndex(origin, g)
	if err != nil {
		return 0
	}
	return v
}

// eliminateMetric counts the blocks a placement at origin would clear,
// or 0 when the placement is illegal.
func eliminateMetric(e *hexgrid.Engine, origin hexgrid.Hex, g hexgrid.Grid) float64 {
	cloned := e.Clone()
	if err := cloned.Add(origin, g); err != nil {
		return 0
	}
	return float64(cloned.CountEliminable())
}

// aggregateIndex builds an (engine, piece) reducer from a per-anchor
// metric and a reduction keyword. Keywords other than the folds are
// tried as numeric literals yielding a constant reducer; anything else
// is no match.
func aggregateIndex(metric metricFunc, option string) (func(*hexgrid.Engine, hexgrid.Grid) float64, bool) {
	switch option {
	case "max":
		return func(e *hexgrid.Engine, g hexgrid.Grid) float64 {
			best := math.Inf(-1)
			for _, b := range e.Blocks() {
				if v := metric(e, b.Hex, g); v > best {
					best = v
				}
			}
			return best
		}, true
	case "min":
		return func(e *hexgrid.Engine, g hexgrid.Grid) float64 {
			best := math.Inf(1)
			for _, b := range e.Blocks() {
				if v := metric(e, b.Hex, g); v < best {
					best = v
				}
			}
			return best
		}, true
	case "avg":
		return func(e *hexgrid.Engine, g hexgrid.Grid) float64 {
			sum := 0.0
			count := 0
			for _, b := range e.Blocks() {
				sum += metric(e, b.Hex, g)
				count++
			}
			if count == 0 {
				return 0
			}
			return sum / float64(count)
		}, true
	case "sum":
		return func(e *hexgrid.Engine, g hexgrid.Grid) float64 {
			sum := 0.0
			for _, b := range e.Blocks() {
				sum += metric(e, b.Hex, g)
			}
			return sum
		}, true
	}
	if v, err := strconv.ParseFloat(option, 64); err == nil {
		return func(*hexgrid.Engine, hexgrid.Grid) float64 { return v }, true
	}
	return nil, false
}
