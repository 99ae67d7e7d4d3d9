// Package goalexpr compiles achievement goal expressions into evaluator
// trees that test a game state snapshot. An expression is a nested
// function call form such as
//
//	engine( and (ratio (lines, any (state()), #{0.5}, #{0.4}), filled (#{0.1}, #{1.0})))
//
// with constants written as #{...}, named variables as $name, and typed
// anonymous variables as ${type: expr} whose bodies are evaluated by the
// gamevar package. Compilation resolves every operator against a fixed
// set of overload families; evaluation walks the resulting tree and is
// total, turning missing data into a false predicate rather than an
// error.
package goalexpr

import (
	"math/rand"
	"time"

	"github.com/hexmill/hexmill/internal/gamevar"
	"github.com/hexmill/hexmill/internal/hexgrid"
)

// kind discriminates every compiled node form. Diagnostics render kinds
// through String, the single place a kind is given a human name.
type kind int

const (
	kindInvalid kind = iota
	kindInt
	kindDouble
	kindPiece
	kindEngine
	kindCell
	kindCellPredicate
	kindCellComparator
	kindLinePredicate
	kindTraversal
	kindGoalPredicate
)

func (k kind) String() string {
	switch k {
	case kindInt:
		return "integer provider"
	case kindDouble:
		return "double provider"
	case kindPiece:
		return "piece provider"
	case kindEngine:
		return "engine provider"
	case kindCell:
		return "cell provider"
	case kindCellPredicate:
		return "cell predicate"
	case kindCellComparator:
		return "cell comparator"
	case kindLinePredicate:
		return "line predicate"
	case kindTraversal:
		return "line traversal"
	case kindGoalPredicate:
		return "engine predicate"
	}
	return "invalid"
}

// node is one vertex of a compiled expression tree. op selects the
// operation within the kind's family and args hold the operand
// subtrees. Leaf ops are "const" for literals, "var" for named
// variables, and "anon" for typed anonymous variables.
type node struct {
	kind kind
	op   string
	args []*node

	intVal    int
	floatVal  float64
	pieceVal  *hexgrid.Piece
	engineVal *hexgrid.Engine
	cellVal   *hexgrid.Block

	varName string
	varEval gamevar.Func
}

func mk(k kind, op string, args []*node) *node {
	return &node{kind: k, op: op, args: args}
}

// match reports whether args has exactly the given kinds, in order.
func match(args []*node, kinds ...kind) bool {
	if len(args) != len(kinds) {
		return false
	}
	for i, k := range kinds {
		if args[i].kind != k {
			return false
		}
	}
	return true
}

// Context carries everything compilation and evaluation need beyond the
// snapshot itself: the symbol table for named variables and the random
// source used by shuffling traversals.
type Context struct {
	Rand *rand.Rand
	Vars map[string]*Variable
}

// NewContext returns a context with an empty symbol table and a
// time-seeded random source.
func NewContext() *Context {
	return &Context{
		Rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		Vars: make(map[string]*Variable),
	}
}

// SetVar registers a named variable for $name references.
func (c *Context) SetVar(name string, v *Variable) {
	if c.Vars == nil {
		c.Vars = make(map[string]*Variable)
	}
	c.Vars[name] = v
}

// Goal is a compiled top level predicate ready to test snapshots.
type Goal struct {
	root *node
	ctx  *Context
}

// Kind describes what the compiled root evaluates to.
func (g *Goal) Kind() string { return g.root.kind.String() }

// Test evaluates the goal against the snapshot. A nil snapshot or a
// snapshot without a board evaluates to false. Callers owning named
// variables must refresh them with Update before each Test and must not
// refresh concurrently with it.
func (g *Goal) Test(state hexgrid.GameState) bool {
	if state == nil {
		return false
	}
	e := state.Engine()
	if e == nil {
		return false
	}
	ev := &env{state: state, ctx: g.ctx}
	return g.root.testEngine(ev, e)
}

// env is the per-evaluation view passed down the interpreter.
type env struct {
	state hexgrid.GameState
	ctx   *Context
}

func (ev *env) rand() *rand.Rand {
	return ev.ctx.Rand
}
