package goalexpr

import (
	"math/rand"
	"strings"
	"time"
)

type compiler struct {
	ctx *Context
}

// Compile turns a goal expression into an executable Goal bound to ctx.
// The expression is case folded before parsing. A nil ctx gets a fresh
// one. All failures are *CompileError values raised here; evaluation
// never fails.
func Compile(expr string, ctx *Context) (*Goal, error) {
	if ctx == nil {
		ctx = NewContext()
	}
	if ctx.Rand == nil {
		ctx.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	c := &compiler{ctx: ctx}
	root, err := c.compile(strings.TrimSpace(strings.ToLower(expr)))
	if err != nil {
		return nil, err
	}
	return &Goal{root: root, ctx: ctx}, nil
}

// compile handles the top level, which must be either equals(a, b) over
// two value providers or engine(inner) over an engine predicate.
func (c *compiler) compile(expr string) (*node, *CompileError) {
	if err := validateGrouping(expr); err != nil {
		return nil, err
	}
	switch {
	case strings.HasPrefix(expr, "equals"):
		inner, err := stripCall(expr, "equals")
		if err != nil {
			return nil, err
		}
		return c.compileEquals(inner)
	case strings.HasPrefix(expr, "engine"):
		inner, err := stripCall(expr, "engine")
		if err != nil {
			return nil, err
		}
		root, err := c.compileInner(inner)
		if err != nil {
			return nil, err
		}
		if root.kind != kindGoalPredicate {
			return nil, errorf("expression %q does not evaluate to an engine predicate, got %s", inner, root.kind)
		}
		return root, nil
	}
	return nil, errorf("top level expression is not a legal function in %q", expr)
}

func (c *compiler) compileEquals(inner string) (*node, *CompileError) {
	left, right, ok := splitPair(inner)
	if !ok {
		return nil, errorf(`function "equals" requires two arguments`)
	}
	a, err := c.resolveValue(strings.TrimSpace(left))
	if err != nil {
		return nil, err
	}
	b, err := c.resolveValue(strings.TrimSpace(right))
	if err != nil {
		return nil, err
	}
	if a.kind != b.kind {
		return nil, errorf(`function "equals" requires both arguments to be of the same type, got %s and %s`, a.kind, b.kind)
	}
	switch a.kind {
	case kindInt, kindDouble, kindPiece, kindEngine:
		return mk(kindGoalPredicate, "equals", []*node{a, b}), nil
	}
	return nil, errorf(`function "equals" does not support arguments of type %s`, a.kind)
}

func stripCall(expr, name string) (string, *CompileError) {
	rest := strings.TrimSpace(expr[len(name):])
	if !strings.HasPrefix(rest, "(") || !strings.HasSuffix(rest, ")") {
		return "", errorf("top level expression is not a legal function in %q", expr)
	}
	return strings.TrimSpace(rest[1 : len(rest)-1]), nil
}

// compileInner recursively compiles a sub-expression: a value form, or
// a function call resolved against the overload families in fixed
// order.
func (c *compiler) compileInner(expr string) (*node, *CompileError) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, errorf("empty expression")
	}
	if isValueForm(expr) {
		return c.resolveValue(expr)
	}
	paren := strings.IndexByte(expr, '(')
	if paren < 0 {
		// A bare name is a zero argument call. Only zero-arg line
		// predicates, comparators, and traversals live here.
		if n := lineNode(expr, nil); n != nil {
			return n, nil
		}
		if n := comparatorNode(expr); n != nil {
			return n, nil
		}
		if n := traversalNode(expr); n != nil {
			return n, nil
		}
		return nil, errorf("unknown function %s()", expr)
	}
	name := strings.TrimSpace(expr[:paren])
	rest := strings.TrimSpace(expr[paren:])
	if !strings.HasSuffix(rest, ")") {
		return nil, errorf("malformed function %q in expression %q", name, expr)
	}
	parts := splitArgs(rest[1 : len(rest)-1])
	args := make([]*node, len(parts))
	for i, part := range parts {
		a, err := c.compileInner(part)
		if err != nil {
			return nil, err
		}
		args[i] = a
	}
	if n := goalNode(name, args); n != nil {
		return n, nil
	}
	if n := lineNode(name, args); n != nil {
		return n, nil
	}
	if n := cellNode(name, args); n != nil {
		return n, nil
	}
	if len(args) == 0 {
		if n := comparatorNode(name); n != nil {
			return n, nil
		}
		if n := traversalNode(name); n != nil {
			return n, nil
		}
	}
	return nil, errorf("unknown function %s(%s)", name, argKinds(args))
}

func isValueForm(expr string) bool {
	return (strings.HasPrefix(expr, "#{") && strings.HasSuffix(expr, "}")) ||
		strings.HasPrefix(expr, "$")
}

func argKinds(args []*node) string {
	kinds := make([]string, len(args))
	for i, a := range args {
		kinds[i] = a.kind.String()
	}
	return strings.Join(kinds, ", ")
}
