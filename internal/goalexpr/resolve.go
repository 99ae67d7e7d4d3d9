package goalexpr

import (
	"strconv"
	"strings"

	"github.com/hexmill/hexmill/internal/hexgrid"
	"github.com/hexmill/hexmill/internal/scripting"
)

// resolveValue parses a literal (#{...}), a named variable ($name), or
// a typed anonymous variable (${type: expr}) into a provider node.
func (c *compiler) resolveValue(arg string) (*node, *CompileError) {
	switch {
	case strings.HasPrefix(arg, "#{") && strings.HasSuffix(arg, "}"):
		return literalNode(strings.TrimSpace(arg[2 : len(arg)-1]))
	case strings.HasPrefix(arg, "${") && strings.HasSuffix(arg, "}"):
		return c.anonVariableNode(strings.TrimSpace(arg[2 : len(arg)-1]))
	case strings.HasPrefix(arg, "$"):
		return c.namedVariableNode(strings.TrimSpace(arg[1:]))
	}
	return nil, errorf("invalid argument %q", arg)
}

// literalNode tries the constant encodings in a fixed order: integer,
// double, piece, engine, cell. The first one that parses wins.
func literalNode(payload string) (*node, *CompileError) {
	if v, err := strconv.Atoi(payload); err == nil {
		return &node{kind: kindInt, op: "const", intVal: v}, nil
	}
	if v, err := strconv.ParseFloat(payload, 64); err == nil {
		return &node{kind: kindDouble, op: "const", floatVal: v}, nil
	}
	if p := pieceLiteral(payload); p != nil {
		return &node{kind: kindPiece, op: "const", pieceVal: p}, nil
	}
	if e := engineLiteral(payload); e != nil {
		return &node{kind: kindEngine, op: "const", engineVal: e}, nil
	}
	if b := cellLiteral(payload); b != nil {
		return &node{kind: kindCell, op: "const", cellVal: b}, nil
	}
	return nil, errorf("invalid constant %q", payload)
}

// pieceLiteral decodes "<byte>p" (color left as the occupied sentinel)
// or "<shape>p<color>".
func pieceLiteral(s string) *hexgrid.Piece {
	if strings.HasSuffix(s, "p") {
		v, err := strconv.ParseInt(s[:len(s)-1], 10, 8)
		if err != nil {
			return nil
		}
		p, err := hexgrid.PieceFromByte(byte(v), hexgrid.ColorOccupied)
		if err != nil {
			return nil
		}
		return p
	}
	idx := strings.IndexByte(s, 'p')
	if idx < 0 {
		return nil
	}
	shape, err := strconv.ParseInt(s[:idx], 10, 8)
	if err != nil {
		return nil
	}
	color, err := strconv.Atoi(s[idx+1:])
	if err != nil {
		return nil
	}
	p, err := hexgrid.PieceFromByte(byte(shape), color)
	if err != nil {
		return nil
	}
	return p
}

// engineLiteral decodes "<bits>e" where each bit is one of 0 o - f for
// empty and 1 x + t for occupied. The bit count must match a whole
// board. Expressions are case folded before parsing, so only lowercase
// letters arrive here.
func engineLiteral(s string) *hexgrid.Engine {
	bits, ok := strings.CutSuffix(s, "e")
	if !ok {
		return nil
	}
	data := make([]bool, len(bits))
	for i := 0; i < len(bits); i++ {
		switch bits[i] {
		case '0', 'o', '-', 'f':
		case '1', 'x', '+', 't':
			data[i] = true
		default:
			return nil
		}
	}
	e, err := hexgrid.EngineFromBooleans(data)
	if err != nil {
		return nil
	}
	return e
}

// cellLiteral decodes "<i>|<k>b<color>". Occupancy is inferred: color
// -1 means empty.
func cellLiteral(s string) *hexgrid.Block {
	parts := strings.Split(s, "b")
	if len(parts) != 2 {
		return nil
	}
	coords := strings.Split(parts[0], "|")
	if len(coords) != 2 {
		return nil
	}
	i, err := strconv.Atoi(coords[0])
	if err != nil {
		return nil
	}
	k, err := strconv.Atoi(coords[1])
	if err != nil {
		return nil
	}
	color, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil
	}
	return hexgrid.NewBlockState(i, k, color, color != -1)
}

func (c *compiler) anonVariableNode(body string) (*node, *CompileError) {
	colon := strings.IndexByte(body, ':')
	if colon < 0 {
		return nil, errorf("invalid variable %q expression", body)
	}
	hint := strings.TrimSpace(body[:colon])
	expr := strings.TrimSpace(body[colon+1:])
	eval, err := scripting.ParseStrict(expr)
	if err != nil {
		return nil, errorf("invalid variable %q expression", expr)
	}
	switch hint {
	case "int", "integer":
		return &node{kind: kindInt, op: "anon", varEval: eval}, nil
	case "double", "float":
		return &node{kind: kindDouble, op: "anon", varEval: eval}, nil
	case "piece":
		return &node{kind: kindPiece, op: "anon", varEval: eval}, nil
	}
	return nil, errorf("invalid type hint %q in variable %q expression", hint, expr)
}

func (c *compiler) namedVariableNode(name string) (*node, *CompileError) {
	v := c.ctx.Vars[name]
	if v == nil {
		return nil, errorf("undefined variable %q", name)
	}
	switch v.typ {
	case VarInt:
		return &node{kind: kindInt, op: "var", varName: name}, nil
	case VarDouble:
		return &node{kind: kindDouble, op: "var", varName: name}, nil
	case VarPiece:
		return &node{kind: kindPiece, op: "var", varName: name}, nil
	}
	return nil, errorf("unsupported variable type %s for variable %q", v.typ, name)
}
