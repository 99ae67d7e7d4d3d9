package gamevar

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hexmill/hexmill/internal/hexgrid"
)

// Parse compiles an arithmetic expression into a Func. Expressions that
// cannot be parsed evaluate to nil rather than failing, matching the
// total-evaluation contract of the goal language.
func Parse(expr string) Func {
	paren, err := autoParen(expr)
	if err != nil {
		return func(hexgrid.GameState) any { return nil }
	}
	s, err := parseRec(autoFormat(paren))
	if err != nil {
		return func(hexgrid.GameState) any { return nil }
	}
	return s.eval
}

// ParseStrict compiles an expression and surfaces the parse error
// instead of deferring it to evaluation.
func ParseStrict(expr string) (Func, error) {
	paren, err := autoParen(expr)
	if err != nil {
		return nil, err
	}
	s, err := parseRec(autoFormat(paren))
	if err != nil {
		return nil, err
	}
	return s.eval, nil
}

var castPrefixes = []struct {
	prefix string
	build  func(supplier) supplier
}{
	{"int", castIntUnknown},
	{"double", castFloatUnknown},
	{"patternof", patternOf},
	{"pattern", patternOf},
	{"pieceof", pieceOf},
	{"piece", pieceOf},
}

func parseRec(str string) (supplier, error) {
	str = strings.ToLower(strings.TrimSpace(str))
	if s, ok := named(str); ok {
		return s, nil
	}
	for _, cast := range castPrefixes {
		if strings.HasPrefix(str, cast.prefix) {
			inner, err := parseRec(str[len(cast.prefix):])
			if err != nil {
				return supplier{}, fmt.Errorf("failed to apply %s: %w", cast.prefix, err)
			}
			return cast.build(inner), nil
		}
	}
	// Unary operation: "op operand".
	if parts := splitDepth(str, 2); len(parts) == 2 {
		if inner, err := parseRec(parts[1]); err == nil {
			switch inner.kind {
			case kindInt:
				if s, err := intUnary(inner, parts[0]); err == nil {
					return s, nil
				}
			case kindFloat:
				if s, err := floatUnary(inner, parts[0]); err == nil {
					return s, nil
				}
			}
		}
	}
	// Binary operation: "left op right". Integer arithmetic is kept
	// when both sides are integers and the operator exists in integer
	// form; everything else promotes to float.
	if parts := splitDepth(str, 3); len(parts) == 3 {
		left, errL := parseRec(parts[0])
		right, errR := parseRec(parts[2])
		if errL == nil && errR == nil {
			if left.kind == kindInt && right.kind == kindInt {
				if s, err := intBinary(left, right, parts[1]); err == nil {
					return s, nil
				}
			}
			if s, err := floatBinary(left, right, parts[1]); err == nil {
				return s, nil
			}
		}
	}
	if strings.HasPrefix(str, "(") && strings.HasSuffix(str, ")") {
		if s, err := parseRec(str[1 : len(str)-1]); err == nil {
			return s, nil
		}
	}
	return supplier{}, fmt.Errorf("could not parse variable expression: %s", str)
}

// splitDepth tokenizes on whitespace at parenthesis depth zero. When
// the limit is reached the remainder of the input, parentheses
// included, lands in the last token.
func splitDepth(input string, limit int) []string {
	var result []string
	var token strings.Builder
	depth := 0
	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case c == '(':
			if (limit > 0 && len(result) == limit-1) || depth > 0 {
				token.WriteByte(c)
			}
			depth++
		case c == ')':
			depth--
			if (limit > 0 && len(result) == limit-1) || depth > 0 {
				token.WriteByte(c)
			}
		case (c == ' ' || c == '\t' || c == '\n' || c == '\r') && depth == 0:
			if token.Len() > 0 {
				if limit > 0 && len(result) == limit-1 {
					token.WriteString(input[i:])
					result = append(result, strings.TrimSpace(token.String()))
					return result
				}
				result = append(result, token.String())
				token.Reset()
			}
		default:
			token.WriteByte(c)
		}
	}
	if token.Len() > 0 {
		result = append(result, token.String())
	}
	return result
}

var (
	operatorRE    = regexp.MustCompile(`([+\-*/%^()])`)
	digitLetterRE = regexp.MustCompile(`(\d)([a-zA-Z])`)
	letterDigitRE = regexp.MustCompile(`([a-zA-Z])(\d)`)
	spacesRE      = regexp.MustCompile(`\s+`)
	tokenRE       = regexp.MustCompile(`\d+\.\d+|\d+|[A-Za-z_][A-Za-z_0-9]*|[()+\-*/%^]`)
)

// autoFormat spaces out operators and digit/letter boundaries so the
// tokenizer sees one token per word.
func autoFormat(input string) string {
	spaced := operatorRE.ReplaceAllString(input, " $1 ")
	spaced = digitLetterRE.ReplaceAllString(spaced, "$1 $2")
	spaced = letterDigitRE.ReplaceAllString(spaced, "$1 $2")
	return strings.TrimSpace(spacesRE.ReplaceAllString(spaced, " "))
}

var binaryPrecedence = map[string]int{}

func init() {
	for _, op := range []string{"^", "pow", "power", "exp", "exponent"} {
		binaryPrecedence[op] = 4
	}
	for _, op := range []string{
		"*", "multiplies", "multiply", "times", "time", "multiplication",
		"/", "divides", "divide", "division",
		"%", "mod", "modulo", "modulos", "remainder",
	} {
		binaryPrecedence[op] = 3
	}
	for _, op := range []string{
		"+", "adds", "add", "plus", "addition",
		"-", "subtracts", "subtract", "minus", "subtraction",
	} {
		binaryPrecedence[op] = 2
	}
	for _, op := range []string{
		"max", "maximum", "min", "minimum", "avg", "average", "mean",
		"equals", "equal", "==", "is", "same",
		"equals_exact", "equal_exact", "===", "is_exact", "same_exact",
		"not_equals", "not_equal", "!=", "not", "is_not", "not_same",
	} {
		binaryPrecedence[op] = 1
	}
}

// prefixOps covers casts and the word-form unary operators, all of
// which bind to the operand that follows them, tighter than any binary
// operator.
var prefixOps = map[string]bool{
	"int": true, "double": true,
	"patternof": true, "pattern": true,
	"pieceof": true, "piece": true,
	"neg": true, "negate": true, "negative": true,
	"abs": true, "absolute": true,
	"sq": true, "sqr": true, "square": true, "squared": true,
	"sqrt": true, "squareroot": true, "square_root": true, "square-root": true,
	"bool": true, "boolean": true,
}

const prefixPrecedence = 5

// autoParen fully parenthesizes an infix expression by operator
// precedence with a shunting-yard pass. A minus in operand position is
// read as a prefix negation.
func autoParen(str string) (string, error) {
	tokens := tokenRE.FindAllString(str, -1)
	var values []string
	type stackOp struct {
		name   string
		prefix bool
	}
	var ops []stackOp

	popApply := func() error {
		if len(ops) == 0 {
			return fmt.Errorf("malformed expression: %s", str)
		}
		op := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if op.prefix {
			if len(values) < 1 {
				return fmt.Errorf("malformed expression: %s", str)
			}
			a := values[len(values)-1]
			values[len(values)-1] = "(" + op.name + " " + a + ")"
			return nil
		}
		if len(values) < 2 {
			return fmt.Errorf("malformed expression: %s", str)
		}
		b := values[len(values)-1]
		a := values[len(values)-2]
		values = values[:len(values)-2]
		values = append(values, "("+a+" "+op.name+" "+b+")")
		return nil
	}
	precedenceOf := func(op stackOp) int {
		if op.prefix {
			return prefixPrecedence
		}
		return binaryPrecedence[op.name]
	}

	expectOperand := true
	for _, t := range tokens {
		switch {
		case expectOperand && (prefixOps[t] || t == "-" || t == "not"):
			name := t
			if t == "-" {
				name = "neg"
			}
			ops = append(ops, stackOp{name: name, prefix: true})
		case binaryPrecedence[t] > 0:
			for len(ops) > 0 && ops[len(ops)-1].name != "(" &&
				precedenceOf(ops[len(ops)-1]) >= binaryPrecedence[t] {
				if err := popApply(); err != nil {
					return "", err
				}
			}
			ops = append(ops, stackOp{name: t})
			expectOperand = true
		case t == "(":
			ops = append(ops, stackOp{name: "("})
			expectOperand = true
		case t == ")":
			for len(ops) > 0 && ops[len(ops)-1].name != "(" {
				if err := popApply(); err != nil {
					return "", err
				}
			}
			if len(ops) > 0 {
				ops = ops[:len(ops)-1]
			}
			// A closed group may itself be a prefix operand.
			for len(ops) > 0 && ops[len(ops)-1].prefix {
				if err := popApply(); err != nil {
					return "", err
				}
			}
			expectOperand = false
		default:
			values = append(values, t)
			// A plain value completes any pending prefix chain.
			for len(ops) > 0 && ops[len(ops)-1].prefix {
				if err := popApply(); err != nil {
					return "", err
				}
			}
			expectOperand = false
		}
	}
	for len(ops) > 0 {
		if ops[len(ops)-1].name == "(" {
			return "", fmt.Errorf("malformed expression: %s", str)
		}
		if err := popApply(); err != nil {
			return "", err
		}
	}
	if len(values) != 1 {
		if len(values) == 0 {
			return "", nil
		}
		return "", fmt.Errorf("malformed expression: %s", str)
	}
	return values[0], nil
}
