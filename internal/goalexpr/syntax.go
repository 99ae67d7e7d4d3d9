package goalexpr

import "strings"

// validateGrouping checks parenthesis balance and curly brace placement
// up front, so malformed grouping surfaces with a position instead of a
// confusing unknown-function failure deeper in the recursion.
func validateGrouping(expr string) *CompileError {
	balance := 0
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '(':
			balance++
		case ')':
			balance--
			if balance < 0 {
				return errorf("unmatched parenthesis at position %d", i)
			}
		}
	}
	if balance != 0 {
		return errorf("unmatched parenthesis at end of expression")
	}
	inCurly := false
	var prev byte
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch c {
		case '{':
			if inCurly {
				return errorf("nested curly braces at position %d", i)
			}
			if prev != '#' && prev != '$' {
				return errorf("curly brace not preceded by # or $ at position %d", i)
			}
			inCurly = true
		case '}':
			if !inCurly {
				return errorf("unmatched curly brace at position %d", i)
			}
			inCurly = false
		}
		prev = c
	}
	if inCurly {
		return errorf("unterminated curly brace at end of expression")
	}
	return nil
}

// groupDepths tracks nesting while scanning an argument list so commas
// inside parentheses, brackets, braces, or quotes are not treated as
// separators.
type groupDepths struct {
	paren, bracket, brace int
	single, double        bool
}

func (d *groupDepths) observe(c byte) {
	switch c {
	case '(':
		d.paren++
	case ')':
		d.paren--
	case '[':
		d.bracket++
	case ']':
		d.bracket--
	case '{':
		d.brace++
	case '}':
		d.brace--
	case '\'':
		d.single = !d.single
	case '"':
		d.double = !d.double
	}
}

func (d *groupDepths) topLevel() bool {
	return d.paren == 0 && d.bracket == 0 && d.brace == 0 && !d.single && !d.double
}

// splitArgs splits a comma separated argument list at top level commas.
// Segments that trim to nothing are dropped.
func splitArgs(s string) []string {
	var out []string
	var cur strings.Builder
	var depth groupDepths
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ',' && depth.topLevel() {
			if v := strings.TrimSpace(cur.String()); v != "" {
				out = append(out, v)
			}
			cur.Reset()
			continue
		}
		depth.observe(c)
		cur.WriteByte(c)
	}
	if v := strings.TrimSpace(cur.String()); v != "" {
		out = append(out, v)
	}
	return out
}

// splitPair splits at the first top level comma.
func splitPair(s string) (left, right string, ok bool) {
	var depth groupDepths
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ',' && depth.topLevel() {
			return s[:i], s[i+1:], true
		}
		depth.observe(c)
	}
	return "", "", false
}
