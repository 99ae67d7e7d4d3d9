package goalexpr

import (
	"slices"

	"github.com/hexmill/hexmill/internal/hexgrid"
)

// testLine evaluates a line predicate node against an ordered cell
// sequence.
func (n *node) testLine(ev *env, line []*hexgrid.Block) bool {
	switch n.op {
	case "false":
		return false
	case "true":
		return true
	case "length":
		lo, look := n.args[0].evalInt(ev)
		up, upok := n.args[1].evalInt(ev)
		return look && upok && lo <= len(line) && len(line) <= up
	case "any":
		for _, b := range line {
			if n.args[0].testCell(ev, b) {
				return true
			}
		}
		return false
	case "none":
		for _, b := range line {
			if n.args[0].testCell(ev, b) {
				return false
			}
		}
		return true
	case "all":
		for _, b := range line {
			if !n.args[0].testCell(ev, b) {
				return false
			}
		}
		return true
	case "ratio":
		c := 0
		for _, b := range line {
			if n.args[0].testCell(ev, b) {
				c++
			}
		}
		r := 0.0
		if len(line) > 0 {
			r = float64(c) / float64(len(line))
		}
		lo, look := n.args[1].evalDouble(ev)
		up, upok := n.args[2].evalDouble(ev)
		return look && upok && lo <= r && r <= up
	case "count":
		c := 0
		for _, b := range line {
			if n.args[0].testCell(ev, b) {
				c++
			}
		}
		lo, look := n.args[1].evalInt(ev)
		up, upok := n.args[2].evalInt(ev)
		return look && upok && lo <= c && c <= up
	case "sequence":
		want, ok := n.args[1].evalInt(ev)
		if !ok {
			return false
		}
		run := 0
		for _, b := range line {
			if n.args[0].testCell(ev, b) {
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
		for i, b := range line {
			if i%2 == 0 {
				if !n.args[0].testCell(ev, b) {
					return false
				}
			} else if !n.args[1].testCell(ev, b) {
				return false
			}
		}
		return true
	case "anypair":
		for i := 0; i < len(line)-1; i++ {
			if n.args[0].compareCells(ev, line[i], line[i+1]) {
				return true
			}
		}
		return false
	case "nopair":
		for i := 0; i < len(line)-1; i++ {
			if n.args[0].compareCells(ev, line[i], line[i+1]) {
				return false
			}
		}
		return true
	case "allpairs":
		for i := 0; i < len(line)-1; i++ {
			if !n.args[0].compareCells(ev, line[i], line[i+1]) {
				return false
			}
		}
		return true
	case "parts":
		c := 0
		for i := 0; i < len(line)-1; i++ {
			if n.args[0].compareCells(ev, line[i], line[i+1]) {
				c++
			}
		}
		r := 0.0
		if len(line) > 1 {
			r = float64(c) / float64(len(line)-1)
		}
		lo, look := n.args[1].evalDouble(ev)
		up, upok := n.args[2].evalDouble(ev)
		return look && upok && lo <= r && r <= up
	case "pairs":
		want, ok := n.args[1].evalInt(ev)
		if !ok {
			return false
		}
		run := 0
		for i := 0; i < len(line)-1; i++ {
			if n.args[0].compareCells(ev, line[i], line[i+1]) {
				run++
				if run >= want {
					return true
				}
			} else {
				run = 0
			}
		}
		return false
	case "xor":
		return n.args[0].testLine(ev, line) != n.args[1].testLine(ev, line)
	case "or":
		return n.args[0].testLine(ev, line) || n.args[1].testLine(ev, line)
	case "and":
		return n.args[0].testLine(ev, line) && n.args[1].testLine(ev, line)
	case "not":
		return !n.args[0].testLine(ev, line)
	}
	return false
}

// traverse materializes the line collection a traversal node produces
// for the board. Shuffling strategies draw from the context's random
// source and reshuffle on every invocation.
func (n *node) traverse(ev *env, e *hexgrid.Engine) [][]*hexgrid.Block {
	switch n.op {
	case "array":
		return [][]*hexgrid.Block{e.Blocks()}
	case "random":
		blocks := slices.Clone(e.Blocks())
		ev.rand().Shuffle(len(blocks), func(i, j int) {
			blocks[i], blocks[j] = blocks[j], blocks[i]
		})
		return singletons(blocks)
	case "back":
		blocks := e.Blocks()
		out := make([][]*hexgrid.Block, 0, len(blocks))
		for i := len(blocks) - 1; i >= 0; i-- {
			out = append(out, []*hexgrid.Block{blocks[i]})
		}
		return out
	case "i-line":
		return e.LinesI()
	case "j-line":
		return e.LinesJ()
	case "k-line":
		return e.LinesK()
	case "lines":
		return allLines(e)
	case "i-random":
		return shuffled(ev, e.LinesI())
	case "j-random":
		return shuffled(ev, e.LinesJ())
	case "k-random":
		return shuffled(ev, e.LinesK())
	case "lines-random":
		return shuffled(ev, allLines(e))
	}
	return nil
}

func singletons(blocks []*hexgrid.Block) [][]*hexgrid.Block {
	out := make([][]*hexgrid.Block, len(blocks))
	for i, b := range blocks {
		out[i] = []*hexgrid.Block{b}
	}
	return out
}

func allLines(e *hexgrid.Engine) [][]*hexgrid.Block {
	lines := e.LinesI()
	lines = append(lines, e.LinesJ()...)
	return append(lines, e.LinesK()...)
}

func shuffled(ev *env, lines [][]*hexgrid.Block) [][]*hexgrid.Block {
	ev.rand().Shuffle(len(lines), func(i, j int) {
		lines[i], lines[j] = lines[j], lines[i]
	})
	return lines
}
