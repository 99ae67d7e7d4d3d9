// Package hexgrid implements the hexagonal board the achievement engine
// evaluates against: axial coordinates, colored blocks, placeable pieces,
// and the board engine with line elimination and placement scoring.
//
// The coordinate system stores a raw (x, y) pair per hex. The three axes
// are redundant: I = x, K = y, J = x + y. Line indices are derived as
// LineI = (2y+x)/3, LineJ = (x-y)/3, LineK = (2x+y)/3. Blocks inside an
// engine are kept sorted by LineI then LineK so lookups can binary search.
package hexgrid

// Hex is a coordinate on the hexagonal grid. The zero value is the origin.
type Hex struct {
	x, y int
}

// NewHex returns the hex at the given I-line and K-line indices.
func NewHex(i, k int) Hex {
	return Hex{}.ShiftI(k).ShiftK(i)
}

// RawHex returns the hex with raw coordinates (x, y). Most callers want
// NewHex; raw coordinates exist for codecs that mirror the stored pair.
func RawHex(x, y int) Hex {
	return Hex{x: x, y: y}
}

// I returns the raw I coordinate.
func (h Hex) I() int { return h.x }

// J returns the raw J coordinate.
func (h Hex) J() int { return h.x + h.y }

// K returns the raw K coordinate.
func (h Hex) K() int { return h.y }

// LineI returns the line index along the I axis.
func (h Hex) LineI() int { return (2*h.y + h.x) / 3 }

// LineJ returns the line index along the J axis.
func (h Hex) LineJ() int { return (h.x - h.y) / 3 }

// LineK returns the line index along the K axis.
func (h Hex) LineK() int { return (2*h.x + h.y) / 3 }

// InLineI reports whether both hexes share the same I line.
func (h Hex) InLineI(o Hex) bool { return h.LineI() == o.LineI() }

// InLineJ reports whether both hexes share the same J line.
func (h Hex) InLineJ(o Hex) bool { return h.LineJ() == o.LineJ() }

// InLineK reports whether both hexes share the same K line.
func (h Hex) InLineK(o Hex) bool { return h.LineK() == o.LineK() }

// FrontI reports whether h sits one step above o along the I axis.
func (h Hex) FrontI(o Hex) bool { return h.x == o.x+2 && h.y == o.y-1 }

// FrontJ reports whether h sits one step above o along the J axis.
func (h Hex) FrontJ(o Hex) bool { return h.x == o.x+1 && h.y == o.y+1 }

// FrontK reports whether h sits one step above o along the K axis.
func (h Hex) FrontK(o Hex) bool { return h.x == o.x-1 && h.y == o.y+2 }

// BackI reports whether h sits one step below o along the I axis.
func (h Hex) BackI(o Hex) bool { return h.x == o.x-2 && h.y == o.y+1 }

// BackJ reports whether h sits one step below o along the J axis.
func (h Hex) BackJ(o Hex) bool { return h.x == o.x-1 && h.y == o.y-1 }

// BackK reports whether h sits one step below o along the K axis.
func (h Hex) BackK(o Hex) bool { return h.x == o.x+1 && h.y == o.y-2 }

// Front reports whether h is one step above o along any axis.
func (h Hex) Front(o Hex) bool { return h.FrontI(o) || h.FrontJ(o) || h.FrontK(o) }

// Back reports whether h is one step below o along any axis.
func (h Hex) Back(o Hex) bool { return h.BackI(o) || h.BackJ(o) || h.BackK(o) }

// Adjacent reports whether the two hexes share an edge.
func (h Hex) Adjacent(o Hex) bool { return h.Front(o) || h.Back(o) }

// AdjacentI reports edge adjacency along the I axis only.
func (h Hex) AdjacentI(o Hex) bool { return h.FrontI(o) || h.BackI(o) }

// AdjacentJ reports edge adjacency along the J axis only.
func (h Hex) AdjacentJ(o Hex) bool { return h.FrontJ(o) || h.BackJ(o) }

// AdjacentK reports edge adjacency along the K axis only.
func (h Hex) AdjacentK(o Hex) bool { return h.FrontK(o) || h.BackK(o) }

// ShiftI returns a copy moved the given number of units along the I axis.
func (h Hex) ShiftI(unit int) Hex { return Hex{x: h.x + 2*unit, y: h.y - unit} }

// ShiftJ returns a copy moved the given number of units along the J axis.
func (h Hex) ShiftJ(unit int) Hex { return Hex{x: h.x + unit, y: h.y + unit} }

// ShiftK returns a copy moved the given number of units along the K axis.
func (h Hex) ShiftK(unit int) Hex { return Hex{x: h.x - unit, y: h.y + 2*unit} }

// Add returns the componentwise sum of the two coordinates.
func (h Hex) Add(o Hex) Hex { return Hex{x: h.x + o.x, y: h.y + o.y} }

// Subtract returns the componentwise difference of the two coordinates.
func (h Hex) Subtract(o Hex) Hex { return Hex{x: h.x - o.x, y: h.y - o.y} }

// InRange reports whether the hex lies inside a board of the given radius.
func (h Hex) InRange(radius int) bool {
	return 0 <= h.LineI() && h.LineI() < radius*2-1 &&
		-radius < h.LineJ() && h.LineJ() < radius &&
		0 <= h.LineK() && h.LineK() < radius*2-1
}
