package hexgrid

import "fmt"

// Color sentinels used when a block has no explicit color assigned.
const (
	ColorEmpty    = -1 // default color of an unoccupied block
	ColorOccupied = -2 // default color of an occupied block without a palette entry
)

// Block is one addressable cell of the grid: a coordinate plus an
// occupancy flag and a color index.
type Block struct {
	Hex
	color int
	state bool
}

// NewBlock returns an unoccupied block at the given raw coordinates.
func NewBlock(x, y int) *Block {
	return &Block{Hex: RawHex(x, y), color: ColorEmpty}
}

// NewBlockState returns a block at the given raw coordinates with the
// given color and occupancy.
func NewBlockState(x, y, color int, state bool) *Block {
	return &Block{Hex: RawHex(x, y), color: color, state: state}
}

// BlockAt returns an occupiable block at the given I-line and K-line
// indices carrying the given color.
func BlockAt(i, k, color int) *Block {
	return &Block{Hex: NewHex(i, k), color: color}
}

// Color returns the block's color index.
func (b *Block) Color() int { return b.color }

// State reports whether the block is occupied.
func (b *Block) State() bool { return b.state }

// SetColor assigns a color index.
func (b *Block) SetColor(color int) { b.color = color }

// SetState sets the occupancy flag.
func (b *Block) SetState(state bool) { b.state = state }

// AddHex returns a copy of the block translated by the given offset,
// keeping color and state.
func (b *Block) AddHex(o Hex) *Block {
	return &Block{Hex: b.Hex.Add(o), color: b.color, state: b.state}
}

// Clone returns an independent copy of the block.
func (b *Block) Clone() *Block {
	c := *b
	return &c
}

// SamePosition reports whether both blocks occupy the same coordinate,
// ignoring color and state.
func (b *Block) SamePosition(o *Block) bool { return b.Hex == o.Hex }

func (b *Block) String() string {
	return fmt.Sprintf("{%d, %d, %d, %t}", b.LineI(), b.LineK(), b.color, b.state)
}
