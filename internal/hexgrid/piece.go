package hexgrid

import (
	"fmt"
	"sort"
)

// Grid is the surface shared by Piece and Engine: an ordered set of
// blocks addressable by line coordinates.
type Grid interface {
	Length() int
	Blocks() []*Block
	InRange(i, k int) bool
	BlockAt(i, k int) *Block
}

// Piece is a small fixed pattern of occupied blocks meant to be anchored
// onto the board. All member blocks share the piece color.
type Piece struct {
	blocks []*Block
	color  int
}

// NewPiece returns an empty piece with the given color.
func NewPiece(color int) *Piece {
	return &Piece{color: color}
}

// Color returns the piece color index.
func (p *Piece) Color() int { return p.color }

// SetColor assigns a color to the piece and every member block.
func (p *Piece) SetColor(color int) {
	p.color = color
	for _, b := range p.blocks {
		b.SetColor(color)
	}
}

// Add appends an occupied block at the given I-line and K-line indices.
func (p *Piece) Add(i, k int) {
	b := BlockAt(i, k, p.color)
	b.SetState(true)
	p.blocks = append(p.blocks, b)
	p.sort()
}

// Length returns the number of member blocks.
func (p *Piece) Length() int { return len(p.blocks) }

// Blocks returns the member blocks sorted by line coordinates.
func (p *Piece) Blocks() []*Block { return p.blocks }

// InRange reports whether the piece has a block at (i, k).
func (p *Piece) InRange(i, k int) bool { return p.BlockAt(i, k) != nil }

// BlockAt returns the member block at the given line coordinates, or nil.
func (p *Piece) BlockAt(i, k int) *Block {
	for _, b := range p.blocks {
		if b.LineI() == i && b.LineK() == k {
			return b
		}
	}
	return nil
}

// StateAt reports whether an occupied block sits at the given line
// coordinates. Missing blocks count as empty.
func (p *Piece) StateAt(i, k int) bool {
	b := p.BlockAt(i, k)
	return b != nil && b.State()
}

func (p *Piece) sort() {
	sort.SliceStable(p.blocks, func(a, b int) bool {
		ba, bb := p.blocks[a], p.blocks[b]
		if ba.LineI() != bb.LineI() {
			return ba.LineI() < bb.LineI()
		}
		return ba.LineK() < bb.LineK()
	})
}

// Equals reports structural equality: same length and identical block
// positions. Color is not compared.
func (p *Piece) Equals(o *Piece) bool {
	if o == nil || p.Length() != o.Length() {
		return false
	}
	for i := range p.blocks {
		if p.blocks[i].Hex != o.blocks[i].Hex {
			return false
		}
	}
	return true
}

// The 7-cell byte codec covers pieces confined to the standard box of
// seven line coordinates around the origin, most significant bit first:
// (-1,-1) (-1,0) (0,-1) (0,0) (0,1) (1,0) (1,1).
var pieceBoxCells = [7][2]int{
	{-1, -1}, {-1, 0}, {0, -1}, {0, 0}, {0, 1}, {1, 0}, {1, 1},
}

// ToByte encodes a standard 7-box piece as a bit per box cell. Color is
// not recorded.
func (p *Piece) ToByte() byte {
	var data byte
	for _, cell := range pieceBoxCells {
		data <<= 1
		if p.StateAt(cell[0], cell[1]) {
			data++
		}
	}
	return data & 0x7F
}

// PieceFromByte decodes a 7-box piece from its byte form, coloring every
// member block. The high bit must be clear and at least one bit set.
func PieceFromByte(data byte, color int) (*Piece, error) {
	if data&0x80 != 0 {
		return nil, fmt.Errorf("piece byte %#x has its high bit set", data)
	}
	if data == 0 {
		return nil, fmt.Errorf("piece byte must contain at least one block")
	}
	p := NewPiece(color)
	for idx, cell := range pieceBoxCells {
		if data>>(6-idx)&1 == 1 {
			p.Add(cell[0], cell[1])
		}
	}
	return p, nil
}

func (p *Piece) String() string {
	s := "Piece{"
	for i, b := range p.blocks {
		if i > 0 {
			s += ", "
		}
		s += b.String()
	}
	return s + "}"
}
