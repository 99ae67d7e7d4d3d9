package hexgrid

import "testing"

func TestPieceAddSortsBlocks(t *testing.T) {
	p := NewPiece(3)
	p.Add(1, 1)
	p.Add(0, 0)
	p.Add(1, 0)
	blocks := p.Blocks()
	if len(blocks) != 3 {
		t.Fatalf("Length() = %d, want 3", len(blocks))
	}
	coords := [][2]int{{0, 0}, {1, 0}, {1, 1}}
	for i, want := range coords {
		if blocks[i].LineI() != want[0] || blocks[i].LineK() != want[1] {
			t.Errorf("block %d at (%d, %d), want (%d, %d)",
				i, blocks[i].LineI(), blocks[i].LineK(), want[0], want[1])
		}
	}
	for _, b := range blocks {
		if !b.State() || b.Color() != 3 {
			t.Errorf("block %v should be occupied with color 3", b)
		}
	}
}

func TestPieceByteRoundTrip(t *testing.T) {
	p := NewPiece(5)
	p.Add(0, 0)
	p.Add(0, 1)
	p.Add(1, 1)
	data := p.ToByte()
	decoded, err := PieceFromByte(data, 5)
	if err != nil {
		t.Fatalf("PieceFromByte(%#x): %v", data, err)
	}
	if !p.Equals(decoded) {
		t.Errorf("round-trip mismatch: %v vs %v", p, decoded)
	}
	if decoded.ToByte() != data {
		t.Errorf("re-encode = %#x, want %#x", decoded.ToByte(), data)
	}
}

func TestPieceByteBitOrder(t *testing.T) {
	// The box cells are encoded MSB first; the origin cell (0, 0) is
	// the fourth bit from the top.
	p := NewPiece(0)
	p.Add(0, 0)
	if got := p.ToByte(); got != 0x08 {
		t.Errorf("single origin block = %#x, want 0x08", got)
	}
	q := NewPiece(0)
	q.Add(-1, -1)
	if got := q.ToByte(); got != 0x40 {
		t.Errorf("top-left box cell = %#x, want 0x40", got)
	}
}

func TestPieceFromByteRejectsInvalid(t *testing.T) {
	if _, err := PieceFromByte(0x80, 0); err == nil {
		t.Error("high bit set should be rejected")
	}
	if _, err := PieceFromByte(0, 0); err == nil {
		t.Error("empty piece byte should be rejected")
	}
}

func TestPieceEqualsIgnoresColor(t *testing.T) {
	a := NewPiece(1)
	a.Add(0, 0)
	a.Add(1, 0)
	b := NewPiece(7)
	b.Add(1, 0)
	b.Add(0, 0)
	if !a.Equals(b) {
		t.Error("same positions with different colors should be equal")
	}
	b.Add(1, 1)
	if a.Equals(b) {
		t.Error("different lengths should not be equal")
	}
}
