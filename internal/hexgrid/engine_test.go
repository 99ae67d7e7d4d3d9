package hexgrid

import "testing"

func TestNewEngineLayout(t *testing.T) {
	tests := []struct {
		radius, length int
	}{
		{2, 7},
		{3, 19},
		{4, 37},
		{5, 61},
	}
	for _, tt := range tests {
		e := NewEngine(tt.radius)
		if e.Length() != tt.length {
			t.Errorf("radius %d: Length() = %d, want %d", tt.radius, e.Length(), tt.length)
		}
		blocks := e.Blocks()
		for i := 1; i < len(blocks); i++ {
			prev, cur := blocks[i-1], blocks[i]
			if prev.LineI() > cur.LineI() ||
				(prev.LineI() == cur.LineI() && prev.LineK() >= cur.LineK()) {
				t.Fatalf("radius %d: blocks not sorted at index %d", tt.radius, i)
			}
		}
	}
}

func TestEngineBlockLookup(t *testing.T) {
	e := NewEngine(3)
	for _, b := range e.Blocks() {
		got := e.BlockAt(b.LineI(), b.LineK())
		if got != b {
			t.Fatalf("BlockAt(%d, %d) did not find stored block", b.LineI(), b.LineK())
		}
	}
	if e.BlockAt(-1, 0) != nil || e.BlockAt(5, 5) != nil {
		t.Error("out-of-range lookup should return nil")
	}
}

func TestEngineAddAndCheckAdd(t *testing.T) {
	e := NewEngine(2)
	p := NewPiece(1)
	p.Add(0, 0)

	origin := NewHex(1, 1)
	if !e.CheckAdd(origin, p) {
		t.Fatal("placement on empty board should be possible")
	}
	if err := e.Add(origin, p); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !e.BlockAt(1, 1).State() {
		t.Error("target cell should be occupied after Add")
	}
	if e.BlockAt(1, 1).Color() != 1 {
		t.Errorf("target color = %d, want 1", e.BlockAt(1, 1).Color())
	}
	if e.CheckAdd(origin, p) {
		t.Error("occupied cell should refuse placement")
	}
	if err := e.Add(origin, p); err == nil {
		t.Error("Add onto occupied cell should fail")
	}
	if e.CheckAdd(NewHex(4, 4), p) {
		t.Error("out-of-range placement should refuse")
	}
}

func TestEngineCheckPositions(t *testing.T) {
	e := NewEngine(2)
	p := NewPiece(0)
	p.Add(0, 0)
	if got := len(e.CheckPositions(p)); got != e.Length() {
		t.Errorf("single block on empty board fits %d positions, want %d", got, e.Length())
	}
	e.SetState(1, 1, true)
	if got := len(e.CheckPositions(p)); got != e.Length()-1 {
		t.Errorf("after occupying one cell got %d positions, want %d", got, e.Length()-1)
	}
}

func TestEngineEliminateFullLine(t *testing.T) {
	e := NewEngine(2)
	// Fill the middle I-line: (1,0) (1,1) (1,2).
	for k := 0; k <= 2; k++ {
		e.SetState(1, k, true)
	}
	if !e.CheckEliminateI(1) {
		t.Fatal("middle I-line should be eliminable")
	}
	if e.CheckEliminateI(0) || e.CheckEliminateJ(0) {
		t.Fatal("partial lines should not be eliminable")
	}
	if !e.CheckEliminate() {
		t.Fatal("board with a full line should report eliminable")
	}
	if got := e.CountEliminable(); got != 3 {
		t.Errorf("CountEliminable() = %d, want 3", got)
	}
	eliminated := e.Eliminate()
	if len(eliminated) != 3 {
		t.Fatalf("eliminated %d blocks, want 3", len(eliminated))
	}
	for _, b := range eliminated {
		if !b.State() {
			t.Error("eliminated clones should keep their occupied state")
		}
	}
	if e.Filled() != 0 {
		t.Errorf("board should be empty after elimination, %d filled", e.Filled())
	}
}

func TestEngineEliminateSharedBlock(t *testing.T) {
	// Filling the middle I-line plus (0,1) and (2,1) completes the
	// I-line at 1, the K-line at 1, and the two short J-lines. Every
	// block sits on two full lines, so the eliminated list reports each
	// twice while the distinct count stays at five.
	e := NewEngine(2)
	for k := 0; k <= 2; k++ {
		e.SetState(1, k, true)
	}
	e.SetState(0, 1, true)
	e.SetState(2, 1, true)
	if got := e.CountEliminable(); got != 5 {
		t.Errorf("CountEliminable() = %d, want 5 distinct blocks", got)
	}
	eliminated := e.Eliminate()
	if len(eliminated) != 10 {
		t.Errorf("eliminated list has %d entries, want 10", len(eliminated))
	}
	if e.Filled() != 0 {
		t.Errorf("board should be empty, %d filled", e.Filled())
	}
}

func TestEngineLines(t *testing.T) {
	e := NewEngine(3)
	for _, lines := range [][][]*Block{e.LinesI(), e.LinesJ(), e.LinesK()} {
		if len(lines) != 5 {
			t.Fatalf("got %d lines, want 5", len(lines))
		}
		total := 0
		for _, line := range lines {
			total += len(line)
		}
		if total != e.Length() {
			t.Errorf("line blocks total %d, want %d", total, e.Length())
		}
	}
	if len(e.LinesI()[0]) != 3 || len(e.LinesI()[2]) != 5 {
		t.Error("I-line lengths should grow toward the middle")
	}
}

func TestEnginePattern(t *testing.T) {
	e := NewEngine(2)
	if got := e.Pattern(1, 1, false); got != 0 {
		t.Errorf("empty board pattern = %d, want 0", got)
	}
	e.SetState(1, 1, true)
	if got := e.Pattern(1, 1, false); got != 0x08 {
		t.Errorf("center-only pattern = %#x, want 0x08", got)
	}
	// The three box cells above and left of the corner block fall off
	// the board and count as occupied when includeNull is set.
	e.SetState(1, 1, false)
	if got := e.Pattern(0, 0, true); got != 0x70 {
		t.Errorf("corner pattern with nulls = %#x, want 0x70", got)
	}
}

func TestEngineEntropy(t *testing.T) {
	e := NewEngine(3)
	if got := e.Entropy(); got != 0 {
		t.Errorf("uniform empty board entropy = %v, want 0", got)
	}
	e.SetState(1, 1, true)
	if got := e.Entropy(); got <= 0 {
		t.Errorf("mixed board entropy = %v, want > 0", got)
	}
}

func TestEngineDenseIndex(t *testing.T) {
	e := NewEngine(2)
	p := NewPiece(0)
	p.Add(0, 0)
	origin := NewHex(1, 1)
	if got := e.DenseIndex(origin, p); got != 0 {
		t.Errorf("isolated placement index = %v, want 0", got)
	}
	e.SetState(0, 0, true)
	e.SetState(0, 1, true)
	if got := e.DenseIndex(origin, p); got != 2.0/6.0 {
		t.Errorf("index = %v, want %v", got, 2.0/6.0)
	}
	e.SetState(1, 1, true)
	if got := e.DenseIndex(origin, p); got != 0 {
		t.Errorf("invalid placement index = %v, want 0", got)
	}
}

func TestEngineEntropyIndexInvalidPlacement(t *testing.T) {
	e := NewEngine(2)
	e.SetState(1, 1, true)
	p := NewPiece(0)
	p.Add(0, 0)
	if _, err := e.EntropyIndex(NewHex(1, 1), p); err == nil {
		t.Error("placement onto occupied cell should fail")
	}
	if _, err := e.EntropyIndex(NewHex(0, 0), p); err != nil {
		t.Errorf("valid placement should score: %v", err)
	}
}

func TestEngineBooleanRoundTrip(t *testing.T) {
	e := NewEngine(3)
	e.SetState(1, 1, true)
	e.SetState(2, 3, true)
	data := e.ToBooleans()
	decoded, err := EngineFromBooleans(data)
	if err != nil {
		t.Fatalf("EngineFromBooleans: %v", err)
	}
	if !e.EqualsIgnoreColor(decoded) {
		t.Error("round-trip should preserve occupancy")
	}
	if _, err := EngineFromBooleans(make([]bool, 8)); err == nil {
		t.Error("length matching no board should fail")
	}
}

func TestSolveRadius(t *testing.T) {
	tests := []struct {
		length, want int
	}{
		{7, 2},
		{19, 3},
		{37, 4},
		{61, 5},
		{1, -1},
		{8, -1},
		{0, -1},
	}
	for _, tt := range tests {
		if got := SolveRadius(tt.length); got != tt.want {
			t.Errorf("SolveRadius(%d) = %d, want %d", tt.length, got, tt.want)
		}
	}
}

func TestEngineCloneIsDeep(t *testing.T) {
	e := NewEngine(2)
	e.SetState(1, 1, true)
	clone := e.Clone()
	if !e.Equals(clone) {
		t.Fatal("clone should equal original")
	}
	clone.SetState(0, 0, true)
	if e.BlockAt(0, 0).State() {
		t.Error("mutating the clone should not touch the original")
	}
}

func TestEngineEquality(t *testing.T) {
	a := NewEngine(2)
	b := NewEngine(2)
	a.SetState(1, 1, true)
	b.SetState(1, 1, true)
	if !a.Equals(b) || !a.EqualsIgnoreColor(b) {
		t.Fatal("same occupancy should be equal")
	}
	b.BlockAt(1, 1).SetColor(4)
	if a.Equals(b) {
		t.Error("different colors should break strict equality")
	}
	if !a.EqualsIgnoreColor(b) {
		t.Error("color difference should not break EqualsIgnoreColor")
	}
	if a.Equals(NewEngine(3)) {
		t.Error("different radii should not be equal")
	}
}
