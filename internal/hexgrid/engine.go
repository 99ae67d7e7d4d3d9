package hexgrid

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Engine is the hexagonal game board: a dense, sorted array of blocks
// covering every cell within the board radius. Blocks are stored in
// ascending (LineI, LineK) order, which the binary search relies on.
type Engine struct {
	radius int
	blocks []*Block
}

// ErrInvalidPlacement is returned by Add when a piece block lands out of
// range or on an occupied cell.
var ErrInvalidPlacement = errors.New("hexgrid: invalid placement")

// NewEngine builds an empty board of the given radius. A board of radius
// r holds 1 + 3r(r-1) blocks.
func NewEngine(radius int) *Engine {
	e := &Engine{
		radius: radius,
		blocks: make([]*Block, 0, 1+3*radius*(radius-1)),
	}
	for a := 0; a <= radius*2-1; a++ {
		for b := 0; b <= radius*2-1; b++ {
			nb := BlockAt(a, b, ColorEmpty)
			if nb.InRange(radius) {
				e.blocks = append(e.blocks, nb)
			}
		}
	}
	// Generation order is already sorted by LineI then LineK.
	return e
}

// Reset empties every block and restores the default color.
func (e *Engine) Reset() {
	for i, b := range e.blocks {
		fresh := NewBlock(0, 0)
		fresh.Hex = b.Hex
		e.blocks[i] = fresh
	}
}

// Radius returns the board radius.
func (e *Engine) Radius() int { return e.radius }

// Filled returns the number of occupied blocks.
func (e *Engine) Filled() int {
	total := 0
	for _, b := range e.blocks {
		if b.State() {
			total++
		}
	}
	return total
}

// PercentFilled returns the occupied fraction of the board in [0, 1].
func (e *Engine) PercentFilled() float64 {
	return float64(e.Filled()) / float64(len(e.blocks))
}

// Length returns the number of blocks on the board.
func (e *Engine) Length() int { return len(e.blocks) }

// Blocks returns the board blocks in storage order.
func (e *Engine) Blocks() []*Block { return e.blocks }

// InRange reports whether the line coordinate pair lies on the board.
func (e *Engine) InRange(i, k int) bool {
	return NewHex(i, k).InRange(e.radius)
}

// BlockAt returns the block at the given line coordinates, or nil when
// the position is off the board.
func (e *Engine) BlockAt(i, k int) *Block {
	if !e.InRange(i, k) {
		return nil
	}
	if idx := e.search(i, k); idx >= 0 {
		return e.blocks[idx]
	}
	return nil
}

// BlockIndex returns the block at the given storage index.
func (e *Engine) BlockIndex(index int) *Block { return e.blocks[index] }

// SetBlock replaces the block at the given line coordinates.
func (e *Engine) SetBlock(i, k int, block *Block) {
	if !e.InRange(i, k) {
		return
	}
	if idx := e.search(i, k); idx >= 0 {
		e.blocks[idx] = block
	}
}

// SetStateIndex sets the occupancy of the block at a storage index and
// resets its color to the matching sentinel.
func (e *Engine) SetStateIndex(index int, state bool) {
	b := e.blocks[index]
	b.SetState(state)
	if state {
		b.SetColor(ColorOccupied)
	} else {
		b.SetColor(ColorEmpty)
	}
}

// SetColorIndex sets the color of the block at a storage index.
func (e *Engine) SetColorIndex(index, color int) {
	e.blocks[index].SetColor(color)
}

// SetState sets the occupancy of the block at the given line coordinates.
// The color follows the state sentinel when the state changes.
func (e *Engine) SetState(i, k int, state bool) {
	b := e.BlockAt(i, k)
	if b == nil || b.State() == state {
		return
	}
	b.SetState(state)
	if state {
		b.SetColor(ColorOccupied)
	} else {
		b.SetColor(ColorEmpty)
	}
}

func (e *Engine) search(i, k int) int {
	lo, hi := 0, len(e.blocks)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		b := e.blocks[mid]
		switch {
		case b.LineI() == i && b.LineK() == k:
			return mid
		case b.LineI() < i, b.LineI() == i && b.LineK() < k:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return -1
}

// CheckAdd reports whether the other grid, shifted by origin, lands
// entirely on empty board cells.
func (e *Engine) CheckAdd(origin Hex, other Grid) bool {
	for _, current := range other.Blocks() {
		if current == nil || !current.State() {
			continue
		}
		placed := current.AddHex(origin)
		target := e.BlockAt(placed.LineI(), placed.LineK())
		if target == nil || target.State() {
			return false
		}
	}
	return true
}

// Add places the other grid onto the board at origin. The board is
// modified in place. Placement onto occupied or out-of-range cells
// fails with ErrInvalidPlacement.
func (e *Engine) Add(origin Hex, other Grid) error {
	for _, current := range other.Blocks() {
		if current == nil || !current.State() {
			continue
		}
		placed := current.AddHex(origin)
		target := e.BlockAt(placed.LineI(), placed.LineK())
		if target == nil {
			return fmt.Errorf("%w: block out of grid", ErrInvalidPlacement)
		}
		if target.State() {
			return fmt.Errorf("%w: cell already occupied", ErrInvalidPlacement)
		}
		e.SetBlock(placed.LineI(), placed.LineK(), placed)
	}
	return nil
}

// CheckPositions returns every origin at which the other grid fits.
func (e *Engine) CheckPositions(other Grid) []Hex {
	var positions []Hex
	for _, b := range e.blocks {
		if e.CheckAdd(b.Hex, other) {
			positions = append(positions, b.Hex)
		}
	}
	return positions
}

// Eliminate clears every fully occupied I, J, and K line and returns
// clones of the cleared blocks. A block on two full lines appears twice
// in the result.
func (e *Engine) Eliminate() []*Block {
	var gathered []*Block
	for i := 0; i < e.radius*2-1; i++ {
		if e.CheckEliminateI(i) {
			gathered = append(gathered, e.lineBlocks((*Block).LineI, i)...)
		}
	}
	for j := 1 - e.radius; j < e.radius; j++ {
		if e.CheckEliminateJ(j) {
			gathered = append(gathered, e.lineBlocks((*Block).LineJ, j)...)
		}
	}
	for k := 0; k < e.radius*2-1; k++ {
		if e.CheckEliminateK(k) {
			gathered = append(gathered, e.lineBlocks((*Block).LineK, k)...)
		}
	}
	eliminated := make([]*Block, len(gathered))
	for i, b := range gathered {
		eliminated[i] = b.Clone()
		e.SetState(b.LineI(), b.LineK(), false)
	}
	return eliminated
}

// CountEliminable returns the number of distinct blocks sitting on at
// least one fully occupied line.
func (e *Engine) CountEliminable() int {
	distinct := make(map[Hex]bool)
	for i := 0; i < e.radius*2-1; i++ {
		if e.CheckEliminateI(i) {
			for _, b := range e.lineBlocks((*Block).LineI, i) {
				distinct[b.Hex] = true
			}
		}
	}
	for j := 1 - e.radius; j < e.radius; j++ {
		if e.CheckEliminateJ(j) {
			for _, b := range e.lineBlocks((*Block).LineJ, j) {
				distinct[b.Hex] = true
			}
		}
	}
	for k := 0; k < e.radius*2-1; k++ {
		if e.CheckEliminateK(k) {
			for _, b := range e.lineBlocks((*Block).LineK, k) {
				distinct[b.Hex] = true
			}
		}
	}
	return len(distinct)
}

func (e *Engine) lineBlocks(coord func(*Block) int, value int) []*Block {
	var line []*Block
	for _, b := range e.blocks {
		if coord(b) == value {
			line = append(line, b)
		}
	}
	return line
}

// CheckEliminate reports whether any line on the board is full.
func (e *Engine) CheckEliminate() bool {
	for i := 0; i < e.radius*2-1; i++ {
		if e.CheckEliminateI(i) {
			return true
		}
	}
	for j := 1 - e.radius; j < e.radius; j++ {
		if e.CheckEliminateJ(j) {
			return true
		}
	}
	for k := 0; k < e.radius*2-1; k++ {
		if e.CheckEliminateK(k) {
			return true
		}
	}
	return false
}

// CheckEliminateI reports whether the I-line at index i is fully occupied.
func (e *Engine) CheckEliminateI(i int) bool {
	for _, b := range e.blocks {
		if b.LineI() == i && !b.State() {
			return false
		}
	}
	return true
}

// CheckEliminateJ reports whether the J-line at index j is fully occupied.
func (e *Engine) CheckEliminateJ(j int) bool {
	for _, b := range e.blocks {
		if b.LineJ() == j && !b.State() {
			return false
		}
	}
	return true
}

// CheckEliminateK reports whether the K-line at index k is fully occupied.
func (e *Engine) CheckEliminateK(k int) bool {
	for _, b := range e.blocks {
		if b.LineK() == k && !b.State() {
			return false
		}
	}
	return true
}

// LinesI returns the board blocks grouped by I-line, lines in ascending
// index order and blocks within a line in storage order.
func (e *Engine) LinesI() [][]*Block {
	lines := make([][]*Block, 0, e.radius*2-1)
	for i := 0; i < e.radius*2-1; i++ {
		lines = append(lines, e.lineBlocks((*Block).LineI, i))
	}
	return lines
}

// LinesJ returns the board blocks grouped by J-line.
func (e *Engine) LinesJ() [][]*Block {
	lines := make([][]*Block, 0, e.radius*2-1)
	for j := 1 - e.radius; j < e.radius; j++ {
		lines = append(lines, e.lineBlocks((*Block).LineJ, j))
	}
	return lines
}

// LinesK returns the board blocks grouped by K-line.
func (e *Engine) LinesK() [][]*Block {
	lines := make([][]*Block, 0, e.radius*2-1)
	for k := 0; k < e.radius*2-1; k++ {
		lines = append(lines, e.lineBlocks((*Block).LineK, k))
	}
	return lines
}

// CountNeighbors counts the occupied blocks among the six neighbors of
// (i, k) on the grid. Out-of-range neighbors count as occupied when
// occupiedOutside is set. Positions off the grid count zero neighbors.
func CountNeighbors(g Grid, i, k int, occupiedOutside bool) int {
	if !g.InRange(i, k) {
		return 0
	}
	neighbors := [6][2]int{
		{i - 1, k - 1}, {i - 1, k}, {i, k - 1},
		{i, k + 1}, {i + 1, k}, {i + 1, k + 1},
	}
	count := 0
	for _, n := range neighbors {
		if g.InRange(n[0], n[1]) {
			if g.BlockAt(n[0], n[1]).State() {
				count++
			}
		} else if occupiedOutside {
			count++
		}
	}
	return count
}

// DenseIndex scores a hypothetical placement of the other grid at
// origin by how tightly it would pack against existing blocks. The
// result is populated neighbor slots over possible neighbor slots, in
// [0, 1], or 0 when the placement is invalid or isolated.
func (e *Engine) DenseIndex(origin Hex, other Grid) float64 {
	totalPossible := 0
	totalPopulated := 0
	for _, current := range other.Blocks() {
		if current == nil || !current.State() {
			continue
		}
		placed := current.AddHex(origin)
		target := e.BlockAt(placed.LineI(), placed.LineK())
		if target == nil || target.State() {
			return 0
		}
		totalPossible += 6 - CountNeighbors(other, current.LineI(), current.LineK(), false)
		totalPopulated += CountNeighbors(e, placed.LineI(), placed.LineK(), true)
	}
	if totalPossible == 0 {
		return 0
	}
	return float64(totalPopulated) / float64(totalPossible)
}

// Pattern encodes the occupancy of the 7-cell box centered at (i, k) as
// a value in [0, 127], most significant bit first over the cells
// (i-1,k-1) (i-1,k) (i,k-1) (i,k) (i,k+1) (i+1,k) (i+1,k+1).
// Out-of-range cells count as occupied when includeNull is set.
func (e *Engine) Pattern(i, k int, includeNull bool) int {
	cells := [7][2]int{
		{i - 1, k - 1}, {i - 1, k}, {i, k - 1}, {i, k},
		{i, k + 1}, {i + 1, k}, {i + 1, k + 1},
	}
	pattern := 0
	for _, c := range cells {
		pattern <<= 1
		if e.InRange(c[0], c[1]) {
			if e.BlockAt(c[0], c[1]).State() {
				pattern++
			}
		} else if includeNull {
			pattern++
		}
	}
	return pattern
}

// Entropy computes the Shannon entropy, in bits, of the distribution of
// 7-cell box patterns across the board interior. Boundary blocks whose
// boxes would leave the board are excluded.
func (e *Engine) Entropy() float64 {
	patternTotal := 0
	var patternCounts [128]int
	for _, b := range e.blocks {
		if b.ShiftJ(1).InRange(e.radius - 1) {
			patternTotal++
			patternCounts[e.Pattern(b.LineI(), b.LineK(), false)]++
		}
	}
	entropy := 0.0
	for _, count := range patternCounts {
		if count > 0 {
			p := float64(count) / float64(patternTotal)
			entropy -= p * math.Log2(p)
		}
	}
	return entropy
}

// EntropyIndex scores a hypothetical placement by the entropy change it
// would produce after elimination. The raw entropy delta, offset by
// 0.21, is squashed through a sigmoid into (0, 1).
func (e *Engine) EntropyIndex(origin Hex, other Grid) (float64, error) {
	copy := e.Clone()
	if err := copy.Add(origin, other); err != nil {
		return 0, err
	}
	copy.Eliminate()
	x := copy.Entropy() - e.Entropy() - 0.21
	return 1 / (1 + math.Exp(-3*x)), nil
}

// ToBooleans flattens the board into an occupancy array in storage
// order. Color is not recorded.
func (e *Engine) ToBooleans() []bool {
	booleans := make([]bool, len(e.blocks))
	for i, b := range e.blocks {
		booleans[i] = b.State()
	}
	return booleans
}

// SolveRadius returns the board radius matching the given block count,
// or -1 when no board configuration has that many blocks.
func SolveRadius(length int) int {
	if length <= 1 || length%3 != 1 {
		return -1
	}
	target := (length - 1) / 3
	for x := 1; x*(x-1) <= target; x++ {
		if x*(x-1) == target {
			return x
		}
	}
	return -1
}

// EngineFromBooleans rebuilds a board from an occupancy array produced
// by ToBooleans. Colors are set to the state sentinels.
func EngineFromBooleans(data []bool) (*Engine, error) {
	radius := SolveRadius(len(data))
	if radius == -1 {
		return nil, fmt.Errorf("hexgrid: boolean array of length %d matches no board", len(data))
	}
	e := NewEngine(radius)
	for i, state := range data {
		e.SetStateIndex(i, state)
	}
	return e, nil
}

// Clone returns a deep copy of the board.
func (e *Engine) Clone() *Engine {
	clone := &Engine{radius: e.radius, blocks: make([]*Block, len(e.blocks))}
	for i, b := range e.blocks {
		clone.blocks[i] = b.Clone()
	}
	return clone
}

// Equals reports whether both boards have the same radius and identical
// block states and colors.
func (e *Engine) Equals(o *Engine) bool {
	if o == nil || e.radius != o.radius {
		return false
	}
	for i := range e.blocks {
		if e.blocks[i].State() != o.blocks[i].State() || e.blocks[i].Color() != o.blocks[i].Color() {
			return false
		}
	}
	return true
}

// EqualsIgnoreColor reports whether both boards have the same radius and
// identical block states.
func (e *Engine) EqualsIgnoreColor(o *Engine) bool {
	if o == nil || e.radius != o.radius {
		return false
	}
	for i := range e.blocks {
		if e.blocks[i].State() != o.blocks[i].State() {
			return false
		}
	}
	return true
}

func (e *Engine) String() string {
	var sb strings.Builder
	sb.WriteString("Engine[blocks = {")
	for i, b := range e.blocks {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(b.String())
	}
	sb.WriteString("}]")
	return sb.String()
}
