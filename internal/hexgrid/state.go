package hexgrid

// GameState is a read view of a game in progress: the board, the
// upcoming piece queue, and the running score and turn counters.
type GameState interface {
	Engine() *Engine
	Queue() []*Piece
	Score() int
	Turn() int
}

// Snapshot is a plain GameState value, handy for tests and for states
// deserialized off the wire.
type Snapshot struct {
	Board  *Engine
	Pieces []*Piece
	Points int
	Turns  int
}

func (s *Snapshot) Engine() *Engine { return s.Board }
func (s *Snapshot) Queue() []*Piece { return s.Pieces }
func (s *Snapshot) Score() int      { return s.Points }
func (s *Snapshot) Turn() int       { return s.Turns }
