package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hexmill/hexmill/internal/achieve"
	"github.com/hexmill/hexmill/internal/hexgrid"
)

// APIError represents a structured error response with context
type APIError struct {
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Timestamp string         `json:"timestamp,omitempty"`
}

// Error implements the error interface
func (e APIError) Error() string {
	return e.Message
}

// Error types with proper categorization
const (
	ErrTypeInvalidExpression = "invalid_expression"
	ErrTypeInvalidState      = "invalid_state"
	ErrTypeValidation        = "validation_error"
	ErrTypeNotFound          = "not_found"
	ErrTypeInternal          = "internal_error"
)

// CheckRequest asks whether an expression compiles.
type CheckRequest struct {
	Expression string `json:"expression"`
}

// CheckResponse reports the compile outcome. Kind is set on success;
// Error carries the compile diagnosis on failure.
type CheckResponse struct {
	OK    bool   `json:"ok"`
	Kind  string `json:"kind,omitempty"`
	Error string `json:"error,omitempty"`
}

// StatePayload is the wire form of a game state snapshot. The board is
// one character per cell in storage order using the boolean board
// alphabet; queue entries are 7-bit piece codes.
type StatePayload struct {
	Board string `json:"board"`
	Queue []int  `json:"queue,omitempty"`
	Score int    `json:"score"`
	Turn  int    `json:"turn"`
}

// Snapshot converts the payload into an evaluable game state.
func (p *StatePayload) Snapshot() (*hexgrid.Snapshot, error) {
	if p.Board == "" {
		return nil, fmt.Errorf("board cannot be empty")
	}
	data := make([]bool, len(p.Board))
	for i := 0; i < len(p.Board); i++ {
		switch p.Board[i] {
		case '0', 'o', 'O', '-', 'f', 'F':
			data[i] = false
		case '1', 'x', 'X', '+', 't', 'T':
			data[i] = true
		default:
			return nil, fmt.Errorf("invalid board character %q at position %d", p.Board[i], i)
		}
	}
	board, err := hexgrid.EngineFromBooleans(data)
	if err != nil {
		return nil, err
	}
	pieces := make([]*hexgrid.Piece, 0, len(p.Queue))
	for i, code := range p.Queue {
		if code < 0 || code > 127 {
			return nil, fmt.Errorf("queue entry %d: piece code %d out of range", i, code)
		}
		piece, err := hexgrid.PieceFromByte(byte(code), hexgrid.ColorOccupied)
		if err != nil {
			return nil, fmt.Errorf("queue entry %d: %w", i, err)
		}
		pieces = append(pieces, piece)
	}
	return &hexgrid.Snapshot{
		Board:  board,
		Pieces: pieces,
		Points: p.Score,
		Turns:  p.Turn,
	}, nil
}

// EvalRequest evaluates an expression against a snapshot.
type EvalRequest struct {
	Expression string       `json:"expression"`
	State      StatePayload `json:"state"`
}

// EvalResponse carries the evaluation result.
type EvalResponse struct {
	Result bool `json:"result"`
}

// StoredDefinition is one achievement row with its wire-form blob.
type StoredDefinition struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Definition json.RawMessage `json:"definition"`
	CreatedAt  time.Time       `json:"created_at"`
}

// DefinitionsResponse lists stored achievement definitions.
type DefinitionsResponse struct {
	Achievements []StoredDefinition `json:"achievements"`
}

// CreateResponse acknowledges a stored definition.
type CreateResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TestResponse reports the unlocks fired by one posted state.
type TestResponse struct {
	Unlocked []string `json:"unlocked"`
}

// UnlocksResponse lists recorded unlocks.
type UnlocksResponse struct {
	Unlocks []achieve.Unlock `json:"unlocks"`
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}
