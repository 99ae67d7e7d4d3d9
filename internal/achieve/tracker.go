package achieve

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/hexmill/hexmill/internal/hexgrid"
)

// Unlock records one achievement firing.
type Unlock struct {
	Achievement string    `json:"achievement"`
	UnlockedAt  time.Time `json:"unlockedAt"`
	Turn        int       `json:"turn"`
	Score       int       `json:"score"`
}

// Recorder persists unlocks across restarts. The tracker works without
// one; unlock state is then process local.
type Recorder interface {
	SaveUnlock(u Unlock) error
	ListUnlocks() ([]Unlock, error)
}

// Tracker owns a compiled achievement set plus unlock bookkeeping.
// Definitions can be replaced while running without dropping unlock
// state.
type Tracker struct {
	mu           sync.Mutex
	logger       *log.Logger
	recorder     Recorder
	achievements []*Achievement
	unlocked     map[string]Unlock
}

// NewTracker builds an empty tracker. When a recorder is given,
// previously persisted unlocks are loaded so already earned
// achievements do not fire again.
func NewTracker(recorder Recorder, logger *log.Logger) (*Tracker, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	t := &Tracker{
		logger:   logger,
		recorder: recorder,
		unlocked: make(map[string]Unlock),
	}
	if recorder != nil {
		unlocks, err := recorder.ListUnlocks()
		if err != nil {
			return nil, fmt.Errorf("load unlocks: %w", err)
		}
		for _, u := range unlocks {
			t.unlocked[u.Achievement] = u
		}
	}
	return t, nil
}

// Load compiles and installs a definition set. The whole set must
// compile; on any failure the previous set stays installed.
func (t *Tracker) Load(defs []Definition) error {
	compiled := make([]*Achievement, 0, len(defs))
	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		if seen[def.Name] {
			return fmt.Errorf("duplicate achievement name %q", def.Name)
		}
		seen[def.Name] = true
		a, err := New(def)
		if err != nil {
			return err
		}
		compiled = append(compiled, a)
	}

	t.mu.Lock()
	t.achievements = compiled
	t.mu.Unlock()
	t.logger.Printf("loaded %d achievement definitions", len(compiled))
	return nil
}

// LoadFile reads and installs a definition file.
func (t *Tracker) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read achievements file: %w", err)
	}
	defs, err := ParseDefinitions(data)
	if err != nil {
		return err
	}
	return t.Load(defs)
}

// Check tests every locked achievement against the state, records new
// unlocks, and returns them. Persistence failures are logged; the
// unlock still counts for this process.
func (t *Tracker) Check(state hexgrid.GameState) []Unlock {
	t.mu.Lock()
	defer t.mu.Unlock()

	var fired []Unlock
	for _, a := range t.achievements {
		if _, done := t.unlocked[a.Name()]; done {
			continue
		}
		if !a.Test(state) {
			continue
		}
		u := Unlock{
			Achievement: a.Name(),
			UnlockedAt:  time.Now().UTC(),
		}
		if state != nil {
			u.Turn = state.Turn()
			u.Score = state.Score()
		}
		t.unlocked[a.Name()] = u
		fired = append(fired, u)
		t.logger.Printf("achievement unlocked: %s (turn %d, score %d)", u.Achievement, u.Turn, u.Score)
		if t.recorder != nil {
			if err := t.recorder.SaveUnlock(u); err != nil {
				t.logger.Printf("persist unlock %s: %v", u.Achievement, err)
			}
		}
	}
	return fired
}

// Unlocked returns a copy of the recorded unlocks.
func (t *Tracker) Unlocked() []Unlock {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Unlock, 0, len(t.unlocked))
	for _, u := range t.unlocked {
		out = append(out, u)
	}
	return out
}

// IsUnlocked reports whether the named achievement has fired.
func (t *Tracker) IsUnlocked(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.unlocked[name]
	return ok
}

// Definitions returns the wire forms of the installed set.
func (t *Tracker) Definitions() []Definition {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Definition, 0, len(t.achievements))
	for _, a := range t.achievements {
		out = append(out, a.Definition())
	}
	return out
}
