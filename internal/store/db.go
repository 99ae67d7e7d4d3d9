package store

import (
	"errors"
	"time"

	"github.com/hexmill/hexmill/internal/achieve"
)

// ErrNotFound is returned when a definition id does not exist.
var ErrNotFound = errors.New("store: not found")

// DB represents the database interface
type DB interface {
	Close() error
	Migrate() error
	SaveDefinition(d *Definition) error
	GetDefinition(id string) (*Definition, error)
	ListDefinitions() ([]Definition, error)
	DeleteDefinition(id string) error
	SaveUnlock(u achieve.Unlock) error
	ListUnlocks() ([]achieve.Unlock, error)
	IsUnlocked(name string) (bool, error)
}

// Definition is a stored achievement definition row. The wire form
// stays a JSON blob; the name is denormalized for uniqueness and
// lookups.
type Definition struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Definition string    `json:"definition" db:"definition"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
