package store

import (
	"errors"
	"testing"
	"time"

	"github.com/hexmill/hexmill/internal/achieve"
)

func testDB(t *testing.T) *SQLiteDB {
	t.Helper()
	db, err := NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func TestDefinitionCRUD(t *testing.T) {
	db := testDB(t)

	d := &Definition{
		Name:       "century",
		Definition: `{"type":"EngineBasedAchievement","name":"century"}`,
	}
	if err := db.SaveDefinition(d); err != nil {
		t.Fatalf("SaveDefinition: %v", err)
	}
	if d.ID == "" {
		t.Fatal("SaveDefinition did not assign an id")
	}

	got, err := db.GetDefinition(d.ID)
	if err != nil {
		t.Fatalf("GetDefinition: %v", err)
	}
	if got.Name != "century" || got.Definition != d.Definition {
		t.Errorf("GetDefinition = %+v, want saved row", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("stored definition has no creation time")
	}

	// Same name replaces the blob instead of duplicating the row.
	updated := &Definition{
		Name:       "century",
		Definition: `{"type":"EngineBasedAchievement","name":"century","description":"v2"}`,
	}
	if err := db.SaveDefinition(updated); err != nil {
		t.Fatalf("SaveDefinition (update): %v", err)
	}
	defs, err := db.ListDefinitions()
	if err != nil {
		t.Fatalf("ListDefinitions: %v", err)
	}
	if len(defs) != 1 {
		t.Fatalf("ListDefinitions returned %d rows, want 1", len(defs))
	}
	if defs[0].Definition != updated.Definition {
		t.Errorf("definition blob not replaced: %s", defs[0].Definition)
	}

	if err := db.DeleteDefinition(d.ID); err != nil {
		t.Fatalf("DeleteDefinition: %v", err)
	}
	if _, err := db.GetDefinition(d.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetDefinition after delete = %v, want ErrNotFound", err)
	}
	if err := db.DeleteDefinition(d.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteDefinition twice = %v, want ErrNotFound", err)
	}
}

func TestUnlockPersistence(t *testing.T) {
	db := testDB(t)

	u := achieve.Unlock{
		Achievement: "first step",
		UnlockedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Turn:        5,
		Score:       120,
	}
	if err := db.SaveUnlock(u); err != nil {
		t.Fatalf("SaveUnlock: %v", err)
	}
	// Replays are ignored rather than duplicated.
	if err := db.SaveUnlock(u); err != nil {
		t.Fatalf("SaveUnlock (replay): %v", err)
	}

	unlocks, err := db.ListUnlocks()
	if err != nil {
		t.Fatalf("ListUnlocks: %v", err)
	}
	if len(unlocks) != 1 {
		t.Fatalf("ListUnlocks returned %d rows, want 1", len(unlocks))
	}
	got := unlocks[0]
	if got.Achievement != u.Achievement || got.Turn != 5 || got.Score != 120 {
		t.Errorf("ListUnlocks = %+v, want %+v", got, u)
	}

	ok, err := db.IsUnlocked("first step")
	if err != nil {
		t.Fatalf("IsUnlocked: %v", err)
	}
	if !ok {
		t.Error("IsUnlocked = false for a recorded unlock")
	}
	ok, err = db.IsUnlocked("century")
	if err != nil {
		t.Fatalf("IsUnlocked: %v", err)
	}
	if ok {
		t.Error("IsUnlocked = true for an unrecorded achievement")
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := testDB(t)
	if err := db.Migrate(); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	if err := db.SaveDefinition(&Definition{Name: "a", Definition: "{}"}); err != nil {
		t.Fatalf("SaveDefinition after re-migrate: %v", err)
	}
}
