package achieve

import (
	"os"
	"path/filepath"
	"testing"
)

type memRecorder struct {
	saved  []Unlock
	seeded []Unlock
}

func (r *memRecorder) SaveUnlock(u Unlock) error {
	r.saved = append(r.saved, u)
	return nil
}

func (r *memRecorder) ListUnlocks() ([]Unlock, error) {
	return r.seeded, nil
}

func trackerDefs() []Definition {
	return []Definition{
		{
			Type:          TypeEngine,
			Name:          "first step",
			Description:   "Fill any cell.",
			MainPredicate: "engine(filled(#{0.001}, #{1.0}))",
		},
		{
			Type:          TypeEngine,
			Name:          "century",
			Description:   "Reach one hundred points.",
			Variables:     []VariableDef{{Name: "points", Symbol: "score", Type: "Integer"}},
			MainPredicate: "equals($points, #{100})",
		},
	}
}

func TestTrackerCheckUnlocksOnce(t *testing.T) {
	rec := &memRecorder{}
	tr, err := NewTracker(rec, nil)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	if err := tr.Load(trackerDefs()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	empty := testSnapshot(t, 2, 0, 0)
	if fired := tr.Check(empty); len(fired) != 0 {
		t.Fatalf("Check(empty board) fired %v, want none", fired)
	}

	played := testSnapshot(t, 2, 100, 5, [2]int{1, 1})
	fired := tr.Check(played)
	if len(fired) != 2 {
		t.Fatalf("Check fired %d unlocks, want 2", len(fired))
	}
	for _, u := range fired {
		if u.Turn != 5 || u.Score != 100 {
			t.Errorf("unlock %q records turn %d score %d, want 5 and 100", u.Achievement, u.Turn, u.Score)
		}
	}
	if len(rec.saved) != 2 {
		t.Errorf("recorder persisted %d unlocks, want 2", len(rec.saved))
	}

	if fired := tr.Check(played); len(fired) != 0 {
		t.Errorf("second Check refired %v", fired)
	}
	if !tr.IsUnlocked("first step") || !tr.IsUnlocked("century") {
		t.Error("unlock state missing after Check")
	}
}

func TestTrackerSeededUnlocksDoNotRefire(t *testing.T) {
	rec := &memRecorder{seeded: []Unlock{{Achievement: "first step"}}}
	tr, err := NewTracker(rec, nil)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	if err := tr.Load(trackerDefs()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	fired := tr.Check(testSnapshot(t, 2, 0, 1, [2]int{0, 0}))
	if len(fired) != 0 {
		t.Errorf("Check refired seeded unlock: %v", fired)
	}
}

func TestTrackerLoadKeepsPreviousSetOnError(t *testing.T) {
	tr, err := NewTracker(nil, nil)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	if err := tr.Load(trackerDefs()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	broken := trackerDefs()
	broken[1].MainPredicate = "engine(bogus())"
	if err := tr.Load(broken); err == nil {
		t.Fatal("Load accepted a broken definition set")
	}
	if got := len(tr.Definitions()); got != 2 {
		t.Errorf("previous set dropped: %d definitions remain, want 2", got)
	}

	dup := trackerDefs()
	dup[1].Name = dup[0].Name
	if err := tr.Load(dup); err == nil {
		t.Error("Load accepted duplicate achievement names")
	}
}

func TestTrackerLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "achievements.json")
	data, err := Marshal(trackerDefs())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tr, err := NewTracker(nil, nil)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	if err := tr.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := len(tr.Definitions()); got != 2 {
		t.Errorf("loaded %d definitions, want 2", got)
	}

	if err := tr.LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("LoadFile succeeded on a missing file")
	}
}
