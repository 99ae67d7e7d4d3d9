package achieve

import (
	"strings"
	"testing"

	"github.com/hexmill/hexmill/internal/hexgrid"
)

func testSnapshot(t *testing.T, radius, score, turn int, cells ...[2]int) *hexgrid.Snapshot {
	t.Helper()
	e := hexgrid.NewEngine(radius)
	for _, c := range cells {
		if e.BlockAt(c[0], c[1]) == nil {
			t.Fatalf("cell (%d, %d) is not on a radius %d board", c[0], c[1], radius)
		}
		e.SetState(c[0], c[1], true)
	}
	return &hexgrid.Snapshot{Board: e, Points: score, Turns: turn}
}

func validDefinition() Definition {
	return Definition{
		Type:        TypeEngine,
		Name:        "century",
		Description: "Reach one hundred points.",
		Variables: []VariableDef{
			{Name: "points", Symbol: "score", Type: "Integer"},
		},
		MainPredicate: "engine(and(equals($points, #{100}), filled(#{0.0}, #{1.0})))",
	}
}

func TestNewCompilesAndTests(t *testing.T) {
	a, err := New(validDefinition())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Name() != "century" {
		t.Errorf("Name = %q, want century", a.Name())
	}
	if !a.Test(testSnapshot(t, 2, 100, 3)) {
		t.Error("Test with score 100 = false, want true")
	}
	if a.Test(testSnapshot(t, 2, 99, 3)) {
		t.Error("Test with score 99 = true, want false")
	}
}

func TestNewScriptVariable(t *testing.T) {
	def := validDefinition()
	def.Variables = []VariableDef{
		{Name: "bonus", Symbol: "js: score * 2", Type: "Integer"},
	}
	def.MainPredicate = "equals($bonus, #{60})"
	a, err := New(def)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !a.Test(testSnapshot(t, 2, 30, 1)) {
		t.Error("script variable with score 30 did not double to 60")
	}
}

func TestNewRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Definition)
		want   string
	}{
		{"wrong type", func(d *Definition) { d.Type = "QueueBasedAchievement" }, "unsupported achievement type"},
		{"empty name", func(d *Definition) { d.Name = "" }, "name cannot be empty"},
		{"empty predicate", func(d *Definition) { d.MainPredicate = "" }, "no main predicate"},
		{"bad variable type", func(d *Definition) { d.Variables[0].Type = "Cell" }, "unsupported variable type"},
		{"unnamed variable", func(d *Definition) { d.Variables[0].Name = "" }, "variable without a name"},
		{"bad variable symbol", func(d *Definition) { d.Variables[0].Symbol = "js: score +" }, "century"},
		{"bad predicate", func(d *Definition) { d.MainPredicate = "engine(bogus())" }, "invalid expression"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := validDefinition()
			tt.mutate(&def)
			_, err := New(def)
			if err == nil {
				t.Fatal("New accepted an invalid definition")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParseDefinitions(t *testing.T) {
	data := []byte(`{
		"Achievements": [
			{
				"type": "EngineBasedAchievement",
				"name": "first step",
				"description": "Place a piece.",
				"variables": [],
				"mainPredicate": "engine(filled(#{0.001}, #{1.0}))"
			}
		]
	}`)
	defs, err := ParseDefinitions(data)
	if err != nil {
		t.Fatalf("ParseDefinitions: %v", err)
	}
	if len(defs) != 1 || defs[0].Name != "first step" {
		t.Fatalf("defs = %+v, want one definition named 'first step'", defs)
	}
	if _, err := New(defs[0]); err != nil {
		t.Errorf("parsed definition failed to compile: %v", err)
	}

	if _, err := ParseDefinitions([]byte(`{"other": true}`)); err == nil {
		t.Error("ParseDefinitions accepted a document without an Achievements array")
	}
	if _, err := ParseDefinitions([]byte(`{`)); err == nil {
		t.Error("ParseDefinitions accepted malformed JSON")
	}
}

func TestMarshalRoundTrips(t *testing.T) {
	defs := []Definition{validDefinition()}
	data, err := Marshal(defs)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back, err := ParseDefinitions(data)
	if err != nil {
		t.Fatalf("ParseDefinitions: %v", err)
	}
	if len(back) != 1 || back[0].Name != defs[0].Name || back[0].MainPredicate != defs[0].MainPredicate {
		t.Errorf("round trip changed the definition: %+v", back)
	}
}
