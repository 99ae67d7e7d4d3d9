// Package achieve loads achievement definitions, compiles their goal
// expressions, and tracks unlock state against played game states.
package achieve

import (
	"encoding/json"
	"fmt"

	"github.com/hexmill/hexmill/internal/goalexpr"
	"github.com/hexmill/hexmill/internal/hexgrid"
)

// TypeEngine is the definition type this package compiles. Other types
// are rejected at load time.
const TypeEngine = "EngineBasedAchievement"

// VariableDef declares one named variable of a definition: the name the
// predicate references, the source expression recomputed each test, and
// the declared value type (Integer, Double, or Piece).
type VariableDef struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Type   string `json:"type"`
}

// Definition is the wire form of an achievement.
type Definition struct {
	Type          string        `json:"type"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Variables     []VariableDef `json:"variables"`
	MainPredicate string        `json:"mainPredicate"`
}

// File is the on-disk collection shape.
type File struct {
	Achievements []Definition `json:"Achievements"`
}

// Achievement is a compiled definition ready to test. Updating the
// variables and evaluating the goal share the achievement's context, so
// a single achievement must not be tested concurrently.
type Achievement struct {
	def  Definition
	vars []*goalexpr.Variable
	goal *goalexpr.Goal
}

func varType(name string) (goalexpr.VarType, error) {
	switch name {
	case "Integer":
		return goalexpr.VarInt, nil
	case "Double":
		return goalexpr.VarDouble, nil
	case "Piece":
		return goalexpr.VarPiece, nil
	}
	return 0, fmt.Errorf("unsupported variable type %q", name)
}

// New compiles a definition. Every variable symbol and the main
// predicate must compile; failures surface here so a registered
// achievement can never error at test time.
func New(def Definition) (*Achievement, error) {
	if def.Type != TypeEngine {
		return nil, fmt.Errorf("unsupported achievement type %q", def.Type)
	}
	if def.Name == "" {
		return nil, fmt.Errorf("achievement name cannot be empty")
	}
	if def.MainPredicate == "" {
		return nil, fmt.Errorf("achievement %q has no main predicate", def.Name)
	}

	ctx := goalexpr.NewContext()
	a := &Achievement{def: def}
	for _, vd := range def.Variables {
		if vd.Name == "" {
			return nil, fmt.Errorf("achievement %q declares a variable without a name", def.Name)
		}
		typ, err := varType(vd.Type)
		if err != nil {
			return nil, fmt.Errorf("achievement %q variable %q: %w", def.Name, vd.Name, err)
		}
		v, err := goalexpr.NewVariable(vd.Symbol, typ)
		if err != nil {
			return nil, fmt.Errorf("achievement %q variable %q: %w", def.Name, vd.Name, err)
		}
		ctx.SetVar(vd.Name, v)
		a.vars = append(a.vars, v)
	}

	goal, err := goalexpr.Compile(def.MainPredicate, ctx)
	if err != nil {
		return nil, fmt.Errorf("achievement %q: %w", def.Name, err)
	}
	a.goal = goal
	return a, nil
}

// Name returns the achievement name.
func (a *Achievement) Name() string { return a.def.Name }

// Description returns the achievement description.
func (a *Achievement) Description() string { return a.def.Description }

// Definition returns the wire form the achievement was compiled from.
func (a *Achievement) Definition() Definition { return a.def }

// Test recomputes every declared variable from the state and evaluates
// the goal expression.
func (a *Achievement) Test(state hexgrid.GameState) bool {
	for _, v := range a.vars {
		v.Update(state)
	}
	return a.goal.Test(state)
}

// ParseDefinitions decodes the on-disk collection shape.
func ParseDefinitions(data []byte) ([]Definition, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid achievements JSON: %w", err)
	}
	if f.Achievements == nil {
		return nil, fmt.Errorf("invalid achievements JSON: missing 'Achievements' array")
	}
	return f.Achievements, nil
}

// Marshal encodes definitions into the on-disk collection shape.
func Marshal(defs []Definition) ([]byte, error) {
	data, err := json.MarshalIndent(File{Achievements: defs}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode achievements: %w", err)
	}
	return data, nil
}
