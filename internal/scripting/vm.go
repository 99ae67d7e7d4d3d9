// Package scripting evaluates JavaScript variable bodies on an
// embedded sandboxed VM and dispatches plain arithmetic bodies to the
// gamevar evaluator.
package scripting

import (
	"fmt"
	"sync"
	"time"

	"github.com/dop251/goja"

	"github.com/hexmill/hexmill/internal/hexgrid"
)

const scriptEvalTimeout = time.Second

// Script is a compiled JavaScript variable body bound to its own
// sandboxed runtime. The runtime is not safe for concurrent use, so
// evaluation serializes on a mutex.
type Script struct {
	mu      sync.Mutex
	runtime *goja.Runtime
	program *goja.Program
}

// CompileScript compiles a JavaScript program. The program's last
// expression value becomes the variable value at evaluation time.
func CompileScript(source string) (*Script, error) {
	program, err := goja.Compile("variable", source, false)
	if err != nil {
		return nil, fmt.Errorf("script compile error: %w", err)
	}
	s := &Script{
		runtime: goja.New(),
		program: program,
	}
	s.sandbox()
	return s, nil
}

// sandbox blocks globals that would reach outside the VM. Math stays
// available by default.
func (s *Script) sandbox() {
	for _, name := range []string{"require", "fetch", "XMLHttpRequest", "eval", "Function"} {
		s.runtime.Set(name, goja.Undefined())
	}
}

// Eval runs the program against one game state and returns its final
// value coerced to a Go number. Runtime errors, timeouts, and
// non-numeric results all evaluate to nil.
func (s *Script) Eval(state hexgrid.GameState) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inject(state)
	value, err := s.run()
	if err != nil {
		return nil
	}
	return exportNumber(value)
}

// inject refreshes the read-only game state globals before a run.
func (s *Script) inject(state hexgrid.GameState) {
	score, turn, queueSize := 0, 0, 0
	length, radius := 0, 0
	fill, entropy := 0.0, 0.0
	if state != nil {
		score = state.Score()
		turn = state.Turn()
		queueSize = len(state.Queue())
		if e := state.Engine(); e != nil {
			length = e.Length()
			radius = e.Radius()
			fill = e.PercentFilled()
			entropy = e.Entropy()
		}
	}
	s.runtime.Set("score", score)
	s.runtime.Set("turn", turn)
	s.runtime.Set("queueSize", queueSize)
	// Anonymous variable bodies arrive case folded.
	s.runtime.Set("queuesize", queueSize)
	s.runtime.Set("length", length)
	s.runtime.Set("radius", radius)
	s.runtime.Set("fill", fill)
	s.runtime.Set("entropy", entropy)
}

func (s *Script) run() (goja.Value, error) {
	done := make(chan struct{})
	var value goja.Value
	var err error
	go func() {
		value, err = s.runtime.RunProgram(s.program)
		close(done)
	}()

	select {
	case <-done:
		return value, err
	case <-time.After(scriptEvalTimeout):
		// Interrupt a runaway script, then clear the flag so the
		// script stays usable for later evaluations.
		s.runtime.Interrupt("script execution timeout")
		<-done
		s.runtime.ClearInterrupt()
		return nil, fmt.Errorf("script timed out")
	}
}

// exportNumber maps a JS result onto the value surface the predicate
// language consumes: int, float64, or nil.
func exportNumber(v goja.Value) any {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	switch x := v.Export().(type) {
	case int64:
		return int(x)
	case float64:
		return x
	case bool:
		if x {
			return 1
		}
		return 0
	}
	return nil
}
