package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hexmill/hexmill/internal/store"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	db, err := store.NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return NewServer(db)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	h := testServer(t).Routes()
	w := doJSON(t, h, "GET", "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
}

func TestCheckEndpoint(t *testing.T) {
	h := testServer(t).Routes()

	w := doJSON(t, h, "POST", "/expr/check", CheckRequest{Expression: "engine(filled(#{0.0}, #{1.0}))"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp CheckResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.OK || resp.Kind != "engine predicate" {
		t.Errorf("resp = %+v, want ok engine predicate", resp)
	}

	w = doJSON(t, h, "POST", "/expr/check", CheckRequest{Expression: "engine(bogus())"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.OK || !strings.Contains(resp.Error, "unknown function") {
		t.Errorf("resp = %+v, want compile diagnosis", resp)
	}

	w = doJSON(t, h, "POST", "/expr/check", CheckRequest{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty expression: status %d, want 400", w.Code)
	}
}

func TestEvalEndpoint(t *testing.T) {
	h := testServer(t).Routes()

	// Radius 2 board with its center cell occupied.
	state := StatePayload{Board: "0001000", Queue: []int{8}, Score: 10, Turn: 2}
	tests := []struct {
		expr string
		want bool
	}{
		{"engine(filled(#{0.1}, #{1.0}))", true},
		{"engine(filled(#{0.5}, #{1.0}))", false},
		{"engine(is(#{0001000e}))", true},
		{"equals(${piece: first}, #{8p})", true},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			w := doJSON(t, h, "POST", "/expr/eval", EvalRequest{Expression: tt.expr, State: state})
			if w.Code != http.StatusOK {
				t.Fatalf("status %d, body %s", w.Code, w.Body.String())
			}
			var resp EvalResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Result != tt.want {
				t.Errorf("result = %v, want %v", resp.Result, tt.want)
			}
		})
	}

	w := doJSON(t, h, "POST", "/expr/eval", EvalRequest{
		Expression: "engine(bogus())",
		State:      state,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad expression: status %d, want 400", w.Code)
	}

	w = doJSON(t, h, "POST", "/expr/eval", EvalRequest{
		Expression: "engine(filled(#{0.0}, #{1.0}))",
		State:      StatePayload{Board: "0000"},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad board length: status %d, want 400", w.Code)
	}
	var apiErr APIError
	if err := json.Unmarshal(w.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if apiErr.Type != ErrTypeInvalidState {
		t.Errorf("error type = %q, want %q", apiErr.Type, ErrTypeInvalidState)
	}
}

func TestAchievementLifecycle(t *testing.T) {
	h := testServer(t).Routes()

	def := map[string]any{
		"type":          "EngineBasedAchievement",
		"name":          "first step",
		"description":   "Place a piece.",
		"variables":     []any{},
		"mainPredicate": "engine(filled(#{0.001}, #{1.0}))",
	}
	w := doJSON(t, h, "POST", "/achievements", def)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d, body %s", w.Code, w.Body.String())
	}
	var created CreateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID == "" {
		t.Fatal("create response has no id")
	}

	w = doJSON(t, h, "GET", "/achievements", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status %d", w.Code)
	}
	var list DefinitionsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(list.Achievements) != 1 || list.Achievements[0].Name != "first step" {
		t.Fatalf("list = %+v, want one row named 'first step'", list.Achievements)
	}

	// Empty board does not unlock; an occupied board does, once.
	w = doJSON(t, h, "POST", "/achievements/test", StatePayload{Board: "0000000"})
	var tested TestResponse
	if err := json.Unmarshal(w.Body.Bytes(), &tested); err != nil {
		t.Fatalf("decode test response: %v", err)
	}
	if len(tested.Unlocked) != 0 {
		t.Errorf("empty board unlocked %v", tested.Unlocked)
	}

	w = doJSON(t, h, "POST", "/achievements/test", StatePayload{Board: "0001000", Turn: 4, Score: 30})
	if err := json.Unmarshal(w.Body.Bytes(), &tested); err != nil {
		t.Fatalf("decode test response: %v", err)
	}
	if len(tested.Unlocked) != 1 || tested.Unlocked[0] != "first step" {
		t.Fatalf("unlocked = %v, want [first step]", tested.Unlocked)
	}

	w = doJSON(t, h, "POST", "/achievements/test", StatePayload{Board: "0001000"})
	if err := json.Unmarshal(w.Body.Bytes(), &tested); err != nil {
		t.Fatalf("decode test response: %v", err)
	}
	if len(tested.Unlocked) != 0 {
		t.Errorf("second run refired %v", tested.Unlocked)
	}

	w = doJSON(t, h, "GET", "/unlocks", nil)
	var unlocks UnlocksResponse
	if err := json.Unmarshal(w.Body.Bytes(), &unlocks); err != nil {
		t.Fatalf("decode unlocks response: %v", err)
	}
	if len(unlocks.Unlocks) != 1 || unlocks.Unlocks[0].Turn != 4 || unlocks.Unlocks[0].Score != 30 {
		t.Errorf("unlocks = %+v, want one at turn 4 score 30", unlocks.Unlocks)
	}

	w = doJSON(t, h, "DELETE", "/achievements/"+created.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("delete: status %d, want 204", w.Code)
	}
	w = doJSON(t, h, "DELETE", "/achievements/"+created.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("delete twice: status %d, want 404", w.Code)
	}
}

func TestCreateRejectsBrokenDefinition(t *testing.T) {
	h := testServer(t).Routes()
	def := map[string]any{
		"type":          "EngineBasedAchievement",
		"name":          "broken",
		"description":   "",
		"mainPredicate": "engine(bogus())",
	}
	w := doJSON(t, h, "POST", "/achievements", def)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
	var apiErr APIError
	if err := json.Unmarshal(w.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if apiErr.Type != ErrTypeInvalidExpression {
		t.Errorf("error type = %q, want %q", apiErr.Type, ErrTypeInvalidExpression)
	}
}
