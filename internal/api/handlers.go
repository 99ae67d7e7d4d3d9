package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hexmill/hexmill/internal/achieve"
	"github.com/hexmill/hexmill/internal/goalexpr"
	"github.com/hexmill/hexmill/internal/store"
)

// handleCheck compile-checks an expression. Compile failures are a
// normal outcome, so the response stays 200 with the diagnosis inline.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorHandler.HandleValidationError(w, r, "body", "invalid JSON request body")
		return
	}
	if req.Expression == "" {
		s.errorHandler.HandleValidationError(w, r, "expression", "expression cannot be empty")
		return
	}

	goal, err := goalexpr.Compile(req.Expression, nil)
	if err != nil {
		s.writeJSON(w, http.StatusOK, CheckResponse{OK: false, Error: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, CheckResponse{OK: true, Kind: goal.Kind()})
}

// handleEval compiles an expression and evaluates it against a posted
// snapshot.
func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	var req EvalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorHandler.HandleValidationError(w, r, "body", "invalid JSON request body")
		return
	}
	if req.Expression == "" {
		s.errorHandler.HandleValidationError(w, r, "expression", "expression cannot be empty")
		return
	}

	goal, err := goalexpr.Compile(req.Expression, nil)
	if err != nil {
		apiErr := NewError(ErrTypeInvalidExpression, "expression does not compile").WithCause(err).Build()
		s.errorHandler.HandleError(w, r, apiErr, http.StatusBadRequest)
		return
	}
	state, err := req.State.Snapshot()
	if err != nil {
		apiErr := NewError(ErrTypeInvalidState, "snapshot does not decode").WithCause(err).Build()
		s.errorHandler.HandleError(w, r, apiErr, http.StatusBadRequest)
		return
	}

	s.writeJSON(w, http.StatusOK, EvalResponse{Result: goal.Test(state)})
}

func (s *Server) handleListDefinitions(w http.ResponseWriter, r *http.Request) {
	defs, err := s.db.ListDefinitions()
	if err != nil {
		s.errorHandler.HandleError(w, r, err, http.StatusInternalServerError)
		return
	}
	out := make([]StoredDefinition, 0, len(defs))
	for _, d := range defs {
		out = append(out, StoredDefinition{
			ID:         d.ID,
			Name:       d.Name,
			Definition: json.RawMessage(d.Definition),
			CreatedAt:  d.CreatedAt,
		})
	}
	s.writeJSON(w, http.StatusOK, DefinitionsResponse{Achievements: out})
}

// handleCreateDefinition validates a definition by compiling it before
// anything is stored.
func (s *Server) handleCreateDefinition(w http.ResponseWriter, r *http.Request) {
	var def achieve.Definition
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		s.errorHandler.HandleValidationError(w, r, "body", "invalid JSON request body")
		return
	}
	if _, err := achieve.New(def); err != nil {
		apiErr := NewError(ErrTypeInvalidExpression, "definition does not compile").WithCause(err).Build()
		s.errorHandler.HandleError(w, r, apiErr, http.StatusBadRequest)
		return
	}

	blob, err := json.Marshal(def)
	if err != nil {
		s.errorHandler.HandleError(w, r, err, http.StatusInternalServerError)
		return
	}
	row := &store.Definition{Name: def.Name, Definition: string(blob)}
	if err := s.db.SaveDefinition(row); err != nil {
		s.errorHandler.HandleError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusCreated, CreateResponse{ID: row.ID, Name: row.Name})
}

func (s *Server) handleDeleteDefinition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.db.DeleteDefinition(id)
	if errors.Is(err, store.ErrNotFound) {
		apiErr := NewError(ErrTypeNotFound, "definition not found").WithContext("id", id).Build()
		s.errorHandler.HandleError(w, r, apiErr, http.StatusNotFound)
		return
	}
	if err != nil {
		s.errorHandler.HandleError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleTestAchievements runs every stored definition against a posted
// state and records fresh unlocks. Rows that no longer compile are
// skipped and logged rather than failing the whole run.
func (s *Server) handleTestAchievements(w http.ResponseWriter, r *http.Request) {
	var payload StatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.errorHandler.HandleValidationError(w, r, "body", "invalid JSON request body")
		return
	}
	state, err := payload.Snapshot()
	if err != nil {
		apiErr := NewError(ErrTypeInvalidState, "snapshot does not decode").WithCause(err).Build()
		s.errorHandler.HandleError(w, r, apiErr, http.StatusBadRequest)
		return
	}

	rows, err := s.db.ListDefinitions()
	if err != nil {
		s.errorHandler.HandleError(w, r, err, http.StatusInternalServerError)
		return
	}

	unlocked := []string{}
	for _, row := range rows {
		var def achieve.Definition
		if err := json.Unmarshal([]byte(row.Definition), &def); err != nil {
			s.logger.Printf("stored definition %s does not decode: %v", row.ID, err)
			continue
		}
		a, err := achieve.New(def)
		if err != nil {
			s.logger.Printf("stored definition %s does not compile: %v", row.ID, err)
			continue
		}
		done, err := s.db.IsUnlocked(a.Name())
		if err != nil {
			s.errorHandler.HandleError(w, r, err, http.StatusInternalServerError)
			return
		}
		if done || !a.Test(state) {
			continue
		}
		u := achieve.Unlock{
			Achievement: a.Name(),
			UnlockedAt:  time.Now().UTC(),
			Turn:        state.Turn(),
			Score:       state.Score(),
		}
		if err := s.db.SaveUnlock(u); err != nil {
			s.errorHandler.HandleError(w, r, err, http.StatusInternalServerError)
			return
		}
		unlocked = append(unlocked, u.Achievement)
	}
	if s.tracker != nil {
		seen := make(map[string]bool, len(unlocked))
		for _, name := range unlocked {
			seen[name] = true
		}
		for _, u := range s.tracker.Check(state) {
			if !seen[u.Achievement] {
				unlocked = append(unlocked, u.Achievement)
			}
		}
	}
	s.writeJSON(w, http.StatusOK, TestResponse{Unlocked: unlocked})
}

func (s *Server) handleListUnlocks(w http.ResponseWriter, r *http.Request) {
	unlocks, err := s.db.ListUnlocks()
	if err != nil {
		s.errorHandler.HandleError(w, r, err, http.StatusInternalServerError)
		return
	}
	if unlocks == nil {
		unlocks = []achieve.Unlock{}
	}
	s.writeJSON(w, http.StatusOK, UnlocksResponse{Unlocks: unlocks})
}
