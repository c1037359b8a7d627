package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/alexandreovs/oqueassitir/models"
	"github.com/alexandreovs/oqueassitir/services/suggest"
)

// Presentation signals for the UI.
const (
	SignalOne     = "one"     // show a single candidate
	SignalSeveral = "several" // show a card set, more available on request
	SignalNone    = "none"    // nothing (further) matched these filters
)

const overviewPlaceholder = "Description not available"

// SuggestionService is the rotation engine surface the handler needs.
type SuggestionService interface {
	Start(ctx context.Context, sessionID string, spec models.FilterSpec, mode suggest.Mode) (*suggest.Rotation, error)
	Next(ctx context.Context, sessionID string) (models.Candidate, error)
	Discard(sessionID string)
}

// SuggestHandler exposes the suggestion rotation over HTTP.
type SuggestHandler struct {
	service SuggestionService
}

func NewSuggestHandler(service SuggestionService) *SuggestHandler {
	return &SuggestHandler{service: service}
}

type startRequest struct {
	SessionID   string `json:"sessionId,omitempty"`
	TimeMinutes int    `json:"timeMinutes"`
	Mood        string `json:"mood"`
	Provider    string `json:"provider,omitempty"`
	Mode        string `json:"mode,omitempty"`
}

// suggestionPayload is what the UI renders. Runtime is pre-formatted;
// posterPath stays a raw TMDB fragment for the UI to build image URLs from.
type suggestionPayload struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"posterPath"`
	Year        int     `json:"year,omitempty"`
	Runtime     string  `json:"runtime"`
	VoteAverage float64 `json:"voteAverage,omitempty"`
	Streaming   string  `json:"streaming"`
}

type startResponse struct {
	SessionID   string              `json:"sessionId"`
	Signal      string              `json:"signal"`
	Suggestions []suggestionPayload `json:"suggestions"`
}

type nextResponse struct {
	Signal     string             `json:"signal"`
	Suggestion *suggestionPayload `json:"suggestion,omitempty"`
	Message    string             `json:"message,omitempty"`
}

// Start handles POST /api/suggestions.
func (h *SuggestHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	spec := models.FilterSpec{
		TimeBudgetMinutes: req.TimeMinutes,
		Mood:              req.Mood,
		ProviderKey:       req.Provider,
	}
	mode := suggest.ModeSingle
	if req.Mode == string(suggest.ModeMultiple) {
		mode = suggest.ModeMultiple
	}

	rotation, err := h.service.Start(r.Context(), req.SessionID, spec, mode)
	if err != nil {
		status, msg := mapServiceError(err)
		writeError(w, status, msg)
		return
	}

	resp := startResponse{
		SessionID:   rotation.SessionID,
		Signal:      SignalOne,
		Suggestions: make([]suggestionPayload, 0, len(rotation.Candidates)),
	}
	if len(rotation.Candidates) > 1 {
		resp.Signal = SignalSeveral
	}
	for _, c := range rotation.Candidates {
		resp.Suggestions = append(resp.Suggestions, toPayload(c))
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Next handles POST /api/suggestions/{id}/next.
func (h *SuggestHandler) Next(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	cand, err := h.service.Next(r.Context(), id)
	if err != nil {
		if errors.Is(err, suggest.ErrPoolExhausted) {
			writeJSON(w, http.StatusOK, nextResponse{
				Signal:  SignalNone,
				Message: "No more suggestions for these filters. Try adjusting them.",
			})
			return
		}
		status, msg := mapServiceError(err)
		writeError(w, status, msg)
		return
	}

	payload := toPayload(cand)
	writeJSON(w, http.StatusOK, nextResponse{Signal: SignalOne, Suggestion: &payload})
}

// Discard handles DELETE /api/suggestions/{id}.
func (h *SuggestHandler) Discard(w http.ResponseWriter, r *http.Request) {
	h.service.Discard(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

func toPayload(c models.Candidate) suggestionPayload {
	overview := c.Overview
	if overview == "" {
		overview = overviewPlaceholder
	}
	return suggestionPayload{
		ID:          c.ID,
		Title:       c.Title,
		Overview:    overview,
		PosterPath:  c.PosterPath,
		Year:        c.Year(),
		Runtime:     models.FormatRuntime(c.RuntimeMinutes),
		VoteAverage: c.VoteAverage,
		Streaming:   c.StreamingLabel,
	}
}

func mapServiceError(err error) (int, string) {
	switch {
	case errors.Is(err, suggest.ErrMissingTime),
		errors.Is(err, suggest.ErrMissingMood),
		errors.Is(err, suggest.ErrUnrecognizedMood):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, suggest.ErrNoResults):
		return http.StatusNotFound, "No suggestions matched these filters. Try broadening them."
	case errors.Is(err, suggest.ErrSessionNotFound):
		return http.StatusNotFound, "suggestion session not found"
	case errors.Is(err, suggest.ErrFetchInProgress):
		return http.StatusConflict, "a suggestion fetch is already in progress"
	default:
		log.Printf("[suggest] fetch failed: %v", err)
		return http.StatusBadGateway, "The movie catalog could not be reached. Please try again."
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[suggest] failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
