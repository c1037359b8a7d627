package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexandreovs/oqueassitir/models"
	"github.com/alexandreovs/oqueassitir/services/suggest"
)

type stubService struct {
	startRotation *suggest.Rotation
	startErr      error
	startSpec     models.FilterSpec
	startMode     suggest.Mode
	startSession  string

	nextCandidate models.Candidate
	nextErr       error

	discarded []string
}

func (s *stubService) Start(_ context.Context, sessionID string, spec models.FilterSpec, mode suggest.Mode) (*suggest.Rotation, error) {
	s.startSession = sessionID
	s.startSpec = spec
	s.startMode = mode
	return s.startRotation, s.startErr
}

func (s *stubService) Next(_ context.Context, _ string) (models.Candidate, error) {
	return s.nextCandidate, s.nextErr
}

func (s *stubService) Discard(sessionID string) {
	s.discarded = append(s.discarded, sessionID)
}

func testRouter(h *SuggestHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/suggestions", h.Start).Methods(http.MethodPost)
	r.HandleFunc("/api/suggestions/{id}/next", h.Next).Methods(http.MethodPost)
	r.HandleFunc("/api/suggestions/{id}", h.Discard).Methods(http.MethodDelete)
	return r
}

func postJSON(t *testing.T, router *mux.Router, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestStartSingleSuggestion(t *testing.T) {
	svc := &stubService{
		startRotation: &suggest.Rotation{
			SessionID: "abc",
			Mode:      suggest.ModeSingle,
			Candidates: []models.Candidate{{
				ID:             7,
				Title:          "Some Movie",
				PosterPath:     "/poster.jpg",
				ReleaseDate:    "2019-03-02",
				RuntimeMinutes: 80,
				VoteAverage:    7.4,
				StreamingLabel: "Netflix",
			}},
		},
	}
	router := testRouter(NewSuggestHandler(svc))

	rec := postJSON(t, router, "/api/suggestions", `{"timeMinutes":90,"mood":"joyful","provider":"netflix"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, models.FilterSpec{TimeBudgetMinutes: 90, Mood: "joyful", ProviderKey: "netflix"}, svc.startSpec)
	assert.Equal(t, suggest.ModeSingle, svc.startMode)

	var resp startResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "abc", resp.SessionID)
	assert.Equal(t, SignalOne, resp.Signal)
	require.Len(t, resp.Suggestions, 1)

	s := resp.Suggestions[0]
	assert.Equal(t, "Some Movie", s.Title)
	assert.Equal(t, "/poster.jpg", s.PosterPath, "raw poster path, not a URL")
	assert.Equal(t, 2019, s.Year)
	assert.Equal(t, "1h 20min", s.Runtime)
	assert.Equal(t, "Netflix", s.Streaming)
	assert.Equal(t, overviewPlaceholder, s.Overview, "empty overview gets the placeholder")
}

func TestStartMultipleSuggestionsSignal(t *testing.T) {
	svc := &stubService{
		startRotation: &suggest.Rotation{
			SessionID: "abc",
			Mode:      suggest.ModeMultiple,
			Candidates: []models.Candidate{
				{ID: 1, Title: "One", PosterPath: "/1.jpg", Overview: "first"},
				{ID: 2, Title: "Two", PosterPath: "/2.jpg", Overview: "second"},
				{ID: 3, Title: "Three", PosterPath: "/3.jpg", Overview: "third"},
			},
		},
	}
	router := testRouter(NewSuggestHandler(svc))

	rec := postJSON(t, router, "/api/suggestions", `{"timeMinutes":90,"mood":"joyful","mode":"multiple"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, suggest.ModeMultiple, svc.startMode)

	var resp startResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, SignalSeveral, resp.Signal)
	assert.Len(t, resp.Suggestions, 3)
	assert.Equal(t, "runtime not provided", resp.Suggestions[0].Runtime)
}

func TestStartErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"missing time", suggest.ErrMissingTime, http.StatusUnprocessableEntity},
		{"missing mood", suggest.ErrMissingMood, http.StatusUnprocessableEntity},
		{"unknown mood", suggest.ErrUnrecognizedMood, http.StatusUnprocessableEntity},
		{"no results", suggest.ErrNoResults, http.StatusNotFound},
		{"unknown session", suggest.ErrSessionNotFound, http.StatusNotFound},
		{"busy", suggest.ErrFetchInProgress, http.StatusConflict},
		{"catalog down", suggest.ErrCatalogUnavailable, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{startErr: tt.err}
			router := testRouter(NewSuggestHandler(svc))
			rec := postJSON(t, router, "/api/suggestions", `{"timeMinutes":90,"mood":"joyful"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestStartRejectsMalformedBody(t *testing.T) {
	router := testRouter(NewSuggestHandler(&stubService{}))
	rec := postJSON(t, router, "/api/suggestions", `{"timeMinutes":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNextReturnsSuggestion(t *testing.T) {
	svc := &stubService{
		nextCandidate: models.Candidate{
			ID: 9, Title: "Another", PosterPath: "/9.jpg", Overview: "plot",
			RuntimeMinutes: 45, StreamingLabel: suggest.GenericStreamingLabel,
		},
	}
	router := testRouter(NewSuggestHandler(svc))

	rec := postJSON(t, router, "/api/suggestions/abc/next", ``)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp nextResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, SignalOne, resp.Signal)
	require.NotNil(t, resp.Suggestion)
	assert.Equal(t, "Another", resp.Suggestion.Title)
	assert.Equal(t, "45min", resp.Suggestion.Runtime)
}

func TestNextExhaustedIsNoneSignalNotError(t *testing.T) {
	svc := &stubService{nextErr: suggest.ErrPoolExhausted}
	router := testRouter(NewSuggestHandler(svc))

	rec := postJSON(t, router, "/api/suggestions/abc/next", ``)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp nextResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, SignalNone, resp.Signal)
	assert.Nil(t, resp.Suggestion)
	assert.NotEmpty(t, resp.Message)
}

func TestDiscardSession(t *testing.T) {
	svc := &stubService{}
	router := testRouter(NewSuggestHandler(svc))

	req := httptest.NewRequest(http.MethodDelete, "/api/suggestions/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"abc"}, svc.discarded)
}
