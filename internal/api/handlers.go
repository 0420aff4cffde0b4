package api

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/yourusername/matchday-edge/internal/models"
)

type errorResponse struct {
	Error string `json:"error"`
}

type matchesResponse struct {
	Matches     []models.MatchPrediction `json:"matches"`
	Count       int                      `json:"count"`
	Sequence    uint64                   `json:"sequence"`
	GeneratedAt string                   `json:"generated_at,omitempty"`
	Stale       bool                     `json:"stale"`
}

type valueBetsResponse struct {
	ValueBets []models.MatchValueBet `json:"value_bets"`
	Count     int                    `json:"count"`
}

type summaryResponse struct {
	models.Summary
	Sequence uint64         `json:"sequence"`
	Sources  map[string]int `json:"sources"`
	Stale    bool           `json:"stale"`
}

type refreshResponse struct {
	Snapshot *models.Snapshot `json:"snapshot"`
	Applied  bool             `json:"applied"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// getMatches lists predictions, optionally filtered by ?league=
func (s *Server) getMatches(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.store.Latest()
	league := r.URL.Query().Get("league")

	matches := make([]models.MatchPrediction, 0, len(snap.Matches))
	for _, mp := range snap.Matches {
		if league != "" && !strings.EqualFold(mp.Match.League, league) {
			continue
		}
		matches = append(matches, mp)
	}

	resp := matchesResponse{
		Matches:  matches,
		Count:    len(matches),
		Sequence: snap.Sequence,
		Stale:    !ok,
	}
	if !snap.GeneratedAt.IsZero() {
		resp.GeneratedAt = snap.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getMatch(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	snap, _ := s.store.Latest()
	mp, found := snap.FindMatch(id)
	if !found {
		writeError(w, http.StatusNotFound, "match not found")
		return
	}
	writeJSON(w, http.StatusOK, mp)
}

// getValueBets lists value bets, highest EV first. ?min_ev= and ?limit= narrow the list.
func (s *Server) getValueBets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	minEV := 0.0
	if raw := query.Get("min_ev"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) {
			writeError(w, http.StatusBadRequest, "invalid min_ev")
			return
		}
		minEV = v
	}
	limit := 0
	if raw := query.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = v
	}

	snap, _ := s.store.Latest()
	bets := make([]models.MatchValueBet, 0)
	for _, bet := range snap.ValueBets() {
		if bet.ExpectedValue < minEV {
			continue
		}
		bets = append(bets, bet)
	}
	if limit > 0 && limit < len(bets) {
		bets = bets[:limit]
	}

	writeJSON(w, http.StatusOK, valueBetsResponse{ValueBets: bets, Count: len(bets)})
}

func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.store.Latest()
	writeJSON(w, http.StatusOK, summaryResponse{
		Summary:  snap.Summary,
		Sequence: snap.Sequence,
		Sources:  snap.SourceCounts,
		Stale:    !ok,
	})
}

// postRefresh runs a refresh on demand
func (s *Server) postRefresh(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		w.Header().Set("Retry-After", "60")
		writeError(w, http.StatusTooManyRequests, "refresh rate limit exceeded")
		return
	}

	snap, applied, err := s.refresher.Refresh(r.Context())
	if err != nil {
		s.logger.WithError(err).Warn("Manual refresh failed")
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse{Snapshot: snap, Applied: applied})
}
