package departureboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/muc-transit/departure-board/render"
	"github.com/muc-transit/departure-board/stations"
	"github.com/muc-transit/departure-board/timetable"
)

type resolveResponse struct {
	Exact      *stations.StationRecord  `json:"exact,omitempty"`
	Candidates []stations.StationRecord `json:"candidates"`
}

type departuresResponse struct {
	Station    int64                 `json:"station"`
	LiveDataOK bool                  `json:"liveDataOk"`
	Events     []timetable.StopEvent `json:"events"`
	Lines      []string              `json:"lines"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (e *Engine) handleResolve(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing q parameter"})
		return
	}
	limit := 5
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}
	exact, candidates, err := e.Resolve(r.Context(), query, limit)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	if candidates == nil {
		candidates = []stations.StationRecord{}
	}
	writeJSON(w, http.StatusOK, resolveResponse{Exact: exact, Candidates: candidates})
}

func (e *Engine) handleDepartures(w http.ResponseWriter, r *http.Request) {
	stationID, err := strconv.ParseInt(r.URL.Query().Get("station"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "station must be a numeric station identifier"})
		return
	}
	maxItems := 0
	if s := r.URL.Query().Get("max"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			maxItems = v
		}
	}
	events, liveOK, err := e.Departures(r.Context(), stationID, r.URL.Query().Get("line"), maxItems)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, timetable.ErrInvalidStation) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}
	lines := make([]string, len(events))
	for i, ev := range events {
		lines[i] = render.Format(ev)
	}
	if events == nil {
		events = []timetable.StopEvent{}
	}
	writeJSON(w, http.StatusOK, departuresResponse{
		Station:    stationID,
		LiveDataOK: liveOK,
		Events:     events,
		Lines:      lines,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
