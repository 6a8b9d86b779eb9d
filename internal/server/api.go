package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/BioHazard786/huddle/internal/monitor"
	"github.com/BioHazard786/huddle/internal/signaling"
)

type bannerResponse struct {
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	// Uptime is in seconds.
	Uptime float64 `json:"uptime"`
}

// StatsResponse is the body of GET /api/server/stats.
type StatsResponse struct {
	signaling.Stats
	MemoryUsage monitor.MemoryUsage `json:"memoryUsage"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, bannerResponse{
		Message:   "Huddle signaling server",
		Status:    "running",
		Timestamp: s.now().UTC(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "OK",
		Timestamp: now.UTC(),
		Uptime:    now.Sub(s.started).Seconds(),
	})
}

func (s *Server) handleRoomInfo(w http.ResponseWriter, r *http.Request) {
	info, found, err := s.hub.RoomInfo(r.Context(), r.PathValue("roomId"))
	if err != nil {
		s.writeHubError(w, err)
		return
	}
	if !found {
		WriteJSON(w, http.StatusNotFound, ErrorResponse{Error: "Room not found"})
		return
	}
	WriteJSON(w, http.StatusOK, info)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.hub.Stats(r.Context())
	if err != nil {
		s.writeHubError(w, err)
		return
	}

	usage, err := s.sampler.Sample(r.Context())
	if err != nil {
		s.log.Debug("Memory sample incomplete", "err", err)
	}
	WriteJSON(w, http.StatusOK, StatsResponse{Stats: stats, MemoryUsage: usage})
}

func (s *Server) writeHubError(w http.ResponseWriter, err error) {
	if errors.Is(err, signaling.ErrHubStopped) {
		WriteJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "Server is shutting down"})
		return
	}
	// The client went away; nobody reads the reply.
	s.log.Debug("Hub query abandoned", "err", err)
	w.WriteHeader(http.StatusServiceUnavailable)
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
