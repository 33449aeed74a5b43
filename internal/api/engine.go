package api

import (
	"net/http"
	"time"

	"github.com/nerrad567/cuepad-core/internal/lightcue"
)

// minCueDuration mirrors the scheduler's lower clamp.
const minCueDuration = 10 * time.Millisecond

type pauseResponse struct {
	Paused bool `json:"paused"`
}

// pauseRequest sets the flag ({"paused":true}) or flips it ({"toggle":true}).
type pauseRequest struct {
	Paused *bool `json:"paused"`
	Toggle bool  `json:"toggle"`
}

// cueRequest triggers a light cue directly. Times are in seconds.
type cueRequest struct {
	Pad      *int    `json:"pad"`
	Slot     int     `json:"slot"`
	Duration float64 `json:"duration"`
	Delay    float64 `json:"delay"`
	Persist  bool    `json:"persist"`
}

type schedulerResponse struct {
	lightcue.Stats
	Frames         uint64  `json:"frames"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	Paused         bool    `json:"paused"`
}

func (s *Server) handleGetPause(w http.ResponseWriter, r *http.Request) {
	var paused bool
	if !s.onLoop(w, r, func() { paused = s.pause.IsPaused() }) {
		return
	}
	writeJSON(w, http.StatusOK, pauseResponse{Paused: paused})
}

func (s *Server) handleSetPause(w http.ResponseWriter, r *http.Request) {
	var req pauseRequest
	if err := decodeOptional(r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Paused == nil && !req.Toggle {
		writeBadRequest(w, "paused or toggle is required")
		return
	}

	var paused bool
	if !s.onLoop(w, r, func() {
		if req.Toggle {
			paused = s.pause.Toggle()
			return
		}
		s.pause.SetPaused(*req.Paused)
		paused = s.pause.IsPaused()
	}) {
		return
	}
	writeJSON(w, http.StatusOK, pauseResponse{Paused: paused})
}

// handleTriggerCue runs a cue on any surface pad, bypassing pad profiles.
func (s *Server) handleTriggerCue(w http.ResponseWriter, r *http.Request) {
	var req cueRequest
	if err := decodeOptional(r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Pad == nil {
		writeBadRequest(w, "pad is required")
		return
	}
	duration := time.Duration(req.Duration * float64(time.Second))
	if duration < minCueDuration {
		duration = minCueDuration
	}
	delay := time.Duration(req.Delay * float64(time.Second))

	var known bool
	if !s.onLoop(w, r, func() {
		if known = s.surface.Has(*req.Pad); known {
			s.lights.TriggerCue(*req.Pad, req.Slot, duration, delay, req.Persist)
		}
	}) {
		return
	}
	if !known {
		writeNotFound(w, "pad not found")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"pad": *req.Pad, "slot": req.Slot})
}

func (s *Server) handleStopSequence(w http.ResponseWriter, r *http.Request) {
	origin, ok := pathInt(w, r, "origin")
	if !ok {
		return
	}
	var stopped bool
	if !s.onLoop(w, r, func() { stopped = s.lights.StopSequence(origin) }) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"origin": origin, "stopped": stopped})
}

func (s *Server) handleSchedulerStats(w http.ResponseWriter, r *http.Request) {
	var resp schedulerResponse
	if !s.onLoop(w, r, func() {
		resp = schedulerResponse{
			Stats:          s.lights.Stats(),
			Frames:         s.loop.Frames(),
			ElapsedSeconds: s.loop.Elapsed().Seconds(),
			Paused:         s.pause.IsPaused(),
		}
	}) {
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
