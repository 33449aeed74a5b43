package api

import (
	"net/http"

	"github.com/nerrad567/cuepad-core/internal/pad"
)

type volumeRequest struct {
	Delta float64 `json:"delta"`
}

type transportRequest struct {
	Command string `json:"command"`
}

func (s *Server) handleMixerStatus(w http.ResponseWriter, _ *http.Request) {
	if s.mixer == nil {
		writeUnavailable(w, "audio not configured")
		return
	}
	writeJSON(w, http.StatusOK, s.mixer.Status())
}

// handleMixerVolume nudges the gain of affectable sources, the hook an
// external gesture mixer drives.
func (s *Server) handleMixerVolume(w http.ResponseWriter, r *http.Request) {
	if s.mixer == nil {
		writeUnavailable(w, "audio not configured")
		return
	}
	var req volumeRequest
	if err := decodeOptional(r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Delta < -1 || req.Delta > 1 {
		writeBadRequest(w, "delta must be between -1 and 1")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"adjusted": s.mixer.AdjustVolume(req.Delta)})
}

func (s *Server) handleMixerTransport(w http.ResponseWriter, r *http.Request) {
	if s.mixer == nil {
		writeUnavailable(w, "audio not configured")
		return
	}
	var req transportRequest
	if err := decodeOptional(r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	cmd, err := pad.ParseTransport(req.Command)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	s.mixer.Transport(cmd)
	writeJSON(w, http.StatusOK, s.mixer.Status())
}
