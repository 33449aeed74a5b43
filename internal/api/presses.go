package api

import (
	"net/http"
	"strconv"

	"github.com/nerrad567/cuepad-core/internal/history"
)

// handleListPresses returns the press journal, newest first.
//
// Query: pad, source, limit (default 50, max 500), offset.
func (s *Server) handleListPresses(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeUnavailable(w, "press history not configured")
		return
	}

	q := r.URL.Query()
	var filter history.Filter
	if v := q.Get("pad"); v != "" {
		idx, err := strconv.Atoi(v)
		if err != nil {
			writeBadRequest(w, "pad must be an integer")
			return
		}
		filter.Pad = &idx
	}
	filter.Source = q.Get("source")
	for name, dst := range map[string]*int{"limit": &filter.Limit, "offset": &filter.Offset} {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeBadRequest(w, name+" must be a non-negative integer")
				return
			}
			*dst = n
		}
	}

	res, err := s.history.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("listing presses", "error", err)
		writeInternalError(w, "failed to list presses")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handlePressCounts(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeUnavailable(w, "press history not configured")
		return
	}
	counts, err := s.history.CountByPad(r.Context())
	if err != nil {
		s.logger.Error("counting presses", "error", err)
		writeInternalError(w, "failed to count presses")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"counts": counts})
}
