package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/cuepad-core/internal/pad"
	"github.com/nerrad567/cuepad-core/internal/surface"
)

// PadResponse combines a pad's profile state with its current appearance.
type PadResponse struct {
	pad.Info
	State *surface.PadView `json:"state,omitempty"`
}

// pressRequest is the optional body of POST /pads/{index}/press.
type pressRequest struct {
	Velocity *float64 `json:"velocity"`
}

func (s *Server) padResponse(info pad.Info) PadResponse {
	resp := PadResponse{Info: info}
	if st, ok := s.surface.State(info.Index); ok {
		v := st.View()
		resp.State = &v
	}
	return resp
}

func (s *Server) handleListPads(w http.ResponseWriter, r *http.Request) {
	var pads []PadResponse
	if !s.onLoop(w, r, func() {
		infos := s.board.Infos()
		pads = make([]PadResponse, 0, len(infos))
		for _, info := range infos {
			pads = append(pads, s.padResponse(info))
		}
	}) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pads": pads, "count": len(pads)})
}

func (s *Server) handleGetPad(w http.ResponseWriter, r *http.Request) {
	idx, ok := pathInt(w, r, "index")
	if !ok {
		return
	}
	var (
		resp  PadResponse
		found bool
	)
	if !s.onLoop(w, r, func() {
		var p *pad.Pad
		if p, found = s.board.Pad(idx); found {
			resp = s.padResponse(p.Info())
		}
	}) {
		return
	}
	if !found {
		writeNotFound(w, "pad not found")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handlePressPad presses a pad. An empty body presses at full velocity.
func (s *Server) handlePressPad(w http.ResponseWriter, r *http.Request) {
	idx, ok := pathInt(w, r, "index")
	if !ok {
		return
	}
	var req pressRequest
	if err := decodeOptional(r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	velocity := 1.0
	if req.Velocity != nil {
		velocity = *req.Velocity
	}

	var (
		info pad.Info
		err  error
	)
	if !s.onLoop(w, r, func() {
		if err = s.board.PressFrom(idx, velocity, Source); err == nil {
			p, _ := s.board.Pad(idx)
			info = p.Info()
		}
	}) {
		return
	}
	if err != nil {
		writeNotFound(w, "pad not found")
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleReleasePad(w http.ResponseWriter, r *http.Request) {
	idx, ok := pathInt(w, r, "index")
	if !ok {
		return
	}
	var err error
	if !s.onLoop(w, r, func() { err = s.board.Release(idx) }) {
		return
	}
	if err != nil {
		writeNotFound(w, "pad not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathInt reads an integer URL parameter, writing a 400 when it is not one.
func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		writeBadRequest(w, name+" must be an integer")
		return 0, false
	}
	return v, true
}
