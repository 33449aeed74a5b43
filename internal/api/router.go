package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/cuepad-core/internal/auth"
)

// healthCheckTimeout bounds each component check in /health.
const healthCheckTimeout = 2 * time.Second

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/metrics", s.handleMetrics)

		// WebSocket (auth via ticket, validated in handler)
		r.Get("/ws", s.handleWebSocket)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Post("/auth/ws-ticket", s.handleWSTicket)

			r.Group(func(r chi.Router) {
				r.Use(s.requirePermission(auth.PermShowRead))
				r.Get("/pads", s.handleListPads)
				r.Get("/pads/{index}", s.handleGetPad)
				r.Get("/pause", s.handleGetPause)
				r.Get("/scheduler", s.handleSchedulerStats)
				r.Get("/presses", s.handleListPresses)
				r.Get("/presses/counts", s.handlePressCounts)
				r.Get("/mixer", s.handleMixerStatus)
			})

			r.Group(func(r chi.Router) {
				r.Use(s.requirePermission(auth.PermPadOperate))
				r.Post("/pads/{index}/press", s.handlePressPad)
				r.Post("/pads/{index}/release", s.handleReleasePad)
			})

			r.With(s.requirePermission(auth.PermCueTrigger)).Post("/cues", s.handleTriggerCue)

			r.Group(func(r chi.Router) {
				r.Use(s.requirePermission(auth.PermShowControl))
				r.Put("/pause", s.handleSetPause)
				r.Post("/sequences/{origin}/stop", s.handleStopSequence)
				r.Post("/mixer/volume", s.handleMixerVolume)
				r.Post("/mixer/transport", s.handleMixerTransport)
			})
		})
	})

	return r
}

// handleHealth reports the server version and the state of each
// infrastructure component. Any failing component makes it "degraded".
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	components := make(map[string]string, len(s.checks))
	for name, c := range s.checks {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		err := c.HealthCheck(ctx)
		cancel()
		if err != nil {
			components[name] = err.Error()
			status = "degraded"
			continue
		}
		components[name] = "ok"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     status,
		"version":    s.version,
		"auth":       s.authEnabled(),
		"components": components,
	})
}
