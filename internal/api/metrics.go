package api

import (
	"net/http"
	"runtime"
	"time"
)

// DropCounter is implemented by the non-blocking outputs (MQTT bridge,
// Launchpad, press journal) that discard work when their queue is full.
type DropCounter interface {
	Dropped() int64
}

// SystemMetrics represents the complete system metrics response.
type SystemMetrics struct {
	Timestamp     string           `json:"timestamp"`
	Version       string           `json:"version"`
	UptimeSeconds int64            `json:"uptime_seconds"`
	Runtime       RuntimeMetrics   `json:"runtime"`
	WebSocket     WSMetrics        `json:"websocket"`
	Engine        EngineMetrics    `json:"engine"`
	Dropped       map[string]int64 `json:"dropped"`
}

// RuntimeMetrics contains Go runtime statistics.
type RuntimeMetrics struct {
	Goroutines    int     `json:"goroutines"`
	MemoryAllocMB float64 `json:"memory_alloc_mb"`
	MemoryTotalMB float64 `json:"memory_total_mb"`
	NumGC         uint32  `json:"num_gc"`
}

// WSMetrics contains WebSocket hub statistics.
type WSMetrics struct {
	ConnectedClients int `json:"connected_clients"`
}

// EngineMetrics contains tick loop statistics.
type EngineMetrics struct {
	Running        bool    `json:"running"`
	Frames         uint64  `json:"frames"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	ActiveCues     int     `json:"active_cues"`
	ActiveLoops    int     `json:"active_loops"`
}

// handleMetrics returns process, hub and engine metrics. A stopped engine
// is reported, not treated as an error.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	metrics := SystemMetrics{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Version:       s.version,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		Runtime: RuntimeMetrics{
			Goroutines:    runtime.NumGoroutine(),
			MemoryAllocMB: float64(memStats.Alloc) / 1024 / 1024,
			MemoryTotalMB: float64(memStats.TotalAlloc) / 1024 / 1024,
			NumGC:         memStats.NumGC,
		},
		WebSocket: WSMetrics{
			ConnectedClients: s.hub.ClientCount(),
		},
		Dropped: make(map[string]int64, len(s.dropCounters)),
	}

	err := s.loop.Do(r.Context(), func() {
		stats := s.lights.Stats()
		metrics.Engine = EngineMetrics{
			Running:        true,
			Frames:         s.loop.Frames(),
			ElapsedSeconds: s.loop.Elapsed().Seconds(),
			ActiveCues:     stats.ActiveCues,
			ActiveLoops:    stats.ActiveLoops,
		}
	})
	if err != nil {
		s.logger.Debug("metrics without engine stats", "error", err)
	}

	for name, c := range s.dropCounters {
		metrics.Dropped[name] = c.Dropped()
	}

	writeJSON(w, http.StatusOK, metrics)
}
