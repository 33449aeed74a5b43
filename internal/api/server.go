package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nerrad567/cuepad-core/internal/audio"
	"github.com/nerrad567/cuepad-core/internal/history"
	"github.com/nerrad567/cuepad-core/internal/infrastructure/config"
	"github.com/nerrad567/cuepad-core/internal/infrastructure/logging"
	"github.com/nerrad567/cuepad-core/internal/lightcue"
	"github.com/nerrad567/cuepad-core/internal/pad"
	"github.com/nerrad567/cuepad-core/internal/pauseclock"
	"github.com/nerrad567/cuepad-core/internal/surface"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Source is the press source tag for HTTP input.
const Source = "api"

// Loop runs closures on the tick loop and waits for them. *tick.Runtime
// satisfies it.
type Loop interface {
	Do(ctx context.Context, fn func()) error
	Frames() uint64
	Elapsed() time.Duration
}

// Mixer is the audio surface exposed over HTTP. *audio.Hub satisfies it.
type Mixer interface {
	AdjustVolume(delta float64) int
	Transport(cmd pad.TransportCommand)
	Status() audio.Status
}

// HealthChecker is implemented by infrastructure clients (database, MQTT,
// InfluxDB).
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Deps holds the dependencies required by the API server.
//
// Board, Surface, Lights and Pause are engine state and are only touched
// inside Loop.Do. Mixer, History, Checks and Dropped are optional.
type Deps struct {
	Config   config.APIConfig
	WS       config.WebSocketConfig
	Security config.SecurityConfig
	Logger   *logging.Logger
	Version  string

	Loop    Loop
	Board   *pad.Board
	Surface *surface.Surface
	Lights  *lightcue.Scheduler
	Pause   *pauseclock.Clock

	Mixer   Mixer
	History history.Repository
	Checks  map[string]HealthChecker
	Dropped map[string]DropCounter
}

// Server is the HTTP API server.
//
// It manages the HTTP listener, routes, middleware, and WebSocket hub.
// The server is created with New() and started with Start().
type Server struct {
	cfg     config.APIConfig
	wsCfg   config.WebSocketConfig
	secCfg  config.SecurityConfig
	logger  *logging.Logger
	version string

	loop    Loop
	board   *pad.Board
	surface *surface.Surface
	lights  *lightcue.Scheduler
	pause   *pauseclock.Clock

	mixer        Mixer
	history      history.Repository
	checks       map[string]HealthChecker
	dropCounters map[string]DropCounter

	hub       *Hub
	tickets   *ticketStore
	server    *http.Server
	startTime time.Time
	cancel    context.CancelFunc // cancels background goroutines on Close()
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called, but its WebSocket hub
// exists immediately so it can be registered as a renderer and observer.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Loop == nil || deps.Board == nil || deps.Surface == nil || deps.Lights == nil || deps.Pause == nil {
		return nil, fmt.Errorf("engine dependencies are required")
	}

	return &Server{
		cfg:     deps.Config,
		wsCfg:   deps.WS,
		secCfg:  deps.Security,
		logger:  deps.Logger,
		version: deps.Version,
		loop:    deps.Loop,
		board:   deps.Board,
		surface: deps.Surface,
		lights:  deps.Lights,
		pause:   deps.Pause,
		mixer:   deps.Mixer,
		history: deps.History,
		checks:  deps.Checks,

		dropCounters: deps.Dropped,
		hub:          NewHub(deps.WS, deps.Logger),
		tickets:      newTicketStore(),
		startTime:    time.Now(),
	}, nil
}

// Hub returns the WebSocket hub.
func (s *Server) Hub() *Hub { return s.hub }

// Start begins listening for HTTP connections.
//
// It starts the WebSocket hub and ticket cleanup, builds the router, and
// launches the HTTP listener in a background goroutine. The server can be
// stopped with Close().
func (s *Server) Start(ctx context.Context) error {
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	go s.hub.Run(srvCtx)
	go s.cleanTicketsLoop(srvCtx)

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           s.buildRouter(),
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		var err error
		if s.cfg.TLS.Enabled {
			s.logger.Info("API server starting with TLS",
				"address", s.server.Addr,
				"cert", s.cfg.TLS.CertFile,
			)
			err = s.server.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		} else {
			s.logger.Info("API server starting", "address", s.server.Addr, "auth", s.authEnabled())
			err = s.server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}
	return nil
}

func (s *Server) authEnabled() bool {
	return s.secCfg.JWT.Secret != ""
}

// onLoop runs fn on the tick loop within the request context.
// It writes a 503 and returns false when the loop is unavailable.
func (s *Server) onLoop(w http.ResponseWriter, r *http.Request, fn func()) bool {
	if err := s.loop.Do(r.Context(), fn); err != nil {
		s.logger.Warn("engine unavailable", "path", r.URL.Path, "error", err)
		writeUnavailable(w, "engine unavailable")
		return false
	}
	return true
}
