// Cuepad Core - pad and light-cue engine for live shows.
//
// This is the main entry point. It loads the config and show, builds the
// engine (tick loop, surface, light-cue scheduler, pads), attaches the
// optional front ends (HTTP/WebSocket API, MQTT, Launchpad, terminal console,
// audio) and runs until interrupted.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gopxl/beep"
	"golang.org/x/sync/errgroup"

	_ "github.com/nerrad567/cuepad-core/migrations"

	"github.com/nerrad567/cuepad-core/internal/api"
	"github.com/nerrad567/cuepad-core/internal/audio"
	"github.com/nerrad567/cuepad-core/internal/bridge"
	"github.com/nerrad567/cuepad-core/internal/console"
	"github.com/nerrad567/cuepad-core/internal/history"
	"github.com/nerrad567/cuepad-core/internal/infrastructure/config"
	"github.com/nerrad567/cuepad-core/internal/infrastructure/database"
	"github.com/nerrad567/cuepad-core/internal/infrastructure/influxdb"
	"github.com/nerrad567/cuepad-core/internal/infrastructure/logging"
	"github.com/nerrad567/cuepad-core/internal/infrastructure/mqtt"
	"github.com/nerrad567/cuepad-core/internal/launchpad"
	"github.com/nerrad567/cuepad-core/internal/lightcue"
	"github.com/nerrad567/cuepad-core/internal/pad"
	"github.com/nerrad567/cuepad-core/internal/pauseclock"
	"github.com/nerrad567/cuepad-core/internal/show"
	"github.com/nerrad567/cuepad-core/internal/surface"
	"github.com/nerrad567/cuepad-core/internal/tick"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

const logFilePermissions = 0600

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// engine is the loop-owned state shared by every front end.
type engine struct {
	rt     *tick.Runtime
	clock  *pauseclock.Clock
	surf   *surface.Surface
	lights *lightcue.Scheduler
	board  *pad.Board
}

// run is the application logic, separated from main for testability.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	log.Info("starting Cuepad Core",
		"version", version,
		"commit", commit,
		"build_date", date,
		"config", configPath,
	)

	sh, err := show.Load(cfg.Show.File)
	if err != nil {
		return fmt.Errorf("loading show: %w", err)
	}
	for _, w := range sh.Warnings {
		log.Warn("show warning", "detail", w)
	}
	log.Info("show loaded", "name", sh.Name, "pads", len(sh.Pads), "slots", sh.Palette.Len(), "sequences", len(sh.Sequences))

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database ready", "path", cfg.Database.Path)

	ctx, stop := context.WithCancel(ctx)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	// Audio (optional)
	var (
		audioHub *audio.Hub
		mixer    api.Mixer
	)
	if cfg.Audio.Enabled {
		hub, closeAudio, audioErr := startAudio(cfg, log)
		if audioErr != nil {
			return fmt.Errorf("starting audio: %w", audioErr)
		}
		defer closeAudio()
		audioHub, mixer = hub, hub
	} else {
		log.Info("audio disabled")
	}

	eng := newEngine(cfg, sh, audioHub, log)
	checks := map[string]api.HealthChecker{"database": db}
	dropped := map[string]api.DropCounter{}

	// Press journal
	journal := history.NewJournal(history.NewSQLiteRepository(db.DB), history.DefaultQueueSize)
	journal.SetLogger(log.Component("history"))
	eng.board.AddObserver(journal)
	dropped["journal"] = journal
	g.Go(func() error { return journal.Run(gctx) })

	// API server
	srv, err := api.New(api.Deps{
		Config:   cfg.API,
		WS:       cfg.WebSocket,
		Security: cfg.Security,
		Logger:   log.Component("api"),
		Version:  version,
		Loop:     eng.rt,
		Board:    eng.board,
		Surface:  eng.surf,
		Lights:   eng.lights,
		Pause:    eng.clock,
		Mixer:    mixer,
		History:  history.NewSQLiteRepository(db.DB),
		Checks:   checks,
		Dropped:  dropped,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	attach(eng, srv.Hub(), srv.Hub(), srv.Hub().PauseChanged)

	// MQTT (optional)
	if cfg.MQTT.Enabled {
		mqttClient, mqttErr := mqtt.Connect(cfg.MQTT)
		if mqttErr != nil {
			return fmt.Errorf("connecting to MQTT: %w", mqttErr)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log.Component("mqtt"))
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		br := bridge.New(mqttClient, eng.rt, eng.board, eng.clock, byte(cfg.MQTT.QoS)) //nolint:gosec // qos validated 0-2
		br.SetLogger(log.Component("bridge"))
		if subErr := br.Subscribe(); subErr != nil {
			return fmt.Errorf("subscribing MQTT bridge: %w", subErr)
		}
		attach(eng, br, br, br.PauseChanged)
		checks["mqtt"] = mqttClient
		dropped["mqtt"] = br
		g.Go(func() error { return br.Run(gctx) })
	} else {
		log.Info("MQTT disabled")
	}

	// InfluxDB (optional)
	if cfg.InfluxDB.Enabled {
		influxClient, influxErr := influxdb.Connect(ctx, cfg.InfluxDB)
		if influxErr != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", influxErr)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		eng.board.AddObserver(influxClient)
		eng.clock.OnChange(influxClient.PauseChanged)
		checks["influxdb"] = influxClient
		log.Info("InfluxDB connected", "url", cfg.InfluxDB.URL, "bucket", cfg.InfluxDB.Bucket)
	} else {
		log.Info("InfluxDB disabled")
	}

	// Launchpad (optional; a missing device is not fatal)
	if cfg.Launchpad.Enabled {
		ctrl, lpErr := launchpad.Open(cfg.Launchpad, eng.rt, eng.board, log.Component("launchpad"))
		if lpErr != nil {
			log.Warn("launchpad unavailable, continuing without it", "error", lpErr)
		} else {
			defer func() {
				log.Info("closing launchpad")
				if closeErr := ctrl.Close(); closeErr != nil {
					log.Error("error closing launchpad", "error", closeErr)
				}
			}()
			eng.surf.AddRenderer(ctrl)
			dropped["launchpad"] = ctrl
			g.Go(func() error { return ctrl.Run(gctx) })
			log.Info("launchpad connected", "in", cfg.Launchpad.InPort, "out", cfg.Launchpad.OutPort)
		}
	}

	// Terminal console (optional)
	if cfg.Console.Enabled {
		feed := console.NewFeed(console.DefaultFeedSize)
		feed.SetLogger(log.Component("console"))
		eng.surf.AddRenderer(feed)
		eng.clock.OnChange(feed.PauseChanged)
		dropped["console"] = feed

		model := console.NewModel(console.Options{
			Loop:    eng.rt,
			Board:   eng.board,
			Pause:   eng.clock,
			Feed:    feed,
			Pads:    eng.surf.States(),
			Paused:  eng.clock.IsPaused(),
			Columns: cfg.Console.Columns,
			Title:   sh.Name,
		})
		g.Go(func() error {
			defer stop() // quitting the console stops the show
			return console.Run(gctx, model)
		})
	}

	// Push the starting grid to every renderer before the loop owns it.
	eng.surf.Resync()

	if startErr := srv.Start(gctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := srv.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	g.Go(func() error { return eng.rt.Run(gctx, cfg.TickInterval()) })

	log.Info("initialisation complete, waiting for shutdown signal")
	<-gctx.Done()
	log.Info("shutdown signal received, cleaning up")

	err = g.Wait()
	log.Info("Cuepad Core stopped")
	return err
}

// newEngine wires the loop-owned components. hub may be nil, in which case
// sample and transport actions are dropped.
func newEngine(cfg *config.Config, sh *show.Show, hub *audio.Hub, log *logging.Logger) *engine {
	rt := tick.New(cfg.Engine.InboxSize)
	rt.SetLogger(log.Component("tick"))

	clock := pauseclock.New(nil)
	clock.SetLogger(log.Component("pause"))
	if hub != nil {
		clock.SetNotifier(hub)
	}

	surf := surface.New(sh.InitialAppearances())
	rt.AfterTick(surf.Flush)

	lights := lightcue.New(rt, surf, sh.Palette, clock)
	lights.SetLogger(log.Component("lightcue"))

	deps := pad.Deps{
		Runtime:  rt,
		Lights:   lights,
		Feedback: surf,
		Logger:   log.Component("pad"),
	}
	if hub != nil {
		deps.Audio = hub
	}

	return &engine{rt: rt, clock: clock, surf: surf, lights: lights, board: sh.BuildBoard(deps)}
}

// attach registers one front end for appearance, press and pause events.
func attach(eng *engine, r surface.Renderer, o pad.PressObserver, l pauseclock.Listener) {
	eng.surf.AddRenderer(r)
	eng.board.AddObserver(o)
	eng.clock.OnChange(l)
}

// startAudio loads the clip bank and opens the default output device.
func startAudio(cfg *config.Config, log *logging.Logger) (*audio.Hub, func(), error) {
	bank := audio.NewBank(beep.SampleRate(cfg.Audio.SampleRate))
	n, err := bank.LoadDir(cfg.Audio.ClipsDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading clips: %w", err)
	}

	hub := audio.NewHub(bank, audio.Options{
		PoolSize:  cfg.Audio.PoolSize,
		MusicClip: cfg.Audio.MusicClip,
		Locker:    audio.SpeakerLock(),
		Logger:    log.Component("audio"),
	})
	buffer := time.Duration(cfg.Audio.BufferMS) * time.Millisecond
	if err := audio.OpenSpeaker(bank.Rate(), buffer, hub.Streamer()); err != nil {
		return nil, nil, err
	}
	log.Info("audio started", "clips", n, "dir", cfg.Audio.ClipsDir, "sample_rate", cfg.Audio.SampleRate)

	return hub, func() {
		log.Info("closing audio output")
		audio.CloseSpeaker()
	}, nil
}

// newLogger builds the configured logger. While the console owns the
// terminal, output goes to logging.file instead.
func newLogger(cfg *config.Config) (*logging.Logger, func(), error) {
	if !cfg.Console.Enabled || cfg.Logging.File == "" {
		return logging.New(cfg.Logging, version), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0750); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return logging.NewWriter(cfg.Logging, version, f), func() { f.Close() }, nil
}

func getConfigPath() string {
	if path := os.Getenv("CUEPAD_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
