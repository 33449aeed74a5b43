package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nerrad567/cuepad-core/internal/infrastructure/config"
)

const testShow = `
name: "Smoke"
grid:
  size: 4
palette:
  - { name: white, color: "#ffffff" }
  - { name: red, color: "#ff0000" }
pads:
  - index: 0
    profiles:
      - actions:
          - { type: light, slot: 1, duration: 0.5 }
`

// writeConfig writes a show and a config pointing at it into a temp dir
// and sets CUEPAD_CONFIG. extra is appended to the config YAML.
func writeConfig(t *testing.T, port int, extra string) string {
	t.Helper()
	dir := t.TempDir()

	showPath := filepath.Join(dir, "show.yaml")
	if err := os.WriteFile(showPath, []byte(testShow), 0600); err != nil {
		t.Fatalf("failed to write show: %v", err)
	}

	configContent := fmt.Sprintf(`
show:
  file: %q

database:
  path: %q
  wal_mode: true
  busy_timeout: 5

mqtt:
  enabled: false

influxdb:
  enabled: false

logging:
  level: error
  format: text
  output: discard

api:
  host: "127.0.0.1"
  port: %d
`, showPath, filepath.Join(dir, "cuepad.db"), port) + extra

	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv("CUEPAD_CONFIG", configPath)
	return dir
}

// TestRun_InvalidConfig verifies run fails with invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("CUEPAD_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_MissingShow verifies run fails before touching the database when
// the show file is absent.
func TestRun_MissingShow(t *testing.T) {
	dir := writeConfig(t, 19381, "")
	if err := os.Remove(filepath.Join(dir, "show.yaml")); err != nil {
		t.Fatalf("remove show: %v", err)
	}

	err := run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "loading show") {
		t.Fatalf("run() error = %v, want loading show error", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "cuepad.db")); !os.IsNotExist(statErr) {
		t.Error("database created despite missing show")
	}
}

// TestRun_MQTTUnreachable verifies an enabled but unreachable broker fails startup.
func TestRun_MQTTUnreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for the MQTT connect timeout")
	}
	writeConfig(t, 19382, `
mqtt:
  enabled: true
  broker:
    host: "127.0.0.1"
    port: 19999
    client_id: "cuepad-test"
  qos: 1
  reconnect:
    initial_delay: 1
    max_delay: 1
`)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail when the MQTT broker is unreachable")
	}
}

// TestRun_StartAndShutdown runs the full binary without optional services,
// waits for the API, presses a pad over HTTP and shuts down.
func TestRun_StartAndShutdown(t *testing.T) {
	const port = 19383
	dir := writeConfig(t, port, "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- run(ctx) }()

	base := fmt.Sprintf("http://127.0.0.1:%d/api/v1", port)
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(base + "/health")
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("API did not come up: %v", err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	resp, err := http.Post(base+"/pads/0/press", "application/json", nil)
	if err != nil {
		t.Fatalf("press request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("press status = %d, want 200", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("run() error = %v, want nil on shutdown", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("run() did not return after cancel")
	}

	if _, err := os.Stat(filepath.Join(dir, "cuepad.db")); err != nil {
		t.Errorf("database file missing after run: %v", err)
	}
}

// TestGetConfigPath_Default verifies default config path.
func TestGetConfigPath_Default(t *testing.T) {
	t.Setenv("CUEPAD_CONFIG", "")

	if path := getConfigPath(); path != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", path, defaultConfigPath)
	}
}

// TestGetConfigPath_EnvOverride verifies environment variable override.
func TestGetConfigPath_EnvOverride(t *testing.T) {
	expected := "/custom/path/config.yaml"
	t.Setenv("CUEPAD_CONFIG", expected)

	if path := getConfigPath(); path != expected {
		t.Errorf("getConfigPath() = %q, want %q", path, expected)
	}
}

// TestNewLogger_FileWhileConsole verifies logs move to a file when the
// console owns the terminal.
func TestNewLogger_FileWhileConsole(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "cuepad.log")
	cfg := &config.Config{
		Logging: config.LoggingConfig{Level: "info", Format: "text", File: logPath},
		Console: config.ConsoleConfig{Enabled: true},
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		t.Fatalf("newLogger() error: %v", err)
	}
	log.Info("hello from test")
	closeLog()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("log file = %q, want message", data)
	}
}

// TestNewLogger_StdoutWithoutConsole verifies no file is created otherwise.
func TestNewLogger_StdoutWithoutConsole(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "cuepad.log")
	cfg := &config.Config{
		Logging: config.LoggingConfig{Level: "info", Output: "discard", File: logPath},
	}

	if _, closeLog, err := newLogger(cfg); err != nil {
		t.Fatalf("newLogger() error: %v", err)
	} else {
		closeLog()
	}
	if _, err := os.Stat(logPath); !os.IsNotExist(err) {
		t.Error("log file created without console")
	}
}
