package history

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/cuepad-core/internal/infrastructure/config"
	"github.com/nerrad567/cuepad-core/internal/infrastructure/database"
	"github.com/nerrad567/cuepad-core/internal/pad"
	_ "github.com/nerrad567/cuepad-core/migrations"
)

func openRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{Path: database.MemoryPath})
	if err != nil {
		t.Fatalf("database.Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return NewSQLiteRepository(db.DB)
}

var base = time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC)

func seed(t *testing.T, repo *SQLiteRepository) {
	t.Helper()
	presses := []Press{
		{Pad: 0, Profile: 0, ProfileName: "Intro", Velocity: 1, Actions: 2, Source: "launchpad", PressedAt: base},
		{Pad: 1, Profile: -1, Velocity: 0.5, Source: "api", PressedAt: base.Add(time.Second)},
		{Pad: 0, Profile: 1, ProfileName: "Drop", Velocity: 0.8, Actions: 1, Source: "mqtt", PressedAt: base.Add(2 * time.Second)},
	}
	for i := range presses {
		if err := repo.Record(context.Background(), &presses[i]); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}
}

func TestRecord_GeneratesIDAndTime(t *testing.T) {
	repo := openRepo(t)
	p := Press{Pad: 4, Velocity: 1}
	if err := repo.Record(context.Background(), &p); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if len(p.ID) < 5 || p.ID[:4] != "prs-" {
		t.Errorf("ID = %q, want prs- prefix", p.ID)
	}
	if p.PressedAt.IsZero() {
		t.Error("PressedAt not set")
	}
}

func TestList(t *testing.T) {
	repo := openRepo(t)
	seed(t, repo)
	ctx := context.Background()
	padZero := 0

	tests := []struct {
		name      string
		filter    Filter
		wantTotal int
		wantPads  []int
	}{
		{name: "all newest first", filter: Filter{}, wantTotal: 3, wantPads: []int{0, 1, 0}},
		{name: "by pad", filter: Filter{Pad: &padZero}, wantTotal: 2, wantPads: []int{0, 0}},
		{name: "by source", filter: Filter{Source: "api"}, wantTotal: 1, wantPads: []int{1}},
		{name: "paged", filter: Filter{Limit: 1, Offset: 1}, wantTotal: 3, wantPads: []int{1}},
		{name: "past the end", filter: Filter{Offset: 10}, wantTotal: 3, wantPads: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := repo.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if res.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", res.Total, tt.wantTotal)
			}
			if len(res.Presses) != len(tt.wantPads) {
				t.Fatalf("len(Presses) = %d, want %d", len(res.Presses), len(tt.wantPads))
			}
			for i, want := range tt.wantPads {
				if res.Presses[i].Pad != want {
					t.Errorf("Presses[%d].Pad = %d, want %d", i, res.Presses[i].Pad, want)
				}
			}
		})
	}

	res, err := repo.List(ctx, Filter{Limit: 1})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	got := res.Presses[0]
	if got.ProfileName != "Drop" || got.Velocity != 0.8 || got.Source != "mqtt" || !got.PressedAt.Equal(base.Add(2*time.Second)) {
		t.Errorf("newest press = %+v", got)
	}
}

func TestList_ClampsLimit(t *testing.T) {
	repo := openRepo(t)
	tests := []struct {
		in, want int
	}{
		{0, DefaultLimit},
		{-5, DefaultLimit},
		{10, 10},
		{MaxLimit + 1, MaxLimit},
	}
	for _, tt := range tests {
		res, err := repo.List(context.Background(), Filter{Limit: tt.in})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if res.Limit != tt.want {
			t.Errorf("List(limit %d).Limit = %d, want %d", tt.in, res.Limit, tt.want)
		}
	}
}

func TestCountByPad(t *testing.T) {
	repo := openRepo(t)
	seed(t, repo)

	counts, err := repo.CountByPad(context.Background())
	if err != nil {
		t.Fatalf("CountByPad() error = %v", err)
	}
	want := []PadCount{{Pad: 0, Count: 2}, {Pad: 1, Count: 1}}
	if len(counts) != len(want) {
		t.Fatalf("CountByPad() = %+v, want %+v", counts, want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("counts[%d] = %+v, want %+v", i, counts[i], want[i])
		}
	}
}

// ─── Journal ────────────────────────────────────────────────────────────────

type mockRepo struct {
	mu      sync.Mutex
	presses []Press
	err     error
}

func (m *mockRepo) Record(_ context.Context, p *Press) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.presses = append(m.presses, *p)
	return nil
}

func (m *mockRepo) List(context.Context, Filter) (*ListResult, error) { return &ListResult{}, nil }
func (m *mockRepo) CountByPad(context.Context) ([]PadCount, error)   { return nil, nil }

func (m *mockRepo) getPresses() []Press {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Press(nil), m.presses...)
}

type mockLogger struct {
	mu     sync.Mutex
	warns  int
	errors int
}

func (l *mockLogger) Warn(string, ...any) {
	l.mu.Lock()
	l.warns++
	l.mu.Unlock()
}

func (l *mockLogger) Error(string, ...any) {
	l.mu.Lock()
	l.errors++
	l.mu.Unlock()
}

func (l *mockLogger) counts() (int, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.warns, l.errors
}

func TestJournal_DropsWhenFullAndDrainsOnStop(t *testing.T) {
	repo := &mockRepo{}
	logger := &mockLogger{}
	j := NewJournal(repo, 2)
	j.SetLogger(logger)

	for i := 0; i < 3; i++ {
		j.PadPressed(pad.PressEvent{Pad: i, Velocity: 1, At: base, Source: "console"})
	}
	if j.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", j.Dropped())
	}
	if warns, _ := logger.counts(); warns != 1 {
		t.Errorf("warns = %d, want 1", warns)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := j.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := repo.getPresses()
	if len(got) != 2 || got[0].Pad != 0 || got[1].Pad != 1 || got[0].Source != "console" {
		t.Errorf("recorded = %+v, want pads 0 and 1 from console", got)
	}
}

func TestJournal_RecordErrorsAreLogged(t *testing.T) {
	repo := &mockRepo{err: errors.New("disk full")}
	logger := &mockLogger{}
	j := NewJournal(repo, 0)
	j.SetLogger(logger)

	j.PadPressed(pad.PressEvent{Pad: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = j.Run(ctx)

	if _, errs := logger.counts(); errs != 1 {
		t.Errorf("errors logged = %d, want 1", errs)
	}
}

func TestJournal_WritesWhileRunning(t *testing.T) {
	repo := openRepo(t)
	j := NewJournal(repo, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Run(ctx) }()

	j.PadPressed(pad.PressEvent{Pad: 7, Profile: 0, ProfileName: "Hit", Velocity: 0.9, Actions: 1, At: base, Source: "api"})

	deadline := time.Now().Add(2 * time.Second)
	for {
		res, err := repo.List(context.Background(), Filter{})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if res.Total == 1 {
			if res.Presses[0].Pad != 7 || res.Presses[0].ProfileName != "Hit" {
				t.Errorf("press = %+v", res.Presses[0])
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("press was not journaled")
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error = %v", err)
	}
}
