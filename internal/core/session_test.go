package core

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/vovakirdan/colonia/internal/scenario"
	"github.com/vovakirdan/colonia/internal/sim"
	"github.com/vovakirdan/colonia/internal/storage"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Player = "tester"
	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

func TestNewSessionUnknownScenario(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scenario = "carthago"
	if _, err := NewSession(cfg); err == nil {
		t.Error("NewSession() should fail for an unknown scenario")
	}
}

func TestNewSessionSeedAndSpeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Speed = 7
	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	if s.Config().Seed == 0 {
		t.Error("zero seed was not replaced")
	}
	if s.City.Speed() != 7 {
		t.Errorf("Speed() = %d, expected 7", s.City.Speed())
	}
}

func TestFramePacing(t *testing.T) {
	s := newTestSession(t)
	t0 := time.Unix(1000, 0)

	if s.Frame(t0) {
		t.Error("first frame should only start the clock")
	}
	if s.Frame(t0.Add(500 * time.Millisecond)) {
		t.Error("day advanced before the interval elapsed")
	}
	if !s.Frame(t0.Add(time.Second)) {
		t.Error("day not advanced after one second at speed 1")
	}
	if s.Frame(t0.Add(1999 * time.Millisecond)) {
		t.Error("day advanced too early")
	}

	// A long gap yields a single day.
	if !s.Frame(t0.Add(10 * time.Second)) {
		t.Error("day not advanced after a long gap")
	}
	if s.City.Tick() != 2 {
		t.Errorf("Tick() = %d, expected 2 with no catch-up", s.City.Tick())
	}
}

func TestFramePaused(t *testing.T) {
	s := newTestSession(t)
	t0 := time.Unix(1000, 0)

	s.Frame(t0)
	s.Apply(Do(ActionTogglePause))
	if s.Frame(t0.Add(5 * time.Second)) {
		t.Error("day advanced while paused")
	}

	s.Apply(Do(ActionTogglePause))
	if s.City.Speed() != sim.DefaultSpeed {
		t.Fatalf("Speed() = %d after resume", s.City.Speed())
	}
	if s.Frame(t0.Add(5*time.Second + 100*time.Millisecond)) {
		t.Error("time spent paused was made up")
	}
	if !s.Frame(t0.Add(5*time.Second + 200*time.Millisecond)) {
		t.Error("day not advanced at speed 5")
	}
}

func TestApplySpeed(t *testing.T) {
	s := newTestSession(t)
	if err := s.Apply(With(ActionSetSpeed, 12)); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if s.City.Speed() != sim.MaxSpeed {
		t.Errorf("Speed() = %d, expected clamp to %d", s.City.Speed(), sim.MaxSpeed)
	}
}

func TestApplyConstructionLifecycle(t *testing.T) {
	s := newTestSession(t)

	if err := s.Apply(Input{Action: ActionBuild, Value: 3, Variant: 1}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	cons := s.City.Constructions()
	if len(cons) != 1 || cons[0].Name != "Farm" {
		t.Fatalf("Constructions() = %v", cons)
	}

	if err := s.Apply(With(ActionPauseConstruction, 0)); err != nil {
		t.Fatalf("pause failed: %v", err)
	}
	if cons[0].Status() != sim.Paused {
		t.Errorf("Status() = %s, expected paused", cons[0].Status())
	}

	if err := s.Apply(With(ActionToggleMaintenance, 0)); !errors.Is(err, sim.ErrNotFinished) {
		t.Errorf("maintenance toggle on a site = %v, expected ErrNotFinished", err)
	}

	if err := s.Apply(With(ActionCancelConstruction, 0)); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cons[0].Status() != sim.Cancelled {
		t.Errorf("Status() = %s, expected cancelled", cons[0].Status())
	}
}

func TestApplyErrors(t *testing.T) {
	s := newTestSession(t)

	tests := []struct {
		in   Input
		want error
	}{
		{Input{Action: ActionBuild, Value: 99}, ErrNoSuchProject},
		{Input{Action: ActionBuild, Value: 3, Variant: 5}, sim.ErrUnknownVariant},
		{Input{Action: ActionEnact, Value: -1}, ErrNoSuchLaw},
		{Input{Action: ActionEnact, Value: 0}, sim.ErrLawsDisabled},
		{Input{Action: ActionChoose, Value: 0}, ErrNoPopup},
		{Input{Action: ActionCancelConstruction, Value: 0}, ErrNoSuchConstruction},
		{Input{Action: ActionUp}, ErrNotColonyAction},
	}

	for _, tt := range tests {
		if err := s.Apply(tt.in); !errors.Is(err, tt.want) {
			t.Errorf("Apply(%s) = %v, expected %v", tt.in.Action, err, tt.want)
		}
	}
}

func TestApplyChoose(t *testing.T) {
	s := newTestSession(t)
	resolved := 0
	s.City.AddPopup(sim.NewPopup("Omen", "A comet", []sim.Choice{{Label: "Pray"}, {Label: "Ignore"}},
		func(p *sim.Popup, c *sim.City, cur sim.State, next *sim.State) { resolved++ }))

	if s.Popup() == nil {
		t.Fatal("Popup() = nil, expected the omen")
	}
	if err := s.Apply(With(ActionChoose, 2)); !errors.Is(err, sim.ErrChoiceOutOfRange) {
		t.Errorf("out of range choice = %v", err)
	}
	if err := s.Apply(With(ActionChoose, 1)); err != nil {
		t.Fatalf("choose failed: %v", err)
	}
	if s.Popup() != nil {
		t.Error("answered popup still pending")
	}

	s.Step()
	if resolved != 1 {
		t.Errorf("resolved %d times, expected 1", resolved)
	}
}

func TestActionColony(t *testing.T) {
	if !ActionBuild.Colony() || !ActionSetSpeed.Colony() || !ActionCancelConstruction.Colony() {
		t.Error("colony actions not reported")
	}
	if ActionQuit.Colony() || ActionNone.Colony() || ActionConfirm.Colony() {
		t.Error("navigation action reported as colony action")
	}
}

func TestRecordAndSave(t *testing.T) {
	s := newTestSession(t)
	s.Apply(Input{Action: ActionBuild, Value: 3})
	for i := 0; i < 3; i++ {
		s.Step()
	}

	rec := s.Record()
	if rec.Scenario != "eboracum" || rec.City != "Eboracum" || rec.Player != "tester" {
		t.Errorf("Record() identity = %+v", rec)
	}
	if rec.Seed != 42 || rec.Days != 3 {
		t.Errorf("Record() seed/days = %d/%d", rec.Seed, rec.Days)
	}
	if rec.Outcome != "republic" {
		t.Errorf("Record().Outcome = %q", rec.Outcome)
	}

	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	id, err := s.Save(store)
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	events, err := store.RunEvents(id)
	if err != nil {
		t.Fatalf("RunEvents() failed: %v", err)
	}
	if len(events) != len(s.Events()) || len(events) == 0 {
		t.Errorf("saved %d events, session logged %d", len(events), len(s.Events()))
	}
}

func TestSaveKeepsEventsPastLogCapacity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 5
	cfg.Scenario = "eboracum_debug"
	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	for i := 0; i < 15; i++ {
		s.Step()
	}

	var debug []string
	for _, e := range s.Events() {
		if strings.HasPrefix(e, "Message #") {
			debug = append(debug, e)
		}
	}
	if len(debug) != 15 {
		t.Fatalf("session logged %d debug messages, expected 15", len(debug))
	}
	if debug[0] != "Message #1" || debug[14] != "Message #15" {
		t.Errorf("debug messages out of order: first %q, last %q", debug[0], debug[14])
	}

	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	id, err := s.Save(store)
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	saved, err := store.RunEvents(id)
	if err != nil {
		t.Fatalf("RunEvents() failed: %v", err)
	}
	want := s.Events()
	if len(saved) != len(want) {
		t.Fatalf("saved %d events, expected %d", len(saved), len(want))
	}
	for i := range want {
		if saved[i] != want[i] {
			t.Errorf("event %d = %q, expected %q", i, saved[i], want[i])
		}
	}
}
