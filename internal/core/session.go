package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/colonia/internal/registry"
	"github.com/vovakirdan/colonia/internal/sim"
	"github.com/vovakirdan/colonia/internal/storage"
)

var (
	// ErrNoSuchProject is returned for a project index outside the catalog.
	ErrNoSuchProject = errors.New("core: no such project")
	// ErrNoSuchLaw is returned for a law index outside the law list.
	ErrNoSuchLaw = errors.New("core: no such law")
	// ErrNoSuchConstruction is returned for a construction index outside the list.
	ErrNoSuchConstruction = errors.New("core: no such construction")
	// ErrNoPopup is returned when a choice is made with no popup waiting.
	ErrNoPopup = errors.New("core: no popup awaiting an answer")
	// ErrNotColonyAction is returned by Apply for navigation actions.
	ErrNotColonyAction = errors.New("core: not a colony action")
)

// Session drives one colony for one player. It is not safe for
// concurrent use; the owning front end is its only caller.
type Session struct {
	City   *sim.City
	config RuntimeConfig
	last   time.Time
	events []string
}

// NewSession founds the configured scenario.
// A zero seed is replaced with the current time.
func NewSession(cfg RuntimeConfig) (*Session, error) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	city, err := registry.Create(cfg.Scenario, registry.Settings{
		Seed:     cfg.Seed,
		Language: cfg.Language,
		HardMode: cfg.HardMode,
	})
	if err != nil {
		return nil, err
	}
	city.SetSpeed(cfg.Speed)

	s := &Session{City: city, config: cfg}
	city.Log().AddSink(func(msg string) {
		s.events = append(s.events, msg)
	})
	return s, nil
}

// Events returns every message the colony logged since the session began,
// oldest first. Unlike the event log it never drops messages.
func (s *Session) Events() []string {
	return append([]string(nil), s.events...)
}

// Config returns the settings the session was started with.
func (s *Session) Config() RuntimeConfig {
	return s.config
}

// Frame is called once per UI frame. It advances the colony by at most one
// day when the interval for the current speed has elapsed since the last
// day and reports whether it did. Time spent paused is not made up.
func (s *Session) Frame(now time.Time) bool {
	if s.last.IsZero() || s.City.Speed() == 0 {
		s.last = now
		return false
	}
	if !s.City.Due(now.Sub(s.last)) {
		return false
	}
	s.last = now
	s.City.Advance()
	return true
}

// Step advances the colony by one day regardless of speed.
func (s *Session) Step() {
	s.City.Advance()
}

// Popup returns the first popup awaiting an answer, or nil.
func (s *Session) Popup() *sim.Popup {
	for _, p := range s.City.Popups() {
		if p.Pending() {
			return p
		}
	}
	return nil
}

// Apply performs a colony action.
func (s *Session) Apply(in Input) error {
	c := s.City
	switch in.Action {
	case ActionSetSpeed:
		c.SetSpeed(in.Value)
		return nil

	case ActionTogglePause:
		c.TogglePause()
		return nil

	case ActionBuild:
		projects := c.Projects()
		if in.Value < 0 || in.Value >= len(projects) {
			return fmt.Errorf("%w: %d", ErrNoSuchProject, in.Value)
		}
		_, err := c.Build(projects[in.Value], in.Variant)
		return err

	case ActionEnact:
		laws := c.Laws()
		if in.Value < 0 || in.Value >= len(laws) {
			return fmt.Errorf("%w: %d", ErrNoSuchLaw, in.Value)
		}
		return c.Enact(laws[in.Value])

	case ActionChoose:
		p := s.Popup()
		if p == nil {
			return ErrNoPopup
		}
		return p.Choose(in.Value)

	case ActionPauseConstruction, ActionToggleMaintenance, ActionCancelConstruction:
		cons := c.Constructions()
		if in.Value < 0 || in.Value >= len(cons) {
			return fmt.Errorf("%w: %d", ErrNoSuchConstruction, in.Value)
		}
		con := cons[in.Value]
		switch in.Action {
		case ActionPauseConstruction:
			return con.TogglePause()
		case ActionToggleMaintenance:
			return con.ToggleMaintained()
		default:
			return c.CancelConstruction(con)
		}
	}

	return fmt.Errorf("%w: %s", ErrNotColonyAction, in.Action)
}

// Record summarizes the session for the run history.
func (s *Session) Record() storage.Run {
	st := s.City.Current()
	return storage.Run{
		Scenario:   s.config.Scenario,
		City:       s.City.Name(),
		Player:     s.config.Player,
		Seed:       s.config.Seed,
		Days:       int(s.City.Tick()),
		EndDate:    s.City.Date().Long(),
		Gold:       st.Gold,
		Population: st.Population,
		Outcome:    st.Outcome().String(),
	}
}

// Save records the session and its event log in store.
func (s *Session) Save(store *storage.Store) (int64, error) {
	id, err := store.SaveRun(s.Record())
	if err != nil {
		return 0, err
	}
	if err := store.SaveEvents(id, s.events); err != nil {
		return id, err
	}
	return id, nil
}
