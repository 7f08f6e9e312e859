package sim

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/colonia/internal/calendar"
)

var (
	// ErrUnknownVariant is returned when a build names a variant the
	// project does not offer.
	ErrUnknownVariant = errors.New("sim: unknown construction variant")

	// ErrNoBuildTime is returned for projects that cannot be scheduled.
	ErrNoBuildTime = errors.New("sim: construction has no build time")

	// ErrNotUnderConstruction is returned when pausing or cancelling a
	// building that is not being built.
	ErrNotUnderConstruction = errors.New("sim: construction is not being built")

	// ErrNotFinished is returned when toggling maintenance on a building
	// that is not standing yet.
	ErrNotFinished = errors.New("sim: construction is not finished")
)

// Status is the lifecycle stage of a construction.
type Status int

const (
	Planned Status = iota
	InProgress
	Paused
	Finished
	Unmaintained
	Cancelled
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Planned:
		return "planned"
	case InProgress:
		return "in progress"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	case Unmaintained:
		return "unmaintained"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Construction is either a catalog project or a building raised from one.
type Construction struct {
	Name        string
	Description string
	Help        string
	Cost        float64
	Maintenance float64
	BuildTime   int
	DelayRisk   float64
	Variants    []*Effect

	InProgress  bool
	Finished    bool
	Maintained  bool
	Started     calendar.Date
	Completed   calendar.Date
	CostPerTick float64
	Active      *Effect

	progress   *Effect
	finishedAt uint64
	cancelled  bool
}

// Status returns where the construction is in its lifecycle.
func (con *Construction) Status() Status {
	switch {
	case con.cancelled:
		return Cancelled
	case con.Finished && con.Maintained:
		return Finished
	case con.Finished:
		return Unmaintained
	case con.InProgress:
		return InProgress
	case con.progress != nil:
		return Paused
	default:
		return Planned
	}
}

// Progress returns the bookkeeping effect driving the build, or nil for
// catalog projects and finished buildings.
func (con *Construction) Progress() *Effect {
	if con.Finished {
		return nil
	}
	return con.progress
}

// DaysLeft returns the remaining build ticks.
func (con *Construction) DaysLeft() int {
	if p := con.Progress(); p != nil {
		return p.Duration
	}
	return 0
}

// contributes reports whether the building's effect runs on the given tick.
// A building finished during tick t first contributes on tick t+1.
func (con *Construction) contributes(tick uint64) bool {
	return con.Finished && con.Maintained && !con.cancelled && con.finishedAt < tick
}

// TogglePause halts or resumes a building site. A halted site costs
// nothing and does not advance.
func (con *Construction) TogglePause() error {
	if con.Finished || con.cancelled || con.progress == nil {
		return ErrNotUnderConstruction
	}
	con.InProgress = !con.InProgress
	return nil
}

// ToggleMaintained stops or resumes upkeep of a finished building.
// Unmaintained buildings cost nothing and contribute nothing.
func (con *Construction) ToggleMaintained() error {
	if !con.Finished {
		return ErrNotFinished
	}
	con.Maintained = !con.Maintained
	return nil
}

// Build starts raising a building from project using the chosen variant.
func (c *City) Build(project *Construction, variant int) (*Construction, error) {
	if variant < 0 || variant >= len(project.Variants) {
		return nil, fmt.Errorf("%w: %d for %s", ErrUnknownVariant, variant, project.Name)
	}
	if project.BuildTime <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoBuildTime, project.Name)
	}

	con := &Construction{
		Name:        project.Name,
		Description: project.Description,
		Help:        project.Help,
		Cost:        project.Cost,
		Maintenance: project.Maintenance,
		BuildTime:   project.BuildTime,
		DelayRisk:   project.DelayRisk,
		Variants:    project.Variants,

		InProgress:  true,
		Maintained:  true,
		Started:     c.date,
		CostPerTick: project.Cost / float64(project.BuildTime),
		Active:      project.Variants[variant].clone(c.rng),
	}
	if con.Active.Behavior == nil {
		panic(fmt.Sprintf("sim: variant %d of %q has no behavior", variant, project.Name))
	}
	c.constructions = append(c.constructions, con)

	c.log.Push(c.printer.Sprintf("log.build_started", con.Name))

	con.progress = c.AddEffect(&Effect{
		Name:     c.printer.Sprintf("effect.building_name", con.Name),
		Duration: project.BuildTime,
		Behavior: &buildProgress{con: con},
	})
	return con, nil
}

// CancelConstruction abandons a building site. The site is cleared on the
// next tick and nothing already spent is refunded.
func (c *City) CancelConstruction(con *Construction) error {
	if con.Finished || con.cancelled || con.progress == nil {
		return ErrNotUnderConstruction
	}
	con.cancelled = true
	con.InProgress = false
	con.progress.ScheduledForRemoval = true
	c.log.Push(c.printer.Sprintf("log.build_cancelled", con.Name))
	return nil
}

// buildProgress is the bookkeeping effect of a building site.
type buildProgress struct {
	con *Construction
}

func (b *buildProgress) Tick(c *City, e *Effect, cur State, next *State) {
	con := b.con
	if con == nil {
		panic("sim: build progress without construction")
	}

	if !con.InProgress {
		e.Duration++
		e.Description = c.printer.Sprintf("effect.building_paused", e.Duration-1)
		return
	}

	next.GoldUsage += con.CostPerTick
	e.Description = c.printer.Sprintf("effect.building_desc", e.Duration, con.CostPerTick)

	if con.DelayRisk > 0 && c.rng.Float64() < con.DelayRisk {
		e.Duration++
		return
	}

	if e.Duration == 1 {
		con.Finished = true
		con.Maintained = true
		con.InProgress = false
		con.Completed = c.date
		con.finishedAt = c.tick
		e.Name = ""
		e.Description = ""
		c.log.Push(c.printer.Sprintf("log.build_finished", con.Name))
	}
}
