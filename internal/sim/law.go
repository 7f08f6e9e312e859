package sim

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/colonia/internal/calendar"
)

var (
	// ErrLawEnacted is returned when enacting a law twice.
	ErrLawEnacted = errors.New("sim: law already enacted")

	// ErrLawsDisabled is returned while no senate house sits.
	ErrLawsDisabled = errors.New("sim: laws are not enabled")
)

// Law is a policy the senate can pass. Passing it starts Policy for good
// and charges Cost points of Capacity for CostDuration ticks.
type Law struct {
	Enacted      bool
	Name         string
	Description  string
	Help         string
	Capacity     Capacity
	Cost         int
	CostDuration int
	EnactedOn    calendar.Date
	Policy       *Effect
}

// Enact passes a law.
func (c *City) Enact(l *Law) error {
	if l.Enacted {
		return fmt.Errorf("%w: %s", ErrLawEnacted, l.Name)
	}
	if !c.Current().LawsEnabled {
		return fmt.Errorf("%w: %s", ErrLawsDisabled, l.Name)
	}
	c.enact(l)
	return nil
}

// enact passes a law without checking preconditions.
func (c *City) enact(l *Law) {
	if l.Policy == nil {
		panic(fmt.Sprintf("sim: law %q has no policy", l.Name))
	}
	l.Enacted = true
	l.EnactedOn = c.date

	c.AddEffect(&Effect{
		Name:     c.printer.Sprintf("effect.law_name", l.Name),
		Duration: l.CostDuration,
		Behavior: &lawCharge{law: l},
	})
	c.AddEffect(l.Policy.clone(c.rng))
	c.log.Push(c.printer.Sprintf("log.law_enacted", l.Name))
}

// lawCharge bills a law's capacity cost while it is being passed.
type lawCharge struct {
	law *Law
}

func (b *lawCharge) Tick(c *City, e *Effect, cur State, next *State) {
	if b.law == nil {
		panic("sim: law charge without law")
	}
	next.AddUsage(b.law.Capacity, b.law.Cost)
	e.Description = c.printer.Sprintf("effect.law_desc",
		e.Duration, float64(b.law.Cost), c.printer.Sprintf(b.law.Capacity.Key()))
}
