// Package scenario defines the built-in colonies. Each scenario registers
// itself with the registry on import.
package scenario

import (
	"github.com/vovakirdan/colonia/internal/calendar"
	"github.com/vovakirdan/colonia/internal/registry"
	"github.com/vovakirdan/colonia/internal/sim"
)

const (
	// EboracumID is the default scenario.
	EboracumID = "eboracum"
	// EboracumDebugID adds an effect that writes to the event log every day.
	EboracumDebugID = "eboracum_debug"
)

func init() {
	registry.Register(EboracumID, "Eboracum", func(s registry.Settings) *sim.City {
		return Eboracum(s, false)
	})
	registry.Register(EboracumDebugID, "Eboracum (event log tester)", func(s registry.Settings) *sim.City {
		return Eboracum(s, true)
	})
}

// Eboracum founds a frontier colony in Britannia with the full catalog,
// the land tax and the standing effects of consumption, imperial demands
// and upkeep.
func Eboracum(s registry.Settings, debug bool) *sim.City {
	gold := 100.0
	if s.HardMode {
		gold /= 2
	}

	c := sim.New(sim.Options{
		Name:     "Eboracum",
		Seed:     s.Seed,
		Language: s.Language,
		Start:    calendar.Date{},
		Prices:   sim.Prices{sim.Grapes: 0.35, sim.Wheat: 0.45, sim.Olives: 0.40},
		State: sim.State{
			Gold:       gold,
			Population: 300,
			LandArea:   100,
		},
	})

	for _, p := range sim.DefaultProjects() {
		c.AddProject(p)
	}
	for _, l := range sim.DefaultLaws() {
		c.AddLaw(l)
	}

	if debug {
		c.AddEffect(sim.NewHerald())
	}
	c.AddEffect(sim.NewConsumption())
	c.AddEffect(sim.NewImperialDemand())
	c.AddEffect(sim.NewMaintenance())
	return c
}
