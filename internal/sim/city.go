// Package sim is the colony simulation kernel. A City advances one day per
// call to Advance by running its effects, the effects of its standing
// buildings and any answered popups against the previous day's state.
//
// The package has no I/O and no goroutines: a City is owned by exactly one
// driver, which decides when to tick and reads Current between ticks.
package sim

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"golang.org/x/text/message"

	"github.com/vovakirdan/colonia/internal/calendar"
	"github.com/vovakirdan/colonia/internal/eventlog"
	"github.com/vovakirdan/colonia/internal/i18n"
)

// MaxSpeed is the fastest speed setting.
const MaxSpeed = 9

// DefaultSpeed is the speed a paused simulation resumes at.
const DefaultSpeed = 5

// Options configures a new City.
type Options struct {
	Name     string
	Seed     int64
	Language int
	Start    calendar.Date
	Prices   Prices
	State    State
}

// City is the long-lived simulation context. It owns every collection that
// persists across ticks; only the scalar State is double-buffered.
type City struct {
	name   string
	prices Prices
	log    *eventlog.Log

	effects       []*Effect
	projects      []*Construction
	constructions []*Construction
	popups        []*Popup
	laws          []*Law

	states [2]State
	cur    int

	date    calendar.Date
	lastDay calendar.Date
	tick    uint64
	speed   int

	rng     *rand.Rand
	printer *message.Printer
}

// New creates a city from opts.
func New(opts Options) *City {
	c := &City{
		name:    opts.Name,
		prices:  opts.Prices,
		log:     eventlog.New(),
		date:    opts.Start,
		speed:   1,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		printer: i18n.Printer(opts.Language),
	}
	c.states[0] = opts.State
	return c
}

// Name returns the city name.
func (c *City) Name() string { return c.name }

// Prices returns the produce prices.
func (c *City) Prices() Prices { return c.prices }

// Log returns the city's event log.
func (c *City) Log() *eventlog.Log { return c.log }

// Date returns the date of the upcoming tick.
func (c *City) Date() calendar.Date { return c.date }

// LastDay returns the date of the most recently completed tick. It reports
// false before the first tick.
func (c *City) LastDay() (calendar.Date, bool) {
	return c.lastDay, c.tick > 0
}

// Tick returns the number of completed ticks.
func (c *City) Tick() uint64 { return c.tick }

// Printer returns the printer used for display strings.
func (c *City) Printer() *message.Printer { return c.printer }

// Rand returns the city's random source. Behaviors draw from it so a seeded
// city replays identically.
func (c *City) Rand() *rand.Rand { return c.rng }

// Current returns the most recently completed state.
func (c *City) Current() State { return c.states[c.cur] }

// Effects returns the live effects. The slice is a copy; the effects are not.
func (c *City) Effects() []*Effect { return append([]*Effect(nil), c.effects...) }

// Projects returns the construction catalog.
func (c *City) Projects() []*Construction { return append([]*Construction(nil), c.projects...) }

// Constructions returns the buildings started in this city.
func (c *City) Constructions() []*Construction {
	return append([]*Construction(nil), c.constructions...)
}

// Popups returns the pending popups.
func (c *City) Popups() []*Popup { return append([]*Popup(nil), c.popups...) }

// Laws returns the laws known to the city.
func (c *City) Laws() []*Law { return append([]*Law(nil), c.laws...) }

// AddEffect registers an effect and returns it.
func (c *City) AddEffect(e *Effect) *Effect {
	if e.Behavior == nil {
		panic(fmt.Sprintf("sim: effect %q has no behavior", e.Name))
	}
	c.effects = append(c.effects, e)
	return e
}

// AddProject adds a construction template to the catalog.
func (c *City) AddProject(p *Construction) *Construction {
	c.projects = append(c.projects, p)
	return p
}

// AddLaw makes a law available for enactment.
func (c *City) AddLaw(l *Law) *Law {
	c.laws = append(c.laws, l)
	return l
}

// AddPopup queues a popup for the player.
func (c *City) AddPopup(p *Popup) *Popup {
	c.popups = append(c.popups, p)
	return p
}

// Speed returns the speed setting, 0 meaning paused.
func (c *City) Speed() int { return c.speed }

// SetSpeed sets the speed, clamped to 0..MaxSpeed.
func (c *City) SetSpeed(s int) {
	c.speed = max(0, min(s, MaxSpeed))
}

// TogglePause switches between paused and DefaultSpeed.
func (c *City) TogglePause() {
	if c.speed == 0 {
		c.speed = DefaultSpeed
		return
	}
	c.speed = 0
}

// TickInterval returns the wall-clock time between ticks at a speed.
// Zero means paused.
func TickInterval(speed int) time.Duration {
	if speed <= 0 {
		return 0
	}
	return time.Second / time.Duration(speed)
}

// Due reports whether a tick is due after elapsed time at the current
// speed. Missed ticks are not queued.
func (c *City) Due(elapsed time.Duration) bool {
	iv := TickInterval(c.speed)
	return iv > 0 && elapsed >= iv
}

// Advance simulates one day.
func (c *City) Advance() {
	cur := c.states[c.cur]
	next := &c.states[1-c.cur]
	*next = State{
		LandArea:   cur.LandArea,
		Population: cur.Population,
	}

	c.runEffects(cur, next)
	c.runConstructions(cur, next)
	c.resolvePopups(cur, next)

	next.Gold += c.prices.Average() * (cur.FoodProduction - cur.FoodUsage)
	next.FoodProduction -= next.FoodUsage
	next.PopulationDelta += int(math.Round(10 * next.FoodProduction))
	next.Population += next.PopulationDelta

	// Settlement replaces the trade income computed above.
	next.Gold = cur.Gold - next.GoldUsage

	c.lastDay = c.date
	c.tick++
	c.date = c.date.Next()
	c.cur = 1 - c.cur
}

func (c *City) runEffects(cur State, next *State) {
	for i := 0; i < len(c.effects); i++ {
		e := c.effects[i]
		if e.ScheduledForRemoval || e.Duration == 0 {
			c.effects = swapRemove(c.effects, i)
			i--
			continue
		}

		e.Behavior.Tick(c, e, cur, next)
		if e.Duration == Forever {
			continue
		}

		e.Duration--
		if e.Duration <= 0 {
			c.effects = swapRemove(c.effects, i)
			i--
		}
	}
}

func (c *City) runConstructions(cur State, next *State) {
	for i := 0; i < len(c.constructions); i++ {
		con := c.constructions[i]
		if con.cancelled && !con.Finished {
			c.constructions = swapRemove(c.constructions, i)
			i--
			continue
		}
		if !con.contributes(c.tick) {
			continue
		}
		if con.Active == nil || con.Active.Behavior == nil {
			panic(fmt.Sprintf("sim: construction %q has no active effect", con.Name))
		}
		con.Active.Behavior.Tick(c, con.Active, cur, next)
	}
}

func (c *City) resolvePopups(cur State, next *State) {
	for i := 0; i < len(c.popups); i++ {
		p := c.popups[i]
		if p.Chosen < 0 {
			continue
		}
		if p.Chosen >= len(p.Choices) {
			panic(fmt.Sprintf("sim: popup %q has choice %d of %d", p.Title, p.Chosen, len(p.Choices)))
		}
		if p.Resolve != nil {
			p.Resolve(p, c, cur, next)
		}
		p.resolved = true
		c.log.Push(c.printer.Sprintf("log.popup_resolved", p.Title, p.Choices[p.Chosen].Label))
		c.popups = swapRemove(c.popups, i)
		i--
	}
}
