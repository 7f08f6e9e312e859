package sim

import (
	"math"
	"math/rand"
)

// Maintenance charges the upkeep of every standing, maintained building.
type Maintenance struct{}

func (Maintenance) Tick(c *City, e *Effect, cur State, next *State) {
	for _, con := range c.constructions {
		if con.contributes(c.tick) {
			next.GoldUsage += con.Maintenance
		}
	}
}

// Farm grows one produce on Area units of land. Yield follows a seasonal
// cosine with per-farm phase P0 and baseline P1.
type Farm struct {
	Area    int
	Produce Product
	P0      float64
	P1      float64
}

// Seed draws the phase and baseline for a newly built farm.
func (f Farm) Seed(rng *rand.Rand) Behavior {
	f.P0 = rng.Float64()
	f.P1 = 0.25 + (rng.Float64()/20 - 0.10)
	return f
}

// Effectiveness returns the yield multiplier for a month.
func (f Farm) Effectiveness(month int) float64 {
	return math.Abs(math.Cos(f.P0+float64(month)+math.Pi/12)) + f.P1
}

func (f Farm) Tick(c *City, e *Effect, cur State, next *State) {
	next.FoodProduction += f.Effectiveness(c.date.Month) * c.prices[f.Produce] * float64(f.Area)
	next.LandAreaUsed += f.Area
}

// Grant adds fixed capacity and switches on city features while it runs.
// Most civic buildings are a Grant.
type Grant struct {
	Political  int
	Military   int
	Diplomatic int

	Laws      bool
	Diplomacy bool
	Aedile    bool
	Censor    bool
}

func (g Grant) Tick(c *City, e *Effect, cur State, next *State) {
	next.PoliticalCapacity += g.Political
	next.MilitaryCapacity += g.Military
	next.DiplomaticCapacity += g.Diplomatic
	next.LawsEnabled = next.LawsEnabled || g.Laws
	next.DiplomacyEnabled = next.DiplomacyEnabled || g.Diplomacy
	next.AedileEnabled = next.AedileEnabled || g.Aedile
	next.CensorEnabled = next.CensorEnabled || g.Censor
}

// Coinage lowers gold usage by a fixed amount per tick.
type Coinage struct {
	Amount float64
}

func (m Coinage) Tick(c *City, e *Effect, cur State, next *State) {
	next.GoldUsage -= m.Amount
}

// Consumption is the population eating: whole units of food per tick at
// Rate per inhabitant.
type Consumption struct {
	Rate float64
}

func (p Consumption) Tick(c *City, e *Effect, cur State, next *State) {
	if cur.Population <= 0 {
		return
	}
	next.FoodUsage += math.Trunc(float64(cur.Population) * p.Rate)
}

// LandTaxPrice is the gold raised per unit of used land at a 100% rate.
const LandTaxPrice = 0.05

// LandTax raises gold from farmed land at Rate.
type LandTax struct {
	Rate float64
}

func (t LandTax) Tick(c *City, e *Effect, cur State, next *State) {
	next.GoldUsage -= LandTaxPrice * float64(cur.LandAreaUsed) * t.Rate
}

// Housing adds residents every tick.
type Housing struct {
	Residents int
}

func (h Housing) Tick(c *City, e *Effect, cur State, next *State) {
	next.PopulationDelta += h.Residents
}

// Inert does nothing. Buildings whose benefits are not simulated yet use it.
type Inert struct{}

func (Inert) Tick(c *City, e *Effect, cur State, next *State) {}

// ImperialDemand occasionally asks the colony to pay for a war in the
// East, either in gold or in men.
type ImperialDemand struct {
	Chance float64
	Gold   float64
	Levy   int
}

func (d ImperialDemand) Tick(c *City, e *Effect, cur State, next *State) {
	if c.rng.Float64() >= d.Chance {
		return
	}
	p := c.printer
	c.AddPopup(NewPopup(
		p.Sprintf("popup.demand.title"),
		p.Sprintf("popup.demand.desc", c.name),
		[]Choice{
			{Label: p.Sprintf("popup.demand.gold"), Hover: p.Sprintf("popup.demand.gold_hover")},
			{Label: p.Sprintf("popup.demand.men"), Hover: p.Sprintf("popup.demand.men_hover")},
		},
		d.resolve,
	))
}

func (d ImperialDemand) resolve(p *Popup, c *City, cur State, next *State) {
	switch p.Chosen {
	case 0:
		next.GoldUsage += d.Gold
	case 1:
		next.Population -= d.Levy
	}
}

// Herald pushes a numbered message every tick. It exercises the event log.
type Herald struct {
	n int
}

func (h *Herald) Tick(c *City, e *Effect, cur State, next *State) {
	h.n++
	c.log.Push(c.printer.Sprintf("log.debug", h.n))
}
