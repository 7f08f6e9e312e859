package sim

import "fmt"

// Capacity identifies one of the three power pools laws draw on.
type Capacity int

const (
	Political Capacity = iota
	Military
	Diplomatic
)

// String returns the capacity name.
func (c Capacity) String() string {
	switch c {
	case Political:
		return "political"
	case Military:
		return "military"
	case Diplomatic:
		return "diplomatic"
	default:
		return fmt.Sprintf("capacity(%d)", int(c))
	}
}

// Key returns the display-string key for the capacity.
func (c Capacity) Key() string {
	return "capacity." + c.String()
}

// Product is a farm produce type.
type Product int

const (
	Grapes Product = iota
	Wheat
	Olives
	NumProducts
)

// String returns the produce name.
func (p Product) String() string {
	switch p {
	case Grapes:
		return "grapes"
	case Wheat:
		return "wheat"
	case Olives:
		return "olives"
	default:
		return fmt.Sprintf("product(%d)", int(p))
	}
}

// Prices holds the base price of each produce.
type Prices [NumProducts]float64

// Average returns the mean price over all produce.
func (p Prices) Average() float64 {
	var sum float64
	for _, v := range p {
		sum += v
	}
	return sum / float64(NumProducts)
}

// State is the per-tick scalar snapshot of a city. Everything except
// LandArea, Population and Gold is an accumulator rebuilt from zero on
// every tick. After a tick FoodProduction holds the net food balance.
type State struct {
	LandArea     int
	LandAreaUsed int

	FoodProduction float64
	FoodUsage      float64

	Gold      float64
	GoldUsage float64

	PoliticalCapacity  int
	PoliticalUsage     int
	MilitaryCapacity   int
	MilitaryUsage      int
	DiplomaticCapacity int
	DiplomaticUsage    int

	Population      int
	PopulationDelta int

	LawsEnabled      bool
	DiplomacyEnabled bool
	AedileEnabled    bool
	CensorEnabled    bool
}

// CapacityOf returns the pool size for a capacity.
func (s State) CapacityOf(c Capacity) int {
	switch c {
	case Political:
		return s.PoliticalCapacity
	case Military:
		return s.MilitaryCapacity
	case Diplomatic:
		return s.DiplomaticCapacity
	}
	return 0
}

// UsageOf returns how much of a capacity is spent this tick.
func (s State) UsageOf(c Capacity) int {
	switch c {
	case Political:
		return s.PoliticalUsage
	case Military:
		return s.MilitaryUsage
	case Diplomatic:
		return s.DiplomaticUsage
	}
	return 0
}

// AddUsage charges n points to a capacity pool.
func (s *State) AddUsage(c Capacity, n int) {
	switch c {
	case Political:
		s.PoliticalUsage += n
	case Military:
		s.MilitaryUsage += n
	case Diplomatic:
		s.DiplomaticUsage += n
	default:
		panic(fmt.Sprintf("sim: unknown capacity %d", int(c)))
	}
}

// Outcome classifies how the colony is faring.
type Outcome int

const (
	Republic Outcome = iota
	Bankrupt
	Irrelevance
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Republic:
		return "republic"
	case Bankrupt:
		return "bankrupt"
	case Irrelevance:
		return "irrelevance"
	default:
		return "unknown"
	}
}

// Key returns the display-string key for the outcome.
func (o Outcome) Key() string {
	return "outcome." + o.String()
}

// Outcome reports Bankrupt once the treasury is empty and Irrelevance once
// nobody lives in the colony.
func (s State) Outcome() Outcome {
	switch {
	case s.Gold <= 0:
		return Bankrupt
	case s.Population <= 0:
		return Irrelevance
	default:
		return Republic
	}
}
