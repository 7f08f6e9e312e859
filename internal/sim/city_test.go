package sim

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/colonia/internal/calendar"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func newTestCity(s State) *City {
	return New(Options{
		Name:   "Testium",
		Seed:   42,
		Prices: Prices{0.35, 0.45, 0.40},
		State:  s,
	})
}

func countingEffect(n *int, duration int) *Effect {
	return &Effect{
		Duration: duration,
		Behavior: BehaviorFunc(func(c *City, e *Effect, cur State, next *State) {
			*n++
		}),
	}
}

func TestEmptyTick(t *testing.T) {
	c := newTestCity(State{Gold: 100, Population: 300, LandArea: 100})
	c.Advance()

	got := c.Current()
	expected := State{Gold: 100, Population: 300, LandArea: 100}
	if got != expected {
		t.Errorf("Current() after empty tick = %+v, expected %+v", got, expected)
	}
	if c.Tick() != 1 {
		t.Errorf("Tick() = %d, expected 1", c.Tick())
	}
	if c.Date() != (calendar.Date{Day: 1}) {
		t.Errorf("Date() = %+v, expected day 1", c.Date())
	}
}

func TestLastDay(t *testing.T) {
	c := New(Options{Start: calendar.Date{Day: 30, Month: 11}, State: State{Gold: 10}})
	if _, ok := c.LastDay(); ok {
		t.Error("LastDay() reported a day before the first tick")
	}

	c.Advance()
	last, ok := c.LastDay()
	if !ok || last != (calendar.Date{Day: 30, Month: 11}) {
		t.Errorf("LastDay() = %+v, %v", last, ok)
	}
	if c.Date() != (calendar.Date{Year: 1}) {
		t.Errorf("Date() = %+v, expected the first day of year 1", c.Date())
	}
}

func TestAccumulatorsRebuiltEachTick(t *testing.T) {
	c := newTestCity(State{Gold: 100})
	c.AddEffect(&Effect{Duration: Forever, Behavior: Grant{Political: 2, Laws: true}})

	c.Advance()
	c.Advance()

	got := c.Current()
	if got.PoliticalCapacity != 2 {
		t.Errorf("PoliticalCapacity = %d, expected 2", got.PoliticalCapacity)
	}
	if !got.LawsEnabled {
		t.Error("LawsEnabled should be set while the grant runs")
	}
	if got.MilitaryCapacity != 0 || got.DiplomaticCapacity != 0 || got.GoldUsage != 0 {
		t.Errorf("untouched accumulators changed: %+v", got)
	}
}

func TestLandTaxScenario(t *testing.T) {
	c := newTestCity(State{Gold: 100, LandAreaUsed: 10})
	c.AddEffect(&Effect{Duration: Forever, Behavior: LandTax{Rate: 0.2}})

	c.Advance()

	got := c.Current()
	if !approx(got.GoldUsage, -0.1) {
		t.Errorf("GoldUsage = %v, expected -0.1", got.GoldUsage)
	}
	if !approx(got.Gold, 100.1) {
		t.Errorf("Gold = %v, expected 100.1", got.Gold)
	}
}

func TestSettlementOverwritesTradeIncome(t *testing.T) {
	c := newTestCity(State{Gold: 100, FoodProduction: 10})
	c.Advance()
	if got := c.Current().Gold; got != 100 {
		t.Errorf("Gold = %v, expected trade income to be discarded", got)
	}
}

func TestEffectDuration(t *testing.T) {
	c := newTestCity(State{Gold: 100})
	var n int
	c.AddEffect(countingEffect(&n, 3))

	for i := 0; i < 5; i++ {
		c.Advance()
	}

	if n != 3 {
		t.Errorf("effect ran %d times, expected 3", n)
	}
	if len(c.Effects()) != 0 {
		t.Errorf("expired effect still registered")
	}
}

func TestScheduledForRemovalDoesNotRun(t *testing.T) {
	c := newTestCity(State{})
	var n int
	e := c.AddEffect(countingEffect(&n, Forever))
	e.ScheduledForRemoval = true

	c.Advance()

	if n != 0 {
		t.Errorf("flagged effect ran %d times", n)
	}
	if len(c.Effects()) != 0 {
		t.Error("flagged effect not removed")
	}
}

func TestInertEffectDropped(t *testing.T) {
	c := newTestCity(State{})
	var n int
	c.AddEffect(countingEffect(&n, 0))
	c.Advance()
	if n != 0 || len(c.Effects()) != 0 {
		t.Errorf("inert effect ran %d times, %d effects left", n, len(c.Effects()))
	}
}

func TestSwapRemoveVisitsEveryEffect(t *testing.T) {
	c := newTestCity(State{})
	var a, b, d int
	c.AddEffect(countingEffect(&a, 1))
	c.AddEffect(countingEffect(&b, Forever))
	c.AddEffect(countingEffect(&d, 1))

	c.Advance()
	if a != 1 || b != 1 || d != 1 {
		t.Fatalf("first tick counts = %d %d %d, expected 1 1 1", a, b, d)
	}
	if len(c.Effects()) != 1 {
		t.Fatalf("%d effects left, expected 1", len(c.Effects()))
	}

	c.Advance()
	if a != 1 || b != 2 || d != 1 {
		t.Errorf("second tick counts = %d %d %d, expected 1 2 1", a, b, d)
	}
}

func TestSwapRemoveClearsTail(t *testing.T) {
	x, y, z := 1, 2, 3
	s := []*int{&x, &y, &z}
	backing := s
	s = swapRemove(s, 0)
	if len(s) != 2 || *s[0] != 3 || *s[1] != 2 {
		t.Errorf("swapRemove() = %v", s)
	}
	if backing[2] != nil {
		t.Error("swapRemove() left a stale pointer in the tail")
	}
}

func testProject(cost float64, days int, b Behavior) *Construction {
	return &Construction{
		Name:      "Aqueduct",
		Cost:      cost,
		BuildTime: days,
		Variants:  []*Effect{{Name: "Aqueduct", Duration: Forever, Behavior: b}},
	}
}

func TestConstructionFinishesAfterBuildTime(t *testing.T) {
	c := newTestCity(State{Gold: 100})
	con, err := c.Build(testProject(18, 3, Grant{Diplomatic: 1}), 0)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if con.Status() != InProgress {
		t.Fatalf("Status() = %v, expected in progress", con.Status())
	}

	c.Advance()
	c.Advance()
	if con.Finished {
		t.Fatal("construction finished early")
	}

	c.Advance()
	if !con.Finished || !con.Maintained || con.InProgress {
		t.Fatalf("construction not finished after 3 ticks: %+v", con.Status())
	}
	if !approx(c.Current().Gold, 82) {
		t.Errorf("Gold = %v, expected 82", c.Current().Gold)
	}
	if c.Current().DiplomaticCapacity != 0 {
		t.Error("building contributed on the tick it finished")
	}

	c.Advance()
	if c.Current().DiplomaticCapacity != 1 {
		t.Errorf("DiplomaticCapacity = %d, expected 1", c.Current().DiplomaticCapacity)
	}
	if !approx(c.Current().Gold, 82) {
		t.Errorf("Gold = %v, finished building should cost nothing without upkeep", c.Current().Gold)
	}
	if len(c.Effects()) != 0 {
		t.Error("build progress effect not removed after completion")
	}
}

func TestPausedConstruction(t *testing.T) {
	c := newTestCity(State{Gold: 100})
	con, err := c.Build(testProject(25, 180, Grant{Diplomatic: 1}), 0)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if err := con.TogglePause(); err != nil {
		t.Fatalf("TogglePause() failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		c.Advance()
	}
	if con.Status() != Paused {
		t.Errorf("Status() = %v, expected paused", con.Status())
	}
	if c.Current().Gold != 100 {
		t.Errorf("Gold = %v, paused site should cost nothing", c.Current().Gold)
	}
	if con.DaysLeft() != 180 {
		t.Errorf("DaysLeft() = %d, expected 180", con.DaysLeft())
	}

	if err := con.TogglePause(); err != nil {
		t.Fatalf("TogglePause() failed: %v", err)
	}
	ticks := 10
	for !con.Finished && ticks < 400 {
		c.Advance()
		ticks++
	}

	if ticks != 190 {
		t.Errorf("construction took %d ticks, expected 190", ticks)
	}
	if !approx(c.Current().Gold, 75) {
		t.Errorf("Gold = %v, expected 75", c.Current().Gold)
	}
}

func TestConstructionCertainSetback(t *testing.T) {
	c := newTestCity(State{Gold: 1000})
	project := testProject(18, 3, Grant{Diplomatic: 1})
	project.DelayRisk = 1
	con, err := c.Build(project, 0)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	for i := 0; i < 50; i++ {
		c.Advance()
	}
	if con.Finished || con.Status() != InProgress {
		t.Fatalf("Status() = %v, a site with certain setbacks never finishes", con.Status())
	}
	if con.DaysLeft() != 3 {
		t.Errorf("DaysLeft() = %d, setbacks should hold the remaining days at 3", con.DaysLeft())
	}
	if !approx(c.Current().Gold, 700) {
		t.Errorf("Gold = %v, expected 700 after 50 charged days", c.Current().Gold)
	}
}

func TestConstructionSetbacksExtendBuild(t *testing.T) {
	const (
		days = 20
		risk = 0.5
	)
	c := newTestCity(State{Gold: 10000})
	project := testProject(200, days, Grant{Diplomatic: 1})
	project.DelayRisk = risk
	con, err := c.Build(project, 0)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	ticks, setbacks := 0, 0
	for !con.Finished && ticks < 1000 {
		left := con.DaysLeft()
		c.Advance()
		ticks++
		if !con.Finished && con.DaysLeft() == left {
			setbacks++
		}
	}
	if !con.Finished {
		t.Fatal("construction never finished")
	}
	if setbacks == 0 {
		t.Fatal("expected at least one setback")
	}
	if ticks != days+setbacks {
		t.Errorf("took %d ticks with %d setbacks, expected %d", ticks, setbacks, days+setbacks)
	}

	// The site draws once per working day from the city's source.
	mirror := rand.New(rand.NewSource(42))
	want := 0
	for i := 0; i < ticks; i++ {
		if mirror.Float64() < risk {
			want++
		}
	}
	if setbacks != want {
		t.Errorf("setbacks = %d, seeded source gives %d", setbacks, want)
	}

	if !approx(c.Current().Gold, 10000-10*float64(ticks)) {
		t.Errorf("Gold = %v, every working day should be charged", c.Current().Gold)
	}
}

func TestBuildErrors(t *testing.T) {
	c := newTestCity(State{})
	if _, err := c.Build(testProject(1, 1, Inert{}), 3); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("Build() with bad variant err = %v", err)
	}
	if _, err := c.Build(testProject(1, 0, Inert{}), 0); !errors.Is(err, ErrNoBuildTime) {
		t.Errorf("Build() with zero build time err = %v", err)
	}
}

func TestCancelConstruction(t *testing.T) {
	c := newTestCity(State{Gold: 100})
	con, _ := c.Build(testProject(10, 10, Inert{}), 0)
	c.Advance()

	if err := c.CancelConstruction(con); err != nil {
		t.Fatalf("CancelConstruction() failed: %v", err)
	}
	c.Advance()

	if len(c.Constructions()) != 0 {
		t.Error("cancelled construction still listed")
	}
	if len(c.Effects()) != 0 {
		t.Error("cancelled build progress still registered")
	}
	if !approx(c.Current().Gold, 99) {
		t.Errorf("Gold = %v, expected only the first day charged", c.Current().Gold)
	}
	if err := c.CancelConstruction(con); !errors.Is(err, ErrNotUnderConstruction) {
		t.Errorf("second CancelConstruction() err = %v", err)
	}
}

func TestMaintenance(t *testing.T) {
	c := newTestCity(State{Gold: 100})
	c.AddEffect(NewMaintenance())
	p := testProject(0, 1, Inert{})
	p.Maintenance = 0.5
	con, _ := c.Build(p, 0)

	c.Advance()
	if c.Current().GoldUsage != 0 {
		t.Errorf("GoldUsage = %v on completion tick, expected 0", c.Current().GoldUsage)
	}
	c.Advance()
	if !approx(c.Current().GoldUsage, 0.5) {
		t.Errorf("GoldUsage = %v, expected 0.5", c.Current().GoldUsage)
	}

	if err := con.ToggleMaintained(); err != nil {
		t.Fatalf("ToggleMaintained() failed: %v", err)
	}
	c.Advance()
	if c.Current().GoldUsage != 0 {
		t.Errorf("GoldUsage = %v for unmaintained building", c.Current().GoldUsage)
	}
	if con.Status() != Unmaintained {
		t.Errorf("Status() = %v, expected unmaintained", con.Status())
	}
}

func TestFarmProducesFood(t *testing.T) {
	c := newTestCity(State{Gold: 100, Population: 300, LandArea: 100})
	farm := DefaultProjects()[3]
	farm.BuildTime = 1
	if _, err := c.Build(farm, int(Wheat)); err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	c.Advance()
	c.Advance()

	got := c.Current()
	if got.FoodProduction <= 0 {
		t.Errorf("FoodProduction = %v, expected a harvest", got.FoodProduction)
	}
	if got.LandAreaUsed != 1 {
		t.Errorf("LandAreaUsed = %d, expected 1", got.LandAreaUsed)
	}
	if got.Population <= 300 {
		t.Errorf("Population = %d, surplus food should grow it", got.Population)
	}
}

func TestFarmSeedDrawsParameters(t *testing.T) {
	c := newTestCity(State{})
	farm := DefaultProjects()[3]
	con, _ := c.Build(farm, 0)
	f, ok := con.Active.Behavior.(Farm)
	if !ok {
		t.Fatalf("active behavior is %T, expected Farm", con.Active.Behavior)
	}
	if f.P1 < 0.15-eps || f.P1 > 0.20+eps {
		t.Errorf("P1 = %v, expected within [0.15, 0.20]", f.P1)
	}
	if farm.Variants[0].Behavior.(Farm).P1 != 0 {
		t.Error("seeding modified the catalog template")
	}
}

func TestConsumptionTruncates(t *testing.T) {
	c := newTestCity(State{Gold: 100, Population: 499})
	c.AddEffect(NewConsumption())
	c.Advance()
	if c.Current().FoodUsage != 0 {
		t.Errorf("FoodUsage = %v for 499 people, expected 0", c.Current().FoodUsage)
	}

	c = newTestCity(State{Gold: 100, Population: 1000})
	c.AddEffect(NewConsumption())
	c.Advance()
	got := c.Current()
	if got.FoodUsage != 2 {
		t.Errorf("FoodUsage = %v for 1000 people, expected 2", got.FoodUsage)
	}
	if got.PopulationDelta != -20 || got.Population != 980 {
		t.Errorf("hunger: delta %d population %d, expected -20 and 980", got.PopulationDelta, got.Population)
	}
}

func TestHousing(t *testing.T) {
	c := newTestCity(State{Population: 10})
	c.AddEffect(&Effect{Duration: Forever, Behavior: Housing{Residents: 1}})
	c.Advance()
	if c.Current().Population != 11 {
		t.Errorf("Population = %d, expected 11", c.Current().Population)
	}
}

func TestCoinage(t *testing.T) {
	c := newTestCity(State{Gold: 10})
	c.AddEffect(&Effect{Duration: Forever, Behavior: Coinage{Amount: 0.5}})
	c.Advance()
	if !approx(c.Current().Gold, 10.5) {
		t.Errorf("Gold = %v, expected 10.5", c.Current().Gold)
	}
}

func TestSpeedAndPacing(t *testing.T) {
	c := newTestCity(State{})
	c.SetSpeed(42)
	if c.Speed() != MaxSpeed {
		t.Errorf("Speed() = %d, expected clamp to %d", c.Speed(), MaxSpeed)
	}
	c.SetSpeed(-1)
	if c.Speed() != 0 {
		t.Errorf("Speed() = %d, expected clamp to 0", c.Speed())
	}
	if c.Due(time.Hour) {
		t.Error("paused city should never be due")
	}

	c.TogglePause()
	if c.Speed() != DefaultSpeed {
		t.Errorf("Speed() after resume = %d, expected %d", c.Speed(), DefaultSpeed)
	}
	if !c.Due(200*time.Millisecond) || c.Due(199*time.Millisecond) {
		t.Error("Due() boundary wrong at speed 5")
	}
	c.TogglePause()
	if c.Speed() != 0 {
		t.Errorf("Speed() after pause = %d, expected 0", c.Speed())
	}

	if TickInterval(0) != 0 || TickInterval(1) != time.Second || TickInterval(4) != 250*time.Millisecond {
		t.Error("TickInterval() mapping wrong")
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		expected Outcome
	}{
		{"healthy", State{Gold: 1, Population: 1}, Republic},
		{"no gold", State{Gold: 0, Population: 100}, Bankrupt},
		{"debt", State{Gold: -5, Population: 100}, Bankrupt},
		{"empty", State{Gold: 100, Population: 0}, Irrelevance},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.state.Outcome(); got != tc.expected {
				t.Errorf("Outcome() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestHeraldWritesLog(t *testing.T) {
	c := newTestCity(State{})
	c.AddEffect(NewHerald())
	c.Advance()
	c.Advance()
	all := c.Log().All()
	if len(all) != 2 || all[1] != "Message #2" {
		t.Errorf("log = %v, expected two numbered messages", all)
	}
}
