package sim

import "math/rand"

// Forever marks an effect that never expires on its own.
const Forever = -1

// Behavior is what an effect does each tick. Implementations read cur and
// accumulate into next; cur is a copy, so it cannot be changed.
type Behavior interface {
	Tick(c *City, e *Effect, cur State, next *State)
}

// BehaviorFunc adapts a plain function to Behavior.
type BehaviorFunc func(c *City, e *Effect, cur State, next *State)

// Tick calls f.
func (f BehaviorFunc) Tick(c *City, e *Effect, cur State, next *State) {
	f(c, e, cur, next)
}

// Seeder is implemented by behaviors that draw per-instance parameters
// when a construction carrying them is built.
type Seeder interface {
	Seed(rng *rand.Rand) Behavior
}

// Effect is a timed behavior attached to a city.
//
// Duration counts remaining ticks: Forever never expires, 0 is inert and is
// dropped without running, and a positive value is decremented after each
// tick with the effect removed once it reaches zero. Effects with an empty
// Name are hidden from presentation but still run.
type Effect struct {
	ScheduledForRemoval bool
	Name                string
	Description         string
	Duration            int
	Behavior            Behavior
}

// Hidden reports whether presentation should skip the effect.
func (e *Effect) Hidden() bool {
	return e.Name == ""
}

// clone copies the effect, seeding its behavior when it asks for it.
func (e *Effect) clone(rng *rand.Rand) *Effect {
	cp := *e
	if s, ok := e.Behavior.(Seeder); ok {
		cp.Behavior = s.Seed(rng)
	}
	return &cp
}

// swapRemove drops s[i] by moving the last element into its slot.
// Order is not preserved.
func swapRemove[T any](s []T, i int) []T {
	last := len(s) - 1
	s[i] = s[last]
	var zero T
	s[last] = zero
	return s[:last]
}
