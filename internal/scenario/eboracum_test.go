package scenario

import (
	"testing"

	"github.com/vovakirdan/colonia/internal/registry"
)

func TestEboracumRegistered(t *testing.T) {
	for _, id := range []string{EboracumID, EboracumDebugID} {
		if !registry.Exists(id) {
			t.Errorf("scenario %q not registered", id)
		}
	}
}

func TestEboracumStartingState(t *testing.T) {
	c, err := registry.Create(EboracumID, registry.Settings{Seed: 1})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	s := c.Current()
	if s.Gold != 100 || s.Population != 300 || s.LandArea != 100 {
		t.Errorf("starting state = %+v", s)
	}
	if len(c.Projects()) != 13 {
		t.Errorf("%d projects, expected 13", len(c.Projects()))
	}
	if len(c.Laws()) != 1 {
		t.Errorf("%d laws, expected 1", len(c.Laws()))
	}
	if len(c.Effects()) != 3 {
		t.Errorf("%d standing effects, expected 3", len(c.Effects()))
	}
	for _, e := range c.Effects() {
		if !e.Hidden() {
			t.Errorf("standing effect %q should be hidden", e.Name)
		}
	}
}

func TestEboracumHardMode(t *testing.T) {
	c := Eboracum(registry.Settings{HardMode: true}, false)
	if c.Current().Gold != 50 {
		t.Errorf("hard mode gold = %v, expected 50", c.Current().Gold)
	}
}

func TestEboracumDebugAddsHerald(t *testing.T) {
	c, err := registry.Create(EboracumDebugID, registry.Settings{})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	c.Advance()
	if msg, ok := c.Log().NextUnread(); !ok || msg != "Message #1" {
		t.Errorf("NextUnread() = %q, %v", msg, ok)
	}
}
