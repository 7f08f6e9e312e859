package sim

import "errors"

var (
	// ErrChoiceOutOfRange is returned for a choice the popup does not offer.
	ErrChoiceOutOfRange = errors.New("sim: popup choice out of range")

	// ErrPopupAnswered is returned when a popup already has a choice.
	ErrPopupAnswered = errors.New("sim: popup already answered")
)

// Choice is one answer to a popup.
type Choice struct {
	Label string
	Hover string
}

// ResolveFunc applies the consequence of an answered popup.
type ResolveFunc func(p *Popup, c *City, cur State, next *State)

// Popup is a decision put to the player. Its Resolve callback runs exactly
// once, on the first tick after a choice is made, and the popup is then
// dropped.
type Popup struct {
	Title       string
	Description string
	Choices     []Choice
	Chosen      int
	Resolve     ResolveFunc

	resolved bool
}

// NewPopup returns an unanswered popup.
func NewPopup(title, description string, choices []Choice, resolve ResolveFunc) *Popup {
	return &Popup{
		Title:       title,
		Description: description,
		Choices:     choices,
		Chosen:      -1,
		Resolve:     resolve,
	}
}

// Pending reports whether the popup still awaits an answer.
func (p *Popup) Pending() bool {
	return p.Chosen < 0 && !p.resolved
}

// Choose records the player's answer.
func (p *Popup) Choose(i int) error {
	if p.Chosen >= 0 || p.resolved {
		return ErrPopupAnswered
	}
	if i < 0 || i >= len(p.Choices) {
		return ErrChoiceOutOfRange
	}
	p.Chosen = i
	return nil
}
