package domain

import (
	"errors"
	"strings"
)

// Step is a booking wizard state. The wizard has exactly three states and the
// transitions below; controllers drive it, they never invent their own flow.
type Step string

const (
	// StepIdentify asks for the client id, with an inline registration form
	// when the lookup finds nothing.
	StepIdentify Step = "identify"
	// StepChooseSlot collects restaurant, party size, date and time.
	StepChooseSlot Step = "choose-slot"
	// StepSubmitted is the confirmation view after a successful creation.
	StepSubmitted Step = "submitted"
)

var (
	ErrNoClient     = errors.New("no authenticated client")
	ErrNoRestaurant = errors.New("no restaurant selected")
	ErrNoPartySize  = errors.New("party size must be positive")
	ErrNoSlot       = errors.New("date and time required")
)

// StepFor derives the wizard entry state from whether a client identity is
// present in the session.
func StepFor(hasClient bool) Step {
	if hasClient {
		return StepChooseSlot
	}
	return StepIdentify
}

// Draft is the reservation being assembled by the wizard's second step.
type Draft struct {
	ClientID     string
	RestaurantID string
	PartySize    int
	Date         string
	Time         string
}

// Validate checks the draft before any network call. A missing client id is
// the forced-back-to-identify case and is reported first.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.ClientID) == "" {
		return ErrNoClient
	}
	if strings.TrimSpace(d.RestaurantID) == "" {
		return ErrNoRestaurant
	}
	if d.PartySize <= 0 {
		return ErrNoPartySize
	}
	if strings.TrimSpace(d.Date) == "" || strings.TrimSpace(d.Time) == "" {
		return ErrNoSlot
	}
	return nil
}
