package sim

import "errors"

var (
	// ErrInvalidConfig wraps every SimulatorConfig validation failure and
	// every rejected existing card.
	ErrInvalidConfig = errors.New("sim: invalid simulator config")
	// ErrInvalidRetention is returned for a desired retention outside (0, 1).
	ErrInvalidRetention = errors.New("sim: desired retention must be in (0, 1)")
	// ErrTooManyCards is returned when more existing cards are supplied than the deck holds.
	ErrTooManyCards = errors.New("sim: existing cards exceed deck size")
)
