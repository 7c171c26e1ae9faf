package model

import "errors"

var (
	// ErrInvalidInput is returned when construction parameters or a proposed
	// action fail validation (negative capacity, recovery, period, injection...).
	ErrInvalidInput = errors.New("invalid input")

	// ErrInfeasibleAction is returned when a chosen action violates the
	// agent's resource holdings or an environment constraint. Depletion is
	// never reported through this error: running out of resources is a
	// terminal state, not a fault.
	ErrInfeasibleAction = errors.New("infeasible action")
)
