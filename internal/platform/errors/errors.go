package apperrors

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")

	// Edit-flow validation failures. They block a save but never mutate
	// stored state.
	ErrNotEditableToday = errors.New("only sessions started today can be edited")
	ErrEndBeforeStart   = errors.New("end time must be after start time")
	ErrDurationTooShort = errors.New("duration must be at least 15 minutes")

	ErrNoActiveTimer = errors.New("no active timer")

	ErrNotEnoughPoints = errors.New("not enough points to redeem this item")
)
