package trips

import "errors"

var (
	ErrTripNotFound  = errors.New("shopping trip not found")
	ErrTripClosed    = errors.New("shopping trip is closed")
	ErrEmptyTrip     = errors.New("no items to checkout")
	ErrInvalidRange  = errors.New("invalid date range")
	ErrRangeRequired = errors.New("startDate and endDate are required")
)
