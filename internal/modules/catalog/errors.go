package catalog

import "errors"

var (
	ErrNotFound        = errors.New("room not found")
	ErrInvalidDate     = errors.New("invalid date")
	ErrDateUnavailable = errors.New("date already booked")
)
