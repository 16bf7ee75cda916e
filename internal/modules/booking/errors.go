package booking

import "errors"

var (
	ErrInvalidDate      = errors.New("invalid booking date")
	ErrDateUnavailable  = errors.New("date is not available")
	ErrRoomNotFound     = errors.New("room not found")
	ErrNotFound         = errors.New("booking not found")
	ErrForbidden        = errors.New("forbidden")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
	ErrCancelWindow     = errors.New("cancellation window expired")
)
