package review

import "errors"

var (
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrEmptyComment  = errors.New("comment must not be empty")
	ErrRoomNotFound  = errors.New("room not found")
	ErrNotEligible   = errors.New("no stay on record for this room")
	ErrConflict      = errors.New("concurrent review submission")
)
