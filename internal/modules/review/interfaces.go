package review

import (
	"context"

	"hotelnest/internal/domain"
)

type ReviewStore interface {
	Create(ctx context.Context, rv *domain.Review) error
	Update(ctx context.Context, rv *domain.Review) error
	GetByRoomAndUser(ctx context.Context, roomID, userID int64) (*domain.Review, error)
	GetByRoom(ctx context.Context, roomID int64) ([]domain.Review, error)
}

// BookingGate checks that the reviewer actually stayed in the room.
type BookingGate interface {
	HasBookingForRoom(ctx context.Context, userID, roomID int64) (bool, error)
}

type RoomGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// UserReader resolves the reviewer's display name and avatar.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
