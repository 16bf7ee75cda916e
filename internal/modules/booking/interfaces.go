package booking

import (
	"context"

	"hotelnest/internal/domain"
)

// BookingRepository defines the persistence operations the lifecycle needs.
type BookingRepository interface {
	CreateWithReservation(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetActiveByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	Reschedule(ctx context.Context, bookingID, roomID int64, oldDate, newDate string) error
	Cancel(ctx context.Context, bookingID, roomID int64, date string) error
}

// RoomReader resolves rooms for pricing and display snapshots.
type RoomReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// LedgerNotifier receives ledger change events for live clients.
type LedgerNotifier interface {
	DateReserved(roomID int64, date string)
	DateReleased(roomID int64, date string)
}
