package catalog

import (
	"context"

	"hotelnest/internal/domain"
	"hotelnest/internal/repository"
)

type RoomStore interface {
	GetAll(ctx context.Context, f repository.RoomFilters) ([]domain.Room, error)
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// Ledger is the authoritative per-room record of reserved dates.
type Ledger interface {
	IsDateAvailable(ctx context.Context, roomID int64, date string) (bool, error)
	ReserveDate(ctx context.Context, roomID int64, date string) error
	ReleaseDate(ctx context.Context, roomID int64, date string) error
	BookedDates(ctx context.Context, roomID int64) ([]string, error)
}

type ReviewSource interface {
	GetByRoom(ctx context.Context, roomID int64) ([]domain.Review, error)
}

type LedgerNotifier interface {
	DateReserved(roomID int64, date string)
	DateReleased(roomID int64, date string)
}
