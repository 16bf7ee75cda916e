package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDateTaken is returned when a reservation loses the race for a
// (room, date) slot. The unique index on room_booked_dates is the arbiter:
// of two concurrent reserves exactly one insert commits, the other
// surfaces this error instead of silently overwriting.
var ErrDateTaken = errors.New("date already booked")

// LedgerRepository is the authoritative record of reserved dates per room.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

type bookedDateModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	RoomID    int64     `gorm:"column:room_id;uniqueIndex:idx_room_date"`
	Date      string    `gorm:"column:date;uniqueIndex:idx_room_date"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (bookedDateModel) TableName() string { return "room_booked_dates" }

func (r *LedgerRepository) IsDateAvailable(ctx context.Context, roomID int64, date string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&bookedDateModel{}).
		Where("room_id = ? AND date = ?", roomID, date).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt == 0, nil
}

// ReserveDate inserts the date into the room's ledger. The conditional
// write ("insert only if absent") makes concurrent reserves safe without
// any read-check-write window.
func (r *LedgerRepository) ReserveDate(ctx context.Context, roomID int64, date string) error {
	m := bookedDateModel{RoomID: roomID, Date: date}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		if isUniqueViolation(tx.Error) {
			return ErrDateTaken
		}
		return tx.Error
	}
	return nil
}

// ReleaseDate removes the date from the room's ledger. Releasing an
// absent date is a no-op, not an error.
func (r *LedgerRepository) ReleaseDate(ctx context.Context, roomID int64, date string) error {
	return r.db.WithContext(ctx).
		Where("room_id = ? AND date = ?", roomID, date).
		Delete(&bookedDateModel{}).Error
}

func (r *LedgerRepository) BookedDates(ctx context.Context, roomID int64) ([]string, error) {
	var dates []string
	tx := r.db.WithContext(ctx).
		Model(&bookedDateModel{}).
		Where("room_id = ?", roomID).
		Order("date ASC").
		Pluck("date", &dates)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return dates, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// SQLite surfaces constraint failures without a typed error.
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") ||
		strings.Contains(s, "SQLSTATE 23505") ||
		strings.Contains(s, "duplicate key value violates unique constraint")
}
