package repository

import (
	"context"
	"time"

	"hotelnest/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	Reference   string     `gorm:"column:reference;uniqueIndex"`
	RoomID      int64      `gorm:"column:room_id;index"`
	RoomName    string     `gorm:"column:room_name"`
	RoomImage   string     `gorm:"column:room_image"`
	UserID      int64      `gorm:"column:user_id;index"`
	Date        string     `gorm:"column:date"`
	Guests      int        `gorm:"column:guests"`
	TotalPrice  float64    `gorm:"column:total_price"`
	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:          m.ID,
		Reference:   m.Reference,
		RoomID:      m.RoomID,
		RoomName:    m.RoomName,
		RoomImage:   m.RoomImage,
		UserID:      m.UserID,
		Date:        m.Date,
		Guests:      m.Guests,
		TotalPrice:  m.TotalPrice,
		Status:      domain.BookingStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		CancelledAt: m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:          b.ID,
		Reference:   b.Reference,
		RoomID:      b.RoomID,
		RoomName:    b.RoomName,
		RoomImage:   b.RoomImage,
		UserID:      b.UserID,
		Date:        b.Date,
		Guests:      b.Guests,
		TotalPrice:  b.TotalPrice,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		CancelledAt: b.CancelledAt,
	}
}

// CreateWithReservation reserves the date and persists the booking in one
// transaction. Losing the reservation race rolls everything back and
// returns ErrDateTaken, so a booking row never exists without its ledger hold.
func (r *BookingRepository) CreateWithReservation(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hold := bookedDateModel{RoomID: b.RoomID, Date: b.Date}
		if err := tx.Create(&hold).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDateTaken
			}
			return err
		}

		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		*b = *toDomainBooking(m)
		return nil
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// GetActiveByUser returns the user's non-cancelled bookings, newest first.
func (r *BookingRepository) GetActiveByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND status <> ?", userID, string(domain.BookingCancelled)).
		Order("created_at DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// Reschedule moves a booking to a new date. Release of the old hold,
// reserve of the new one and the booking row update run in a single
// transaction: if the new date is taken, the rollback restores the old
// hold and the caller observes no state change.
func (r *BookingRepository) Reschedule(ctx context.Context, bookingID, roomID int64, oldDate, newDate string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("room_id = ? AND date = ?", roomID, oldDate).
			Delete(&bookedDateModel{}).Error; err != nil {
			return err
		}

		hold := bookedDateModel{RoomID: roomID, Date: newDate}
		if err := tx.Create(&hold).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDateTaken
			}
			return err
		}

		return tx.Model(&bookingModel{}).
			Where("id = ?", bookingID).
			Updates(map[string]interface{}{
				"date":       newDate,
				"updated_at": time.Now(),
			}).Error
	})
}

// Cancel marks the booking cancelled and releases its ledger hold atomically.
func (r *BookingRepository) Cancel(ctx context.Context, bookingID, roomID int64, date string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&bookingModel{}).
			Where("id = ?", bookingID).
			Updates(map[string]interface{}{
				"status":       string(domain.BookingCancelled),
				"cancelled_at": &now,
				"updated_at":   now,
			}).Error; err != nil {
			return err
		}

		return tx.
			Where("room_id = ? AND date = ?", roomID, date).
			Delete(&bookedDateModel{}).Error
	})
}

// HasBookingForRoom reports whether the user holds a non-cancelled booking
// for the room. Gates review eligibility.
func (r *BookingRepository) HasBookingForRoom(ctx context.Context, userID, roomID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("user_id = ? AND room_id = ? AND status <> ?", userID, roomID, string(domain.BookingCancelled)).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}
