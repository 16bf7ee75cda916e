package booking

import (
	"context"
	"errors"
	"time"

	"hotelnest/internal/domain"
	"hotelnest/internal/pkg/pricing"
	"hotelnest/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	bookings BookingRepository
	rooms    RoomReader
	notifs   LedgerNotifier
}

func NewService(bookings BookingRepository, rooms RoomReader, notifs LedgerNotifier) *Service {
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		notifs:   notifs,
	}
}

// Create validates the request, reserves the date and persists the booking.
// The reservation and the booking row commit atomically; losing the date
// race surfaces ErrDateUnavailable with no state change.
func (s *Service) Create(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if date.Before(today()) {
		return nil, ErrInvalidDate
	}

	if req.Guests < pricing.MinGuests || req.Guests > pricing.MaxGuests {
		return nil, pricing.ErrGuestCount
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	total, err := pricing.Total(room.Price, room.DiscountPrice, req.Guests)
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		Reference:  uuid.NewString(),
		RoomID:     room.ID,
		RoomName:   room.Name,
		RoomImage:  room.ImageURL,
		UserID:     userID,
		Date:       req.Date,
		Guests:     req.Guests,
		TotalPrice: total,
		Status:     domain.BookingConfirmed,
	}

	if err := s.bookings.CreateWithReservation(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDateTaken) {
			return nil, ErrDateUnavailable
		}
		return nil, err
	}

	if s.notifs != nil {
		s.notifs.DateReserved(b.RoomID, b.Date)
	}

	return b, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.GetActiveByUser(ctx, userID)
}

func (s *Service) GetByID(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	return b, nil
}

// Reschedule moves an active booking to a new date. Release of the old
// hold and reserve of the new one run as one transaction in the
// repository; a conflict on the new date leaves the original hold intact.
func (s *Service) Reschedule(ctx context.Context, bookingID, userID int64, newDate string) (*domain.Booking, error) {
	b, err := s.GetByID(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	if b.Status == domain.BookingCancelled {
		return nil, ErrAlreadyCancelled
	}

	date, err := parseDate(newDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if date.Before(today()) {
		return nil, ErrInvalidDate
	}

	if newDate == b.Date {
		return b, nil
	}

	oldDate := b.Date
	if err := s.bookings.Reschedule(ctx, b.ID, b.RoomID, oldDate, newDate); err != nil {
		if errors.Is(err, repository.ErrDateTaken) {
			return nil, ErrDateUnavailable
		}
		return nil, err
	}

	if s.notifs != nil {
		s.notifs.DateReleased(b.RoomID, oldDate)
		s.notifs.DateReserved(b.RoomID, newDate)
	}

	return s.bookings.GetByID(ctx, b.ID)
}

// Cancel releases the booking's date and marks it cancelled. Allowed only
// while the booking date is at least one full day away.
func (s *Service) Cancel(ctx context.Context, bookingID, userID int64) error {
	b, err := s.GetByID(ctx, bookingID, userID)
	if err != nil {
		return err
	}
	if b.Status == domain.BookingCancelled {
		return ErrAlreadyCancelled
	}

	date, err := parseDate(b.Date)
	if err != nil {
		return ErrInvalidDate
	}
	if daysUntil(date) < 1 {
		return ErrCancelWindow
	}

	if err := s.bookings.Cancel(ctx, b.ID, b.RoomID, b.Date); err != nil {
		return err
	}

	if s.notifs != nil {
		s.notifs.DateReleased(b.RoomID, b.Date)
	}

	return nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateLayout, s)
}

// today returns midnight UTC of the current day; booking dates are
// day-granular and compared in UTC throughout.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func daysUntil(date time.Time) int {
	return int(date.Sub(today()).Hours() / 24)
}
