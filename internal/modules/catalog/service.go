package catalog

import (
	"context"
	"errors"
	"math"
	"time"

	"hotelnest/internal/domain"
	"hotelnest/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	rooms   RoomStore
	ledger  Ledger
	reviews ReviewSource
	notifs  LedgerNotifier
}

func NewService(rooms RoomStore, ledger Ledger, reviews ReviewSource, notifs LedgerNotifier) *Service {
	return &Service{
		rooms:   rooms,
		ledger:  ledger,
		reviews: reviews,
		notifs:  notifs,
	}
}

func (s *Service) ListRooms(ctx context.Context, minPrice, maxPrice *float64) ([]domain.Room, error) {
	return s.rooms.GetAll(ctx, repository.RoomFilters{
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	})
}

// GetRoom returns the room with its booked dates and reviews attached.
func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	dates, err := s.ledger.BookedDates(ctx, id)
	if err != nil {
		return nil, err
	}
	room.BookedDates = dates

	reviews, err := s.reviews.GetByRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	room.Reviews = reviews

	return room, nil
}

// CheckDate probes the ledger for a single date, for the date picker.
func (s *Service) CheckDate(ctx context.Context, roomID int64, date string) (*AvailabilityResponse, error) {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}

	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	available, err := s.ledger.IsDateAvailable(ctx, roomID, date)
	if err != nil {
		return nil, err
	}

	return &AvailabilityResponse{
		RoomID:    roomID,
		Date:      date,
		Available: available,
	}, nil
}

// ReserveDate puts a hold on the date without creating a booking.
func (s *Service) ReserveDate(ctx context.Context, roomID int64, date string) error {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return ErrInvalidDate
	}

	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.ledger.ReserveDate(ctx, roomID, date); err != nil {
		if errors.Is(err, repository.ErrDateTaken) {
			return ErrDateUnavailable
		}
		return err
	}

	if s.notifs != nil {
		s.notifs.DateReserved(roomID, date)
	}
	return nil
}

// ReleaseDate drops a hold. Releasing an absent date succeeds.
func (s *Service) ReleaseDate(ctx context.Context, roomID int64, date string) error {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return ErrInvalidDate
	}

	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.ledger.ReleaseDate(ctx, roomID, date); err != nil {
		return err
	}

	if s.notifs != nil {
		s.notifs.DateReleased(roomID, date)
	}
	return nil
}

// AverageRating rounds to one decimal place, matching the catalog display.
func AverageRating(reviews []domain.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	var sum int
	for _, rv := range reviews {
		sum += rv.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10
}
