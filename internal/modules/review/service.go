package review

import (
	"context"
	"errors"
	"strings"

	"hotelnest/internal/domain"
	"hotelnest/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	reviews  ReviewStore
	bookings BookingGate
	rooms    RoomGate
	users    UserReader
}

func NewService(reviews ReviewStore, bookings BookingGate, rooms RoomGate, users UserReader) *Service {
	return &Service{
		reviews:  reviews,
		bookings: bookings,
		rooms:    rooms,
		users:    users,
	}
}

// Submit creates or replaces the caller's review for the room. One review
// per (room, user): a resubmission updates the existing row in place.
// Only guests with a booking on record for the room may review it.
func (s *Service) Submit(ctx context.Context, userID, roomID int64, req SubmitReviewRequest) ([]domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}
	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		return nil, ErrEmptyComment
	}

	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	eligible, err := s.bookings.HasBookingForRoom(ctx, userID, roomID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, ErrNotEligible
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	rv := &domain.Review{
		RoomID:     roomID,
		UserID:     userID,
		AuthorName: authorName(user),
		AvatarURL:  user.AvatarURL,
		Rating:     req.Rating,
		Comment:    comment,
	}

	existing, err := s.reviews.GetByRoomAndUser(ctx, roomID, userID)
	switch {
	case err == nil:
		rv.ID = existing.ID
		if err := s.reviews.Update(ctx, rv); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.reviews.Create(ctx, rv); err != nil {
			if errors.Is(err, repository.ErrDuplicateReview) {
				return nil, ErrConflict
			}
			return nil, err
		}
	default:
		return nil, err
	}

	return s.reviews.GetByRoom(ctx, roomID)
}

func (s *Service) ListForRoom(ctx context.Context, roomID int64) ([]domain.Review, error) {
	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return s.reviews.GetByRoom(ctx, roomID)
}

func authorName(u *domain.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
