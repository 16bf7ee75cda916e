package review

import (
	"context"
	"testing"

	"hotelnest/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockReviewStore struct {
	mock.Mock
}

func (m *MockReviewStore) Create(ctx context.Context, rv *domain.Review) error {
	args := m.Called(ctx, rv)
	if rv != nil && args.Error(0) == nil {
		rv.ID = 555
	}
	return args.Error(0)
}

func (m *MockReviewStore) Update(ctx context.Context, rv *domain.Review) error {
	args := m.Called(ctx, rv)
	return args.Error(0)
}

func (m *MockReviewStore) GetByRoomAndUser(ctx context.Context, roomID, userID int64) (*domain.Review, error) {
	args := m.Called(ctx, roomID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewStore) GetByRoom(ctx context.Context, roomID int64) ([]domain.Review, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

type MockBookingGate struct {
	mock.Mock
}

func (m *MockBookingGate) HasBookingForRoom(ctx context.Context, userID, roomID int64) (bool, error) {
	args := m.Called(ctx, userID, roomID)
	return args.Bool(0), args.Error(1)
}

type MockRoomGate struct {
	mock.Mock
}

func (m *MockRoomGate) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func newServiceWithMocks() (*Service, *MockReviewStore, *MockBookingGate, *MockRoomGate, *MockUserReader) {
	reviews := new(MockReviewStore)
	bookings := new(MockBookingGate)
	rooms := new(MockRoomGate)
	users := new(MockUserReader)
	return NewService(reviews, bookings, rooms, users), reviews, bookings, rooms, users
}

func TestSubmit_InvalidRating(t *testing.T) {
	service, _, _, _, _ := newServiceWithMocks()

	_, err := service.Submit(context.Background(), 42, 10, SubmitReviewRequest{Rating: 0, Comment: "nice"})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = service.Submit(context.Background(), 42, 10, SubmitReviewRequest{Rating: 6, Comment: "nice"})
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestSubmit_EmptyComment(t *testing.T) {
	service, _, _, _, _ := newServiceWithMocks()

	_, err := service.Submit(context.Background(), 42, 10, SubmitReviewRequest{Rating: 5, Comment: "   "})
	assert.ErrorIs(t, err, ErrEmptyComment)
}

func TestSubmit_NotEligibleWithoutBooking(t *testing.T) {
	service, _, bookings, rooms, _ := newServiceWithMocks()

	rooms.On("GetByID", mock.Anything, int64(10)).Return(&domain.Room{ID: 10}, nil)
	bookings.On("HasBookingForRoom", mock.Anything, int64(42), int64(10)).Return(false, nil)

	_, err := service.Submit(context.Background(), 42, 10, SubmitReviewRequest{Rating: 5, Comment: "great stay"})
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestSubmit_CreatesFirstReview(t *testing.T) {
	service, reviews, bookings, rooms, users := newServiceWithMocks()

	rooms.On("GetByID", mock.Anything, int64(10)).Return(&domain.Room{ID: 10}, nil)
	bookings.On("HasBookingForRoom", mock.Anything, int64(42), int64(10)).Return(true, nil)
	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{
		ID:    42,
		Name:  "Ada",
		Email: "ada@example.com",
	}, nil)
	reviews.On("GetByRoomAndUser", mock.Anything, int64(10), int64(42)).Return(nil, gorm.ErrRecordNotFound)
	reviews.On("Create", mock.Anything, mock.MatchedBy(func(rv *domain.Review) bool {
		return rv.RoomID == 10 && rv.UserID == 42 && rv.Rating == 5 && rv.AuthorName == "Ada"
	})).Return(nil)
	reviews.On("GetByRoom", mock.Anything, int64(10)).Return([]domain.Review{
		{ID: 555, RoomID: 10, UserID: 42, Rating: 5, Comment: "great stay"},
	}, nil)

	out, err := service.Submit(context.Background(), 42, 10, SubmitReviewRequest{Rating: 5, Comment: "great stay"})
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	reviews.AssertExpectations(t)
}

func TestSubmit_ReplacesExistingReview(t *testing.T) {
	service, reviews, bookings, rooms, users := newServiceWithMocks()

	rooms.On("GetByID", mock.Anything, int64(10)).Return(&domain.Room{ID: 10}, nil)
	bookings.On("HasBookingForRoom", mock.Anything, int64(42), int64(10)).Return(true, nil)
	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42, Email: "ada@example.com"}, nil)
	reviews.On("GetByRoomAndUser", mock.Anything, int64(10), int64(42)).Return(&domain.Review{
		ID:     555,
		RoomID: 10,
		UserID: 42,
		Rating: 3,
	}, nil)
	reviews.On("Update", mock.Anything, mock.MatchedBy(func(rv *domain.Review) bool {
		return rv.ID == 555 && rv.Rating == 4 && rv.Comment == "even better second time"
	})).Return(nil)
	reviews.On("GetByRoom", mock.Anything, int64(10)).Return([]domain.Review{
		{ID: 555, RoomID: 10, UserID: 42, Rating: 4, Comment: "even better second time"},
	}, nil)

	out, err := service.Submit(context.Background(), 42, 10, SubmitReviewRequest{Rating: 4, Comment: "even better second time"})
	assert.NoError(t, err)
	// Replaced in place, not appended.
	assert.Len(t, out, 1)
	assert.Equal(t, "even better second time", out[0].Comment)
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmit_AuthorFallsBackToEmail(t *testing.T) {
	service, reviews, bookings, rooms, users := newServiceWithMocks()

	rooms.On("GetByID", mock.Anything, int64(10)).Return(&domain.Room{ID: 10}, nil)
	bookings.On("HasBookingForRoom", mock.Anything, int64(42), int64(10)).Return(true, nil)
	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42, Email: "ada@example.com"}, nil)
	reviews.On("GetByRoomAndUser", mock.Anything, int64(10), int64(42)).Return(nil, gorm.ErrRecordNotFound)
	reviews.On("Create", mock.Anything, mock.MatchedBy(func(rv *domain.Review) bool {
		return rv.AuthorName == "ada@example.com"
	})).Return(nil)
	reviews.On("GetByRoom", mock.Anything, int64(10)).Return([]domain.Review{}, nil)

	_, err := service.Submit(context.Background(), 42, 10, SubmitReviewRequest{Rating: 5, Comment: "lovely"})
	assert.NoError(t, err)
	reviews.AssertExpectations(t)
}

func TestListForRoom_RoomNotFound(t *testing.T) {
	service, _, _, rooms, _ := newServiceWithMocks()
	rooms.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.ListForRoom(context.Background(), 99)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}
