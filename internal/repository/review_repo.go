package repository

import (
	"context"
	"errors"
	"time"

	"hotelnest/internal/domain"

	"gorm.io/gorm"
)

// ErrDuplicateReview is returned when two submissions race for the same
// (room, user) slot and the loser hits the unique index.
var ErrDuplicateReview = errors.New("review already exists for this room and user")

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type reviewModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	RoomID     int64     `gorm:"column:room_id;uniqueIndex:idx_room_user"`
	UserID     int64     `gorm:"column:user_id;uniqueIndex:idx_room_user"`
	AuthorName string    `gorm:"column:author_name"`
	AvatarURL  string    `gorm:"column:avatar_url"`
	Rating     int       `gorm:"column:rating"`
	Comment    string    `gorm:"column:comment;type:text"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func toDomainReview(m reviewModel) *domain.Review {
	return &domain.Review{
		ID:         m.ID,
		RoomID:     m.RoomID,
		UserID:     m.UserID,
		AuthorName: m.AuthorName,
		AvatarURL:  m.AvatarURL,
		Rating:     m.Rating,
		Comment:    m.Comment,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	m := reviewModel{
		RoomID:     rv.RoomID,
		UserID:     rv.UserID,
		AuthorName: rv.AuthorName,
		AvatarURL:  rv.AvatarURL,
		Rating:     rv.Rating,
		Comment:    rv.Comment,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		if isUniqueViolation(tx.Error) {
			return ErrDuplicateReview
		}
		return tx.Error
	}
	*rv = *toDomainReview(m)
	return nil
}

// Update replaces the content of an existing review in place.
func (r *ReviewRepository) Update(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).
		Model(&reviewModel{}).
		Where("id = ?", rv.ID).
		Updates(map[string]interface{}{
			"author_name": rv.AuthorName,
			"avatar_url":  rv.AvatarURL,
			"rating":      rv.Rating,
			"comment":     rv.Comment,
			"updated_at":  time.Now(),
		}).Error
}

func (r *ReviewRepository) GetByRoomAndUser(ctx context.Context, roomID, userID int64) (*domain.Review, error) {
	var m reviewModel
	tx := r.db.WithContext(ctx).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReview(m), nil
}

// GetByRoom returns reviews in insertion order.
func (r *ReviewRepository) GetByRoom(ctx context.Context, roomID int64) ([]domain.Review, error) {
	var models []reviewModel
	tx := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("id ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Review, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainReview(m))
	}
	return out, nil
}
