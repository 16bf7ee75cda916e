package repository

import (
	"context"
	"encoding/json"
	"time"

	"hotelnest/internal/domain"

	"gorm.io/gorm"
)

type RoomFilters struct {
	MinPrice *float64
	MaxPrice *float64
}

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	Name          string    `gorm:"column:name"`
	Location      string    `gorm:"column:location"`
	RoomType      string    `gorm:"column:room_type"`
	Capacity      int       `gorm:"column:capacity"`
	Beds          int       `gorm:"column:beds"`
	SizeSqft      int       `gorm:"column:size_sqft"`
	Price         float64   `gorm:"column:price"`
	DiscountPrice *float64  `gorm:"column:discount_price"`
	Amenities     string    `gorm:"column:amenities;type:text"`
	Description   string    `gorm:"column:description;type:text"`
	ImageURL      string    `gorm:"column:image_url"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	var amenities []string
	if m.Amenities != "" {
		_ = json.Unmarshal([]byte(m.Amenities), &amenities)
	}

	return &domain.Room{
		ID:            m.ID,
		Name:          m.Name,
		Location:      m.Location,
		RoomType:      domain.RoomType(m.RoomType),
		Capacity:      m.Capacity,
		Beds:          m.Beds,
		SizeSqft:      m.SizeSqft,
		Price:         m.Price,
		DiscountPrice: m.DiscountPrice,
		Amenities:     amenities,
		Description:   m.Description,
		ImageURL:      m.ImageURL,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toRoomModel(r *domain.Room) roomModel {
	var amenities string
	if len(r.Amenities) > 0 {
		b, _ := json.Marshal(r.Amenities)
		amenities = string(b)
	}

	return roomModel{
		ID:            r.ID,
		Name:          r.Name,
		Location:      r.Location,
		RoomType:      string(r.RoomType),
		Capacity:      r.Capacity,
		Beds:          r.Beds,
		SizeSqft:      r.SizeSqft,
		Price:         r.Price,
		DiscountPrice: r.DiscountPrice,
		Amenities:     amenities,
		Description:   r.Description,
		ImageURL:      r.ImageURL,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*room = *toDomainRoom(m)
	return nil
}

// GetAll returns rooms filtered by effective nightly rate: the discount
// price when one is set below the regular price, the regular price otherwise.
func (r *RoomRepository) GetAll(ctx context.Context, f RoomFilters) ([]domain.Room, error) {
	q := r.db.WithContext(ctx).Model(&roomModel{})

	effective := "COALESCE(CASE WHEN discount_price < price THEN discount_price END, price)"
	if f.MinPrice != nil {
		q = q.Where(effective+" >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where(effective+" <= ?", *f.MaxPrice)
	}

	var models []roomModel
	if err := q.Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Room, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRoom(m), nil
}
