package domain

import "time"

type RoomType string

const (
	RoomStandard RoomType = "Standard"
	RoomDeluxe   RoomType = "Deluxe"
	RoomSuite    RoomType = "Suite"
	RoomFamily   RoomType = "Family"
)

type Room struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name" validate:"required"`
	Location      string    `json:"location"`
	RoomType      RoomType  `json:"type"`
	Capacity      int       `json:"capacity" validate:"required,gt=0"`
	Beds          int       `json:"beds"`
	SizeSqft      int       `json:"size"`
	Price         float64   `json:"price" validate:"required,gte=0"`
	DiscountPrice *float64  `json:"discount_price,omitempty"`
	Amenities     []string  `json:"amenities,omitempty"`
	Description   string    `json:"description,omitempty"`
	ImageURL      string    `json:"image,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Populated on detail reads from the ledger and review store.
	BookedDates []string `json:"booked_dates,omitempty"`
	Reviews     []Review `json:"reviews,omitempty"`
}
