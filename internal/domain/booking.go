package domain

import "time"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// DateLayout is the wire and storage format for booking dates.
// Dates are day-granular; lexicographic order equals chronological order.
const DateLayout = "2006-01-02"

type Booking struct {
	ID          int64         `json:"id"`
	Reference   string        `json:"reference"`
	RoomID      int64         `json:"room_id" validate:"required"`
	RoomName    string        `json:"room_name"`
	RoomImage   string        `json:"room_image,omitempty"`
	UserID      int64         `json:"user_id" validate:"required"`
	Date        string        `json:"booking_date" validate:"required"`
	Guests      int           `json:"guests" validate:"required,min=1,max=3"`
	TotalPrice  float64       `json:"total_price" validate:"gte=0"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	CancelledAt *time.Time    `json:"cancelled_at,omitempty"`
}
