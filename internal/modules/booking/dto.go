package booking

type CreateBookingRequest struct {
	RoomID int64  `json:"room_id" binding:"required"`
	Date   string `json:"booking_date" binding:"required"`
	Guests int    `json:"guests" binding:"required"`
}

type UpdateBookingDateRequest struct {
	Date string `json:"booking_date" binding:"required"`
}
