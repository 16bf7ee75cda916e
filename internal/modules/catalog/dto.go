package catalog

type DateRequest struct {
	Date string `json:"date" binding:"required"`
}

type AvailabilityResponse struct {
	RoomID    int64  `json:"room_id"`
	Date      string `json:"date"`
	Available bool   `json:"available"`
}
