package domain

import "time"

type Review struct {
	ID         int64     `json:"id"`
	RoomID     int64     `json:"room_id"`
	UserID     int64     `json:"user_id"`
	AuthorName string    `json:"name"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
