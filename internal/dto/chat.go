package dto

import "time"

type ChatRoomDTO struct {
	ID        int       `json:"id"`
	Name      string    `json:"name" example:"Global Lobby"`
	Type      string    `json:"type" example:"global"`
	RelatedID *int      `json:"relatedId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type ChatMessageDTO struct {
	ID         int             `json:"id"`
	RoomID     int             `json:"roomId"`
	UserID     int             `json:"userId"`
	Message    string          `json:"message"`
	Attachment string          `json:"attachment,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	User       *UserSummaryDTO `json:"user,omitempty"`
}

type SendMessageRequestDTO struct {
	Message    string `json:"message" validate:"required,max=500"`
	Attachment string `json:"attachment"`
}
