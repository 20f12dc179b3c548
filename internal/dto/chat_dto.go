package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	ChatId  uuid.UUID `json:"-"`
	Content string    `json:"content" validate:"required,max=10000"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	ChatId    uuid.UUID `json:"chat_id"`
	SenderId  uuid.UUID `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatResponse struct {
	Id            uuid.UUID  `json:"id"`
	EventId       uuid.UUID  `json:"event_id"`
	InitiatorId   uuid.UUID  `json:"initiator_id"`
	UnreadCount   int64      `json:"unread_count"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type ChatParticipantResponse struct {
	UserId   uuid.UUID `json:"user_id"`
	FullName string    `json:"full_name"`
}

type UnreadChatCountResponse struct {
	Count int64 `json:"count"`
}
