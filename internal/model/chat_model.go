package model

import (
	"time"

	"github.com/google/uuid"
)

type Chat struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventId       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chats_event_initiator,priority:1"`
	InitiatorId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chats_event_initiator,priority:2"`
	LastMessageAt *time.Time `gorm:"index"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
}

func (Chat) TableName() string {
	return "chats"
}

type ChatParticipant struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chat_participants_chat_user,priority:1"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chat_participants_chat_user,priority:2;index"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ChatParticipant) TableName() string {
	return "chat_participants"
}

type ChatMessage struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatId    uuid.UUID `gorm:"type:uuid;not null;index:idx_chat_messages_chat_created,priority:1"`
	SenderId  uuid.UUID `gorm:"type:uuid;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_chat_messages_chat_created,priority:2"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

type ReadStatus struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_read_statuses_chat_user,priority:1"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_read_statuses_chat_user,priority:2"`
	LastReadAt time.Time `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (ReadStatus) TableName() string {
	return "read_statuses"
}
