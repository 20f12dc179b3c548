package entity

import (
	"time"

	"github.com/google/uuid"
)

// Chat is a single discussion thread bound to an event and the user who
// opened it. At most one chat exists per (event, initiator) pair.
// LastMessageAt is denormalized for chat-list sorting.
type Chat struct {
	Id            uuid.UUID
	EventId       uuid.UUID
	InitiatorId   uuid.UUID
	LastMessageAt *time.Time
	CreatedAt     time.Time
}

// ChatParticipant is one user's membership in one chat, unique per
// (chat, user). A former staff member is deactivated, never deleted,
// so message attribution survives roster changes.
type ChatParticipant struct {
	Id        uuid.UUID
	ChatId    uuid.UUID
	UserId    uuid.UUID
	Active    bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// ChatMessage is append-only; rows are never mutated after creation.
type ChatMessage struct {
	Id        uuid.UUID
	ChatId    uuid.UUID
	SenderId  uuid.UUID
	Content   string
	CreatedAt time.Time
}

// ReadStatus holds the last-read checkpoint per (chat, user).
// A missing row means "never read" and is treated as the epoch.
type ReadStatus struct {
	Id         uuid.UUID
	ChatId     uuid.UUID
	UserId     uuid.UUID
	LastReadAt time.Time
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
