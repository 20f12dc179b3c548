package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatID struct {
	ChatID uuid.UUID
}

func (s ByChatID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_id = ?", s.ChatID)
}

type ByChatIDs struct {
	ChatIDs []uuid.UUID
}

func (s ByChatIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_id IN ?", s.ChatIDs)
}

// ActiveOnly keeps only active participant rows.
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}

// SentAfter keeps messages created strictly after the given instant.
type SentAfter struct {
	After time.Time
}

func (s SentAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at > ?", s.After)
}

// SenderNot excludes messages sent by the given user.
type SenderNot struct {
	UserID uuid.UUID
}

func (s SenderNot) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sender_id <> ?", s.UserID)
}

type ByInitiatorID struct {
	InitiatorID uuid.UUID
}

func (s ByInitiatorID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("initiator_id = ?", s.InitiatorID)
}
