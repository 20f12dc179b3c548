package model

import (
	"time"

	"github.com/google/uuid"
)

type Application struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_event_applicant,priority:1"`
	ApplicantId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_event_applicant,priority:2"`
	Message     string    `gorm:"type:text"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	DecidedBy   *uuid.UUID `gorm:"type:uuid"`
	DecidedAt   *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Application) TableName() string {
	return "applications"
}

type FileAttachment struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ApplicationId uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName      string    `gorm:"type:varchar(255);not null"`
	ContentType   string    `gorm:"type:varchar(100)"`
	Size          int64
	StorageKey    string    `gorm:"type:varchar(512);not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (FileAttachment) TableName() string {
	return "file_attachments"
}
