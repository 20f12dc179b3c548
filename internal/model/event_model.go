package model

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	Id                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizerId         uuid.UUID `gorm:"type:uuid;not null;index"`
	Title               string    `gorm:"type:varchar(255);not null"`
	Description         string    `gorm:"type:text"`
	Location            string    `gorm:"type:varchar(255)"`
	Latitude            *float64
	Longitude           *float64
	StartsAt            time.Time `gorm:"not null"`
	EndsAt              time.Time `gorm:"not null"`
	ApplicationDeadline time.Time `gorm:"not null"`
	Status              string    `gorm:"type:varchar(20);not null;default:'draft';index"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`
}

func (Event) TableName() string {
	return "events"
}

type EventStaff struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_staff_event_user,priority:1"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_staff_event_user,priority:2"`
	Role      string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (EventStaff) TableName() string {
	return "event_staff"
}
