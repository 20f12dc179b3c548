package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventStatus string
type StaffRole string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"

	StaffRoleCoowner  StaffRole = "coowner"
	StaffRoleReviewer StaffRole = "reviewer"
)

type Event struct {
	Id                  uuid.UUID
	OrganizerId         uuid.UUID
	Title               string
	Description         string
	Location            string
	Latitude            *float64
	Longitude           *float64
	StartsAt            time.Time
	EndsAt              time.Time
	ApplicationDeadline time.Time
	Status              EventStatus
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}

// EventStaff is one coowner or reviewer assignment on an event.
// The organizer is not stored here; Event.OrganizerId is authoritative.
type EventStaff struct {
	Id        uuid.UUID
	EventId   uuid.UUID
	UserId    uuid.UUID
	Role      StaffRole
	CreatedAt time.Time
}
