package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Title               string    `json:"title" validate:"required,min=3,max=255"`
	Description         string    `json:"description" validate:"required"`
	Location            string    `json:"location" validate:"required"`
	StartsAt            time.Time `json:"starts_at" validate:"required"`
	EndsAt              time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
	ApplicationDeadline time.Time `json:"application_deadline" validate:"required"`
}

type UpdateEventRequest struct {
	Id                  uuid.UUID `json:"-"`
	Title               string    `json:"title" validate:"required,min=3,max=255"`
	Description         string    `json:"description" validate:"required"`
	Location            string    `json:"location" validate:"required"`
	StartsAt            time.Time `json:"starts_at" validate:"required"`
	EndsAt              time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
	ApplicationDeadline time.Time `json:"application_deadline" validate:"required"`
}

type EventResponse struct {
	Id                  uuid.UUID  `json:"id"`
	OrganizerId         uuid.UUID  `json:"organizer_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Location            string     `json:"location"`
	Latitude            *float64   `json:"latitude,omitempty"`
	Longitude           *float64   `json:"longitude,omitempty"`
	StartsAt            time.Time  `json:"starts_at"`
	EndsAt              time.Time  `json:"ends_at"`
	ApplicationDeadline time.Time  `json:"application_deadline"`
	Status              string     `json:"status"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

type StaffMember struct {
	UserId uuid.UUID `json:"user_id" validate:"required"`
	Role   string    `json:"role" validate:"required,oneof=coowner reviewer"`
}

type UpdateStaffRequest struct {
	EventId uuid.UUID     `json:"-"`
	Staff   []StaffMember `json:"staff" validate:"dive"`
}

type StaffResponse struct {
	UserId    uuid.UUID `json:"user_id"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
