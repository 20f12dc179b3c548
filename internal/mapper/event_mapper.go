package mapper

import (
	"time"

	"getscience-be/internal/entity"
	"getscience-be/internal/model"
)

type EventMapper struct{}

func NewEventMapper() *EventMapper {
	return &EventMapper{}
}

func (m *EventMapper) ToEntity(e *model.Event) *entity.Event {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.Event{
		Id:                  e.Id,
		OrganizerId:         e.OrganizerId,
		Title:               e.Title,
		Description:         e.Description,
		Location:            e.Location,
		Latitude:            e.Latitude,
		Longitude:           e.Longitude,
		StartsAt:            e.StartsAt,
		EndsAt:              e.EndsAt,
		ApplicationDeadline: e.ApplicationDeadline,
		Status:              entity.EventStatus(e.Status),
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           updatedAt,
	}
}

func (m *EventMapper) ToModel(e *entity.Event) *model.Event {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.Event{
		Id:                  e.Id,
		OrganizerId:         e.OrganizerId,
		Title:               e.Title,
		Description:         e.Description,
		Location:            e.Location,
		Latitude:            e.Latitude,
		Longitude:           e.Longitude,
		StartsAt:            e.StartsAt,
		EndsAt:              e.EndsAt,
		ApplicationDeadline: e.ApplicationDeadline,
		Status:              string(e.Status),
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           updatedAt,
	}
}

func (m *EventMapper) StaffToEntity(s *model.EventStaff) *entity.EventStaff {
	if s == nil {
		return nil
	}
	return &entity.EventStaff{
		Id:        s.Id,
		EventId:   s.EventId,
		UserId:    s.UserId,
		Role:      entity.StaffRole(s.Role),
		CreatedAt: s.CreatedAt,
	}
}

func (m *EventMapper) StaffToModel(s *entity.EventStaff) *model.EventStaff {
	if s == nil {
		return nil
	}
	return &model.EventStaff{
		Id:        s.Id,
		EventId:   s.EventId,
		UserId:    s.UserId,
		Role:      string(s.Role),
		CreatedAt: s.CreatedAt,
	}
}
