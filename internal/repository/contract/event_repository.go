package contract

import (
	"context"

	"getscience-be/internal/entity"
	"getscience-be/internal/repository/specification"

	"github.com/google/uuid"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Event, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Event, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	CreateStaff(ctx context.Context, staff *entity.EventStaff) error
	DeleteStaffByEventId(ctx context.Context, eventId uuid.UUID) error
	FindStaff(ctx context.Context, specs ...specification.Specification) ([]*entity.EventStaff, error)
}
