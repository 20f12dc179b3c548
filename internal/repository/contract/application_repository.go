package contract

import (
	"context"

	"getscience-be/internal/entity"
	"getscience-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ApplicationRepository interface {
	Create(ctx context.Context, application *entity.Application) error
	Update(ctx context.Context, application *entity.Application) error
	DeleteByEventId(ctx context.Context, eventId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Application, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Application, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	CreateAttachments(ctx context.Context, attachments []*entity.FileAttachment) error
	FindAttachments(ctx context.Context, specs ...specification.Specification) ([]*entity.FileAttachment, error)
	DeleteAttachmentsByApplicationId(ctx context.Context, applicationId uuid.UUID) error
}
