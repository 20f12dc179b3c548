package mapper

import (
	"time"

	"getscience-be/internal/entity"
	"getscience-be/internal/model"
)

type ApplicationMapper struct{}

func NewApplicationMapper() *ApplicationMapper {
	return &ApplicationMapper{}
}

func (m *ApplicationMapper) ToEntity(a *model.Application) *entity.Application {
	if a == nil {
		return nil
	}

	var updatedAt *time.Time
	if !a.UpdatedAt.IsZero() {
		t := a.UpdatedAt
		updatedAt = &t
	}

	return &entity.Application{
		Id:          a.Id,
		EventId:     a.EventId,
		ApplicantId: a.ApplicantId,
		Message:     a.Message,
		Status:      entity.ApplicationStatus(a.Status),
		DecidedBy:   a.DecidedBy,
		DecidedAt:   a.DecidedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *ApplicationMapper) ToModel(a *entity.Application) *model.Application {
	if a == nil {
		return nil
	}

	var updatedAt time.Time
	if a.UpdatedAt != nil {
		updatedAt = *a.UpdatedAt
	}

	return &model.Application{
		Id:          a.Id,
		EventId:     a.EventId,
		ApplicantId: a.ApplicantId,
		Message:     a.Message,
		Status:      string(a.Status),
		DecidedBy:   a.DecidedBy,
		DecidedAt:   a.DecidedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *ApplicationMapper) AttachmentToEntity(f *model.FileAttachment) *entity.FileAttachment {
	if f == nil {
		return nil
	}
	return &entity.FileAttachment{
		Id:            f.Id,
		ApplicationId: f.ApplicationId,
		FileName:      f.FileName,
		ContentType:   f.ContentType,
		Size:          f.Size,
		StorageKey:    f.StorageKey,
		CreatedAt:     f.CreatedAt,
	}
}

func (m *ApplicationMapper) AttachmentToModel(f *entity.FileAttachment) *model.FileAttachment {
	if f == nil {
		return nil
	}
	return &model.FileAttachment{
		Id:            f.Id,
		ApplicationId: f.ApplicationId,
		FileName:      f.FileName,
		ContentType:   f.ContentType,
		Size:          f.Size,
		StorageKey:    f.StorageKey,
		CreatedAt:     f.CreatedAt,
	}
}
