package implementation

import (
	"context"
	"errors"

	"getscience-be/internal/entity"
	"getscience-be/internal/mapper"
	"getscience-be/internal/model"
	"getscience-be/internal/repository/contract"
	"getscience-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ApplicationMapper
}

func NewApplicationRepository(db *gorm.DB) contract.ApplicationRepository {
	return &ApplicationRepositoryImpl{
		db:     db,
		mapper: mapper.NewApplicationMapper(),
	}
}

func (r *ApplicationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ApplicationRepositoryImpl) Create(ctx context.Context, application *entity.Application) error {
	m := r.mapper.ToModel(application)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*application = *r.mapper.ToEntity(m)
	return nil
}

func (r *ApplicationRepositoryImpl) Update(ctx context.Context, application *entity.Application) error {
	m := r.mapper.ToModel(application)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*application = *r.mapper.ToEntity(m)
	return nil
}

func (r *ApplicationRepositoryImpl) DeleteByEventId(ctx context.Context, eventId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("event_id = ?", eventId).Delete(&model.Application{}).Error
}

func (r *ApplicationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Application, error) {
	var m model.Application
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ApplicationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Application, error) {
	var models []*model.Application
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Application, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *ApplicationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Application{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ApplicationRepositoryImpl) CreateAttachments(ctx context.Context, attachments []*entity.FileAttachment) error {
	if len(attachments) == 0 {
		return nil
	}
	models := make([]*model.FileAttachment, len(attachments))
	for i, a := range attachments {
		models[i] = r.mapper.AttachmentToModel(a)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*attachments[i] = *r.mapper.AttachmentToEntity(m)
	}
	return nil
}

func (r *ApplicationRepositoryImpl) FindAttachments(ctx context.Context, specs ...specification.Specification) ([]*entity.FileAttachment, error) {
	var models []*model.FileAttachment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.FileAttachment, len(models))
	for i, m := range models {
		entities[i] = r.mapper.AttachmentToEntity(m)
	}
	return entities, nil
}

func (r *ApplicationRepositoryImpl) DeleteAttachmentsByApplicationId(ctx context.Context, applicationId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("application_id = ?", applicationId).Delete(&model.FileAttachment{}).Error
}
