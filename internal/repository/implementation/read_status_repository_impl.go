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

type ReadStatusRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewReadStatusRepository(db *gorm.DB) contract.ReadStatusRepository {
	return &ReadStatusRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ReadStatusRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ReadStatusRepositoryImpl) Create(ctx context.Context, status *entity.ReadStatus) error {
	m := r.mapper.ReadStatusToModel(status)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*status = *r.mapper.ReadStatusToEntity(m)
	return nil
}

func (r *ReadStatusRepositoryImpl) Update(ctx context.Context, status *entity.ReadStatus) error {
	m := r.mapper.ReadStatusToModel(status)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*status = *r.mapper.ReadStatusToEntity(m)
	return nil
}

func (r *ReadStatusRepositoryImpl) DeleteByChatId(ctx context.Context, chatId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("chat_id = ?", chatId).Delete(&model.ReadStatus{}).Error
}

func (r *ReadStatusRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReadStatus, error) {
	var m model.ReadStatus
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ReadStatusToEntity(&m), nil
}
