package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"getscience-be/internal/entity"
	"getscience-be/internal/repository/contract"
	"getscience-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ApplicationRepository struct {
	mu           sync.RWMutex
	applications map[uuid.UUID]entity.Application
	attachments  map[uuid.UUID]entity.FileAttachment
}

func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{
		applications: make(map[uuid.UUID]entity.Application),
		attachments:  make(map[uuid.UUID]entity.FileAttachment),
	}
}

func (r *ApplicationRepository) Create(ctx context.Context, application *entity.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if application.Id == uuid.Nil {
		application.Id = uuid.New()
	}
	if application.CreatedAt.IsZero() {
		application.CreatedAt = time.Now()
	}
	for _, a := range r.applications {
		if a.EventId == application.EventId && a.ApplicantId == application.ApplicantId {
			return fmt.Errorf("duplicate application for event %s by applicant %s", application.EventId, application.ApplicantId)
		}
	}
	r.applications[application.Id] = *application
	return nil
}

func (r *ApplicationRepository) Update(ctx context.Context, application *entity.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applications[application.Id] = *application
	return nil
}

func (r *ApplicationRepository) DeleteByEventId(ctx context.Context, eventId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.applications {
		if a.EventId == eventId {
			for attId, att := range r.attachments {
				if att.ApplicationId == id {
					delete(r.attachments, attId)
				}
			}
			delete(r.applications, id)
		}
	}
	return nil
}

func (r *ApplicationRepository) match(a entity.Application, f filters) bool {
	if f.id != nil && a.Id != *f.id {
		return false
	}
	if f.eventID != nil && a.EventId != *f.eventID {
		return false
	}
	if f.applicantID != nil && a.ApplicantId != *f.applicantID {
		return false
	}
	if f.status != nil && string(a.Status) != *f.status {
		return false
	}
	return true
}

func (r *ApplicationRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f := collect(specs...)
	for _, a := range r.applications {
		if r.match(a, f) {
			out := a
			return &out, nil
		}
	}
	return nil, nil
}

func (r *ApplicationRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f := collect(specs...)
	var result []*entity.Application
	for _, a := range r.applications {
		if r.match(a, f) {
			out := a
			result = append(result, &out)
		}
	}
	sortByCreatedAt(result, func(a *entity.Application) time.Time { return a.CreatedAt }, f.orderDesc)
	return page(result, f), nil
}

func (r *ApplicationRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

func (r *ApplicationRepository) CreateAttachments(ctx context.Context, attachments []*entity.FileAttachment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, att := range attachments {
		if att.Id == uuid.Nil {
			att.Id = uuid.New()
		}
		if att.CreatedAt.IsZero() {
			att.CreatedAt = time.Now()
		}
		r.attachments[att.Id] = *att
	}
	return nil
}

func (r *ApplicationRepository) FindAttachments(ctx context.Context, specs ...specification.Specification) ([]*entity.FileAttachment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f := collect(specs...)
	var result []*entity.FileAttachment
	for _, att := range r.attachments {
		if f.applicationID != nil && att.ApplicationId != *f.applicationID {
			continue
		}
		out := att
		result = append(result, &out)
	}
	sortByCreatedAt(result, func(a *entity.FileAttachment) time.Time { return a.CreatedAt }, f.orderDesc)
	return page(result, f), nil
}

func (r *ApplicationRepository) DeleteAttachmentsByApplicationId(ctx context.Context, applicationId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, att := range r.attachments {
		if att.ApplicationId == applicationId {
			delete(r.attachments, id)
		}
	}
	return nil
}

var _ contract.ApplicationRepository = (*ApplicationRepository)(nil)
