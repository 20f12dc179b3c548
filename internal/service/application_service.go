package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"getscience-be/internal/dto"
	"getscience-be/internal/entity"
	"getscience-be/internal/pkg/serverutils"
	"getscience-be/internal/repository/specification"
	"getscience-be/internal/repository/unitofwork"
	"getscience-be/pkg/events"
	"getscience-be/pkg/storage"

	"github.com/google/uuid"
)

// AttachmentUpload is one incoming multipart file.
type AttachmentUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type IApplicationService interface {
	Submit(ctx context.Context, applicantID uuid.UUID, req *dto.SubmitApplicationRequest, attachments []AttachmentUpload) (*dto.ApplicationResponse, error)
	ListForEvent(ctx context.Context, eventID, userID uuid.UUID) ([]dto.ApplicationResponse, error)
	ListMine(ctx context.Context, applicantID uuid.UUID) ([]dto.ApplicationResponse, error)
	Decide(ctx context.Context, deciderID uuid.UUID, req *dto.DecideApplicationRequest) (*dto.ApplicationResponse, error)
	Withdraw(ctx context.Context, applicantID, applicationID uuid.UUID) error
}

type applicationService struct {
	uowFactory     unitofwork.RepositoryFactory
	storage        storage.Provider
	outbox         IEmailOutbox
	eventPublisher EventPublisher
}

func NewApplicationService(
	uowFactory unitofwork.RepositoryFactory,
	storageProvider storage.Provider,
	outbox IEmailOutbox,
	eventPublisher EventPublisher,
) IApplicationService {
	return &applicationService{
		uowFactory:     uowFactory,
		storage:        storageProvider,
		outbox:         outbox,
		eventPublisher: eventPublisher,
	}
}

// Submit files an application to a published event before its deadline.
// Blobs are uploaded before the transaction; if the insert then fails
// the orphaned blobs are deleted best-effort.
func (s *applicationService) Submit(ctx context.Context, applicantID uuid.UUID, req *dto.SubmitApplicationRequest, attachments []AttachmentUpload) (*dto.ApplicationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	event, err := uow.EventRepository().FindOne(ctx, specification.ByID{ID: req.EventId})
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, serverutils.NewNotFoundError("Event not found")
	}
	if event.Status != entity.EventStatusPublished {
		return nil, serverutils.NewBadRequestError("Event is not accepting applications")
	}
	if time.Now().After(event.ApplicationDeadline) {
		return nil, serverutils.NewBadRequestError("Application deadline has passed")
	}

	existing, err := uow.ApplicationRepository().FindOne(ctx,
		specification.ByEventID{EventID: req.EventId},
		specification.ByApplicantID{ApplicantID: applicantID},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.NewConflictError("You have already applied to this event")
	}

	application := &entity.Application{
		Id:          uuid.New(),
		EventId:     req.EventId,
		ApplicantId: applicantID,
		Message:     req.Message,
		Status:      entity.ApplicationStatusPending,
		CreatedAt:   time.Now(),
	}

	var attachmentRows []*entity.FileAttachment
	for _, upload := range attachments {
		key := fmt.Sprintf("applications/%s/%s%s", application.Id, uuid.New(), path.Ext(upload.FileName))
		uploaded, err := s.storage.Upload(ctx, &storage.UploadRequest{
			Key:         key,
			Reader:      upload.Reader,
			ContentType: upload.ContentType,
			Size:        upload.Size,
		})
		if err != nil {
			s.cleanupBlobs(ctx, attachmentRows)
			return nil, err
		}
		attachmentRows = append(attachmentRows, &entity.FileAttachment{
			Id:            uuid.New(),
			ApplicationId: application.Id,
			FileName:      upload.FileName,
			ContentType:   upload.ContentType,
			Size:          upload.Size,
			StorageKey:    uploaded.Key,
			CreatedAt:     time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		s.cleanupBlobs(ctx, attachmentRows)
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ApplicationRepository().Create(ctx, application); err != nil {
		s.cleanupBlobs(ctx, attachmentRows)
		return nil, err
	}
	if len(attachmentRows) > 0 {
		if err := uow.ApplicationRepository().CreateAttachments(ctx, attachmentRows); err != nil {
			s.cleanupBlobs(ctx, attachmentRows)
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		s.cleanupBlobs(ctx, attachmentRows)
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewEvent(events.ApplicationCreated, map[string]interface{}{
			"application_id": application.Id.String(),
			"event_id":       event.Id.String(),
			"user_id":        event.OrganizerId.String(),
			"applicant_id":   applicantID.String(),
			"event_title":    event.Title,
			"entity_type":    "application",
			"entity_id":      application.Id.String(),
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish %s event: %v\n", events.ApplicationCreated, err)
		}
	}

	return s.applicationToResponse(application, attachmentRows), nil
}

func (s *applicationService) ListForEvent(ctx context.Context, eventID, userID uuid.UUID) ([]dto.ApplicationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := s.requireEventStaff(ctx, uow, eventID, userID); err != nil {
		return nil, err
	}

	applications, err := uow.ApplicationRepository().FindAll(ctx,
		specification.ByEventID{EventID: eventID},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return s.withAttachments(ctx, uow, applications)
}

func (s *applicationService) ListMine(ctx context.Context, applicantID uuid.UUID) ([]dto.ApplicationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	applications, err := uow.ApplicationRepository().FindAll(ctx,
		specification.ByApplicantID{ApplicantID: applicantID},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return s.withAttachments(ctx, uow, applications)
}

// Decide approves or rejects a pending application. The decision email
// and the bus event go out after the write.
func (s *applicationService) Decide(ctx context.Context, deciderID uuid.UUID, req *dto.DecideApplicationRequest) (*dto.ApplicationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	application, err := uow.ApplicationRepository().FindOne(ctx, specification.ByID{ID: req.ApplicationId})
	if err != nil {
		return nil, err
	}
	if application == nil {
		return nil, serverutils.NewNotFoundError("Application not found")
	}

	if err := s.requireEventStaff(ctx, uow, application.EventId, deciderID); err != nil {
		return nil, err
	}

	if application.Status != entity.ApplicationStatusPending {
		return nil, serverutils.NewBadRequestError("Application has already been decided")
	}

	now := time.Now()
	application.Status = entity.ApplicationStatus(req.Decision)
	application.DecidedBy = &deciderID
	application.DecidedAt = &now
	application.UpdatedAt = &now

	if err := uow.ApplicationRepository().Update(ctx, application); err != nil {
		return nil, err
	}

	event, err := uow.EventRepository().FindOne(ctx, specification.ByID{ID: application.EventId})
	if err != nil {
		return nil, err
	}
	applicant, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: application.ApplicantId})
	if err != nil {
		return nil, err
	}

	eventTitle := ""
	if event != nil {
		eventTitle = event.Title
	}

	if s.outbox != nil && applicant != nil {
		s.outbox.Enqueue(ctx, EmailJob{
			Recipient: applicant.Email,
			Template:  EmailTemplateApplicationDecision,
			Params: map[string]string{
				"event_title": eventTitle,
				"decision":    req.Decision,
			},
		})
	}

	if s.eventPublisher != nil {
		evt := events.NewEvent(events.ApplicationDecided, map[string]interface{}{
			"application_id": application.Id.String(),
			"event_id":       application.EventId.String(),
			"user_id":        application.ApplicantId.String(),
			"decision":       req.Decision,
			"event_title":    eventTitle,
			"entity_type":    "application",
			"entity_id":      application.Id.String(),
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish %s event: %v\n", events.ApplicationDecided, err)
		}
	}

	attachments, err := uow.ApplicationRepository().FindAttachments(ctx,
		specification.ByApplicationID{ApplicationID: application.Id},
	)
	if err != nil {
		return nil, err
	}
	return s.applicationToResponse(application, attachments), nil
}

func (s *applicationService) Withdraw(ctx context.Context, applicantID, applicationID uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	application, err := uow.ApplicationRepository().FindOne(ctx, specification.ByID{ID: applicationID})
	if err != nil {
		return err
	}
	if application == nil {
		return serverutils.NewNotFoundError("Application not found")
	}
	if application.ApplicantId != applicantID {
		return serverutils.NewForbiddenError("Only the applicant can withdraw an application")
	}
	if application.Status != entity.ApplicationStatusPending {
		return serverutils.NewBadRequestError("Only pending applications can be withdrawn")
	}

	now := time.Now()
	application.Status = entity.ApplicationStatusWithdrawn
	application.UpdatedAt = &now
	return uow.ApplicationRepository().Update(ctx, application)
}

// requireEventStaff admits the organizer and anyone on the staff roster.
func (s *applicationService) requireEventStaff(ctx context.Context, uow unitofwork.UnitOfWork, eventID, userID uuid.UUID) error {
	event, err := uow.EventRepository().FindOne(ctx, specification.ByID{ID: eventID})
	if err != nil {
		return err
	}
	if event == nil {
		return serverutils.NewNotFoundError("Event not found")
	}
	if event.OrganizerId == userID {
		return nil
	}

	staff, err := uow.EventRepository().FindStaff(ctx,
		specification.ByEventID{EventID: eventID},
		specification.ByUserID{UserID: userID},
	)
	if err != nil {
		return err
	}
	if len(staff) == 0 {
		return serverutils.NewForbiddenError("Not a staff member of this event")
	}
	return nil
}

func (s *applicationService) withAttachments(ctx context.Context, uow unitofwork.UnitOfWork, applications []*entity.Application) ([]dto.ApplicationResponse, error) {
	responses := make([]dto.ApplicationResponse, 0, len(applications))
	for _, application := range applications {
		attachments, err := uow.ApplicationRepository().FindAttachments(ctx,
			specification.ByApplicationID{ApplicationID: application.Id},
		)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *s.applicationToResponse(application, attachments))
	}
	return responses, nil
}

func (s *applicationService) applicationToResponse(application *entity.Application, attachments []*entity.FileAttachment) *dto.ApplicationResponse {
	attachmentResponses := make([]dto.AttachmentResponse, 0, len(attachments))
	for _, att := range attachments {
		url := att.StorageKey
		if s.storage != nil {
			url = s.storage.PublicURL(att.StorageKey)
		}
		attachmentResponses = append(attachmentResponses, dto.AttachmentResponse{
			Id:          att.Id,
			FileName:    att.FileName,
			ContentType: att.ContentType,
			Size:        att.Size,
			URL:         url,
		})
	}

	return &dto.ApplicationResponse{
		Id:          application.Id,
		EventId:     application.EventId,
		ApplicantId: application.ApplicantId,
		Message:     application.Message,
		Status:      string(application.Status),
		DecidedBy:   application.DecidedBy,
		DecidedAt:   application.DecidedAt,
		Attachments: attachmentResponses,
		CreatedAt:   application.CreatedAt,
	}
}

func (s *applicationService) cleanupBlobs(ctx context.Context, rows []*entity.FileAttachment) {
	if s.storage == nil {
		return
	}
	for _, row := range rows {
		if err := s.storage.Delete(ctx, row.StorageKey); err != nil {
			fmt.Printf("[WARN] Failed to clean up attachment blob %s: %v\n", row.StorageKey, err)
		}
	}
}
