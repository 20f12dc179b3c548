package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"getscience-be/internal/dto"
	"getscience-be/internal/entity"
	"getscience-be/internal/pkg/serverutils"
	"getscience-be/internal/repository/specification"
	"getscience-be/internal/repository/unitofwork"
	"getscience-be/pkg/events"
	"getscience-be/pkg/storage"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	publishedEventsCacheKey = "events:published"
	publishedEventsCacheTTL = 5 * time.Minute
)

type IEventService interface {
	CreateEvent(ctx context.Context, organizerID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	UpdateEvent(ctx context.Context, organizerID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	GetEvent(ctx context.Context, eventID uuid.UUID) (*dto.EventResponse, error)
	ListMyEvents(ctx context.Context, organizerID uuid.UUID) ([]dto.EventResponse, error)
	ListPublishedEvents(ctx context.Context) ([]dto.EventResponse, error)
	PublishEvent(ctx context.Context, organizerID, eventID uuid.UUID) (*dto.EventResponse, error)
	CancelEvent(ctx context.Context, organizerID, eventID uuid.UUID) (*dto.EventResponse, error)
	UpdateStaff(ctx context.Context, organizerID uuid.UUID, req *dto.UpdateStaffRequest) ([]dto.StaffResponse, error)
	GetStaff(ctx context.Context, eventID uuid.UUID) ([]dto.StaffResponse, error)
	DeleteEvent(ctx context.Context, organizerID, eventID uuid.UUID) error
}

type eventService struct {
	uowFactory     unitofwork.RepositoryFactory
	geocoding      IGeocodingService
	chatService    IChatService
	eventPublisher EventPublisher
	rdb            *redis.Client
	storage        storage.Provider
}

func NewEventService(
	uowFactory unitofwork.RepositoryFactory,
	geocoding IGeocodingService,
	chatService IChatService,
	eventPublisher EventPublisher,
	rdb *redis.Client,
	storageProvider storage.Provider,
) IEventService {
	return &eventService{
		uowFactory:     uowFactory,
		geocoding:      geocoding,
		chatService:    chatService,
		eventPublisher: eventPublisher,
		rdb:            rdb,
		storage:        storageProvider,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, organizerID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	event := &entity.Event{
		Id:                  uuid.New(),
		OrganizerId:         organizerID,
		Title:               req.Title,
		Description:         req.Description,
		Location:            req.Location,
		StartsAt:            req.StartsAt,
		EndsAt:              req.EndsAt,
		ApplicationDeadline: req.ApplicationDeadline,
		Status:              entity.EventStatusDraft,
		CreatedAt:           time.Now(),
	}
	s.applyCoordinates(ctx, event)

	if err := uow.EventRepository().Create(ctx, event); err != nil {
		return nil, err
	}

	return eventToResponse(event), nil
}

func (s *eventService) UpdateEvent(ctx context.Context, organizerID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	event, err := s.requireOwnedEvent(ctx, uow, organizerID, req.Id)
	if err != nil {
		return nil, err
	}

	locationChanged := event.Location != req.Location

	now := time.Now()
	event.Title = req.Title
	event.Description = req.Description
	event.Location = req.Location
	event.StartsAt = req.StartsAt
	event.EndsAt = req.EndsAt
	event.ApplicationDeadline = req.ApplicationDeadline
	event.UpdatedAt = &now

	if locationChanged {
		event.Latitude = nil
		event.Longitude = nil
		s.applyCoordinates(ctx, event)
	}

	if err := uow.EventRepository().Update(ctx, event); err != nil {
		return nil, err
	}

	s.invalidatePublishedCache(ctx)

	return eventToResponse(event), nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID uuid.UUID) (*dto.EventResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	event, err := uow.EventRepository().FindOne(ctx, specification.ByID{ID: eventID})
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, serverutils.NewNotFoundError("Event not found")
	}
	return eventToResponse(event), nil
}

func (s *eventService) ListMyEvents(ctx context.Context, organizerID uuid.UUID) ([]dto.EventResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	list, err := uow.EventRepository().FindAll(ctx,
		specification.ByOrganizerID{OrganizerID: organizerID},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return eventsToResponses(list), nil
}

// ListPublishedEvents serves the public listing. The cache is a plain
// lookup-then-populate: read Redis, fall through to the database on a
// miss, write the result back with a TTL. Writers invalidate the key.
func (s *eventService) ListPublishedEvents(ctx context.Context) ([]dto.EventResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, publishedEventsCacheKey).Result()
		if err == nil {
			var responses []dto.EventResponse
			if err := json.Unmarshal([]byte(cached), &responses); err == nil {
				return responses, nil
			}
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	list, err := uow.EventRepository().FindAll(ctx,
		specification.ByStatus{Status: string(entity.EventStatusPublished)},
		specification.OrderBy{Field: "starts_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	responses := eventsToResponses(list)

	if s.rdb != nil {
		if payload, err := json.Marshal(responses); err == nil {
			s.rdb.Set(ctx, publishedEventsCacheKey, payload, publishedEventsCacheTTL)
		}
	}

	return responses, nil
}

func (s *eventService) PublishEvent(ctx context.Context, organizerID, eventID uuid.UUID) (*dto.EventResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	event, err := s.requireOwnedEvent(ctx, uow, organizerID, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status == entity.EventStatusPublished {
		return eventToResponse(event), nil
	}
	if event.Status == entity.EventStatusCancelled {
		return nil, serverutils.NewBadRequestError("Cancelled events cannot be published")
	}

	now := time.Now()
	event.Status = entity.EventStatusPublished
	event.UpdatedAt = &now
	if err := uow.EventRepository().Update(ctx, event); err != nil {
		return nil, err
	}

	s.invalidatePublishedCache(ctx)

	if s.eventPublisher != nil {
		evt := events.NewEvent(events.EventPublished, map[string]interface{}{
			"event_id":     event.Id.String(),
			"organizer_id": event.OrganizerId.String(),
			"title":        event.Title,
			"entity_type":  "event",
			"entity_id":    event.Id.String(),
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish %s event: %v\n", events.EventPublished, err)
		}
	}

	return eventToResponse(event), nil
}

// CancelEvent marks the event cancelled and notifies everyone who applied.
// The event keeps its chats and applications; only DeleteEvent tears down.
func (s *eventService) CancelEvent(ctx context.Context, organizerID, eventID uuid.UUID) (*dto.EventResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	event, err := s.requireOwnedEvent(ctx, uow, organizerID, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status == entity.EventStatusCancelled {
		return eventToResponse(event), nil
	}

	now := time.Now()
	event.Status = entity.EventStatusCancelled
	event.UpdatedAt = &now
	if err := uow.EventRepository().Update(ctx, event); err != nil {
		return nil, err
	}

	s.invalidatePublishedCache(ctx)

	if s.eventPublisher != nil {
		applications, err := uow.ApplicationRepository().FindAll(ctx,
			specification.ByEventID{EventID: event.Id},
		)
		if err != nil {
			applications = nil
		}
		recipientIDs := make([]interface{}, 0, len(applications))
		for _, application := range applications {
			recipientIDs = append(recipientIDs, application.ApplicantId.String())
		}

		evt := events.NewEvent(events.EventCancelled, map[string]interface{}{
			"event_id":      event.Id.String(),
			"organizer_id":  event.OrganizerId.String(),
			"title":         event.Title,
			"recipient_ids": recipientIDs,
			"entity_type":   "event",
			"entity_id":     event.Id.String(),
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish %s event: %v\n", events.EventCancelled, err)
		}
	}

	return eventToResponse(event), nil
}

// UpdateStaff replaces the full coowner/reviewer roster, then reconciles
// the membership of every chat of the event against it.
func (s *eventService) UpdateStaff(ctx context.Context, organizerID uuid.UUID, req *dto.UpdateStaffRequest) ([]dto.StaffResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	event, err := s.requireOwnedEvent(ctx, uow, organizerID, req.EventId)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(req.Staff))
	for _, member := range req.Staff {
		if member.UserId == organizerID {
			return nil, serverutils.NewBadRequestError("The organizer cannot be added as staff")
		}
		if seen[member.UserId] {
			return nil, serverutils.NewBadRequestError("Duplicate staff member")
		}
		seen[member.UserId] = true
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.EventRepository().DeleteStaffByEventId(ctx, event.Id); err != nil {
		return nil, err
	}

	staffIDs := make([]uuid.UUID, 0, len(req.Staff))
	for _, member := range req.Staff {
		staff := &entity.EventStaff{
			Id:        uuid.New(),
			EventId:   event.Id,
			UserId:    member.UserId,
			Role:      entity.StaffRole(member.Role),
			CreatedAt: time.Now(),
		}
		if err := uow.EventRepository().CreateStaff(ctx, staff); err != nil {
			return nil, err
		}
		staffIDs = append(staffIDs, member.UserId)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if err := s.chatService.SyncParticipants(ctx, event.Id, organizerID, staffIDs); err != nil {
		return nil, err
	}

	return s.GetStaff(ctx, event.Id)
}

func (s *eventService) GetStaff(ctx context.Context, eventID uuid.UUID) ([]dto.StaffResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	staff, err := uow.EventRepository().FindStaff(ctx, specification.ByEventID{EventID: eventID})
	if err != nil {
		return nil, err
	}

	userIDs := make([]uuid.UUID, 0, len(staff))
	for _, member := range staff {
		userIDs = append(userIDs, member.UserId)
	}
	names := make(map[uuid.UUID]string)
	if len(userIDs) > 0 {
		users, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: userIDs})
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			names[u.Id] = u.FullName
		}
	}

	responses := make([]dto.StaffResponse, 0, len(staff))
	for _, member := range staff {
		responses = append(responses, dto.StaffResponse{
			UserId:    member.UserId,
			FullName:  names[member.UserId],
			Role:      string(member.Role),
			CreatedAt: member.CreatedAt,
		})
	}
	return responses, nil
}

// DeleteEvent tears the event down in dependency order, all in one
// transaction: per chat its messages, read statuses and participant rows,
// then the chat itself; then applications with their attachment rows;
// then staff and finally the event. S3 blobs are deleted best-effort
// after commit; an orphaned blob is cheaper than a dangling row.
func (s *eventService) DeleteEvent(ctx context.Context, organizerID, eventID uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	event, err := s.requireOwnedEvent(ctx, uow, organizerID, eventID)
	if err != nil {
		return err
	}

	chats, err := uow.ChatRepository().FindAll(ctx, specification.ByEventID{EventID: event.Id})
	if err != nil {
		return err
	}

	applications, err := uow.ApplicationRepository().FindAll(ctx, specification.ByEventID{EventID: event.Id})
	if err != nil {
		return err
	}

	var storageKeys []string
	for _, application := range applications {
		attachments, err := uow.ApplicationRepository().FindAttachments(ctx,
			specification.ByApplicationID{ApplicationID: application.Id},
		)
		if err != nil {
			return err
		}
		for _, att := range attachments {
			storageKeys = append(storageKeys, att.StorageKey)
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	for _, chat := range chats {
		if err := uow.ChatMessageRepository().DeleteByChatId(ctx, chat.Id); err != nil {
			return err
		}
		if err := uow.ReadStatusRepository().DeleteByChatId(ctx, chat.Id); err != nil {
			return err
		}
		if err := uow.ChatParticipantRepository().DeleteByChatId(ctx, chat.Id); err != nil {
			return err
		}
		if err := uow.ChatRepository().Delete(ctx, chat.Id); err != nil {
			return err
		}
	}

	for _, application := range applications {
		if err := uow.ApplicationRepository().DeleteAttachmentsByApplicationId(ctx, application.Id); err != nil {
			return err
		}
	}
	if err := uow.ApplicationRepository().DeleteByEventId(ctx, event.Id); err != nil {
		return err
	}

	if err := uow.EventRepository().DeleteStaffByEventId(ctx, event.Id); err != nil {
		return err
	}

	if err := uow.EventRepository().Delete(ctx, event.Id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.invalidatePublishedCache(ctx)

	if s.storage != nil {
		for _, key := range storageKeys {
			if err := s.storage.Delete(ctx, key); err != nil {
				fmt.Printf("[WARN] Failed to delete attachment blob %s: %v\n", key, err)
			}
		}
	}

	return nil
}

func (s *eventService) requireOwnedEvent(ctx context.Context, uow unitofwork.UnitOfWork, organizerID, eventID uuid.UUID) (*entity.Event, error) {
	event, err := uow.EventRepository().FindOne(ctx, specification.ByID{ID: eventID})
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, serverutils.NewNotFoundError("Event not found")
	}
	if event.OrganizerId != organizerID {
		return nil, serverutils.NewForbiddenError("Only the organizer can manage this event")
	}
	return event, nil
}

func (s *eventService) applyCoordinates(ctx context.Context, event *entity.Event) {
	if s.geocoding == nil {
		return
	}
	coords, err := s.geocoding.Geocode(ctx, event.Location)
	if err != nil {
		fmt.Printf("[WARN] Geocoding failed for %q: %v\n", event.Location, err)
		return
	}
	if coords != nil {
		event.Latitude = &coords.Latitude
		event.Longitude = &coords.Longitude
	}
}

func (s *eventService) invalidatePublishedCache(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Del(ctx, publishedEventsCacheKey)
	}
}

func eventToResponse(event *entity.Event) *dto.EventResponse {
	return &dto.EventResponse{
		Id:                  event.Id,
		OrganizerId:         event.OrganizerId,
		Title:               event.Title,
		Description:         event.Description,
		Location:            event.Location,
		Latitude:            event.Latitude,
		Longitude:           event.Longitude,
		StartsAt:            event.StartsAt,
		EndsAt:              event.EndsAt,
		ApplicationDeadline: event.ApplicationDeadline,
		Status:              string(event.Status),
		CreatedAt:           event.CreatedAt,
		UpdatedAt:           event.UpdatedAt,
	}
}

func eventsToResponses(list []*entity.Event) []dto.EventResponse {
	responses := make([]dto.EventResponse, 0, len(list))
	for _, event := range list {
		responses = append(responses, *eventToResponse(event))
	}
	return responses
}
