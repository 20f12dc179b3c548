package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"getscience-be/internal/dto"
	"getscience-be/internal/entity"
	"getscience-be/internal/pkg/serverutils"
	"getscience-be/internal/repository/specification"
	"getscience-be/internal/repository/unitofwork"
	"getscience-be/pkg/events"

	"github.com/google/uuid"
)

// ChatDelivery pushes payloads to connected clients. Satisfied by the
// websocket hub; delivery is fire and forget and never fails a request.
type ChatDelivery interface {
	Send(userID uuid.UUID, messageType string, data interface{})
}

// EventPublisher publishes domain events to the bus.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IChatService interface {
	GetOrCreateChat(ctx context.Context, eventID, initiatorID uuid.UUID) (*dto.ChatResponse, error)
	GetChat(ctx context.Context, chatID, userID uuid.UUID) (*dto.ChatResponse, error)
	ListChats(ctx context.Context, userID uuid.UUID) ([]dto.ChatResponse, error)
	GetMessages(ctx context.Context, chatID, userID uuid.UUID, limit, offset int) ([]dto.ChatMessageResponse, error)
	SendMessage(ctx context.Context, chatID, senderID uuid.UUID, content string) (*dto.ChatMessageResponse, error)
	MarkRead(ctx context.Context, chatID, userID uuid.UUID) error
	UnreadChatCount(ctx context.Context, userID uuid.UUID) (int64, error)
	GetParticipants(ctx context.Context, chatID, userID uuid.UUID) ([]dto.ChatParticipantResponse, error)
	SyncParticipants(ctx context.Context, eventID, organizerID uuid.UUID, staffIDs []uuid.UUID) error
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	delivery       ChatDelivery
	eventPublisher EventPublisher
}

func NewChatService(uowFactory unitofwork.RepositoryFactory, delivery ChatDelivery, eventPublisher EventPublisher) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		delivery:       delivery,
		eventPublisher: eventPublisher,
	}
}

// GetOrCreateChat returns the chat for (event, initiator), creating it on
// first access. A freshly created chat starts with the initiator and the
// event organizer as active participants; staff are filled in by the next
// roster sync.
func (s *chatService) GetOrCreateChat(ctx context.Context, eventID, initiatorID uuid.UUID) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	event, err := uow.EventRepository().FindOne(ctx, specification.ByID{ID: eventID})
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, serverutils.NewNotFoundError("Event not found")
	}

	chat, err := uow.ChatRepository().FindOne(ctx,
		specification.ByEventID{EventID: eventID},
		specification.ByInitiatorID{InitiatorID: initiatorID},
	)
	if err != nil {
		return nil, err
	}
	if chat != nil {
		unread, err := s.unreadCount(ctx, uow, chat.Id, initiatorID)
		if err != nil {
			return nil, err
		}
		return chatToResponse(chat, unread), nil
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	chat = &entity.Chat{
		Id:          uuid.New(),
		EventId:     eventID,
		InitiatorId: initiatorID,
		CreatedAt:   time.Now(),
	}
	if err := uow.ChatRepository().Create(ctx, chat); err != nil {
		return nil, err
	}

	members := []uuid.UUID{initiatorID}
	if event.OrganizerId != initiatorID {
		members = append(members, event.OrganizerId)
	}
	for _, userID := range members {
		participant := &entity.ChatParticipant{
			Id:        uuid.New(),
			ChatId:    chat.Id,
			UserId:    userID,
			Active:    true,
			CreatedAt: time.Now(),
		}
		if err := uow.ChatParticipantRepository().Create(ctx, participant); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return chatToResponse(chat, 0), nil
}

func (s *chatService) GetChat(ctx context.Context, chatID, userID uuid.UUID) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.requireActiveParticipant(ctx, uow, chatID, userID); err != nil {
		return nil, err
	}

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: chatID})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, serverutils.NewNotFoundError("Chat not found")
	}

	unread, err := s.unreadCount(ctx, uow, chatID, userID)
	if err != nil {
		return nil, err
	}
	return chatToResponse(chat, unread), nil
}

// ListChats returns the chats the user is an active participant of, with
// unread counts, most recently active first.
func (s *chatService) ListChats(ctx context.Context, userID uuid.UUID) ([]dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	memberships, err := uow.ChatParticipantRepository().FindAll(ctx,
		specification.ByUserID{UserID: userID},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return []dto.ChatResponse{}, nil
	}

	chatIDs := make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		chatIDs = append(chatIDs, m.ChatId)
	}

	chats, err := uow.ChatRepository().FindAll(ctx, specification.ByIDs{IDs: chatIDs})
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ChatResponse, 0, len(chats))
	for _, chat := range chats {
		unread, err := s.unreadCount(ctx, uow, chat.Id, userID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *chatToResponse(chat, unread))
	}

	sort.SliceStable(responses, func(i, j int) bool {
		return lastActivity(responses[i]).After(lastActivity(responses[j]))
	})

	return responses, nil
}

func (s *chatService) GetMessages(ctx context.Context, chatID, userID uuid.UUID, limit, offset int) ([]dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.requireActiveParticipant(ctx, uow, chatID, userID); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatID{ChatID: chatID},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, messageToResponse(m))
	}
	return responses, nil
}

// SendMessage persists a message from an active participant and bumps the
// chat's last-message timestamp. Non-participants and deactivated
// participants are rejected before anything is written. Websocket fan-out
// and the bus event happen after commit and never fail the request; a
// client that misses the push recovers through the paginated history.
func (s *chatService) SendMessage(ctx context.Context, chatID, senderID uuid.UUID, content string) (*dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.requireActiveParticipant(ctx, uow, chatID, senderID); err != nil {
		return nil, err
	}

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: chatID})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, serverutils.NewNotFoundError("Chat not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	msg := &entity.ChatMessage{
		Id:        uuid.New(),
		ChatId:    chatID,
		SenderId:  senderID,
		Content:   content,
		CreatedAt: now,
	}
	if err := uow.ChatMessageRepository().Create(ctx, msg); err != nil {
		return nil, err
	}

	chat.LastMessageAt = &now
	if err := uow.ChatRepository().Update(ctx, chat); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	response := messageToResponse(msg)

	participants, err := uow.ChatParticipantRepository().FindAll(ctx,
		specification.ByChatID{ChatID: chatID},
		specification.ActiveOnly{},
	)
	if err != nil {
		participants = nil
	}

	recipientIDs := make([]interface{}, 0, len(participants))
	for _, p := range participants {
		if s.delivery != nil {
			s.delivery.Send(p.UserId, "chat_message", response)
		}
		if p.UserId != senderID {
			recipientIDs = append(recipientIDs, p.UserId.String())
		}
	}

	if s.eventPublisher != nil {
		event := events.NewEvent(events.ChatMessageSent, map[string]interface{}{
			"chat_id":       chatID.String(),
			"event_id":      chat.EventId.String(),
			"sender_id":     senderID.String(),
			"recipient_ids": recipientIDs,
			"entity_type":   "chat",
			"entity_id":     chatID.String(),
		})
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			fmt.Printf("[WARN] Failed to publish %s event: %v\n", events.ChatMessageSent, err)
		}
	}

	return &response, nil
}

// MarkRead moves the user's read checkpoint to now. Deactivated or
// unknown participants are a silent no-op: marking as read grants
// nothing, so there is no reason to fail the caller.
func (s *chatService) MarkRead(ctx context.Context, chatID, userID uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	participant, err := uow.ChatParticipantRepository().FindOne(ctx,
		specification.ByChatID{ChatID: chatID},
		specification.ByUserID{UserID: userID},
	)
	if err != nil {
		return err
	}
	if participant == nil || !participant.Active {
		return nil
	}

	now := time.Now()
	status, err := uow.ReadStatusRepository().FindOne(ctx,
		specification.ByChatID{ChatID: chatID},
		specification.ByUserID{UserID: userID},
	)
	if err != nil {
		return err
	}

	if status == nil {
		return uow.ReadStatusRepository().Create(ctx, &entity.ReadStatus{
			Id:         uuid.New(),
			ChatId:     chatID,
			UserId:     userID,
			LastReadAt: now,
			CreatedAt:  now,
		})
	}

	status.LastReadAt = now
	status.UpdatedAt = &now
	return uow.ReadStatusRepository().Update(ctx, status)
}

// UnreadChatCount counts chats with at least one unread message, not the
// total number of unread messages. Drives the global badge.
func (s *chatService) UnreadChatCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	memberships, err := uow.ChatParticipantRepository().FindAll(ctx,
		specification.ByUserID{UserID: userID},
		specification.ActiveOnly{},
	)
	if err != nil {
		return 0, err
	}

	var count int64
	for _, m := range memberships {
		unread, err := s.unreadCount(ctx, uow, m.ChatId, userID)
		if err != nil {
			return 0, err
		}
		if unread > 0 {
			count++
		}
	}
	return count, nil
}

func (s *chatService) GetParticipants(ctx context.Context, chatID, userID uuid.UUID) ([]dto.ChatParticipantResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.requireActiveParticipant(ctx, uow, chatID, userID); err != nil {
		return nil, err
	}

	participants, err := uow.ChatParticipantRepository().FindAll(ctx,
		specification.ByChatID{ChatID: chatID},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uuid.UUID, 0, len(participants))
	for _, p := range participants {
		userIDs = append(userIDs, p.UserId)
	}

	users, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: userIDs})
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		names[u.Id] = u.FullName
	}

	responses := make([]dto.ChatParticipantResponse, 0, len(participants))
	for _, p := range participants {
		responses = append(responses, dto.ChatParticipantResponse{
			UserId:   p.UserId,
			FullName: names[p.UserId],
		})
	}
	return responses, nil
}

// SyncParticipants reconciles membership of every chat of an event against
// the current roster. For each chat the expected set is the organizer, the
// staff and the chat's initiator. Missing rows are created active,
// deactivated rows of expected users are re-activated, and active rows of
// users no longer expected are deactivated. The initiator is never
// deactivated. Idempotent: a second run with the same roster writes
// nothing. An event without chats is a no-op.
func (s *chatService) SyncParticipants(ctx context.Context, eventID, organizerID uuid.UUID, staffIDs []uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chats, err := uow.ChatRepository().FindAll(ctx, specification.ByEventID{EventID: eventID})
	if err != nil {
		return err
	}
	if len(chats) == 0 {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	for _, chat := range chats {
		expected := map[uuid.UUID]bool{
			organizerID:      true,
			chat.InitiatorId: true,
		}
		for _, id := range staffIDs {
			expected[id] = true
		}

		existing, err := uow.ChatParticipantRepository().FindAll(ctx,
			specification.ByChatID{ChatID: chat.Id},
		)
		if err != nil {
			return err
		}

		now := time.Now()
		byUser := make(map[uuid.UUID]*entity.ChatParticipant, len(existing))
		for _, p := range existing {
			byUser[p.UserId] = p
		}

		for userID := range expected {
			participant, ok := byUser[userID]
			if !ok {
				err := uow.ChatParticipantRepository().Create(ctx, &entity.ChatParticipant{
					Id:        uuid.New(),
					ChatId:    chat.Id,
					UserId:    userID,
					Active:    true,
					CreatedAt: now,
				})
				if err != nil {
					return err
				}
				continue
			}
			if !participant.Active {
				participant.Active = true
				participant.UpdatedAt = &now
				if err := uow.ChatParticipantRepository().Update(ctx, participant); err != nil {
					return err
				}
			}
		}

		for userID, participant := range byUser {
			if expected[userID] || !participant.Active {
				continue
			}
			participant.Active = false
			participant.UpdatedAt = &now
			if err := uow.ChatParticipantRepository().Update(ctx, participant); err != nil {
				return err
			}
		}
	}

	return uow.Commit()
}

// requireActiveParticipant is the hard authorization gate shared by send,
// history and participant reads.
func (s *chatService) requireActiveParticipant(ctx context.Context, uow unitofwork.UnitOfWork, chatID, userID uuid.UUID) (*entity.ChatParticipant, error) {
	participant, err := uow.ChatParticipantRepository().FindOne(ctx,
		specification.ByChatID{ChatID: chatID},
		specification.ByUserID{UserID: userID},
	)
	if err != nil {
		return nil, err
	}
	if participant == nil || !participant.Active {
		return nil, serverutils.NewUnauthorizedError("Not an active participant of this chat")
	}
	return participant, nil
}

// unreadCount counts messages created strictly after the user's last-read
// checkpoint, excluding the user's own messages. A user with no ReadStatus
// row has read nothing, so the checkpoint is the epoch.
func (s *chatService) unreadCount(ctx context.Context, uow unitofwork.UnitOfWork, chatID, userID uuid.UUID) (int64, error) {
	status, err := uow.ReadStatusRepository().FindOne(ctx,
		specification.ByChatID{ChatID: chatID},
		specification.ByUserID{UserID: userID},
	)
	if err != nil {
		return 0, err
	}

	lastRead := time.Unix(0, 0)
	if status != nil {
		lastRead = status.LastReadAt
	}

	return uow.ChatMessageRepository().Count(ctx,
		specification.ByChatID{ChatID: chatID},
		specification.SentAfter{After: lastRead},
		specification.SenderNot{UserID: userID},
	)
}

func chatToResponse(chat *entity.Chat, unread int64) *dto.ChatResponse {
	return &dto.ChatResponse{
		Id:            chat.Id,
		EventId:       chat.EventId,
		InitiatorId:   chat.InitiatorId,
		UnreadCount:   unread,
		LastMessageAt: chat.LastMessageAt,
		CreatedAt:     chat.CreatedAt,
	}
}

func messageToResponse(m *entity.ChatMessage) dto.ChatMessageResponse {
	return dto.ChatMessageResponse{
		Id:        m.Id,
		ChatId:    m.ChatId,
		SenderId:  m.SenderId,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func lastActivity(c dto.ChatResponse) time.Time {
	if c.LastMessageAt != nil {
		return *c.LastMessageAt
	}
	return c.CreatedAt
}
