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

// In-memory chat repositories for service-level tests. They interpret the
// same specifications the gorm implementations receive, so services can run
// unchanged against them.

type ChatRepository struct {
	mu    sync.RWMutex
	chats map[uuid.UUID]entity.Chat
}

func NewChatRepository() *ChatRepository {
	return &ChatRepository{chats: make(map[uuid.UUID]entity.Chat)}
}

func (r *ChatRepository) Create(ctx context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if chat.Id == uuid.Nil {
		chat.Id = uuid.New()
	}
	if chat.CreatedAt.IsZero() {
		chat.CreatedAt = time.Now()
	}
	for _, c := range r.chats {
		if c.EventId == chat.EventId && c.InitiatorId == chat.InitiatorId {
			return fmt.Errorf("duplicate chat for event %s and initiator %s", chat.EventId, chat.InitiatorId)
		}
	}
	r.chats[chat.Id] = *chat
	return nil
}

func (r *ChatRepository) Update(ctx context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chats[chat.Id] = *chat
	return nil
}

func (r *ChatRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.chats, id)
	return nil
}

func (r *ChatRepository) match(c entity.Chat, f filters) bool {
	if f.id != nil && c.Id != *f.id {
		return false
	}
	if len(f.ids) > 0 && !containsID(f.ids, c.Id) {
		return false
	}
	if f.eventID != nil && c.EventId != *f.eventID {
		return false
	}
	if f.initiatorID != nil && c.InitiatorId != *f.initiatorID {
		return false
	}
	return true
}

func (r *ChatRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f := collect(specs...)
	for _, c := range r.chats {
		if r.match(c, f) {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

func (r *ChatRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f := collect(specs...)
	var result []*entity.Chat
	for _, c := range r.chats {
		if r.match(c, f) {
			out := c
			result = append(result, &out)
		}
	}
	sortByCreatedAt(result, func(c *entity.Chat) time.Time { return c.CreatedAt }, f.orderDesc)
	return page(result, f), nil
}

func (r *ChatRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

type ChatParticipantRepository struct {
	mu           sync.RWMutex
	participants map[uuid.UUID]entity.ChatParticipant
}

func NewChatParticipantRepository() *ChatParticipantRepository {
	return &ChatParticipantRepository{participants: make(map[uuid.UUID]entity.ChatParticipant)}
}

func (r *ChatParticipantRepository) Create(ctx context.Context, p *entity.ChatParticipant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.Id == uuid.Nil {
		p.Id = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	for _, e := range r.participants {
		if e.ChatId == p.ChatId && e.UserId == p.UserId {
			return fmt.Errorf("duplicate participant %s in chat %s", p.UserId, p.ChatId)
		}
	}
	r.participants[p.Id] = *p
	return nil
}

func (r *ChatParticipantRepository) Update(ctx context.Context, p *entity.ChatParticipant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.participants[p.Id] = *p
	return nil
}

func (r *ChatParticipantRepository) DeleteByChatId(ctx context.Context, chatId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.participants {
		if p.ChatId == chatId {
			delete(r.participants, id)
		}
	}
	return nil
}

func (r *ChatParticipantRepository) match(p entity.ChatParticipant, f filters) bool {
	if f.id != nil && p.Id != *f.id {
		return false
	}
	if f.chatID != nil && p.ChatId != *f.chatID {
		return false
	}
	if len(f.chatIDs) > 0 && !containsID(f.chatIDs, p.ChatId) {
		return false
	}
	if f.userID != nil && p.UserId != *f.userID {
		return false
	}
	if f.activeOnly && !p.Active {
		return false
	}
	return true
}

func (r *ChatParticipantRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatParticipant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f := collect(specs...)
	for _, p := range r.participants {
		if r.match(p, f) {
			out := p
			return &out, nil
		}
	}
	return nil, nil
}

func (r *ChatParticipantRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatParticipant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f := collect(specs...)
	var result []*entity.ChatParticipant
	for _, p := range r.participants {
		if r.match(p, f) {
			out := p
			result = append(result, &out)
		}
	}
	sortByCreatedAt(result, func(p *entity.ChatParticipant) time.Time { return p.CreatedAt }, f.orderDesc)
	return page(result, f), nil
}

func (r *ChatParticipantRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

type ChatMessageRepository struct {
	mu       sync.RWMutex
	messages map[uuid.UUID]entity.ChatMessage
}

func NewChatMessageRepository() *ChatMessageRepository {
	return &ChatMessageRepository{messages: make(map[uuid.UUID]entity.ChatMessage)}
}

func (r *ChatMessageRepository) Create(ctx context.Context, m *entity.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.messages[m.Id] = *m
	return nil
}

func (r *ChatMessageRepository) DeleteByChatId(ctx context.Context, chatId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, m := range r.messages {
		if m.ChatId == chatId {
			delete(r.messages, id)
		}
	}
	return nil
}

func (r *ChatMessageRepository) match(m entity.ChatMessage, f filters) bool {
	if f.chatID != nil && m.ChatId != *f.chatID {
		return false
	}
	if f.sentAfter != nil && !m.CreatedAt.After(*f.sentAfter) {
		return false
	}
	if f.senderNot != nil && m.SenderId == *f.senderNot {
		return false
	}
	return true
}

func (r *ChatMessageRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f := collect(specs...)
	var result []*entity.ChatMessage
	for _, m := range r.messages {
		if r.match(m, f) {
			out := m
			result = append(result, &out)
		}
	}
	sortByCreatedAt(result, func(m *entity.ChatMessage) time.Time { return m.CreatedAt }, f.orderDesc)
	return page(result, f), nil
}

func (r *ChatMessageRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

type ReadStatusRepository struct {
	mu       sync.RWMutex
	statuses map[uuid.UUID]entity.ReadStatus
}

func NewReadStatusRepository() *ReadStatusRepository {
	return &ReadStatusRepository{statuses: make(map[uuid.UUID]entity.ReadStatus)}
}

func (r *ReadStatusRepository) Create(ctx context.Context, s *entity.ReadStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.Id == uuid.Nil {
		s.Id = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	for _, e := range r.statuses {
		if e.ChatId == s.ChatId && e.UserId == s.UserId {
			return fmt.Errorf("duplicate read status for user %s in chat %s", s.UserId, s.ChatId)
		}
	}
	r.statuses[s.Id] = *s
	return nil
}

func (r *ReadStatusRepository) Update(ctx context.Context, s *entity.ReadStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[s.Id] = *s
	return nil
}

func (r *ReadStatusRepository) DeleteByChatId(ctx context.Context, chatId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.statuses {
		if s.ChatId == chatId {
			delete(r.statuses, id)
		}
	}
	return nil
}

func (r *ReadStatusRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReadStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f := collect(specs...)
	for _, s := range r.statuses {
		if f.chatID != nil && s.ChatId != *f.chatID {
			continue
		}
		if f.userID != nil && s.UserId != *f.userID {
			continue
		}
		out := s
		return &out, nil
	}
	return nil, nil
}

var (
	_ contract.ChatRepository            = (*ChatRepository)(nil)
	_ contract.ChatParticipantRepository = (*ChatParticipantRepository)(nil)
	_ contract.ChatMessageRepository     = (*ChatMessageRepository)(nil)
	_ contract.ReadStatusRepository      = (*ReadStatusRepository)(nil)
)
