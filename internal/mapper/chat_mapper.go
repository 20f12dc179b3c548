package mapper

import (
	"time"

	"getscience-be/internal/entity"
	"getscience-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ChatToEntity(c *model.Chat) *entity.Chat {
	if c == nil {
		return nil
	}

	return &entity.Chat{
		Id:            c.Id,
		EventId:       c.EventId,
		InitiatorId:   c.InitiatorId,
		LastMessageAt: c.LastMessageAt,
		CreatedAt:     c.CreatedAt,
	}
}

func (m *ChatMapper) ChatToModel(c *entity.Chat) *model.Chat {
	if c == nil {
		return nil
	}

	return &model.Chat{
		Id:            c.Id,
		EventId:       c.EventId,
		InitiatorId:   c.InitiatorId,
		LastMessageAt: c.LastMessageAt,
		CreatedAt:     c.CreatedAt,
	}
}

func (m *ChatMapper) ParticipantToEntity(p *model.ChatParticipant) *entity.ChatParticipant {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatParticipant{
		Id:        p.Id,
		ChatId:    p.ChatId,
		UserId:    p.UserId,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *ChatMapper) ParticipantToModel(p *entity.ChatParticipant) *model.ChatParticipant {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.ChatParticipant{
		Id:        p.Id,
		ChatId:    p.ChatId,
		UserId:    p.UserId,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *ChatMapper) MessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	return &entity.ChatMessage{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		SenderId:  msg.SenderId,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	return &model.ChatMessage{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		SenderId:  msg.SenderId,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) ReadStatusToEntity(r *model.ReadStatus) *entity.ReadStatus {
	if r == nil {
		return nil
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.ReadStatus{
		Id:         r.Id,
		ChatId:     r.ChatId,
		UserId:     r.UserId,
		LastReadAt: r.LastReadAt,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *ChatMapper) ReadStatusToModel(r *entity.ReadStatus) *model.ReadStatus {
	if r == nil {
		return nil
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.ReadStatus{
		Id:         r.Id,
		ChatId:     r.ChatId,
		UserId:     r.UserId,
		LastReadAt: r.LastReadAt,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}
