package unitofwork

import (
	"context"

	"getscience-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	EventRepository() contract.EventRepository
	ApplicationRepository() contract.ApplicationRepository

	ChatRepository() contract.ChatRepository
	ChatParticipantRepository() contract.ChatParticipantRepository
	ChatMessageRepository() contract.ChatMessageRepository
	ReadStatusRepository() contract.ReadStatusRepository
}
