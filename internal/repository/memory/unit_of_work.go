package memory

import (
	"context"

	"getscience-be/internal/repository/contract"
	"getscience-be/internal/repository/unitofwork"
)

// UnitOfWork shares one repository set across Begin/Commit cycles.
// Transactions are not simulated; Begin and Commit are no-ops and
// Rollback leaves writes in place, which is fine for the happy-path
// service tests this package backs.
type UnitOfWork struct {
	Users        *UserRepository
	Events       *EventRepository
	Applications *ApplicationRepository
	Chats        *ChatRepository
	Participants *ChatParticipantRepository
	Messages     *ChatMessageRepository
	ReadStatuses *ReadStatusRepository
}

func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{
		Users:        NewUserRepository(),
		Events:       NewEventRepository(),
		Applications: NewApplicationRepository(),
		Chats:        NewChatRepository(),
		Participants: NewChatParticipantRepository(),
		Messages:     NewChatMessageRepository(),
		ReadStatuses: NewReadStatusRepository(),
	}
}

func (u *UnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *UnitOfWork) Commit() error                   { return nil }
func (u *UnitOfWork) Rollback() error                 { return nil }

func (u *UnitOfWork) UserRepository() contract.UserRepository { return u.Users }
func (u *UnitOfWork) EventRepository() contract.EventRepository {
	return u.Events
}
func (u *UnitOfWork) ApplicationRepository() contract.ApplicationRepository {
	return u.Applications
}
func (u *UnitOfWork) ChatRepository() contract.ChatRepository { return u.Chats }
func (u *UnitOfWork) ChatParticipantRepository() contract.ChatParticipantRepository {
	return u.Participants
}
func (u *UnitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return u.Messages
}
func (u *UnitOfWork) ReadStatusRepository() contract.ReadStatusRepository {
	return u.ReadStatuses
}

// Factory hands out the same unit of work every time so tests can seed
// state through the repositories and then exercise a service.
type Factory struct {
	UoW *UnitOfWork
}

func NewFactory() *Factory {
	return &Factory{UoW: NewUnitOfWork()}
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.UoW
}

var (
	_ unitofwork.UnitOfWork        = (*UnitOfWork)(nil)
	_ unitofwork.RepositoryFactory = (*Factory)(nil)
)
