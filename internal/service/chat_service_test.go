package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"getscience-be/internal/entity"
	"getscience-be/internal/pkg/serverutils"
	"getscience-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deliveryRecorder captures websocket pushes so fan-out can be asserted.
type deliveryRecorder struct {
	mu   sync.Mutex
	sent []recordedPush
}

type recordedPush struct {
	UserID      uuid.UUID
	MessageType string
}

func (d *deliveryRecorder) Send(userID uuid.UUID, messageType string, data interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, recordedPush{UserID: userID, MessageType: messageType})
}

func (d *deliveryRecorder) recipients() []uuid.UUID {
	d.mu.Lock()
	defer d.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(d.sent))
	for _, p := range d.sent {
		ids = append(ids, p.UserID)
	}
	return ids
}

func seedEvent(t *testing.T, factory *memory.Factory, organizerID uuid.UUID) *entity.Event {
	t.Helper()
	event := &entity.Event{
		Id:                  uuid.New(),
		OrganizerId:         organizerID,
		Title:               "Quantum Computing Summit",
		Status:              entity.EventStatusPublished,
		StartsAt:            time.Now().Add(48 * time.Hour),
		EndsAt:              time.Now().Add(72 * time.Hour),
		ApplicationDeadline: time.Now().Add(24 * time.Hour),
		CreatedAt:           time.Now(),
	}
	require.NoError(t, factory.UoW.Events.Create(context.Background(), event))
	return event
}

func TestGetOrCreateChat(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewFactory()
	svc := NewChatService(factory, nil, nil)

	organizerID := uuid.New()
	applicantID := uuid.New()
	event := seedEvent(t, factory, organizerID)

	t.Run("creates chat with initiator and organizer", func(t *testing.T) {
		chat, err := svc.GetOrCreateChat(ctx, event.Id, applicantID)
		require.NoError(t, err)
		assert.Equal(t, event.Id, chat.EventId)
		assert.Equal(t, applicantID, chat.InitiatorId)
		assert.EqualValues(t, 0, chat.UnreadCount)

		participants, err := svc.GetParticipants(ctx, chat.Id, applicantID)
		require.NoError(t, err)
		assert.Len(t, participants, 2)
	})

	t.Run("second call returns the same chat", func(t *testing.T) {
		first, err := svc.GetOrCreateChat(ctx, event.Id, applicantID)
		require.NoError(t, err)
		second, err := svc.GetOrCreateChat(ctx, event.Id, applicantID)
		require.NoError(t, err)
		assert.Equal(t, first.Id, second.Id)

		chats, err := factory.UoW.Chats.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, chats, 1)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := svc.GetOrCreateChat(ctx, uuid.New(), applicantID)
		require.Error(t, err)
		appErr, ok := err.(*serverutils.AppError)
		require.True(t, ok)
		assert.Equal(t, 404, appErr.StatusCode)
	})
}

func TestSendMessageAuthorization(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewFactory()
	svc := NewChatService(factory, nil, nil)

	organizerID := uuid.New()
	applicantID := uuid.New()
	outsiderID := uuid.New()
	event := seedEvent(t, factory, organizerID)

	chat, err := svc.GetOrCreateChat(ctx, event.Id, applicantID)
	require.NoError(t, err)

	t.Run("non-participant is rejected and nothing is written", func(t *testing.T) {
		_, err := svc.SendMessage(ctx, chat.Id, outsiderID, "let me in")
		require.Error(t, err)
		appErr, ok := err.(*serverutils.AppError)
		require.True(t, ok)
		assert.Equal(t, 401, appErr.StatusCode)

		count, err := factory.UoW.Messages.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 0, count)
	})

	t.Run("deactivated participant is rejected", func(t *testing.T) {
		require.NoError(t, svc.SyncParticipants(ctx, event.Id, organizerID, []uuid.UUID{outsiderID}))
		require.NoError(t, svc.SyncParticipants(ctx, event.Id, organizerID, nil))

		_, err := svc.SendMessage(ctx, chat.Id, outsiderID, "still here?")
		require.Error(t, err)
		appErr, ok := err.(*serverutils.AppError)
		require.True(t, ok)
		assert.Equal(t, 401, appErr.StatusCode)
	})

	t.Run("history and participants are gated the same way", func(t *testing.T) {
		_, err := svc.GetMessages(ctx, chat.Id, outsiderID, 10, 0)
		require.Error(t, err)
		_, err = svc.GetParticipants(ctx, chat.Id, outsiderID)
		require.Error(t, err)
	})
}

func TestSendMessageFanOut(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewFactory()
	recorder := &deliveryRecorder{}
	svc := NewChatService(factory, recorder, nil)

	organizerID := uuid.New()
	applicantID := uuid.New()
	event := seedEvent(t, factory, organizerID)

	chat, err := svc.GetOrCreateChat(ctx, event.Id, applicantID)
	require.NoError(t, err)

	msg, err := svc.SendMessage(ctx, chat.Id, applicantID, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Content)
	assert.Equal(t, applicantID, msg.SenderId)

	// Both active participants get the push, sender included.
	assert.ElementsMatch(t, []uuid.UUID{applicantID, organizerID}, recorder.recipients())

	refreshed, err := svc.GetChat(ctx, chat.Id, applicantID)
	require.NoError(t, err)
	require.NotNil(t, refreshed.LastMessageAt)
}

func TestUnreadFlow(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewFactory()
	svc := NewChatService(factory, nil, nil)

	organizerID := uuid.New()
	applicantID := uuid.New()
	event := seedEvent(t, factory, organizerID)

	chat, err := svc.GetOrCreateChat(ctx, event.Id, applicantID)
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, chat.Id, organizerID, "we received your application")
	require.NoError(t, err)

	t.Run("own messages never count as unread", func(t *testing.T) {
		fromSender, err := svc.GetChat(ctx, chat.Id, organizerID)
		require.NoError(t, err)
		assert.EqualValues(t, 0, fromSender.UnreadCount)
	})

	t.Run("recipient sees the unread message", func(t *testing.T) {
		fromRecipient, err := svc.GetChat(ctx, chat.Id, applicantID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, fromRecipient.UnreadCount)

		count, err := svc.UnreadChatCount(ctx, applicantID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("mark read resets the counter", func(t *testing.T) {
		require.NoError(t, svc.MarkRead(ctx, chat.Id, applicantID))

		fromRecipient, err := svc.GetChat(ctx, chat.Id, applicantID)
		require.NoError(t, err)
		assert.EqualValues(t, 0, fromRecipient.UnreadCount)

		count, err := svc.UnreadChatCount(ctx, applicantID)
		require.NoError(t, err)
		assert.EqualValues(t, 0, count)
	})

	t.Run("mark read by a stranger is a silent no-op", func(t *testing.T) {
		assert.NoError(t, svc.MarkRead(ctx, chat.Id, uuid.New()))
	})

	t.Run("badge counts chats not messages", func(t *testing.T) {
		_, err = svc.SendMessage(ctx, chat.Id, organizerID, "one")
		require.NoError(t, err)
		_, err = svc.SendMessage(ctx, chat.Id, organizerID, "two")
		require.NoError(t, err)

		count, err := svc.UnreadChatCount(ctx, applicantID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})
}

func TestSyncParticipants(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewFactory()
	svc := NewChatService(factory, nil, nil)

	organizerID := uuid.New()
	applicantID := uuid.New()
	staffID := uuid.New()
	event := seedEvent(t, factory, organizerID)

	chat, err := svc.GetOrCreateChat(ctx, event.Id, applicantID)
	require.NoError(t, err)

	activeUsers := func() []uuid.UUID {
		participants, err := svc.GetParticipants(ctx, chat.Id, applicantID)
		require.NoError(t, err)
		ids := make([]uuid.UUID, 0, len(participants))
		for _, p := range participants {
			ids = append(ids, p.UserId)
		}
		return ids
	}

	t.Run("new staff member is added", func(t *testing.T) {
		require.NoError(t, svc.SyncParticipants(ctx, event.Id, organizerID, []uuid.UUID{staffID}))
		assert.ElementsMatch(t, []uuid.UUID{applicantID, organizerID, staffID}, activeUsers())
	})

	t.Run("idempotent on repeat", func(t *testing.T) {
		require.NoError(t, svc.SyncParticipants(ctx, event.Id, organizerID, []uuid.UUID{staffID}))
		assert.ElementsMatch(t, []uuid.UUID{applicantID, organizerID, staffID}, activeUsers())

		all, err := factory.UoW.Participants.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("removed staff is deactivated not deleted", func(t *testing.T) {
		require.NoError(t, svc.SyncParticipants(ctx, event.Id, organizerID, nil))
		assert.ElementsMatch(t, []uuid.UUID{applicantID, organizerID}, activeUsers())

		all, err := factory.UoW.Participants.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("returning staff is re-activated on the same row", func(t *testing.T) {
		before, err := factory.UoW.Participants.FindAll(ctx)
		require.NoError(t, err)

		require.NoError(t, svc.SyncParticipants(ctx, event.Id, organizerID, []uuid.UUID{staffID}))
		assert.ElementsMatch(t, []uuid.UUID{applicantID, organizerID, staffID}, activeUsers())

		after, err := factory.UoW.Participants.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})

	t.Run("initiator survives every roster", func(t *testing.T) {
		require.NoError(t, svc.SyncParticipants(ctx, event.Id, organizerID, nil))
		assert.Contains(t, activeUsers(), applicantID)
	})

	t.Run("event without chats is a no-op", func(t *testing.T) {
		other := seedEvent(t, factory, organizerID)
		assert.NoError(t, svc.SyncParticipants(ctx, other.Id, organizerID, []uuid.UUID{staffID}))
	})
}

func TestListChatsOrdering(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewFactory()
	svc := NewChatService(factory, nil, nil)

	organizerID := uuid.New()
	firstApplicant := uuid.New()
	secondApplicant := uuid.New()
	event := seedEvent(t, factory, organizerID)

	first, err := svc.GetOrCreateChat(ctx, event.Id, firstApplicant)
	require.NoError(t, err)
	second, err := svc.GetOrCreateChat(ctx, event.Id, secondApplicant)
	require.NoError(t, err)

	// Activity in the first chat should float it to the top.
	time.Sleep(5 * time.Millisecond)
	_, err = svc.SendMessage(ctx, first.Id, firstApplicant, "bump")
	require.NoError(t, err)

	chats, err := svc.ListChats(ctx, organizerID)
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, first.Id, chats[0].Id)
	assert.Equal(t, second.Id, chats[1].Id)
}

func TestGetMessagesPagination(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewFactory()
	svc := NewChatService(factory, nil, nil)

	organizerID := uuid.New()
	applicantID := uuid.New()
	event := seedEvent(t, factory, organizerID)

	chat, err := svc.GetOrCreateChat(ctx, event.Id, applicantID)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := svc.SendMessage(ctx, chat.Id, applicantID, "msg")
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	page, err := svc.GetMessages(ctx, chat.Id, applicantID, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	// Newest first.
	assert.True(t, page[0].CreatedAt.After(page[1].CreatedAt) || page[0].CreatedAt.Equal(page[1].CreatedAt))

	rest, err := svc.GetMessages(ctx, chat.Id, applicantID, 10, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 3)
}
