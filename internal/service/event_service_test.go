package service

import (
	"context"
	"testing"
	"time"

	"getscience-be/internal/dto"
	"getscience-be/internal/entity"
	"getscience-be/internal/pkg/serverutils"
	"getscience-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventServiceForTest(factory *memory.Factory) (IEventService, IChatService) {
	chatSvc := NewChatService(factory, nil, nil)
	eventSvc := NewEventService(factory, nil, chatSvc, nil, nil, nil)
	return eventSvc, chatSvc
}

func createEventRequest() *dto.CreateEventRequest {
	return &dto.CreateEventRequest{
		Title:               "Synthetic Biology Workshop",
		Description:         "Two days of wet lab practice",
		Location:            "Berlin",
		StartsAt:            time.Now().Add(14 * 24 * time.Hour),
		EndsAt:              time.Now().Add(15 * 24 * time.Hour),
		ApplicationDeadline: time.Now().Add(7 * 24 * time.Hour),
	}
}

func TestEventLifecycle(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewFactory()
	svc, _ := newEventServiceForTest(factory)

	organizerID := uuid.New()

	created, err := svc.CreateEvent(ctx, organizerID, createEventRequest())
	require.NoError(t, err)
	assert.Equal(t, string(entity.EventStatusDraft), created.Status)

	t.Run("draft is invisible to the public listing", func(t *testing.T) {
		published, err := svc.ListPublishedEvents(ctx)
		require.NoError(t, err)
		assert.Empty(t, published)
	})

	t.Run("publish is owner-only", func(t *testing.T) {
		_, err := svc.PublishEvent(ctx, uuid.New(), created.Id)
		require.Error(t, err)
		appErr, ok := err.(*serverutils.AppError)
		require.True(t, ok)
		assert.Equal(t, 403, appErr.StatusCode)
	})

	t.Run("publish", func(t *testing.T) {
		published, err := svc.PublishEvent(ctx, organizerID, created.Id)
		require.NoError(t, err)
		assert.Equal(t, string(entity.EventStatusPublished), published.Status)

		listing, err := svc.ListPublishedEvents(ctx)
		require.NoError(t, err)
		assert.Len(t, listing, 1)
	})

	t.Run("publish twice is idempotent", func(t *testing.T) {
		again, err := svc.PublishEvent(ctx, organizerID, created.Id)
		require.NoError(t, err)
		assert.Equal(t, string(entity.EventStatusPublished), again.Status)
	})

	t.Run("cancel removes the event from the listing", func(t *testing.T) {
		cancelled, err := svc.CancelEvent(ctx, organizerID, created.Id)
		require.NoError(t, err)
		assert.Equal(t, string(entity.EventStatusCancelled), cancelled.Status)

		listing, err := svc.ListPublishedEvents(ctx)
		require.NoError(t, err)
		assert.Empty(t, listing)
	})

	t.Run("a cancelled event cannot be re-published", func(t *testing.T) {
		_, err := svc.PublishEvent(ctx, organizerID, created.Id)
		require.Error(t, err)
	})
}

func TestUpdateStaffSyncsChatRosters(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewFactory()
	svc, chatSvc := newEventServiceForTest(factory)

	organizerID := uuid.New()
	applicantID := uuid.New()
	reviewerID := uuid.New()

	created, err := svc.CreateEvent(ctx, organizerID, createEventRequest())
	require.NoError(t, err)
	_, err = svc.PublishEvent(ctx, organizerID, created.Id)
	require.NoError(t, err)

	chat, err := chatSvc.GetOrCreateChat(ctx, created.Id, applicantID)
	require.NoError(t, err)

	t.Run("organizer cannot be listed as staff", func(t *testing.T) {
		_, err := svc.UpdateStaff(ctx, organizerID, &dto.UpdateStaffRequest{
			EventId: created.Id,
			Staff:   []dto.StaffMember{{UserId: organizerID, Role: "reviewer"}},
		})
		require.Error(t, err)
	})

	t.Run("duplicate staff entries are rejected", func(t *testing.T) {
		_, err := svc.UpdateStaff(ctx, organizerID, &dto.UpdateStaffRequest{
			EventId: created.Id,
			Staff: []dto.StaffMember{
				{UserId: reviewerID, Role: "reviewer"},
				{UserId: reviewerID, Role: "coowner"},
			},
		})
		require.Error(t, err)
	})

	t.Run("new staff joins existing chats", func(t *testing.T) {
		_, err := svc.UpdateStaff(ctx, organizerID, &dto.UpdateStaffRequest{
			EventId: created.Id,
			Staff:   []dto.StaffMember{{UserId: reviewerID, Role: "reviewer"}},
		})
		require.NoError(t, err)

		participants, err := chatSvc.GetParticipants(ctx, chat.Id, reviewerID)
		require.NoError(t, err)
		assert.Len(t, participants, 3)
	})

	t.Run("removed staff loses chat access", func(t *testing.T) {
		_, err := svc.UpdateStaff(ctx, organizerID, &dto.UpdateStaffRequest{
			EventId: created.Id,
			Staff:   []dto.StaffMember{},
		})
		require.NoError(t, err)

		_, err = chatSvc.GetParticipants(ctx, chat.Id, reviewerID)
		require.Error(t, err)
	})
}

func TestDeleteEventTeardown(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewFactory()
	svc, chatSvc := newEventServiceForTest(factory)

	organizerID := uuid.New()
	applicantID := uuid.New()

	created, err := svc.CreateEvent(ctx, organizerID, createEventRequest())
	require.NoError(t, err)
	_, err = svc.PublishEvent(ctx, organizerID, created.Id)
	require.NoError(t, err)

	chat, err := chatSvc.GetOrCreateChat(ctx, created.Id, applicantID)
	require.NoError(t, err)
	_, err = chatSvc.SendMessage(ctx, chat.Id, applicantID, "question about housing")
	require.NoError(t, err)
	require.NoError(t, chatSvc.MarkRead(ctx, chat.Id, applicantID))

	t.Run("only the organizer may delete", func(t *testing.T) {
		err := svc.DeleteEvent(ctx, applicantID, created.Id)
		require.Error(t, err)
	})

	t.Run("delete removes the event and all chat data", func(t *testing.T) {
		require.NoError(t, svc.DeleteEvent(ctx, organizerID, created.Id))

		_, err := svc.GetEvent(ctx, created.Id)
		require.Error(t, err)

		chats, err := factory.UoW.Chats.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, chats)

		messages, err := factory.UoW.Messages.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, messages)

		participants, err := factory.UoW.Participants.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, participants)
	})
}
