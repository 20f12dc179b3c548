package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"getscience-be/internal/dto"
	"getscience-be/internal/entity"
	"getscience-be/internal/pkg/serverutils"
	"getscience-be/internal/repository/memory"
	"getscience-be/pkg/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPublishedEvent(t *testing.T, factory *memory.Factory, organizerID uuid.UUID, deadline time.Time) *entity.Event {
	t.Helper()
	event := &entity.Event{
		Id:                  uuid.New(),
		OrganizerId:         organizerID,
		Title:               "Marine Robotics Field Trial",
		Status:              entity.EventStatusPublished,
		StartsAt:            time.Now().Add(30 * 24 * time.Hour),
		EndsAt:              time.Now().Add(31 * 24 * time.Hour),
		ApplicationDeadline: deadline,
		CreatedAt:           time.Now(),
	}
	require.NoError(t, factory.UoW.Events.Create(context.Background(), event))
	return event
}

func TestSubmitApplication(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewFactory()
	blobs := storage.NewMemoryStorage()
	svc := NewApplicationService(factory, blobs, nil, nil)

	organizerID := uuid.New()
	applicantID := uuid.New()
	event := seedPublishedEvent(t, factory, organizerID, time.Now().Add(24*time.Hour))

	t.Run("submit with attachment", func(t *testing.T) {
		resp, err := svc.Submit(ctx, applicantID, &dto.SubmitApplicationRequest{
			EventId: event.Id,
			Message: "I would like to present our AUV platform.",
		}, []AttachmentUpload{{
			FileName:    "abstract.pdf",
			ContentType: "application/pdf",
			Size:        11,
			Reader:      strings.NewReader("pdf content"),
		}})
		require.NoError(t, err)
		assert.Equal(t, string(entity.ApplicationStatusPending), resp.Status)
		require.Len(t, resp.Attachments, 1)
		assert.Equal(t, "abstract.pdf", resp.Attachments[0].FileName)

		// The blob actually landed in storage.
		attachments, err := factory.UoW.Applications.FindAttachments(ctx)
		require.NoError(t, err)
		require.Len(t, attachments, 1)
		_, stored := blobs.Get(attachments[0].StorageKey)
		assert.True(t, stored)
	})

	t.Run("second application to the same event is rejected", func(t *testing.T) {
		_, err := svc.Submit(ctx, applicantID, &dto.SubmitApplicationRequest{
			EventId: event.Id,
			Message: "trying again",
		}, nil)
		require.Error(t, err)
		appErr, ok := err.(*serverutils.AppError)
		require.True(t, ok)
		assert.Equal(t, 409, appErr.StatusCode)
	})

	t.Run("draft event refuses applications", func(t *testing.T) {
		draft := seedPublishedEvent(t, factory, organizerID, time.Now().Add(24*time.Hour))
		draft.Status = entity.EventStatusDraft
		require.NoError(t, factory.UoW.Events.Update(ctx, draft))

		_, err := svc.Submit(ctx, uuid.New(), &dto.SubmitApplicationRequest{
			EventId: draft.Id,
			Message: "too early",
		}, nil)
		require.Error(t, err)
	})

	t.Run("past deadline refuses applications", func(t *testing.T) {
		stale := seedPublishedEvent(t, factory, organizerID, time.Now().Add(-time.Hour))
		_, err := svc.Submit(ctx, uuid.New(), &dto.SubmitApplicationRequest{
			EventId: stale.Id,
			Message: "too late",
		}, nil)
		require.Error(t, err)
	})
}

func TestDecideApplication(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewFactory()
	svc := NewApplicationService(factory, storage.NewMemoryStorage(), nil, nil)

	organizerID := uuid.New()
	reviewerID := uuid.New()
	applicantID := uuid.New()
	event := seedPublishedEvent(t, factory, organizerID, time.Now().Add(24*time.Hour))
	require.NoError(t, factory.UoW.Events.CreateStaff(ctx, &entity.EventStaff{
		Id:        uuid.New(),
		EventId:   event.Id,
		UserId:    reviewerID,
		Role:      entity.StaffRoleReviewer,
		CreatedAt: time.Now(),
	}))

	submitted, err := svc.Submit(ctx, applicantID, &dto.SubmitApplicationRequest{
		EventId: event.Id,
		Message: "please consider my talk",
	}, nil)
	require.NoError(t, err)

	t.Run("applicant cannot decide", func(t *testing.T) {
		_, err := svc.Decide(ctx, applicantID, &dto.DecideApplicationRequest{
			ApplicationId: submitted.Id,
			Decision:      "approved",
		})
		require.Error(t, err)
	})

	t.Run("reviewer approves", func(t *testing.T) {
		decided, err := svc.Decide(ctx, reviewerID, &dto.DecideApplicationRequest{
			ApplicationId: submitted.Id,
			Decision:      "approved",
		})
		require.NoError(t, err)
		assert.Equal(t, "approved", decided.Status)
		require.NotNil(t, decided.DecidedBy)
		assert.Equal(t, reviewerID, *decided.DecidedBy)
	})

	t.Run("deciding twice fails", func(t *testing.T) {
		_, err := svc.Decide(ctx, organizerID, &dto.DecideApplicationRequest{
			ApplicationId: submitted.Id,
			Decision:      "rejected",
		})
		require.Error(t, err)
	})

	t.Run("decided application cannot be withdrawn", func(t *testing.T) {
		err := svc.Withdraw(ctx, applicantID, submitted.Id)
		require.Error(t, err)
	})
}

func TestWithdrawApplication(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewFactory()
	svc := NewApplicationService(factory, storage.NewMemoryStorage(), nil, nil)

	organizerID := uuid.New()
	applicantID := uuid.New()
	event := seedPublishedEvent(t, factory, organizerID, time.Now().Add(24*time.Hour))

	submitted, err := svc.Submit(ctx, applicantID, &dto.SubmitApplicationRequest{
		EventId: event.Id,
		Message: "on second thought",
	}, nil)
	require.NoError(t, err)

	t.Run("someone else cannot withdraw", func(t *testing.T) {
		require.Error(t, svc.Withdraw(ctx, uuid.New(), submitted.Id))
	})

	t.Run("applicant withdraws", func(t *testing.T) {
		require.NoError(t, svc.Withdraw(ctx, applicantID, submitted.Id))

		mine, err := svc.ListMine(ctx, applicantID)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, string(entity.ApplicationStatusWithdrawn), mine[0].Status)
	})
}
