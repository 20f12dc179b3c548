package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"getscience-be/internal/model"
	"getscience-be/internal/pkg/logger"
	"getscience-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationRepo struct {
	types   map[string]*model.NotificationType
	created []model.Notification
	users   map[string][]model.User
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{
		types: make(map[string]*model.NotificationType),
		users: make(map[string][]model.User),
	}
}

func (r *fakeNotificationRepo) GetNotificationTypeByCode(ctx context.Context, code string) (*model.NotificationType, error) {
	t, ok := r.types[code]
	if !ok {
		return nil, errors.New("record not found")
	}
	return t, nil
}

func (r *fakeNotificationRepo) CreateNotification(ctx context.Context, n *model.Notification) error {
	r.created = append(r.created, *n)
	return nil
}

func (r *fakeNotificationRepo) GetNotificationsByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	var out []model.Notification
	for _, n := range r.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, n := range r.created {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	for i, n := range r.created {
		if n.ID == id && n.UserID == userID {
			r.created[i].IsRead = true
			return nil
		}
	}
	return errors.New("notification not found")
}

func (r *fakeNotificationRepo) MarkAllAsRead(ctx context.Context, _ uuid.UUID) error { return nil }

func (r *fakeNotificationRepo) GetUsersByRole(ctx context.Context, role string) ([]model.User, error) {
	return r.users[role], nil
}

type fakeNotificationDelivery struct {
	sent      map[uuid.UUID]int
	broadcast int
}

func newFakeNotificationDelivery() *fakeNotificationDelivery {
	return &fakeNotificationDelivery{sent: make(map[uuid.UUID]int)}
}

func (d *fakeNotificationDelivery) Send(userID uuid.UUID, messageType string, data interface{}) {
	d.sent[userID]++
}

func (d *fakeNotificationDelivery) Broadcast(messageType string, data interface{}) {
	d.broadcast++
}

func newNotificationServiceForTest(t *testing.T, repo *fakeNotificationRepo, delivery *fakeNotificationDelivery) *NotificationService {
	t.Helper()
	log := logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "test.log"))
	return NewNotificationService(repo, nil, delivery, log)
}

func TestHandleEventSelfTargets(t *testing.T) {
	ctx := context.Background()
	repo := newFakeNotificationRepo()
	delivery := newFakeNotificationDelivery()
	svc := newNotificationServiceForTest(t, repo, delivery)

	repo.types["CHAT_MESSAGE_SENT"] = &model.NotificationType{
		Code:        "CHAT_MESSAGE_SENT",
		DisplayName: "New Chat Message",
		Template:    "New message in chat {chat_id}",
		TargetType:  "SELF",
		IsActive:    true,
	}

	first := uuid.New()
	second := uuid.New()
	sender := uuid.New()
	chatID := uuid.New()

	event := events.NewEvent("CHAT_MESSAGE_SENT", map[string]interface{}{
		"chat_id":       chatID.String(),
		"sender_id":     sender.String(),
		"recipient_ids": []interface{}{first.String(), second.String()},
		"entity_type":   "chat",
		"entity_id":     chatID.String(),
	})

	require.NoError(t, svc.handleEvent(ctx, event))

	assert.Len(t, repo.created, 2)
	assert.Equal(t, 1, delivery.sent[first])
	assert.Equal(t, 1, delivery.sent[second])
	assert.Equal(t, 0, delivery.sent[sender])
	assert.Equal(t, 0, delivery.broadcast)
}

func TestHandleEventBroadcast(t *testing.T) {
	ctx := context.Background()
	repo := newFakeNotificationRepo()
	delivery := newFakeNotificationDelivery()
	svc := newNotificationServiceForTest(t, repo, delivery)

	repo.types["EVENT_PUBLISHED"] = &model.NotificationType{
		Code:        "EVENT_PUBLISHED",
		DisplayName: "New Event Published",
		Template:    "A new event is open for applications: \"{title}\"",
		TargetType:  "BROADCAST",
		IsActive:    true,
	}

	event := events.NewEvent("EVENT_PUBLISHED", map[string]interface{}{
		"title": "Deep Sea Mapping Expedition",
	})

	require.NoError(t, svc.handleEvent(ctx, event))

	// Broadcasts are pushed but never persisted.
	assert.Equal(t, 1, delivery.broadcast)
	assert.Empty(t, repo.created)
}

func TestHandleEventDropsUnknownAndInactive(t *testing.T) {
	ctx := context.Background()
	repo := newFakeNotificationRepo()
	delivery := newFakeNotificationDelivery()
	svc := newNotificationServiceForTest(t, repo, delivery)

	t.Run("unknown code", func(t *testing.T) {
		event := events.NewEvent("SOMETHING_ELSE", map[string]interface{}{"user_id": uuid.New().String()})
		require.NoError(t, svc.handleEvent(ctx, event))
		assert.Empty(t, repo.created)
	})

	t.Run("inactive code", func(t *testing.T) {
		repo.types["APPLICATION_CREATED"] = &model.NotificationType{
			Code:       "APPLICATION_CREATED",
			Template:   "{applicant_id} applied",
			TargetType: "SELF",
			IsActive:   false,
		}
		event := events.NewEvent("APPLICATION_CREATED", map[string]interface{}{"user_id": uuid.New().String()})
		require.NoError(t, svc.handleEvent(ctx, event))
		assert.Empty(t, repo.created)
	})
}

func TestBuildNotification(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := newNotificationServiceForTest(t, repo, nil)

	userID := uuid.New()
	applicationID := uuid.New()
	actorID := uuid.New()

	config := &model.NotificationType{
		Code:        "APPLICATION_DECIDED",
		DisplayName: "Application Decision",
		Template:    "Your application to \"{event_title}\" has been {decision}",
		TargetType:  "SELF",
		IsActive:    true,
	}

	event := events.NewEvent("APPLICATION_DECIDED", map[string]interface{}{
		"event_title": "Arctic Climate Symposium",
		"decision":    "approved",
		"actor_id":    actorID.String(),
		"entity_type": "application",
		"entity_id":   applicationID.String(),
	})

	notif := svc.buildNotification(userID, config, event)

	assert.Equal(t, `Your application to "Arctic Climate Symposium" has been approved`, notif.Message)
	assert.Equal(t, "Application Decision", notif.Title)
	assert.Equal(t, userID, notif.UserID)
	require.NotNil(t, notif.ActorID)
	assert.Equal(t, actorID, *notif.ActorID)
	require.NotNil(t, notif.EntityID)
	assert.Equal(t, applicationID, *notif.EntityID)
	assert.True(t, strings.Contains(string(notif.Metadata), "/applications/"+applicationID.String()))
}

func TestMarkAsReadScopedToOwner(t *testing.T) {
	ctx := context.Background()
	repo := newFakeNotificationRepo()
	delivery := newFakeNotificationDelivery()
	svc := newNotificationServiceForTest(t, repo, delivery)

	owner := uuid.New()
	stranger := uuid.New()
	notifID := uuid.New()
	repo.created = append(repo.created, model.Notification{ID: notifID, UserID: owner})

	err := svc.MarkAsRead(ctx, notifID, stranger)
	require.Error(t, err)
	assert.False(t, repo.created[0].IsRead)

	require.NoError(t, svc.MarkAsRead(ctx, notifID, owner))
	assert.True(t, repo.created[0].IsRead)
}
