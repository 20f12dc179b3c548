package repository

import (
	"context"

	"getscience-be/internal/model"

	"github.com/google/uuid"
)

// NotificationRepository works on models directly; the notification domain
// has no separate entity layer.
type NotificationRepository interface {
	GetNotificationTypeByCode(ctx context.Context, code string) (*model.NotificationType, error)
	CreateNotification(ctx context.Context, notification *model.Notification) error
	GetNotificationsByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	GetUsersByRole(ctx context.Context, role string) ([]model.User, error)
}
