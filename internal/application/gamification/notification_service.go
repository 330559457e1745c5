package gamification

import (
	"context"

	"github.com/cargoflow/backend/internal/domain/gamification"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// NotificationService serves the in-app notification feed
type NotificationService struct {
	notificationRepo gamification.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo gamification.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List retrieves a recipient's notifications, newest first
func (s *NotificationService) List(ctx context.Context, recipientID uuid.UUID, filter shared.Filter) ([]NotificationResponse, int64, error) {
	notifications, total, err := s.notificationRepo.FindByRecipient(ctx, recipientID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = ToNotificationResponse(&notifications[i])
	}
	return responses, total, nil
}

// CountUnread returns how many notifications await the recipient
func (s *NotificationService) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, recipientID)
}

// MarkRead flags a notification as read. Only the recipient may do so.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, recipientID uuid.UUID) error {
	notification, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification.RecipientID != recipientID {
		return shared.ErrForbidden
	}

	notification.MarkRead()
	return s.notificationRepo.Save(ctx, notification)
}
