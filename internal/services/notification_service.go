package services

import (
	"context"

	"github.com/diegoizac/christianitatis-sub000/internal/models"
	"github.com/google/uuid"
)

// NotificationService is the read side of the inbox, polled by the frontend
// every 30 seconds. Recipients can only mark rows read; nothing here deletes.
type NotificationService struct {
	notificationRepo models.NotificationRepo
}

func NewNotificationService(notificationRepo models.NotificationRepo) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
	}
}

func (ns *NotificationService) List(ctx context.Context, recipientID uuid.UUID, accessToken string) ([]*models.Notification, error) {
	if recipientID == uuid.Nil {
		return nil, &models.AuthError{}
	}
	return ns.notificationRepo.ListNotifications(ctx, recipientID, accessToken)
}

func (ns *NotificationService) UnreadCount(ctx context.Context, recipientID uuid.UUID, accessToken string) (int, error) {
	if recipientID == uuid.Nil {
		return 0, &models.AuthError{}
	}
	return ns.notificationRepo.UnreadCount(ctx, recipientID, accessToken)
}

func (ns *NotificationService) MarkRead(ctx context.Context, id uuid.UUID, accessToken string) error {
	if id == uuid.Nil {
		return &models.ValidationError{Detail: "invalid notification id"}
	}
	return ns.notificationRepo.MarkRead(ctx, id, accessToken)
}

func (ns *NotificationService) MarkAllRead(ctx context.Context, recipientID uuid.UUID, accessToken string) error {
	if recipientID == uuid.Nil {
		return &models.AuthError{}
	}
	return ns.notificationRepo.MarkAllRead(ctx, recipientID, accessToken)
}
