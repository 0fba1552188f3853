package services

import (
	"context"
	"log/slog"

	"github.com/diegoizac/christianitatis-sub000/internal/models"
	"github.com/google/uuid"
)

// Notifier is the write side of the notification table: pure appends, no
// dedup, no batching.
type Notifier struct {
	notificationRepo models.NotificationRepo
	logger           *slog.Logger
}

func NewNotifier(notificationRepo models.NotificationRepo, logger *slog.Logger) *Notifier {
	return &Notifier{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

func (n *Notifier) Notify(ctx context.Context, recipientID uuid.UUID, typ models.NotificationType, eventID uuid.UUID, title, message, accessToken string) error {
	notification := &models.Notification{
		UserID:  recipientID,
		Type:    typ,
		Title:   title,
		Message: message,
		EventID: &eventID,
	}
	return n.notificationRepo.InsertNotification(ctx, notification, accessToken)
}

// FanOut delivers one notification per recipient. Each insert is independent:
// a failed recipient is logged and skipped so it can never block the state
// transition that triggered the fan-out. Returns how many were delivered.
func (n *Notifier) FanOut(ctx context.Context, recipients []uuid.UUID, typ models.NotificationType, eventID uuid.UUID, title, message, accessToken string) int {
	delivered := 0
	for _, recipient := range recipients {
		if err := n.Notify(ctx, recipient, typ, eventID, title, message, accessToken); err != nil {
			n.logger.Error("notification delivery failed",
				"recipient", recipient,
				"type", typ,
				"event_id", eventID,
				"error", err,
			)
			continue
		}
		delivered++
	}
	return delivered
}
