package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationEventPending  NotificationType = "event_pending"
	NotificationEventApproved NotificationType = "event_approved"
	NotificationEventRejected NotificationType = "event_rejected"
)

// Notification is a durable inbox row. The workflow only ever creates these;
// the recipient marks them read; nothing in the application deletes them.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	EventID   *uuid.UUID       `json:"event_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
