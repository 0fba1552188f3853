package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	postgrest "github.com/supabase-community/postgrest-go"
)

type NotificationRepo interface {
	InsertNotification(ctx context.Context, n *Notification, accessToken string) error
	ListNotifications(ctx context.Context, recipientID uuid.UUID, accessToken string) ([]*Notification, error)
	UnreadCount(ctx context.Context, recipientID uuid.UUID, accessToken string) (int, error)
	MarkRead(ctx context.Context, id uuid.UUID, accessToken string) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID, accessToken string) error
}

func (su *SupabaseRepo) InsertNotification(ctx context.Context, n *Notification, accessToken string) error {
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return &RepositoryError{Op: "insert notification", Err: err}
	}

	row := map[string]interface{}{
		"id":         uuid.New(),
		"user_id":    n.UserID,
		"type":       n.Type,
		"title":      n.Title,
		"message":    n.Message,
		"read":       false,
		"created_at": time.Now().UTC(),
	}
	if n.EventID != nil {
		row["event_id"] = *n.EventID
	}

	_, _, err = client.From(NotificationsTable).
		Insert(row, false, "", "minimal", "").
		Execute()
	if err != nil {
		return &RepositoryError{Op: "insert notification", Err: err}
	}

	return nil
}

func (su *SupabaseRepo) ListNotifications(ctx context.Context, recipientID uuid.UUID, accessToken string) ([]*Notification, error) {
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, &RepositoryError{Op: "list notifications", Err: err}
	}

	data, count, err := client.From(NotificationsTable).
		Select("*", "exact", false).
		Eq("user_id", recipientID.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, &RepositoryError{Op: "list notifications", Err: err}
	}

	if count == 0 {
		return []*Notification{}, nil
	}

	var notifications []*Notification
	if err := json.Unmarshal(data, &notifications); err != nil {
		return nil, &RepositoryError{Op: "list notifications", Err: fmt.Errorf("unmarshal rows: %w", err)}
	}

	return notifications, nil
}

func (su *SupabaseRepo) UnreadCount(ctx context.Context, recipientID uuid.UUID, accessToken string) (int, error) {
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return 0, &RepositoryError{Op: "count notifications", Err: err}
	}

	// Count-only query: head select with an exact count.
	_, count, err := client.From(NotificationsTable).
		Select("id", "exact", false).
		Eq("user_id", recipientID.String()).
		Eq("read", "false").
		Execute()
	if err != nil {
		return 0, &RepositoryError{Op: "count notifications", Err: err}
	}

	return int(count), nil
}

func (su *SupabaseRepo) MarkRead(ctx context.Context, id uuid.UUID, accessToken string) error {
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return &RepositoryError{Op: "mark notification read", Err: err}
	}

	_, count, err := client.From(NotificationsTable).
		Update(map[string]interface{}{"read": true}, "", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return &RepositoryError{Op: "mark notification read", Err: err}
	}

	if count == 0 {
		return &NotFoundError{Resource: "notification", ID: id.String()}
	}

	return nil
}

func (su *SupabaseRepo) MarkAllRead(ctx context.Context, recipientID uuid.UUID, accessToken string) error {
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return &RepositoryError{Op: "mark all notifications read", Err: err}
	}

	// Matching zero rows is fine here: an empty inbox is already read.
	_, _, err = client.From(NotificationsTable).
		Update(map[string]interface{}{"read": true}, "", "").
		Eq("user_id", recipientID.String()).
		Eq("read", "false").
		Execute()
	if err != nil {
		return &RepositoryError{Op: "mark all notifications read", Err: err}
	}

	return nil
}
