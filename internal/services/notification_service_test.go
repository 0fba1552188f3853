package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/diegoizac/christianitatis-sub000/internal/models"
)

func seedInbox(t *testing.T, repo *fakeNotificationRepo, recipient uuid.UUID, count int) {
	t.Helper()
	notifier := NewNotifier(repo, testLogger())
	for i := 0; i < count; i++ {
		eventID := uuid.New()
		if err := notifier.Notify(context.Background(), recipient, models.NotificationEventApproved, eventID, "Evento aprovado", "mensagem", ""); err != nil {
			t.Fatalf("seeding notification failed: %v", err)
		}
	}
}

func TestUnreadCountAndMarkRead(t *testing.T) {
	repo := newFakeNotificationRepo()
	service := NewNotificationService(repo)
	recipient := uuid.New()

	seedInbox(t, repo, recipient, 3)

	count, err := service.UnreadCount(context.Background(), recipient, "")
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("unread count = %d, want 3", count)
	}

	inbox, err := service.List(context.Background(), recipient, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(inbox) != 3 {
		t.Fatalf("inbox has %d rows, want 3", len(inbox))
	}

	if err := service.MarkRead(context.Background(), inbox[0].ID, ""); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}

	count, _ = service.UnreadCount(context.Background(), recipient, "")
	if count != 2 {
		t.Errorf("unread count after MarkRead = %d, want 2", count)
	}
}

func TestMarkAllRead(t *testing.T) {
	repo := newFakeNotificationRepo()
	service := NewNotificationService(repo)
	recipient := uuid.New()
	other := uuid.New()

	seedInbox(t, repo, recipient, 2)
	seedInbox(t, repo, other, 1)

	if err := service.MarkAllRead(context.Background(), recipient, ""); err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}

	count, _ := service.UnreadCount(context.Background(), recipient, "")
	if count != 0 {
		t.Errorf("recipient unread count = %d, want 0", count)
	}

	otherCount, _ := service.UnreadCount(context.Background(), other, "")
	if otherCount != 1 {
		t.Errorf("other user's inbox was touched: unread = %d, want 1", otherCount)
	}
}

func TestMarkReadUnknownNotification(t *testing.T) {
	service := NewNotificationService(newFakeNotificationRepo())

	err := service.MarkRead(context.Background(), uuid.New(), "")
	var notFound *models.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestInboxRequiresRecipient(t *testing.T) {
	service := NewNotificationService(newFakeNotificationRepo())

	_, err := service.List(context.Background(), uuid.Nil, "")
	var authErr *models.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError for nil recipient, got %v", err)
	}
}
