package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go/types"

	"github.com/diegoizac/christianitatis-sub000/internal/models"
)

// In-memory stand-ins for the Supabase-backed repos so workflow behavior is
// testable without a remote round-trip.

type fakeEventRepo struct {
	events map[uuid.UUID]*models.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[uuid.UUID]*models.Event)}
}

func (f *fakeEventRepo) ListEvents(ctx context.Context, filters models.EventFilters, accessToken string) ([]*models.Event, error) {
	var out []*models.Event
	for _, ev := range f.events {
		if !f.visible(ev, filters) {
			continue
		}
		if s := strings.TrimSpace(filters.SearchText); s != "" {
			needle := strings.ToLower(s)
			if !strings.Contains(strings.ToLower(ev.Title), needle) &&
				!strings.Contains(strings.ToLower(ev.Description), needle) {
				continue
			}
		}
		copied := *ev
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeEventRepo) visible(ev *models.Event, filters models.EventFilters) bool {
	if filters.Status != "" && ev.Status != filters.Status {
		return false
	}
	if filters.Admin {
		return true
	}
	if ev.Status == models.StatusPublished {
		return true
	}
	return filters.ViewerID != nil && ev.UserID == *filters.ViewerID
}

func (f *fakeEventRepo) CreateEvent(ctx context.Context, input *models.EventInput, userID uuid.UUID, image, video *models.Media, accessToken string) (*models.Event, error) {
	now := time.Now().UTC()
	ev := &models.Event{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Location:    input.Location,
		Capacity:    input.Capacity,
		Image:       image,
		Video:       video,
		Status:      models.StatusDraft,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.events[ev.ID] = ev
	copied := *ev
	return &copied, nil
}

func (f *fakeEventRepo) GetEvent(ctx context.Context, id uuid.UUID, accessToken string) (*models.Event, error) {
	ev, ok := f.events[id]
	if !ok {
		return nil, &models.NotFoundError{Resource: "event", ID: id.String()}
	}
	copied := *ev
	return &copied, nil
}

func (f *fakeEventRepo) UpdateEvent(ctx context.Context, id uuid.UUID, fields map[string]interface{}, accessToken string) (*models.Event, error) {
	ev, ok := f.events[id]
	if !ok {
		return nil, &models.NotFoundError{Resource: "event", ID: id.String()}
	}
	if title, ok := fields["title"].(string); ok {
		ev.Title = title
	}
	if description, ok := fields["description"].(string); ok {
		ev.Description = description
	}
	if location, ok := fields["location"].(string); ok {
		ev.Location = location
	}
	if capacity, ok := fields["capacity"].(int); ok {
		ev.Capacity = capacity
	}
	if date, ok := fields["date"].(time.Time); ok {
		ev.Date = date
	}
	ev.UpdatedAt = time.Now().UTC()
	copied := *ev
	return &copied, nil
}

func (f *fakeEventRepo) UpdateEventStatus(ctx context.Context, id uuid.UUID, from, to models.EventStatus, extra map[string]interface{}, accessToken string) (*models.Event, error) {
	ev, ok := f.events[id]
	if !ok {
		return nil, &models.NotFoundError{Resource: "event", ID: id.String()}
	}
	if ev.Status != from {
		return nil, &models.InvalidTransitionError{From: from, To: to}
	}
	ev.Status = to
	ev.UpdatedAt = time.Now().UTC()
	if approvedBy, ok := extra["approved_by"].(uuid.UUID); ok {
		ev.ApprovedBy = &approvedBy
	}
	if approvedAt, ok := extra["approved_at"].(time.Time); ok {
		ev.ApprovedAt = &approvedAt
	}
	if reason, ok := extra["rejection_reason"].(string); ok {
		ev.RejectionReason = reason
	}
	copied := *ev
	return &copied, nil
}

type fakeNotificationRepo struct {
	rows    []*models.Notification
	failFor map[uuid.UUID]bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{failFor: make(map[uuid.UUID]bool)}
}

func (f *fakeNotificationRepo) InsertNotification(ctx context.Context, n *models.Notification, accessToken string) error {
	if f.failFor[n.UserID] {
		return &models.RepositoryError{Op: "insert notification", Err: fmt.Errorf("simulated insert failure")}
	}
	row := *n
	row.ID = uuid.New()
	row.Read = false
	row.CreatedAt = time.Now().UTC()
	f.rows = append(f.rows, &row)
	return nil
}

func (f *fakeNotificationRepo) ListNotifications(ctx context.Context, recipientID uuid.UUID, accessToken string) ([]*models.Notification, error) {
	var out []*models.Notification
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].UserID == recipientID {
			copied := *f.rows[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) UnreadCount(ctx context.Context, recipientID uuid.UUID, accessToken string) (int, error) {
	count := 0
	for _, row := range f.rows {
		if row.UserID == recipientID && !row.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id uuid.UUID, accessToken string) error {
	for _, row := range f.rows {
		if row.ID == id {
			row.Read = true
			return nil
		}
	}
	return &models.NotFoundError{Resource: "notification", ID: id.String()}
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, recipientID uuid.UUID, accessToken string) error {
	for _, row := range f.rows {
		if row.UserID == recipientID {
			row.Read = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) byType(typ models.NotificationType) []*models.Notification {
	var out []*models.Notification
	for _, row := range f.rows {
		if row.Type == typ {
			out = append(out, row)
		}
	}
	return out
}

type fakeUserRepo struct {
	admins []*models.User
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, input *models.SignupInput) (*types.SignupResponse, error) {
	return nil, nil
}

func (f *fakeUserRepo) AuthenticateUser(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	return nil, nil
}

func (f *fakeUserRepo) RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error) {
	return nil, nil
}

func (f *fakeUserRepo) GetUser(ctx context.Context, id uuid.UUID, accessToken string) (*models.User, error) {
	for _, admin := range f.admins {
		if admin.ID == id {
			return admin, nil
		}
	}
	return nil, &models.NotFoundError{Resource: "profile", ID: id.String()}
}

func (f *fakeUserRepo) ListAdmins(ctx context.Context, accessToken string) ([]*models.User, error) {
	return f.admins, nil
}

type fakeContactRepo struct {
	messages []*models.ContactMessage
}

func (f *fakeContactRepo) InsertContactMessage(ctx context.Context, input *models.ContactInput) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		ID:        uuid.New(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Message:   input.Message,
		CreatedAt: time.Now().UTC(),
	}
	f.messages = append(f.messages, msg)
	return msg, nil
}

func (f *fakeContactRepo) ListContactMessages(ctx context.Context, accessToken string) ([]*models.ContactMessage, error) {
	return f.messages, nil
}
