package models

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	postgrest "github.com/supabase-community/postgrest-go"
)

const (
	ProfilesTable      = "profiles"
	EventsTable        = "events"
	NotificationsTable = "notifications"
	ContactTable       = "contact_messages"
)

type EventRepo interface {
	ListEvents(ctx context.Context, filters EventFilters, accessToken string) ([]*Event, error)
	CreateEvent(ctx context.Context, input *EventInput, userID uuid.UUID, image, video *Media, accessToken string) (*Event, error)
	GetEvent(ctx context.Context, id uuid.UUID, accessToken string) (*Event, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, fields map[string]interface{}, accessToken string) (*Event, error)
	UpdateEventStatus(ctx context.Context, id uuid.UUID, from, to EventStatus, extra map[string]interface{}, accessToken string) (*Event, error)
}

// searchSanitizer strips the characters PostgREST treats as filter-list
// delimiters so user search text cannot break out of the filter expression.
// Dots stay: they only delimit the field and operator of a condition, the
// value is everything after the operator.
var searchSanitizer = strings.NewReplacer(",", " ", "(", " ", ")", " ")

func (su *SupabaseRepo) ListEvents(ctx context.Context, filters EventFilters, accessToken string) ([]*Event, error) {
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, &RepositoryError{Op: "list events", Err: err}
	}

	q := client.From(EventsTable).Select("*", "exact", false)

	// Visibility: anonymous callers get published rows only; an
	// authenticated caller additionally sees their own events in any
	// status; the admin review queue sees everything.
	switch {
	case filters.Admin:
		if filters.Status != "" {
			q = q.Eq("status", string(filters.Status))
		}
	case filters.ViewerID != nil:
		q = q.Or(fmt.Sprintf("status.eq.%s,user_id.eq.%s", StatusPublished, filters.ViewerID.String()), "")
		if filters.Status != "" {
			q = q.Eq("status", string(filters.Status))
		}
	default:
		q = q.Eq("status", string(StatusPublished))
	}

	// The search disjunction is sent through the and=() parameter. The
	// filter builder keys parameters by name, so a second or=() here would
	// replace the visibility clause above instead of combining with it.
	if search := strings.TrimSpace(filters.SearchText); search != "" {
		pattern := "*" + searchSanitizer.Replace(search) + "*"
		q = q.And(fmt.Sprintf("or(title.ilike.%s,description.ilike.%s)", pattern, pattern), "")
	}

	data, count, err := q.Order("created_at", &postgrest.OrderOpts{Ascending: false}).Execute()
	if err != nil {
		return nil, &RepositoryError{Op: "list events", Err: err}
	}

	if count == 0 {
		return []*Event{}, nil
	}

	var events []*Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, &RepositoryError{Op: "list events", Err: fmt.Errorf("unmarshal rows: %w", err)}
	}

	return events, nil
}

func (su *SupabaseRepo) CreateEvent(ctx context.Context, input *EventInput, userID uuid.UUID, image, video *Media, accessToken string) (*Event, error) {
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, &RepositoryError{Op: "create event", Err: err}
	}

	now := time.Now().UTC()

	// status and user_id are set here, never taken from the payload.
	eventData := map[string]interface{}{
		"id":          uuid.New(),
		"title":       input.Title,
		"description": input.Description,
		"date":        input.Date,
		"location":    input.Location,
		"capacity":    input.Capacity,
		"status":      StatusDraft,
		"user_id":     userID,
		"created_at":  now,
		"updated_at":  now,
	}
	if image != nil {
		eventData["image"] = image
	}
	if video != nil {
		eventData["video"] = video
	}

	data, count, err := client.From(EventsTable).
		Insert(eventData, false, "", "", "exact").
		Execute()
	if err != nil {
		return nil, &RepositoryError{Op: "create event", Err: err}
	}

	var created []*Event
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, &RepositoryError{Op: "create event", Err: fmt.Errorf("unmarshal row: %w", err)}
	}

	if count == 0 || len(created) == 0 {
		return nil, &RepositoryError{Op: "create event", Err: fmt.Errorf("insert returned no row")}
	}

	return created[0], nil
}

func (su *SupabaseRepo) GetEvent(ctx context.Context, id uuid.UUID, accessToken string) (*Event, error) {
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, &RepositoryError{Op: "get event", Err: err}
	}

	data, _, err := client.From(EventsTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, &RepositoryError{Op: "get event", Err: err}
	}

	// PostgREST returns an array even for single-row matches.
	var events []*Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, &RepositoryError{Op: "get event", Err: fmt.Errorf("unmarshal row: %w", err)}
	}

	if len(events) == 0 {
		return nil, &NotFoundError{Resource: "event", ID: id.String()}
	}

	return events[0], nil
}

func (su *SupabaseRepo) UpdateEvent(ctx context.Context, id uuid.UUID, fields map[string]interface{}, accessToken string) (*Event, error) {
	if len(fields) == 0 {
		return nil, &ValidationError{Detail: "no fields to update"}
	}

	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, &RepositoryError{Op: "update event", Err: err}
	}

	fields["updated_at"] = time.Now().UTC()

	data, count, err := client.From(EventsTable).
		Update(fields, "", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, &RepositoryError{Op: "update event", Err: err}
	}

	// Zero rows means the id does not exist or RLS hid it from this
	// caller; either way there is nothing they can update.
	if count == 0 {
		return nil, &NotFoundError{Resource: "event", ID: id.String()}
	}

	var updated []*Event
	if err := json.Unmarshal(data, &updated); err != nil {
		return nil, &RepositoryError{Op: "update event", Err: fmt.Errorf("unmarshal row: %w", err)}
	}

	if len(updated) == 0 {
		return nil, &NotFoundError{Resource: "event", ID: id.String()}
	}

	return updated[0], nil
}

// UpdateEventStatus performs a state transition guarded by the current
// status: the UPDATE is filtered by id AND the expected from-status, so a
// concurrent transition (two admins approving at once) makes the second
// write match zero rows and fail with InvalidTransitionError instead of
// silently succeeding.
func (su *SupabaseRepo) UpdateEventStatus(ctx context.Context, id uuid.UUID, from, to EventStatus, extra map[string]interface{}, accessToken string) (*Event, error) {
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, &RepositoryError{Op: "transition event", Err: err}
	}

	fields := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}
	for k, v := range extra {
		fields[k] = v
	}

	data, count, err := client.From(EventsTable).
		Update(fields, "", "exact").
		Eq("id", id.String()).
		Eq("status", string(from)).
		Execute()
	if err != nil {
		return nil, &RepositoryError{Op: "transition event", Err: err}
	}

	if count == 0 {
		return nil, &InvalidTransitionError{From: from, To: to}
	}

	var updated []*Event
	if err := json.Unmarshal(data, &updated); err != nil {
		return nil, &RepositoryError{Op: "transition event", Err: fmt.Errorf("unmarshal row: %w", err)}
	}

	if len(updated) == 0 {
		return nil, &InvalidTransitionError{From: from, To: to}
	}

	return updated[0], nil
}
