package models

import (
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	StatusDraft         EventStatus = "draft"
	StatusPendingReview EventStatus = "pending_review"
	StatusPublished     EventStatus = "published"
	StatusRejected      EventStatus = "rejected"
	StatusCancelled     EventStatus = "cancelled"
)

// eventTransitions is the whole approval state machine. rejected and
// cancelled are terminal.
var eventTransitions = map[EventStatus]map[EventStatus]bool{
	StatusDraft:         {StatusPendingReview: true},
	StatusPendingReview: {StatusPublished: true, StatusRejected: true},
	StatusPublished:     {StatusCancelled: true},
}

// CanTransition reports whether the approval workflow allows moving an event
// from one status to another.
func CanTransition(from, to EventStatus) bool {
	return eventTransitions[from][to]
}

// Media is a reference to an uploaded asset (Cloudinary-hosted).
type Media struct {
	URL    string `json:"url"`
	Size   int    `json:"size"`
	Format string `json:"format"`
	Name   string `json:"name"`
}

type Event struct {
	ID              uuid.UUID   `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Date            time.Time   `json:"date"`
	Location        string      `json:"location"`
	Capacity        int         `json:"capacity"`
	Image           *Media      `json:"image,omitempty"`
	Video           *Media      `json:"video,omitempty"`
	Status          EventStatus `json:"status"`
	UserID          uuid.UUID   `json:"user_id"`
	ApprovedBy      *uuid.UUID  `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time  `json:"approved_at,omitempty"`
	RejectionReason string      `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// EventInput is the payload accepted from the form on create. status and
// user_id are intentionally absent: the repository forces draft and the
// caller's id no matter what the client sends.
type EventInput struct {
	Title       string    `json:"title" validate:"required,min=3,max=200"`
	Description string    `json:"description" validate:"max=5000"`
	Date        time.Time `json:"date" validate:"required"`
	Location    string    `json:"location" validate:"required,max=300"`
	Capacity    int       `json:"capacity" validate:"required,gt=0"`
	ImageSource string    `json:"image_source,omitempty"`
	VideoSource string    `json:"video_source,omitempty"`
}

// EventUpdate carries the fields an owner may change while the event is
// theirs to edit. Pointers distinguish "not sent" from zero values.
type EventUpdate struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	Date        *time.Time `json:"date,omitempty"`
	Location    *string    `json:"location,omitempty" validate:"omitempty,max=300"`
	Capacity    *int       `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	ImageSource *string    `json:"image_source,omitempty"`
	VideoSource *string    `json:"video_source,omitempty"`
}

// Fields returns the update as a column map for the store, skipping fields
// the caller did not send.
func (u EventUpdate) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if u.Title != nil {
		fields["title"] = *u.Title
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.Date != nil {
		fields["date"] = *u.Date
	}
	if u.Location != nil {
		fields["location"] = *u.Location
	}
	if u.Capacity != nil {
		fields["capacity"] = *u.Capacity
	}
	return fields
}

// EventFilters narrows a listing. ViewerID nil means an unauthenticated
// caller, who only ever sees published events. Admin widens the listing to
// every status (review queue).
type EventFilters struct {
	Status     EventStatus
	SearchText string
	ViewerID   *uuid.UUID
	Admin      bool
}
