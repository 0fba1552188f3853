package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/diegoizac/christianitatis-sub000/internal/helpers"
	"github.com/diegoizac/christianitatis-sub000/internal/models"
	"github.com/google/uuid"
)

// EventService owns the event lifecycle: CRUD for creators plus the approval
// workflow (draft -> pending_review -> published/rejected, published ->
// cancelled) with its notification side-effects.
type EventService struct {
	eventRepo models.EventRepo
	userRepo  models.UserRepo
	notifier  *Notifier
	cld       *cloudinary.Cloudinary
	logger    *slog.Logger
}

func NewEventService(eventRepo models.EventRepo, userRepo models.UserRepo, notifier *Notifier, cld *cloudinary.Cloudinary, logger *slog.Logger) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		cld:       cld,
		logger:    logger,
	}
}

func (es *EventService) ListEvents(ctx context.Context, filters models.EventFilters, accessToken string) ([]*models.Event, error) {
	return es.eventRepo.ListEvents(ctx, filters, accessToken)
}

func (es *EventService) GetEvent(ctx context.Context, id uuid.UUID, accessToken string) (*models.Event, error) {
	if id == uuid.Nil {
		return nil, &models.ValidationError{Detail: "invalid event id"}
	}
	return es.eventRepo.GetEvent(ctx, id, accessToken)
}

func (es *EventService) CreateEvent(ctx context.Context, input *models.EventInput, userID uuid.UUID, accessToken string) (*models.Event, error) {
	if userID == uuid.Nil {
		return nil, &models.AuthError{}
	}

	if err := models.Validate.Struct(input); err != nil {
		return nil, &models.ValidationError{Detail: err.Error()}
	}

	image, video, err := es.uploadMedia(ctx, input.ImageSource, input.VideoSource)
	if err != nil {
		return nil, err
	}

	return es.eventRepo.CreateEvent(ctx, input, userID, image, video, accessToken)
}

func (es *EventService) UpdateEvent(ctx context.Context, id uuid.UUID, update *models.EventUpdate, accessToken string) (*models.Event, error) {
	if id == uuid.Nil {
		return nil, &models.ValidationError{Detail: "invalid event id"}
	}

	if err := models.Validate.Struct(update); err != nil {
		return nil, &models.ValidationError{Detail: err.Error()}
	}

	fields := update.Fields()

	var imageSource, videoSource string
	if update.ImageSource != nil {
		imageSource = *update.ImageSource
	}
	if update.VideoSource != nil {
		videoSource = *update.VideoSource
	}
	image, video, err := es.uploadMedia(ctx, imageSource, videoSource)
	if err != nil {
		return nil, err
	}
	if image != nil {
		fields["image"] = image
	}
	if video != nil {
		fields["video"] = video
	}

	if len(fields) == 0 {
		return nil, &models.ValidationError{Detail: "no fields to update"}
	}

	// Ownership is enforced by the store's row policy: a non-owner's
	// update matches zero rows and surfaces as not found.
	return es.eventRepo.UpdateEvent(ctx, id, fields, accessToken)
}

// SubmitForReview moves a draft into the review queue and notifies every
// administrator. Notification failures are logged per recipient and never
// block the transition.
func (es *EventService) SubmitForReview(ctx context.Context, id uuid.UUID, accessToken string) (*models.Event, error) {
	event, err := es.GetEvent(ctx, id, accessToken)
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(event.Status, models.StatusPendingReview) {
		return nil, &models.InvalidTransitionError{From: event.Status, To: models.StatusPendingReview}
	}

	updated, err := es.eventRepo.UpdateEventStatus(ctx, id, event.Status, models.StatusPendingReview, nil, accessToken)
	if err != nil {
		return nil, err
	}

	admins, err := es.userRepo.ListAdmins(ctx, accessToken)
	if err != nil {
		// The transition already happened; a failed admin lookup only
		// costs the notifications.
		es.logger.Error("admin lookup for review fan-out failed", "event_id", id, "error", err)
		return updated, nil
	}

	recipients := make([]uuid.UUID, 0, len(admins))
	for _, admin := range admins {
		recipients = append(recipients, admin.ID)
	}

	delivered := es.notifier.FanOut(ctx, recipients,
		models.NotificationEventPending, updated.ID,
		"Novo evento para revisão",
		fmt.Sprintf("O evento %q foi enviado para revisão.", updated.Title),
		accessToken,
	)
	es.logger.Info("event submitted for review",
		"event_id", updated.ID,
		"admins_notified", delivered,
		"admins_total", len(recipients),
	)

	return updated, nil
}

// Approve publishes a pending event, stamping approved_by and approved_at
// together, and notifies the creator.
func (es *EventService) Approve(ctx context.Context, id, approverID uuid.UUID, accessToken string) (*models.Event, error) {
	if approverID == uuid.Nil {
		return nil, &models.AuthError{}
	}

	event, err := es.GetEvent(ctx, id, accessToken)
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(event.Status, models.StatusPublished) {
		return nil, &models.InvalidTransitionError{From: event.Status, To: models.StatusPublished}
	}

	extra := map[string]interface{}{
		"approved_by": approverID,
		"approved_at": time.Now().UTC(),
	}
	updated, err := es.eventRepo.UpdateEventStatus(ctx, id, event.Status, models.StatusPublished, extra, accessToken)
	if err != nil {
		return nil, err
	}

	if err := es.notifier.Notify(ctx, updated.UserID,
		models.NotificationEventApproved, updated.ID,
		"Evento aprovado",
		fmt.Sprintf("Seu evento %q foi aprovado e está publicado.", updated.Title),
		accessToken,
	); err != nil {
		es.logger.Error("approval notification failed", "event_id", updated.ID, "recipient", updated.UserID, "error", err)
	}

	return updated, nil
}

// Reject declines a pending event with a mandatory reason, stored on the row
// and repeated in the creator's notification.
func (es *EventService) Reject(ctx context.Context, id uuid.UUID, reason, accessToken string) (*models.Event, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, &models.ValidationError{Detail: "a rejection reason is required"}
	}

	event, err := es.GetEvent(ctx, id, accessToken)
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(event.Status, models.StatusRejected) {
		return nil, &models.InvalidTransitionError{From: event.Status, To: models.StatusRejected}
	}

	extra := map[string]interface{}{
		"rejection_reason": reason,
	}
	updated, err := es.eventRepo.UpdateEventStatus(ctx, id, event.Status, models.StatusRejected, extra, accessToken)
	if err != nil {
		return nil, err
	}

	if err := es.notifier.Notify(ctx, updated.UserID,
		models.NotificationEventRejected, updated.ID,
		"Evento rejeitado",
		fmt.Sprintf("Seu evento %q foi rejeitado. Motivo: %s", updated.Title, reason),
		accessToken,
	); err != nil {
		es.logger.Error("rejection notification failed", "event_id", updated.ID, "recipient", updated.UserID, "error", err)
	}

	return updated, nil
}

// Cancel withdraws a published event. No notification is emitted on cancel.
func (es *EventService) Cancel(ctx context.Context, id uuid.UUID, accessToken string) (*models.Event, error) {
	event, err := es.GetEvent(ctx, id, accessToken)
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(event.Status, models.StatusCancelled) {
		return nil, &models.InvalidTransitionError{From: event.Status, To: models.StatusCancelled}
	}

	return es.eventRepo.UpdateEventStatus(ctx, id, event.Status, models.StatusCancelled, nil, accessToken)
}

func (es *EventService) uploadMedia(ctx context.Context, imageSource, videoSource string) (*models.Media, *models.Media, error) {
	var image, video *models.Media

	if strings.TrimSpace(imageSource) != "" {
		uploaded, err := helpers.UploadMedia(ctx, es.cld, imageSource, "image")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to upload image: %w", err)
		}
		image = uploaded
	}

	if strings.TrimSpace(videoSource) != "" {
		uploaded, err := helpers.UploadMedia(ctx, es.cld, videoSource, "video")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to upload video: %w", err)
		}
		video = uploaded
	}

	return image, video, nil
}
