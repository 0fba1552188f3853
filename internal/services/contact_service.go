package services

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/diegoizac/christianitatis-sub000/internal/helpers"
	"github.com/diegoizac/christianitatis-sub000/internal/models"
)

// ContactService stores contact-form submissions and forwards them to the
// site inbox. The email is best-effort: a broken SMTP relay must not lose
// the stored message.
type ContactService struct {
	contactRepo models.ContactRepo
	mailer      *helpers.Mailer
	inbox       string
	logger      *slog.Logger
}

func NewContactService(contactRepo models.ContactRepo, mailer *helpers.Mailer, inbox string, logger *slog.Logger) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		mailer:      mailer,
		inbox:       inbox,
		logger:      logger,
	}
}

func (cs *ContactService) Submit(ctx context.Context, input *models.ContactInput) (*models.ContactMessage, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, &models.ValidationError{Detail: err.Error()}
	}

	message, err := cs.contactRepo.InsertContactMessage(ctx, input)
	if err != nil {
		return nil, err
	}

	if cs.mailer != nil && cs.inbox != "" {
		body := fmt.Sprintf(
			"<p><strong>Nome:</strong> %s</p><p><strong>Email:</strong> %s</p><p><strong>Telefone:</strong> %s</p><p>%s</p>",
			html.EscapeString(message.Name),
			html.EscapeString(message.Email),
			html.EscapeString(message.Phone),
			html.EscapeString(message.Message),
		)
		if err := cs.mailer.Send(cs.inbox, "Novo contato pelo site", body); err != nil {
			cs.logger.Error("contact email forwarding failed", "contact_id", message.ID, "error", err)
		}
	}

	return message, nil
}

func (cs *ContactService) List(ctx context.Context, accessToken string) ([]*models.ContactMessage, error) {
	return cs.contactRepo.ListContactMessages(ctx, accessToken)
}
