package services

import (
	"context"
	"errors"
	"testing"

	"github.com/diegoizac/christianitatis-sub000/internal/models"
)

func TestContactSubmitStoresMessage(t *testing.T) {
	repo := &fakeContactRepo{}
	// No mailer configured: the message must still be stored.
	service := NewContactService(repo, nil, "", testLogger())

	input := &models.ContactInput{
		Name:    "Maria Silva",
		Email:   "maria@example.com",
		Message: "Gostaria de mais informações sobre o retiro.",
	}

	message, err := service.Submit(context.Background(), input)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if message.Name != input.Name || message.Email != input.Email {
		t.Errorf("stored message lost fields: %+v", message)
	}
	if len(repo.messages) != 1 {
		t.Errorf("repo holds %d messages, want 1", len(repo.messages))
	}
}

func TestContactSubmitValidation(t *testing.T) {
	service := NewContactService(&fakeContactRepo{}, nil, "", testLogger())

	cases := []struct {
		name  string
		input models.ContactInput
	}{
		{"missing email", models.ContactInput{Name: "Maria", Message: "mensagem longa o suficiente"}},
		{"bad email", models.ContactInput{Name: "Maria", Email: "not-an-email", Message: "mensagem longa o suficiente"}},
		{"short message", models.ContactInput{Name: "Maria", Email: "m@example.com", Message: "oi"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Submit(context.Background(), &tc.input)
			var validationErr *models.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}
