package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	postgrest "github.com/supabase-community/postgrest-go"
)

type ContactRepo interface {
	InsertContactMessage(ctx context.Context, input *ContactInput) (*ContactMessage, error)
	ListContactMessages(ctx context.Context, accessToken string) ([]*ContactMessage, error)
}

func (su *SupabaseRepo) InsertContactMessage(ctx context.Context, input *ContactInput) (*ContactMessage, error) {
	row := map[string]interface{}{
		"id":         uuid.New(),
		"name":       input.Name,
		"email":      input.Email,
		"phone":      input.Phone,
		"message":    input.Message,
		"created_at": time.Now().UTC(),
	}

	data, count, err := su.supabaseClient.From(ContactTable).
		Insert(row, false, "", "", "exact").
		Execute()
	if err != nil {
		return nil, &RepositoryError{Op: "insert contact message", Err: err}
	}

	var created []*ContactMessage
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, &RepositoryError{Op: "insert contact message", Err: fmt.Errorf("unmarshal row: %w", err)}
	}

	if count == 0 || len(created) == 0 {
		return nil, &RepositoryError{Op: "insert contact message", Err: fmt.Errorf("insert returned no row")}
	}

	return created[0], nil
}

func (su *SupabaseRepo) ListContactMessages(ctx context.Context, accessToken string) ([]*ContactMessage, error) {
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, &RepositoryError{Op: "list contact messages", Err: err}
	}

	data, count, err := client.From(ContactTable).
		Select("*", "exact", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, &RepositoryError{Op: "list contact messages", Err: err}
	}

	if count == 0 {
		return []*ContactMessage{}, nil
	}

	var messages []*ContactMessage
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, &RepositoryError{Op: "list contact messages", Err: fmt.Errorf("unmarshal rows: %w", err)}
	}

	return messages, nil
}
