package models

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go/types"
)

type UserRepo interface {
	CreateUser(ctx context.Context, input *SignupInput) (*types.SignupResponse, error)
	AuthenticateUser(ctx context.Context, email, password string) (*types.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error)
	GetUser(ctx context.Context, id uuid.UUID, accessToken string) (*User, error)
	ListAdmins(ctx context.Context, accessToken string) ([]*User, error)
}

func (su *SupabaseRepo) CreateUser(ctx context.Context, input *SignupInput) (*types.SignupResponse, error) {
	res, err := su.supabaseClient.Auth.Signup(types.SignupRequest{
		Email:    input.Email,
		Password: input.Password,
		Data: map[string]interface{}{
			"name": input.Name,
		},
	})
	if err != nil {
		if strings.Contains(err.Error(), "User already registered") {
			return nil, &ValidationError{Detail: "email already in use"}
		}
		return nil, &RepositoryError{Op: "signup", Err: err}
	}
	return res, nil
}

func (su *SupabaseRepo) AuthenticateUser(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	resp, err := su.supabaseClient.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, &AuthError{Reason: "invalid email or password"}
	}
	return resp, nil
}

func (su *SupabaseRepo) RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error) {
	resp, err := su.supabaseClient.Auth.RefreshToken(refreshToken)
	if err != nil {
		return nil, &AuthError{Reason: "session refresh failed"}
	}
	return resp, nil
}

func (su *SupabaseRepo) GetUser(ctx context.Context, id uuid.UUID, accessToken string) (*User, error) {
	if id == uuid.Nil {
		return nil, &ValidationError{Detail: "invalid user id"}
	}

	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, &RepositoryError{Op: "get profile", Err: err}
	}

	data, _, err := client.From(ProfilesTable).
		Select("id,email,name,role,phone_number,avatar_url,created_at,updated_at", "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, &RepositoryError{Op: "get profile", Err: err}
	}

	var users []*User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, &RepositoryError{Op: "get profile", Err: fmt.Errorf("unmarshal rows: %w", err)}
	}

	if len(users) == 0 {
		return nil, &NotFoundError{Resource: "profile", ID: id.String()}
	}

	return users[0], nil
}

// ListAdmins feeds the review-submission fan-out: one notification per
// administrator account.
func (su *SupabaseRepo) ListAdmins(ctx context.Context, accessToken string) ([]*User, error) {
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, &RepositoryError{Op: "list admins", Err: err}
	}

	data, _, err := client.From(ProfilesTable).
		Select("id,email,name,role", "", false).
		Eq("role", "admin").
		Execute()
	if err != nil {
		return nil, &RepositoryError{Op: "list admins", Err: err}
	}

	var admins []*User
	if err := json.Unmarshal(data, &admins); err != nil {
		return nil, &RepositoryError{Op: "list admins", Err: fmt.Errorf("unmarshal rows: %w", err)}
	}

	return admins, nil
}
