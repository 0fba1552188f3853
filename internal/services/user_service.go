package services

import (
	"context"

	"github.com/diegoizac/christianitatis-sub000/internal/helpers"
	"github.com/diegoizac/christianitatis-sub000/internal/models"
	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go/types"
)

type UserService struct {
	userRepo models.UserRepo
}

func NewUserService(userRepo models.UserRepo) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

func (us *UserService) CreateUser(ctx context.Context, input *models.SignupInput) (*types.SignupResponse, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, &models.ValidationError{Detail: err.Error()}
	}

	if !helpers.IsPasswordStrong(input.Password) {
		return nil, &models.ValidationError{Detail: "password is not strong enough"}
	}

	return us.userRepo.CreateUser(ctx, input)
}

func (us *UserService) AuthenticateUser(ctx context.Context, input *models.LoginInput) (*types.TokenResponse, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, &models.ValidationError{Detail: err.Error()}
	}
	return us.userRepo.AuthenticateUser(ctx, input.Email, input.Password)
}

func (us *UserService) RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error) {
	if refreshToken == "" {
		return nil, &models.AuthError{Reason: "refresh token is required"}
	}
	return us.userRepo.RefreshToken(ctx, refreshToken)
}

func (us *UserService) GetUser(ctx context.Context, id uuid.UUID, accessToken string) (*models.User, error) {
	return us.userRepo.GetUser(ctx, id, accessToken)
}
