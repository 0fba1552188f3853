package services

import (
	"context"

	"github.com/diegoizac/christianitatis-sub000/internal/models"
	"github.com/google/uuid"
)

type FavouriteService struct {
	favouritesRepo models.FavouriteRepo
}

func NewFavouriteService(favouritesRepo models.FavouriteRepo) *FavouriteService {
	return &FavouriteService{
		favouritesRepo: favouritesRepo,
	}
}

func (fs *FavouriteService) SaveEvent(ctx context.Context, userID, eventID uuid.UUID) (*models.Favourite, error) {
	if userID == uuid.Nil {
		return nil, &models.AuthError{}
	}
	if eventID == uuid.Nil {
		return nil, &models.ValidationError{Detail: "invalid event id"}
	}

	return fs.favouritesRepo.SaveEvent(ctx, userID, eventID)
}

func (fs *FavouriteService) UnsaveEvent(ctx context.Context, userID, eventID uuid.UUID) error {
	if userID == uuid.Nil {
		return &models.AuthError{}
	}
	if eventID == uuid.Nil {
		return &models.ValidationError{Detail: "invalid event id"}
	}

	return fs.favouritesRepo.UnsaveEvent(ctx, userID, eventID)
}

func (fs *FavouriteService) GetFavourites(ctx context.Context, userID uuid.UUID) (*models.Favourite, error) {
	if userID == uuid.Nil {
		return nil, &models.AuthError{}
	}

	return fs.favouritesRepo.GetFavourites(ctx, userID)
}
