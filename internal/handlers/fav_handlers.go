package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/diegoizac/christianitatis-sub000/internal/models"
	"github.com/diegoizac/christianitatis-sub000/internal/services"
)

func SaveEvent(fs *services.FavouriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		var body struct {
			EventID string `json:"event_id" binding:"required,uuid"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		eventID, err := uuid.Parse(body.EventID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid event_id format"))
			return
		}

		fav, err := fs.SaveEvent(c.Request.Context(), userID, eventID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(fav, "Event saved"))
	}
}

func UnsaveEvent(fs *services.FavouriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		eventID, ok := parseIDParam(c, "event_id")
		if !ok {
			return
		}

		if err := fs.UnsaveEvent(c.Request.Context(), userID, eventID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Event removed from saved"))
	}
}

func GetFavourites(fs *services.FavouriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		fav, err := fs.GetFavourites(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(fav, ""))
	}
}
