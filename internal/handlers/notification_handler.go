package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/diegoizac/christianitatis-sub000/internal/models"
	"github.com/diegoizac/christianitatis-sub000/internal/services"
)

func ListNotifications(ns *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		notifications, err := ns.List(c.Request.Context(), userID, accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ListResponse(notifications, len(notifications)))
	}
}

func UnreadNotificationCount(ns *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		count, err := ns.UnreadCount(c.Request.Context(), userID, accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"unread": count}, ""))
	}
}

func MarkNotificationRead(ns *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		if err := ns.MarkRead(c.Request.Context(), id, accessToken(c)); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Notification marked as read"))
	}
}

func MarkAllNotificationsRead(ns *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		if err := ns.MarkAllRead(c.Request.Context(), userID, accessToken(c)); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "All notifications marked as read"))
	}
}
