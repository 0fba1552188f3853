package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/diegoizac/christianitatis-sub000/internal/models"
	"github.com/diegoizac/christianitatis-sub000/internal/services"
)

// Profile returns the calling user's own profile row.
func Profile(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, userID, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		user, err := us.GetUser(c.Request.Context(), userID, accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"user":     user,
			"is_admin": claims.IsAdmin(),
		}, ""))
	}
}
