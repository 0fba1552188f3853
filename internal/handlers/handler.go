package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/diegoizac/christianitatis-sub000/internal/helpers"
	"github.com/diegoizac/christianitatis-sub000/internal/models"
)

// respondError maps the typed error taxonomy onto HTTP statuses in one place
// so every handler surfaces failures the same way.
func respondError(c *gin.Context, err error) {
	var (
		authErr       *models.AuthError
		notFoundErr   *models.NotFoundError
		transitionErr *models.InvalidTransitionError
		validationErr *models.ValidationError
	)

	switch {
	case errors.As(err, &authErr):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(authErr.Error()))
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, models.ErrorResponse(notFoundErr.Error()))
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, models.ErrorResponse(transitionErr.Error()))
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(validationErr.Error()))
	default:
		// RepositoryError and anything unexpected: keep the detail out
		// of the response, the middleware logs it.
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("internal server error"))
	}
}

// currentUser pulls the enhanced claims set by the auth middleware. The
// second return is the parsed caller id.
func currentUser(c *gin.Context) (*helpers.EnhancedClaims, uuid.UUID, bool) {
	userClaims, exists := c.Get("user")
	if !exists {
		return nil, uuid.Nil, false
	}

	claims, ok := userClaims.(*helpers.EnhancedClaims)
	if !ok {
		return nil, uuid.Nil, false
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, uuid.Nil, false
	}

	return claims, userID, true
}

func accessToken(c *gin.Context) string {
	if token, exists := c.Get("access_token"); exists {
		if s, ok := token.(string); ok {
			return s
		}
	}
	token, _ := c.Cookie("access_token")
	return token
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid "+name+" format"))
		return uuid.Nil, false
	}
	return id, true
}
