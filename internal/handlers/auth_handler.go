package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/diegoizac/christianitatis-sub000/internal/models"
	"github.com/diegoizac/christianitatis-sub000/internal/services"
)

func Signup(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.SignupInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		res, err := us.CreateUser(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(gin.H{
			"id":    res.ID,
			"email": res.Email,
		}, "Account created, confirm your email to sign in"))
	}
}

func Login(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		tokenRes, err := us.AuthenticateUser(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}

		isProduction := os.Getenv("GIN_MODE") == "production"
		c.SetCookie("access_token", tokenRes.AccessToken, tokenRes.ExpiresIn, "/", "", isProduction, true)
		c.SetCookie("refresh_token", tokenRes.RefreshToken, 3600*24*30, "/", "", isProduction, true)

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"user_id":    tokenRes.User.ID,
			"email":      tokenRes.User.Email,
			"expires_in": tokenRes.ExpiresIn,
		}, "Logged in successfully"))
	}
}

func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		isProduction := os.Getenv("GIN_MODE") == "production"

		c.SetCookie("access_token", "", -1, "/", "", isProduction, true)
		c.SetCookie("refresh_token", "", -1, "/", "", isProduction, true)

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Logged out successfully"))
	}
}
