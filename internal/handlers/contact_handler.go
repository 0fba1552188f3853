package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/diegoizac/christianitatis-sub000/internal/models"
	"github.com/diegoizac/christianitatis-sub000/internal/services"
)

func SubmitContact(cs *services.ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.ContactInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		message, err := cs.Submit(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(message, "Mensagem enviada com sucesso"))
	}
}

func ListContactMessages(cs *services.ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		messages, err := cs.List(c.Request.Context(), accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ListResponse(messages, len(messages)))
	}
}
