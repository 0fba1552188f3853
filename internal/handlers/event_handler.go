package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/diegoizac/christianitatis-sub000/internal/models"
	"github.com/diegoizac/christianitatis-sub000/internal/services"
)

// ListEvents serves the public event listing. Anonymous callers see only
// published events; an authenticated caller also sees their own drafts and
// submissions.
func ListEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := models.EventFilters{
			SearchText: c.Query("search"),
		}

		if status := c.Query("status"); status != "" {
			filters.Status = models.EventStatus(status)
		}

		if _, userID, ok := currentUser(c); ok {
			viewerID := userID
			filters.ViewerID = &viewerID
		}

		events, err := es.ListEvents(c.Request.Context(), filters, accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ListResponse(events, len(events)))
	}
}

// ListEventsAdmin serves the review queue: every status, optionally
// filtered, e.g. ?status=pending_review.
func ListEventsAdmin(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := models.EventFilters{
			SearchText: c.Query("search"),
			Admin:      true,
		}
		if status := c.Query("status"); status != "" {
			filters.Status = models.EventStatus(status)
		}

		events, err := es.ListEvents(c.Request.Context(), filters, accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ListResponse(events, len(events)))
	}
}

func GetEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		event, err := es.GetEvent(c.Request.Context(), id, accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(event, ""))
	}
}

func CreateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		var input models.EventInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		event, err := es.CreateEvent(c.Request.Context(), &input, userID, accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(event, "Event created as draft"))
	}
}

func UpdateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var update models.EventUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		event, err := es.UpdateEvent(c.Request.Context(), id, &update, accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(event, "Event updated"))
	}
}

func SubmitEventForReview(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		if !ensureOwner(c, es, id) {
			return
		}

		event, err := es.SubmitForReview(c.Request.Context(), id, accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(event, "Event submitted for review"))
	}
}

func ApproveEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		_, approverID, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		event, err := es.Approve(c.Request.Context(), id, approverID, accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(event, "Event approved and published"))
	}
}

func RejectEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var body struct {
			Reason string `json:"reason"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		event, err := es.Reject(c.Request.Context(), id, body.Reason, accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(event, "Event rejected"))
	}
}

func CancelEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		if !ensureOwner(c, es, id) {
			return
		}

		event, err := es.Cancel(c.Request.Context(), id, accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(event, "Event cancelled"))
	}
}

// ensureOwner verifies the calling user owns the event (admins pass too).
// Writes the response itself on failure.
func ensureOwner(c *gin.Context, es *services.EventService, id uuid.UUID) bool {
	claims, userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
		return false
	}

	event, err := es.GetEvent(c.Request.Context(), id, accessToken(c))
	if err != nil {
		respondError(c, err)
		return false
	}

	if event.UserID != userID && !claims.IsAdmin() {
		c.JSON(http.StatusForbidden, models.ErrorResponse("you can only manage your own events"))
		return false
	}

	return true
}
