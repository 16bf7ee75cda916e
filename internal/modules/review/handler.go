package review

import (
	"errors"
	"net/http"
	"strconv"

	"hotelnest/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms/:id/reviews", h.ListReviews)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.PATCH("/rooms/:id/review", h.SubmitReview)
}

func (h *Handler) SubmitReview(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room ID")
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")
	reviews, err := h.service.Submit(c.Request.Context(), userID, roomID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRating):
			response.Error(c, http.StatusBadRequest, "INVALID_RATING", "Rating must be an integer between 1 and 5")
		case errors.Is(err, ErrEmptyComment):
			response.Error(c, http.StatusBadRequest, "EMPTY_COMMENT", "Comment must not be empty")
		case errors.Is(err, ErrRoomNotFound):
			response.Error(c, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found")
		case errors.Is(err, ErrNotEligible):
			response.Error(c, http.StatusForbidden, "REVIEW_NOT_ELIGIBLE", "Only guests who booked this room can review it")
		case errors.Is(err, ErrConflict):
			response.Error(c, http.StatusConflict, "REVIEW_CONFLICT", "Review was submitted concurrently, try again")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit review")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reviews": reviews})
}

func (h *Handler) ListReviews(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room ID")
		return
	}

	reviews, err := h.service.ListForRoom(c.Request.Context(), roomID)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			response.Error(c, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list reviews")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reviews": reviews})
}
