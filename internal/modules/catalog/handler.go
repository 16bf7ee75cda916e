package catalog

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
	rg.GET("/rooms", h.ListRooms)
	rg.GET("/rooms/:id", h.GetRoom)
	rg.GET("/rooms/:id/availability", h.CheckDate)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.PATCH("/rooms/:id/book-date", h.ReserveDate)
	rg.PATCH("/rooms/:id/remove-date", h.ReleaseDate)
}

func (h *Handler) ListRooms(c *gin.Context) {
	minPrice, err := parsePriceQuery(c, "minPrice")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "minPrice must be a number")
		return
	}
	maxPrice, err := parsePriceQuery(c, "maxPrice")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "maxPrice must be a number")
		return
	}

	rooms, err := h.service.ListRooms(c.Request.Context(), minPrice, maxPrice)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list rooms")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

func (h *Handler) GetRoom(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room ID")
		return
	}

	room, err := h.service.GetRoom(c.Request.Context(), roomID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch room")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"room":           room,
		"average_rating": AverageRating(room.Reviews),
	})
}

func (h *Handler) CheckDate(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room ID")
		return
	}

	availability, err := h.service.CheckDate(c.Request.Context(), roomID, c.Query("date"))
	if err != nil {
		h.writeLedgerError(c, err, "Failed to check availability")
		return
	}

	response.Success(c, http.StatusOK, availability)
}

func (h *Handler) ReserveDate(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room ID")
		return
	}

	var req DateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.ReserveDate(c.Request.Context(), roomID, req.Date); err != nil {
		h.writeLedgerError(c, err, "Failed to reserve date")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reserved": true})
}

func (h *Handler) ReleaseDate(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room ID")
		return
	}

	var req DateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.ReleaseDate(c.Request.Context(), roomID, req.Date); err != nil {
		h.writeLedgerError(c, err, "Failed to release date")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"released": true})
}

func (h *Handler) writeLedgerError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidDate):
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Date must be in YYYY-MM-DD format")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found")
	case errors.Is(err, ErrDateUnavailable):
		response.Error(c, http.StatusConflict, "DATE_TAKEN", "Date is already booked")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func parsePriceQuery(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
