package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tourdesk/internal/domain"
	"tourdesk/internal/repository"
	"tourdesk/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.PATCH("/:id", h.updateStatus)
	router.DELETE("/:id", h.remove)
}

type createBookingRequest struct {
	PackageID string `json:"packageId"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, envelope{Error: "Invalid request body"})
		return
	}

	proj, err := h.service.Create(c.Request.Context(), c.GetString(ContextUserID), req.PackageID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, proj, "Booking created successfully")
}

func (h *BookingHandler) list(c *gin.Context) {
	filter := repository.BookingFilter{
		Status: domain.BookingStatus(c.Query("status")),
		UserID: c.Query("userId"),
	}
	// Without an explicit userId the caller sees their own bookings.
	if filter.UserID == "" {
		filter.UserID = c.GetString(ContextUserID)
	}

	bookings, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)}, "Bookings retrieved successfully")
}

func (h *BookingHandler) get(c *gin.Context) {
	proj, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, proj, "Booking retrieved successfully")
}

func (h *BookingHandler) updateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, envelope{Error: "Invalid request body"})
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"id":        updated.ID,
		"status":    updated.Status,
		"updatedAt": updated.UpdatedAt.Format(time.RFC3339),
	}, "Booking status updated successfully")
}

func (h *BookingHandler) remove(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"bookingId": id}, "Booking deleted successfully")
}
