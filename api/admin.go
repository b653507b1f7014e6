package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tourdesk/internal/domain"
	"tourdesk/internal/repository"
	"tourdesk/internal/service/booking"
	"tourdesk/internal/service/users"
)

// AdminHandler serves the back-office dashboard: the cross-user booking
// table with aggregate stats, plus user administration.
type AdminHandler struct {
	bookings booking.BookingUseCase
	users    *users.UserService
}

func NewAdminHandler(bookings booking.BookingUseCase, userService *users.UserService) *AdminHandler {
	return &AdminHandler{bookings: bookings, users: userService}
}

func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.GET("/bookings", h.listBookings)
	router.GET("/users", h.listUsers)
	router.DELETE("/users/:id", h.removeUser)
}

func (h *AdminHandler) listBookings(c *gin.Context) {
	filter := repository.BookingFilter{
		Status: domain.BookingStatus(c.Query("status")),
		UserID: c.Query("userId"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, envelope{Error: "limit must be a non-negative integer"})
			return
		}
		filter.Limit = limit
	}

	projections, stats, err := h.bookings.AdminList(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"bookings": projections, "stats": stats}, "Bookings retrieved successfully")
}

func (h *AdminHandler) listUsers(c *gin.Context) {
	list, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]userResponse, 0, len(list))
	for i := range list {
		responses = append(responses, toUserResponse(&list[i]))
	}
	respond(c, http.StatusOK, gin.H{"users": responses, "count": len(responses)}, "Users retrieved successfully")
}

func (h *AdminHandler) removeUser(c *gin.Context) {
	id := c.Param("id")
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"userId": id}, "User deleted successfully")
}
