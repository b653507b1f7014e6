package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourdesk/internal/service/users"
)

type UserHandler struct {
	service *users.UserService
}

func NewUserHandler(service *users.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(router *gin.RouterGroup) {
	router.GET("/me", h.me)
	router.PUT("/me", h.updateMe)
}

func (h *UserHandler) me(c *gin.Context) {
	user, err := h.service.Get(c.Request.Context(), c.GetString(ContextUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, toUserResponse(user), "Profile retrieved successfully")
}

func (h *UserHandler) updateMe(c *gin.Context) {
	var req users.UpdateProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, envelope{Error: "Invalid request body"})
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), c.GetString(ContextUserID), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, toUserResponse(user), "Profile updated successfully")
}
