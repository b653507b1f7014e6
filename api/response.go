package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tourdesk/internal/domain"
)

// envelope is the uniform response shape across every endpoint.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, envelope{Success: true, Data: data, Message: message})
}

// respondError maps the domain error taxonomy onto HTTP codes in one
// place. Anything outside the taxonomy is an internal error: logged
// with detail, reported without it.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, envelope{Error: userMessage(err, domain.ErrUnauthenticated)})
	case errors.Is(err, domain.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, envelope{Error: userMessage(err, domain.ErrInvalidArgument)})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, envelope{Error: userMessage(err, domain.ErrAlreadyExists)})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, envelope{Error: userMessage(err, domain.ErrNotFound)})
	default:
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, envelope{Error: "Internal server error"})
	}
}

// userMessage strips the sentinel prefix so clients see "packageId is
// required" rather than "invalid argument: packageId is required".
func userMessage(err, sentinel error) string {
	msg := err.Error()
	if trimmed, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
		return trimmed
	}
	return msg
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{Error: message})
}
