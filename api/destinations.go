package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourdesk/internal/service/catalog"
	"tourdesk/internal/storage"
)

type DestinationHandler struct {
	service *catalog.CatalogService
}

func NewDestinationHandler(service *catalog.CatalogService) *DestinationHandler {
	return &DestinationHandler{service: service}
}

func (h *DestinationHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
}

func (h *DestinationHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
}

func (h *DestinationHandler) list(c *gin.Context) {
	dests, err := h.service.ListDestinations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, dests, "Destinations retrieved successfully")
}

func (h *DestinationHandler) get(c *gin.Context) {
	dest, err := h.service.GetDestination(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, dest, "Destination retrieved successfully")
}

func (h *DestinationHandler) create(c *gin.Context) {
	in, err := destinationInputFromForm(c)
	if err != nil {
		respondError(c, err)
		return
	}

	dest, err := h.service.CreateDestination(c.Request.Context(), *in)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, dest, "Destination created successfully")
}

func (h *DestinationHandler) update(c *gin.Context) {
	in, err := destinationInputFromForm(c)
	if err != nil {
		respondError(c, err)
		return
	}

	dest, err := h.service.UpdateDestination(c.Request.Context(), c.Param("id"), *in)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, dest, "Destination updated successfully")
}

func (h *DestinationHandler) remove(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeleteDestination(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"id": id}, "Destination deleted successfully")
}

func destinationInputFromForm(c *gin.Context) (*catalog.DestinationInput, error) {
	in := catalog.DestinationInput{
		PlaceName:      c.PostForm("placeName"),
		City:           c.PostForm("city"),
		TripCategoryID: c.PostForm("tripCategoryId"),
	}

	upload, err := optionalUpload(c, "image")
	if err != nil {
		return nil, err
	}
	in.Image = upload
	return &in, nil
}

// optionalUpload reads a single-file multipart field, returning nil when
// the field is absent.
func optionalUpload(c *gin.Context, field string) (*storage.Upload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return readUpload(header)
}
