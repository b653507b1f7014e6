package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourdesk/internal/service/catalog"
)

type CategoryHandler struct {
	service *catalog.CatalogService
}

func NewCategoryHandler(service *catalog.CatalogService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
}

func (h *CategoryHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
}

func (h *CategoryHandler) list(c *gin.Context) {
	cats, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, cats, "Trip categories retrieved successfully")
}

func (h *CategoryHandler) get(c *gin.Context) {
	cat, err := h.service.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, cat, "Trip category retrieved successfully")
}

func (h *CategoryHandler) create(c *gin.Context) {
	in, err := categoryInputFromForm(c)
	if err != nil {
		respondError(c, err)
		return
	}

	cat, err := h.service.CreateCategory(c.Request.Context(), *in)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, cat, "Trip category created successfully")
}

func (h *CategoryHandler) update(c *gin.Context) {
	in, err := categoryInputFromForm(c)
	if err != nil {
		respondError(c, err)
		return
	}

	cat, err := h.service.UpdateCategory(c.Request.Context(), c.Param("id"), *in)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, cat, "Trip category updated successfully")
}

func (h *CategoryHandler) remove(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"id": id}, "Trip category deleted successfully")
}

func categoryInputFromForm(c *gin.Context) (*catalog.CategoryInput, error) {
	in := catalog.CategoryInput{Name: c.PostForm("name")}

	upload, err := optionalUpload(c, "image")
	if err != nil {
		return nil, err
	}
	in.Image = upload
	return &in, nil
}
