package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourdesk/internal/domain"
	"tourdesk/internal/service/catalog"
	"tourdesk/internal/storage"
)

type PackageHandler struct {
	service *catalog.CatalogService
}

func NewPackageHandler(service *catalog.CatalogService) *PackageHandler {
	return &PackageHandler{service: service}
}

// Register mounts the read-only routes; RegisterAdmin mounts the
// mutating ones behind the admin gate.
func (h *PackageHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
}

func (h *PackageHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
}

func (h *PackageHandler) list(c *gin.Context) {
	pkgs, err := h.service.ListPackages(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, pkgs, "Tour packages retrieved successfully")
}

func (h *PackageHandler) get(c *gin.Context) {
	pkg, err := h.service.GetPackage(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, pkg, "Tour package retrieved successfully")
}

func (h *PackageHandler) create(c *gin.Context) {
	in, err := packageInputFromForm(c)
	if err != nil {
		respondError(c, err)
		return
	}

	pkg, err := h.service.CreatePackage(c.Request.Context(), *in)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, pkg, "Tour package created successfully")
}

func (h *PackageHandler) update(c *gin.Context) {
	in, err := packageInputFromForm(c)
	if err != nil {
		respondError(c, err)
		return
	}

	pkg, err := h.service.UpdatePackage(c.Request.Context(), c.Param("id"), *in)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, pkg, "Tour package updated successfully")
}

func (h *PackageHandler) remove(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeletePackage(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"id": id}, "Tour package deleted successfully")
}

// packageInputFromForm reads the multipart form the admin console sends:
// scalar fields, JSON-encoded string arrays and files keyed image0..imageN.
func packageInputFromForm(c *gin.Context) (*catalog.PackageInput, error) {
	in := catalog.PackageInput{
		PlaceName:      c.PostForm("placeName"),
		City:           c.PostForm("city"),
		PriceRange:     c.PostForm("priceRange"),
		TripCategoryID: c.PostForm("tripCategoryId"),
		Overview:       c.PostForm("overview"),
	}

	highlights, err := jsonStringArray(c.PostForm("tourHighlights"))
	if err != nil {
		return nil, err
	}
	in.TourHighlights = highlights

	removed, err := jsonStringArray(c.PostForm("removeImages"))
	if err != nil {
		return nil, err
	}
	in.RemoveImageURLs = removed

	form, err := c.MultipartForm()
	if err != nil {
		return &in, nil
	}
	for i := 0; ; i++ {
		headers := form.File[fmt.Sprintf("image%d", i)]
		if len(headers) == 0 {
			break
		}
		upload, err := readUpload(headers[0])
		if err != nil {
			return nil, err
		}
		in.Images = append(in.Images, *upload)
	}
	return &in, nil
}

func jsonStringArray(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON string array, got %q", domain.ErrInvalidArgument, raw)
	}
	return values, nil
}

func readUpload(header *multipart.FileHeader) (*storage.Upload, error) {
	if err := storage.ValidateImage(header.Filename, header.Size); err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", header.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", header.Filename, err)
	}
	return &storage.Upload{Filename: header.Filename, Data: data}, nil
}
