package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tourdesk/internal/domain"
	"tourdesk/internal/storage"
)

type CategoryInput struct {
	Name  string
	Image *storage.Upload
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) (*domain.TripCategory, error) {
	if in.Name == "" || in.Image == nil {
		return nil, fmt.Errorf("%w: category name and image are required", domain.ErrInvalidArgument)
	}
	if err := validateLength("category name", in.Name, 2, 50); err != nil {
		return nil, err
	}
	if err := storage.ValidateImage(in.Image.Filename, int64(len(in.Image.Data))); err != nil {
		return nil, err
	}

	cat := &domain.TripCategory{
		ID:   uuid.NewString(),
		Name: strings.TrimSpace(in.Name),
	}

	url, err := s.store.Save(ctx, "trip-categories/"+cat.ID, in.Image.Filename, in.Image.Data)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	cat.ImageURL = url

	if err := s.categories.Create(ctx, cat); err != nil {
		s.cleanupObjects(ctx, url)
		return nil, err
	}
	return cat, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id string) (*domain.TripCategory, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.TripCategory, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id string, in CategoryInput) (*domain.TripCategory, error) {
	cat, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrInvalidArgument)
	}
	if err := validateLength("category name", in.Name, 2, 50); err != nil {
		return nil, err
	}

	oldURL := ""
	if in.Image != nil {
		if err := storage.ValidateImage(in.Image.Filename, int64(len(in.Image.Data))); err != nil {
			return nil, err
		}
		url, err := s.store.Save(ctx, "trip-categories/"+cat.ID, in.Image.Filename, in.Image.Data)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		oldURL = cat.ImageURL
		cat.ImageURL = url
	}

	cat.Name = strings.TrimSpace(in.Name)

	if err := s.categories.Update(ctx, cat); err != nil {
		return nil, err
	}

	s.cleanupObjects(ctx, oldURL)
	return cat, nil
}

// DeleteCategory removes the category row. Packages and destinations
// that still reference it keep their frozen category name and degrade
// at projection time, the same way bookings tolerate deleted packages.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	cat, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}

	s.cleanupObjects(ctx, cat.ImageURL)
	return nil
}
