package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"tourdesk/internal/domain"
	"tourdesk/internal/repository"
	"tourdesk/internal/storage"
)

type Cache interface {
	GetPackages(ctx context.Context) ([]domain.TourPackage, error)
	SetPackages(ctx context.Context, pkgs []domain.TourPackage) error
	InvalidatePackages(ctx context.Context) error
}

type CatalogService struct {
	packages     repository.PackageRepository
	destinations repository.DestinationRepository
	categories   repository.CategoryRepository
	store        storage.ObjectStore
	cache        Cache
}

func NewCatalogService(
	packages repository.PackageRepository,
	destinations repository.DestinationRepository,
	categories repository.CategoryRepository,
	store storage.ObjectStore,
	cache Cache,
) *CatalogService {
	return &CatalogService{
		packages:     packages,
		destinations: destinations,
		categories:   categories,
		store:        store,
		cache:        cache,
	}
}

// resolveCategory maps a category reference onto its display name.
// A missing category is a caller error on writes, hence InvalidArgument
// rather than NotFound.
func (s *CatalogService) resolveCategory(ctx context.Context, id string) (string, error) {
	cat, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("%w: invalid trip category ID", domain.ErrInvalidArgument)
		}
		return "", err
	}
	return cat.Name, nil
}

// cleanupObjects is the non-critical cleanup pattern: object removals
// that follow a successful record mutation are best effort. Failures
// are logged and swallowed, never surfaced to the caller.
func (s *CatalogService) cleanupObjects(ctx context.Context, urls ...string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := s.store.Delete(ctx, url); err != nil {
			log.Printf("WARNING: failed to delete object %s: %v", url, err)
		}
	}
}

func (s *CatalogService) invalidatePackages(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePackages(ctx); err != nil {
		log.Printf("WARNING: package cache invalidation failed: %v", err)
	}
}

func validateLength(field, value string, min, max int) error {
	n := len(strings.TrimSpace(value))
	if n < min || n > max {
		return fmt.Errorf("%w: %s must be between %d and %d characters", domain.ErrInvalidArgument, field, min, max)
	}
	return nil
}

func validateImages(images []storage.Upload) error {
	for _, img := range images {
		if err := storage.ValidateImage(img.Filename, int64(len(img.Data))); err != nil {
			return err
		}
	}
	return nil
}
