package catalog

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"tourdesk/internal/domain"
	"tourdesk/internal/storage"
)

type PackageInput struct {
	PlaceName      string
	City           string
	PriceRange     string
	TripCategoryID string
	Overview       string
	TourHighlights []string
	Images         []storage.Upload
	// RemoveImageURLs lists existing image URLs to drop (updates only).
	RemoveImageURLs []string
}

func (s *CatalogService) validatePackageFields(in PackageInput) error {
	if in.PlaceName == "" || in.City == "" || in.PriceRange == "" || in.TripCategoryID == "" || in.Overview == "" {
		return fmt.Errorf("%w: required fields: placeName, city, priceRange, tripCategoryId, overview", domain.ErrInvalidArgument)
	}
	if err := validateLength("place name", in.PlaceName, 2, 100); err != nil {
		return err
	}
	if err := validateLength("city", in.City, 2, 50); err != nil {
		return err
	}
	if err := validateLength("overview", in.Overview, 10, 2000); err != nil {
		return err
	}
	return validateImages(in.Images)
}

func (s *CatalogService) CreatePackage(ctx context.Context, in PackageInput) (*domain.TourPackage, error) {
	if err := s.validatePackageFields(in); err != nil {
		return nil, err
	}
	if len(in.Images) == 0 {
		return nil, fmt.Errorf("%w: at least one image is required", domain.ErrInvalidArgument)
	}

	categoryName, err := s.resolveCategory(ctx, in.TripCategoryID)
	if err != nil {
		return nil, err
	}

	pkg := &domain.TourPackage{
		ID:               uuid.NewString(),
		PlaceName:        strings.TrimSpace(in.PlaceName),
		City:             strings.TrimSpace(in.City),
		PriceRange:       strings.TrimSpace(in.PriceRange),
		TripCategoryID:   in.TripCategoryID,
		TripCategoryName: categoryName,
		Overview:         strings.TrimSpace(in.Overview),
		TourHighlights:   in.TourHighlights,
	}
	if pkg.TourHighlights == nil {
		pkg.TourHighlights = []string{}
	}

	urls, err := s.store.SaveAll(ctx, "tour-packages/"+pkg.ID, in.Images)
	if err != nil {
		return nil, fmt.Errorf("upload images: %w", err)
	}
	pkg.ImageURLs = urls

	if err := s.packages.Create(ctx, pkg); err != nil {
		s.cleanupObjects(ctx, urls...)
		return nil, err
	}

	s.invalidatePackages(ctx)
	return pkg, nil
}

func (s *CatalogService) GetPackage(ctx context.Context, id string) (*domain.TourPackage, error) {
	return s.packages.GetByID(ctx, id)
}

// ListPackages is cache-aside: serve the cached listing when present,
// otherwise hit the store and repopulate.
func (s *CatalogService) ListPackages(ctx context.Context) ([]domain.TourPackage, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetPackages(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	pkgs, err := s.packages.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetPackages(ctx, pkgs); err != nil {
			log.Printf("WARNING: package cache population failed: %v", err)
		}
	}
	return pkgs, nil
}

func (s *CatalogService) UpdatePackage(ctx context.Context, id string, in PackageInput) (*domain.TourPackage, error) {
	pkg, err := s.packages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validatePackageFields(in); err != nil {
		return nil, err
	}

	categoryName, err := s.resolveCategory(ctx, in.TripCategoryID)
	if err != nil {
		return nil, err
	}

	kept := make([]string, 0, len(pkg.ImageURLs))
	removed := make([]string, 0, len(in.RemoveImageURLs))
	for _, url := range pkg.ImageURLs {
		if contains(in.RemoveImageURLs, url) {
			removed = append(removed, url)
		} else {
			kept = append(kept, url)
		}
	}

	if len(in.Images) > 0 {
		urls, err := s.store.SaveAll(ctx, "tour-packages/"+pkg.ID, in.Images)
		if err != nil {
			return nil, fmt.Errorf("upload images: %w", err)
		}
		kept = append(kept, urls...)
	}

	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: at least one image is required", domain.ErrInvalidArgument)
	}

	pkg.PlaceName = strings.TrimSpace(in.PlaceName)
	pkg.City = strings.TrimSpace(in.City)
	pkg.PriceRange = strings.TrimSpace(in.PriceRange)
	pkg.TripCategoryID = in.TripCategoryID
	pkg.TripCategoryName = categoryName
	pkg.Overview = strings.TrimSpace(in.Overview)
	if in.TourHighlights != nil {
		pkg.TourHighlights = in.TourHighlights
	}
	pkg.ImageURLs = kept

	if err := s.packages.Update(ctx, pkg); err != nil {
		return nil, err
	}

	// The record update is authoritative; orphaned objects are cleaned
	// up best effort afterwards.
	s.cleanupObjects(ctx, removed...)
	s.invalidatePackages(ctx)
	return pkg, nil
}

func (s *CatalogService) DeletePackage(ctx context.Context, id string) error {
	pkg, err := s.packages.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.packages.Delete(ctx, id); err != nil {
		return err
	}

	s.cleanupObjects(ctx, pkg.ImageURLs...)
	s.invalidatePackages(ctx)
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
