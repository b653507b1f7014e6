package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tourdesk/internal/domain"
	"tourdesk/internal/storage"
)

type DestinationInput struct {
	PlaceName      string
	City           string
	TripCategoryID string
	Image          *storage.Upload
}

func (s *CatalogService) validateDestinationFields(in DestinationInput) error {
	if in.PlaceName == "" || in.City == "" || in.TripCategoryID == "" {
		return fmt.Errorf("%w: all fields are required: placeName, city, tripCategoryId, image", domain.ErrInvalidArgument)
	}
	if err := validateLength("place name", in.PlaceName, 2, 100); err != nil {
		return err
	}
	if err := validateLength("city", in.City, 2, 50); err != nil {
		return err
	}
	if in.Image != nil {
		return storage.ValidateImage(in.Image.Filename, int64(len(in.Image.Data)))
	}
	return nil
}

func (s *CatalogService) CreateDestination(ctx context.Context, in DestinationInput) (*domain.Destination, error) {
	if err := s.validateDestinationFields(in); err != nil {
		return nil, err
	}
	if in.Image == nil {
		return nil, fmt.Errorf("%w: all fields are required: placeName, city, tripCategoryId, image", domain.ErrInvalidArgument)
	}

	categoryName, err := s.resolveCategory(ctx, in.TripCategoryID)
	if err != nil {
		return nil, err
	}

	dest := &domain.Destination{
		ID:               uuid.NewString(),
		PlaceName:        strings.TrimSpace(in.PlaceName),
		City:             strings.TrimSpace(in.City),
		TripCategoryID:   in.TripCategoryID,
		TripCategoryName: categoryName,
	}

	url, err := s.store.Save(ctx, "destinations/"+dest.ID, in.Image.Filename, in.Image.Data)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	dest.ImageURL = url

	if err := s.destinations.Create(ctx, dest); err != nil {
		s.cleanupObjects(ctx, url)
		return nil, err
	}
	return dest, nil
}

func (s *CatalogService) GetDestination(ctx context.Context, id string) (*domain.Destination, error) {
	return s.destinations.GetByID(ctx, id)
}

func (s *CatalogService) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	return s.destinations.List(ctx)
}

func (s *CatalogService) UpdateDestination(ctx context.Context, id string, in DestinationInput) (*domain.Destination, error) {
	dest, err := s.destinations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validateDestinationFields(in); err != nil {
		return nil, err
	}

	categoryName, err := s.resolveCategory(ctx, in.TripCategoryID)
	if err != nil {
		return nil, err
	}

	oldURL := ""
	if in.Image != nil {
		url, err := s.store.Save(ctx, "destinations/"+dest.ID, in.Image.Filename, in.Image.Data)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		oldURL = dest.ImageURL
		dest.ImageURL = url
	}

	dest.PlaceName = strings.TrimSpace(in.PlaceName)
	dest.City = strings.TrimSpace(in.City)
	dest.TripCategoryID = in.TripCategoryID
	dest.TripCategoryName = categoryName

	if err := s.destinations.Update(ctx, dest); err != nil {
		return nil, err
	}

	s.cleanupObjects(ctx, oldURL)
	return dest, nil
}

func (s *CatalogService) DeleteDestination(ctx context.Context, id string) error {
	dest, err := s.destinations.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.destinations.Delete(ctx, id); err != nil {
		return err
	}

	s.cleanupObjects(ctx, dest.ImageURL)
	return nil
}
