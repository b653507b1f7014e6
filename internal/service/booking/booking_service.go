package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"tourdesk/internal/domain"
	"tourdesk/internal/kafka"
	"tourdesk/internal/repository"
)

type BookingUseCase interface {
	Create(ctx context.Context, userID, packageID string) (*Projection, error)
	Get(ctx context.Context, id string) (*Projection, error)
	List(ctx context.Context, filter repository.BookingFilter) ([]Projection, error)
	UpdateStatus(ctx context.Context, id, rawStatus string) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
	AdminList(ctx context.Context, filter repository.BookingFilter) ([]Projection, Stats, error)
	StalePending(ctx context.Context) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	packages           repository.PackageRepository
	users              repository.UserRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	stalePendingHours  int
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithStalePendingHours(hours int) BookingServiceOption {
	return func(s *BookingService) {
		s.stalePendingHours = hours
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	packages repository.PackageRepository,
	users repository.UserRepository,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:          bookings,
		packages:          packages,
		users:             users,
		producer:          producer,
		bookingTopic:      bookingTopic,
		stalePendingHours: 48,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Create books a package for the caller. The amount is derived from the
// package's price range and the caller's contact details are frozen
// into the booking as a snapshot.
func (s *BookingService) Create(ctx context.Context, userID, packageID string) (*Projection, error) {
	if packageID == "" {
		return nil, fmt.Errorf("%w: packageId is required", domain.ErrInvalidArgument)
	}

	pkg, err := s.packages.GetByID(ctx, packageID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: tour package not found", domain.ErrNotFound)
		}
		return nil, err
	}

	profile, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: user profile not found", domain.ErrNotFound)
		}
		return nil, err
	}

	booking := &domain.Booking{
		ID:             uuid.NewString(),
		UserID:         userID,
		PackageID:      packageID,
		TotalAmount:    ParseLeadPrice(pkg.PriceRange),
		Status:         domain.BookingStatusPending,
		BookingDate:    time.Now(),
		CustomerName:   profile.FullName,
		CustomerEmail:  profile.Email,
		CustomerMobile: profile.MobileNumber,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.publish(ctx, "booking_created", booking); err != nil {
		log.Printf("WARNING: failed to publish booking_created for %s: %v", booking.ID, err)
	}

	proj := Project(*booking, pkg)
	return &proj, nil
}

func (s *BookingService) Get(ctx context.Context, id string) (*Projection, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	proj := Project(*b, s.lookupPackage(ctx, b.PackageID))
	return &proj, nil
}

func (s *BookingService) List(ctx context.Context, filter repository.BookingFilter) ([]Projection, error) {
	bookings, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	pkgs, err := s.packagesFor(ctx, bookings)
	if err != nil {
		return nil, err
	}

	projections := make([]Projection, 0, len(bookings))
	for _, b := range bookings {
		projections = append(projections, Project(b, pkgPtr(pkgs, b.PackageID)))
	}
	return projections, nil
}

// UpdateStatus applies a status change. The only guard is membership in
// the allowed status set; any member may move to any member, including
// no-ops and backwards moves. Stricter workflows belong above this layer.
func (s *BookingService) UpdateStatus(ctx context.Context, id, rawStatus string) (*domain.Booking, error) {
	status, ok := domain.ParseBookingStatus(rawStatus)
	if !ok {
		return nil, fmt.Errorf("%w: invalid status %q, must be one of pending, confirmed, completed, cancelled", domain.ErrInvalidArgument, rawStatus)
	}

	updated, err := s.bookings.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	if err := s.publish(ctx, "booking_status_changed", updated); err != nil {
		log.Printf("WARNING: failed to publish booking_status_changed for %s: %v", updated.ID, err)
	}
	return updated, nil
}

// Delete is a plain row removal with no side effects on the package or
// the owning profile.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.publish(ctx, "booking_deleted", b); err != nil {
		log.Printf("WARNING: failed to publish booking_deleted for %s: %v", b.ID, err)
	}
	return nil
}

// AdminList projects bookings with live profile resolution and returns
// the dashboard stats computed over the (possibly limited) result set.
func (s *BookingService) AdminList(ctx context.Context, filter repository.BookingFilter) ([]Projection, Stats, error) {
	bookings, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, Stats{}, err
	}

	pkgs, err := s.packagesFor(ctx, bookings)
	if err != nil {
		return nil, Stats{}, err
	}

	userIDs := make([]string, 0, len(bookings))
	seen := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		if b.UserID != "" && !seen[b.UserID] {
			seen[b.UserID] = true
			userIDs = append(userIDs, b.UserID)
		}
	}

	profiles, err := s.users.GetManyByIDs(ctx, userIDs)
	if err != nil {
		// Profile resolution is an enrichment; the snapshot fallback
		// still applies, so a failed lookup only degrades the view.
		log.Printf("WARNING: admin booking profile lookup failed: %v", err)
		profiles = map[string]domain.User{}
	}

	projections := make([]Projection, 0, len(bookings))
	for _, b := range bookings {
		var profile *domain.User
		if u, ok := profiles[b.UserID]; ok {
			profile = &u
		}
		projections = append(projections, ProjectAdmin(b, pkgPtr(pkgs, b.PackageID), profile))
	}

	return projections, Aggregate(projections), nil
}

// StalePending reports bookings stuck in pending beyond the configured
// age so the worker can surface them for follow-up.
func (s *BookingService) StalePending(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListPendingOlderThan(ctx, s.stalePendingHours)
}

func (s *BookingService) packagesFor(ctx context.Context, bookings []domain.Booking) (map[string]domain.TourPackage, error) {
	ids := make([]string, 0, len(bookings))
	seen := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		if b.PackageID != "" && !seen[b.PackageID] {
			seen[b.PackageID] = true
			ids = append(ids, b.PackageID)
		}
	}
	return s.packages.GetManyByIDs(ctx, ids)
}

func (s *BookingService) lookupPackage(ctx context.Context, id string) *domain.TourPackage {
	pkg, err := s.packages.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Printf("WARNING: package lookup failed for %s: %v", id, err)
		}
		return nil
	}
	return pkg
}

func pkgPtr(pkgs map[string]domain.TourPackage, id string) *domain.TourPackage {
	if p, ok := pkgs[id]; ok {
		return &p
	}
	return nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, b *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:          eventType,
		BookingID:     b.ID,
		UserID:        b.UserID,
		PackageID:     b.PackageID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		Status:        string(b.Status),
		TotalAmount:   b.TotalAmount,
		OccurredAt:    time.Now(),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, b.ID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, b.ID, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
