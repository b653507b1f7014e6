package booking

import (
	"time"

	"tourdesk/internal/domain"
)

// unknownField substitutes for any relation that no longer resolves.
const unknownField = "Unknown"

// Projection is the flattened, response-ready view of a booking joined
// with its package and, for admin views, the owning profile. Building
// one never fails: dangling references degrade to placeholders.
type Projection struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	UserName          string    `json:"userName,omitempty"`
	UserEmail         string    `json:"userEmail,omitempty"`
	UserMobile        string    `json:"userMobile,omitempty"`
	PackageID         string    `json:"packageId"`
	PackageName       string    `json:"packageName"`
	PackageCity       string    `json:"packageCity"`
	PackagePriceRange string    `json:"packagePriceRange"`
	PackageImages     []string  `json:"packageImages"`
	PackageOverview   string    `json:"packageOverview,omitempty"`
	TotalAmount       float64   `json:"totalAmount"`
	Status            string    `json:"status"`
	BookingDate       time.Time `json:"bookingDate"`
	CustomerName      string    `json:"customerName"`
	CustomerEmail     string    `json:"customerEmail"`
	CustomerMobile    string    `json:"customerMobile"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Project flattens a booking with its (possibly deleted) package.
func Project(b domain.Booking, pkg *domain.TourPackage) Projection {
	p := Projection{
		ID:                b.ID,
		UserID:            b.UserID,
		PackageID:         b.PackageID,
		PackageName:       unknownField,
		PackageCity:       unknownField,
		PackagePriceRange: unknownField,
		PackageImages:     []string{},
		TotalAmount:       b.TotalAmount,
		Status:            string(b.Status),
		BookingDate:       b.BookingDate,
		CustomerName:      b.CustomerName,
		CustomerEmail:     b.CustomerEmail,
		CustomerMobile:    b.CustomerMobile,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}

	if pkg != nil {
		if pkg.PlaceName != "" {
			p.PackageName = pkg.PlaceName
		}
		if pkg.City != "" {
			p.PackageCity = pkg.City
		}
		if pkg.PriceRange != "" {
			p.PackagePriceRange = pkg.PriceRange
		}
		if pkg.ImageURLs != nil {
			p.PackageImages = pkg.ImageURLs
		}
		p.PackageOverview = pkg.Overview
	}
	return p
}

// ProjectAdmin additionally resolves the owner's contact details:
// live profile first, then the frozen customer snapshot, then "Unknown".
func ProjectAdmin(b domain.Booking, pkg *domain.TourPackage, profile *domain.User) Projection {
	p := Project(b, pkg)

	p.UserName = firstNonEmpty(profileField(profile, func(u *domain.User) string { return u.FullName }), b.CustomerName, unknownField)
	p.UserEmail = firstNonEmpty(profileField(profile, func(u *domain.User) string { return u.Email }), b.CustomerEmail, unknownField)
	p.UserMobile = firstNonEmpty(profileField(profile, func(u *domain.User) string { return u.MobileNumber }), b.CustomerMobile, unknownField)
	return p
}

func profileField(profile *domain.User, get func(*domain.User) string) string {
	if profile == nil {
		return ""
	}
	return get(profile)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Stats summarizes a projected result set for the admin dashboard.
type Stats struct {
	Total        int     `json:"total"`
	Pending      int     `json:"pending"`
	Confirmed    int     `json:"confirmed"`
	Completed    int     `json:"completed"`
	Cancelled    int     `json:"cancelled"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// Aggregate counts bookings per status and sums revenue. Cancelled
// bookings are excluded from revenue; pending and confirmed still count
// as expected revenue until explicitly cancelled.
func Aggregate(bookings []Projection) Stats {
	var stats Stats
	stats.Total = len(bookings)
	for _, b := range bookings {
		switch domain.BookingStatus(b.Status) {
		case domain.BookingStatusPending:
			stats.Pending++
		case domain.BookingStatusConfirmed:
			stats.Confirmed++
		case domain.BookingStatusCompleted:
			stats.Completed++
		case domain.BookingStatusCancelled:
			stats.Cancelled++
		}
		if domain.BookingStatus(b.Status) != domain.BookingStatusCancelled {
			stats.TotalRevenue += b.TotalAmount
		}
	}
	return stats
}
