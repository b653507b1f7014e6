package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus reports whether the raw value is a member of the
// allowed status set. No transition graph is enforced beyond membership.
func ParseBookingStatus(raw string) (BookingStatus, bool) {
	switch BookingStatus(raw) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return BookingStatus(raw), true
	}
	return "", false
}

type Booking struct {
	ID          string
	UserID      string
	PackageID   string
	TotalAmount float64
	Status      BookingStatus
	BookingDate time.Time

	// Customer contact details frozen at booking time. Profile edits
	// after creation do not change these.
	CustomerName   string
	CustomerEmail  string
	CustomerMobile string

	CreatedAt time.Time
	UpdatedAt time.Time
}
