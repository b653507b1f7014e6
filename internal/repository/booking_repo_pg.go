package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tourdesk/internal/domain"
)

// BookingFilter narrows List results. Zero values mean "no filter".
type BookingFilter struct {
	UserID string
	Status domain.BookingStatus
	Limit  int
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
	ListPendingOlderThan(ctx context.Context, hours int) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

// total_amount is selected as text and coerced: see domain.CoerceAmount.
const bookingColumns = `id, user_id, package_id, total_amount::text, status, booking_date, customer_name, customer_email, customer_mobile, created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	var amount string
	if err := row.Scan(&b.ID, &b.UserID, &b.PackageID, &amount, &b.Status, &b.BookingDate,
		&b.CustomerName, &b.CustomerEmail, &b.CustomerMobile, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	b.TotalAmount = domain.CoerceAmount(amount)
	return &b, nil
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.db.QueryRow(ctx, `INSERT INTO bookings (id, user_id, package_id, total_amount, status, booking_date, customer_name, customer_email, customer_mobile)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`,
		booking.ID, booking.UserID, booking.PackageID, booking.TotalAmount, booking.Status, booking.BookingDate,
		booking.CustomerName, booking.CustomerEmail, booking.CustomerMobile).
		Scan(&booking.CreatedAt, &booking.UpdatedAt)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
}

func (r *PGBookingRepository) List(ctx context.Context, filter BookingFilter) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	args := []interface{}{}
	where := ""
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		where = fmt.Sprintf(" WHERE user_id=$%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		if where == "" {
			where = fmt.Sprintf(" WHERE status=$%d", len(args))
		} else {
			where += fmt.Sprintf(" AND status=$%d", len(args))
		}
	}
	query += where + ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		var amount string
		if err := rows.Scan(&b.ID, &b.UserID, &b.PackageID, &amount, &b.Status, &b.BookingDate,
			&b.CustomerName, &b.CustomerEmail, &b.CustomerMobile, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		b.TotalAmount = domain.CoerceAmount(amount)
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	return scanBooking(r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2 RETURNING `+bookingColumns, status, id))
}

func (r *PGBookingRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGBookingRepository) ListPendingOlderThan(ctx context.Context, hours int) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE status=$1 AND created_at < now() - make_interval(hours => $2)`,
		domain.BookingStatusPending, hours)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stale := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		var amount string
		if err := rows.Scan(&b.ID, &b.UserID, &b.PackageID, &amount, &b.Status, &b.BookingDate,
			&b.CustomerName, &b.CustomerEmail, &b.CustomerMobile, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		b.TotalAmount = domain.CoerceAmount(amount)
		stale = append(stale, b)
	}
	return stale, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
