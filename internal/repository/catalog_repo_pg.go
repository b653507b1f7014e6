package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tourdesk/internal/domain"
)

type DestinationRepository interface {
	Create(ctx context.Context, dest *domain.Destination) error
	GetByID(ctx context.Context, id string) (*domain.Destination, error)
	List(ctx context.Context) ([]domain.Destination, error)
	Update(ctx context.Context, dest *domain.Destination) error
	Delete(ctx context.Context, id string) error
}

type CategoryRepository interface {
	Create(ctx context.Context, cat *domain.TripCategory) error
	GetByID(ctx context.Context, id string) (*domain.TripCategory, error)
	List(ctx context.Context) ([]domain.TripCategory, error)
	Update(ctx context.Context, cat *domain.TripCategory) error
	Delete(ctx context.Context, id string) error
}

type PGDestinationRepository struct {
	db *pgxpool.Pool
}

func NewDestinationRepository(db *pgxpool.Pool) DestinationRepository {
	return &PGDestinationRepository{db: db}
}

const destinationColumns = `id, place_name, city, trip_category_id, trip_category_name, image_url, created_at, updated_at`

func (r *PGDestinationRepository) Create(ctx context.Context, dest *domain.Destination) error {
	return r.db.QueryRow(ctx, `INSERT INTO destinations (id, place_name, city, trip_category_id, trip_category_name, image_url)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at, updated_at`,
		dest.ID, dest.PlaceName, dest.City, dest.TripCategoryID, dest.TripCategoryName, dest.ImageURL).
		Scan(&dest.CreatedAt, &dest.UpdatedAt)
}

func (r *PGDestinationRepository) GetByID(ctx context.Context, id string) (*domain.Destination, error) {
	var d domain.Destination
	err := r.db.QueryRow(ctx, `SELECT `+destinationColumns+` FROM destinations WHERE id=$1`, id).
		Scan(&d.ID, &d.PlaceName, &d.City, &d.TripCategoryID, &d.TripCategoryName, &d.ImageURL, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *PGDestinationRepository) List(ctx context.Context) ([]domain.Destination, error) {
	rows, err := r.db.Query(ctx, `SELECT `+destinationColumns+` FROM destinations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dests := make([]domain.Destination, 0)
	for rows.Next() {
		var d domain.Destination
		if err := rows.Scan(&d.ID, &d.PlaceName, &d.City, &d.TripCategoryID, &d.TripCategoryName, &d.ImageURL, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		dests = append(dests, d)
	}
	return dests, rows.Err()
}

func (r *PGDestinationRepository) Update(ctx context.Context, dest *domain.Destination) error {
	row := r.db.QueryRow(ctx, `UPDATE destinations SET place_name=$1, city=$2, trip_category_id=$3, trip_category_name=$4, image_url=$5, updated_at=now()
		WHERE id=$6 RETURNING updated_at`,
		dest.PlaceName, dest.City, dest.TripCategoryID, dest.TripCategoryName, dest.ImageURL, dest.ID)
	if err := row.Scan(&dest.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PGDestinationRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM destinations WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type PGCategoryRepository struct {
	db *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) CategoryRepository {
	return &PGCategoryRepository{db: db}
}

func (r *PGCategoryRepository) Create(ctx context.Context, cat *domain.TripCategory) error {
	return r.db.QueryRow(ctx, `INSERT INTO trip_categories (id, name, image_url) VALUES ($1, $2, $3) RETURNING created_at, updated_at`,
		cat.ID, cat.Name, cat.ImageURL).
		Scan(&cat.CreatedAt, &cat.UpdatedAt)
}

func (r *PGCategoryRepository) GetByID(ctx context.Context, id string) (*domain.TripCategory, error) {
	var c domain.TripCategory
	err := r.db.QueryRow(ctx, `SELECT id, name, image_url, created_at, updated_at FROM trip_categories WHERE id=$1`, id).
		Scan(&c.ID, &c.Name, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGCategoryRepository) List(ctx context.Context) ([]domain.TripCategory, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, image_url, created_at, updated_at FROM trip_categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cats := make([]domain.TripCategory, 0)
	for rows.Next() {
		var c domain.TripCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *PGCategoryRepository) Update(ctx context.Context, cat *domain.TripCategory) error {
	row := r.db.QueryRow(ctx, `UPDATE trip_categories SET name=$1, image_url=$2, updated_at=now() WHERE id=$3 RETURNING updated_at`,
		cat.Name, cat.ImageURL, cat.ID)
	if err := row.Scan(&cat.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PGCategoryRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM trip_categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var (
	_ DestinationRepository = (*PGDestinationRepository)(nil)
	_ CategoryRepository    = (*PGCategoryRepository)(nil)
)
