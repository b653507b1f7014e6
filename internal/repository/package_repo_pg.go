package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tourdesk/internal/domain"
)

type PackageRepository interface {
	Create(ctx context.Context, pkg *domain.TourPackage) error
	GetByID(ctx context.Context, id string) (*domain.TourPackage, error)
	GetManyByIDs(ctx context.Context, ids []string) (map[string]domain.TourPackage, error)
	List(ctx context.Context) ([]domain.TourPackage, error)
	Update(ctx context.Context, pkg *domain.TourPackage) error
	Delete(ctx context.Context, id string) error
}

type PGPackageRepository struct {
	db *pgxpool.Pool
}

func NewPackageRepository(db *pgxpool.Pool) PackageRepository {
	return &PGPackageRepository{db: db}
}

const packageColumns = `id, place_name, city, price_range, trip_category_id, trip_category_name, image_urls, overview, tour_highlights, created_at, updated_at`

func scanPackage(row pgx.Row) (*domain.TourPackage, error) {
	var p domain.TourPackage
	if err := row.Scan(&p.ID, &p.PlaceName, &p.City, &p.PriceRange, &p.TripCategoryID, &p.TripCategoryName,
		&p.ImageURLs, &p.Overview, &p.TourHighlights, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGPackageRepository) Create(ctx context.Context, pkg *domain.TourPackage) error {
	return r.db.QueryRow(ctx, `INSERT INTO tour_packages (id, place_name, city, price_range, trip_category_id, trip_category_name, image_urls, overview, tour_highlights)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`,
		pkg.ID, pkg.PlaceName, pkg.City, pkg.PriceRange, pkg.TripCategoryID, pkg.TripCategoryName,
		pkg.ImageURLs, pkg.Overview, pkg.TourHighlights).
		Scan(&pkg.CreatedAt, &pkg.UpdatedAt)
}

func (r *PGPackageRepository) GetByID(ctx context.Context, id string) (*domain.TourPackage, error) {
	return scanPackage(r.db.QueryRow(ctx, `SELECT `+packageColumns+` FROM tour_packages WHERE id=$1`, id))
}

// GetManyByIDs batch-loads packages for booking projections. Dangling
// references are simply absent from the result map.
func (r *PGPackageRepository) GetManyByIDs(ctx context.Context, ids []string) (map[string]domain.TourPackage, error) {
	pkgs := make(map[string]domain.TourPackage, len(ids))
	if len(ids) == 0 {
		return pkgs, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+packageColumns+` FROM tour_packages WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.TourPackage
		if err := rows.Scan(&p.ID, &p.PlaceName, &p.City, &p.PriceRange, &p.TripCategoryID, &p.TripCategoryName,
			&p.ImageURLs, &p.Overview, &p.TourHighlights, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		pkgs[p.ID] = p
	}
	return pkgs, rows.Err()
}

func (r *PGPackageRepository) List(ctx context.Context) ([]domain.TourPackage, error) {
	rows, err := r.db.Query(ctx, `SELECT `+packageColumns+` FROM tour_packages ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pkgs := make([]domain.TourPackage, 0)
	for rows.Next() {
		var p domain.TourPackage
		if err := rows.Scan(&p.ID, &p.PlaceName, &p.City, &p.PriceRange, &p.TripCategoryID, &p.TripCategoryName,
			&p.ImageURLs, &p.Overview, &p.TourHighlights, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		pkgs = append(pkgs, p)
	}
	return pkgs, rows.Err()
}

func (r *PGPackageRepository) Update(ctx context.Context, pkg *domain.TourPackage) error {
	row := r.db.QueryRow(ctx, `UPDATE tour_packages SET place_name=$1, city=$2, price_range=$3, trip_category_id=$4, trip_category_name=$5, image_urls=$6, overview=$7, tour_highlights=$8, updated_at=now()
		WHERE id=$9 RETURNING updated_at`,
		pkg.PlaceName, pkg.City, pkg.PriceRange, pkg.TripCategoryID, pkg.TripCategoryName,
		pkg.ImageURLs, pkg.Overview, pkg.TourHighlights, pkg.ID)
	if err := row.Scan(&pkg.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PGPackageRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM tour_packages WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ PackageRepository = (*PGPackageRepository)(nil)
