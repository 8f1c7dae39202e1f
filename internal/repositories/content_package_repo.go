package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lead-studio/backend/internal/models"
)

type ContentPackageRepo struct {
	pool *pgxpool.Pool
}

func NewContentPackageRepo(pool *pgxpool.Pool) *ContentPackageRepo {
	return &ContentPackageRepo{pool: pool}
}

const contentPackageColumns = `
	id, platform, campaign_objective, model, tone, cta, price, discount, mileage,
	caption, hashtags, shot_list, posting_checklist, created_by, creator_principal,
	created_at, updated_at`

func scanContentPackage(row pgx.Row, p *models.ContentPackage) error {
	return row.Scan(&p.ID, &p.Platform, &p.Objective, &p.VehicleModel, &p.Tone, &p.CallToAction,
		&p.Offer.Price, &p.Offer.Discount, &p.Offer.Mileage,
		&p.Caption, &p.Hashtags, &p.ShotList, &p.PostingChecklist, &p.CreatedBy, &p.CreatorPrincipal,
		&p.CreatedAt, &p.UpdatedAt)
}

func (r *ContentPackageRepo) Create(ctx context.Context, p *models.ContentPackage) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO content_packages (platform, campaign_objective, model, tone, cta, price, discount, mileage,
		                              caption, hashtags, shot_list, posting_checklist, created_by, creator_principal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`, p.Platform, p.Objective, p.VehicleModel, p.Tone, p.CallToAction,
		p.Offer.Price, p.Offer.Discount, p.Offer.Mileage,
		p.Caption, nonNil(p.Hashtags), nonNil(p.ShotList), nonNil(p.PostingChecklist), p.CreatedBy, p.CreatorPrincipal,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetByID returns the package without its video assets.
func (r *ContentPackageRepo) GetByID(ctx context.Context, id int64) (*models.ContentPackage, error) {
	var p models.ContentPackage
	row := r.pool.QueryRow(ctx, `SELECT `+contentPackageColumns+` FROM content_packages WHERE id = $1`, id)
	if err := scanContentPackage(row, &p); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

type ContentPackageFilter struct {
	CreatedBy *string
	Limit     int
	Offset    int
}

func (r *ContentPackageRepo) List(ctx context.Context, f ContentPackageFilter) ([]models.ContentPackage, error) {
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var (
		rows pgx.Rows
		err  error
	)
	if f.CreatedBy != nil {
		rows, err = r.pool.Query(ctx, `
			SELECT `+contentPackageColumns+` FROM content_packages
			WHERE created_by = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
		`, *f.CreatedBy, limit, f.Offset)
	} else {
		rows, err = r.pool.Query(ctx, `
			SELECT `+contentPackageColumns+` FROM content_packages
			ORDER BY created_at DESC LIMIT $1 OFFSET $2
		`, limit, f.Offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packages []models.ContentPackage
	for rows.Next() {
		var p models.ContentPackage
		if err := scanContentPackage(rows, &p); err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, rows.Err()
}

// UpdateCopy replaces the editable copy fields; campaign parameters are fixed.
func (r *ContentPackageRepo) UpdateCopy(ctx context.Context, p *models.ContentPackage) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE content_packages SET caption = $1, hashtags = $2, shot_list = $3,
		       posting_checklist = $4, updated_at = now()
		WHERE id = $5
	`, p.Caption, nonNil(p.Hashtags), nonNil(p.ShotList), nonNil(p.PostingChecklist), p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ContentPackageRepo) AppendHashtags(ctx context.Context, id int64, tags []string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE content_packages SET hashtags = hashtags || $1::text[], updated_at = now()
		WHERE id = $2
	`, nonNil(tags), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ContentPackageRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM content_packages`).Scan(&n)
	return n, err
}
