package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lead-studio/backend/internal/models"
)

type LeadRepo struct {
	pool *pgxpool.Pool
}

func NewLeadRepo(pool *pgxpool.Pool) *LeadRepo {
	return &LeadRepo{pool: pool}
}

const leadColumns = `
	id, name, contact_info, vehicle_interest, timeframe, consent, status, notes,
	content_package_id, next_follow_up_at, created_at, updated_at`

func scanLead(row pgx.Row, l *models.Lead) error {
	return row.Scan(&l.ID, &l.Name, &l.ContactInfo, &l.VehicleInterest, &l.Timeframe, &l.Consent,
		&l.Status, &l.Notes, &l.ContentPackageID, &l.NextFollowUpAt, &l.CreatedAt, &l.UpdatedAt)
}

// Create inserts the lead with whatever status and notes the caller set;
// the service forces the initial values.
func (r *LeadRepo) Create(ctx context.Context, l *models.Lead) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO leads (name, contact_info, vehicle_interest, timeframe, consent, status, notes,
		                   content_package_id, next_follow_up_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, l.Name, l.ContactInfo, l.VehicleInterest, l.Timeframe, l.Consent, l.Status, nonNil(l.Notes),
		l.ContentPackageID, l.NextFollowUpAt,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

func (r *LeadRepo) GetByID(ctx context.Context, id int64) (*models.Lead, error) {
	var l models.Lead
	row := r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	if err := scanLead(row, &l); err != nil {
		return nil, notFound(err)
	}
	return &l, nil
}

// List returns leads newest first; packageID 0 means all packages.
func (r *LeadRepo) List(ctx context.Context, packageID int64) ([]models.Lead, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if packageID != 0 {
		rows, err = r.pool.Query(ctx, `
			SELECT `+leadColumns+` FROM leads WHERE content_package_id = $1 ORDER BY id DESC
		`, packageID)
	} else {
		rows, err = r.pool.Query(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY id DESC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		var l models.Lead
		if err := scanLead(rows, &l); err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// UpdateStatus writes status unconditionally. Concurrent writers race and
// the last one wins.
func (r *LeadRepo) UpdateStatus(ctx context.Context, id int64, status models.LeadStatus) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE leads SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *LeadRepo) AppendNote(ctx context.Context, id int64, note string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE leads SET notes = array_append(notes, $1), updated_at = now() WHERE id = $2
	`, note, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *LeadRepo) CountByPackage(ctx context.Context) (map[int64]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT content_package_id, count(*) FROM leads GROUP BY content_package_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var (
			pkgID int64
			n     int
		)
		if err := rows.Scan(&pkgID, &n); err != nil {
			return nil, err
		}
		counts[pkgID] = n
	}
	return counts, rows.Err()
}
