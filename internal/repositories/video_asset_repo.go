package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lead-studio/backend/internal/models"
)

type VideoAssetRepo struct {
	pool *pgxpool.Pool
}

func NewVideoAssetRepo(pool *pgxpool.Pool) *VideoAssetRepo {
	return &VideoAssetRepo{pool: pool}
}

func (r *VideoAssetRepo) Create(ctx context.Context, v *models.VideoAsset) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO video_assets (content_package_id, url, status, duration_seconds, prompt, aspect_ratio)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, v.ContentPackageID, v.URL, v.Status, v.DurationSeconds, v.Prompt, v.AspectRatio,
	).Scan(&v.ID, &v.CreatedAt)
}

// ListByPackages returns assets grouped by package id, oldest first.
func (r *VideoAssetRepo) ListByPackages(ctx context.Context, packageIDs []int64) (map[int64][]models.VideoAsset, error) {
	out := make(map[int64][]models.VideoAsset, len(packageIDs))
	if len(packageIDs) == 0 {
		return out, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, content_package_id, url, status, duration_seconds, prompt, aspect_ratio, created_at
		FROM video_assets WHERE content_package_id = ANY($1)
		ORDER BY id
	`, packageIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var v models.VideoAsset
		if err := rows.Scan(&v.ID, &v.ContentPackageID, &v.URL, &v.Status, &v.DurationSeconds,
			&v.Prompt, &v.AspectRatio, &v.CreatedAt); err != nil {
			return nil, err
		}
		out[v.ContentPackageID] = append(out[v.ContentPackageID], v)
	}
	return out, rows.Err()
}

func (r *VideoAssetRepo) UpdateStatus(ctx context.Context, packageID, videoID int64, status string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE video_assets SET status = $1 WHERE id = $2 AND content_package_id = $3
	`, status, videoID, packageID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VideoAssetRepo) Delete(ctx context.Context, packageID, videoID int64) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM video_assets WHERE id = $1 AND content_package_id = $2
	`, videoID, packageID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
