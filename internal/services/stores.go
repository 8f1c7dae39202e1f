package services

import (
	"context"

	"github.com/lead-studio/backend/internal/models"
	"github.com/lead-studio/backend/internal/repositories"
)

// The stores below are satisfied by the pgx repositories and by memrepo.

type ContentPackageStore interface {
	Create(ctx context.Context, p *models.ContentPackage) error
	GetByID(ctx context.Context, id int64) (*models.ContentPackage, error)
	List(ctx context.Context, f repositories.ContentPackageFilter) ([]models.ContentPackage, error)
	UpdateCopy(ctx context.Context, p *models.ContentPackage) error
	AppendHashtags(ctx context.Context, id int64, tags []string) error
	Count(ctx context.Context) (int64, error)
}

type VideoAssetStore interface {
	Create(ctx context.Context, v *models.VideoAsset) error
	ListByPackages(ctx context.Context, packageIDs []int64) (map[int64][]models.VideoAsset, error)
	UpdateStatus(ctx context.Context, packageID, videoID int64, status string) error
	Delete(ctx context.Context, packageID, videoID int64) error
}

type LeadStore interface {
	Create(ctx context.Context, l *models.Lead) error
	GetByID(ctx context.Context, id int64) (*models.Lead, error)
	List(ctx context.Context, packageID int64) ([]models.Lead, error)
	UpdateStatus(ctx context.Context, id int64, status models.LeadStatus) error
	AppendNote(ctx context.Context, id int64, note string) error
	CountByPackage(ctx context.Context) (map[int64]int, error)
}

type UserStore interface {
	GetByPrincipal(ctx context.Context, principal string) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, u *models.UserProfile) error
	SetRole(ctx context.Context, principal string, role models.UserRole) error
}

type AuditLogger interface {
	Log(ctx context.Context, entry models.AuditLog) error
}

var (
	_ ContentPackageStore = (*repositories.ContentPackageRepo)(nil)
	_ VideoAssetStore     = (*repositories.VideoAssetRepo)(nil)
	_ LeadStore           = (*repositories.LeadRepo)(nil)
	_ UserStore           = (*repositories.UserRepo)(nil)
	_ AuditLogger         = (*repositories.AuditRepo)(nil)
)

type AuditReader interface {
	GetByEntity(ctx context.Context, entityType string, entityID int64, limit, offset int) ([]models.AuditLog, error)
}

var _ AuditReader = (*repositories.AuditRepo)(nil)
