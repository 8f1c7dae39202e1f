package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lead-studio/backend/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) GetByPrincipal(ctx context.Context, principal string) (*models.UserProfile, error) {
	var u models.UserProfile
	err := r.pool.QueryRow(ctx, `
		SELECT principal, name, role, created_at, updated_at
		FROM user_profiles WHERE principal = $1
	`, principal).Scan(&u.Principal, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// SaveProfile upserts the display name; an existing role is kept.
func (r *UserRepo) SaveProfile(ctx context.Context, u *models.UserProfile) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO user_profiles (principal, name, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (principal) DO UPDATE SET name = EXCLUDED.name, updated_at = now()
		RETURNING role, created_at, updated_at
	`, u.Principal, u.Name, u.Role).Scan(&u.Role, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepo) SetRole(ctx context.Context, principal string, role models.UserRole) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE user_profiles SET role = $1, updated_at = now() WHERE principal = $2
	`, role, principal)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
