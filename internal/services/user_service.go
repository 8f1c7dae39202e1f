package services

import (
	"context"
	"errors"
	"strings"

	"github.com/lead-studio/backend/internal/models"
	"go.uber.org/zap"
)

// AdminChecker reports bootstrap admins from configuration.
type AdminChecker interface {
	IsAdmin(principal string) bool
}

type UserService struct {
	users  UserStore
	audit  AuditLogger
	admins AdminChecker
	log    *zap.Logger
}

func NewUserService(users UserStore, audit AuditLogger, admins AdminChecker, log *zap.Logger) *UserService {
	return &UserService{users: users, audit: audit, admins: admins, log: log}
}

// GetProfile returns nil without error when the caller has not saved a profile.
func (s *UserService) GetProfile(ctx context.Context, principal string) (*models.UserProfile, error) {
	u, err := s.users.GetByPrincipal(ctx, principal)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return u, err
}

func (s *UserService) SaveProfile(ctx context.Context, principal, name string) (*models.UserProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name is required")
	}

	u := &models.UserProfile{Principal: principal, Name: name, Role: models.RoleUser}
	if err := s.users.SaveProfile(ctx, u); err != nil {
		return nil, err
	}

	if s.admins.IsAdmin(principal) && u.Role != models.RoleAdmin {
		if err := s.users.SetRole(ctx, principal, models.RoleAdmin); err != nil {
			return nil, err
		}
		u.Role = models.RoleAdmin
		s.log.Info("bootstrap admin promoted", zap.String("principal", principal))
	}
	return u, nil
}

// Role is guest for callers without a profile.
func (s *UserService) Role(ctx context.Context, principal string) (models.UserRole, error) {
	u, err := s.GetProfile(ctx, principal)
	if err != nil {
		return "", err
	}
	if u == nil {
		return models.RoleGuest, nil
	}
	return u.Role, nil
}

func (s *UserService) AssignRole(ctx context.Context, actor, target string, role models.UserRole) error {
	if !role.IsValid() {
		return invalid("invalid role %q", role)
	}
	actorRole, err := s.Role(ctx, actor)
	if err != nil {
		return err
	}
	if actorRole != models.RoleAdmin {
		return ErrForbidden
	}

	if err := s.users.SetRole(ctx, target, role); err != nil {
		return err
	}

	_ = s.audit.Log(ctx, models.AuditLog{
		ActorPrincipal: &actor,
		ActorType:      "admin",
		Action:         "role_assigned",
		EntityType:     AuditEntityUser,
		Meta:           map[string]any{"principal": target, "role": role},
	})
	return nil
}
