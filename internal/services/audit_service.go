package services

import (
	"context"

	"github.com/lead-studio/backend/internal/models"
)

// Entity types written to the audit log.
const (
	AuditEntityContentPackage = "content_package"
	AuditEntityLead           = "lead"
	AuditEntityUser           = "user"
)

type AuditService struct {
	reader AuditReader
	users  *UserService
}

func NewAuditService(reader AuditReader, users *UserService) *AuditService {
	return &AuditService{reader: reader, users: users}
}

// History is restricted to admins.
func (s *AuditService) History(ctx context.Context, principal, entityType string, entityID int64, limit, offset int) ([]models.AuditLog, error) {
	switch entityType {
	case AuditEntityContentPackage, AuditEntityLead:
	default:
		return nil, invalid("unknown entity type %q", entityType)
	}

	role, err := s.users.Role(ctx, principal)
	if err != nil {
		return nil, err
	}
	if role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	logs, err := s.reader.GetByEntity(ctx, entityType, entityID, limit, offset)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}
	return logs, nil
}
