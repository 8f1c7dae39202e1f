package rbac

import (
	"testing"

	"github.com/lead-studio/backend/internal/models"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role models.UserRole
		perm string
		want bool
	}{
		{models.RoleAdmin, PermAssignRoles, true},
		{models.RoleAdmin, PermManageLeads, true},
		{models.RoleUser, PermManageLeads, true},
		{models.RoleUser, PermManageContent, true},
		{models.RoleUser, PermAssignRoles, false},
		{models.RoleUser, PermViewAudit, false},
		{models.RoleGuest, PermGenerateContent, true},
		{models.RoleGuest, PermManageContent, false},
		{models.RoleGuest, PermManageLeads, false},
		{"owner", PermGenerateContent, false},
	}
	for _, tt := range tests {
		if got := HasPermission(tt.role, tt.perm); got != tt.want {
			t.Errorf("HasPermission(%s, %s) = %v, want %v", tt.role, tt.perm, got, tt.want)
		}
	}
}

func TestAdminOperationsAreAdminOnly(t *testing.T) {
	for role, perms := range RolePermissions {
		for _, p := range perms {
			if IsAdminOperation(p) && role != models.RoleAdmin {
				t.Errorf("role %s holds admin-only permission %s", role, p)
			}
		}
	}
}
