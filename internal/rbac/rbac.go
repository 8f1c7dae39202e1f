package rbac

import "github.com/lead-studio/backend/internal/models"

// Permission constants
const (
	PermGenerateContent = "generate_content"
	PermManageContent   = "manage_content"
	PermManageLeads     = "manage_leads"
	PermViewDashboard   = "view_dashboard"
	PermAssignRoles     = "assign_roles"
	PermViewAudit       = "view_audit"
)

// RolePermissions defines what each role can do.
var RolePermissions = map[models.UserRole][]string{
	models.RoleAdmin: {
		PermGenerateContent, PermManageContent, PermManageLeads, PermViewDashboard,
		PermAssignRoles, PermViewAudit,
	},
	models.RoleUser: {
		PermGenerateContent, PermManageContent, PermManageLeads, PermViewDashboard,
	},
	// Guests have no profile yet; they may preview drafts only.
	models.RoleGuest: {
		PermGenerateContent,
	},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role models.UserRole, permission string) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// IsAdminOperation reports permissions held by admins only.
func IsAdminOperation(permission string) bool {
	return permission == PermAssignRoles || permission == PermViewAudit
}
