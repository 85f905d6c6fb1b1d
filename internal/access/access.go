// Package access holds the authorization decisions for projects and users.
// Both checks are pure functions of the caller and the target.
package access

import "raluma-api/internal/domain"

// CanAccessProject: admins and above see everything, users only their own.
func CanAccessProject(id domain.Identity, p *domain.Project) bool {
	switch id.Role {
	case domain.RoleSuperadmin, domain.RoleAdmin:
		return true
	case domain.RoleUser:
		return p.CreatedBy == id.ID
	default:
		return false
	}
}

// CanManageUser decides whether actor may create, edit, reset or delete
// target. intended is the role being assigned, nil when the role is untouched.
// For creation pass the requested role both as target.Role and intended.
func CanManageUser(actor domain.Identity, target *domain.User, intended *domain.Role) bool {
	switch actor.Role {
	case domain.RoleSuperadmin:
		return intended == nil || intended.Valid()
	case domain.RoleAdmin:
		if target.Role != domain.RoleUser {
			return false
		}
		return intended == nil || *intended == domain.RoleUser
	case domain.RoleUser:
		return false
	default:
		return false
	}
}

// CanViewUser mirrors the directory listing: admins only see plain users.
func CanViewUser(actor domain.Identity, target *domain.User) bool {
	return CanManageUser(actor, target, nil)
}

// CanDeleteUser adds the self-deletion rule on top of CanManageUser.
func CanDeleteUser(actor domain.Identity, target *domain.User) error {
	if actor.ID == target.ID {
		return domain.ErrSelfDeletion
	}
	if !CanManageUser(actor, target, nil) {
		return domain.ErrAccessDenied
	}
	return nil
}
