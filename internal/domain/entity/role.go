package entity

// Role represents a user role in the system
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Permissions []RolePermission `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE" json:"permissions,omitempty"`
	Users       []User           `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// RoleSuperAdmin is the distinguished role that implicitly holds every
// permission. It is never resolved from role_permissions rows.
const RoleSuperAdmin = "super_admin"

// IsSuperAdmin reports whether the role carries wildcard permissions.
func (r *Role) IsSuperAdmin() bool {
	return r.Name == RoleSuperAdmin
}

// PermissionSet resolves the role's effective permissions.
func (r *Role) PermissionSet() PermissionSet {
	if r.IsSuperAdmin() {
		return WildcardPermissionSet()
	}
	perms := make([]string, 0, len(r.Permissions))
	for _, rp := range r.Permissions {
		perms = append(perms, rp.Permission)
	}
	return NewPermissionSet(perms...)
}

// RolePermission maps a role to one permission string.
// The (role_id, permission) pair is unique, so duplicates are impossible.
type RolePermission struct {
	ID         int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleID     int    `gorm:"not null;uniqueIndex:idx_role_permission" json:"role_id"`
	Permission string `gorm:"type:varchar(100);not null;uniqueIndex:idx_role_permission" json:"permission"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}
