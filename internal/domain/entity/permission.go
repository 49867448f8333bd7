package entity

import "sort"

// Permission strings are compile-time constants. They have no lifecycle of
// their own; roles reference them through role_permissions rows.
const (
	PermissionCreateUser = "CREATE_USER"
	PermissionReadUser   = "READ_USER"
	PermissionUpdateUser = "UPDATE_USER"
	PermissionDeleteUser = "DELETE_USER"

	PermissionCreatePatient = "CREATE_PATIENT"
	PermissionReadPatient   = "READ_PATIENT"
	PermissionUpdatePatient = "UPDATE_PATIENT"
	PermissionDeletePatient = "DELETE_PATIENT"

	PermissionCreateAppointment = "CREATE_APPOINTMENT"
	PermissionReadAppointment   = "READ_APPOINTMENT"
	PermissionUpdateAppointment = "UPDATE_APPOINTMENT"
	PermissionDeleteAppointment = "DELETE_APPOINTMENT"

	PermissionCreateStaff = "CREATE_STAFF"
	PermissionReadStaff   = "READ_STAFF"
	PermissionUpdateStaff = "UPDATE_STAFF"
	PermissionDeleteStaff = "DELETE_STAFF"

	PermissionCreateInventory = "CREATE_INVENTORY"
	PermissionReadInventory   = "READ_INVENTORY"
	PermissionUpdateInventory = "UPDATE_INVENTORY"
	PermissionDeleteInventory = "DELETE_INVENTORY"

	PermissionCreateInvoice = "CREATE_INVOICE"
	PermissionReadInvoice   = "READ_INVOICE"
	PermissionUpdateInvoice = "UPDATE_INVOICE"
	PermissionDeleteInvoice = "DELETE_INVOICE"

	PermissionCreateRole = "CREATE_ROLE"
	PermissionReadRole   = "READ_ROLE"
	PermissionUpdateRole = "UPDATE_ROLE"
	PermissionDeleteRole = "DELETE_ROLE"

	PermissionReadAuditLog = "READ_AUDIT_LOG"
)

// AllPermissions returns the full permission vocabulary.
func AllPermissions() []string {
	return []string{
		PermissionCreateUser,
		PermissionReadUser,
		PermissionUpdateUser,
		PermissionDeleteUser,
		PermissionCreatePatient,
		PermissionReadPatient,
		PermissionUpdatePatient,
		PermissionDeletePatient,
		PermissionCreateAppointment,
		PermissionReadAppointment,
		PermissionUpdateAppointment,
		PermissionDeleteAppointment,
		PermissionCreateStaff,
		PermissionReadStaff,
		PermissionUpdateStaff,
		PermissionDeleteStaff,
		PermissionCreateInventory,
		PermissionReadInventory,
		PermissionUpdateInventory,
		PermissionDeleteInventory,
		PermissionCreateInvoice,
		PermissionReadInvoice,
		PermissionUpdateInvoice,
		PermissionDeleteInvoice,
		PermissionCreateRole,
		PermissionReadRole,
		PermissionUpdateRole,
		PermissionDeleteRole,
		PermissionReadAuditLog,
	}
}

// IsKnownPermission reports whether p belongs to the vocabulary.
func IsKnownPermission(p string) bool {
	for _, known := range AllPermissions() {
		if known == p {
			return true
		}
	}
	return false
}

// PermissionSet is the effective permission set resolved for a caller.
// It is a pure value: both the route guards and the /auth/me endpoint
// consumed by UI render guards evaluate against the same set.
type PermissionSet struct {
	wildcard bool
	perms    map[string]struct{}
}

// NewPermissionSet builds a set holding exactly the given permissions.
func NewPermissionSet(perms ...string) PermissionSet {
	set := PermissionSet{perms: make(map[string]struct{}, len(perms))}
	for _, p := range perms {
		set.perms[p] = struct{}{}
	}
	return set
}

// WildcardPermissionSet matches every permission string, including ones
// outside the enumerated vocabulary. Used for the super admin role.
func WildcardPermissionSet() PermissionSet {
	return PermissionSet{wildcard: true}
}

// Has reports whether the set grants the given permission.
func (s PermissionSet) Has(permission string) bool {
	if s.wildcard {
		return true
	}
	_, ok := s.perms[permission]
	return ok
}

// HasAll reports whether the set grants every given permission.
func (s PermissionSet) HasAll(permissions ...string) bool {
	for _, p := range permissions {
		if !s.Has(p) {
			return false
		}
	}
	return true
}

// HasAny reports whether the set grants at least one of the given permissions.
func (s PermissionSet) HasAny(permissions ...string) bool {
	for _, p := range permissions {
		if s.Has(p) {
			return true
		}
	}
	return false
}

// IsWildcard reports whether the set was resolved for a super admin.
func (s PermissionSet) IsWildcard() bool {
	return s.wildcard
}

// List returns the granted permissions sorted for stable responses.
// A wildcard set lists the full vocabulary.
func (s PermissionSet) List() []string {
	if s.wildcard {
		return AllPermissions()
	}
	perms := make([]string, 0, len(s.perms))
	for p := range s.perms {
		perms = append(perms, p)
	}
	sort.Strings(perms)
	return perms
}
