package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionSetHas(t *testing.T) {
	set := NewPermissionSet(PermissionCreateUser, PermissionReadUser)

	assert.True(t, set.Has(PermissionCreateUser))
	assert.True(t, set.Has(PermissionReadUser))
	assert.False(t, set.Has(PermissionDeleteUser))
	assert.False(t, set.Has(PermissionReadPatient))
}

func TestPermissionSetEmpty(t *testing.T) {
	set := NewPermissionSet()

	assert.False(t, set.Has(PermissionCreateUser))
	assert.False(t, set.IsWildcard())
	assert.Empty(t, set.List())
}

func TestPermissionSetHasAllHasAny(t *testing.T) {
	set := NewPermissionSet(PermissionCreateUser, PermissionReadUser)

	assert.True(t, set.HasAll(PermissionCreateUser, PermissionReadUser))
	assert.False(t, set.HasAll(PermissionCreateUser, PermissionDeleteUser))
	assert.True(t, set.HasAny(PermissionDeleteUser, PermissionReadUser))
	assert.False(t, set.HasAny(PermissionDeleteUser, PermissionUpdateUser))
}

func TestWildcardPermissionSet(t *testing.T) {
	set := WildcardPermissionSet()

	assert.True(t, set.IsWildcard())
	for _, p := range AllPermissions() {
		assert.True(t, set.Has(p), "wildcard must grant %s", p)
	}
	// Wildcard answers true even for strings outside the known vocabulary.
	assert.True(t, set.Has("NOT_A_REAL_PERMISSION"))
	assert.True(t, set.HasAll(PermissionCreateRole, PermissionDeleteInvoice))
}

func TestWildcardList(t *testing.T) {
	set := WildcardPermissionSet()

	assert.ElementsMatch(t, AllPermissions(), set.List())
}

func TestRolePermissionSet(t *testing.T) {
	role := &Role{
		Name: "RECEPTIONIST",
		Permissions: []RolePermission{
			{Permission: PermissionReadPatient},
			{Permission: PermissionCreateAppointment},
		},
	}

	set := role.PermissionSet()
	assert.False(t, set.IsWildcard())
	assert.True(t, set.Has(PermissionReadPatient))
	assert.True(t, set.Has(PermissionCreateAppointment))
	assert.False(t, set.Has(PermissionDeletePatient))
}

func TestSuperAdminRolePermissionSet(t *testing.T) {
	role := &Role{Name: RoleSuperAdmin}

	assert.True(t, role.IsSuperAdmin())
	set := role.PermissionSet()
	assert.True(t, set.IsWildcard())
	assert.True(t, set.Has(PermissionDeleteRole))
}

func TestIsKnownPermission(t *testing.T) {
	assert.True(t, IsKnownPermission(PermissionCreateUser))
	assert.True(t, IsKnownPermission(PermissionReadAuditLog))
	assert.False(t, IsKnownPermission("MANAGE_EVERYTHING"))
	assert.False(t, IsKnownPermission(""))
}
