package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleOrdering(t *testing.T) {
	assert.True(t, RoleStudent.Rank() < RoleInstructor.Rank())
	assert.True(t, RoleInstructor.Rank() < RoleSupportAdmin.Rank())
	assert.True(t, RoleSupportAdmin.Rank() < RoleSystemAdmin.Rank())
}

func TestRoleAtLeast(t *testing.T) {
	assert.True(t, RoleSystemAdmin.AtLeast(RoleStudent))
	assert.True(t, RoleSupportAdmin.AtLeast(RoleSupportAdmin))
	assert.False(t, RoleStudent.AtLeast(RoleInstructor))
	assert.False(t, RoleInstructor.AtLeast(RoleSupportAdmin))
}

func TestUnknownRoleRanksBelowEverything(t *testing.T) {
	unknown := Role("superuser")
	assert.False(t, unknown.Valid())
	assert.False(t, unknown.AtLeast(RoleStudent))
	assert.Equal(t, 0, unknown.Rank())
}
