package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleOwner.Valid())
	assert.True(t, RoleManager.Valid())
	assert.True(t, RoleMember.Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}

func TestRoleCanManage(t *testing.T) {
	assert.True(t, RoleOwner.CanManage())
	assert.True(t, RoleManager.CanManage())
	assert.False(t, RoleMember.CanManage())
}

func TestApplicationStatusValid(t *testing.T) {
	assert.True(t, ApplicationPending.Valid())
	assert.True(t, ApplicationAccepted.Valid())
	assert.True(t, ApplicationRejected.Valid())
	assert.False(t, ApplicationStatus("withdrawn").Valid())
}
