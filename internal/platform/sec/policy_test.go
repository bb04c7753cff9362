// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avolkov/critica/internal/platform/sec"
)

/*
TestAuthorize_ReadIsPublic verifies that read operations are never gated.
*/
func TestAuthorize_ReadIsPublic(t *testing.T) {
	// Anonymous requesters carry an empty role and a zero ID.
	assert.True(t, sec.Authorize("", sec.OpRead, 42, 0))
	assert.True(t, sec.Authorize(sec.RoleUser, sec.OpRead, 42, 7))
}

/*
TestAuthorize_Mutation covers the ownership and role matrix for write/delete.
*/
func TestAuthorize_Mutation(t *testing.T) {
	tests := []struct {
		name        string
		role        sec.UserRole
		op          sec.Operation
		ownerID     int64
		requesterID int64
		allowed     bool
	}{
		{"author_can_write_own", sec.RoleUser, sec.OpWrite, 7, 7, true},
		{"author_can_delete_own", sec.RoleUser, sec.OpDelete, 7, 7, true},
		{"stranger_cannot_write", sec.RoleUser, sec.OpWrite, 7, 8, false},
		{"stranger_cannot_delete", sec.RoleUser, sec.OpDelete, 7, 8, false},
		{"moderator_can_write_any", sec.RoleModerator, sec.OpWrite, 7, 8, true},
		{"moderator_can_delete_any", sec.RoleModerator, sec.OpDelete, 7, 8, true},
		{"admin_can_write_any", sec.RoleAdmin, sec.OpWrite, 7, 8, true},
		{"admin_can_delete_any", sec.RoleAdmin, sec.OpDelete, 7, 8, true},
		{"unknown_role_denied", "superuser", sec.OpDelete, 7, 8, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sec.Authorize(tt.role, tt.op, tt.ownerID, tt.requesterID)
			assert.Equal(t, tt.allowed, got)
		})
	}
}

/*
TestUserRole_AtLeast checks the role hierarchy ordering.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleModerator))
	assert.True(t, sec.RoleModerator.AtLeast(sec.RoleUser))
	assert.False(t, sec.RoleUser.AtLeast(sec.RoleModerator))
	assert.False(t, sec.UserRole("").AtLeast(sec.RoleUser))
}
