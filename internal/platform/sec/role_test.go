// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/harmonia/internal/platform/sec"
)

/*
TestUserRole_AtLeast checks the staff role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleManager))
	assert.True(t, sec.RoleManager.AtLeast(sec.RoleManager))
	assert.False(t, sec.RoleViewer.AtLeast(sec.RoleManager))
	assert.False(t, sec.UserRole("guest").AtLeast(sec.RoleViewer))
	assert.False(t, sec.UserRole("guest").IsValid())
}
