package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRoles_ScalarLegacyForm(t *testing.T) {
	roles := NormalizeRoles("student")
	assert.Equal(t, []Role{RoleStudent}, roles)
}

func TestNormalizeRoles_ArrayForm(t *testing.T) {
	roles := NormalizeRoles(`["student","instructor","student"]`)
	assert.Equal(t, []Role{RoleStudent, RoleInstructor}, roles)
}

func TestNormalizeRoles_Empty(t *testing.T) {
	assert.Nil(t, NormalizeRoles(""))
	assert.Nil(t, NormalizeRoles("   "))
}

func TestDenormalizeRoles_AlwaysArray(t *testing.T) {
	assert.Equal(t, `["student"]`, DenormalizeRoles([]Role{RoleStudent}))
	assert.Equal(t, `[]`, DenormalizeRoles(nil))
}

func TestNormalizeDenormalizeRoundTrip(t *testing.T) {
	in := []Role{RoleSchool, RoleAdmin}
	assert.Equal(t, in, NormalizeRoles(DenormalizeRoles(in)))
}

func TestUnionRoles_Idempotent(t *testing.T) {
	roles := UnionRoles([]Role{RoleInstructor}, RoleStudent)
	assert.Equal(t, []Role{RoleInstructor, RoleStudent}, roles)

	again := UnionRoles(roles, RoleStudent)
	assert.Equal(t, roles, again)
}

func TestUnionIDs_DuplicateSafe(t *testing.T) {
	set := UnionIDs([]int64{1, 2}, 2, 3, 3)
	assert.Equal(t, []int64{1, 2, 3}, set)
}

func TestRemoveID_AbsentIsNoop(t *testing.T) {
	set := []int64{1, 2}
	assert.Equal(t, []int64{1, 2}, RemoveID(set, 9))
	assert.Equal(t, []int64{1}, RemoveID(set, 2))
}

func TestMemberOfSchool_FoldsLegacyScalar(t *testing.T) {
	legacy := int64(4)
	u := User{SchoolID: &legacy}
	assert.True(t, u.MemberOfSchool(4))
	assert.False(t, u.MemberOfSchool(5))

	u2 := User{SchoolIDs: []int64{7}}
	assert.True(t, u2.MemberOfSchool(7))
}
