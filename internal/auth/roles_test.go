package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/user-auth-service/internal/domain"
)

func TestRoleGate_Allows(t *testing.T) {
	gate := NewRoleGate(domain.RoleManager, domain.RoleGeneralManager)

	cases := []struct {
		name     string
		identity *domain.Identity
		want     bool
	}{
		{name: "manager allowed", identity: &domain.Identity{SubjectID: "1", Role: domain.RoleManager}, want: true},
		{name: "general manager allowed", identity: &domain.Identity{SubjectID: "2", Role: domain.RoleGeneralManager}, want: true},
		{name: "guest denied", identity: &domain.Identity{SubjectID: "3", Role: domain.RoleGuest}, want: false},
		{name: "empty role denied", identity: &domain.Identity{SubjectID: "4"}, want: false},
		{name: "case differs denied", identity: &domain.Identity{SubjectID: "5", Role: "Manager"}, want: false},
		{name: "absent identity denied", identity: nil, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, gate.Allows(tc.identity))
		})
	}
}

func TestRoleGate_EmptyAllowListDeniesEveryone(t *testing.T) {
	gate := NewRoleGate()
	assert.False(t, gate.Allows(&domain.Identity{SubjectID: "1", Role: domain.RoleGeneralManager}))
}

func TestRoleGate_NilGateDenies(t *testing.T) {
	var gate *RoleGate
	assert.False(t, gate.Allows(&domain.Identity{SubjectID: "1", Role: domain.RoleGeneralManager}))
}

func TestRolesFromStrings(t *testing.T) {
	roles := RolesFromStrings([]string{"general_manager", "front_office_manager"})
	assert.Equal(t, []domain.Role{domain.RoleGeneralManager, domain.RoleFrontOfficeManager}, roles)
}
