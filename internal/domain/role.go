package domain

// Role enumerates the fixed set of account roles.
type Role string

const (
	RoleGeneralManager     Role = "general_manager"
	RoleFrontOfficeManager Role = "front_office_manager"
	RoleManager            Role = "manager"
	RoleReceptionist       Role = "receptionist"
	RoleGuest              Role = "guest"
)

var knownRoles = map[Role]struct{}{
	RoleGeneralManager:     {},
	RoleFrontOfficeManager: {},
	RoleManager:            {},
	RoleReceptionist:       {},
	RoleGuest:              {},
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	_, ok := knownRoles[r]
	return ok
}
