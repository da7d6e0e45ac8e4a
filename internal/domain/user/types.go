package user

type Role string

const (
	RoleRenter   Role = "renter"
	RoleCarOwner Role = "carOwner"
	RoleMechanic Role = "mechanic"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleRenter, RoleCarOwner, RoleMechanic, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// IsSelfRegistrable reports whether the role may be chosen at sign-up.
func (r Role) IsSelfRegistrable() bool {
	switch r {
	case RoleRenter, RoleCarOwner, RoleMechanic:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
