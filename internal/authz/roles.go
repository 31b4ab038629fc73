package authz

import "fmt"

// Role is the closed set of account roles. Authorization checks switch on it
// exhaustively instead of comparing free-form strings.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleDonor       Role = "donor"
	RoleBeneficiary Role = "beneficiary"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleDonor, RoleBeneficiary:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string { return string(r) }
