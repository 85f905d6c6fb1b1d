package domain

import (
	"encoding/json"
	"fmt"
)

// Role is one of the three account levels. Ordering: superadmin > admin > user.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// ParseRole rejects anything outside the closed set.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleUser, RoleAdmin, RoleSuperadmin:
		return r, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrValidationConflict, s)
	}
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) rank() int {
	switch r {
	case RoleSuperadmin:
		return 3
	case RoleAdmin:
		return 2
	case RoleUser:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether r sits at or above min in the hierarchy.
// Unknown values never satisfy any minimum.
func (r Role) AtLeast(min Role) bool {
	return r.rank() > 0 && r.rank() >= min.rank()
}

func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
