package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

type User struct {
	ID             uuid.UUID     `json:"id"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	PasswordHash   string        `json:"-"`
	Extension      *string       `json:"extension,omitempty"`
	RoleID         *uuid.UUID    `json:"roleId,omitempty"`
	OrganizationID *uuid.UUID    `json:"organizationId,omitempty"`
	Role           *Role         `json:"role,omitempty"`
	Organization   *Organization `json:"organization,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// RoleName resolves the effective role designation: users without an assigned
// role act under the default one.
func (u User) RoleName() string {
	if u.Role == nil {
		return RoleDefault
	}

	return u.Role.Name
}

// PermissionNames flattens the names of the assigned role's permission set.
func (u User) PermissionNames() []string {
	if u.Role == nil {
		return []string{}
	}

	names := make([]string, 0, len(u.Role.Permissions))
	for _, p := range u.Role.Permissions {
		names = append(names, p.Name)
	}

	return names
}
