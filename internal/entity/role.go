package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

const (
	RoleAdmin   = "ADMIN"
	RoleDefault = "USER"
)

// Module permission names. A role holding one of these grants access to the
// matching functional area.
const (
	PermContacts      = "contacts"
	PermUsers         = "users"
	PermOrganizations = "organizations"
)

type Role struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	Permissions []Permission `json:"permissions"`
	CreatedAt   time.Time    `json:"createdAt"`
}

type Permission struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
