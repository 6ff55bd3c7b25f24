package entity

import (
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/gofrs/uuid/v5"
)

// Session is the verified identity claim carried by a request. It reflects the
// role and permission set at issuance time; role changes take effect only when
// the token is re-issued.
type Session struct {
	UserID      uuid.UUID `json:"id"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
}

type SessionClaims struct {
	Session Session `json:"user"`
	jwt.RegisteredClaims
}

// AccessScope is the authorization view of a session: either unrestricted
// (ADMIN) or limited to an explicit set of module permission names.
type AccessScope struct {
	unrestricted bool
	perms        map[string]struct{}
}

func (s Session) Scope() AccessScope {
	if s.Role == RoleAdmin {
		return AccessScope{unrestricted: true}
	}

	perms := make(map[string]struct{}, len(s.Permissions))
	for _, name := range s.Permissions {
		perms[name] = struct{}{}
	}

	return AccessScope{perms: perms}
}

func (a AccessScope) Allows(module string) bool {
	if a.unrestricted {
		return true
	}

	_, ok := a.perms[module]

	return ok
}

func (a AccessScope) Unrestricted() bool {
	return a.unrestricted
}

type SessionTokens struct {
	AccessToken string `json:"accessToken"`
}
