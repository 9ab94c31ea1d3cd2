package access

import (
	"slices"
	"strings"

	"github.com/BruksfildServices01/turnera-api/internal/httperr"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDoctor     Role = "doctor"
	RoleSecretaria Role = "secretaria"
	RolePaciente   Role = "paciente"
)

var AllRoles = []Role{RoleAdmin, RoleDoctor, RoleSecretaria, RolePaciente}

// ParseRole accepts the role names case-insensitively.
func ParseRole(s string) (Role, bool) {
	for _, r := range AllRoles {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r, true
		}
	}
	return "", false
}

// NeedsReference reports whether identities with this role must point at a
// doctor or patient record.
func (r Role) NeedsReference() bool {
	return r == RoleDoctor || r == RolePaciente
}

// Claims is the authenticated caller as carried by the bearer token.
type Claims struct {
	UserID    uint
	Email     string
	Role      Role
	Reference string
}

var errForbidden = httperr.ErrForbidden("forbidden", "No tiene permisos para realizar esta acción.")

func RequireRole(claims *Claims, allowed ...Role) error {
	if claims == nil {
		return errForbidden
	}
	if !slices.Contains(allowed, claims.Role) {
		return errForbidden
	}
	return nil
}

// RequireOwnership lets admin and secretaria through. Doctors and patients
// must own the record, i.e. their reference equals ownerRef.
func RequireOwnership(claims *Claims, ownerRef string) error {
	if claims == nil {
		return errForbidden
	}
	switch claims.Role {
	case RoleAdmin, RoleSecretaria:
		return nil
	case RoleDoctor, RolePaciente:
		if claims.Reference != "" && claims.Reference == ownerRef {
			return nil
		}
	}
	return errForbidden
}

// IsPrivileged reports whether the caller may see inactive records.
func IsPrivileged(claims *Claims) bool {
	return claims != nil && claims.Role == RoleAdmin
}
