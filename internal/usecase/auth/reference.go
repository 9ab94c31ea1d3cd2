package auth

import (
	"context"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	"github.com/BruksfildServices01/turnera-api/internal/domain/identity"
	"github.com/BruksfildServices01/turnera-api/internal/httperr"
)

// resolveRole defaults an empty role to paciente.
func resolveRole(raw string) (access.Role, error) {
	if strings.TrimSpace(raw) == "" {
		return access.RolePaciente, nil
	}
	role, ok := access.ParseRole(raw)
	if !ok {
		return "", httperr.ErrInvalid("invalid_role", "Rol inválido.")
	}
	return role, nil
}

// resolveReference checks that the reference fits role and returns the
// value to persist: cleared for admin and secretaria.
func resolveReference(
	ctx context.Context,
	repo identity.Repository,
	role access.Role,
	raw string,
) (string, error) {

	ref := strings.TrimSpace(raw)

	switch role {
	case access.RoleDoctor:
		if ref == "" {
			return "", httperr.ErrInvalid("reference_required", "El rol doctor requiere idReferencia.")
		}
		id, err := strconv.ParseUint(ref, 10, 64)
		if err != nil || id == 0 {
			return "", httperr.ErrInvalid("invalid_reference", "idReferencia debe ser el id de un doctor.")
		}
		ok, err := repo.DoctorExists(ctx, uint(id))
		if err != nil {
			return "", err
		}
		if !ok {
			return "", httperr.ErrInvalid("doctor_reference_not_found", "El doctor referenciado no existe.")
		}
		return strconv.FormatUint(id, 10), nil

	case access.RolePaciente:
		if ref == "" {
			return "", httperr.ErrInvalid("reference_required", "El rol paciente requiere idReferencia.")
		}
		ok, err := repo.PatientExists(ctx, ref)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", httperr.ErrInvalid("patient_reference_not_found", "El paciente referenciado no existe.")
		}
		return ref, nil

	default:
		return "", nil
	}
}
