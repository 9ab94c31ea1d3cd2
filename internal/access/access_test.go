package access

import (
	"testing"

	"github.com/BruksfildServices01/turnera-api/internal/httperr"
)

func TestRequireRole(t *testing.T) {
	sec := &Claims{UserID: 3, Role: RoleSecretaria}

	if err := RequireRole(sec, RoleAdmin, RoleSecretaria); err != nil {
		t.Errorf("secretaria should pass, got %v", err)
	}
	if err := RequireRole(sec, RoleAdmin); httperr.KindOf(err) != httperr.KindForbidden {
		t.Errorf("expected forbidden, got %v", err)
	}
	if err := RequireRole(nil, RoleAdmin); httperr.KindOf(err) != httperr.KindForbidden {
		t.Errorf("nil claims must be forbidden, got %v", err)
	}
}

func TestRequireOwnership(t *testing.T) {
	tests := []struct {
		name   string
		claims *Claims
		owner  string
		ok     bool
	}{
		{"admin bypass", &Claims{Role: RoleAdmin}, "12345678", true},
		{"secretaria bypass", &Claims{Role: RoleSecretaria}, "12345678", true},
		{"patient owns", &Claims{Role: RolePaciente, Reference: "12345678"}, "12345678", true},
		{"patient other", &Claims{Role: RolePaciente, Reference: "12345678"}, "87654321", false},
		{"doctor owns", &Claims{Role: RoleDoctor, Reference: "1"}, "1", true},
		{"doctor without reference", &Claims{Role: RoleDoctor}, "", false},
		{"nil", nil, "1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireOwnership(tt.claims, tt.owner)
			if tt.ok && err != nil {
				t.Errorf("expected access, got %v", err)
			}
			if !tt.ok && httperr.KindOf(err) != httperr.KindForbidden {
				t.Errorf("expected forbidden, got %v", err)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	if r, ok := ParseRole("PACIENTE"); !ok || r != RolePaciente {
		t.Errorf("expected paciente, got %q %v", r, ok)
	}
	if _, ok := ParseRole("superuser"); ok {
		t.Error("unknown roles must be rejected")
	}
	if !IsPrivileged(&Claims{Role: RoleAdmin}) || IsPrivileged(&Claims{Role: RoleSecretaria}) {
		t.Error("only admin is privileged")
	}
}
