package services

import (
	"strings"
	"testing"

	"healthcare-assistant-backend/models"
)

func TestGenerateAndValidateAPIKey(t *testing.T) {
	svc := NewAPIKeyService()

	key := svc.GenerateAPIKey(models.RolePatient)
	if !strings.HasPrefix(key, "patient_") {
		t.Errorf("key %q missing role prefix", key)
	}
	if !svc.ValidateAPIKey(key) {
		t.Error("freshly generated key should validate")
	}
	if svc.ValidateAPIKey("made_up_key") {
		t.Error("unknown key should not validate")
	}
}

func TestGeneratedKeysAreUnique(t *testing.T) {
	svc := NewAPIKeyService()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key := svc.GenerateAPIKey(models.RoleProvider)
		if seen[key] {
			t.Fatalf("duplicate key generated: %s", key)
		}
		seen[key] = true
	}
}

func TestRevokeAPIKey(t *testing.T) {
	svc := NewAPIKeyService()

	key := svc.GenerateAPIKey(models.RolePatient)
	if !svc.ValidateAPIKey(key) {
		t.Fatal("key should validate before revocation")
	}
	if !svc.RevokeAPIKey(key) {
		t.Fatal("revoking a known key should report found")
	}
	if svc.ValidateAPIKey(key) {
		t.Error("revoked key should not validate")
	}
	if svc.HasPermission(models.PermissionBasicChat) {
		t.Error("revoking the active key should clear the active-key pointer")
	}
	if svc.RevokeAPIKey("never_issued") {
		t.Error("revoking an unknown key should report not found")
	}
}

func TestRolePermissions(t *testing.T) {
	svc := NewAPIKeyService()

	patient := svc.GenerateAPIKey(models.RolePatient)
	provider := svc.GenerateAPIKey(models.RoleProvider)

	if !svc.KeyHasPermission(patient, models.PermissionBasicChat) {
		t.Error("patient key should allow basic chat")
	}
	if svc.KeyHasPermission(patient, models.PermissionHistoryAccess) {
		t.Error("patient key should not allow history access")
	}
	if !svc.KeyHasPermission(provider, models.PermissionHistoryAccess) {
		t.Error("provider key should allow history access")
	}
	if !svc.KeyHasPermission(provider, models.PermissionPatientData) {
		t.Error("provider key should allow patient data access")
	}
}

func TestHasPermissionRequiresActiveKey(t *testing.T) {
	svc := NewAPIKeyService()

	key := svc.GenerateAPIKey(models.RoleProvider)
	if svc.HasPermission(models.PermissionBasicChat) {
		t.Error("no key validated yet, permission check should fail")
	}

	svc.ValidateAPIKey(key)
	if !svc.HasPermission(models.PermissionHistoryAccess) {
		t.Error("validated provider key should grant history access")
	}
}
