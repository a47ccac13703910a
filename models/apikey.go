package models

type APIKeyRole string

const (
	RolePatient  APIKeyRole = "patient"
	RoleProvider APIKeyRole = "provider"
)

const (
	PermissionBasicChat     = "basic_chat"
	PermissionVoiceInput    = "voice_input"
	PermissionHistoryAccess = "history_access"
	PermissionPatientData   = "patient_data"
)

// APIKeyRecord persists for the process lifetime. Revocation flips
// IsValid instead of deleting the record so revoked keys stay auditable.
type APIKeyRecord struct {
	Key         string          `json:"key"`
	Role        APIKeyRole      `json:"role"`
	Permissions map[string]bool `json:"permissions"`
	IsValid     bool            `json:"is_valid"`
}

// DefaultPermissions returns the permission set a role is granted at key
// generation time. Providers get everything patients get.
func DefaultPermissions(role APIKeyRole) map[string]bool {
	permissions := map[string]bool{
		PermissionBasicChat:  true,
		PermissionVoiceInput: true,
	}
	if role == RoleProvider {
		permissions[PermissionHistoryAccess] = true
		permissions[PermissionPatientData] = true
	}
	return permissions
}
