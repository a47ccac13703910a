package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"healthcare-assistant-backend/models"
)

// APIKeyService is the process-wide credential registry gating access to
// the engine. Revoked records are invalidated, never deleted.
type APIKeyService struct {
	mu        sync.RWMutex
	records   map[string]*models.APIKeyRecord
	activeKey string
}

func NewAPIKeyService() *APIKeyService {
	return &APIKeyService{
		records: make(map[string]*models.APIKeyRecord),
	}
}

// GenerateAPIKey synthesizes a unique key of the form
// <role>_<random payload>_<unix nanos> and registers it as valid with
// the role's default permission set.
func (s *APIKeyService) GenerateAPIKey(role models.APIKeyRole) string {
	payload := strings.ReplaceAll(uuid.New().String(), "-", "")
	key := fmt.Sprintf("%s_%s_%d", role, payload, time.Now().UnixNano())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = &models.APIKeyRecord{
		Key:         key,
		Role:        role,
		Permissions: models.DefaultPermissions(role),
		IsValid:     true,
	}
	return key
}

// ValidateAPIKey reports whether the key exists and is still valid, and
// marks it as the active key when it is. It never fails hard.
func (s *APIKeyService) ValidateAPIKey(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[key]
	if !ok || !record.IsValid {
		return false
	}
	s.activeKey = key
	return true
}

// RevokeAPIKey invalidates the key and clears the active-key pointer if
// it was active. Returns whether a record was found.
func (s *APIKeyService) RevokeAPIKey(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[key]
	if !ok {
		return false
	}
	record.IsValid = false
	if s.activeKey == key {
		s.activeKey = ""
	}
	return true
}

// HasPermission is a membership test against the active key's permission
// set; false when no key is active.
func (s *APIKeyService) HasPermission(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.activeKey == "" {
		return false
	}
	record, ok := s.records[s.activeKey]
	if !ok {
		return false
	}
	return record.Permissions[name]
}

// KeyHasPermission checks a specific key without touching the active-key
// pointer; used by request middleware where per-request keys arrive
// concurrently.
func (s *APIKeyService) KeyHasPermission(key, name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[key]
	if !ok || !record.IsValid {
		return false
	}
	return record.Permissions[name]
}
