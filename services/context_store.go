package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"healthcare-assistant-backend/models"
)

// ContextStore keeps one ConversationContext per conversation id, so
// concurrent conversations never share mutable state. Load returns a
// fresh context for unknown ids.
type ContextStore interface {
	Load(ctx context.Context, conversationID string) (*models.ConversationContext, error)
	Save(ctx context.Context, convo *models.ConversationContext) error
}

// MemoryContextStore is the default single-instance store. Load and Save
// work on deep copies, matching the Redis store's serialization
// semantics: mutations on a loaded context only stick once saved.
type MemoryContextStore struct {
	mu       sync.RWMutex
	contexts map[string]*models.ConversationContext
}

func NewMemoryContextStore() *MemoryContextStore {
	return &MemoryContextStore{
		contexts: make(map[string]*models.ConversationContext),
	}
}

func (s *MemoryContextStore) Load(_ context.Context, conversationID string) (*models.ConversationContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	convo, ok := s.contexts[conversationID]
	if !ok {
		convo = models.NewConversationContext(conversationID)
		s.contexts[conversationID] = convo
	}
	return convo.Clone(), nil
}

func (s *MemoryContextStore) Save(_ context.Context, convo *models.ConversationContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contexts[convo.ConversationID] = convo.Clone()
	return nil
}

const (
	contextTTL       = 24 * time.Hour
	contextKeyPrefix = "conversation:"
)

// RedisContextStore persists contexts as JSON blobs with a TTL, for
// deployments running more than one backend instance.
type RedisContextStore struct {
	rdb *redis.Client
}

func NewRedisContextStore(rdb *redis.Client) *RedisContextStore {
	return &RedisContextStore{rdb: rdb}
}

func (s *RedisContextStore) Load(ctx context.Context, conversationID string) (*models.ConversationContext, error) {
	data, err := s.rdb.Get(ctx, contextKeyPrefix+conversationID).Bytes()
	if err == redis.Nil {
		return models.NewConversationContext(conversationID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation context: %w", err)
	}

	var convo models.ConversationContext
	if err := json.Unmarshal(data, &convo); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation context: %w", err)
	}
	return &convo, nil
}

func (s *RedisContextStore) Save(ctx context.Context, convo *models.ConversationContext) error {
	data, err := json.Marshal(convo)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation context: %w", err)
	}
	if err := s.rdb.Set(ctx, contextKeyPrefix+convo.ConversationID, data, contextTTL).Err(); err != nil {
		return fmt.Errorf("failed to save conversation context: %w", err)
	}
	return nil
}
