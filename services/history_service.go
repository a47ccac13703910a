package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"healthcare-assistant-backend/models"
)

// HistoryService is the transcript persistence collaborator. The engine
// only ever appends here; cross-turn memory lives in the
// ConversationContext, not in the transcript.
type HistoryService struct {
	db *mongo.Database
}

func NewHistoryService(db *mongo.Database) *HistoryService {
	return &HistoryService{db: db}
}

// AppendMessage stores one message and bumps the conversation header.
func (s *HistoryService) AppendMessage(ctx context.Context, message models.Message) error {
	if _, err := s.db.Collection("messages").InsertOne(ctx, message); err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}

	now := time.Now()
	update := bson.M{
		"$set": bson.M{"updated_at": now},
		"$setOnInsert": bson.M{
			"conversation_id": message.ConversationID,
			"created_at":      now,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := s.db.Collection("conversations").UpdateOne(ctx,
		bson.M{"conversation_id": message.ConversationID}, update, opts); err != nil {
		return fmt.Errorf("failed to update conversation: %w", err)
	}
	return nil
}

// GetConversation returns the conversation header document. The error
// wraps mongo.ErrNoDocuments for unknown ids.
func (s *HistoryService) GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
	var convo models.Conversation
	err := s.db.Collection("conversations").FindOne(ctx,
		bson.M{"conversation_id": conversationID}).Decode(&convo)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation %s: %w", conversationID, err)
	}
	return &convo, nil
}

// GetMessages returns a conversation's transcript in chronological order.
func (s *HistoryService) GetMessages(ctx context.Context, conversationID string, limit int64) ([]models.Message, error) {
	if limit <= 0 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: 1}}).
		SetLimit(limit)
	cursor, err := s.db.Collection("messages").Find(ctx,
		bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return messages, nil
}
