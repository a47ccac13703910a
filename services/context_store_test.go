package services

import (
	"context"
	"testing"

	"healthcare-assistant-backend/models"
)

func TestMemoryStoreCreatesFreshContexts(t *testing.T) {
	store := NewMemoryContextStore()

	convo, err := store.Load(context.Background(), "conv-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if convo.ConversationID != "conv-1" {
		t.Errorf("conversation id = %q", convo.ConversationID)
	}
	if convo.CurrentGoal != models.GoalInitialGreeting {
		t.Errorf("fresh context goal = %q", convo.CurrentGoal)
	}
	if len(convo.Fields) != 6 {
		t.Errorf("fresh context has %d fields, want 6", len(convo.Fields))
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryContextStore()
	ctx := context.Background()

	convo, _ := store.Load(ctx, "conv-rt")
	convo.HasGreeted = true
	convo.Fields[models.FieldSymptoms].Collected = true
	convo.Fields[models.FieldSymptoms].Value = "headache"
	if err := store.Save(ctx, convo); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, _ := store.Load(ctx, "conv-rt")
	if !loaded.HasGreeted || !loaded.Fields[models.FieldSymptoms].Collected {
		t.Error("saved state not returned on reload")
	}
}

func TestMemoryStoreDiscardsUnsavedMutations(t *testing.T) {
	store := NewMemoryContextStore()
	ctx := context.Background()

	convo, _ := store.Load(ctx, "conv-dirty")
	convo.HasGreeted = true
	convo.Fields[models.FieldSymptoms].Collected = true

	reloaded, _ := store.Load(ctx, "conv-dirty")
	if reloaded.HasGreeted || reloaded.Fields[models.FieldSymptoms].Collected {
		t.Error("mutations must not be visible before Save")
	}
}

func TestMemoryStoreIsolatesConversations(t *testing.T) {
	store := NewMemoryContextStore()
	ctx := context.Background()

	a, _ := store.Load(ctx, "conv-a")
	a.Fields[models.FieldSeverity].Collected = true
	a.Fields[models.FieldSeverity].Rating = 9
	store.Save(ctx, a)

	b, _ := store.Load(ctx, "conv-b")
	if b.Fields[models.FieldSeverity].Collected {
		t.Error("conversations share field state")
	}
}
