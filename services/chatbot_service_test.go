package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"healthcare-assistant-backend/models"
)

type stubLocator struct {
	providers []models.Provider
	err       error
	lastQuery string
}

func (s *stubLocator) FindNearbyProviders(_ context.Context, location string) ([]models.Provider, error) {
	s.lastQuery = location
	return s.providers, s.err
}

// newTestService pins template selection to index 0 so replies are
// deterministic.
func newTestService(locator ProviderLocator) (*ChatbotService, *MemoryContextStore, *APIKeyService) {
	store := NewMemoryContextStore()
	keys := NewAPIKeyService()
	svc := NewChatbotService(store, locator, keys)
	svc.pickIndex = func(int) int { return 0 }
	return svc, store, keys
}

func (s *ChatbotService) turn(t *testing.T, conversationID, message string) *models.ChatResponse {
	t.Helper()
	resp, err := s.ProcessMessage(context.Background(), models.ChatRequest{
		Message:        message,
		ConversationID: conversationID,
	})
	if err != nil {
		t.Fatalf("ProcessMessage(%q): %v", message, err)
	}
	return resp
}

func TestIntakeFlow(t *testing.T) {
	svc, store, _ := newTestService(&stubLocator{})

	resp := svc.turn(t, "conv-test", "Hi")
	if resp.Intent != models.IntentGreeting {
		t.Fatalf("greeting turn intent = %q", resp.Intent)
	}
	if resp.NeedsInfo {
		t.Error("greeting turn should not flag needs_info")
	}
	want := greetingTemplates[0] + " " + followUpQuestions[0]
	if resp.Message.Content != want {
		t.Errorf("greeting content = %q, want %q", resp.Message.Content, want)
	}

	resp = svc.turn(t, "conv-test", "I have a bad headache")
	if !resp.NeedsInfo || resp.InfoType != string(models.FieldDuration) {
		t.Fatalf("after symptoms: needsInfo=%v infoType=%q, want duration prompt", resp.NeedsInfo, resp.InfoType)
	}
	if !strings.HasPrefix(resp.Message.Content, fieldAcknowledgments[models.FieldSymptoms]) {
		t.Errorf("expected symptom acknowledgment prefix, got %q", resp.Message.Content)
	}

	resp = svc.turn(t, "conv-test", "since yesterday")
	if !resp.NeedsInfo || resp.InfoType != string(models.FieldSeverity) {
		t.Fatalf("after duration: needsInfo=%v infoType=%q, want severity prompt", resp.NeedsInfo, resp.InfoType)
	}

	resp = svc.turn(t, "conv-test", "8")
	if resp.Intent != models.IntentSeverityRating {
		t.Errorf("rating turn intent = %q", resp.Intent)
	}
	if resp.NeedsInfo {
		t.Error("guidance turn should not flag needs_info")
	}
	if !strings.Contains(resp.Message.Content, guidanceTemplates[bucketUrgent][0]) {
		t.Errorf("severity 8 should produce urgent guidance, got %q", resp.Message.Content)
	}

	convo, _ := store.Load(context.Background(), "conv-test")
	if convo.CurrentGoal != models.GoalProvideGuidance {
		t.Errorf("final goal = %q, want %q", convo.CurrentGoal, models.GoalProvideGuidance)
	}
	if convo.Fields[models.FieldSeverity].Rating != 8 {
		t.Errorf("severity rating = %d, want 8", convo.Fields[models.FieldSeverity].Rating)
	}
}

func TestFirstTurnSymptomSkipsGreetingPhase(t *testing.T) {
	svc, _, _ := newTestService(&stubLocator{})

	resp := svc.turn(t, "conv-skip", "I have a bad headache")
	if resp.Intent != models.IntentSymptomDescription {
		t.Fatalf("intent = %q", resp.Intent)
	}
	if !resp.NeedsInfo || resp.InfoType != string(models.FieldDuration) {
		t.Errorf("needsInfo=%v infoType=%q, want duration prompt", resp.NeedsInfo, resp.InfoType)
	}
}

func TestVolunteeredEverythingYieldsGuidanceImmediately(t *testing.T) {
	svc, _, _ := newTestService(&stubLocator{})

	resp := svc.turn(t, "conv-all", "I have a headache, the pain is 9 out of 10, started two days ago")
	if resp.NeedsInfo {
		t.Fatalf("all fields volunteered, still asking for %q", resp.InfoType)
	}
	if !strings.Contains(resp.Message.Content, guidanceTemplates[bucketUrgent][0]) {
		t.Errorf("expected urgent guidance, got %q", resp.Message.Content)
	}
}

func TestDurationAskedBeforeGuidanceDespiteKnownSeverity(t *testing.T) {
	svc, _, _ := newTestService(&stubLocator{})

	resp := svc.turn(t, "conv-order", "my chest hurts badly, the pain is 8 out of 10")
	if !resp.NeedsInfo || resp.InfoType != string(models.FieldDuration) {
		t.Fatalf("needsInfo=%v infoType=%q, want duration before guidance", resp.NeedsInfo, resp.InfoType)
	}

	resp = svc.turn(t, "conv-order", "it began 2 days ago")
	if resp.NeedsInfo {
		t.Fatalf("duration supplied, still asking for %q", resp.InfoType)
	}
	if !strings.Contains(resp.Message.Content, guidanceTemplates[bucketUrgent][0]) {
		t.Errorf("expected urgent guidance from stored rating, got %q", resp.Message.Content)
	}
}

func TestChronicDurationOverridesSeverityBucket(t *testing.T) {
	svc, _, _ := newTestService(&stubLocator{})

	svc.turn(t, "conv-chronic", "I have a persistent cough")
	svc.turn(t, "conv-chronic", "for about three weeks now")
	resp := svc.turn(t, "conv-chronic", "it's an 8")

	if !strings.Contains(resp.Message.Content, guidanceTemplates[bucketFollowUp][0]) {
		t.Errorf("weeks-long duration should select follow-up guidance, got %q", resp.Message.Content)
	}
}

func TestDetailedNextStepsOnRequest(t *testing.T) {
	svc, _, _ := newTestService(&stubLocator{})

	svc.turn(t, "conv-steps", "I have a headache")
	svc.turn(t, "conv-steps", "since yesterday")
	svc.turn(t, "conv-steps", "8")
	resp := svc.turn(t, "conv-steps", "What should I do now?")

	if resp.NeedsInfo {
		t.Fatal("detailed next steps should not flag needs_info")
	}
	if !strings.Contains(resp.Message.Content, "here is what I recommend") {
		t.Errorf("expected structured recommendation, got %q", resp.Message.Content)
	}
	// head symptoms get the head-specific warning signs
	if !strings.Contains(resp.Message.Content, warningSigns["head"][0]) {
		t.Errorf("expected head warning signs, got %q", resp.Message.Content)
	}
}

func TestProviderLookupBypassesIntake(t *testing.T) {
	locator := &stubLocator{providers: []models.Provider{
		{Name: "Memorial Hermann Hospital", Type: "Hospital"},
		{Name: "Kelsey-Seybold Clinic", Type: "Medical Clinic"},
	}}
	svc, store, _ := newTestService(locator)

	resp := svc.turn(t, "conv-lookup", "Is there a clinic near 123 Main St, Houston, TX 77005?")
	if len(resp.Message.Attachments) != 2 {
		t.Fatalf("attachments = %d, want 2", len(resp.Message.Attachments))
	}
	if locator.lastQuery != "123 Main St, Houston, TX 77005" {
		t.Errorf("lookup query = %q, want extracted address", locator.lastQuery)
	}
	if resp.NeedsInfo {
		t.Error("provider lookup should not enter the intake flow")
	}

	// the lookup turn must not collect intake fields
	convo, _ := store.Load(context.Background(), "conv-lookup")
	if convo.Fields[models.FieldSymptoms].Collected {
		t.Error("lookup turn collected symptoms")
	}
}

func TestProviderLookupFailure(t *testing.T) {
	locator := &stubLocator{err: errors.New("geocoding down")}
	svc, store, _ := newTestService(locator)

	resp := svc.turn(t, "conv-fail", "find a hospital near me")
	if resp.Message.Content != providerLookupFailureMessage {
		t.Errorf("failure content = %q", resp.Message.Content)
	}

	convo, _ := store.Load(context.Background(), "conv-fail")
	if !convo.LastInteraction.IsZero() {
		t.Error("failed lookup should not touch the conversation context")
	}
}

func TestFailedLookupLeavesGreetingStateIntact(t *testing.T) {
	locator := &stubLocator{err: errors.New("geocoding down")}
	svc, store, _ := newTestService(locator)

	resp := svc.turn(t, "conv-greet-fail", "Hi, can you find a hospital near me?")
	if resp.Message.Content != providerLookupFailureMessage {
		t.Fatalf("failure content = %q", resp.Message.Content)
	}

	convo, _ := store.Load(context.Background(), "conv-greet-fail")
	if convo.HasGreeted {
		t.Error("failed lookup turn mutated the greeting state")
	}

	// the next greeting still counts as a first greeting
	resp = svc.turn(t, "conv-greet-fail", "Hello")
	if resp.Intent != models.IntentGreeting {
		t.Errorf("post-failure greeting intent = %q, want %q", resp.Intent, models.IntentGreeting)
	}
}

func TestResetConversation(t *testing.T) {
	svc, store, _ := newTestService(&stubLocator{})

	svc.turn(t, "conv-reset", "Hi")
	svc.turn(t, "conv-reset", "I have a headache")
	if err := svc.ResetConversation(context.Background(), "conv-reset"); err != nil {
		t.Fatalf("ResetConversation: %v", err)
	}

	convo, _ := store.Load(context.Background(), "conv-reset")
	if convo.CurrentGoal != models.GoalInitialGreeting || convo.HasGreeted {
		t.Errorf("reset left goal=%q hasGreeted=%v", convo.CurrentGoal, convo.HasGreeted)
	}
	for name, field := range convo.Fields {
		if field.Collected || field.Value != "" || field.Rating != 0 {
			t.Errorf("field %s not cleared: %+v", name, field)
		}
	}
	if convo.Fields[models.FieldSymptoms].Importance != models.ImportanceHigh {
		t.Error("reset must preserve field importance")
	}

	// greeting works again after reset
	resp := svc.turn(t, "conv-reset", "Hi")
	if resp.Intent != models.IntentGreeting {
		t.Errorf("post-reset greeting intent = %q", resp.Intent)
	}
}

func TestInvalidAPIKeyShortCircuits(t *testing.T) {
	svc, store, keys := newTestService(&stubLocator{})

	resp, err := svc.ProcessMessage(context.Background(), models.ChatRequest{
		Message:        "I have a headache",
		ConversationID: "conv-key",
		APIKey:         "bogus",
	})
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if resp.Message.Content != invalidAPIKeyMessage {
		t.Errorf("content = %q, want the invalid-key message", resp.Message.Content)
	}

	convo, _ := store.Load(context.Background(), "conv-key")
	if convo.Fields[models.FieldSymptoms].Collected {
		t.Error("rejected turn must not collect intake data")
	}

	// a freshly generated key passes the gate
	key := keys.GenerateAPIKey(models.RolePatient)
	resp, err = svc.ProcessMessage(context.Background(), models.ChatRequest{
		Message:        "I have a headache",
		ConversationID: "conv-key",
		APIKey:         key,
	})
	if err != nil {
		t.Fatalf("ProcessMessage with valid key: %v", err)
	}
	if resp.Intent != models.IntentSymptomDescription {
		t.Errorf("valid-key turn intent = %q", resp.Intent)
	}
}

func TestSeverityRestatementUpdatesGuidance(t *testing.T) {
	svc, store, _ := newTestService(&stubLocator{})

	svc.turn(t, "conv-restate", "I have a headache")
	svc.turn(t, "conv-restate", "since yesterday")
	svc.turn(t, "conv-restate", "3")

	resp := svc.turn(t, "conv-restate", "actually it's gotten worse, more like a 9")
	convo, _ := store.Load(context.Background(), "conv-restate")
	if convo.Fields[models.FieldSeverity].Rating != 9 {
		t.Fatalf("restated rating = %d, want 9", convo.Fields[models.FieldSeverity].Rating)
	}
	if !strings.Contains(resp.Message.Content, guidanceTemplates[bucketUrgent][0]) {
		t.Errorf("re-rated turn should issue urgent guidance, got %q", resp.Message.Content)
	}
}

func TestConversationsAreIsolated(t *testing.T) {
	svc, store, _ := newTestService(&stubLocator{})

	svc.turn(t, "conv-a", "I have a headache")
	svc.turn(t, "conv-b", "Hi")

	a, _ := store.Load(context.Background(), "conv-a")
	b, _ := store.Load(context.Background(), "conv-b")
	if !a.Fields[models.FieldSymptoms].Collected {
		t.Error("conv-a lost its symptoms")
	}
	if b.Fields[models.FieldSymptoms].Collected {
		t.Error("conv-b picked up conv-a's symptoms")
	}
}
