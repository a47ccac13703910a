package services

import (
	"context"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"healthcare-assistant-backend/models"
	"healthcare-assistant-backend/utils"
)

// ChatbotService is the dialogue engine. One ProcessMessage call runs
// classification, entity extraction, planning, and rendering as a single
// synchronous step; the only blocking collaborator is the provider
// lookup, which never leaves the conversation context half-updated.
type ChatbotService struct {
	classifier *utils.IntentClassifier
	contexts   ContextStore
	providers  ProviderLocator
	apiKeys    *APIKeyService

	// pickIndex selects a template from a candidate list. Tests swap in
	// a deterministic stub.
	pickIndex func(n int) int
}

func NewChatbotService(contexts ContextStore, providers ProviderLocator, apiKeys *APIKeyService) *ChatbotService {
	return &ChatbotService{
		classifier: utils.NewIntentClassifier(),
		contexts:   contexts,
		providers:  providers,
		apiKeys:    apiKeys,
		pickIndex:  rand.Intn,
	}
}

// ProcessMessage handles one user turn and returns the assistant reply.
// An invalid API key short-circuits before any state is touched.
func (s *ChatbotService) ProcessMessage(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	if req.ConversationID == "" {
		req.ConversationID = utils.NewConversationID()
	}

	if req.APIKey != "" && !s.apiKeys.ValidateAPIKey(req.APIKey) {
		return &models.ChatResponse{
			Message: s.newAssistantMessage(req.ConversationID, invalidAPIKeyMessage),
			Intent:  models.IntentGeneralQuery,
		}, nil
	}

	convo, err := s.contexts.Load(ctx, req.ConversationID)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(req.Message)
	intent := s.classifier.Classify(req.Message, convo.HasGreeted)

	// Provider lookup bypasses the intake state machine entirely. It must
	// come before any context mutation so a failed lookup cannot leave the
	// conversation half-updated.
	if utils.IsProviderLookupRequest(lower) {
		return s.handleProviderLookup(ctx, convo, req, intent)
	}

	if intent == models.IntentGreeting {
		convo.HasGreeted = true
	}

	captured := s.extractEntities(convo, req.Message, lower, intent)
	action := s.planNextAction(convo, intent)
	content, needsInfo, infoType := s.render(action, convo, intent, captured)

	convo.LastInteraction = time.Now()
	if err := s.contexts.Save(ctx, convo); err != nil {
		return nil, err
	}

	return &models.ChatResponse{
		Message:   s.newAssistantMessage(convo.ConversationID, content),
		Intent:    intent,
		NeedsInfo: needsInfo,
		InfoType:  infoType,
	}, nil
}

// ResetConversation reinitializes the context for a conversation while
// preserving each field's static importance.
func (s *ChatbotService) ResetConversation(ctx context.Context, conversationID string) error {
	convo, err := s.contexts.Load(ctx, conversationID)
	if err != nil {
		return err
	}
	convo.Reset()
	return s.contexts.Save(ctx, convo)
}

// extractEntities scans the utterance for intake data independently of
// the classified intent and writes it into the context. Collected flags
// are sticky; values track the last capture. A severity restatement only
// overwrites once collected when the turn's intent is severity_rating,
// so numbers incidental to other phrasing don't clobber a real rating.
func (s *ChatbotService) extractEntities(convo *models.ConversationContext, raw, lower string, intent models.MessageIntent) map[models.FieldName]bool {
	captured := make(map[models.FieldName]bool)

	if utils.ContainsSymptomKeywords(lower) {
		field := convo.Fields[models.FieldSymptoms]
		if !field.Collected {
			captured[models.FieldSymptoms] = true
		}
		field.Collected = true
		field.Value = raw
	}

	if utils.MentionsDurationTopic(lower) {
		field := convo.Fields[models.FieldDuration]
		field.Value = raw
		// mentioning duration as a topic without a concrete time
		// reference does not count as collected
		if utils.ContainsDurationInfo(lower) {
			if !field.Collected {
				captured[models.FieldDuration] = true
			}
			field.Collected = true
		}
	}

	if score, ok := utils.ExtractSeverityScore(lower); ok {
		field := convo.Fields[models.FieldSeverity]
		if !field.Collected || intent == models.IntentSeverityRating {
			if !field.Collected {
				captured[models.FieldSeverity] = true
			}
			field.Collected = true
			field.Rating = score
			field.Value = strconv.Itoa(score)
		}
	}

	if utils.ContainsMedicationInfo(lower) {
		field := convo.Fields[models.FieldMedications]
		field.Collected = true
		field.Value = raw
	}
	if utils.ContainsAllergyInfo(lower) {
		field := convo.Fields[models.FieldAllergies]
		field.Collected = true
		field.Value = raw
	}
	if utils.ContainsHistoryInfo(lower) {
		field := convo.Fields[models.FieldHistory]
		field.Collected = true
		field.Value = raw
	}

	return captured
}

// planNextAction decides the next discrete action. Field completeness is
// authoritative; the declared goal only narrows which question is asked
// next. First applicable rule wins.
func (s *ChatbotService) planNextAction(convo *models.ConversationContext, intent models.MessageIntent) ActionType {
	symptoms := convo.Fields[models.FieldSymptoms]
	duration := convo.Fields[models.FieldDuration]
	severity := convo.Fields[models.FieldSeverity]

	switch {
	case intent == models.IntentGreeting ||
		(convo.CurrentGoal == models.GoalInitialGreeting && !symptoms.Collected):
		convo.CurrentGoal = models.GoalCollectSymptoms
		return ActionAskSymptoms

	case !symptoms.Collected && convo.CurrentGoal == models.GoalCollectSymptoms:
		return ActionAskSymptoms

	case symptoms.Collected && !duration.Collected &&
		(convo.CurrentGoal == models.GoalCollectSymptoms || convo.CurrentGoal == models.GoalCollectDuration):
		convo.CurrentGoal = models.GoalCollectDuration
		return ActionAskDuration

	case symptoms.Collected && duration.Collected && !severity.Collected &&
		(convo.CurrentGoal == models.GoalCollectDuration || convo.CurrentGoal == models.GoalCollectSeverity):
		convo.CurrentGoal = models.GoalCollectSeverity
		return ActionAskSeverity

	case symptoms.Collected && duration.Collected && severity.Collected:
		convo.CurrentGoal = models.GoalProvideGuidance
		if intent == models.IntentNextStepsRequest {
			return ActionDetailedNextSteps
		}
		return ActionProvideGuidance

	default:
		// safety net: re-derive the next unmet high-importance field and
		// move the goal there so the next turn stays on track
		if name, ok := convo.NextUncollectedField(); ok {
			convo.CurrentGoal = goalForField(name)
		} else {
			convo.CurrentGoal = models.GoalProvideGuidance
		}
		return ActionAskMoreInfo
	}
}

func goalForField(name models.FieldName) models.ConversationGoal {
	switch name {
	case models.FieldSymptoms:
		return models.GoalCollectSymptoms
	case models.FieldDuration:
		return models.GoalCollectDuration
	case models.FieldSeverity:
		return models.GoalCollectSeverity
	default:
		return models.GoalProvideGuidance
	}
}

// render turns the planned action into message text, reporting whether
// the engine still needs information and which field it is waiting on.
func (s *ChatbotService) render(action ActionType, convo *models.ConversationContext, intent models.MessageIntent, captured map[models.FieldName]bool) (content string, needsInfo bool, infoType string) {
	switch action {
	case ActionAskSymptoms:
		if intent == models.IntentGreeting {
			return s.pickFrom(greetingTemplates) + " " + s.pickFrom(followUpQuestions), false, ""
		}
		return infoPrompts[models.FieldSymptoms], true, string(models.FieldSymptoms)

	case ActionAskDuration:
		return s.ackPrefix(captured, models.FieldSymptoms) + infoPrompts[models.FieldDuration],
			true, string(models.FieldDuration)

	case ActionAskSeverity:
		return s.ackPrefix(captured, models.FieldDuration) + infoPrompts[models.FieldSeverity],
			true, string(models.FieldSeverity)

	case ActionDetailedNextSteps:
		return detailedNextSteps(convo), false, ""

	case ActionAskMoreInfo:
		if name, ok := convo.NextUncollectedField(); ok {
			return askMoreInfoPreamble + infoPrompts[name], true, string(name)
		}
		return s.renderGuidance(convo, captured), false, ""

	case ActionProvideGuidance:
		return s.renderGuidance(convo, captured), false, ""
	}

	return askMoreInfoPreamble + infoPrompts[models.FieldSymptoms], true, string(models.FieldSymptoms)
}

func (s *ChatbotService) renderGuidance(convo *models.ConversationContext, captured map[models.FieldName]bool) string {
	severity := convo.Fields[models.FieldSeverity].Rating
	duration := convo.Fields[models.FieldDuration].Value
	bucket := guidanceBucketFor(severity, duration)

	return s.ackPrefix(captured, models.FieldSeverity) +
		s.pickFrom(guidanceTemplates[bucket]) + " " +
		s.pickFrom(nextStepsTemplates) +
		guidanceClosing
}

// handleProviderLookup delegates to the lookup collaborator. On failure
// the conversation context is left untouched and the user gets an
// apologetic message instead of an error.
func (s *ChatbotService) handleProviderLookup(ctx context.Context, convo *models.ConversationContext, req models.ChatRequest, intent models.MessageIntent) (*models.ChatResponse, error) {
	location := utils.ExtractAddress(req.Message)
	if location == "" {
		location = req.Message
	}

	providers, err := s.providers.FindNearbyProviders(ctx, location)
	if err != nil {
		log.Printf("Provider lookup failed for %q: %v", location, err)
		return &models.ChatResponse{
			Message: s.newAssistantMessage(convo.ConversationID, providerLookupFailureMessage),
			Intent:  intent,
		}, nil
	}

	convo.LastInteraction = time.Now()
	if err := s.contexts.Save(ctx, convo); err != nil {
		return nil, err
	}

	message := s.newAssistantMessage(convo.ConversationID, providerLookupIntro)
	message.Attachments = providers
	return &models.ChatResponse{
		Message: message,
		Intent:  intent,
	}, nil
}

func (s *ChatbotService) ackPrefix(captured map[models.FieldName]bool, name models.FieldName) string {
	if captured[name] {
		return fieldAcknowledgments[name]
	}
	return ""
}

func (s *ChatbotService) pickFrom(templates []string) string {
	return templates[s.pickIndex(len(templates))]
}

func (s *ChatbotService) newAssistantMessage(conversationID, content string) models.Message {
	return models.Message{
		ID:             utils.NewMessageID(),
		ConversationID: conversationID,
		Content:        content,
		Role:           models.RoleAssistant,
		Timestamp:      time.Now(),
	}
}
