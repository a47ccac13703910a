package models

import (
	"time"
)

// ConversationGoal is the current intake objective of a conversation.
// It progresses initial_greeting -> collect_symptoms -> collect_duration
// -> collect_severity -> provide_guidance, but volunteered entities can
// move it ahead of the questions actually asked.
type ConversationGoal string

const (
	GoalInitialGreeting ConversationGoal = "initial_greeting"
	GoalCollectSymptoms ConversationGoal = "collect_symptoms"
	GoalCollectDuration ConversationGoal = "collect_duration"
	GoalCollectSeverity ConversationGoal = "collect_severity"
	GoalProvideGuidance ConversationGoal = "provide_guidance"
)

type FieldImportance string

const (
	ImportanceHigh   FieldImportance = "high"
	ImportanceMedium FieldImportance = "medium"
)

type FieldName string

const (
	FieldSymptoms    FieldName = "symptoms"
	FieldDuration    FieldName = "duration"
	FieldSeverity    FieldName = "severity"
	FieldHistory     FieldName = "history"
	FieldMedications FieldName = "medications"
	FieldAllergies   FieldName = "allergies"
)

// HighImportanceFields is the fixed intake order. Guidance is gated on
// all of these being collected; the remaining fields are enrichment.
var HighImportanceFields = []FieldName{FieldSymptoms, FieldDuration, FieldSeverity}

// CollectedField tracks one intake datum. Rating is only meaningful for
// the severity field (0-10). FollowUpNeeded is a reserved extension
// point: it is cleared on reset and never otherwise written.
type CollectedField struct {
	Collected      bool            `json:"collected"`
	Value          string          `json:"value,omitempty"`
	Rating         int             `json:"rating,omitempty"`
	Importance     FieldImportance `json:"importance"`
	FollowUpNeeded bool            `json:"follow_up_needed,omitempty"`
}

// ConversationContext is the engine's cross-turn memory for a single
// conversation. Contexts are always keyed by conversation id in a
// ContextStore, never shared between conversations.
type ConversationContext struct {
	ConversationID  string                        `json:"conversation_id"`
	CurrentGoal     ConversationGoal              `json:"current_goal"`
	HasGreeted      bool                          `json:"has_greeted"`
	LastInteraction time.Time                     `json:"last_interaction"`
	Fields          map[FieldName]*CollectedField `json:"fields"`
}

func NewConversationContext(conversationID string) *ConversationContext {
	return &ConversationContext{
		ConversationID: conversationID,
		CurrentGoal:    GoalInitialGreeting,
		Fields: map[FieldName]*CollectedField{
			FieldSymptoms:    {Importance: ImportanceHigh},
			FieldDuration:    {Importance: ImportanceHigh},
			FieldSeverity:    {Importance: ImportanceHigh},
			FieldHistory:     {Importance: ImportanceMedium},
			FieldMedications: {Importance: ImportanceMedium},
			FieldAllergies:   {Importance: ImportanceMedium},
		},
	}
}

// Clone returns a deep copy. Stores hand out clones so mutations only
// become visible through Save.
func (c *ConversationContext) Clone() *ConversationContext {
	clone := *c
	clone.Fields = make(map[FieldName]*CollectedField, len(c.Fields))
	for name, field := range c.Fields {
		f := *field
		clone.Fields[name] = &f
	}
	return &clone
}

// Reset clears everything the conversation collected. Importance is
// fixed at construction and survives the reset.
func (c *ConversationContext) Reset() {
	c.CurrentGoal = GoalInitialGreeting
	c.HasGreeted = false
	c.LastInteraction = time.Time{}
	for _, field := range c.Fields {
		field.Collected = false
		field.Value = ""
		field.Rating = 0
		field.FollowUpNeeded = false
	}
}

func (c *ConversationContext) AllHighImportanceCollected() bool {
	for _, name := range HighImportanceFields {
		if !c.Fields[name].Collected {
			return false
		}
	}
	return true
}

// NextUncollectedField returns the first high-importance field still
// missing, in intake order.
func (c *ConversationContext) NextUncollectedField() (FieldName, bool) {
	for _, name := range HighImportanceFields {
		if !c.Fields[name].Collected {
			return name, true
		}
	}
	return "", false
}
