package models

import (
	"time"
)

type MessageIntent string

const (
	IntentGreeting           MessageIntent = "greeting"
	IntentSymptomDescription MessageIntent = "symptom_description"
	IntentDurationInfo       MessageIntent = "duration_info"
	IntentSeverityRating     MessageIntent = "severity_rating"
	IntentMedicationInfo     MessageIntent = "medication_info"
	IntentAllergyInfo        MessageIntent = "allergy_info"
	IntentNextStepsRequest   MessageIntent = "next_steps_request"
	IntentMedicalHistory     MessageIntent = "medical_history"
	IntentGeneralQuery       MessageIntent = "general_query"
)

// MessageRole identifies who authored a message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is the unit stored in transcripts and returned to clients
type Message struct {
	ID             string      `bson:"message_id" json:"id"`
	ConversationID string      `bson:"conversation_id" json:"conversation_id"`
	Content        string      `bson:"content" json:"content"`
	Role           MessageRole `bson:"role" json:"role"`
	Timestamp      time.Time   `bson:"timestamp" json:"timestamp"`
	Attachments    []Provider  `bson:"attachments,omitempty" json:"attachments,omitempty"`
}

// Provider is one healthcare facility returned by the lookup collaborator
type Provider struct {
	Name     string `bson:"name" json:"name"`
	Address  string `bson:"address" json:"address"`
	Phone    string `bson:"phone,omitempty" json:"phone,omitempty"`
	Website  string `bson:"website,omitempty" json:"website,omitempty"`
	Type     string `bson:"type" json:"type"`
	Distance string `bson:"distance,omitempty" json:"distance,omitempty"`
}

type ChatRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversation_id,omitempty"`
	APIKey         string `json:"api_key,omitempty"`
}

// ChatResponse reports the assistant message plus what the engine is
// still waiting on, if anything.
type ChatResponse struct {
	Message   Message       `json:"message"`
	Intent    MessageIntent `json:"intent"`
	NeedsInfo bool          `json:"needs_info"`
	InfoType  string        `json:"info_type,omitempty"`
}

// Conversation is the transcript header document
type Conversation struct {
	ConversationID string    `bson:"conversation_id" json:"conversation_id"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}
