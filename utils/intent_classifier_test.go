package utils

import (
	"testing"

	"healthcare-assistant-backend/models"
)

func TestClassifyPrecedence(t *testing.T) {
	ic := NewIntentClassifier()

	tests := []struct {
		name       string
		message    string
		hasGreeted bool
		want       models.MessageIntent
	}{
		{"greeting before first exchange", "Hello there", false, models.IntentGreeting},
		{"symptom", "I have a terrible headache", true, models.IntentSymptomDescription},
		{"symptom outranks duration", "I've had this cough since yesterday", true, models.IntentSymptomDescription},
		{"duration", "It started about three days ago", true, models.IntentDurationInfo},
		{"severity", "It's an 8", true, models.IntentSeverityRating},
		{"duration outranks severity", "for 5 days, around a 7", true, models.IntentDurationInfo},
		{"medication", "I'm on a prescription for that", true, models.IntentMedicationInfo},
		{"allergy", "I'm allergic to penicillin", true, models.IntentAllergyInfo},
		{"next steps", "What should I do now?", true, models.IntentNextStepsRequest},
		{"history", "I was diagnosed with asthma as a kid", true, models.IntentMedicalHistory},
		{"general fallthrough", "okay", true, models.IntentGeneralQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ic.Classify(tt.message, tt.hasGreeted); got != tt.want {
				t.Errorf("Classify(%q, %v) = %q, want %q", tt.message, tt.hasGreeted, got, tt.want)
			}
		})
	}
}

func TestClassifyGreetingOnlyOnce(t *testing.T) {
	ic := NewIntentClassifier()

	if got := ic.Classify("Hi!", false); got != models.IntentGreeting {
		t.Fatalf("first greeting classified as %q", got)
	}
	// After the greeting phase the same words fall through to the other
	// rules instead of re-greeting.
	if got := ic.Classify("Hi!", true); got != models.IntentGeneralQuery {
		t.Fatalf("repeated greeting classified as %q, want %q", got, models.IntentGeneralQuery)
	}
}
