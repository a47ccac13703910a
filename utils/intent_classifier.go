package utils

import (
	"strings"

	"healthcare-assistant-backend/models"
)

// classificationRule pairs an intent with its matcher. The order of the
// rules slice is the fixed classification precedence: a message that
// matches several rules gets the earliest intent. Symptom descriptions
// outrank duration mentions because early-conversation turns are usually
// primary disclosures even when they mention time words in passing.
type classificationRule struct {
	intent  models.MessageIntent
	matches func(string) bool
}

type IntentClassifier struct {
	rules []classificationRule
}

func NewIntentClassifier() *IntentClassifier {
	return &IntentClassifier{
		rules: []classificationRule{
			{models.IntentSymptomDescription, ContainsSymptomKeywords},
			{models.IntentDurationInfo, ContainsDurationInfo},
			{models.IntentSeverityRating, ContainsSeverityRating},
			{models.IntentMedicationInfo, ContainsMedicationInfo},
			{models.IntentAllergyInfo, ContainsAllergyInfo},
			{models.IntentNextStepsRequest, ContainsNextStepsQuestion},
			{models.IntentMedicalHistory, ContainsHistoryInfo},
		},
	}
}

// Classify maps one utterance to exactly one intent. Greeting outranks
// everything else but only while the conversation has not been greeted
// yet; afterwards greeting words fall through to the other rules.
func (ic *IntentClassifier) Classify(message string, hasGreeted bool) models.MessageIntent {
	message = strings.ToLower(message)

	if !hasGreeted && ContainsGreeting(message) {
		return models.IntentGreeting
	}

	for _, rule := range ic.rules {
		if rule.matches(message) {
			return rule.intent
		}
	}

	return models.IntentGeneralQuery
}
