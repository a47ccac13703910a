package services

import (
	"fmt"
	"strings"

	"healthcare-assistant-backend/models"
)

// ActionType is the discrete step the planner selects for one turn.
type ActionType string

const (
	ActionAskSymptoms       ActionType = "ask_symptoms"
	ActionAskDuration       ActionType = "ask_duration"
	ActionAskSeverity       ActionType = "ask_severity"
	ActionProvideGuidance   ActionType = "provide_guidance"
	ActionDetailedNextSteps ActionType = "provide_detailed_next_steps"
	ActionAskMoreInfo       ActionType = "ask_more_info"
)

// InitialGreeting is sent by transports when a conversation is opened,
// before the user has said anything.
const InitialGreeting = "Hello! I'm your healthcare assistant. How can I help you today?"

var greetingTemplates = []string{
	"Hello! I'm your healthcare assistant. How are you feeling today?",
	"Hi there! I'm here to help with your healthcare needs. How can I assist you today?",
	"Good day! I'm your AI healthcare companion. How are you doing today?",
	"Welcome! I'm here to support your healthcare journey. How are you feeling?",
}

var followUpQuestions = []string{
	"Could you tell me more about any symptoms you're experiencing?",
	"Have you noticed any changes in your health recently?",
	"Is there anything specific you'd like to discuss about your health today?",
	"What brings you to our healthcare service today?",
}

var infoPrompts = map[models.FieldName]string{
	models.FieldSymptoms:    "Could you describe any symptoms you're experiencing in detail?",
	models.FieldDuration:    "How long have you been experiencing these symptoms?",
	models.FieldSeverity:    "On a scale of 1-10, how would you rate the severity of your symptoms?",
	models.FieldHistory:     "Do you have any relevant medical history related to these symptoms?",
	models.FieldMedications: "Are you currently taking any medications?",
	models.FieldAllergies:   "Do you have any known allergies?",
}

// fieldAcknowledgments prefix the next prompt when the named field was
// captured on the same turn.
var fieldAcknowledgments = map[models.FieldName]string{
	models.FieldSymptoms: "Thank you for sharing that information. ",
	models.FieldDuration: "I understand. ",
	models.FieldSeverity: "Thank you for providing that information. ",
}

type guidanceBucket string

const (
	bucketUrgent   guidanceBucket = "urgent"
	bucketModerate guidanceBucket = "moderate"
	bucketMild     guidanceBucket = "mild"
	bucketFollowUp guidanceBucket = "followUp"
)

var guidanceTemplates = map[guidanceBucket][]string{
	bucketUrgent: {
		"Given the severity you've described, you should contact a healthcare provider today. If your symptoms worsen suddenly, please seek emergency care.",
		"Symptoms at this level of severity deserve prompt attention. Please reach out to your doctor today, or visit an urgent care clinic if you can't get an appointment.",
		"I'd take this seriously: with symptoms this severe, contact a healthcare professional as soon as possible rather than waiting to see how things develop.",
	},
	bucketModerate: {
		"Your symptoms sound uncomfortable but manageable. Keep an eye on them over the next day or two, and contact your healthcare provider if they persist or worsen.",
		"Based on what you've described, it would be sensible to schedule an appointment with your doctor this week to have these symptoms checked.",
		"Moderate symptoms like these are worth discussing with a healthcare professional, though they don't usually require urgent care. Consider booking a visit in the next few days.",
	},
	bucketMild: {
		"Your symptoms sound mild. Rest, fluids, and monitoring are usually enough at this level - but do contact a healthcare provider if anything changes.",
		"At this severity, self-care at home is typically appropriate. Keep track of how you feel, and reach out to your doctor if the symptoms persist beyond a few days.",
		"This sounds manageable for now. Focus on rest and hydration, and see a healthcare professional if things don't improve.",
	},
	bucketFollowUp: {
		"Since you've been experiencing these symptoms for a while, it's important to have them properly evaluated. Please schedule an appointment with your healthcare provider even if the symptoms feel manageable day to day.",
		"Symptoms that persist this long should be reviewed by a doctor, regardless of how severe they feel right now. I'd recommend booking a check-up soon.",
		"Long-running symptoms are worth a proper medical evaluation. Please arrange a visit with your healthcare provider to get to the bottom of this.",
	},
}

var nextStepsTemplates = []string{
	"Based on what you've shared, I recommend scheduling a consultation with your primary care physician to discuss these symptoms in more detail.",
	"Your symptoms suggest you might benefit from speaking with a healthcare professional. Consider booking an appointment in the next few days.",
	"I'd advise you to monitor these symptoms for the next 24-48 hours. If they persist or worsen, please contact your healthcare provider immediately.",
	"Given what you've described, it would be best to speak with a specialist. Would you like information on how to find the right specialist for your concerns?",
}

const guidanceClosing = "\n\nIs there anything specific you'd like me to explain further about what you should do next?"

const askMoreInfoPreamble = "I appreciate you sharing that information. To better assist you with personalized guidance: "

const invalidAPIKeyMessage = "Your API key is invalid or has been revoked. Please check your credentials in the settings and try again."

const providerLookupFailureMessage = "I'm sorry, I wasn't able to look up healthcare providers for that location right now. " +
	"Please double-check the address and try again in a moment."

const providerLookupIntro = "Here are some healthcare providers near you:"

// guidanceBucketFor selects the phrasing bucket. Chronic durations
// (weeks or longer) outweigh acute severity for phrasing choice.
func guidanceBucketFor(severity int, durationText string) guidanceBucket {
	lower := strings.ToLower(durationText)
	for _, chronic := range []string{"week", "month", "year"} {
		if strings.Contains(lower, chronic) {
			return bucketFollowUp
		}
	}

	switch {
	case severity >= 7:
		return bucketUrgent
	case severity >= 4:
		return bucketModerate
	default:
		return bucketMild
	}
}

var warningSigns = map[string][]string{
	"head": {
		"Sudden, very intense headache unlike any you've had before",
		"Headache accompanied by fever, stiff neck, confusion, or vision changes",
		"Weakness, numbness, or difficulty speaking",
	},
	"chest": {
		"Chest pain spreading to the arm, neck, or jaw",
		"Shortness of breath or difficulty breathing",
		"Sweating, nausea, or light-headedness together with chest discomfort",
	},
	"stomach": {
		"Severe or rapidly worsening abdominal pain",
		"Persistent vomiting or inability to keep fluids down",
		"Blood in vomit or stool",
	},
}

var genericWarningSigns = []string{
	"Symptoms that suddenly become much worse",
	"Difficulty breathing, chest pain, or confusion",
	"High fever that doesn't respond to medication",
}

func warningSignsFor(symptomText string) []string {
	lower := strings.ToLower(symptomText)
	for _, key := range []string{"head", "chest", "stomach"} {
		if strings.Contains(lower, key) {
			return warningSigns[key]
		}
	}
	return genericWarningSigns
}

// detailedNextSteps renders the deterministic structured recommendation
// message, interpolating everything collected so far.
func detailedNextSteps(convo *models.ConversationContext) string {
	symptoms := convo.Fields[models.FieldSymptoms].Value
	severity := convo.Fields[models.FieldSeverity].Rating
	duration := convo.Fields[models.FieldDuration].Value

	var b strings.Builder
	fmt.Fprintf(&b,
		"Based on the symptoms you've described (%s), their severity (%d/10), and how long they've lasted (%s), here is what I recommend:\n\n",
		symptoms, severity, duration)

	if severity >= 7 {
		b.WriteString("1. Contact your primary care provider today, or visit an urgent care clinic if you cannot get an appointment.\n")
	} else {
		b.WriteString("1. Contact your primary care provider within the next 24-48 hours.\n")
	}
	b.WriteString("2. Keep a written record of your symptoms: when they occur, how long they last, and anything that makes them better or worse.\n")
	b.WriteString("3. For your appointment, bring a list of your current medications, any relevant medical history, and the symptom record above.\n")
	b.WriteString("4. In the meantime: stay hydrated, get adequate rest, and avoid activities that aggravate your symptoms.\n")

	b.WriteString("\nSeek immediate care if you notice any of the following:\n")
	for _, sign := range warningSignsFor(symptoms) {
		b.WriteString("- " + sign + "\n")
	}

	b.WriteString("\nWould you like me to help you find healthcare providers in your area?")
	return b.String()
}
