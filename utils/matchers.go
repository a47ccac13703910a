package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// Keyword sets are the versioned configuration behind the rule-based
// matchers. Matching is substring-based over the lower-cased utterance,
// so singular stems also cover plural forms.
var (
	greetingKeywords = []string{
		"hi", "hello", "hey", "greetings",
		"good morning", "good afternoon", "good evening",
	}
	symptomKeywords = []string{
		"pain", "ache", "sore", "hurt", "fever", "cough", "cold",
		"headache", "nausea", "vomit", "dizzy", "tired", "fatigue",
		"symptom", "feeling", "unwell", "sick",
	}
	durationKeywords = []string{
		"day", "week", "month", "year", "hour", "minute",
		"since", "started",
	}
	medicationKeywords = []string{
		"medication", "medicine", "pill", "tablet", "prescription",
		"dose", "drug", "taking",
	}
	allergyKeywords = []string{
		"allergy", "allergic", "allergies", "reaction",
	}
	historyKeywords = []string{
		"history", "diagnosed", "condition", "chronic", "surgery",
		"previous illness",
	}
	nextStepsKeywords = []string{
		"what should i do", "next steps", "what to do", "recommend",
		"suggestion", "advice", "help me", "doctor", "hospital",
		"treatment",
	}
	proximityKeywords = []string{
		"near", "nearby", "closest", "close to", "around", "in my area",
	}
	facilityKeywords = []string{
		"hospital", "clinic", "doctor", "urgent care", "pharmacy",
		"medical center", "provider",
	}
)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

var (
	// A numeric rating token. The trailing group catches tokens that are
	// really part of a time phrase ("3 days"), which are not ratings.
	severityNumberPattern = regexp.MustCompile(
		`\b(10|[0-9]|one|two|three|four|five|six|seven|eight|nine|ten)\b(\s+(?:day|week|month|year|hour|minute)s?\b)?`)
	severityWordPattern = regexp.MustCompile(`\b(severe|moderate|mild)\b`)

	addressPattern = regexp.MustCompile(
		`(?i)\b\d+\s+(?:[a-z0-9'.]+\s+)*?(?:st|street|ave|avenue|rd|road|blvd|boulevard|dr|drive|ln|lane|way|ct|court)\b\.?` +
			`(?:\s*,\s*[a-z.\s]+(?:\s*,\s*[a-z]{2})?)?(?:\s+\d{5})?`)
	zipPattern = regexp.MustCompile(`\b\d{5}\b`)
)

func containsAnyKeyword(message string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	return false
}

func ContainsGreeting(message string) bool {
	return containsAnyKeyword(message, greetingKeywords)
}

func ContainsSymptomKeywords(message string) bool {
	return containsAnyKeyword(message, symptomKeywords)
}

// ContainsDurationInfo reports a concrete time reference. Mentioning
// duration as a topic without one does not count (see
// MentionsDurationTopic).
func ContainsDurationInfo(message string) bool {
	return containsAnyKeyword(message, durationKeywords)
}

func MentionsDurationTopic(message string) bool {
	return ContainsDurationInfo(message) || strings.Contains(message, "duration")
}

func ContainsMedicationInfo(message string) bool {
	return containsAnyKeyword(message, medicationKeywords)
}

func ContainsAllergyInfo(message string) bool {
	return containsAnyKeyword(message, allergyKeywords)
}

func ContainsHistoryInfo(message string) bool {
	return containsAnyKeyword(message, historyKeywords)
}

func ContainsNextStepsQuestion(message string) bool {
	return containsAnyKeyword(message, nextStepsKeywords)
}

func ContainsSeverityRating(message string) bool {
	_, ok := ExtractSeverityScore(message)
	return ok
}

// ExtractSeverityScore pulls a 0-10 severity rating out of an utterance.
// Numeric and spelled-out tokens win over the qualitative words; among
// numeric mentions the first match wins. Tokens inside a time phrase
// ("3 days") are ignored. severe/moderate/mild map to the fixed anchors
// 8/5/3.
func ExtractSeverityScore(message string) (int, bool) {
	for _, match := range severityNumberPattern.FindAllStringSubmatch(message, -1) {
		if match[2] != "" {
			continue
		}
		token := match[1]
		if value, ok := numberWords[token]; ok {
			return value, true
		}
		if value, err := strconv.Atoi(token); err == nil {
			return value, true
		}
	}

	switch severityWordPattern.FindString(message) {
	case "severe":
		return 8, true
	case "moderate":
		return 5, true
	case "mild":
		return 3, true
	}
	return 0, false
}

// IsProviderLookupRequest detects requests to find nearby healthcare
// facilities: a proximity word plus a facility word, "address" plus a
// facility word, or a street address / zip code together with the word
// "provider".
func IsProviderLookupRequest(message string) bool {
	facility := containsAnyKeyword(message, facilityKeywords)
	if facility && containsAnyKeyword(message, proximityKeywords) {
		return true
	}
	if facility && strings.Contains(message, "address") {
		return true
	}
	if strings.Contains(message, "provider") &&
		(addressPattern.MatchString(message) || zipPattern.MatchString(message)) {
		return true
	}
	return false
}

// ExtractAddress returns the first street-address-looking substring, or
// "" when none is present. The pattern is deliberately permissive.
func ExtractAddress(message string) string {
	return strings.TrimSpace(addressPattern.FindString(message))
}
