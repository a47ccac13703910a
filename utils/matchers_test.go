package utils

import (
	"testing"
)

func TestExtractSeverityScore(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    int
		wantOK  bool
	}{
		{"bare digit", "8", 8, true},
		{"digit in sentence", "the pain is about a 7 right now", 7, true},
		{"ten", "it's a 10", 10, true},
		{"zero", "0, barely noticeable", 0, true},
		{"spelled out", "i'd say ten out of ten", 10, true},
		{"spelled out mid-sentence", "maybe a four", 4, true},
		{"severe anchor", "it is severe", 8, true},
		{"moderate anchor", "moderate discomfort", 5, true},
		{"mild anchor", "just a mild ache", 3, true},
		{"digit beats qualitative word", "severe, maybe a 6", 6, true},
		{"time phrase is not a rating", "for 3 days now", 0, false},
		{"spelled time phrase is not a rating", "about two weeks", 0, false},
		{"rating after time phrase", "for 2 days, pain is 9", 9, true},
		{"first numeric mention wins", "it went from 4 to 9", 4, true},
		{"no rating", "my head hurts", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractSeverityScore(tt.message)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ExtractSeverityScore(%q) = (%d, %v), want (%d, %v)",
					tt.message, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDurationMatchers(t *testing.T) {
	tests := []struct {
		message   string
		concrete  bool
		mentioned bool
	}{
		{"for about three days", true, true},
		{"since yesterday", true, true},
		{"it started last night", true, true},
		{"i'm not sure about the duration", false, true},
		{"my head hurts", false, false},
	}

	for _, tt := range tests {
		if got := ContainsDurationInfo(tt.message); got != tt.concrete {
			t.Errorf("ContainsDurationInfo(%q) = %v, want %v", tt.message, got, tt.concrete)
		}
		if got := MentionsDurationTopic(tt.message); got != tt.mentioned {
			t.Errorf("MentionsDurationTopic(%q) = %v, want %v", tt.message, got, tt.mentioned)
		}
	}
}

func TestIsProviderLookupRequest(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"is there a clinic near me?", true},
		{"find the closest hospital", true},
		{"what's the address of the nearest pharmacy", true},
		{"find a provider near 77030", true},
		{"i need a provider, i'm at 123 main st, houston, tx", true},
		{"my doctor said to rest", false},
		{"i live at 123 main st", false},
		{"77030", false},
	}

	for _, tt := range tests {
		if got := IsProviderLookupRequest(tt.message); got != tt.want {
			t.Errorf("IsProviderLookupRequest(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}

func TestExtractAddress(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"i'm at 123 Main St, Houston, TX 77005", "123 Main St, Houston, TX 77005"},
		{"find a clinic near 6411 Fannin Street", "6411 Fannin Street"},
		{"is there a hospital nearby", ""},
	}

	for _, tt := range tests {
		if got := ExtractAddress(tt.message); got != tt.want {
			t.Errorf("ExtractAddress(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}
