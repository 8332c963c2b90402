package classify

import (
	"strings"
	"testing"
)

func TestDefaultSignals_Valid(t *testing.T) {
	table := DefaultSignals()

	// Golden check: any change to the embedded table must bump the version
	if table.Version != 1 {
		t.Errorf("embedded signal table version changed to %d — intentional?", table.Version)
	}
	if len(table.EmergencyTerms) == 0 {
		t.Fatal("embedded table has no emergency terms")
	}

	// Only the crisis stage carries urgency signals
	for stage, signals := range table.Stages {
		if stage == "crisis" {
			if len(signals.Urgency) == 0 {
				t.Error("crisis stage missing urgency signals")
			}
			continue
		}
		if len(signals.Urgency) != 0 {
			t.Errorf("stage %s has urgency signals, only crisis should", stage)
		}
	}
}

func TestParseSignals_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing version",
			yaml:    "emergency_terms: [suicide]\nstages: {}",
			wantErr: "missing version",
		},
		{
			name:    "missing emergency terms",
			yaml:    "version: 1\nstages: {}",
			wantErr: "missing emergency terms",
		},
		{
			name:    "missing stage",
			yaml:    "version: 1\nemergency_terms: [suicide]\nstages:\n  crisis:\n    keywords: [danger]",
			wantErr: "missing stage",
		},
		{
			name:    "malformed yaml",
			yaml:    "version: [",
			wantErr: "parse signal table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSignals([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err)
			}
		})
	}
}

func TestNormalized_Matching(t *testing.T) {
	tests := []struct {
		name    string
		message string
		term    string
		want    bool
	}{
		{"single word on boundary", "I need testing done", "testing", true},
		{"single word inside another word", "interesting conversation", "testing", false},
		{"case insensitive", "TESTING please", "testing", true},
		{"phrase substring", "I want to kill myself tonight", "kill myself", true},
		{"phrase absent", "I killed it at karaoke", "kill myself", false},
		{"hyphenated term", "thoughts of self-harm", "self-harm", true},
		{"apostrophe preserved", "I can't cope anymore", "can't cope", true},
		{"punctuation stripped for words", "diagnosed. yesterday", "diagnosed", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := normalize(tt.message)
			if got := n.matches(tt.term); got != tt.want {
				t.Errorf("matches(%q) on %q = %v, want %v", tt.term, tt.message, got, tt.want)
			}
		})
	}
}

func TestStageSignals_Normalizer(t *testing.T) {
	plain := StageSignals{Keywords: []string{"a"}, Emotional: []string{"b"}}
	if got := plain.normalizer(); got != weightKeyword+weightEmotional {
		t.Errorf("expected %.1f, got %.1f", weightKeyword+weightEmotional, got)
	}

	withUrgency := StageSignals{Keywords: []string{"a"}, Urgency: []string{"c"}}
	if got := withUrgency.normalizer(); got != weightKeyword+weightEmotional+weightUrgency {
		t.Errorf("expected %.1f, got %.1f", weightKeyword+weightEmotional+weightUrgency, got)
	}
}
