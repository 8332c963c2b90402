package classify

import (
	_ "embed"
	"fmt"
	"strings"
	"unicode"

	"github.com/wayfinder-support/wayfinder/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed signals.yaml
var signalsYAML []byte

// Signal weights. Keywords carry the core stage vocabulary, emotional
// markers are softer evidence, urgency words (crisis only) are the
// strongest single signal.
const (
	weightKeyword   = 2.0
	weightEmotional = 1.5
	weightUrgency   = 3.0
)

// StageSignals holds the weighted lexical signal sets for one stage
type StageSignals struct {
	Keywords  []string `yaml:"keywords"`
	Emotional []string `yaml:"emotional"`
	Urgency   []string `yaml:"urgency,omitempty"`
}

// normalizer returns the sum of the weight values in play for this stage.
// Scores are matched weight over this sum, clamped to [0,1].
func (s StageSignals) normalizer() float64 {
	n := weightKeyword + weightEmotional
	if len(s.Urgency) > 0 {
		n += weightUrgency
	}
	return n
}

// SignalTable is the versioned stage signal policy loaded from YAML
type SignalTable struct {
	Version        int                          `yaml:"version"`
	EmergencyTerms []string                     `yaml:"emergency_terms"`
	Stages         map[model.Stage]StageSignals `yaml:"stages"`
}

// ParseSignals parses and validates a signal table from YAML
func ParseSignals(data []byte) (*SignalTable, error) {
	var table SignalTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse signal table: %w", err)
	}

	if table.Version <= 0 {
		return nil, fmt.Errorf("signal table missing version")
	}
	if len(table.EmergencyTerms) == 0 {
		return nil, fmt.Errorf("signal table missing emergency terms")
	}
	for _, stage := range model.Stages {
		signals, ok := table.Stages[stage]
		if !ok {
			return nil, fmt.Errorf("signal table missing stage %q", stage)
		}
		if len(signals.Keywords) == 0 {
			return nil, fmt.Errorf("stage %q has no keywords", stage)
		}
	}
	if len(table.Stages) != len(model.Stages) {
		return nil, fmt.Errorf("signal table has %d stages, want %d", len(table.Stages), len(model.Stages))
	}

	return &table, nil
}

// DefaultSignals returns the embedded signal table. The embedded asset is
// validated at build time by tests, so a parse failure here is a programmer
// error.
func DefaultSignals() *SignalTable {
	table, err := ParseSignals(signalsYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded signal table invalid: %v", err))
	}
	return table
}

// normalized holds a pre-processed message for term matching
type normalized struct {
	text  string          // lowercased full text
	words map[string]bool // lowercased word set, punctuation stripped
}

func normalize(message string) normalized {
	text := strings.ToLower(message)
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	}) {
		words[strings.Trim(w, "'")] = true
	}
	return normalized{text: text, words: words}
}

// matches reports whether the term appears in the message. Single words
// must match on word boundaries; phrases match as substrings.
func (n normalized) matches(term string) bool {
	term = strings.ToLower(term)
	if strings.ContainsAny(term, " -") {
		return strings.Contains(n.text, term)
	}
	return n.words[term]
}

// matchesAny reports whether any of the terms appears in the message
func (n normalized) matchesAny(terms []string) bool {
	for _, term := range terms {
		if n.matches(term) {
			return true
		}
	}
	return false
}
