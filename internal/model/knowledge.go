package model

import "time"

// VerificationStatus describes how a knowledge entry was verified
type VerificationStatus string

const (
	VerificationVerified VerificationStatus = "verified"
	VerificationPending  VerificationStatus = "pending"
	VerificationOutdated VerificationStatus = "outdated"
)

// KnowledgeEntry is a verified explanatory text in the knowledge base
type KnowledgeEntry struct {
	ID                 string             `json:"id" yaml:"id"`
	Title              string             `json:"title" yaml:"title"`
	Body               string             `json:"body" yaml:"body"`
	Category           string             `json:"category" yaml:"category"`
	Stages             []Stage            `json:"stages" yaml:"stages"`
	Locations          []string           `json:"locations" yaml:"locations"`
	Tags               []string           `json:"tags,omitempty" yaml:"tags,omitempty"`
	Sources            []string           `json:"sources,omitempty" yaml:"sources,omitempty"` // URLs or named authorities
	LastUpdated        time.Time          `json:"last_updated" yaml:"last_updated"`
	Verification       VerificationStatus `json:"verification" yaml:"verification"`
	CommunityValidated bool               `json:"community_validated" yaml:"community_validated"`
}

// ServesStage reports whether the entry applies to the given stage
func (k KnowledgeEntry) ServesStage(stage Stage) bool {
	for _, s := range k.Stages {
		if s == stage {
			return true
		}
	}
	return false
}

// ServesLocation reports whether the entry applies to the given location
func (k KnowledgeEntry) ServesLocation(location string) bool {
	for _, l := range k.Locations {
		if l == location || l == LocationUnknown {
			return true
		}
	}
	return false
}

// Age returns how long ago the entry was last updated
func (k KnowledgeEntry) Age(now time.Time) time.Duration {
	return now.Sub(k.LastUpdated)
}
