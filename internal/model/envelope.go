package model

import "time"

// EnvelopeSource identifies which path produced a response envelope,
// so logs and tests can distinguish the degradation paths.
type EnvelopeSource string

const (
	SourcePipeline   EnvelopeSource = "pipeline"          // Full classify→retrieve→gate→compose path
	SourceLimitation EnvelopeSource = "honest_limitation" // Gate declined, honest limitation substituted
	SourceFallback   EnvelopeSource = "fallback"          // Unexpected internal fault, generic apology
)

// SourceSummary counts verification status across cited content
type SourceSummary struct {
	Verified   int `json:"verified"`
	Unverified int `json:"unverified"`
	Total      int `json:"total"`
}

// ResponseEnvelope is the final output of the pipeline for one message.
// It is created once per request and never mutated afterwards.
type ResponseEnvelope struct {
	ID                  string           `json:"id"`
	Message             string           `json:"message"`
	Stage               Stage            `json:"stage"`
	NextStageGuidance   string           `json:"next_stage_guidance,omitempty"`
	Resources           []Resource       `json:"resources,omitempty"`
	Knowledge           []KnowledgeEntry `json:"knowledge,omitempty"`
	FollowUpRequired    bool             `json:"follow_up_required"`
	CulturalAffirmation bool             `json:"cultural_affirmation"`
	TrustScore          float64          `json:"trust_score"`
	TrustTier           string           `json:"trust_tier"`
	Sources             SourceSummary    `json:"sources"`
	RequestFeedback     bool             `json:"request_feedback"`
	SpecificInformation bool             `json:"specific_information"`
	Source              EnvelopeSource   `json:"source"`
	CreatedAt           time.Time        `json:"created_at"`
}
