package model

// Stage represents a phase of the support journey
type Stage string

const (
	StageCrisis           Stage = "crisis"            // Immediate safety and stabilisation needs
	StageStabilization    Stage = "stabilization"     // Ongoing treatment, services, day-to-day coping
	StageGrowth           Stage = "growth"            // Learning, prevention, personal development
	StageCommunityHealing Stage = "community_healing" // Peer connection and belonging
	StageAdvocacy         Stage = "advocacy"          // Giving back, campaigning, mentoring
)

// Stages lists all journey stages in canonical order
var Stages = []Stage{
	StageCrisis,
	StageStabilization,
	StageGrowth,
	StageCommunityHealing,
	StageAdvocacy,
}

// stageRank maps stages to their canonical ordering (crisis is earliest)
var stageRank = map[Stage]int{
	StageCrisis:           0,
	StageStabilization:    1,
	StageGrowth:           2,
	StageCommunityHealing: 3,
	StageAdvocacy:         4,
}

// Rank returns the canonical position of the stage, or -1 if unknown
func (s Stage) Rank() int {
	if r, ok := stageRank[s]; ok {
		return r
	}
	return -1
}

// Valid reports whether the stage is one of the five known stages
func (s Stage) Valid() bool {
	return s.Rank() >= 0
}

// Next returns the stage that logically follows in the journey.
// Advocacy has no successor and returns itself.
func (s Stage) Next() Stage {
	r := s.Rank()
	if r < 0 || r >= len(Stages)-1 {
		return s
	}
	return Stages[r+1]
}

// ParseStage converts a string to a Stage, defaulting to growth for unknown input
func ParseStage(s string) Stage {
	stage := Stage(s)
	if stage.Valid() {
		return stage
	}
	return StageGrowth
}

// EmotionalState is a coarse label for the emotional tone of a message
type EmotionalState string

const (
	EmotionCrisis    EmotionalState = "crisis"
	EmotionStressed  EmotionalState = "stressed"
	EmotionCalm      EmotionalState = "calm"
	EmotionExcited   EmotionalState = "excited"
	EmotionJoyful    EmotionalState = "joyful"
	EmotionUncertain EmotionalState = "uncertain"
)

// Urgency classifies how quickly the person needs help
type Urgency string

const (
	UrgencyEmergency Urgency = "emergency"
	UrgencyHigh      Urgency = "high"
	UrgencyMedium    Urgency = "medium"
	UrgencyLow       Urgency = "low"
)

// ConnectionLevel describes how connected the person is to community support
type ConnectionLevel string

const (
	ConnectionIsolated   ConnectionLevel = "isolated"
	ConnectionExploring  ConnectionLevel = "exploring"
	ConnectionConnected  ConnectionLevel = "connected"
	ConnectionNetworked  ConnectionLevel = "networked"
	ConnectionOrganizing ConnectionLevel = "organizing"
)

// Channel describes how the person prefers to receive support
type Channel string

const (
	ChannelPhone    Channel = "phone"
	ChannelOnline   Channel = "online"
	ChannelInPerson Channel = "in_person"
	ChannelFlexible Channel = "flexible"
)

// LocationUnknown is the sentinel for an unresolved location. Catalogue
// entries listing it apply everywhere.
const LocationUnknown = "unknown"

// KnownLocations is the closed set of recognised locations
var KnownLocations = []string{
	"london",
	"manchester",
	"brighton",
	"birmingham",
	"leeds",
	"glasgow",
	"cardiff",
	"bristol",
	"rural",
	"other_urban",
	LocationUnknown,
}

// JourneyContext is the classifier's structured view of a single message.
// It is created once per message and is read-only downstream.
type JourneyContext struct {
	Stage          Stage           `json:"stage"`
	Emotion        EmotionalState  `json:"emotion"`
	Urgency        Urgency         `json:"urgency"`
	Location       string          `json:"location"`
	Connection     ConnectionLevel `json:"connection"`
	Channel        Channel         `json:"channel"`
	FirstTime      bool            `json:"first_time"`
	PreviousStages []Stage         `json:"previous_stages,omitempty"`
}
