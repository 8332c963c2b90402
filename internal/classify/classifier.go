package classify

import (
	"github.com/wayfinder-support/wayfinder/internal/model"
)

// Profile carries optional caller-supplied hints about the user
type Profile struct {
	Location string
}

// Classifier scores free-text messages against the journey stages.
// It never returns an error: any text, including empty input, yields a
// context (defaulting to the growth stage when nothing matches).
type Classifier struct {
	table *SignalTable
	cfg   model.ClassifierConfig
}

// New creates a classifier with the given signal table and thresholds
func New(table *SignalTable, cfg model.ClassifierConfig) *Classifier {
	return &Classifier{table: table, cfg: cfg}
}

// NewDefault creates a classifier with the embedded signal table and
// default thresholds
func NewDefault() *Classifier {
	return New(DefaultSignals(), model.DefaultConfig().Classifier)
}

// TableVersion returns the version of the loaded signal table
func (c *Classifier) TableVersion() int {
	return c.table.Version
}

// Scores returns the normalized per-stage score for a message.
// Exposed so callers can explain a classification.
func (c *Classifier) Scores(message string) map[model.Stage]float64 {
	msg := normalize(message)
	scores := make(map[model.Stage]float64, len(model.Stages))
	for stage, signals := range c.table.Stages {
		scores[stage] = scoreStage(msg, signals)
	}
	return scores
}

// HasEmergencyTerms reports whether the message contains any hard
// emergency vocabulary
func (c *Classifier) HasEmergencyTerms(message string) bool {
	return normalize(message).matchesAny(c.table.EmergencyTerms)
}

// Classify produces a JourneyContext for a single message.
//
// Stage selection, in order:
//  1. Hard emergency term, or crisis score above the override threshold:
//     crisis, unconditionally.
//  2. Otherwise the stage with the strictly highest score.
//  3. If no stage reaches the minimum score, growth (the neutral stage).
func (c *Classifier) Classify(message string, history []model.Stage, profile *Profile) model.JourneyContext {
	msg := normalize(message)
	scores := c.Scores(message)
	emergency := msg.matchesAny(c.table.EmergencyTerms)

	stage := c.selectStage(scores, emergency)

	locationHint := ""
	if profile != nil {
		locationHint = profile.Location
	}

	prev := make([]model.Stage, len(history))
	copy(prev, history)

	return model.JourneyContext{
		Stage:          stage,
		Emotion:        detectEmotion(msg, emergency),
		Urgency:        detectUrgency(msg, stage, emergency),
		Location:       detectLocation(msg, locationHint),
		Connection:     detectConnection(msg),
		Channel:        detectChannel(msg),
		FirstTime:      len(history) == 0,
		PreviousStages: prev,
	}
}

func (c *Classifier) selectStage(scores map[model.Stage]float64, emergency bool) model.Stage {
	if emergency || scores[model.StageCrisis] > c.cfg.CrisisOverride {
		return model.StageCrisis
	}

	best := model.StageGrowth
	bestScore := 0.0
	for _, stage := range model.Stages {
		if scores[stage] > bestScore {
			best = stage
			bestScore = scores[stage]
		}
	}

	if bestScore < c.cfg.MinScore {
		return model.StageGrowth
	}
	return best
}

// scoreStage sums the weights of matched signals and normalizes against the
// stage's weight sum, clamped to [0,1]
func scoreStage(msg normalized, signals StageSignals) float64 {
	matched := 0.0
	for _, term := range signals.Keywords {
		if msg.matches(term) {
			matched += weightKeyword
		}
	}
	for _, term := range signals.Emotional {
		if msg.matches(term) {
			matched += weightEmotional
		}
	}
	for _, term := range signals.Urgency {
		if msg.matches(term) {
			matched += weightUrgency
		}
	}

	score := matched / signals.normalizer()
	if score > 1 {
		score = 1
	}
	return score
}
