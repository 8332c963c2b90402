// Package trust computes bounded confidence scores for catalogue content.
// Scores are transient: computed per use, never persisted on the entity.
package trust

import (
	"context"
	"time"

	"github.com/wayfinder-support/wayfinder/internal/model"
)

// Component weights for knowledge scoring. They sum to 1 so the combined
// score stays in [0,1] when every component does.
const (
	weightVerification = 0.4
	weightCommunity    = 0.2
	weightRecency      = 0.2
	weightSources      = 0.2
)

// Verification status weights
const (
	verifiedWeight = 0.9
	pendingWeight  = 0.5
	outdatedWeight = 0.2
)

// neutralScore is the contribution of anything we can't assess: unknown
// reachability, absent sources, unvalidated community status
const neutralScore = 0.5

// Scorer computes trust scores for resources and knowledge entries
type Scorer struct {
	cfg    model.TrustConfig
	prober Prober // nil disables reachability probing (neutral contribution)
	now    func() time.Time
}

// NewScorer creates a scorer. Pass a nil prober to disable live
// reachability checks.
func NewScorer(cfg model.TrustConfig, prober Prober) *Scorer {
	return &Scorer{
		cfg:    cfg,
		prober: prober,
		now:    time.Now,
	}
}

// ScoreKnowledge computes a [0,1] trust score for a knowledge entry from
// verification status, community validation, recency and source quality.
func (s *Scorer) ScoreKnowledge(ctx context.Context, k model.KnowledgeEntry) float64 {
	score := weightVerification*verificationScore(k.Verification) +
		weightCommunity*communityScore(k.CommunityValidated) +
		weightRecency*s.recencyScore(k) +
		weightSources*s.sourceScore(ctx, k.Sources)
	return clamp01(score)
}

// ScoreResource computes a [0,1] trust score for a resource from cost tier,
// cultural specificity and availability. Emergency resources are floored so
// the confidence gate can never suppress them.
func (s *Scorer) ScoreResource(r model.Resource) float64 {
	cost := 0.4
	switch r.Cost {
	case model.CostFree, model.CostNHSFunded:
		cost = 0.8
	case model.CostSlidingScale:
		cost = 0.6
	}

	cultural := 0.6
	if r.Cultural.Specific() {
		cultural = 1.0
	}

	availability := 0.7
	if r.RoundTheClock() {
		availability = 1.0
	}

	score := 0.5*cost + 0.3*cultural + 0.2*availability
	if r.Emergency && score < s.cfg.EmergencyFloor {
		score = s.cfg.EmergencyFloor
	}
	return clamp01(score)
}

// Aggregate returns the mean of the given scores, or 0 when empty
func Aggregate(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range scores {
		sum += v
	}
	return clamp01(sum / float64(len(scores)))
}

func verificationScore(status model.VerificationStatus) float64 {
	switch status {
	case model.VerificationVerified:
		return verifiedWeight
	case model.VerificationPending:
		return pendingWeight
	default:
		return outdatedWeight
	}
}

func communityScore(validated bool) float64 {
	if validated {
		return 1.0
	}
	return neutralScore
}

// recencyScore decays with age: full score while fresh, a fixed fraction
// lost past the staleness threshold, more past three times the threshold
func (s *Scorer) recencyScore(k model.KnowledgeEntry) float64 {
	if k.LastUpdated.IsZero() {
		return neutralScore
	}

	stale := time.Duration(s.cfg.StaleAfterDays) * 24 * time.Hour
	age := k.Age(s.now())
	switch {
	case age <= stale:
		return 1.0
	case age <= 3*stale:
		return 0.6
	default:
		return 0.3
	}
}

// sourceScore is the fraction of cited sources that are known good. Named
// authorities count as good; URLs are probed when a prober is configured
// and contribute neutrally when unknown.
func (s *Scorer) sourceScore(ctx context.Context, sources []string) float64 {
	if len(sources) == 0 {
		return neutralScore
	}

	total := 0.0
	for _, src := range sources {
		if !IsURL(src) {
			total += 1.0
			continue
		}
		if s.prober == nil {
			total += neutralScore
			continue
		}
		switch s.prober.Check(ctx, src) {
		case ProbeReachable:
			total += 1.0
		case ProbeUnreachable:
			// contributes zero
		default:
			total += neutralScore
		}
	}
	return total / float64(len(sources))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
