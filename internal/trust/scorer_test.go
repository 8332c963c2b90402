package trust

import (
	"context"
	"testing"
	"time"

	"github.com/wayfinder-support/wayfinder/internal/model"
)

// fakeProber returns canned results per URL
type fakeProber struct {
	results map[string]ProbeResult
	calls   int
}

func (f *fakeProber) Check(ctx context.Context, rawURL string) ProbeResult {
	f.calls++
	if r, ok := f.results[rawURL]; ok {
		return r
	}
	return ProbeUnknown
}

func testEntry(status model.VerificationStatus, validated bool, age time.Duration, sources []string) model.KnowledgeEntry {
	return model.KnowledgeEntry{
		ID: "k", Title: "t", Body: "b",
		Verification:       status,
		CommunityValidated: validated,
		LastUpdated:        time.Now().Add(-age),
		Sources:            sources,
	}
}

func TestScorer_KnowledgeBounds(t *testing.T) {
	s := NewScorer(model.DefaultConfig().Trust, nil)
	ctx := context.Background()

	entries := []model.KnowledgeEntry{
		testEntry(model.VerificationVerified, true, 24*time.Hour, []string{"NHS"}),
		testEntry(model.VerificationOutdated, false, 5*365*24*time.Hour, nil),
		{},
	}

	for i, k := range entries {
		score := s.ScoreKnowledge(ctx, k)
		if score < 0 || score > 1 {
			t.Errorf("entry %d: score %.3f out of [0,1]", i, score)
		}
	}
}

func TestScorer_VerificationOrdering(t *testing.T) {
	s := NewScorer(model.DefaultConfig().Trust, nil)
	ctx := context.Background()

	verified := s.ScoreKnowledge(ctx, testEntry(model.VerificationVerified, true, 24*time.Hour, []string{"NHS"}))
	pending := s.ScoreKnowledge(ctx, testEntry(model.VerificationPending, true, 24*time.Hour, []string{"NHS"}))
	outdated := s.ScoreKnowledge(ctx, testEntry(model.VerificationOutdated, true, 24*time.Hour, []string{"NHS"}))

	if !(verified > pending && pending > outdated) {
		t.Errorf("expected verified > pending > outdated, got %.3f, %.3f, %.3f", verified, pending, outdated)
	}
}

func TestScorer_RecencyDecay(t *testing.T) {
	cfg := model.TrustConfig{StaleAfterDays: 100, EmergencyFloor: 0.6}
	s := NewScorer(cfg, nil)
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	tests := []struct {
		name string
		age  time.Duration
		want float64
	}{
		{"fresh", 10 * 24 * time.Hour, 1.0},
		{"at threshold", 100 * 24 * time.Hour, 1.0},
		{"stale", 150 * 24 * time.Hour, 0.6},
		{"very stale", 400 * 24 * time.Hour, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := model.KnowledgeEntry{LastUpdated: now.Add(-tt.age)}
			if got := s.recencyScore(k); got != tt.want {
				t.Errorf("age %v: expected %.1f, got %.1f", tt.age, tt.want, got)
			}
		})
	}

	// Missing timestamp contributes neutrally
	if got := s.recencyScore(model.KnowledgeEntry{}); got != neutralScore {
		t.Errorf("expected neutral score for zero timestamp, got %.1f", got)
	}
}

func TestScorer_SourceScore(t *testing.T) {
	prober := &fakeProber{results: map[string]ProbeResult{
		"https://up.example.org/":   ProbeReachable,
		"https://gone.example.org/": ProbeUnreachable,
	}}
	s := NewScorer(model.DefaultConfig().Trust, prober)
	ctx := context.Background()

	tests := []struct {
		name    string
		sources []string
		want    float64
	}{
		{"no sources is neutral", nil, neutralScore},
		{"named authority counts full", []string{"British HIV Association"}, 1.0},
		{"reachable url counts full", []string{"https://up.example.org/"}, 1.0},
		{"unreachable url counts zero", []string{"https://gone.example.org/"}, 0.0},
		{"unknown url is neutral", []string{"https://other.example.org/"}, neutralScore},
		{"mixed", []string{"NHS", "https://gone.example.org/"}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.sourceScore(ctx, tt.sources); got != tt.want {
				t.Errorf("expected %.2f, got %.2f", tt.want, got)
			}
		})
	}
}

func TestScorer_NilProberIsNeutral(t *testing.T) {
	s := NewScorer(model.DefaultConfig().Trust, nil)

	got := s.sourceScore(context.Background(), []string{"https://anywhere.example.org/"})
	if got != neutralScore {
		t.Errorf("expected neutral score without a prober, got %.2f", got)
	}
}

func TestScorer_ResourceScoring(t *testing.T) {
	s := NewScorer(model.DefaultConfig().Trust, nil)

	free := model.Resource{Cost: model.CostFree, Availability: "24/7", Cultural: model.CulturalCompetency{LGBTQSpecific: true}}
	paid := model.Resource{Cost: model.CostPaid}

	if got := s.ScoreResource(free); got <= s.ScoreResource(paid) {
		t.Errorf("expected free 24/7 culturally-specific resource to outscore paid generic one")
	}

	for _, r := range []model.Resource{free, paid, {}} {
		score := s.ScoreResource(r)
		if score < 0 || score > 1 {
			t.Errorf("score %.3f out of [0,1]", score)
		}
	}
}

func TestScorer_EmergencyFloor(t *testing.T) {
	s := NewScorer(model.TrustConfig{EmergencyFloor: 0.6}, nil)

	worst := model.Resource{Cost: model.CostPaid, Emergency: true}
	if got := s.ScoreResource(worst); got < 0.6 {
		t.Errorf("emergency resource scored %.3f, below the floor", got)
	}

	notEmergency := model.Resource{Cost: model.CostPaid}
	if got := s.ScoreResource(notEmergency); got >= 0.6 {
		t.Errorf("floor applied to non-emergency resource: %.3f", got)
	}
}

func TestAggregate(t *testing.T) {
	if got := Aggregate(nil); got != 0 {
		t.Errorf("expected 0 for empty scores, got %.3f", got)
	}
	if got := Aggregate([]float64{0.25, 0.75}); got != 0.5 {
		t.Errorf("expected 0.5, got %.3f", got)
	}
}

func TestInterpret_Monotonic(t *testing.T) {
	tests := []struct {
		score float64
		want  Tier
	}{
		{0.0, TierVeryLow},
		{0.29, TierVeryLow},
		{0.3, TierLow},
		{0.5, TierMedium},
		{0.69, TierMedium},
		{0.7, TierHigh},
		{1.0, TierHigh},
	}

	rank := map[Tier]int{TierVeryLow: 0, TierLow: 1, TierMedium: 2, TierHigh: 3}
	prev := -1
	for _, tt := range tests {
		got := Interpret(tt.score)
		if got.Tier != tt.want {
			t.Errorf("Interpret(%.2f) = %s, want %s", tt.score, got.Tier, tt.want)
		}
		if got.Description == "" {
			t.Errorf("Interpret(%.2f) has empty description", tt.score)
		}
		if rank[got.Tier] < prev {
			t.Errorf("tier mapping not monotonic at score %.2f", tt.score)
		}
		prev = rank[got.Tier]
	}
}
