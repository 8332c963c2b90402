package compose

import (
	"strings"
	"testing"

	"github.com/wayfinder-support/wayfinder/internal/model"
)

func crisisContext() model.JourneyContext {
	return model.JourneyContext{
		Stage:   model.StageCrisis,
		Urgency: model.UrgencyEmergency,
		Emotion: model.EmotionCrisis,
	}
}

func TestComposer_CrisisEmergencyFirst(t *testing.T) {
	c := New(model.ComposeConfig{MaxResources: 3, MaxKnowledge: 2})

	resources := []model.Resource{
		{ID: "helpline", Title: "Helpline", Description: "d"},
		{ID: "crisis-line", Title: "Crisis Line", Description: "d", Emergency: true, Availability: "24/7"},
	}

	result := c.Compose(Input{Context: crisisContext(), Resources: resources})

	if result.Resources[0].ID != "crisis-line" {
		t.Errorf("expected emergency resource first in crisis reply, got %s", result.Resources[0].ID)
	}
	if !result.FollowUpRequired {
		t.Error("crisis reply must require follow-up")
	}
	if !strings.Contains(result.Message, "Crisis Line") {
		t.Error("message missing the emergency resource")
	}
}

func TestComposer_Caps(t *testing.T) {
	c := New(model.ComposeConfig{MaxResources: 2, MaxKnowledge: 1})

	var resources []model.Resource
	for _, id := range []string{"a", "b", "c", "d"} {
		resources = append(resources, model.Resource{ID: id, Title: id, Description: "d"})
	}
	knowledge := []model.KnowledgeEntry{
		{ID: "k1", Title: "K1", Body: "b1"},
		{ID: "k2", Title: "K2", Body: "b2"},
	}

	result := c.Compose(Input{
		Context:   model.JourneyContext{Stage: model.StageGrowth},
		Resources: resources,
		Knowledge: knowledge,
	})

	if len(result.Resources) != 2 {
		t.Errorf("expected 2 resources after cap, got %d", len(result.Resources))
	}
	if len(result.Knowledge) != 1 {
		t.Errorf("expected 1 knowledge entry after cap, got %d", len(result.Knowledge))
	}
	// Highest-ranked first: capping keeps the head of the list
	if result.Resources[0].ID != "a" || result.Resources[1].ID != "b" {
		t.Errorf("cap changed ordering: %s, %s", result.Resources[0].ID, result.Resources[1].ID)
	}
	if strings.Contains(result.Message, "b2") {
		t.Error("capped knowledge entry leaked into the message")
	}
}

func TestComposer_DoesNotMutateInput(t *testing.T) {
	c := New(model.ComposeConfig{MaxResources: 3, MaxKnowledge: 2})

	resources := []model.Resource{
		{ID: "helpline", Title: "Helpline", Description: "d"},
		{ID: "crisis-line", Title: "Crisis Line", Description: "d", Emergency: true},
	}

	_ = c.Compose(Input{Context: crisisContext(), Resources: resources})

	if resources[0].ID != "helpline" {
		t.Error("compose reordered the caller's slice")
	}
}

func TestComposer_FollowUpFlags(t *testing.T) {
	c := New(model.ComposeConfig{})

	tests := []struct {
		name string
		ctx  model.JourneyContext
		want bool
	}{
		{"crisis always", model.JourneyContext{Stage: model.StageCrisis, Urgency: model.UrgencyLow}, true},
		{"high urgency", model.JourneyContext{Stage: model.StageGrowth, Urgency: model.UrgencyHigh}, true},
		{"low urgency growth", model.JourneyContext{Stage: model.StageGrowth, Urgency: model.UrgencyLow}, false},
		{"medium urgency stabilization", model.JourneyContext{Stage: model.StageStabilization, Urgency: model.UrgencyMedium}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Compose(Input{Context: tt.ctx})
			if result.FollowUpRequired != tt.want {
				t.Errorf("FollowUpRequired = %v, want %v", result.FollowUpRequired, tt.want)
			}
		})
	}
}

func TestComposer_CulturalAffirmation(t *testing.T) {
	c := New(model.ComposeConfig{})

	generic := c.Compose(Input{
		Context:   model.JourneyContext{Stage: model.StageGrowth},
		Resources: []model.Resource{{ID: "a", Title: "A", Description: "d"}},
	})
	if generic.CulturalAffirmation {
		t.Error("generic resources should not set cultural affirmation")
	}

	specific := c.Compose(Input{
		Context: model.JourneyContext{Stage: model.StageGrowth},
		Resources: []model.Resource{
			{ID: "a", Title: "A", Description: "d", Cultural: model.CulturalCompetency{LGBTQSpecific: true}},
		},
	})
	if !specific.CulturalAffirmation {
		t.Error("culturally-specific resource should set cultural affirmation")
	}
}

func TestComposer_StageTone(t *testing.T) {
	c := New(model.ComposeConfig{})

	// Each stage opens differently; none of them are interchangeable
	seen := make(map[string]model.Stage)
	for _, stage := range model.Stages {
		result := c.Compose(Input{Context: model.JourneyContext{Stage: stage}})
		if result.Message == "" {
			t.Errorf("stage %s produced an empty message", stage)
		}
		if prior, dup := seen[result.Message]; dup {
			t.Errorf("stages %s and %s share an opening", prior, stage)
		}
		seen[result.Message] = stage
	}
}

func TestNextStageGuidance(t *testing.T) {
	for _, stage := range model.Stages {
		guidance := nextStageGuidance(stage)
		if guidance == "" {
			t.Errorf("stage %s has no next-stage guidance", stage)
		}
		if stage != model.StageAdvocacy && !strings.Contains(guidance, string(stage.Next())) {
			t.Errorf("guidance for %s does not name %s: %q", stage, stage.Next(), guidance)
		}
	}

	// Advocacy is terminal: guidance turns inward instead of naming a stage
	if g := nextStageGuidance(model.StageAdvocacy); !strings.Contains(g, "supporting others") {
		t.Errorf("unexpected advocacy guidance: %q", g)
	}
}
