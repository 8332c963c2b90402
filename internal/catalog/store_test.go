package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/wayfinder-support/wayfinder/internal/model"
)

func testResources() []model.Resource {
	return []model.Resource{
		{
			ID: "paid-counselling", Title: "Private Counselling",
			Stages: []model.Stage{model.StageStabilization}, Locations: []string{model.LocationUnknown},
			Cost: model.CostPaid,
		},
		{
			ID: "generic-free", Title: "Generic Free Service",
			Stages: []model.Stage{model.StageStabilization}, Locations: []string{model.LocationUnknown},
			Cost: model.CostFree,
		},
		{
			ID: "lgbtq-free", Title: "LGBTQ+ Free Service",
			Stages: []model.Stage{model.StageStabilization}, Locations: []string{model.LocationUnknown},
			Cost: model.CostFree, Cultural: model.CulturalCompetency{LGBTQSpecific: true},
		},
		{
			ID: "crisis-line", Title: "Crisis Line",
			Stages: []model.Stage{model.StageCrisis, model.StageStabilization}, Locations: []string{model.LocationUnknown},
			Cost: model.CostFree, Emergency: true, Availability: "24/7",
		},
		{
			ID: "london-clinic", Title: "London Clinic",
			Stages: []model.Stage{model.StageCrisis}, Locations: []string{"london"},
			Cost: model.CostNHSFunded, Emergency: true, Availability: "weekdays 9-5",
		},
	}
}

func TestStore_ResourceRanking(t *testing.T) {
	store := New(testResources(), nil)

	got := store.Resources(ResourceQuery{Stage: model.StageStabilization, Location: model.LocationUnknown})
	if len(got) != 4 {
		t.Fatalf("expected 4 resources, got %d", len(got))
	}

	// Emergency first, then free culturally-specific, then free generic,
	// then paid.
	wantOrder := []string{"crisis-line", "lgbtq-free", "generic-free", "paid-counselling"}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, got[i].ID)
		}
	}
}

func TestStore_EmergencyUrgencyFiltersToEmergency(t *testing.T) {
	store := New(testResources(), nil)

	got := store.Resources(ResourceQuery{
		Stage:    model.StageCrisis,
		Location: "london",
		Urgency:  model.UrgencyEmergency,
	})

	if len(got) == 0 {
		t.Fatal("expected emergency resources")
	}
	for _, r := range got {
		if !r.Emergency {
			t.Errorf("non-emergency resource %s returned for emergency urgency", r.ID)
		}
	}
}

func TestStore_LocationFiltering(t *testing.T) {
	store := New(testResources(), nil)

	london := store.Resources(ResourceQuery{Stage: model.StageCrisis, Location: "london"})
	leeds := store.Resources(ResourceQuery{Stage: model.StageCrisis, Location: "leeds"})

	if len(london) != 2 {
		t.Errorf("expected 2 crisis resources for london, got %d", len(london))
	}
	// The london-only clinic must not leak into other locations; the
	// unknown-location crisis line applies everywhere.
	if len(leeds) != 1 || leeds[0].ID != "crisis-line" {
		t.Errorf("expected only crisis-line for leeds, got %v", leeds)
	}
}

func TestStore_EmergencyResources(t *testing.T) {
	store := New(testResources(), nil)

	got := store.EmergencyResources("london")
	if len(got) != 2 {
		t.Fatalf("expected 2 emergency resources, got %d", len(got))
	}
	if !got[0].RoundTheClock() {
		t.Errorf("expected 24/7 service first, got %s", got[0].ID)
	}
}

func testKnowledge() []model.KnowledgeEntry {
	now := time.Now()
	return []model.KnowledgeEntry{
		{
			ID: "old-validated", Title: "Old Validated", Body: "body",
			Category: "prevention", Tags: []string{"prep"},
			Stages: []model.Stage{model.StageGrowth}, Locations: []string{model.LocationUnknown},
			LastUpdated: now.Add(-400 * 24 * time.Hour), Verification: model.VerificationVerified,
			CommunityValidated: true,
		},
		{
			ID: "fresh-validated", Title: "Fresh Validated", Body: "body",
			Category: "prevention", Tags: []string{"prep", "testing"},
			Stages: []model.Stage{model.StageGrowth}, Locations: []string{model.LocationUnknown},
			LastUpdated: now.Add(-10 * 24 * time.Hour), Verification: model.VerificationVerified,
			CommunityValidated: true,
		},
		{
			ID: "fresh-unvalidated", Title: "Fresh Unvalidated", Body: "body",
			Category: "prevention", Tags: []string{"prep"},
			Stages: []model.Stage{model.StageGrowth}, Locations: []string{model.LocationUnknown},
			LastUpdated: now.Add(-5 * 24 * time.Hour), Verification: model.VerificationPending,
		},
		{
			ID: "housing-entry", Title: "Housing", Body: "body",
			Category: "housing",
			Stages:   []model.Stage{model.StageGrowth}, Locations: []string{model.LocationUnknown},
			LastUpdated: now, Verification: model.VerificationVerified,
		},
	}
}

func TestStore_KnowledgeRanking(t *testing.T) {
	store := New(nil, testKnowledge())

	got := store.Knowledge("prep", model.StageGrowth, model.LocationUnknown)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries for prep topic, got %d", len(got))
	}

	// Community-validated first, most recently updated within that
	wantOrder := []string{"fresh-validated", "old-validated", "fresh-unvalidated"}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, got[i].ID)
		}
	}
}

func TestStore_KnowledgeTopicFromWholeMessage(t *testing.T) {
	store := New(nil, testKnowledge())

	// A whole message works as the topic because tags match as substrings
	// in either direction.
	got := store.Knowledge("I want to learn about PrEP on the NHS", model.StageGrowth, model.LocationUnknown)
	if len(got) == 0 {
		t.Fatal("expected entries matching prep tag inside the message")
	}
	for _, k := range got {
		if k.ID == "housing-entry" {
			t.Error("housing entry matched a prep question")
		}
	}
}

func TestStore_KnowledgeNoTopicMatch(t *testing.T) {
	store := New(nil, testKnowledge())

	got := store.Knowledge("banana telescope wednesday", model.StageGrowth, model.LocationUnknown)
	if len(got) != 0 {
		t.Errorf("expected no entries for nonsense topic, got %d", len(got))
	}
}

func TestDefault_SeedCatalogue(t *testing.T) {
	store := Default()

	resources, knowledge := store.Counts()
	if resources == 0 || knowledge == 0 {
		t.Fatalf("seed catalogue empty: %d resources, %d knowledge", resources, knowledge)
	}
	if store.Version() != 1 {
		t.Errorf("seed catalogue version changed to %d — intentional?", store.Version())
	}
	if problems := store.Validate(); len(problems) > 0 {
		t.Errorf("seed catalogue invalid: %v", problems)
	}

	// The seed must always be able to answer an emergency anywhere
	if got := store.EmergencyResources(model.LocationUnknown); len(got) == 0 {
		t.Error("seed catalogue has no nationwide emergency resources")
	}
}

func TestStore_Validate(t *testing.T) {
	bad := &Store{
		resources: []model.Resource{
			{ID: "dup", Title: "A", Stages: []model.Stage{model.StageCrisis}, Locations: []string{model.LocationUnknown}, Cost: model.CostFree},
			{ID: "dup", Title: "B", Stages: []model.Stage{"nonsense"}, Locations: []string{"atlantis"}, Cost: "gold"},
		},
		knowledge: []model.KnowledgeEntry{
			{ID: "k1", Title: "", Body: "", Stages: nil, Verification: "maybe"},
		},
	}

	problems := bad.Validate()
	if len(problems) == 0 {
		t.Fatal("expected validation problems")
	}

	wantFragments := []string{"duplicate id", "unknown stage", "unknown location", "unknown cost tier", "unknown verification status", "missing last_updated"}
	joined := strings.Join(problems, "\n")
	for _, frag := range wantFragments {
		if !strings.Contains(joined, frag) {
			t.Errorf("expected a problem mentioning %q, got:\n%s", frag, joined)
		}
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	if _, err := Load([]byte("resources: []")); err == nil || !strings.Contains(err.Error(), "version") {
		t.Errorf("expected missing version error, got %v", err)
	}

	if _, err := Load([]byte("version: [")); err == nil || !strings.Contains(err.Error(), "parse catalogue") {
		t.Errorf("expected parse error, got %v", err)
	}
}
