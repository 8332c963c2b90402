// Package catalog holds the in-memory catalogue of support resources and
// knowledge entries, with the filter and ranking queries the pipeline runs
// against it. Queries are pure functions over static data: the only failure
// mode is an empty result.
package catalog

import (
	"sort"
	"strings"

	"github.com/wayfinder-support/wayfinder/internal/model"
)

// Store is an immutable snapshot of the catalogue
type Store struct {
	version   int
	resources []model.Resource
	knowledge []model.KnowledgeEntry
}

// New creates a store from explicit entries (used by tests and the
// moderation import path)
func New(resources []model.Resource, knowledge []model.KnowledgeEntry) *Store {
	return &Store{resources: resources, knowledge: knowledge}
}

// Version returns the catalogue version, 0 for hand-built stores
func (s *Store) Version() int {
	return s.version
}

// Counts returns the number of resources and knowledge entries
func (s *Store) Counts() (resources, knowledge int) {
	return len(s.resources), len(s.knowledge)
}

// ResourceQuery filters the resource catalogue
type ResourceQuery struct {
	Stage    model.Stage
	Location string
	Urgency  model.Urgency
	Category string // optional substring filter
}

// Resources returns resources matching the query, ranked.
//
// Ranking is a stable three-key sort: emergency entries first, then
// free/NHS-funded before paid, then culturally-specific before generic.
// Entries equal on all keys keep catalogue order.
func (s *Store) Resources(q ResourceQuery) []model.Resource {
	var out []model.Resource
	category := strings.ToLower(q.Category)

	for _, r := range s.resources {
		if !r.ServesStage(q.Stage) || !r.ServesLocation(q.Location) {
			continue
		}
		if q.Urgency == model.UrgencyEmergency && !r.Emergency {
			continue
		}
		if category != "" && !strings.Contains(strings.ToLower(r.Category), category) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Emergency != b.Emergency {
			return a.Emergency
		}
		if a.Cost.Accessible() != b.Cost.Accessible() {
			return a.Cost.Accessible()
		}
		if a.Cultural.Specific() != b.Cultural.Specific() {
			return a.Cultural.Specific()
		}
		return false
	})

	return out
}

// Knowledge returns knowledge entries for a stage and location whose
// category or tags fuzzy-match the topic. Community-validated entries rank
// first, then most recently updated.
func (s *Store) Knowledge(topic string, stage model.Stage, location string) []model.KnowledgeEntry {
	var out []model.KnowledgeEntry
	topic = strings.ToLower(strings.TrimSpace(topic))

	for _, k := range s.knowledge {
		if !k.ServesStage(stage) || !k.ServesLocation(location) {
			continue
		}
		if topic != "" && !topicMatches(topic, k) {
			continue
		}
		out = append(out, k)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.CommunityValidated != b.CommunityValidated {
			return a.CommunityValidated
		}
		return a.LastUpdated.After(b.LastUpdated)
	})

	return out
}

// topicMatches reports whether the topic fuzzy-matches the entry's category
// or any tag. Matching is case-insensitive substring in either direction,
// so a whole message can serve as the topic.
func topicMatches(topic string, k model.KnowledgeEntry) bool {
	category := strings.ToLower(k.Category)
	if strings.Contains(category, topic) || strings.Contains(topic, category) {
		return true
	}
	for _, tag := range k.Tags {
		tag = strings.ToLower(tag)
		if strings.Contains(tag, topic) || strings.Contains(topic, tag) {
			return true
		}
	}
	return false
}

// EmergencyResources returns emergency-flagged resources for a location,
// round-the-clock services first
func (s *Store) EmergencyResources(location string) []model.Resource {
	var out []model.Resource
	for _, r := range s.resources {
		if r.Emergency && r.ServesLocation(location) {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RoundTheClock() && !out[j].RoundTheClock()
	})

	return out
}
