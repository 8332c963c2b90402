// Package compose assembles the final reply once the gate has approved.
// Every stage has its own composition policy; all share one contract:
// message body, next-stage guidance, follow-up flag, and capped content
// lists, highest-ranked first.
package compose

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wayfinder-support/wayfinder/internal/model"
)

// Input is everything the composer needs for one reply
type Input struct {
	Context   model.JourneyContext
	Resources []model.Resource       // ranked, uncapped
	Knowledge []model.KnowledgeEntry // ranked, uncapped
}

// Result is the composed reply content
type Result struct {
	Message             string
	NextStageGuidance   string
	FollowUpRequired    bool
	CulturalAffirmation bool
	Resources           []model.Resource
	Knowledge           []model.KnowledgeEntry
}

// Composer builds stage-appropriate replies
type Composer struct {
	cfg model.ComposeConfig
}

// New creates a composer
func New(cfg model.ComposeConfig) *Composer {
	if cfg.MaxResources <= 0 {
		cfg.MaxResources = 3
	}
	if cfg.MaxKnowledge <= 0 {
		cfg.MaxKnowledge = 2
	}
	return &Composer{cfg: cfg}
}

// Compose builds the reply for an approved context
func (c *Composer) Compose(in Input) Result {
	resources := capResources(in.Resources, c.cfg.MaxResources)
	knowledge := capKnowledge(in.Knowledge, c.cfg.MaxKnowledge)

	if in.Context.Stage == model.StageCrisis {
		// Immediate safety resources always lead, whatever the ranking
		// produced upstream.
		sort.SliceStable(resources, func(i, j int) bool {
			return resources[i].Emergency && !resources[j].Emergency
		})
	}

	policy := policyFor(in.Context.Stage)

	var b strings.Builder
	b.WriteString(policy.opening(in.Context))

	if len(resources) > 0 {
		b.WriteString("\n\n")
		b.WriteString(policy.resourceHeading)
		b.WriteString("\n")
		for _, r := range resources {
			fmt.Fprintf(&b, "- %s — %s", r.Title, r.Description)
			if r.Availability != "" {
				fmt.Fprintf(&b, " (%s)", r.Availability)
			}
			b.WriteString("\n")
		}
	}

	for _, k := range knowledge {
		fmt.Fprintf(&b, "\n%s: %s\n", k.Title, strings.TrimSpace(k.Body))
	}

	if policy.closing != "" {
		b.WriteString("\n")
		b.WriteString(policy.closing)
	}

	return Result{
		Message:             b.String(),
		NextStageGuidance:   nextStageGuidance(in.Context.Stage),
		FollowUpRequired:    followUpRequired(in.Context),
		CulturalAffirmation: culturallyAffirming(resources),
		Resources:           resources,
		Knowledge:           knowledge,
	}
}

func followUpRequired(ctx model.JourneyContext) bool {
	if ctx.Stage == model.StageCrisis {
		return true
	}
	return ctx.Urgency == model.UrgencyEmergency || ctx.Urgency == model.UrgencyHigh
}

func culturallyAffirming(resources []model.Resource) bool {
	for _, r := range resources {
		if r.Cultural.Specific() {
			return true
		}
	}
	return false
}

func capResources(in []model.Resource, max int) []model.Resource {
	if len(in) <= max {
		return append([]model.Resource(nil), in...)
	}
	return append([]model.Resource(nil), in[:max]...)
}

func capKnowledge(in []model.KnowledgeEntry, max int) []model.KnowledgeEntry {
	if len(in) <= max {
		return append([]model.KnowledgeEntry(nil), in...)
	}
	return append([]model.KnowledgeEntry(nil), in[:max]...)
}
