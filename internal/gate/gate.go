// Package gate implements the honest response guard: the decision about
// whether the pipeline is allowed to answer at all. Once the gate declines,
// no downstream component may override it.
package gate

import (
	"fmt"
	"strings"

	"github.com/wayfinder-support/wayfinder/internal/model"
)

// ResponseTier is the confidence tier the gate grants a response
type ResponseTier string

const (
	TierHigh         ResponseTier = "high"
	TierMedium       ResponseTier = "medium"
	TierLow          ResponseTier = "low"
	TierInsufficient ResponseTier = "insufficient"
)

// Decision is the gate's verdict for one query
type Decision struct {
	ShouldRespond     bool
	Tier              ResponseTier
	Reason            string
	EmergencyOverride bool
}

// Gate evaluates whether retrieved content is sufficient to answer.
// The emergency check is injected so the gate and the classifier share one
// hard-emergency vocabulary.
type Gate struct {
	cfg            model.GateConfig
	emergencyCheck func(string) bool
}

// New creates a gate with the given thresholds and hard-emergency check
func New(cfg model.GateConfig, emergencyCheck func(string) bool) *Gate {
	return &Gate{cfg: cfg, emergencyCheck: emergencyCheck}
}

// Evaluate decides whether to answer, in strict order:
//  1. Both lists populated and aggregate trust at the high threshold: high.
//  2. Either list populated and trust at the minimum threshold: medium.
//  3. Hard emergency vocabulary in the query: low, emergency override —
//     crisis numbers always go out even with nothing retrieved.
//  4. Otherwise: do not respond normally, substitute the honest limitation.
func (g *Gate) Evaluate(query string, resources []model.Resource, knowledge []model.KnowledgeEntry, aggregateTrust float64) Decision {
	resourceCount := len(resources)
	knowledgeCount := len(knowledge)

	if resourceCount >= 1 && knowledgeCount >= 1 && aggregateTrust >= g.cfg.HighTrust {
		return Decision{
			ShouldRespond: true,
			Tier:          TierHigh,
			Reason:        fmt.Sprintf("%d resources, %d knowledge entries, trust %.2f", resourceCount, knowledgeCount, aggregateTrust),
		}
	}

	if (resourceCount >= 1 || knowledgeCount >= 1) && aggregateTrust >= g.cfg.MinTrust {
		return Decision{
			ShouldRespond: true,
			Tier:          TierMedium,
			Reason:        fmt.Sprintf("partial coverage, trust %.2f", aggregateTrust),
		}
	}

	if g.emergencyCheck != nil && g.emergencyCheck(query) {
		return Decision{
			ShouldRespond:     true,
			Tier:              TierLow,
			Reason:            "emergency override",
			EmergencyOverride: true,
		}
	}

	return Decision{
		ShouldRespond: false,
		Tier:          TierInsufficient,
		Reason:        "insufficient verified information",
	}
}

// Limitation is the honest limitation content substituted when the gate
// declines. It never invents specific information.
type Limitation struct {
	Message          string
	Emergency        bool
	SuggestedSources []Source
}

// Limitation builds the honest limitation content for a declined query. An
// emergency query routes to crisis numbers; anything else routes to named
// authoritative sources for the query's topic.
func (g *Gate) Limitation(query string) Limitation {
	if g.emergencyCheck != nil && g.emergencyCheck(query) {
		return Limitation{
			Message:   emergencyLimitationMessage,
			Emergency: true,
		}
	}

	topic := DetectTopic(query)
	sources := SourcesFor(topic)

	var b strings.Builder
	b.WriteString("I don't have enough verified information to answer that properly, ")
	b.WriteString("and I won't guess about something this important.\n\n")
	b.WriteString("These are trustworthy places to ask:\n")
	for _, s := range sources {
		if s.URL != "" {
			fmt.Fprintf(&b, "- %s (%s)\n", s.Name, s.URL)
		} else {
			fmt.Fprintf(&b, "- %s\n", s.Name)
		}
	}
	b.WriteString("\nIf you tell me a bit more about what you need, I may be able to help with a related question.")

	return Limitation{
		Message:          b.String(),
		SuggestedSources: sources,
	}
}

const emergencyLimitationMessage = `It sounds like you might be in immediate danger or crisis. Please reach out right now:

- Emergency services: 999
- Samaritans (24/7, free): 116 123
- NHS urgent mental health line: 111, option 2

You don't have to go through this alone. These lines are staffed by people who want to help.`
