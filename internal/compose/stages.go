package compose

import (
	"fmt"

	"github.com/wayfinder-support/wayfinder/internal/model"
)

// stagePolicy is the per-stage composition policy: tone of the opening,
// how resources are framed, and the closing line
type stagePolicy struct {
	opening         func(ctx model.JourneyContext) string
	resourceHeading string
	closing         string
}

var policies = map[model.Stage]stagePolicy{
	model.StageCrisis: {
		opening: func(ctx model.JourneyContext) string {
			if ctx.Urgency == model.UrgencyEmergency {
				return "I'm really glad you reached out. What you're feeling matters, and there is support available right now."
			}
			return "That sounds really hard, and reaching out took courage. You don't have to deal with this alone."
		},
		resourceHeading: "Please reach out to one of these right away — they're there for exactly this:",
		closing:         "Would you like to talk through what's happening? I'm here, and I'll check in with you.",
	},
	model.StageStabilization: {
		opening: func(ctx model.JourneyContext) string {
			return "Getting day-to-day support sorted makes everything else easier. Here's what can help with that."
		},
		resourceHeading: "Services that can support you now:",
		closing:         "Take it one step at a time — booking a single appointment counts as progress.",
	},
	model.StageGrowth: {
		opening: func(ctx model.JourneyContext) string {
			return "Great question — knowing your options puts you in control."
		},
		resourceHeading: "Where to go for this:",
		closing:         "If anything here raises more questions, just ask.",
	},
	model.StageCommunityHealing: {
		opening: func(ctx model.JourneyContext) string {
			if ctx.Connection == model.ConnectionIsolated {
				return "Feeling disconnected is common and it can change. There are communities who would be glad to meet you."
			}
			return "Connecting with people who get it makes a real difference."
		},
		resourceHeading: "Communities and groups you could reach out to:",
		closing:         "There's no pressure — even joining an online group counts as a first step.",
	},
	model.StageAdvocacy: {
		opening: func(ctx model.JourneyContext) string {
			return "It's brilliant that you want to give back — lived experience changes things for the people coming after you."
		},
		resourceHeading: "Ways to get involved:",
		closing:         "Your voice matters. Start wherever feels right.",
	},
}

func policyFor(stage model.Stage) stagePolicy {
	if p, ok := policies[stage]; ok {
		return p
	}
	return policies[model.StageGrowth]
}

// nextStageGuidance names the stage that logically follows, with a short
// rationale
func nextStageGuidance(stage model.Stage) string {
	next := stage.Next()
	rationales := map[model.Stage]string{
		model.StageStabilization:    "once things feel safer, settling into regular support helps it stick",
		model.StageGrowth:           "with day-to-day support in place, this is a good time to learn and build confidence",
		model.StageCommunityHealing: "many people find the next step is connecting with others who share the experience",
		model.StageAdvocacy:         "when you're ready, your experience could help others on the same path",
	}

	if next == stage {
		return "You're already supporting others — keep going, and remember your own support matters too."
	}
	return fmt.Sprintf("When you're ready, the next step is usually %s: %s.", next, rationales[next])
}
