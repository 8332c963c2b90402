package classify

import "github.com/wayfinder-support/wayfinder/internal/model"

// Detector tables. These stay in code: unlike the stage signal tables they
// are not stage policy, just small fixed lookups over the same text.

var emotionTerms = []struct {
	emotion model.EmotionalState
	terms   []string
}{
	{model.EmotionCrisis, []string{"terrified", "panicking", "desperate", "hopeless", "can't cope", "breaking down"}},
	{model.EmotionStressed, []string{"stressed", "anxious", "worried", "overwhelmed", "exhausted", "scared", "struggling"}},
	{model.EmotionExcited, []string{"excited", "can't wait to", "thrilled", "buzzing"}},
	{model.EmotionJoyful, []string{"happy", "great news", "proud", "grateful", "relieved"}},
	{model.EmotionCalm, []string{"calm", "okay", "fine", "settled", "stable"}},
}

func detectEmotion(msg normalized, emergency bool) model.EmotionalState {
	if emergency {
		return model.EmotionCrisis
	}
	for _, e := range emotionTerms {
		if msg.matchesAny(e.terms) {
			return e.emotion
		}
	}
	return model.EmotionUncertain
}

var (
	highUrgencyTerms   = []string{"urgent", "right now", "immediately", "tonight", "today", "asap", "can't wait"}
	mediumUrgencyTerms = []string{"soon", "this week", "quickly", "need help"}
)

// detectUrgency derives urgency independently of stage scoring, then applies
// the forcing rules: hard emergency vocabulary means emergency, and a crisis
// stage is never below high. Emergency is only ever set via the hard
// vocabulary, which itself forces the crisis stage.
func detectUrgency(msg normalized, stage model.Stage, emergency bool) model.Urgency {
	if emergency {
		return model.UrgencyEmergency
	}

	urgency := model.UrgencyLow
	if msg.matchesAny(highUrgencyTerms) {
		urgency = model.UrgencyHigh
	} else if msg.matchesAny(mediumUrgencyTerms) {
		urgency = model.UrgencyMedium
	}

	if stage == model.StageCrisis && urgency != model.UrgencyHigh {
		urgency = model.UrgencyHigh
	}
	return urgency
}

// locationTerms maps message vocabulary to canonical locations. Checked in
// declaration order so a message naming several places always resolves to
// the same one.
var locationTerms = []struct {
	location string
	terms    []string
}{
	{"london", []string{"london"}},
	{"manchester", []string{"manchester"}},
	{"brighton", []string{"brighton", "hove"}},
	{"birmingham", []string{"birmingham"}},
	{"leeds", []string{"leeds"}},
	{"glasgow", []string{"glasgow"}},
	{"cardiff", []string{"cardiff"}},
	{"bristol", []string{"bristol"}},
	{"rural", []string{"rural", "village", "countryside", "small town"}},
}

func detectLocation(msg normalized, hint string) string {
	if hint != "" {
		canonical := normalize(hint)
		for _, l := range locationTerms {
			if canonical.matchesAny(l.terms) {
				return l.location
			}
		}
		// A hint we don't recognise is still a place, just not one we
		// have location-specific entries for.
		return "other_urban"
	}

	for _, l := range locationTerms {
		if msg.matchesAny(l.terms) {
			return l.location
		}
	}
	return model.LocationUnknown
}

var connectionTerms = []struct {
	level model.ConnectionLevel
	terms []string
}{
	{model.ConnectionIsolated, []string{"alone", "lonely", "no one", "nobody", "isolated", "by myself"}},
	{model.ConnectionOrganizing, []string{"organising", "organizing", "leading", "running a group", "setting up"}},
	{model.ConnectionNetworked, []string{"network", "communities", "several groups"}},
	{model.ConnectionConnected, []string{"my group", "my friends", "support group", "my community"}},
	{model.ConnectionExploring, []string{"meet people", "looking to connect", "join", "find others"}},
}

func detectConnection(msg normalized) model.ConnectionLevel {
	for _, c := range connectionTerms {
		if msg.matchesAny(c.terms) {
			return c.level
		}
	}
	return model.ConnectionExploring
}

var channelTerms = []struct {
	channel model.Channel
	terms   []string
}{
	{model.ChannelPhone, []string{"phone", "call", "helpline", "talk to someone", "speak to someone"}},
	{model.ChannelInPerson, []string{"in person", "face to face", "meet up", "drop in"}},
	{model.ChannelOnline, []string{"online", "chat", "website", "app", "email"}},
}

func detectChannel(msg normalized) model.Channel {
	for _, c := range channelTerms {
		if msg.matchesAny(c.terms) {
			return c.channel
		}
	}
	return model.ChannelFlexible
}
