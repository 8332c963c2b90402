package gate

import "strings"

// Topic is the finite set of subject areas the limitation response can
// route to. Keeping this a closed enum with one lookup table keeps the
// routing exhaustively testable.
type Topic string

const (
	TopicHIVCare      Topic = "hiv_care"
	TopicPrevention   Topic = "prevention"
	TopicMentalHealth Topic = "mental_health"
	TopicHousing      Topic = "housing"
	TopicRights       Topic = "rights"
	TopicGeneral      Topic = "general"
)

// Source is a named authoritative place to ask
type Source struct {
	Name string
	URL  string
}

// topicKeywords maps query vocabulary to topics, checked in order; first
// match wins
var topicKeywords = []struct {
	topic Topic
	terms []string
}{
	{TopicPrevention, []string{"prep", "pep", "prevention", "condom", "testing", "test"}},
	{TopicHIVCare, []string{"hiv", "viral load", "undetectable", "cd4", "antiretroviral", "diagnosis"}},
	{TopicMentalHealth, []string{"mental health", "depress", "anxiety", "anxious", "therapy", "counselling"}},
	{TopicHousing, []string{"housing", "homeless", "eviction", "landlord", "rent"}},
	{TopicRights, []string{"rights", "discrimination", "legal", "employer", "work", "benefits"}},
}

var topicSources = map[Topic][]Source{
	TopicHIVCare: {
		{Name: "THT Direct, 0808 802 1221", URL: "https://www.tht.org.uk/"},
		{Name: "NAM aidsmap", URL: "https://www.aidsmap.com/"},
		{Name: "Your HIV clinic or GP"},
	},
	TopicPrevention: {
		{Name: "NHS sexual health services", URL: "https://www.nhs.uk/nhs-services/sexual-health-services/"},
		{Name: "Terrence Higgins Trust", URL: "https://www.tht.org.uk/"},
		{Name: "Your local sexual health clinic"},
	},
	TopicMentalHealth: {
		{Name: "Mind", URL: "https://www.mind.org.uk/"},
		{Name: "NHS talking therapies", URL: "https://www.nhs.uk/mental-health/"},
		{Name: "Samaritans, 116 123"},
	},
	TopicHousing: {
		{Name: "Shelter", URL: "https://www.shelter.org.uk/"},
		{Name: "Citizens Advice", URL: "https://www.citizensadvice.org.uk/"},
		{Name: "Your local council's housing team"},
	},
	TopicRights: {
		{Name: "Citizens Advice", URL: "https://www.citizensadvice.org.uk/"},
		{Name: "Equality Advisory Support Service", URL: "https://www.equalityadvisoryservice.com/"},
		{Name: "ACAS (work issues), 0300 123 1100"},
	},
	TopicGeneral: {
		{Name: "NHS 111", URL: "https://111.nhs.uk/"},
		{Name: "Citizens Advice", URL: "https://www.citizensadvice.org.uk/"},
		{Name: "Switchboard LGBT+ helpline, 0800 0119 100"},
	},
}

// DetectTopic maps a query to a topic by keyword matching, defaulting to
// the general topic
func DetectTopic(query string) Topic {
	q := strings.ToLower(query)
	for _, tk := range topicKeywords {
		for _, term := range tk.terms {
			if strings.Contains(q, term) {
				return tk.topic
			}
		}
	}
	return TopicGeneral
}

// SourcesFor returns the authoritative sources for a topic
func SourcesFor(topic Topic) []Source {
	if sources, ok := topicSources[topic]; ok {
		return sources
	}
	return topicSources[TopicGeneral]
}
