package model

// CostTier classifies how a resource is paid for
type CostTier string

const (
	CostFree         CostTier = "free"
	CostNHSFunded    CostTier = "nhs_funded"
	CostSlidingScale CostTier = "sliding_scale"
	CostPaid         CostTier = "paid"
)

// Accessible reports whether the tier is free at the point of use
func (c CostTier) Accessible() bool {
	return c == CostFree || c == CostNHSFunded
}

// CulturalCompetency records identity-specific relevance of a resource
type CulturalCompetency struct {
	LGBTQSpecific    bool `json:"lgbtq_specific" yaml:"lgbtq_specific"`
	IdentitySpecific bool `json:"identity_specific" yaml:"identity_specific"`
	DisabilityAware  bool `json:"disability_aware" yaml:"disability_aware"`
}

// Specific reports whether the resource targets a particular community
// rather than the general population
func (c CulturalCompetency) Specific() bool {
	return c.LGBTQSpecific || c.IdentitySpecific
}

// Resource is a support service catalogue entry
type Resource struct {
	ID           string             `json:"id" yaml:"id"`
	Title        string             `json:"title" yaml:"title"`
	Description  string             `json:"description" yaml:"description"`
	Category     string             `json:"category" yaml:"category"`
	Stages       []Stage            `json:"stages" yaml:"stages"`
	Locations    []string           `json:"locations" yaml:"locations"`
	Cost         CostTier           `json:"cost" yaml:"cost"`
	Emergency    bool               `json:"emergency" yaml:"emergency"`
	Availability string             `json:"availability" yaml:"availability"` // e.g. "24/7", "weekdays 9-5"
	Languages    []string           `json:"languages,omitempty" yaml:"languages,omitempty"`
	Cultural     CulturalCompetency `json:"cultural" yaml:"cultural"`
}

// ServesStage reports whether the resource applies to the given stage
func (r Resource) ServesStage(stage Stage) bool {
	for _, s := range r.Stages {
		if s == stage {
			return true
		}
	}
	return false
}

// ServesLocation reports whether the resource applies to the given location.
// Entries listing the unknown sentinel apply everywhere.
func (r Resource) ServesLocation(location string) bool {
	for _, l := range r.Locations {
		if l == location || l == LocationUnknown {
			return true
		}
	}
	return false
}

// RoundTheClock reports whether the resource is available at any hour
func (r Resource) RoundTheClock() bool {
	return r.Availability == "24/7"
}
