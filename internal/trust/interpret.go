package trust

// Tier is the human-readable trust band for a score
type Tier string

const (
	TierHigh    Tier = "high"
	TierMedium  Tier = "medium"
	TierLow     Tier = "low"
	TierVeryLow Tier = "very_low"
)

// Tier cut points. The mapping is monotonic: a higher score never maps to a
// lower tier.
const (
	highCutoff   = 0.7
	mediumCutoff = 0.5
	lowCutoff    = 0.3
)

// Interpretation pairs a tier with a display description
type Interpretation struct {
	Tier        Tier
	Description string
}

// Interpret maps a trust score to a display tier. Purely presentational:
// decision logic uses the numeric score.
func Interpret(score float64) Interpretation {
	switch {
	case score >= highCutoff:
		return Interpretation{TierHigh, "Verified, current information from trusted sources"}
	case score >= mediumCutoff:
		return Interpretation{TierMedium, "Generally reliable, some details may need confirmation"}
	case score >= lowCutoff:
		return Interpretation{TierLow, "Limited verification, treat as a starting point"}
	default:
		return Interpretation{TierVeryLow, "Unverified, confirm with an authoritative source"}
	}
}
