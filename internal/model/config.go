package model

import "time"

// Config holds all tunable parameters. Thresholds default to the values the
// decision policy was designed around; they are configurable because they
// were chosen empirically, not derived.
type Config struct {
	Classifier   ClassifierConfig   `yaml:"classifier"`
	Gate         GateConfig         `yaml:"gate"`
	Trust        TrustConfig        `yaml:"trust"`
	Probe        ProbeConfig        `yaml:"probe"`
	History      HistoryConfig      `yaml:"history"`
	Catalog      CatalogConfig      `yaml:"catalog"`
	Compose      ComposeConfig      `yaml:"compose"`
	LLM          LLMConfig          `yaml:"llm"`
	HTTP         HTTPConfig         `yaml:"http"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting"`
	Output       OutputConfig       `yaml:"output"`
}

// ClassifierConfig controls stage selection thresholds
type ClassifierConfig struct {
	// CrisisOverride forces the crisis stage when the crisis score exceeds it
	CrisisOverride float64 `yaml:"crisis_override"`
	// MinScore is the floor below which classification defaults to growth
	MinScore float64 `yaml:"min_score"`
}

// GateConfig controls the confidence gate thresholds
type GateConfig struct {
	HighTrust float64 `yaml:"high_trust"` // Both lists populated and trust at or above this: high tier
	MinTrust  float64 `yaml:"min_trust"`  // Either list populated and trust at or above this: medium tier
}

// TrustConfig controls trust scoring
type TrustConfig struct {
	// StaleAfterDays is the age past which knowledge loses a fixed fraction of score
	StaleAfterDays int `yaml:"stale_after_days"`
	// EmergencyFloor is the minimum score for emergency resources
	EmergencyFloor float64 `yaml:"emergency_floor"`
}

// ProbeConfig controls the optional URL reachability probe
type ProbeConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// HistoryConfig bounds per-user stage history
type HistoryConfig struct {
	MaxStages int `yaml:"max_stages"`
}

// CatalogConfig points at an external catalogue file; empty means the
// embedded seed catalogue
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// ComposeConfig caps how much content a single reply surfaces
type ComposeConfig struct {
	MaxResources int `yaml:"max_resources"`
	MaxKnowledge int `yaml:"max_knowledge"`
}

// LLMConfig configures the optional message polish provider
type LLMConfig struct {
	Provider  string `yaml:"provider"` // openai, ollama, or empty (disabled)
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// HTTPConfig configures outbound HTTP (probe only)
type HTTPConfig struct {
	UserAgent  string `yaml:"user_agent"`
	HTTPProxy  string `yaml:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy"`
	NoProxy    string `yaml:"no_proxy"`
}

// ConcurrencyConfig controls worker counts for batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// RateLimitingConfig throttles probe requests per domain
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
}

// OutputConfig controls CLI output
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
	JSON    bool `yaml:"json"`
}

// DefaultConfig returns the standard configuration
func DefaultConfig() *Config {
	return &Config{
		Classifier: ClassifierConfig{
			CrisisOverride: 0.7,
			MinScore:       0.3,
		},
		Gate: GateConfig{
			HighTrust: 0.7,
			MinTrust:  0.3,
		},
		Trust: TrustConfig{
			StaleAfterDays: 365,
			EmergencyFloor: 0.6,
		},
		Probe: ProbeConfig{
			Enabled:  false,
			Timeout:  1500 * time.Millisecond,
			CacheTTL: 6 * time.Hour,
		},
		History: HistoryConfig{
			MaxStages: 20,
		},
		Compose: ComposeConfig{
			MaxResources: 3,
			MaxKnowledge: 2,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 600,
		},
		HTTP: HTTPConfig{
			UserAgent: "Wayfinder/0.1 (+https://github.com/wayfinder-support/wayfinder)",
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2.0,
			BurstSize:         4,
		},
	}
}
