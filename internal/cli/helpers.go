package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/wayfinder-support/wayfinder/internal/model"
	"github.com/wayfinder-support/wayfinder/internal/trust"
)

// buildConfig assembles the effective configuration from defaults, the
// config file and environment (via viper), and the global flags.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("catalog.path"); v != "" {
		cfg.Catalog.Path = v
	}
	if viper.IsSet("classifier.crisis_override") {
		cfg.Classifier.CrisisOverride = viper.GetFloat64("classifier.crisis_override")
	}
	if viper.IsSet("classifier.min_score") {
		cfg.Classifier.MinScore = viper.GetFloat64("classifier.min_score")
	}
	if viper.IsSet("gate.high_trust") {
		cfg.Gate.HighTrust = viper.GetFloat64("gate.high_trust")
	}
	if viper.IsSet("gate.min_trust") {
		cfg.Gate.MinTrust = viper.GetFloat64("gate.min_trust")
	}
	if viper.IsSet("probe.enabled") {
		cfg.Probe.Enabled = viper.GetBool("probe.enabled")
	}
	if viper.IsSet("history.max_stages") {
		cfg.History.MaxStages = viper.GetInt("history.max_stages")
	}

	cfg.Output.Verbose = verbose
	return cfg
}

// applyLLMFlags wires the shared LLM flags into the config, resolving API
// keys from the environment
func applyLLMFlags(cfg *model.Config, enabled bool, provider, llmModel string) error {
	if !enabled {
		return nil
	}

	cfg.LLM.Provider = provider
	cfg.LLM.Model = llmModel

	switch provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}

// renderEnvelope prints a response envelope in human-readable form
func renderEnvelope(env model.ResponseEnvelope) {
	fmt.Println(env.Message)
	fmt.Println()
	fmt.Printf("  stage: %s | trust: %.2f (%s) | source: %s\n", env.Stage, env.TrustScore, env.TrustTier, env.Source)
	if env.NextStageGuidance != "" && verbose {
		fmt.Printf("  next:  %s\n", env.NextStageGuidance)
	}
	if env.Sources.Total > 0 && verbose {
		fmt.Printf("  cited: %d verified, %d unverified of %d\n", env.Sources.Verified, env.Sources.Unverified, env.Sources.Total)
	}
	if env.FollowUpRequired {
		fmt.Println("  follow-up: yes")
	}
	if env.RequestFeedback {
		tier := trust.Interpret(env.TrustScore)
		fmt.Printf("  (confidence is %s — feedback on this answer helps improve coverage)\n", strings.ReplaceAll(string(tier.Tier), "_", " "))
	}
}
