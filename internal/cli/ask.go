package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/wayfinder-support/wayfinder/internal/model"
	"github.com/wayfinder-support/wayfinder/internal/pipeline"
)

var (
	askLocation    string
	askUser        string
	askJSON        bool
	askExplain     bool
	askProbe       bool
	askCatalog     string
	askLLMEnabled  bool
	askLLMProvider string
	askLLMModel    string
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Ask a single question and print the response envelope",
	Long: `Ask runs one message through the full pipeline:
- Classify the journey stage from the text
- Retrieve matching resources and knowledge
- Score trust, gate the response, compose the reply

Example:
  wayfinder ask "I want to learn about PrEP on the NHS"
  wayfinder ask "where can I get tested" --location london --json
  wayfinder ask "how do benefits work" --explain`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&askLocation, "location", "", "location hint (e.g. london, manchester)")
	askCmd.Flags().StringVar(&askUser, "user", "", "user identifier for history tracking")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the envelope as JSON")
	askCmd.Flags().BoolVar(&askExplain, "explain", false, "print per-stage classification scores")
	askCmd.Flags().BoolVar(&askProbe, "probe", false, "enable live source reachability checks")
	askCmd.Flags().StringVar(&askCatalog, "catalog", "", "external catalogue YAML (default: embedded seed)")

	askCmd.Flags().BoolVar(&askLLMEnabled, "llm", false, "enable LLM message polishing")
	askCmd.Flags().StringVar(&askLLMProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	askCmd.Flags().StringVar(&askLLMModel, "llm-model", "", "LLM model name")
}

func runAsk(cmd *cobra.Command, args []string) error {
	message := args[0]

	cfg := buildConfig()
	cfg.Probe.Enabled = cfg.Probe.Enabled || askProbe
	if askCatalog != "" {
		cfg.Catalog.Path = askCatalog
	}
	if err := applyLLMFlags(cfg, askLLMEnabled, askLLMProvider, askLLMModel); err != nil {
		return err
	}

	assistant := pipeline.New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	env := assistant.GenerateResponse(ctx, message, pipeline.UserContext{
		UserID:   askUser,
		Location: askLocation,
	}, "")

	if askExplain {
		printScores(assistant, message)
	}

	if askJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(env)
	}

	renderEnvelope(env)
	return nil
}

func printScores(assistant *pipeline.Assistant, message string) {
	classifier := assistant.Classifier()
	scores := classifier.Scores(message)

	fmt.Fprintf(os.Stderr, "Signal table v%d, per-stage scores:\n", classifier.TableVersion())
	for _, stage := range model.Stages {
		fmt.Fprintf(os.Stderr, "  %-18s %.3f\n", stage, scores[stage])
	}
	if classifier.HasEmergencyTerms(message) {
		fmt.Fprintln(os.Stderr, "  emergency vocabulary matched: crisis forced")
	}
	fmt.Fprintln(os.Stderr)
}
