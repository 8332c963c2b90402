package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/wayfinder-support/wayfinder/internal/pipeline"
)

var (
	chatLocation    string
	chatUser        string
	chatProbe       bool
	chatCatalog     string
	chatLLMEnabled  bool
	chatLLMProvider string
	chatLLMModel    string
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive conversation with per-session stage history",
	Long: `Chat starts an interactive session. Each message runs the full
pipeline, and the session keeps your stage history so the assistant can
track progression across the conversation.

Commands inside the session:
  /ready   check whether history shows readiness for the next stage
  /quit    end the session

Example:
  wayfinder chat --location manchester`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVar(&chatLocation, "location", "", "location hint (e.g. london, manchester)")
	chatCmd.Flags().StringVar(&chatUser, "user", "", "user identifier (default: random session id)")
	chatCmd.Flags().BoolVar(&chatProbe, "probe", false, "enable live source reachability checks")
	chatCmd.Flags().StringVar(&chatCatalog, "catalog", "", "external catalogue YAML (default: embedded seed)")

	chatCmd.Flags().BoolVar(&chatLLMEnabled, "llm", false, "enable LLM message polishing")
	chatCmd.Flags().StringVar(&chatLLMProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	chatCmd.Flags().StringVar(&chatLLMModel, "llm-model", "", "LLM model name")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	cfg.Probe.Enabled = cfg.Probe.Enabled || chatProbe
	if chatCatalog != "" {
		cfg.Catalog.Path = chatCatalog
	}
	if err := applyLLMFlags(cfg, chatLLMEnabled, chatLLMProvider, chatLLMModel); err != nil {
		return err
	}

	assistant := pipeline.New(cfg)

	sessionID := uuid.NewString()
	userID := chatUser
	if userID == "" {
		userID = sessionID
	}

	fmt.Println("Wayfinder — type your message, /ready to check progression, /quit to exit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/quit", "/exit":
			fmt.Println("Take care.")
			return nil
		case "/ready":
			if assistant.ReadyForNextStage(userID) {
				fmt.Println("Your history shows progression — you may be ready for the next stage.")
			} else {
				fmt.Println("No clear progression yet, and that's completely fine.")
			}
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		env := assistant.GenerateResponse(ctx, line, pipeline.UserContext{
			UserID:   userID,
			Location: chatLocation,
		}, sessionID)
		cancel()

		fmt.Println()
		renderEnvelope(env)
		fmt.Println()
	}

	return scanner.Err()
}
