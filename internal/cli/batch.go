package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/wayfinder-support/wayfinder/internal/model"
	"github.com/wayfinder-support/wayfinder/internal/pipeline"
	"github.com/wayfinder-support/wayfinder/internal/worker"
)

var (
	batchConcurrency int
	batchOutput      string
	batchTimeout     time.Duration
	batchLocation    string
	batchCatalog     string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Run many messages through the pipeline in parallel",
	Long: `Batch reads messages from an input file (one per line), runs each
through the full pipeline with a worker pool, and writes one JSON
envelope per line to the output file.

Each line is treated as an independent anonymous query: no stage
history is shared between lines.

Example:
  wayfinder batch queries.txt
  wayfinder batch queries.txt --concurrency 8 --out envelopes.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&batchOutput, "out", "envelopes.jsonl", "output file (JSON lines)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&batchLocation, "location", "", "location hint applied to every message")
	batchCmd.Flags().StringVar(&batchCatalog, "catalog", "", "external catalogue YAML (default: embedded seed)")
}

// batchJob classifies one message from the input file
type batchJob struct {
	line      int
	message   string
	location  string
	assistant *pipeline.Assistant
}

// batchResult pairs the input line with its envelope
type batchResult struct {
	Line     int                    `json:"line"`
	Message  string                 `json:"message"`
	Envelope model.ResponseEnvelope `json:"envelope"`
}

func (j *batchJob) Execute(ctx context.Context) worker.Result {
	env := j.assistant.GenerateResponse(ctx, j.message, pipeline.UserContext{
		Location: j.location,
	}, fmt.Sprintf("batch-%d", j.line))
	return &batchResult{Line: j.line, Message: j.message, Envelope: env}
}

// GetError satisfies worker.Result; GenerateResponse degrades internally
// and never errors.
func (r *batchResult) GetError() error { return nil }

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := buildConfig()
	if batchCatalog != "" {
		cfg.Catalog.Path = batchCatalog
	}
	cfg.Concurrency.Workers = batchConcurrency

	assistant := pipeline.New(cfg)

	in, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = in.Close() }()

	pool := worker.NewPool(batchConcurrency)
	pool.Start()

	// Cancel outstanding work if the overall deadline passes
	go func() {
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			fmt.Fprintf(os.Stderr, "Warning: batch timeout reached, cancelling remaining work\n")
			pool.Shutdown()
		}
	}()

	submitted := 0
	scanner := bufio.NewScanner(in)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		message := strings.TrimSpace(scanner.Text())
		if message == "" || strings.HasPrefix(message, "#") {
			continue
		}
		pool.Submit(&batchJob{
			line:      lineNo,
			message:   message,
			location:  batchLocation,
			assistant: assistant,
		})
		submitted++
	}
	if err := scanner.Err(); err != nil {
		pool.Shutdown()
		return fmt.Errorf("read input: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Processing %d messages with %d workers...\n", submitted, batchConcurrency)

	results := pool.Wait()

	out, err := os.Create(batchOutput)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() { _ = out.Close() }()

	enc := json.NewEncoder(out)
	answered := 0
	declined := 0
	for _, result := range results {
		br, ok := result.(*batchResult)
		if !ok {
			continue
		}
		if err := enc.Encode(br); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		if br.Envelope.Source == model.SourcePipeline {
			answered++
		} else {
			declined++
		}
	}

	fmt.Fprintf(os.Stderr, "Done: %d answered, %d declined or degraded → %s\n", answered, declined, batchOutput)
	return nil
}
