package commands

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/l3aro/go-callgraph-oracle/internal/config"
	"github.com/l3aro/go-callgraph-oracle/internal/log"
	"github.com/l3aro/go-callgraph-oracle/pkg/batch"
	"github.com/spf13/cobra"
)

// BatchSummary aggregates the outcome of a batch run.
type BatchSummary struct {
	Processed int            `json:"processed"`
	Skipped   int            `json:"skipped"`
	Failed    int            `json:"failed"`
	Results   []batch.Result `json:"results"`
}

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Run the synthesize+extract pipeline over a directory",
	Long: `Processes every topology document (*.yaml, *.yml) in a directory:
synthesizes the C program and extracts the oracle graph for each, on a
bounded worker pool. Documents unchanged since the previous run are skipped.
Interrupting the run stops dispatch; in-flight documents finish.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir, _ := cmd.Flags().GetString("out")
		workers, _ := cmd.Flags().GetInt("workers")
		entryDepth, _ := cmd.Flags().GetInt("entry-depth")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		return runBatch(cmd, args[0], outDir, workers, entryDepth, jsonOutput)
	},
}

func runBatch(cmd *cobra.Command, dir, outDir string, workers, entryDepth int, jsonOutput bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if outDir == "" {
		outDir = cfg.OutputDir
	}
	if workers == 0 {
		workers = cfg.Workers
	}
	if entryDepth == 0 {
		entryDepth = cfg.EntryDepth
	}

	logger := log.Default()
	if cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	docs, err := batch.FindDocuments(dir)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no topology documents found in %s", dir)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := batch.New(batch.Options{
		OutDir:     outDir,
		Workers:    workers,
		EntryDepth: entryDepth,
	})
	results := runner.Run(ctx, docs)

	summary := BatchSummary{Results: results}
	for _, res := range results {
		switch {
		case res.Err != nil:
			summary.Failed++
			logger.Error("pipeline failed", "doc", res.Doc, "err", res.Err)
		case res.Skipped:
			summary.Skipped++
			logger.Debug("unchanged, skipped", "doc", res.Doc)
		default:
			summary.Processed++
			logger.Info("processed", "doc", res.Doc, "source", res.SourcePath, "oracle", res.OraclePath)
		}
	}

	if jsonOutput {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Println(string(data))
	} else {
		fmt.Printf("Batch complete: %d processed, %d skipped, %d failed\n",
			summary.Processed, summary.Skipped, summary.Failed)
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d documents failed", summary.Failed, len(docs))
	}
	return nil
}

func init() {
	batchCmd.Flags().StringP("out", "o", "", "Output directory (default from config)")
	batchCmd.Flags().Int("workers", 0, "Worker pool size (default from config)")
	batchCmd.Flags().Int("entry-depth", 0, "Depth passed to entry functions")
	batchCmd.Flags().BoolP("json", "j", false, "Output summary as JSON")
}
