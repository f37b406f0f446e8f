package commands

import (
	"fmt"
	"os"

	"github.com/l3aro/go-callgraph-oracle/internal/config"
	"github.com/l3aro/go-callgraph-oracle/pkg/synth"
	"github.com/l3aro/go-callgraph-oracle/pkg/topology"
	"github.com/spf13/cobra"
)

// synthCmd represents the synth command
var synthCmd = &cobra.Command{
	Use:   "synth <topology.yaml>",
	Short: "Generate C source from a topology document",
	Long: `Renders a topology document into a compilable C program whose call
sites match the described edges exactly. Guarded edges are emitted as runtime
conditionals; indirect edges become function-pointer tables dispatched
through a computed index.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")
		entryDepth, _ := cmd.Flags().GetInt("entry-depth")
		return runSynth(args[0], outPath, entryDepth)
	},
}

func runSynth(docPath, outPath string, entryDepth int) error {
	if entryDepth == 0 {
		if cfg, err := config.Load(); err == nil {
			entryDepth = cfg.EntryDepth
		}
	}

	model, err := topology.LoadModel(docPath)
	if err != nil {
		return err
	}

	source, err := synth.Synthesize(model, synth.Options{EntryDepth: entryDepth})
	if err != nil {
		return err
	}

	if outPath == "" {
		fmt.Print(source)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(source), 0644); err != nil {
		return fmt.Errorf("writing source %s: %w", outPath, err)
	}
	return nil
}

func init() {
	synthCmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
	synthCmd.Flags().Int("entry-depth", 0, "Depth passed to the entry function")
}
