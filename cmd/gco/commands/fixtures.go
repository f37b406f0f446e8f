package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/l3aro/go-callgraph-oracle/pkg/oracle"
	"github.com/l3aro/go-callgraph-oracle/pkg/synth"
	"github.com/l3aro/go-callgraph-oracle/pkg/topology"
	"github.com/spf13/cobra"
)

// FixtureInfo summarizes one canonical fixture for listings.
type FixtureInfo struct {
	Name      string `json:"name"`
	Functions int    `json:"functions"`
	Edges     int    `json:"edges"`
	Tables    int    `json:"tables"`
}

// fixturesCmd represents the fixtures command
var fixturesCmd = &cobra.Command{
	Use:   "fixtures [name]",
	Short: "List or materialize canonical topology fixtures",
	Long: `Without arguments, lists the canonical fixtures. With a fixture
name and --out, writes the fixture's topology document, synthesized C source
and oracle graph into the output directory.`,
	Args: cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		outDir, _ := cmd.Flags().GetString("out")
		entryDepth, _ := cmd.Flags().GetInt("entry-depth")

		if len(args) == 0 {
			return listFixtures(jsonOutput)
		}
		return materializeFixture(args[0], outDir, entryDepth)
	},
}

func listFixtures(jsonOutput bool) error {
	var infos []FixtureInfo
	for _, name := range topology.FixtureNames() {
		model, err := topology.Fixture(name)
		if err != nil {
			return err
		}
		infos = append(infos, FixtureInfo{
			Name:      name,
			Functions: len(model.Functions()),
			Edges:     len(model.Edges()),
			Tables:    len(model.Tables()),
		})
	}

	if jsonOutput {
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	for _, info := range infos {
		fmt.Printf("%-20s %d functions, %d edges, %d tables\n",
			info.Name, info.Functions, info.Edges, info.Tables)
	}
	return nil
}

func materializeFixture(name, outDir string, entryDepth int) error {
	model, err := topology.Fixture(name)
	if err != nil {
		return err
	}

	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	docData, err := topology.DocumentFromModel(model).Marshal()
	if err != nil {
		return err
	}
	docPath := filepath.Join(outDir, name+".yaml")
	if err := os.WriteFile(docPath, docData, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", docPath, err)
	}

	source, err := synth.Synthesize(model, synth.Options{EntryDepth: entryDepth})
	if err != nil {
		return err
	}
	srcPath := filepath.Join(outDir, name+".c")
	if err := os.WriteFile(srcPath, []byte(source), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", srcPath, err)
	}

	oraclePath := filepath.Join(outDir, name+".oracle")
	if err := oracle.Extract(model).WriteFile(oraclePath); err != nil {
		return err
	}

	fmt.Printf("Wrote %s, %s, %s\n", docPath, srcPath, oraclePath)
	return nil
}

func init() {
	fixturesCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	fixturesCmd.Flags().StringP("out", "o", "", "Output directory for materialized files")
	fixturesCmd.Flags().Int("entry-depth", 0, "Depth passed to the entry function")
}
