package commands

import (
	"fmt"

	"github.com/l3aro/go-callgraph-oracle/pkg/oracle"
	"github.com/l3aro/go-callgraph-oracle/pkg/topology"
	"github.com/spf13/cobra"
)

// oracleCmd represents the oracle command
var oracleCmd = &cobra.Command{
	Use:   "oracle <topology.yaml>",
	Short: "Extract the ground-truth call graph from a topology document",
	Long: `Projects a topology document onto its oracle call graph: one
"caller -> callee [kind]" line per edge, lexically sorted. Guards are
ignored and indirect edges expand to the full table contents.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")
		return runOracle(args[0], outPath)
	},
}

func runOracle(docPath, outPath string) error {
	model, err := topology.LoadModel(docPath)
	if err != nil {
		return err
	}

	g := oracle.Extract(model)
	if outPath == "" {
		fmt.Print(g.Format())
		return nil
	}
	return g.WriteFile(outPath)
}

func init() {
	oracleCmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
}
