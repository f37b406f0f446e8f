package commands

import (
	"fmt"
	"os"

	"github.com/l3aro/go-callgraph-oracle/pkg/compare"
	"github.com/l3aro/go-callgraph-oracle/pkg/graph"
	"github.com/spf13/cobra"
)

// Comparator exit codes.
const (
	exitPass      = 0
	exitFail      = 1
	exitMalformed = 2
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <oracle-file> <produced-file>",
	Short: "Diff an analyzer-produced graph against an oracle graph",
	Long: `Compares two serialized call graphs edge by edge. Matching is by
(caller, callee) pair; kind disagreements are reported as KIND-MISMATCH but
do not fail the comparison.

Exit codes: 0 when the graphs match, 1 when edges are missing or extra,
2 when an input file is malformed.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runCompare(args[0], args[1]))
	},
}

func runCompare(oraclePath, producedPath string) int {
	oracleGraph, err := graph.ParseFile(oraclePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitMalformed
	}
	producedGraph, err := graph.ParseFile(producedPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitMalformed
	}

	report := compare.Compare(oracleGraph, producedGraph)
	for _, line := range report.Lines() {
		fmt.Println(line)
	}

	if !report.Pass() {
		return exitFail
	}
	fmt.Println("PASS")
	return exitPass
}
