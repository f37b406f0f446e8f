package commands

import (
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "gco",
	Short: "go-callgraph-oracle - Call-graph test program generation and validation",
	Long: `go-callgraph-oracle synthesizes small C programs with precisely known
call-graph topologies and the ground-truth graphs they must produce under
static analysis.

Commands:
  synth       Generate C source from a topology document
  oracle      Extract the ground-truth call graph from a topology document
  compare     Diff an analyzer-produced graph against an oracle graph
  verify      Synthesize, analyze and compare in one step
  fixtures    List or materialize canonical topology fixtures
  batch       Run the synthesize+extract pipeline over a directory
  init        Initialize gco configuration interactively

Use "gco [command] --help" for more information about a command.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	// Add subcommands
	RootCmd.AddCommand(synthCmd)
	RootCmd.AddCommand(oracleCmd)
	RootCmd.AddCommand(compareCmd)
	RootCmd.AddCommand(verifyCmd)
	RootCmd.AddCommand(fixturesCmd)
	RootCmd.AddCommand(batchCmd)
	RootCmd.AddCommand(initCmd)
}
