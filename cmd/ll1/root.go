package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ll1",
	Short: "Analyze an LL(1) grammar and parse with it",
	Long: `ll1 provides the following features:
- Computes FIRST and FOLLOW sets and an LL(1) parsing table from a grammar,
  and compiles them into a portable JSON file.
- Parses a text stream or a sequence of terminal labels with a grammar,
  and prints the parse tree.
- Tests a grammar against test cases.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setupTracing,
}

func init() {
	registerTraceFlags(rootCmd.PersistentFlags())
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
